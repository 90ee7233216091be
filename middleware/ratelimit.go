package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// refillWindow is how long a limiter needs to refill completely. An
// entry idle that long is equivalent to a fresh one and can be dropped.
const refillWindow = time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters keeps one token bucket per client IP.
type ipLimiters struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	every      rate.Limit
	burst      int
	lastPruned time.Time
	now        func() time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	return &ipLimiters{
		visitors: make(map[string]*visitor),
		every:    rate.Every(refillWindow / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastPruned) >= refillWindow {
		l.prune(now)
	}
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// prune drops visitors idle for a full refill window. Callers hold mu.
func (l *ipLimiters) prune(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= refillWindow {
			delete(l.visitors, ip)
		}
	}
	l.lastPruned = now
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimit allows perMinute requests per client IP with a burst of the
// same size. A non-positive perMinute disables the limit.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimit(newIPLimiters(perMinute))
}

func rateLimit(limiters *ipLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
