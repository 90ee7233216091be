package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/auth"
	"github.com/junaidrashid-git/revista-gateway/session"
)

const sessionKey = "session"

// ValidateToken resolves the session of the bearer token and stores it
// in the context. Sessions survive a gateway restart through the token
// store.
func ValidateToken(secret string, registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := auth.SessionFromHeader(c.Request.Context(), c.GetHeader("Authorization"), secret, registry)
		if err != nil {
			msg := "Invalid or expired token"
			switch {
			case errors.Is(err, auth.ErrMissingBearer):
				msg = "Authorization header is missing"
			case errors.Is(err, auth.ErrSessionExpired):
				msg = "Session expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		SetSession(c, s)
		c.Next()
	}
}

// CurrentSession returns the session ValidateToken stored.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// SetSession stores s as the current session.
func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionKey, s)
	c.Set("session_id", s.ID)
}

// OptionalSession behaves like ValidateToken for requests that carry a
// valid token and lets every other request through without a session.
func OptionalSession(secret string, registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := auth.SessionFromHeader(c.Request.Context(), c.GetHeader("Authorization"), secret, registry); err == nil {
			SetSession(c, s)
		}
		c.Next()
	}
}
