package session

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/junaidrashid-git/revista-gateway/loader"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/junaidrashid-git/revista-gateway/store"
	"github.com/rs/zerolog/log"
)

// Views are the loaders of the remote-backed screens of one session.
type Views struct {
	Cart      *loader.Loader[[]models.CartItem]
	Wishlist  *loader.Loader[[]models.FavouriteItem]
	Addresses *loader.Loader[[]models.Address]
	Home      *loader.Loader[models.HomeFeed]
}

func newViews(timeout time.Duration) *Views {
	return &Views{
		Cart:      loader.New[[]models.CartItem](timeout),
		Wishlist:  loader.New[[]models.FavouriteItem](timeout),
		Addresses: loader.New[[]models.Address](timeout),
		Home:      loader.New[models.HomeFeed](timeout),
	}
}

// UnmountAll cancels every load in flight.
func (v *Views) UnmountAll() {
	v.Cart.Unmount()
	v.Wishlist.Unmount()
	v.Addresses.Unmount()
	v.Home.Unmount()
}

// Session is one device running the storefront.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	Auth  *Auth
	Store *store.Store
	Views *Views

	guest atomic.Bool
}

// IsGuest reports whether the session has never signed in.
func (s *Session) IsGuest() bool { return s.guest.Load() }

// MarkSignedIn turns a guest session into a customer session.
func (s *Session) MarkSignedIn() { s.guest.Store(false) }

// Logout forgets the token, drops cart, favourites and addresses and
// cancels pending loads.
func (s *Session) Logout(ctx context.Context) {
	s.Views.UnmountAll()
	s.Auth.Logout(ctx)
	s.Store.Reset()
}

func (s *Session) Info() models.SessionInfo {
	cart, favs, orders := s.Store.Counts()
	return models.SessionInfo{
		ID:              s.ID,
		Guest:           s.IsGuest(),
		IsAuthenticated: s.Auth.IsAuthenticated(),
		CreatedAt:       s.CreatedAt,
		ExpiresAt:       s.ExpiresAt,
		CartItems:       cart,
		Favourites:      favs,
		Orders:          orders,
	}
}

// Registry owns the live sessions of the gateway.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	storage     kv.Store
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time
}

// NewRegistry keeps sessions for ttl; loadTimeout bounds view loads.
func NewRegistry(storage kv.Store, ttl, loadTimeout time.Duration) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		storage:     storage,
		ttl:         ttl,
		loadTimeout: loadTimeout,
		now:         time.Now,
	}
}

func (r *Registry) TTL() time.Duration { return r.ttl }

// Create starts a fresh session.
func (r *Registry) Create(ctx context.Context, guest bool) *Session {
	now := r.now()
	return r.add(ctx, uuid.NewString(), guest, now, now.Add(r.ttl))
}

// Resolve returns the live session id, or rebuilds it from storage when
// the gateway restarted since it was issued. Expired sessions are
// dropped and reported as missing.
func (r *Registry) Resolve(ctx context.Context, id string, guest bool, expiresAt time.Time) (*Session, bool) {
	now := r.now()
	if !expiresAt.IsZero() && !now.Before(expiresAt) {
		r.Remove(ctx, id)
		return nil, false
	}

	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		if !now.Before(s.ExpiresAt) {
			r.Remove(ctx, id)
			return nil, false
		}
		return s, true
	}

	log.Info().Str("session_id", id).Msg("♻️ Restoring session from token store")
	return r.add(ctx, id, guest, now, expiresAt), true
}

func (r *Registry) add(ctx context.Context, id string, guest bool, createdAt, expiresAt time.Time) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		Auth:      NewAuth(kv.Prefixed{Store: r.storage, Prefix: "session:" + id + ":"}),
		Store:     store.New(),
		Views:     newViews(r.loadTimeout),
	}
	s.guest.Store(guest)
	s.Auth.CheckAuthStatus(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		return existing
	}
	r.sessions[id] = s
	return s
}

// Remove logs the session out and forgets it.
func (r *Registry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Logout(ctx)
	} else {
		_ = kv.Prefixed{Store: r.storage, Prefix: "session:" + id + ":"}.Remove(ctx, tokenKey)
	}
}

// Sweep removes every expired session and returns how many it dropped.
// Stores that expire values themselves are purged as well.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()

	r.mu.RLock()
	var expired []string
	for id, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range expired {
		r.Remove(ctx, id)
	}

	// tokens of sessions never presented again since a restart
	if purger, ok := r.storage.(kv.Purger); ok {
		n, err := purger.PurgeExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("❌ Failed to purge expired tokens")
		} else if n > 0 {
			log.Info().Int("count", n).Msg("🗑️ Purged expired tokens")
		}
	}
	return len(expired)
}

// List returns the live sessions, oldest first.
func (r *Registry) List() []models.SessionInfo {
	r.mu.RLock()
	out := make([]models.SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s.Info())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Sessions returns the live session objects.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
