// Package session holds the per-device state of the storefront: the
// auth session, the state containers and the view loaders.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/junaidrashid-git/revista-gateway/kv"
	"github.com/rs/zerolog/log"
)

// ErrNotAuthenticated is returned when an action needs a logged-in user.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// tokenKey is the storage key of the persisted session token.
const tokenKey = "token"

// Auth is the auth session holder. The token lives in storage so that a
// restarted gateway picks it up again through CheckAuthStatus.
type Auth struct {
	mu              sync.RWMutex
	storage         kv.Store
	isAuthenticated bool
	isLoading       bool
	token           string
}

func NewAuth(storage kv.Store) *Auth {
	return &Auth{storage: storage, isLoading: true}
}

// CheckAuthStatus reads the stored token. A read failure is logged and
// leaves the session unauthenticated.
func (a *Auth) CheckAuthStatus(ctx context.Context) {
	a.mu.Lock()
	a.isLoading = true
	a.mu.Unlock()

	token, err := a.storage.Get(ctx, tokenKey)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		log.Error().Err(err).Msg("❌ Error checking auth status")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.isAuthenticated = err == nil && token != ""
	if !a.isAuthenticated {
		a.token = ""
	}
	a.isLoading = false
}

// Login persists token and marks the session authenticated.
func (a *Auth) Login(ctx context.Context, token string) error {
	if err := a.storage.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("session: store token: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.isAuthenticated = true
	return nil
}

// Logout forgets the token. A storage failure is only logged.
func (a *Auth) Logout(ctx context.Context) {
	if err := a.storage.Remove(ctx, tokenKey); err != nil {
		log.Error().Err(err).Msg("❌ Error removing token")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.isAuthenticated = false
}

func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isAuthenticated
}

func (a *Auth) IsLoading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isLoading
}

// Token returns the session token or ErrNotAuthenticated.
func (a *Auth) Token() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.isAuthenticated {
		return "", ErrNotAuthenticated
	}
	return a.token, nil
}
