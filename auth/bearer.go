package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/junaidrashid-git/revista-gateway/session"
)

var (
	ErrMissingBearer  = errors.New("auth: authorization header is missing")
	ErrSessionExpired = errors.New("auth: session expired")
)

// BearerToken strips an optional "Bearer " prefix from an Authorization
// header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// SessionFromHeader resolves the session named by the bearer token in
// header. It returns ErrMissingBearer, ErrInvalidToken or
// ErrSessionExpired when there is no usable session.
func SessionFromHeader(ctx context.Context, header, secret string, registry *session.Registry) (*session.Session, error) {
	raw := BearerToken(header)
	if raw == "" {
		return nil, ErrMissingBearer
	}
	claims, err := ParseSessionToken(secret, raw)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s, ok := registry.Resolve(ctx, claims.Subject, claims.Guest, expiresAt)
	if !ok {
		return nil, ErrSessionExpired
	}
	return s, nil
}
