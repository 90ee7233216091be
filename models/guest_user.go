package models

import "time"

// SessionInfo describes one gateway session, i.e. one device running
// the storefront.
type SessionInfo struct {
	ID              string    `json:"id"`
	Guest           bool      `json:"guest"`
	IsAuthenticated bool      `json:"is_authenticated"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	CartItems       int       `json:"cart_items"`
	Favourites      int       `json:"favourites"`
	Orders          int       `json:"orders"`
}
