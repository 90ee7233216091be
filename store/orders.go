package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/revista-gateway/checkout"
	"github.com/junaidrashid-git/revista-gateway/models"
)

// Orders is the append-only order history.
type Orders []models.Order

// Append adds order to the history.
func (o Orders) Append(order models.Order) Orders {
	out := make(Orders, len(o), len(o)+1)
	copy(out, o)
	return append(out, order)
}

// NewOrder builds an order for items. Totals are always computed from
// the items; callers cannot supply them.
func NewOrder(items []models.CartItem, addr *models.Address, method models.PaymentMethod, at time.Time) models.Order {
	lines := make([]models.CartItem, len(items))
	copy(lines, items)

	totals := checkout.CalculateTotals(lines)
	return models.Order{
		Ref:           generateOrderRef(at),
		Items:         lines,
		Totals:        totals,
		Total:         totals.Total,
		Timestamp:     at.UTC(),
		Address:       addr,
		PaymentMethod: method,
	}
}

// generateOrderRef returns e.g. 20250908130500-<uuid4>.
func generateOrderRef(at time.Time) string {
	return at.UTC().Format("20060102150405") + "-" + uuid.NewString()
}
