package models

import "time"

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod" // the only method the storefront offers
)

// Totals is the checkout summary of a list of line items.
type Totals struct {
	SubTotal      float64 `json:"sub_total"`
	TotalDiscount float64 `json:"total_discount"`
	TotalTax      float64 `json:"total_tax"`
	TotalShipping float64 `json:"total_shipping"`
	Total         float64 `json:"total"`
}

// Order is an entry of a session's order history. Orders are never
// mutated after they are appended.
type Order struct {
	Ref           string        `json:"ref"`
	Items         []CartItem    `json:"items"`
	Totals        Totals        `json:"totals"`
	Total         float64       `json:"total"`
	Timestamp     time.Time     `json:"timestamp"`
	Address       *Address      `json:"address,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
