package models

// Discount types understood by the total calculator.
const (
	DiscountFlat    = "flat"
	DiscountPercent = "percent"
)

// CartItem is a line item in a cart or an order.
type CartItem struct {
	ID           string   `json:"id" binding:"required"`
	Key          string   `json:"key,omitempty"`
	Name         string   `json:"name"`
	Price        float64  `json:"price" binding:"min=0"`
	Quantity     int      `json:"quantity"`
	Images       []string `json:"images,omitempty"`
	Discount     float64  `json:"discount" binding:"min=0"`
	DiscountType string   `json:"discount_type"`
	Tax          float64  `json:"tax" binding:"min=0"`
	ShippingCost float64  `json:"shipping_cost" binding:"min=0"`
}

func (i CartItem) ItemID() string { return i.ID }

// FavouriteItem is a wishlist entry.
type FavouriteItem struct {
	ID    string  `json:"id" binding:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

func (i FavouriteItem) ItemID() string { return i.ID }
