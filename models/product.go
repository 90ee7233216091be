package models

// Product is a catalog entry as the Revista API returns it.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Images       []string `json:"images,omitempty"`
	Discount     float64  `json:"discount"`
	DiscountType string   `json:"discount_type"`
	Tax          float64  `json:"tax"`
	ShippingCost float64  `json:"shipping_cost"`
	Rating       float64  `json:"rating"`
	Details      string   `json:"details,omitempty"`
}

// CartItem builds a line item for this product with the given quantity.
func (p Product) CartItem(quantity int) CartItem {
	return CartItem{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     quantity,
		Images:       p.Images,
		Discount:     p.Discount,
		DiscountType: p.DiscountType,
		Tax:          p.Tax,
		ShippingCost: p.ShippingCost,
	}
}

// FavouriteItem builds a wishlist entry for this product.
func (p Product) FavouriteItem() FavouriteItem {
	return FavouriteItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Thumbnail,
	}
}
