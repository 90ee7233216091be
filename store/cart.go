package store

import "github.com/junaidrashid-git/revista-gateway/models"

// Cart is the cart working set.
type Cart ItemSet[models.CartItem]

// Add appends item unless the product is already in the cart. A
// quantity below one is stored as one.
func (c Cart) Add(item models.CartItem) Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return Cart(ItemSet[models.CartItem](c).Add(item))
}

func (c Cart) Remove(id string) Cart {
	return Cart(ItemSet[models.CartItem](c).Remove(id))
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// SetQuantity changes the quantity of the line for id, flooring at one.
func (c Cart) SetQuantity(id string, quantity int) Cart {
	set := ItemSet[models.CartItem](c)
	item, ok := set.Find(id)
	if !ok {
		return c
	}
	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	return Cart(set.Replace(item))
}

// Step increments or decrements the quantity of id by one.
func (c Cart) Step(id string, increment bool) Cart {
	item, ok := ItemSet[models.CartItem](c).Find(id)
	if !ok {
		return c
	}
	if increment {
		return c.SetQuantity(id, item.Quantity+1)
	}
	return c.SetQuantity(id, item.Quantity-1)
}

func (c Cart) Contains(id string) bool {
	return ItemSet[models.CartItem](c).Contains(id)
}

func (c Cart) Items() []models.CartItem {
	return ItemSet[models.CartItem](c).Items()
}

// Favourites is the wishlist working set.
type Favourites = ItemSet[models.FavouriteItem]
