package store

import (
	"sync"
	"time"

	"github.com/junaidrashid-git/revista-gateway/models"
)

// Store is the state container of one session. Each method is one
// dispatched transition; dispatches are serialised.
type Store struct {
	mu         sync.RWMutex
	cart       Cart
	favourites Favourites
	addresses  AddressBook
	orders     Orders
	cartSynced bool
	now        func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// ─────────── Cart ───────────

func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Items()
}

// AddCartItem reports whether the item was added; false means the
// product was already in the cart.
func (s *Store) AddCartItem(item models.CartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart.Contains(item.ID) {
		return false
	}
	s.cart = s.cart.Add(item)
	return true
}

func (s *Store) RemoveCartItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := s.cart.Contains(id)
	s.cart = s.cart.Remove(id)
	return found
}

func (s *Store) SetCartQuantity(id string, quantity int) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.SetQuantity(id, quantity)
	return ItemSet[models.CartItem](s.cart).Find(id)
}

func (s *Store) StepCartQuantity(id string, increment bool) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Step(id, increment)
	return ItemSet[models.CartItem](s.cart).Find(id)
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Clear()
}

func (s *Store) CartItem(id string) (models.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ItemSet[models.CartItem](s.cart).Find(id)
}

// CartSynced reports whether the cart was loaded from the remote cart
// since the last reset. Quantity edits after a sync live only here.
func (s *Store) CartSynced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartSynced
}

// SyncCart replaces the cart with items loaded from the remote cart,
// dropping duplicate products. Once the cart has been synced, products
// still in the cart keep their local quantity, since quantity edits are
// never sent to the remote cart.
func (s *Store) SyncCart(items []models.CartItem) []models.CartItem {
	var next Cart
	for _, item := range items {
		next = next.Add(item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cartSynced {
		for _, local := range s.cart {
			next = next.SetQuantity(local.ID, local.Quantity)
		}
	}
	s.cart = next
	s.cartSynced = true
	return s.cart.Items()
}

// ─────────── Favourites ───────────

func (s *Store) Favourites() []models.FavouriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favourites.Items()
}

func (s *Store) AddFavourite(item models.FavouriteItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favourites.Contains(item.ID) {
		return false
	}
	s.favourites = s.favourites.Add(item)
	return true
}

func (s *Store) RemoveFavourite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := s.favourites.Contains(id)
	s.favourites = s.favourites.Remove(id)
	return found
}

func (s *Store) ClearFavourites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favourites = s.favourites.Clear()
}

func (s *Store) Favourite(id string) (models.FavouriteItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favourites.Find(id)
}

// SyncFavourites replaces the favourites with the remote wishlist.
func (s *Store) SyncFavourites(items []models.FavouriteItem) []models.FavouriteItem {
	var next Favourites
	for _, item := range items {
		next = next.Add(item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favourites = next
	return s.favourites.Items()
}

// ─────────── Addresses ───────────

func (s *Store) Addresses() AddressBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AddressBook{
		Addresses:  s.addresses.copyAddresses(),
		SelectedID: s.addresses.SelectedID,
	}
}

func (s *Store) AddAddress(addr models.Address) AddressBook {
	return s.dispatchAddress(func(b AddressBook) AddressBook { return b.Add(addr) })
}

func (s *Store) RemoveAddress(id string) AddressBook {
	return s.dispatchAddress(func(b AddressBook) AddressBook { return b.Remove(id) })
}

func (s *Store) SelectAddress(id string) AddressBook {
	return s.dispatchAddress(func(b AddressBook) AddressBook { return b.Select(id) })
}

func (s *Store) UpdateAddress(addr models.Address) AddressBook {
	return s.dispatchAddress(func(b AddressBook) AddressBook { return b.Update(addr) })
}

func (s *Store) ResetAddresses(addrs []models.Address) AddressBook {
	return s.dispatchAddress(func(b AddressBook) AddressBook { return b.Reset(addrs) })
}

func (s *Store) dispatchAddress(fn func(AddressBook) AddressBook) AddressBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses = fn(s.addresses)
	return s.addresses
}

// ─────────── Orders ───────────

func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// PlaceOrder appends an order for items to the history and returns it.
func (s *Store) PlaceOrder(items []models.CartItem, addr *models.Address, method models.PaymentMethod) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := NewOrder(items, addr, method, s.now())
	s.orders = s.orders.Append(order)
	return order
}

// Checkout turns the whole cart into an order and empties the cart in
// one transition. It reports false and changes nothing when the cart is
// empty.
func (s *Store) Checkout(addr *models.Address, method models.PaymentMethod) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return models.Order{}, false
	}
	order := NewOrder(s.cart.Items(), addr, method, s.now())
	s.orders = s.orders.Append(order)
	s.cart = s.cart.Clear()
	return order, true
}

// Reset drops cart, favourites and addresses. The order history is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Clear()
	s.cartSynced = false
	s.favourites = s.favourites.Clear()
	s.addresses = AddressBook{}
}

// Counts returns the sizes of cart, favourites and orders.
func (s *Store) Counts() (cart, favourites, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cart), len(s.favourites), len(s.orders)
}
