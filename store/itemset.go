// Package store holds the per-session working sets of the storefront:
// cart, favourites, addresses and order history.
//
// Every state type is a value with pure transition methods; a
// transition never mutates its receiver. Store serialises transitions
// for one session.
package store

// Identifiable is anything keyed by a product or record id.
type Identifiable interface {
	ItemID() string
}

// ItemSet is an insertion-ordered list holding at most one entry per id.
type ItemSet[T Identifiable] []T

// Add appends item unless an entry with the same id exists, in which
// case the set is returned unchanged.
func (s ItemSet[T]) Add(item T) ItemSet[T] {
	if s.Contains(item.ItemID()) {
		return s
	}
	out := make(ItemSet[T], len(s), len(s)+1)
	copy(out, s)
	return append(out, item)
}

// Remove drops every entry matching id.
func (s ItemSet[T]) Remove(id string) ItemSet[T] {
	if !s.Contains(id) {
		return s
	}
	out := make(ItemSet[T], 0, len(s))
	for _, item := range s {
		if item.ItemID() != id {
			out = append(out, item)
		}
	}
	return out
}

// Clear returns the empty set.
func (s ItemSet[T]) Clear() ItemSet[T] {
	return ItemSet[T]{}
}

// Replace swaps the entry matching item's id. Unknown ids are ignored.
func (s ItemSet[T]) Replace(item T) ItemSet[T] {
	idx := s.index(item.ItemID())
	if idx < 0 {
		return s
	}
	out := make(ItemSet[T], len(s))
	copy(out, s)
	out[idx] = item
	return out
}

func (s ItemSet[T]) Find(id string) (T, bool) {
	if idx := s.index(id); idx >= 0 {
		return s[idx], true
	}
	var zero T
	return zero, false
}

func (s ItemSet[T]) Contains(id string) bool {
	return s.index(id) >= 0
}

func (s ItemSet[T]) index(id string) int {
	for i, item := range s {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// Items returns a copy of the entries.
func (s ItemSet[T]) Items() []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
