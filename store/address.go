package store

import "github.com/junaidrashid-git/revista-gateway/models"

// AddressBook is the address list plus the selected address id. An
// empty SelectedID means nothing is selected.
type AddressBook struct {
	Addresses  []models.Address `json:"addresses"`
	SelectedID string           `json:"selected_id"`
}

// Add appends addr. The first address of an empty book becomes selected.
func (b AddressBook) Add(addr models.Address) AddressBook {
	out := AddressBook{
		Addresses:  append(b.copyAddresses(), addr),
		SelectedID: b.SelectedID,
	}
	if len(out.Addresses) == 1 {
		out.SelectedID = addr.ID
	}
	return out
}

// Remove drops the address with id. When it was selected, the selection
// moves to the first remaining address or is cleared.
func (b AddressBook) Remove(id string) AddressBook {
	out := AddressBook{
		Addresses:  make([]models.Address, 0, len(b.Addresses)),
		SelectedID: b.SelectedID,
	}
	for _, a := range b.Addresses {
		if a.ID != id {
			out.Addresses = append(out.Addresses, a)
		}
	}
	if b.SelectedID == id {
		out.SelectedID = ""
		if len(out.Addresses) > 0 {
			out.SelectedID = out.Addresses[0].ID
		}
	}
	return out
}

// Select sets the selection without checking that id exists.
func (b AddressBook) Select(id string) AddressBook {
	return AddressBook{
		Addresses:  b.copyAddresses(),
		SelectedID: id,
	}
}

// Update replaces the address sharing addr's id. Unknown ids are ignored.
func (b AddressBook) Update(addr models.Address) AddressBook {
	out := AddressBook{
		Addresses:  b.copyAddresses(),
		SelectedID: b.SelectedID,
	}
	for i := range out.Addresses {
		if out.Addresses[i].ID == addr.ID {
			out.Addresses[i] = addr
			break
		}
	}
	return out
}

// Reset replaces the list with addrs as fetched from the API. The
// selection survives when its id is still present; otherwise it falls
// back to the first address.
func (b AddressBook) Reset(addrs []models.Address) AddressBook {
	out := AddressBook{Addresses: make([]models.Address, len(addrs))}
	copy(out.Addresses, addrs)
	if _, ok := out.Find(b.SelectedID); ok {
		out.SelectedID = b.SelectedID
	} else if len(out.Addresses) > 0 {
		out.SelectedID = out.Addresses[0].ID
	}
	return out
}

func (b AddressBook) Find(id string) (models.Address, bool) {
	if id == "" {
		return models.Address{}, false
	}
	for _, a := range b.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return models.Address{}, false
}

// Selected returns the selected address, if it exists in the book.
func (b AddressBook) Selected() (models.Address, bool) {
	return b.Find(b.SelectedID)
}

func (b AddressBook) copyAddresses() []models.Address {
	out := make([]models.Address, len(b.Addresses), len(b.Addresses)+1)
	copy(out, b.Addresses)
	return out
}
