package models

// Address is a customer shipping/billing address. The id is assigned by
// the Revista API.
type Address struct {
	ID          string `json:"id"`
	Name        string `json:"contact_person_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Postcode    string `json:"zip"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	BillingType string `json:"address_type"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
}

// AddressInput is the body of the address form.
type AddressInput struct {
	Name        string `json:"contact_person_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	BillingType string `json:"address_type" validate:"required"`
	Country     string `json:"country" validate:"required"`
	City        string `json:"city" validate:"required"`
	Postcode    string `json:"zip" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Latitude    string `json:"latitude" validate:"required"`
	Longitude   string `json:"longitude" validate:"required"`
}

// ToAddress converts the form into an address record with the given id.
func (in AddressInput) ToAddress(id string) Address {
	return Address{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Postcode:    in.Postcode,
		Phone:       in.Phone,
		Country:     in.Country,
		BillingType: in.BillingType,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput is the body of POST /auth/register.
type SignupInput struct {
	FirstName   string `json:"first_name" validate:"required,alpha,min=2"`
	LastName    string `json:"last_name" validate:"required,alpha,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"required,digits=10"`
}
