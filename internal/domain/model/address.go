package model

import "fmt"

// AddressType distinguishes saved locations.
type AddressType string

const (
	AddressTypeHome AddressType = "home"
	AddressTypeWork AddressType = "work"
)

// Title returns the display title derived from the address type.
func (t AddressType) Title() string {
	switch t {
	case AddressTypeHome:
		return "المنزل"
	case AddressTypeWork:
		return "العمل"
	default:
		return string(t)
	}
}

// Address is a saved delivery or work location.
type Address struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	City     string      `json:"city"`
	District string      `json:"district"`
	Type     AddressType `json:"type"`
	Address  string      `json:"address"`
}

// AddressFields is the form payload used to create or edit an address.
type AddressFields struct {
	City     string      `json:"city"`
	District string      `json:"district"`
	Type     AddressType `json:"type"`
	Address  string      `json:"address,omitempty"`
}

// Compose builds the display string when the form did not supply one.
func (f AddressFields) Compose() string {
	if f.Address != "" {
		return f.Address
	}
	return fmt.Sprintf("%s، %s", f.District, f.City)
}
