package domain

import "time"

// CustomerAddress is a stored address snapshot. Business fields are only
// meaningful when Business is set.
type CustomerAddress struct {
	ID                         string `json:"id"`
	FirstName                  string `json:"firstName,omitempty"`
	LastName                   string `json:"lastName,omitempty"`
	Country                    string `json:"country,omitempty"`
	City                       string `json:"city,omitempty"`
	StreetName                 string `json:"streetName,omitempty"`
	PostalCode                 string `json:"postalCode,omitempty"`
	Phone                      string `json:"phone,omitempty"`
	Business                   bool   `json:"business,omitempty"`
	BusinessRegistrationID     string `json:"businessRegistrationId,omitempty"`
	BusinessLegalName          string `json:"businessLegalName,omitempty"`
	BusinessRegistrationNumber string `json:"businessRegistrationNumber,omitempty"`
}

// Customer represents a registered shopper.
type Customer struct {
	ID                       string            `json:"id"`
	Email                    string            `json:"email"`
	PasswordHash             string            `json:"-"`
	FirstName                string            `json:"firstName,omitempty"`
	LastName                 string            `json:"lastName,omitempty"`
	Phone                    string            `json:"phone,omitempty"`
	EmailVerified            bool              `json:"emailVerified"`
	Addresses                []CustomerAddress `json:"addresses,omitempty"`
	DefaultShippingAddressID string            `json:"defaultShippingAddressId,omitempty"`
	DefaultBillingAddressID  string            `json:"defaultBillingAddressId,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
}

// AddressByID finds an address snapshot on the customer, nil when absent.
func (c Customer) AddressByID(id string) *CustomerAddress {
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			return &c.Addresses[i]
		}
	}
	return nil
}
