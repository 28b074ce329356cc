package domain

import "time"

// Customer is a registered shopper. Password is never part of the record.
type Customer struct {
	ID               string    `json:"customerId"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// CustomerPatch carries the fields of a partial customer update. Nil means untouched.
type CustomerPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// Apply copies the present fields onto c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Username != nil {
		c.Username = *p.Username
	}
}

// Address is a postal address owned by exactly one customer.
type Address struct {
	ID            string `json:"addressId"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
}

// PaymentMethod is a card on file. BillingAddressID points at an address of the same customer.
type PaymentMethod struct {
	ID               string `json:"paymentMethodId"`
	CardholderName   string `json:"cardholderName"`
	CardNumber       string `json:"cardNumber"`
	ExpirationDate   string `json:"expirationDate"`
	BillingAddressID string `json:"billingAddressId"`
}

// Stats summarizes the directory contents.
type Stats struct {
	Customers      int
	Addresses      int
	PaymentMethods int
}
