package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"customer-directory/internal/domain"
	custrepo "customer-directory/internal/repository/customer"
	"gopkg.in/yaml.v3"
)

// Customer is one fixture customer with the records it owns.
type Customer struct {
	ID             string          `yaml:"customerId"`
	Username       string          `yaml:"username"`
	Email          string          `yaml:"email"`
	FirstName      string          `yaml:"firstName"`
	LastName       string          `yaml:"lastName"`
	Addresses      []Address       `yaml:"addresses"`
	PaymentMethods []PaymentMethod `yaml:"paymentMethods"`
}

type Address struct {
	StreetAddress string `yaml:"streetAddress"`
	City          string `yaml:"city"`
	State         string `yaml:"state"`
	ZipCode       string `yaml:"zipCode"`
	Country       string `yaml:"country"`
}

// PaymentMethod references its billing address by position in the owner's Addresses.
type PaymentMethod struct {
	CardholderName      string `yaml:"cardholderName"`
	CardNumber          string `yaml:"cardNumber"`
	ExpirationDate      string `yaml:"expirationDate"`
	BillingAddressIndex int    `yaml:"billingAddressIndex"`
}

type file struct {
	Customers []Customer `yaml:"customers"`
}

// Defaults is the fixture set loaded when no fixture file is configured.
func Defaults() []Customer {
	return []Customer{
		{
			ID:        "1234",
			Username:  "janedoe",
			Email:     "jane.doe@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Addresses: []Address{
				{StreetAddress: "123 Main St", City: "Anytown", State: "CA", ZipCode: "90210", Country: "USA"},
				{StreetAddress: "456 Oak Ave", City: "Otherville", State: "NY", ZipCode: "10001", Country: "USA"},
			},
			PaymentMethods: []PaymentMethod{
				{CardholderName: "Jane Doe", CardNumber: "**** **** **** 1234", ExpirationDate: "2025-12-31", BillingAddressIndex: 1},
			},
		},
		{
			Username:  "bobsmith",
			Email:     "bob.smith@example.com",
			FirstName: "Bob",
			LastName:  "Smith",
		},
	}
}

// LoadFile reads fixtures from a YAML document with a top-level "customers" list.
func LoadFile(path string) ([]Customer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures %s: %w", path, err)
	}
	return f.Customers, nil
}

// Apply inserts fixtures into the repository. now stamps every registration date.
func Apply(ctx context.Context, repo custrepo.Repository, fixtures []Customer, now time.Time) error {
	for _, fc := range fixtures {
		if err := applyCustomer(ctx, repo, fc, now); err != nil {
			return fmt.Errorf("seed customer %s: %w", fc.Username, err)
		}
	}
	return nil
}

func applyCustomer(ctx context.Context, repo custrepo.Repository, fc Customer, now time.Time) error {
	c, err := repo.CreateCustomer(ctx, domain.Customer{
		ID:               fc.ID,
		Username:         fc.Username,
		Email:            fc.Email,
		FirstName:        fc.FirstName,
		LastName:         fc.LastName,
		RegistrationDate: now.UTC(),
	})
	if err != nil {
		return err
	}

	addressIDs := make([]string, 0, len(fc.Addresses))
	for _, a := range fc.Addresses {
		created, err := repo.CreateAddress(ctx, c.ID, domain.Address{
			StreetAddress: a.StreetAddress,
			City:          a.City,
			State:         a.State,
			ZipCode:       a.ZipCode,
			Country:       a.Country,
		})
		if err != nil {
			return fmt.Errorf("address %s: %w", a.StreetAddress, err)
		}
		addressIDs = append(addressIDs, created.ID)
	}

	for _, pm := range fc.PaymentMethods {
		if pm.BillingAddressIndex < 0 || pm.BillingAddressIndex >= len(addressIDs) {
			return fmt.Errorf("payment method %s: billing address index %d out of range", pm.CardholderName, pm.BillingAddressIndex)
		}
		_, err := repo.CreatePaymentMethod(ctx, c.ID, domain.PaymentMethod{
			CardholderName:   pm.CardholderName,
			CardNumber:       pm.CardNumber,
			ExpirationDate:   pm.ExpirationDate,
			BillingAddressID: addressIDs[pm.BillingAddressIndex],
		})
		if err != nil {
			return fmt.Errorf("payment method %s: %w", pm.CardholderName, err)
		}
	}
	return nil
}
