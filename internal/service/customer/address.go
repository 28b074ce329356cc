package customer

import (
	"context"

	"customer-directory/internal/domain"
)

// AddressInput mirrors incoming address payloads. Nil marks an absent key.
type AddressInput struct {
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
	Country       *string `json:"country"`
}

func (in AddressInput) fields() []requiredField {
	return []requiredField{
		{"streetAddress", in.StreetAddress},
		{"city", in.City},
		{"state", in.State},
		{"zipCode", in.ZipCode},
		{"country", in.Country},
	}
}

func (in AddressInput) toDomain(id string) domain.Address {
	return domain.Address{
		ID:            id,
		StreetAddress: deref(in.StreetAddress),
		City:          deref(in.City),
		State:         deref(in.State),
		ZipCode:       deref(in.ZipCode),
		Country:       deref(in.Country),
	}
}

// AddAddress attaches a new address to the customer. Every field must be non-empty.
func (s *Service) AddAddress(ctx context.Context, customerID string, in AddressInput) (*domain.Address, error) {
	if _, err := s.repo.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := requireNonEmpty(in.fields()...); err != nil {
		return nil, err
	}
	return s.repo.CreateAddress(ctx, customerID, in.toDomain(""))
}

// ListAddresses returns one page of the customer's addresses in insertion order.
func (s *Service) ListAddresses(ctx context.Context, customerID string, q PageQuery) (domain.Page[domain.Address], error) {
	page, err := s.resolvePage(ctx, customerID, q)
	if err != nil {
		return domain.Page[domain.Address]{}, err
	}
	return s.repo.ListAddresses(ctx, customerID, page)
}

func (s *Service) GetAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error) {
	return s.repo.GetAddress(ctx, customerID, addressID)
}

// UpdateAddress replaces the address wholesale. Every key must be present; the id comes from the path.
func (s *Service) UpdateAddress(ctx context.Context, customerID, addressID string, in AddressInput) (*domain.Address, error) {
	if _, err := s.repo.GetAddress(ctx, customerID, addressID); err != nil {
		return nil, err
	}
	if err := requirePresent(in.fields()...); err != nil {
		return nil, err
	}
	return s.repo.ReplaceAddress(ctx, customerID, in.toDomain(addressID))
}

// DeleteAddress fails with ADDRESS_IN_USE while any payment method bills to it.
func (s *Service) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	return s.repo.DeleteAddress(ctx, customerID, addressID)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
