package customer

import (
	"context"

	"customer-directory/internal/domain"
)

// PaymentMethodInput mirrors incoming payment method payloads.
type PaymentMethodInput struct {
	CardholderName   *string `json:"cardholderName"`
	CardNumber       *string `json:"cardNumber"`
	ExpirationDate   *string `json:"expirationDate"`
	BillingAddressID *string `json:"billingAddressId"`
}

func (in PaymentMethodInput) fields() []requiredField {
	return []requiredField{
		{"cardholderName", in.CardholderName},
		{"cardNumber", in.CardNumber},
		{"expirationDate", in.ExpirationDate},
		{"billingAddressId", in.BillingAddressID},
	}
}

func (in PaymentMethodInput) toDomain(id string) domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:               id,
		CardholderName:   deref(in.CardholderName),
		CardNumber:       deref(in.CardNumber),
		ExpirationDate:   deref(in.ExpirationDate),
		BillingAddressID: deref(in.BillingAddressID),
	}
}

// AddPaymentMethod stores a card billed to one of the customer's addresses.
func (s *Service) AddPaymentMethod(ctx context.Context, customerID string, in PaymentMethodInput) (*domain.PaymentMethod, error) {
	if _, err := s.repo.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := requireNonEmpty(in.fields()...); err != nil {
		return nil, err
	}
	return s.repo.CreatePaymentMethod(ctx, customerID, in.toDomain(""))
}

func (s *Service) ListPaymentMethods(ctx context.Context, customerID string, q PageQuery) (domain.Page[domain.PaymentMethod], error) {
	page, err := s.resolvePage(ctx, customerID, q)
	if err != nil {
		return domain.Page[domain.PaymentMethod]{}, err
	}
	return s.repo.ListPaymentMethods(ctx, customerID, page)
}

func (s *Service) GetPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*domain.PaymentMethod, error) {
	return s.repo.GetPaymentMethod(ctx, customerID, paymentMethodID)
}

// UpdatePaymentMethod replaces the payment method and re-checks its billing address.
func (s *Service) UpdatePaymentMethod(ctx context.Context, customerID, paymentMethodID string, in PaymentMethodInput) (*domain.PaymentMethod, error) {
	if _, err := s.repo.GetPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return nil, err
	}
	if err := requirePresent(in.fields()...); err != nil {
		return nil, err
	}
	return s.repo.ReplacePaymentMethod(ctx, customerID, in.toDomain(paymentMethodID))
}

func (s *Service) DeletePaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	return s.repo.DeletePaymentMethod(ctx, customerID, paymentMethodID)
}
