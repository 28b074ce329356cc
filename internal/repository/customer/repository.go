package customer

import (
	"context"

	"customer-directory/internal/domain"
)

// Repository stores customers together with the addresses and payment methods they own.
// Implementations enforce uniqueness, ownership and billing references atomically.
type Repository interface {
	CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch domain.CustomerPatch) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateAddress(ctx context.Context, customerID string, a domain.Address) (*domain.Address, error)
	ListAddresses(ctx context.Context, customerID string, page domain.PageRequest) (domain.Page[domain.Address], error)
	GetAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error)
	ReplaceAddress(ctx context.Context, customerID string, a domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID string) error

	CreatePaymentMethod(ctx context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, customerID string, page domain.PageRequest) (domain.Page[domain.PaymentMethod], error)
	GetPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*domain.PaymentMethod, error)
	ReplacePaymentMethod(ctx context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, customerID, paymentMethodID string) error

	Stats(ctx context.Context) (domain.Stats, error)
}
