package customer

import (
	"context"
	"fmt"
	"sync"

	"customer-directory/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type memoryRepo struct {
	mu sync.Mutex

	customers map[string]domain.Customer
	addresses map[string]*collection[domain.Address]
	payments  map[string]*collection[domain.PaymentMethod]

	byUsername map[string]string
	byEmail    map[string]string

	// issued holds every id handed out so none is ever reused, even after deletion.
	issued map[string]struct{}
	newID  func() string
	logger zerolog.Logger
}

// Option customizes the in-memory repository.
type Option func(*memoryRepo)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *memoryRepo) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewMemory returns a Repository that keeps everything in process memory.
func NewMemory(logger *zerolog.Logger, opts ...Option) Repository {
	r := &memoryRepo{
		customers:  make(map[string]domain.Customer),
		addresses:  make(map[string]*collection[domain.Address]),
		payments:   make(map[string]*collection[domain.PaymentMethod]),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		issued:     make(map[string]struct{}),
		newID:      uuid.NewString,
		logger:     zerolog.Nop(),
	}
	if logger != nil {
		r.logger = logger.With().Str("component", "customer_repo").Logger()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// claimID reserves an explicit id or allocates a fresh one. Callers hold r.mu.
func (r *memoryRepo) claimID(explicit string) (string, error) {
	if explicit != "" {
		if _, taken := r.issued[explicit]; taken {
			return "", fmt.Errorf("id %q: %w", explicit, domain.ErrAlreadyExists)
		}
		r.issued[explicit] = struct{}{}
		return explicit, nil
	}
	for {
		id := r.newID()
		if _, taken := r.issued[id]; taken {
			continue
		}
		r.issued[id] = struct{}{}
		return id, nil
	}
}

func (r *memoryRepo) CreateCustomer(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[c.Username]; taken {
		return nil, domain.ErrUsernameExists
	}
	if _, taken := r.byEmail[c.Email]; taken {
		return nil, domain.ErrEmailExists
	}
	id, err := r.claimID(c.ID)
	if err != nil {
		return nil, err
	}
	c.ID = id

	r.customers[id] = c
	r.addresses[id] = newCollection[domain.Address]()
	r.payments[id] = newCollection[domain.PaymentMethod]()
	r.byUsername[c.Username] = id
	r.byEmail[c.Email] = id

	r.logger.Debug().Str("customer_id", id).Str("username", c.Username).Msg("customer created")
	return &c, nil
}

func (r *memoryRepo) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *memoryRepo) UpdateCustomer(_ context.Context, id string, patch domain.CustomerPatch) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if patch.Email != nil {
		if owner, taken := r.byEmail[*patch.Email]; taken && owner != id {
			return nil, domain.ErrEmailExists
		}
	}
	if patch.Username != nil {
		if owner, taken := r.byUsername[*patch.Username]; taken && owner != id {
			return nil, domain.ErrUsernameExists
		}
	}

	delete(r.byEmail, c.Email)
	delete(r.byUsername, c.Username)
	patch.Apply(&c)
	r.byEmail[c.Email] = id
	r.byUsername[c.Username] = id
	r.customers[id] = c

	r.logger.Debug().Str("customer_id", id).Msg("customer updated")
	return &c, nil
}

func (r *memoryRepo) DeleteCustomer(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	delete(r.addresses, id)
	delete(r.payments, id)
	delete(r.byUsername, c.Username)
	delete(r.byEmail, c.Email)

	r.logger.Debug().Str("customer_id", id).Msg("customer deleted")
	return nil
}

func (r *memoryRepo) CreateAddress(_ context.Context, customerID string, a domain.Address) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs, ok := r.addresses[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	id, err := r.claimID(a.ID)
	if err != nil {
		return nil, err
	}
	a.ID = id
	addrs.put(id, a)
	return &a, nil
}

func (r *memoryRepo) ListAddresses(_ context.Context, customerID string, page domain.PageRequest) (domain.Page[domain.Address], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs, ok := r.addresses[customerID]
	if !ok {
		return domain.Page[domain.Address]{}, domain.ErrCustomerNotFound
	}
	return domain.Paginate(addrs.list(), page), nil
}

func (r *memoryRepo) GetAddress(_ context.Context, customerID, addressID string) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs, ok := r.addresses[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	a, ok := addrs.get(addressID)
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	return &a, nil
}

func (r *memoryRepo) ReplaceAddress(_ context.Context, customerID string, a domain.Address) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs, ok := r.addresses[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if _, ok := addrs.get(a.ID); !ok {
		return nil, domain.ErrAddressNotFound
	}
	addrs.put(a.ID, a)
	return &a, nil
}

func (r *memoryRepo) DeleteAddress(_ context.Context, customerID, addressID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs, ok := r.addresses[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	if _, ok := addrs.get(addressID); !ok {
		return domain.ErrAddressNotFound
	}
	for _, pm := range r.payments[customerID].list() {
		if pm.BillingAddressID == addressID {
			return domain.AddressInUse(pm.ID)
		}
	}
	addrs.remove(addressID)
	return nil
}

func (r *memoryRepo) CreatePaymentMethod(_ context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pms, ok := r.payments[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if _, ok := r.addresses[customerID].get(pm.BillingAddressID); !ok {
		return nil, domain.ErrInvalidBilling
	}
	id, err := r.claimID(pm.ID)
	if err != nil {
		return nil, err
	}
	pm.ID = id
	pms.put(id, pm)
	return &pm, nil
}

func (r *memoryRepo) ListPaymentMethods(_ context.Context, customerID string, page domain.PageRequest) (domain.Page[domain.PaymentMethod], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pms, ok := r.payments[customerID]
	if !ok {
		return domain.Page[domain.PaymentMethod]{}, domain.ErrCustomerNotFound
	}
	return domain.Paginate(pms.list(), page), nil
}

func (r *memoryRepo) GetPaymentMethod(_ context.Context, customerID, paymentMethodID string) (*domain.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pms, ok := r.payments[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	pm, ok := pms.get(paymentMethodID)
	if !ok {
		return nil, domain.ErrPaymentMethodNotFound
	}
	return &pm, nil
}

func (r *memoryRepo) ReplacePaymentMethod(_ context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pms, ok := r.payments[customerID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if _, ok := pms.get(pm.ID); !ok {
		return nil, domain.ErrPaymentMethodNotFound
	}
	if _, ok := r.addresses[customerID].get(pm.BillingAddressID); !ok {
		return nil, domain.ErrInvalidBilling
	}
	pms.put(pm.ID, pm)
	return &pm, nil
}

func (r *memoryRepo) DeletePaymentMethod(_ context.Context, customerID, paymentMethodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pms, ok := r.payments[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	if !pms.remove(paymentMethodID) {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}

func (r *memoryRepo) Stats(_ context.Context) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := domain.Stats{Customers: len(r.customers)}
	for _, addrs := range r.addresses {
		stats.Addresses += addrs.len()
	}
	for _, pms := range r.payments {
		stats.PaymentMethods += pms.len()
	}
	return stats, nil
}
