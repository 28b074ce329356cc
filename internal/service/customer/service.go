package customer

import (
	"context"
	"strconv"
	"strings"
	"time"

	"customer-directory/internal/domain"
	custrepo "customer-directory/internal/repository/customer"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service validates directory requests and applies them to the repository.
type Service struct {
	repo            custrepo.Repository
	now             func() time.Time
	defaultPageSize int
	maxPageSize     int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for registration dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPageSizes sets the page size used when a request omits one, and the upper bound.
func WithPageSizes(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultPageSize = def
		}
		if max > 0 {
			s.maxPageSize = max
		}
		if s.defaultPageSize > s.maxPageSize {
			s.defaultPageSize = s.maxPageSize
		}
	}
}

// New creates a Service with sane defaults.
func New(repo custrepo.Repository, opts ...Option) *Service {
	s := &Service{
		repo:            repo,
		now:             time.Now,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCustomerInput captures fields expected by the create endpoint.
type CreateCustomerInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateCustomerInput is a partial update. Unknown fields in the body are ignored.
type UpdateCustomerInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
}

// PageQuery holds the raw pagination query parameters.
type PageQuery struct {
	Size  string
	Token string
}

type requiredField struct {
	name  string
	value *string
}

// requireNonEmpty fails on the first field that is absent or blank.
func requireNonEmpty(fields ...requiredField) error {
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			return domain.MissingField(f.name)
		}
	}
	return nil
}

// requirePresent fails on the first absent field. Empty strings are accepted.
func requirePresent(fields ...requiredField) error {
	for _, f := range fields {
		if f.value == nil {
			return domain.MissingField(f.name)
		}
	}
	return nil
}

// CreateCustomer registers a new customer. The password is accepted but never stored.
func (s *Service) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error) {
	if err := requireNonEmpty(
		requiredField{"username", &in.Username},
		requiredField{"password", &in.Password},
		requiredField{"email", &in.Email},
		requiredField{"firstName", &in.FirstName},
		requiredField{"lastName", &in.LastName},
	); err != nil {
		return nil, err
	}
	return s.repo.CreateCustomer(ctx, domain.Customer{
		Username:         in.Username,
		Email:            in.Email,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		RegistrationDate: s.now().UTC(),
	})
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// UpdateCustomer applies only the fields present in the input.
func (s *Service) UpdateCustomer(ctx context.Context, id string, in UpdateCustomerInput) (*domain.Customer, error) {
	return s.repo.UpdateCustomer(ctx, id, domain.CustomerPatch{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
}

// DeleteCustomer removes the customer together with its addresses and payment methods.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// Health reports directory totals.
func (s *Service) Health(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx)
}

// pageRequest parses the query. A missing or unusable size falls back to the default.
func (s *Service) pageRequest(q PageQuery) (domain.PageRequest, error) {
	token, err := domain.ParsePageToken(strings.TrimSpace(q.Token))
	if err != nil {
		return domain.PageRequest{}, err
	}
	size := s.defaultPageSize
	if n, err := strconv.Atoi(strings.TrimSpace(q.Size)); err == nil && n > 0 {
		size = n
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}
	return domain.PageRequest{Token: token, Size: size}, nil
}

// resolvePage reports a missing customer ahead of a malformed token.
func (s *Service) resolvePage(ctx context.Context, customerID string, q PageQuery) (domain.PageRequest, error) {
	page, err := s.pageRequest(q)
	if err != nil {
		if _, cerr := s.repo.GetCustomer(ctx, customerID); cerr != nil {
			return domain.PageRequest{}, cerr
		}
		return domain.PageRequest{}, err
	}
	return page, nil
}
