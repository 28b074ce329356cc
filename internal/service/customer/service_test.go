package customer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"customer-directory/internal/domain"
	custrepo "customer-directory/internal/repository/customer"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))

func newTestService(t *testing.T) *Service {
	t.Helper()
	n := 0
	repo := custrepo.NewMemory(nil, custrepo.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	return New(repo, WithClock(func() time.Time { return fixedNow }), WithPageSizes(2, 5))
}

func strPtr(v string) *string {
	return &v
}

func validCustomer(username, email string) CreateCustomerInput {
	return CreateCustomerInput{
		Username:  username,
		Password:  "secret",
		Email:     email,
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func validAddress() AddressInput {
	return AddressInput{
		StreetAddress: strPtr("123 Main St"),
		City:          strPtr("Anytown"),
		State:         strPtr("CA"),
		ZipCode:       strPtr("90210"),
		Country:       strPtr("USA"),
	}
}

func TestCreateCustomer_StampsRegistrationDateInUTC(t *testing.T) {
	svc := newTestService(t)
	c, err := svc.CreateCustomer(context.Background(), validCustomer("janedoe", "jane@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !c.RegistrationDate.Equal(fixedNow) || c.RegistrationDate.Location() != time.UTC {
		t.Fatalf("unexpected registration date %v", c.RegistrationDate)
	}
}

func TestCreateCustomer_MissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CreateCustomerInput)
	}{
		{"username", func(in *CreateCustomerInput) { in.Username = "" }},
		{"password", func(in *CreateCustomerInput) { in.Password = "" }},
		{"email", func(in *CreateCustomerInput) { in.Email = "" }},
		{"firstName", func(in *CreateCustomerInput) { in.FirstName = "" }},
		{"lastName", func(in *CreateCustomerInput) { in.LastName = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			svc := newTestService(t)
			in := validCustomer("janedoe", "jane@example.com")
			tc.mutate(&in)

			_, err := svc.CreateCustomer(context.Background(), in)
			var derr *domain.Error
			if !errors.As(err, &derr) || derr.Code != domain.CodeMissingField || derr.Field != tc.field {
				t.Fatalf("expected MISSING_FIELD %s, got %v", tc.field, err)
			}
			stats, _ := svc.Health(context.Background())
			if stats.Customers != 0 {
				t.Fatalf("store changed on validation failure: %+v", stats)
			}
		})
	}
}

func TestUpdateCustomer_OnlyPresentFieldsApplied(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))

	got, err := svc.UpdateCustomer(ctx, c.ID, UpdateCustomerInput{FirstName: strPtr("Janet")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FirstName != "Janet" || got.LastName != "Doe" || got.Email != "jane@example.com" {
		t.Fatalf("unexpected customer %+v", got)
	}
	if !got.RegistrationDate.Equal(c.RegistrationDate) || got.ID != c.ID {
		t.Fatalf("identity fields changed: %+v", got)
	}

	if _, err := svc.UpdateCustomer(ctx, "missing", UpdateCustomerInput{}); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestAddAddress_CustomerCheckedBeforeFields(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddAddress(context.Background(), "missing", AddressInput{})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestAddAddress_RejectsEmptyValues(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))

	in := validAddress()
	in.ZipCode = strPtr("")
	_, err := svc.AddAddress(ctx, c.ID, in)
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Field != "zipCode" {
		t.Fatalf("expected missing zipCode, got %v", err)
	}
}

func TestUpdateAddress_RequiresPresenceNotContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))
	addr, err := svc.AddAddress(ctx, c.ID, validAddress())
	if err != nil {
		t.Fatalf("add address: %v", err)
	}

	partial := validAddress()
	partial.Country = nil
	_, err = svc.UpdateAddress(ctx, c.ID, addr.ID, partial)
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Field != "country" {
		t.Fatalf("expected missing country, got %v", err)
	}

	blank := validAddress()
	blank.State = strPtr("")
	got, err := svc.UpdateAddress(ctx, c.ID, addr.ID, blank)
	if err != nil {
		t.Fatalf("update with empty value: %v", err)
	}
	if got.ID != addr.ID || got.State != "" {
		t.Fatalf("unexpected address %+v", got)
	}

	if _, err := svc.UpdateAddress(ctx, c.ID, "missing", validAddress()); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestListAddresses_PaginatesWithDefaultSize(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))
	var want []string
	for i := 0; i < 5; i++ {
		a, err := svc.AddAddress(ctx, c.ID, validAddress())
		if err != nil {
			t.Fatalf("add address: %v", err)
		}
		want = append(want, a.ID)
	}

	var (
		got   []string
		token string
	)
	for {
		page, err := svc.ListAddresses(ctx, c.ID, PageQuery{Token: token})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(page.Items) > 2 {
			t.Fatalf("page larger than default size: %d", len(page.Items))
		}
		for _, a := range page.Items {
			got = append(got, a.ID)
		}
		if page.Next == nil {
			break
		}
		token = page.Next.String()
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListAddresses_PageSizeHandling(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))
	for i := 0; i < 7; i++ {
		if _, err := svc.AddAddress(ctx, c.ID, validAddress()); err != nil {
			t.Fatalf("add address: %v", err)
		}
	}

	cases := []struct {
		size string
		want int
	}{
		{"", 2},
		{"abc", 2},
		{"0", 2},
		{"-3", 2},
		{"3", 3},
		{"50", 5},
	}
	for _, tc := range cases {
		page, err := svc.ListAddresses(ctx, c.ID, PageQuery{Size: tc.size})
		if err != nil {
			t.Fatalf("size %q: %v", tc.size, err)
		}
		if len(page.Items) != tc.want {
			t.Fatalf("size %q: expected %d items, got %d", tc.size, tc.want, len(page.Items))
		}
	}
}

func TestListAddresses_ErrorPrecedence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))

	if _, err := svc.ListAddresses(ctx, "missing", PageQuery{Token: "bad"}); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound first, got %v", err)
	}
	if _, err := svc.ListAddresses(ctx, c.ID, PageQuery{Token: "-1"}); !errors.Is(err, domain.ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken, got %v", err)
	}
}

func TestPaymentMethods_BillingValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	jane, _ := svc.CreateCustomer(ctx, validCustomer("janedoe", "jane@example.com"))
	bob, _ := svc.CreateCustomer(ctx, validCustomer("bobsmith", "bob@example.com"))
	janeAddr, _ := svc.AddAddress(ctx, jane.ID, validAddress())
	bobAddr, _ := svc.AddAddress(ctx, bob.ID, validAddress())

	in := PaymentMethodInput{
		CardholderName:   strPtr("Jane Doe"),
		CardNumber:       strPtr("4111 1111 1111 1111"),
		ExpirationDate:   strPtr("2030-12-31"),
		BillingAddressID: strPtr(bobAddr.ID),
	}
	if _, err := svc.AddPaymentMethod(ctx, jane.ID, in); !errors.Is(err, domain.ErrInvalidBilling) {
		t.Fatalf("expected ErrInvalidBilling, got %v", err)
	}

	in.BillingAddressID = strPtr(janeAddr.ID)
	pm, err := svc.AddPaymentMethod(ctx, jane.ID, in)
	if err != nil {
		t.Fatalf("add payment method: %v", err)
	}
	if pm.CardNumber != "4111 1111 1111 1111" {
		t.Fatalf("card number must be stored as given, got %q", pm.CardNumber)
	}

	in.BillingAddressID = strPtr("gone")
	if _, err := svc.UpdatePaymentMethod(ctx, jane.ID, pm.ID, in); !errors.Is(err, domain.ErrInvalidBilling) {
		t.Fatalf("expected ErrInvalidBilling on update, got %v", err)
	}

	in.BillingAddressID = nil
	_, err = svc.UpdatePaymentMethod(ctx, jane.ID, pm.ID, in)
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Field != "billingAddressId" {
		t.Fatalf("expected missing billingAddressId, got %v", err)
	}

	if err := svc.DeletePaymentMethod(ctx, jane.ID, pm.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetPaymentMethod(ctx, jane.ID, pm.ID); !errors.Is(err, domain.ErrPaymentMethodNotFound) {
		t.Fatalf("expected ErrPaymentMethodNotFound, got %v", err)
	}
}

func TestWithPageSizes_ClampsDefaultToMax(t *testing.T) {
	svc := New(nil, WithPageSizes(50, 20))
	if svc.defaultPageSize != 20 || svc.maxPageSize != 20 {
		t.Fatalf("unexpected sizes default=%d max=%d", svc.defaultPageSize, svc.maxPageSize)
	}
}
