package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"customer-directory/internal/domain"
	"customer-directory/internal/httpserver"
	custrepo "customer-directory/internal/repository/customer"
	"customer-directory/internal/seed"
	customersvc "customer-directory/internal/service/customer"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := custrepo.NewMemory(nil)
	if err := seed.Apply(context.Background(), repo, seed.Defaults(), time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	handler, err := httpserver.NewHandler(zerolog.Nop(), httpserver.Deps{CustomerSvc: customersvc.New(repo)})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CreatesCustomerTree(t *testing.T) {
	srv := newTestServer(t)
	cl := New(srv.URL+"/", srv.Client())
	ctx := context.Background()

	c, err := cl.CreateCustomer(ctx, domain.Customer{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "L",
	}, "pw")
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	addr, err := cl.AddAddress(ctx, c.ID, domain.Address{
		StreetAddress: "1 Rabbit Hole", City: "W", State: "OX", ZipCode: "1", Country: "UK",
	})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}
	pm, err := cl.AddPaymentMethod(ctx, c.ID, domain.PaymentMethod{
		CardholderName: "Alice", CardNumber: "4111", ExpirationDate: "2030-01", BillingAddressID: addr.ID,
	})
	if err != nil {
		t.Fatalf("add payment method: %v", err)
	}
	if pm.ID == "" || pm.BillingAddressID != addr.ID {
		t.Fatalf("unexpected payment method %+v", pm)
	}
}

func TestClient_DecodesAPIErrors(t *testing.T) {
	srv := newTestServer(t)
	cl := New(srv.URL, nil)

	_, err := cl.CreateCustomer(context.Background(), domain.Customer{
		Username: "janedoe", Email: "x@example.com", FirstName: "X", LastName: "Y",
	}, "pw")
	if !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	_, err = cl.AddAddress(context.Background(), "missing", domain.Address{})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestClient_NonAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).CreateCustomer(context.Background(), domain.Customer{}, "")
	var apiErr *domain.Error
	if err == nil || errors.As(err, &apiErr) {
		t.Fatalf("expected plain error, got %v", err)
	}
}
