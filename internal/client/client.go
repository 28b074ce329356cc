package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"customer-directory/internal/domain"
)

const maxErrorBodyBytes = 1 << 20

// Client talks to a running customer directory over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL. A nil httpClient gets a 10s timeout client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type createCustomerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type addressRequest struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
}

type paymentMethodRequest struct {
	CardholderName   string `json:"cardholderName"`
	CardNumber       string `json:"cardNumber"`
	ExpirationDate   string `json:"expirationDate"`
	BillingAddressID string `json:"billingAddressId"`
}

func (c *Client) CreateCustomer(ctx context.Context, customer domain.Customer, password string) (*domain.Customer, error) {
	var out domain.Customer
	err := c.do(ctx, http.MethodPost, "/customers", createCustomerRequest{
		Username:  customer.Username,
		Password:  password,
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddAddress(ctx context.Context, customerID string, a domain.Address) (*domain.Address, error) {
	var out domain.Address
	err := c.do(ctx, http.MethodPost, "/customers/"+url.PathEscape(customerID)+"/addresses", addressRequest{
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		ZipCode:       a.ZipCode,
		Country:       a.Country,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddPaymentMethod(ctx context.Context, customerID string, pm domain.PaymentMethod) (*domain.PaymentMethod, error) {
	var out domain.PaymentMethod
	err := c.do(ctx, http.MethodPost, "/customers/"+url.PathEscape(customerID)+"/paymentMethods", paymentMethodRequest{
		CardholderName:   pm.CardholderName,
		CardNumber:       pm.CardNumber,
		ExpirationDate:   pm.ExpirationDate,
		BillingAddressID: pm.BillingAddressID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON and decodes a 2xx response into out. Error responses
// carrying the directory error shape are returned as *domain.Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		var apiErr domain.Error
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Code != "" {
			return &apiErr
		}
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
