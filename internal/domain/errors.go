package domain

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure on the wire.
type Code string

const (
	CodeInvalidContentType    Code = "INVALID_CONTENT_TYPE"
	CodeMissingField          Code = "MISSING_FIELD"
	CodeUsernameExists        Code = "USERNAME_EXISTS"
	CodeEmailExists           Code = "EMAIL_EXISTS"
	CodeCustomerNotFound      Code = "CUSTOMER_NOT_FOUND"
	CodeAddressNotFound       Code = "ADDRESS_NOT_FOUND"
	CodePaymentMethodNotFound Code = "PAYMENT_METHOD_NOT_FOUND"
	CodeEmptyRequestBody      Code = "EMPTY_REQUEST_BODY"
	CodeInvalidPageToken      Code = "INVALID_PAGE_TOKEN"
	CodeAddressInUse          Code = "ADDRESS_IN_USE"
	CodeInvalidBillingAddress Code = "INVALID_BILLING_ADDRESS"
	CodeInternal              Code = "INTERNAL_ERROR"
)

// Error is a request-local failure with a stable code.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error with the same code, so errors.Is works against the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	// ErrCustomerNotFound indicates the customer in the path does not exist.
	ErrCustomerNotFound      = &Error{Code: CodeCustomerNotFound, Message: "Customer not found"}
	// ErrAddressNotFound indicates the address does not exist for that customer.
	ErrAddressNotFound       = &Error{Code: CodeAddressNotFound, Message: "Address not found"}
	// ErrPaymentMethodNotFound indicates the payment method does not exist for that customer.
	ErrPaymentMethodNotFound = &Error{Code: CodePaymentMethodNotFound, Message: "Payment method not found"}
	ErrUsernameExists        = &Error{Code: CodeUsernameExists, Message: "Username already exists", Field: "username"}
	ErrEmailExists           = &Error{Code: CodeEmailExists, Message: "Email already exists", Field: "email"}
	ErrInvalidBilling        = &Error{Code: CodeInvalidBillingAddress, Message: "Billing address ID not found for this customer.", Field: "billingAddressId"}
	ErrInvalidPageToken      = &Error{Code: CodeInvalidPageToken, Message: "Invalid pageToken format."}
	ErrInvalidContentType    = &Error{Code: CodeInvalidContentType, Message: "Request must be application/json"}
	ErrEmptyRequestBody      = &Error{Code: CodeEmptyRequestBody, Message: "Request body cannot be empty for update"}
	ErrMissingField          = &Error{Code: CodeMissingField, Message: "Missing required field"}
	ErrAddressInUse          = &Error{Code: CodeAddressInUse, Message: "Address is in use"}
)

// ErrAlreadyExists indicates an explicitly supplied identifier was issued before.
var ErrAlreadyExists = errors.New("already exists")

// MissingField reports an absent or empty required field.
func MissingField(field string) *Error {
	return &Error{Code: CodeMissingField, Message: "Missing required field: " + field, Field: field}
}

// AddressInUse reports that a payment method still bills to the address.
func AddressInUse(paymentMethodID string) *Error {
	return &Error{
		Code:    CodeAddressInUse,
		Message: fmt.Sprintf("Address is in use by payment method %s and cannot be deleted.", paymentMethodID),
	}
}
