package models

import (
	"errors"
	"fmt"
	"time"
)

// error categories visible to callers of the checkout
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation failed")
	ErrPaymentFailed = errors.New("payment failed")
	ErrOrderSave     = errors.New("order save failed")
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalError      = errors.New("internal error")
	ErrCheckoutInProgress = errors.New("checkout with this client order id is in progress")
	ErrPaymentUnknown     = errors.New("payment outcome unknown")

	ErrEmptyCart        = fmt.Errorf("%w: cart is empty or invalid", ErrValidation)
	ErrProductsNotFound = fmt.Errorf("%w: products not found", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrMissingNonce     = fmt.Errorf("%w: payment nonce is required", ErrValidation)
	ErrQuantityTooLarge = fmt.Errorf("%w: quantity too large", ErrValidation)
	ErrQuantityFraction = fmt.Errorf("%w: quantity must be a whole number", ErrValidation)
)

// ProductNotFoundError reports a cart line whose product is absent from the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "product not found: " + e.ProductID
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrValidation
}

// GatewayError is returned when the payment gateway rejects or fails a request.
type GatewayError struct {
	StatusCode int
	// Declined is set when the gateway processed the request and refused the payment.
	Declined   bool
	// Unknown is set when the gateway may have captured the payment but no answer was read.
	Unknown    bool
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("gateway responded with status %d", e.StatusCode)
	}
	return "payment gateway: " + msg
}

func (e *GatewayError) Unwrap() []error {
	errs := []error{ErrPaymentFailed}
	if e.Unknown {
		errs = append(errs, ErrPaymentUnknown)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// OrderSaveError means the payment was captured but the order could not be written.
type OrderSaveError struct {
	OrderID       string
	TransactionID string
	Err           error
}

func (e *OrderSaveError) Error() string {
	return fmt.Sprintf("order %s not saved after capture %s: %v", e.OrderID, e.TransactionID, e.Err)
}

func (e *OrderSaveError) Unwrap() []error {
	return []error{ErrOrderSave, e.Err}
}
