package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Checkout is a single checkout attempt of an authenticated buyer
type Checkout struct {
	BuyerID       string
	Cart          []CartLine
	Nonce         string
	ClientOrderID string
}

// CheckoutResult is outcome of successful or replayed checkout
type CheckoutResult struct {
	OrderID string  `json:"orderId"`
	Payment Payment `json:"payment"`
	// Replayed is set when an earlier order with the same client order id was returned.
	Replayed bool `json:"replayed"`
}

// Capture is gateway response for a settled sale
type Capture struct {
	TransactionID string
	Amount        decimal.Decimal
	Status        string
	Success       bool
}

// Payment returns snapshot stored with the order
func (c *Capture) Payment() Payment {
	return Payment{
		TransactionID: c.TransactionID,
		Amount:        c.Amount,
		Status:        c.Status,
	}
}

// JournalEntry is a capture that could not be written to the order store
type JournalEntry struct {
	OrderID    string    `json:"orderId"`
	BuyerID    string    `json:"buyerId"`
	Payment    Payment   `json:"payment"`
	CapturedAt time.Time `json:"capturedAt"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"lastError,omitempty"`
	// event written together with the payment once the order store is back
	EventKey     string          `json:"eventKey,omitempty"`
	EventPayload json.RawMessage `json:"eventPayload,omitempty"`
}

// Event returns outbox event kept with the entry or nil
func (e *JournalEntry) Event() *OutboxEvent {
	if len(e.EventPayload) == 0 {
		return nil
	}
	return &OutboxEvent{
		Key:     e.EventKey,
		Payload: e.EventPayload,
		Status:  OutboxPending,
	}
}
