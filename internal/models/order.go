package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment status of an order.
type OrderStatus string

// order status
const (
	OrderStatusNotProcessed OrderStatus = "NotProcessed"
	OrderStatusProcessing   OrderStatus = "Processing"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// payment status values owned by this service, anything else comes from the gateway
const (
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

var orderStatuses = map[string]OrderStatus{
	"notprocessed":  OrderStatusNotProcessed,
	"not processed": OrderStatusNotProcessed,
	"not process":   OrderStatusNotProcessed,
	"processing":    OrderStatusProcessing,
	"shipped":       OrderStatusShipped,
	"delivered":     OrderStatusDelivered,
	"deliverd":      OrderStatusDelivered,
	"cancelled":     OrderStatusCancelled,
	"canceled":      OrderStatusCancelled,
	"cancel":        OrderStatusCancelled,
}

// ParseOrderStatus converts client input into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status, ok := orderStatuses[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Payment is the gateway's view of the capture, copied at capture time.
type Payment struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// Captured reports whether the payment left the reservation states.
func (p Payment) Captured() bool {
	return p.Status != PaymentStatusPending && p.Status != PaymentStatusFailed && p.Status != ""
}

// LineItem is a single product line of an order.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	// Product is the current catalog record, set by listing queries only.
	Product *Product
}

// Buyer is the user attached to listed orders.
type Buyer struct {
	ID    string
	Name  string
	Email string
}

// Order is order entity
type Order struct {
	ID            string
	BuyerID       string
	Buyer         *Buyer
	ClientOrderID string
	Items         []LineItem
	Amount        decimal.Decimal
	Payment       Payment
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
