package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rookgm/gopherstore/internal/models"
)

// event types
const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is published once order payment is stored
type OrderPlacedEvent struct {
	EventID       string      `json:"event_id"`
	Type          string      `json:"type"`
	OrderID       string      `json:"order_id"`
	BuyerID       string      `json:"buyer_id"`
	ClientOrderID string      `json:"client_order_id,omitempty"`
	Amount        string      `json:"amount"`
	TransactionID string      `json:"transaction_id"`
	PaymentStatus string      `json:"payment_status"`
	Items         []EventItem `json:"items"`
	Timestamp     time.Time   `json:"timestamp"`
}

// EventItem is order line in event payload
type EventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// OrderStatusChangedEvent is published when order status is overwritten
type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderKey is partition key of order events
func OrderKey(orderID string) string {
	return "ORDER#" + orderID
}

// NewOrderPlaced builds outbox event for order with captured payment
func NewOrderPlaced(order *models.Order, payment models.Payment) (*models.OutboxEvent, error) {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(2),
		})
	}

	return newOutboxEvent(order.ID, OrderPlacedEvent{
		EventID:       uuid.NewString(),
		Type:          TypeOrderPlaced,
		OrderID:       order.ID,
		BuyerID:       order.BuyerID,
		ClientOrderID: order.ClientOrderID,
		Amount:        order.Amount.StringFixed(2),
		TransactionID: payment.TransactionID,
		PaymentStatus: payment.Status,
		Items:         items,
		Timestamp:     time.Now().UTC(),
	})
}

// NewOrderStatusChanged builds outbox event for status overwrite
func NewOrderStatusChanged(orderID string, status models.OrderStatus) (*models.OutboxEvent, error) {
	return newOutboxEvent(orderID, OrderStatusChangedEvent{
		EventID:   uuid.NewString(),
		Type:      TypeOrderStatusChanged,
		OrderID:   orderID,
		Status:    string(status),
		Timestamp: time.Now().UTC(),
	})
}

func newOutboxEvent(orderID string, payload any) (*models.OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &models.OutboxEvent{
		Key:     OrderKey(orderID),
		Payload: data,
		Status:  models.OutboxPending,
	}, nil
}
