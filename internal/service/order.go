package service

import (
	"context"
	"fmt"

	"github.com/rookgm/gopherstore/internal/events"
	"github.com/rookgm/gopherstore/internal/logger"
	"github.com/rookgm/gopherstore/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// GetOrdersByBuyerID returns buyer orders, newest first
	GetOrdersByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error)
	// GetOrders returns all orders, newest first
	GetOrders(ctx context.Context) ([]models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	// UpdateOrderStatus overwrites order status and stores event
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, event *models.OutboxEvent) error
}

// OrderService implements OrderService interface
type OrderService struct {
	repo OrderRepository
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	if buyerID == "" {
		return nil, models.ErrUnauthorized
	}

	return os.repo.GetOrdersByBuyerID(ctx, buyerID)
}

// ListAllOrders returns all orders, newest first
func (os *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return os.repo.GetOrders(ctx)
}

// UpdateStatus overwrites order status, any status may follow any status
func (os *OrderService) UpdateStatus(ctx context.Context, orderID string, status string) (*models.Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", models.ErrValidation)
	}

	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	event, err := events.NewOrderStatusChanged(orderID, newStatus)
	if err != nil {
		return nil, err
	}

	if err := os.repo.UpdateOrderStatus(ctx, orderID, newStatus, event); err != nil {
		return nil, err
	}

	logger.Log.Debug("order status has been updated", zap.String("order", orderID), zap.String("status", string(newStatus)))

	return os.repo.GetOrderByID(ctx, orderID)
}
