package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/gopherstore/internal/models"
)

type OrderService interface {
	// ListUserOrders returns buyer orders, newest first
	ListUserOrders(ctx context.Context, buyerID string) ([]models.Order, error)
	// ListAllOrders returns all orders, newest first
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	// UpdateStatus overwrites order status
	UpdateStatus(ctx context.Context, orderID string, status string) (*models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListUserOrders returns orders of authenticated user
// 200 — orders, possibly empty;
// 401 — user is not authenticated;
// 500 — internal error.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyer, err := buyerID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), buyer)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newOrdersResponse(orders))
	}
}

// ListAllOrders returns all orders, newest first
// 200 — orders, possibly empty;
// 401 — user is not authenticated;
// 403 — user is not admin;
// 500 — internal error.
func (oh *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := oh.svc.ListAllOrders(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newOrdersResponse(orders))
	}
}

// UpdateOrderStatus overwrites order status
// 200 — updated order;
// 400 — malformed body or unknown status;
// 401 — user is not authenticated;
// 403 — user is not admin;
// 404 — order not found;
// 500 — internal error.
func (oh *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		order, err := oh.svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newOrderResponse(order))
	}
}
