package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rookgm/gopherstore/internal/models"
)

type CheckoutService interface {
	// PlaceOrder captures payment for cart and saves order
	PlaceOrder(ctx context.Context, checkout models.Checkout) (*models.CheckoutResult, error)
	// ClientToken returns gateway token for client payment form
	ClientToken(ctx context.Context) (string, error)
}

// CheckoutHandler represents HTTP handler for checkout requests
type CheckoutHandler struct {
	svc CheckoutService
}

// NewCheckoutHandler creates new CheckoutHandler instance
func NewCheckoutHandler(svc CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type checkoutRequest struct {
	Nonce string `json:"nonce" validate:"required"`
	// cart is an array of lines or a string holding that array
	Cart          json.RawMessage `json:"cart" validate:"required"`
	ClientOrderID string          `json:"clientOrderId" validate:"omitempty,max=128"`
}

type checkoutResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	OrderID string          `json:"orderId"`
	Payment paymentResponse `json:"payment"`
}

type clientTokenResponse struct {
	ClientToken string `json:"clientToken"`
}

// PlaceOrder charges the cart and creates order
// 200 — order placed, or the order already placed with the same clientOrderId;
// 400 — malformed body, empty cart, invalid quantity or unknown product;
// 401 — user is not authenticated;
// 402 — payment declined;
// 409 — checkout with the same clientOrderId is in progress;
// 500 — payment captured but order not saved, or internal error;
// 502 — payment gateway unavailable;
// 504 — payment outcome unknown, the order is settled by reconciliation.
func (ch *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyer, err := buyerID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer r.Body.Close()

		var req checkoutRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		cart, err := models.ParseCart(req.Cart)
		if err != nil {
			writeError(w, r, err)
			return
		}

		result, err := ch.svc.PlaceOrder(r.Context(), models.Checkout{
			BuyerID:       buyer,
			Cart:          cart,
			Nonce:         req.Nonce,
			ClientOrderID: strings.TrimSpace(req.ClientOrderID),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		msg := "Payment successful and order saved"
		if result.Replayed {
			msg = "Order already processed"
		}

		writeJSON(w, http.StatusOK, checkoutResponse{
			Success: true,
			Message: msg,
			OrderID: result.OrderID,
			Payment: newPaymentResponse(result.Payment),
		})
	}
}

// ClientToken returns gateway client token
// 200 — token generated;
// 401 — user is not authenticated;
// 502 — payment gateway unavailable.
func (ch *CheckoutHandler) ClientToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := ch.svc.ClientToken(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, clientTokenResponse{ClientToken: token})
	}
}
