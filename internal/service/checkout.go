package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rookgm/gopherstore/internal/events"
	"github.com/rookgm/gopherstore/internal/logger"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// how long placed checkout result is kept in replay cache
const replayTTL = 24 * time.Hour

// ProductRepository is interface for looking up catalog prices
type ProductRepository interface {
	// FindByIDs returns products with given ids, unknown ids are skipped
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

// CheckoutRepository is interface for two-phase order writes
type CheckoutRepository interface {
	// GetOrderByClientID returns buyer's order or reservation by client order id
	GetOrderByClientID(ctx context.Context, buyerID, clientOrderID string) (*models.Order, error)
	// ReserveOrder writes order with pending payment
	ReserveOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// FinalizeOrder stores captured payment and outbox event
	FinalizeOrder(ctx context.Context, orderID string, payment models.Payment, event *models.OutboxEvent) error
	// FailReservation releases pending order after declined payment
	FailReservation(ctx context.Context, orderID string) error
}

// PaymentGateway is interface of payment gateway client
type PaymentGateway interface {
	// Sale captures amount and submits it for settlement
	Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*models.Capture, error)
	// ClientToken returns token for client side payment form
	ClientToken(ctx context.Context) (string, error)
}

// CaptureJournal keeps captures that could not be saved
type CaptureJournal interface {
	Record(entry models.JournalEntry) error
}

// ReplayCache is optional cache of placed checkouts
type ReplayCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation, key string) string
}

// CheckoutService turns cart and payment nonce into an order
type CheckoutService struct {
	products ProductRepository
	orders   CheckoutRepository
	gateway  PaymentGateway
	journal  CaptureJournal
	cache    ReplayCache
}

// NewCheckoutService creates new CheckoutService instance, cache may be nil
func NewCheckoutService(products ProductRepository, orders CheckoutRepository, gateway PaymentGateway,
	journal CaptureJournal, cache ReplayCache) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		gateway:  gateway,
		journal:  journal,
		cache:    cache,
	}
}

// PlaceOrder prices the cart from the catalog, captures payment and saves the order.
// A repeated checkout with the same client order id returns the earlier order
// without charging again.
func (cs *CheckoutService) PlaceOrder(ctx context.Context, checkout models.Checkout) (*models.CheckoutResult, error) {
	if checkout.BuyerID == "" {
		return nil, models.ErrUnauthorized
	}
	if len(checkout.Cart) == 0 {
		return nil, models.ErrEmptyCart
	}
	if checkout.Nonce == "" {
		return nil, models.ErrMissingNonce
	}

	order, err := cs.priceCart(ctx, checkout)
	if err != nil {
		return nil, err
	}

	if checkout.ClientOrderID != "" {
		if result := cs.cachedResult(ctx, checkout); result != nil {
			return result, nil
		}

		result, err := cs.replay(ctx, checkout.BuyerID, checkout.ClientOrderID)
		if err != nil || result != nil {
			return result, err
		}
	}

	reserved, err := cs.orders.ReserveOrder(ctx, order)
	if err != nil {
		if errors.Is(err, models.ErrConflictData) && checkout.ClientOrderID != "" {
			// another request owns this client order id
			result, err := cs.replay(ctx, checkout.BuyerID, checkout.ClientOrderID)
			if err != nil || result != nil {
				return result, err
			}
			return nil, models.ErrCheckoutInProgress
		}
		return nil, err
	}
	// a failed reservation is re-armed under its original id
	order = reserved

	capture, err := cs.gateway.Sale(ctx, order.Amount, checkout.Nonce)
	if err == nil && (capture == nil || !capture.Success || capture.TransactionID == "") {
		err = &models.GatewayError{Declined: true, Message: "no successful transaction in gateway response"}
	}
	if err != nil {
		var gwErr *models.GatewayError
		if !errors.As(err, &gwErr) {
			gwErr = &models.GatewayError{Err: err}
		}

		if gwErr.Unknown {
			// reservation stays pending until reconciliation expires it
			logger.Log.Warn("payment outcome unknown, reservation kept",
				zap.String("order", order.ID),
				zap.String("amount", order.Amount.StringFixed(2)),
				zap.Error(err))
			return nil, gwErr
		}

		logger.Log.Warn("payment capture failed",
			zap.String("order", order.ID),
			zap.String("amount", order.Amount.StringFixed(2)),
			zap.Error(err))

		if ferr := cs.orders.FailReservation(context.WithoutCancel(ctx), order.ID); ferr != nil {
			logger.Log.Error("failed to release reservation", zap.String("order", order.ID), zap.Error(ferr))
		}

		return nil, gwErr
	}

	payment := capture.Payment()

	event, err := events.NewOrderPlaced(order, payment)
	if err != nil {
		logger.Log.Error("failed to build order event", zap.String("order", order.ID), zap.Error(err))
	}

	// the capture is settled, the write must not be lost to a cancelled request
	if err := cs.orders.FinalizeOrder(context.WithoutCancel(ctx), order.ID, payment, event); err != nil {
		logger.Log.Error("payment captured but order not saved",
			zap.String("order", order.ID),
			zap.String("transaction", payment.TransactionID),
			zap.Error(err))

		cs.journalCapture(order, payment, event, err)

		return nil, &models.OrderSaveError{
			OrderID:       order.ID,
			TransactionID: payment.TransactionID,
			Err:           err,
		}
	}

	result := &models.CheckoutResult{
		OrderID: order.ID,
		Payment: payment,
	}

	if checkout.ClientOrderID != "" {
		cs.cacheResult(ctx, checkout, result)
	}

	return result, nil
}

// ClientToken returns gateway token for client payment form
func (cs *CheckoutService) ClientToken(ctx context.Context) (string, error) {
	token, err := cs.gateway.ClientToken(ctx)
	if err != nil {
		var gwErr *models.GatewayError
		if !errors.As(err, &gwErr) {
			err = &models.GatewayError{Err: err}
		}
		return "", err
	}

	return token, nil
}

// priceCart resolves cart lines against the catalog and builds order with totals
func (cs *CheckoutService) priceCart(ctx context.Context, checkout models.Checkout) (*models.Order, error) {
	ids := make([]string, 0, len(checkout.Cart))
	seen := make(map[string]struct{}, len(checkout.Cart))
	for _, line := range checkout.Cart {
		if line.Quantity > models.MaxQuantity {
			return nil, models.ErrQuantityTooLarge
		}
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products, err := cs.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		logger.Log.Debug("no cart products in catalog", zap.Strings("products", ids))
		return nil, models.ErrProductsNotFound
	}

	catalog := make(map[string]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	items := make([]models.LineItem, 0, len(checkout.Cart))
	amount := decimal.Zero

	for _, line := range checkout.Cart {
		product, ok := catalog[line.ProductID]
		if !ok {
			logger.Log.Debug("cart product not in catalog", zap.String("product", line.ProductID))
			return nil, &models.ProductNotFoundError{ProductID: line.ProductID}
		}

		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		amount = amount.Add(lineTotal)

		items = append(items, models.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
	}

	return &models.Order{
		ID:            uuid.NewString(),
		BuyerID:       checkout.BuyerID,
		ClientOrderID: checkout.ClientOrderID,
		Items:         items,
		Amount:        amount.Round(2),
		Status:        models.OrderStatusNotProcessed,
	}, nil
}

// replay returns earlier result for client order id or nil when checkout may proceed
func (cs *CheckoutService) replay(ctx context.Context, buyerID, clientOrderID string) (*models.CheckoutResult, error) {
	prior, err := cs.orders.GetOrderByClientID(ctx, buyerID, clientOrderID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, nil
		}
		return nil, err
	}

	switch prior.Payment.Status {
	case models.PaymentStatusFailed:
		return nil, nil
	case models.PaymentStatusPending:
		return nil, models.ErrCheckoutInProgress
	}

	logger.Log.Info("order already processed",
		zap.String("order", prior.ID),
		zap.String("client_order_id", clientOrderID))

	return &models.CheckoutResult{
		OrderID:  prior.ID,
		Payment:  prior.Payment,
		Replayed: true,
	}, nil
}

func (cs *CheckoutService) journalCapture(order *models.Order, payment models.Payment, event *models.OutboxEvent, cause error) {
	entry := models.JournalEntry{
		OrderID:    order.ID,
		BuyerID:    order.BuyerID,
		Payment:    payment,
		CapturedAt: time.Now().UTC(),
		LastError:  cause.Error(),
	}
	if event != nil {
		entry.EventKey = event.Key
		entry.EventPayload = event.Payload
	}

	if err := cs.journal.Record(entry); err != nil {
		logger.Log.Error("captured payment is not journaled",
			zap.String("order", order.ID),
			zap.String("transaction", payment.TransactionID),
			zap.Error(err))
	}
}

func (cs *CheckoutService) replayKey(checkout models.Checkout) string {
	return cs.cache.GenerateKey("checkout", checkout.BuyerID+"/"+checkout.ClientOrderID)
}

func (cs *CheckoutService) cachedResult(ctx context.Context, checkout models.Checkout) *models.CheckoutResult {
	if cs.cache == nil {
		return nil
	}

	val, err := cs.cache.Get(ctx, cs.replayKey(checkout))
	if err != nil {
		logger.Log.Warn("replay cache get", zap.Error(err))
		return nil
	}
	if val == "" {
		return nil
	}

	result := models.CheckoutResult{}
	if err := json.Unmarshal([]byte(val), &result); err != nil || result.OrderID == "" {
		return nil
	}
	result.Replayed = true

	return &result
}

func (cs *CheckoutService) cacheResult(ctx context.Context, checkout models.Checkout, result *models.CheckoutResult) {
	if cs.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := cs.cache.Set(ctx, cs.replayKey(checkout), string(data), replayTTL); err != nil {
		logger.Log.Warn("replay cache set", zap.Error(err))
	}
}
