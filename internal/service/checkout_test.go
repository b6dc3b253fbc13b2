package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutMocks struct {
	products *mocks.MockProductRepository
	orders   *mocks.MockCheckoutRepository
	gateway  *mocks.MockPaymentGateway
	journal  *mocks.MockCaptureJournal
	cache    *mocks.MockReplayCache
}

func newCheckoutService(t *testing.T, withCache bool) (*CheckoutService, checkoutMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := checkoutMocks{
		products: mocks.NewMockProductRepository(ctrl),
		orders:   mocks.NewMockCheckoutRepository(ctrl),
		gateway:  mocks.NewMockPaymentGateway(ctrl),
		journal:  mocks.NewMockCaptureJournal(ctrl),
	}

	if withCache {
		m.cache = mocks.NewMockReplayCache(ctrl)
		return NewCheckoutService(m.products, m.orders, m.gateway, m.journal, m.cache), m
	}

	return NewCheckoutService(m.products, m.orders, m.gateway, m.journal, nil), m
}

func product(id, price string) models.Product {
	return models.Product{ID: id, Name: "product " + id, Price: decimal.RequireFromString(price)}
}

func capture(txID, amount string) *models.Capture {
	return &models.Capture{
		TransactionID: txID,
		Amount:        decimal.RequireFromString(amount),
		Status:        "submitted_for_settlement",
		Success:       true,
	}
}

// reserveAs returns the order it was given, as the database does for a new reservation
func reserveAs(got **models.Order) func(context.Context, *models.Order) (*models.Order, error) {
	return func(_ context.Context, order *models.Order) (*models.Order, error) {
		*got = order
		return order, nil
	}
}

func TestCheckoutService_PlaceOrder_SingleLine(t *testing.T) {
	svc, m := newCheckoutService(t, false)

	var reserved *models.Order
	var finalized models.Payment

	m.products.EXPECT().FindByIDs(gomock.Any(), []string{"P1"}).Return([]models.Product{product("P1", "10.00")}, nil)
	m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
	m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), "nonce").
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _ string) (*models.Capture, error) {
			assert.Equal(t, "20.00", amount.StringFixed(2))
			return capture("tx1", "20.00"), nil
		})
	m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, orderID string, payment models.Payment, _ *models.OutboxEvent) error {
			assert.Equal(t, reserved.ID, orderID)
			finalized = payment
			return nil
		})

	result, err := svc.PlaceOrder(context.Background(), models.Checkout{
		BuyerID: "buyer-1",
		Cart:    []models.CartLine{{ProductID: "P1", Quantity: 2}},
		Nonce:   "nonce",
	})
	require.NoError(t, err)

	require.NotNil(t, reserved)
	assert.Equal(t, reserved.ID, result.OrderID)
	assert.False(t, result.Replayed)
	assert.Equal(t, "tx1", result.Payment.TransactionID)
	assert.Equal(t, "tx1", finalized.TransactionID)

	require.Len(t, reserved.Items, 1)
	assert.Equal(t, "20.00", reserved.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "20.00", reserved.Amount.StringFixed(2))
	assert.Equal(t, "buyer-1", reserved.BuyerID)
	assert.Equal(t, models.OrderStatusNotProcessed, reserved.Status)
}

func TestCheckoutService_PlaceOrder_Totals(t *testing.T) {
	tests := []struct {
		name      string
		cart      []models.CartLine
		catalog   []models.Product
		wantIDs   []string
		wantLines []string
		wantQty   []int
		wantTotal string
	}{
		{
			name: "rounds_each_line_then_sum",
			cart: []models.CartLine{
				{ProductID: "A", Quantity: 3},
				{ProductID: "B", Quantity: 1},
			},
			catalog:   []models.Product{product("A", "0.335"), product("B", "1.005")},
			wantIDs:   []string{"A", "B"},
			wantLines: []string{"1.01", "1.01"},
			wantQty:   []int{3, 1},
			wantTotal: "2.02",
		},
		{
			name: "non_positive_quantity_defaults_to_one",
			cart: []models.CartLine{
				{ProductID: "A", Quantity: 0},
				{ProductID: "B", Quantity: -4},
			},
			catalog:   []models.Product{product("A", "5.50"), product("B", "4.50")},
			wantIDs:   []string{"A", "B"},
			wantLines: []string{"5.50", "4.50"},
			wantQty:   []int{1, 1},
			wantTotal: "10.00",
		},
		{
			name: "duplicate_products_are_looked_up_once",
			cart: []models.CartLine{
				{ProductID: "A", Quantity: 1},
				{ProductID: "A", Quantity: 2},
			},
			catalog:   []models.Product{product("A", "19.99")},
			wantIDs:   []string{"A"},
			wantLines: []string{"19.99", "39.98"},
			wantQty:   []int{1, 2},
			wantTotal: "59.97",
		},
		{
			name: "large_quantity_is_charged_in_full",
			cart: []models.CartLine{
				{ProductID: "A", Quantity: models.MaxQuantity},
				{ProductID: "B", Quantity: 250000},
			},
			catalog:   []models.Product{product("A", "2.50"), product("B", "0.01")},
			wantIDs:   []string{"A", "B"},
			wantLines: []string{"2500000.00", "2500.00"},
			wantQty:   []int{models.MaxQuantity, 250000},
			wantTotal: "2502500.00",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, m := newCheckoutService(t, false)

			var reserved *models.Order
			m.products.EXPECT().FindByIDs(gomock.Any(), test.wantIDs).Return(test.catalog, nil)
			m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
			m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(capture("tx", test.wantTotal), nil)
			m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			_, err := svc.PlaceOrder(context.Background(), models.Checkout{BuyerID: "b", Cart: test.cart, Nonce: "n"})
			require.NoError(t, err)

			var lines []string
			var qty []int
			sum := decimal.Zero
			for _, item := range reserved.Items {
				lines = append(lines, item.LineTotal.StringFixed(2))
				qty = append(qty, item.Quantity)
				sum = sum.Add(item.LineTotal)
			}

			if diff := cmp.Diff(test.wantLines, lines); diff != "" {
				t.Errorf("line totals mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, test.wantQty, qty)
			assert.Equal(t, test.wantTotal, reserved.Amount.StringFixed(2))
			assert.True(t, sum.Round(2).Equal(reserved.Amount))
		})
	}
}

func TestCheckoutService_PlaceOrder_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		checkout models.Checkout
		setup    func(m checkoutMocks)
		wantErr  error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "no_buyer",
			checkout: models.Checkout{Cart: []models.CartLine{{ProductID: "P1"}}, Nonce: "n"},
			wantErr:  models.ErrUnauthorized,
		},
		{
			name:     "empty_cart",
			checkout: models.Checkout{BuyerID: "b", Nonce: "n"},
			wantErr:  models.ErrEmptyCart,
		},
		{
			name: "quantity_above_limit",
			checkout: models.Checkout{BuyerID: "b", Nonce: "n", Cart: []models.CartLine{
				{ProductID: "P1", Quantity: 1},
				{ProductID: "P2", Quantity: models.MaxQuantity + 1},
			}},
			wantErr: models.ErrQuantityTooLarge,
		},
		{
			name:     "no_nonce",
			checkout: models.Checkout{BuyerID: "b", Cart: []models.CartLine{{ProductID: "P1"}}},
			wantErr:  models.ErrValidation,
		},
		{
			name:     "no_products_in_catalog",
			checkout: models.Checkout{BuyerID: "b", Cart: []models.CartLine{{ProductID: "P1"}}, Nonce: "n"},
			setup: func(m checkoutMocks) {
				m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: models.ErrProductsNotFound,
		},
		{
			name: "one_product_missing",
			checkout: models.Checkout{BuyerID: "b", Nonce: "n", Cart: []models.CartLine{
				{ProductID: "P1", Quantity: 1},
				{ProductID: "P9", Quantity: 1},
			}},
			setup: func(m checkoutMocks) {
				m.products.EXPECT().FindByIDs(gomock.Any(), []string{"P1", "P9"}).Return([]models.Product{product("P1", "1")}, nil)
			},
			wantErr: models.ErrValidation,
			check: func(t *testing.T, err error) {
				var notFound *models.ProductNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, "P9", notFound.ProductID)
				assert.Contains(t, err.Error(), "P9")
			},
		},
		{
			name:     "catalog_error",
			checkout: models.Checkout{BuyerID: "b", Cart: []models.CartLine{{ProductID: "P1"}}, Nonce: "n"},
			setup: func(m checkoutMocks) {
				m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError)
			},
			wantErr: models.ErrInternalError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// no expectations on orders or gateway: nothing is reserved or charged
			svc, m := newCheckoutService(t, false)
			if test.setup != nil {
				test.setup(m)
			}

			result, err := svc.PlaceOrder(context.Background(), test.checkout)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, test.wantErr)
			if test.check != nil {
				test.check(t, err)
			}
		})
	}
}

func TestCheckoutService_PlaceOrder_GatewayFailure(t *testing.T) {
	tests := []struct {
		name       string
		capture    *models.Capture
		err        error
		wantDecl   bool
		wantStatus int
	}{
		{
			name:     "declined",
			err:      &models.GatewayError{StatusCode: 422, Declined: true, Message: "Do Not Honor"},
			wantDecl: true,
		},
		{
			name:       "unavailable",
			err:        &models.GatewayError{StatusCode: 503},
			wantStatus: 503,
		},
		{
			name: "transport_error",
			err:  errors.New("connection reset"),
		},
		{
			name:     "unsuccessful_response",
			capture:  &models.Capture{Success: false},
			wantDecl: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, m := newCheckoutService(t, false)

			var reserved *models.Order
			m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
			m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
			m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(test.capture, test.err)
			m.orders.EXPECT().FailReservation(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, orderID string) error {
					assert.Equal(t, reserved.ID, orderID)
					return nil
				})
			m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			result, err := svc.PlaceOrder(context.Background(), models.Checkout{
				BuyerID: "b",
				Cart:    []models.CartLine{{ProductID: "P1", Quantity: 1}},
				Nonce:   "n",
			})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, models.ErrPaymentFailed)

			var gwErr *models.GatewayError
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, test.wantDecl, gwErr.Declined)
			assert.Equal(t, test.wantStatus, gwErr.StatusCode)
		})
	}
}

func TestCheckoutService_PlaceOrder_UnknownOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "timeout",
			err:  &models.GatewayError{Unknown: true, Err: context.DeadlineExceeded},
		},
		{
			name: "unreadable_response",
			err:  &models.GatewayError{StatusCode: 201, Unknown: true, Err: errors.New("unexpected EOF")},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, m := newCheckoutService(t, false)

			var reserved *models.Order
			m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
			m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(nil, models.ErrDataNotFound)
			m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
			m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, test.err)
			// reservation stays pending so a retry can not charge again
			m.orders.EXPECT().FailReservation(gomock.Any(), gomock.Any()).Times(0)
			m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			result, err := svc.PlaceOrder(context.Background(), models.Checkout{
				BuyerID:       "b",
				Cart:          []models.CartLine{{ProductID: "P1", Quantity: 1}},
				Nonce:         "n",
				ClientOrderID: "c-1",
			})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, models.ErrPaymentUnknown)
			assert.ErrorIs(t, err, models.ErrPaymentFailed)
		})
	}
}

func TestCheckoutService_PlaceOrder_RetryAfterUnknownOutcome(t *testing.T) {
	svc, m := newCheckoutService(t, false)

	m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
	m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
		Return(&models.Order{ID: "o1", Payment: models.Payment{Status: models.PaymentStatusPending}}, nil)
	m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).Times(0)
	m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.PlaceOrder(context.Background(), models.Checkout{
		BuyerID:       "b",
		Cart:          []models.CartLine{{ProductID: "P1", Quantity: 1}},
		Nonce:         "n",
		ClientOrderID: "c-1",
	})
	assert.ErrorIs(t, err, models.ErrCheckoutInProgress)
}

func TestCheckoutService_PlaceOrder_SaveFailure(t *testing.T) {
	svc, m := newCheckoutService(t, false)
	saveErr := errors.New("connection refused")

	var reserved *models.Order
	var journaled models.JournalEntry

	m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
	m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
	m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(capture("tx9", "10.00"), nil)
	m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(saveErr)
	m.journal.EXPECT().Record(gomock.Any()).DoAndReturn(func(entry models.JournalEntry) error {
		journaled = entry
		return nil
	})

	result, err := svc.PlaceOrder(context.Background(), models.Checkout{
		BuyerID: "b",
		Cart:    []models.CartLine{{ProductID: "P1", Quantity: 1}},
		Nonce:   "n",
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrOrderSave)
	assert.ErrorIs(t, err, saveErr)
	assert.NotErrorIs(t, err, models.ErrPaymentFailed)

	var saveError *models.OrderSaveError
	require.True(t, errors.As(err, &saveError))
	assert.Equal(t, reserved.ID, saveError.OrderID)
	assert.Equal(t, "tx9", saveError.TransactionID)

	assert.Equal(t, reserved.ID, journaled.OrderID)
	assert.Equal(t, "tx9", journaled.Payment.TransactionID)
	assert.Equal(t, "connection refused", journaled.LastError)
	require.NotNil(t, journaled.Event())
	assert.Equal(t, "ORDER#"+reserved.ID, journaled.Event().Key)
}

func TestCheckoutService_PlaceOrder_Replay(t *testing.T) {
	prior := &models.Order{
		ID:      "order-1",
		Payment: models.Payment{TransactionID: "tx1", Amount: decimal.RequireFromString("20"), Status: "settled"},
	}

	svc, m := newCheckoutService(t, false)

	m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil).Times(2)
	m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(prior, nil).Times(2)
	m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).Times(0)

	checkout := models.Checkout{
		BuyerID:       "b",
		Cart:          []models.CartLine{{ProductID: "P1", Quantity: 2}},
		Nonce:         "n",
		ClientOrderID: "c-1",
	}

	for i := 0; i < 2; i++ {
		result, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.Equal(t, "order-1", result.OrderID)
		assert.True(t, result.Replayed)
		assert.Equal(t, "tx1", result.Payment.TransactionID)
	}
}

func TestCheckoutService_PlaceOrder_ClientOrderID(t *testing.T) {
	checkout := models.Checkout{
		BuyerID:       "b",
		Cart:          []models.CartLine{{ProductID: "P1", Quantity: 1}},
		Nonce:         "n",
		ClientOrderID: "c-1",
	}

	t.Run("first_submission_is_charged_once", func(t *testing.T) {
		svc, m := newCheckoutService(t, false)

		var reserved *models.Order
		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil).Times(2)
		first := m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(nil, models.ErrDataNotFound)
		m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(capture("tx1", "10"), nil).Times(1)
		m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
			DoAndReturn(func(context.Context, string, string) (*models.Order, error) {
				return &models.Order{ID: reserved.ID, Payment: models.Payment{TransactionID: "tx1", Status: "submitted_for_settlement"}}, nil
			}).After(first)

		placed, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.False(t, placed.Replayed)

		again, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.True(t, again.Replayed)
		assert.Equal(t, placed.OrderID, again.OrderID)
	})

	t.Run("pending_reservation_is_in_progress", func(t *testing.T) {
		svc, m := newCheckoutService(t, false)

		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
			Return(&models.Order{ID: "o", Payment: models.Payment{Status: models.PaymentStatusPending}}, nil)

		_, err := svc.PlaceOrder(context.Background(), checkout)
		assert.ErrorIs(t, err, models.ErrCheckoutInProgress)
	})

	t.Run("failed_reservation_is_retried_under_its_id", func(t *testing.T) {
		svc, m := newCheckoutService(t, false)

		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
			Return(&models.Order{ID: "old", Payment: models.Payment{Status: models.PaymentStatusFailed}}, nil)
		m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *models.Order) (*models.Order, error) {
				rearmed := *order
				rearmed.ID = "old"
				return &rearmed, nil
			})
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(capture("tx2", "10"), nil)
		m.orders.EXPECT().FinalizeOrder(gomock.Any(), "old", gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.Equal(t, "old", result.OrderID)
	})

	t.Run("concurrent_winner_placed_order", func(t *testing.T) {
		svc, m := newCheckoutService(t, false)

		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		first := m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(nil, models.ErrDataNotFound)
		m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).Return(nil, models.ErrConflictData)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
			Return(&models.Order{ID: "winner", Payment: models.Payment{TransactionID: "tx", Status: "settled"}}, nil).
			After(first)
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.Equal(t, "winner", result.OrderID)
		assert.True(t, result.Replayed)
	})

	t.Run("concurrent_winner_still_charging", func(t *testing.T) {
		svc, m := newCheckoutService(t, false)

		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		first := m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(nil, models.ErrDataNotFound)
		m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).Return(nil, models.ErrConflictData)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").
			Return(&models.Order{ID: "winner", Payment: models.Payment{Status: models.PaymentStatusPending}}, nil).
			After(first)
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.PlaceOrder(context.Background(), checkout)
		assert.ErrorIs(t, err, models.ErrCheckoutInProgress)
	})
}

func TestCheckoutService_PlaceOrder_ReplayCache(t *testing.T) {
	checkout := models.Checkout{
		BuyerID:       "b",
		Cart:          []models.CartLine{{ProductID: "P1", Quantity: 1}},
		Nonce:         "n",
		ClientOrderID: "c-1",
	}

	t.Run("hit", func(t *testing.T) {
		svc, m := newCheckoutService(t, true)

		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		m.cache.EXPECT().GenerateKey("checkout", "b/c-1").Return("store:checkout:b/c-1")
		m.cache.EXPECT().Get(gomock.Any(), "store:checkout:b/c-1").
			Return(`{"orderId":"order-1","payment":{"transactionId":"tx1","amount":"10","status":"settled"}}`, nil)
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		result, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.Equal(t, "order-1", result.OrderID)
		assert.Equal(t, "tx1", result.Payment.TransactionID)
		assert.True(t, result.Replayed)
	})

	t.Run("miss_then_store", func(t *testing.T) {
		svc, m := newCheckoutService(t, true)

		var reserved *models.Order
		m.products.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]models.Product{product("P1", "10")}, nil)
		m.cache.EXPECT().GenerateKey("checkout", "b/c-1").Return("k").Times(2)
		m.cache.EXPECT().Get(gomock.Any(), "k").Return("", errors.New("redis down"))
		m.orders.EXPECT().GetOrderByClientID(gomock.Any(), "b", "c-1").Return(nil, models.ErrDataNotFound)
		m.orders.EXPECT().ReserveOrder(gomock.Any(), gomock.Any()).DoAndReturn(reserveAs(&reserved))
		m.gateway.EXPECT().Sale(gomock.Any(), gomock.Any(), gomock.Any()).Return(capture("tx1", "10"), nil)
		m.orders.EXPECT().FinalizeOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.cache.EXPECT().Set(gomock.Any(), "k", gomock.Any(), replayTTL).
			DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
				cached := models.CheckoutResult{}
				require.NoError(t, json.Unmarshal([]byte(value.(string)), &cached))
				assert.Equal(t, reserved.ID, cached.OrderID)
				return nil
			})

		result, err := svc.PlaceOrder(context.Background(), checkout)
		require.NoError(t, err)
		assert.False(t, result.Replayed)
	})
}

func TestCheckoutService_ClientToken(t *testing.T) {
	svc, m := newCheckoutService(t, false)

	m.gateway.EXPECT().ClientToken(gomock.Any()).Return("token", nil)
	token, err := svc.ClientToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	m.gateway.EXPECT().ClientToken(gomock.Any()).Return("", errors.New("dial tcp: timeout"))
	_, err = svc.ClientToken(context.Background())
	assert.ErrorIs(t, err, models.ErrPaymentFailed)
}
