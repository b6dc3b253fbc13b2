package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDB = errors.New("connection reset")

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *postgres.DB) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, postgres.NewWithPool(mock)
}

func strPtr(s string) *string {
	return &s
}

func reservation() *models.Order {
	return &models.Order{
		ID:            "o-new",
		BuyerID:       "u-1",
		ClientOrderID: "c-1",
		Amount:        decimal.RequireFromString("7.50"),
		Status:        models.OrderStatusNotProcessed,
		Items: []models.LineItem{
			{ProductID: "P1", Name: "Pen", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2, LineTotal: decimal.RequireFromString("5.00")},
			{ProductID: "P2", Name: "Ink", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 1, LineTotal: decimal.RequireFromString("2.50")},
		},
	}
}

func TestOrderRepository_ReserveOrder(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	expectReserve := func(mock pgxmock.PgxPoolIface, order *models.Order, clientID *string) *pgxmock.ExpectedQuery {
		mock.ExpectBegin()
		return mock.ExpectQuery(insertReservationQuery).
			WithArgs(order.ID, order.BuyerID, clientID, order.Amount, order.Status)
	}
	expectItems := func(mock pgxmock.PgxPoolIface, orderID string, order *models.Order) *pgxmock.ExpectedBatch {
		mock.ExpectExec(deleteOrderItemsQuery).WithArgs(orderID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		batch := mock.ExpectBatch()
		for i, item := range order.Items {
			batch.ExpectExec(insertOrderItemQuery).
				WithArgs(orderID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}
		return batch
	}

	tests := []struct {
		name    string
		order   func() *models.Order
		setup   func(mock pgxmock.PgxPoolIface, order *models.Order)
		wantID  string
		wantErr error
	}{
		{
			name:  "new_reservation_is_committed",
			order: reservation,
			setup: func(mock pgxmock.PgxPoolIface, order *models.Order) {
				expectReserve(mock, order, strPtr("c-1")).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("o-new", created, created))
				expectItems(mock, "o-new", order)
				mock.ExpectCommit()
			},
			wantID: "o-new",
		},
		{
			name: "anonymous_reservation_stores_null_client_id",
			order: func() *models.Order {
				o := reservation()
				o.ClientOrderID = ""
				return o
			},
			setup: func(mock pgxmock.PgxPoolIface, order *models.Order) {
				expectReserve(mock, order, (*string)(nil)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("o-new", created, created))
				expectItems(mock, "o-new", order)
				mock.ExpectCommit()
			},
			wantID: "o-new",
		},
		{
			name:  "failed_reservation_is_rearmed_under_its_id",
			order: reservation,
			setup: func(mock pgxmock.PgxPoolIface, order *models.Order) {
				expectReserve(mock, order, strPtr("c-1")).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("o-old", created, created))
				expectItems(mock, "o-old", order)
				mock.ExpectCommit()
			},
			wantID: "o-old",
		},
		{
			name:  "live_order_with_same_client_id",
			order: reservation,
			setup: func(mock pgxmock.PgxPoolIface, order *models.Order) {
				expectReserve(mock, order, strPtr("c-1")).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}))
				mock.ExpectRollback()
			},
			wantErr: models.ErrConflictData,
		},
		{
			name:  "item_insert_fails_rolls_back",
			order: reservation,
			setup: func(mock pgxmock.PgxPoolIface, order *models.Order) {
				expectReserve(mock, order, strPtr("c-1")).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("o-new", created, created))
				mock.ExpectExec(deleteOrderItemsQuery).WithArgs("o-new").WillReturnResult(pgxmock.NewResult("DELETE", 0))
				batch := mock.ExpectBatch()
				first, second := order.Items[0], order.Items[1]
				batch.ExpectExec(insertOrderItemQuery).
					WithArgs("o-new", 0, first.ProductID, first.Name, first.UnitPrice, first.Quantity, first.LineTotal).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				batch.ExpectExec(insertOrderItemQuery).
					WithArgs("o-new", 1, second.ProductID, second.Name, second.UnitPrice, second.Quantity, second.LineTotal).
					WillReturnError(errDB)
				mock.ExpectRollback()
			},
			wantErr: errDB,
		},
		{
			name:  "begin_fails",
			order: reservation,
			setup: func(mock pgxmock.PgxPoolIface, _ *models.Order) {
				mock.ExpectBegin().WillReturnError(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMockDB(t)
			order := tt.order()
			tt.setup(mock, order)

			got, err := NewOrderRepository(db).ReserveOrder(context.Background(), order)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
				assert.Equal(t, created, got.CreatedAt)
				assert.Equal(t, models.PaymentStatusPending, got.Payment.Status)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_FinalizeOrder(t *testing.T) {
	payment := models.Payment{
		TransactionID: "tx-1",
		Amount:        decimal.RequireFromString("7.50"),
		Status:        "submitted_for_settlement",
	}
	event := &models.OutboxEvent{Key: "o-1", Payload: []byte(`{"orderId":"o-1"}`)}

	expectFinalize := func(mock pgxmock.PgxPoolIface, affected int64) {
		mock.ExpectBegin()
		mock.ExpectExec(finalizeOrderQuery).
			WithArgs("o-1", payment.TransactionID, payment.Amount, payment.Status).
			WillReturnResult(pgxmock.NewResult("UPDATE", affected))
	}

	tests := []struct {
		name    string
		event   *models.OutboxEvent
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:  "captured_with_event",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 1)
				mock.ExpectExec(insertOutboxQuery).
					WithArgs("o-1", `{"orderId":"o-1"}`, models.OutboxPending).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "captured_without_event",
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 1)
				mock.ExpectCommit()
			},
		},
		{
			name:  "same_transaction_again_is_noop",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 0)
				mock.ExpectQuery(selectTransactionIDQuery).WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows([]string{"transaction_id"}).AddRow("tx-1"))
				mock.ExpectCommit()
			},
		},
		{
			name:  "finalized_by_other_transaction",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 0)
				mock.ExpectQuery(selectTransactionIDQuery).WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows([]string{"transaction_id"}).AddRow("tx-2"))
				mock.ExpectRollback()
			},
			wantErr: models.ErrDataNotFound,
		},
		{
			name:  "released_reservation_without_transaction",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 0)
				mock.ExpectQuery(selectTransactionIDQuery).WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows([]string{"transaction_id"}).AddRow(""))
				mock.ExpectRollback()
			},
			wantErr: models.ErrDataNotFound,
		},
		{
			name:  "order_missing",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 0)
				mock.ExpectQuery(selectTransactionIDQuery).WithArgs("o-1").
					WillReturnRows(pgxmock.NewRows([]string{"transaction_id"}))
				mock.ExpectRollback()
			},
			wantErr: models.ErrDataNotFound,
		},
		{
			name:  "event_insert_fails_rolls_back_capture",
			event: event,
			setup: func(mock pgxmock.PgxPoolIface) {
				expectFinalize(mock, 1)
				mock.ExpectExec(insertOutboxQuery).
					WithArgs("o-1", `{"orderId":"o-1"}`, models.OutboxPending).
					WillReturnError(errDB)
				mock.ExpectRollback()
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMockDB(t)
			tt.setup(mock)

			err := NewOrderRepository(db).FinalizeOrder(context.Background(), "o-1", payment, tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_FailReservation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "anonymous_reservation_is_deleted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteAnonymousReservationQuery).WithArgs("o-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "reservation_with_client_id_is_marked_failed",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteAnonymousReservationQuery).WithArgs("o-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				mock.ExpectExec(failReservationQuery).WithArgs("o-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "captured_order_is_untouched",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteAnonymousReservationQuery).WithArgs("o-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				mock.ExpectExec(failReservationQuery).WithArgs("o-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
		},
		{
			name: "delete_fails",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteAnonymousReservationQuery).WithArgs("o-1").WillReturnError(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMockDB(t)
			tt.setup(mock)

			err := NewOrderRepository(db).FailReservation(context.Background(), "o-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_ExpireReservations(t *testing.T) {
	mock, db := newMockDB(t)
	before := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(expireReservationsQuery).WithArgs(before).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("o-1").AddRow("o-2"))

	ids, err := NewOrderRepository(db).ExpireReservations(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetOrderByClientID(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "buyer_id", "client_order_id", "amount", "transaction_id", "payment_amount",
		"payment_status", "status", "created_at", "updated_at"}

	tests := []struct {
		name    string
		rows    *pgxmock.Rows
		want    *models.Order
		wantErr error
	}{
		{
			name: "pending_reservation_is_visible",
			rows: pgxmock.NewRows(columns).
				AddRow("o-1", "u-1", "c-1", "7.50", "", "0", "pending", models.OrderStatusNotProcessed, created, created),
			want: &models.Order{
				ID:            "o-1",
				BuyerID:       "u-1",
				ClientOrderID: "c-1",
				Amount:        decimal.RequireFromString("7.50"),
				Payment:       models.Payment{Amount: decimal.Zero, Status: models.PaymentStatusPending},
				Status:        models.OrderStatusNotProcessed,
				CreatedAt:     created,
				UpdatedAt:     created,
			},
		},
		{
			name:    "unknown_client_id",
			rows:    pgxmock.NewRows(columns),
			wantErr: models.ErrDataNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMockDB(t)
			mock.ExpectQuery(selectOrderByClientIDQuery).WithArgs("u-1", "c-1").WillReturnRows(tt.rows)

			got, err := NewOrderRepository(db).GetOrderByClientID(context.Background(), "u-1", "c-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				if diff := cmp.Diff(tt.want, got, cmp.Comparer(decimal.Decimal.Equal)); diff != "" {
					t.Errorf("GetOrderByClientID() mismatch (-want +got):\n%s", diff)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_GetOrdersByBuyerID(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orderRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "buyer_id", "client_order_id", "amount", "transaction_id", "payment_amount",
			"payment_status", "status", "created_at", "updated_at", "name", "email"})
	}
	itemRows := pgxmock.NewRows([]string{"order_id", "product_id", "name", "unit_price", "quantity", "line_total",
		"p_id", "p_name", "p_slug", "p_description", "p_price", "p_quantity", "p_shipping",
		"p_created_at", "p_updated_at", "c_id", "c_name", "c_slug"}).
		AddRow("o-1", "P1", "Pen", "2.50", 2, "5.00",
			"P1", "Blue pen", "blue-pen", "", "3.00", 40, true, created, created, "C1", "Office", "office")

	t.Run("orders_with_items", func(t *testing.T) {
		mock, db := newMockDB(t)
		mock.ExpectQuery(selectOrdersByBuyerIDQuery).WithArgs("u-1").WillReturnRows(orderRows().
			AddRow("o-1", "u-1", "", "5.00", "tx-1", "5.00", "settling", models.OrderStatusShipped, created, created, "Ann", "ann@example.com"))
		mock.ExpectQuery(selectOrderItemsQuery).WithArgs([]string{"o-1"}).WillReturnRows(itemRows)

		got, err := NewOrderRepository(db).GetOrdersByBuyerID(context.Background(), "u-1")
		require.NoError(t, err)
		require.Len(t, got, 1)

		order := got[0]
		assert.Equal(t, "tx-1", order.Payment.TransactionID)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
		assert.Equal(t, &models.Buyer{ID: "u-1", Name: "Ann", Email: "ann@example.com"}, order.Buyer)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Pen", order.Items[0].Name)
		assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.50")))
		assert.Equal(t, "Blue pen", order.Items[0].Product.Name)
		assert.True(t, order.Items[0].Product.Price.Equal(decimal.RequireFromString("3.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no_orders_skips_items", func(t *testing.T) {
		mock, db := newMockDB(t)
		mock.ExpectQuery(selectOrdersByBuyerIDQuery).WithArgs("u-1").WillReturnRows(orderRows())

		got, err := NewOrderRepository(db).GetOrdersByBuyerID(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderByID_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	mock.ExpectQuery(selectOrderByIDQuery).WithArgs("o-1").WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := NewOrderRepository(db).GetOrderByID(context.Background(), "o-1")
	assert.ErrorIs(t, err, models.ErrDataNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderQueries_SkipReservations(t *testing.T) {
	for name, query := range map[string]string{
		"by_id":        selectOrderByIDQuery,
		"by_buyer":     selectOrdersByBuyerIDQuery,
		"all":          selectOrdersQuery,
		"status_write": updateOrderStatusQuery,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, query, "payment_status NOT IN ('pending', 'failed')")
		})
	}
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	event := &models.OutboxEvent{Key: "o-1", Payload: []byte(`{"status":"Shipped"}`)}

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "placed_order",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(updateOrderStatusQuery).WithArgs("o-1", models.OrderStatusShipped).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(insertOutboxQuery).WithArgs("o-1", `{"status":"Shipped"}`, models.OutboxPending).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "reservation_or_missing_order",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(updateOrderStatusQuery).WithArgs("o-1", models.OrderStatusShipped).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				mock.ExpectRollback()
			},
			wantErr: models.ErrDataNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMockDB(t)
			tt.setup(mock)

			err := NewOrderRepository(db).UpdateOrderStatus(context.Background(), "o-1", models.OrderStatusShipped, event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
