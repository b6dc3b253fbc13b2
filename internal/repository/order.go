package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
	"github.com/shopspring/decimal"
)

const (
	pgErrUniqueViolationCode = "23505"

	orderColumns = `o.id, o.buyer_id, COALESCE(o.client_order_id, ''), o.amount::text,
						COALESCE(o.transaction_id, ''), COALESCE(o.payment_amount::text, '0'),
						o.payment_status, o.status, o.created_at, o.updated_at`

	// a reservation that failed earlier is re-armed in place, any other conflict returns no rows
	insertReservationQuery = `
						INSERT INTO orders (id, buyer_id, client_order_id, amount, payment_status, status)
						VALUES ($1, $2, $3, $4, 'pending', $5)
						ON CONFLICT (buyer_id, client_order_id) DO UPDATE
						SET amount = EXCLUDED.amount,
						    payment_status = 'pending',
						    transaction_id = NULL,
						    payment_amount = NULL,
						    status = EXCLUDED.status,
						    created_at = now(),
						    updated_at = now()
						WHERE orders.payment_status = 'failed'
						RETURNING id, created_at, updated_at
`
	deleteOrderItemsQuery = `
						DELETE FROM order_items WHERE order_id = $1
`
	insertOrderItemQuery = `
						INSERT INTO order_items (order_id, position, product_id, name, unit_price, quantity, line_total)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	finalizeOrderQuery = `
						UPDATE orders
						SET transaction_id = $2, payment_amount = $3, payment_status = $4, updated_at = now()
						WHERE id = $1 AND payment_status IN ('pending', 'failed')
`
	selectTransactionIDQuery = `
						SELECT COALESCE(transaction_id, '') FROM orders WHERE id = $1
`
	// reservations without client order id can not be retried, nothing refers to them after a decline
	deleteAnonymousReservationQuery = `
						DELETE FROM orders
						WHERE id = $1 AND payment_status = 'pending' AND client_order_id IS NULL
`
	failReservationQuery = `
						UPDATE orders
						SET payment_status = 'failed', updated_at = now()
						WHERE id = $1 AND payment_status = 'pending'
`
	expireReservationsQuery = `
						UPDATE orders
						SET payment_status = 'failed', updated_at = now()
						WHERE payment_status = 'pending' AND updated_at < $1
						RETURNING id
`
	selectOrderByClientIDQuery = `
						SELECT ` + orderColumns + ` FROM orders o
						WHERE o.buyer_id = $1 AND o.client_order_id = $2
`
	selectPlacedOrdersQuery = `
						SELECT ` + orderColumns + `, u.name, u.email FROM orders o
						JOIN users u ON u.id = o.buyer_id
						WHERE o.payment_status NOT IN ('pending', 'failed')
`
	selectOrderByIDQuery       = selectPlacedOrdersQuery + ` AND o.id = $1`
	selectOrdersByBuyerIDQuery = selectPlacedOrdersQuery + ` AND o.buyer_id = $1 ORDER BY o.created_at DESC`
	selectOrdersQuery          = selectPlacedOrdersQuery + ` ORDER BY o.created_at DESC`

	selectOrderItemsQuery = `
						SELECT i.order_id, i.product_id, i.name, i.unit_price::text, i.quantity, i.line_total::text,
						       ` + productColumns + `
						FROM order_items i
						JOIN products p ON p.id = i.product_id
						JOIN categories c ON c.id = p.category_id
						WHERE i.order_id = ANY($1)
						ORDER BY i.order_id, i.position
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $2, updated_at = now()
						WHERE id = $1 AND payment_status NOT IN ('pending', 'failed')
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ReserveOrder writes order with line items and pending payment in one transaction.
// Returns models.ErrConflictData when buyer already has a live order with the same client order id.
func (or *OrderRepository) ReserveOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertReservationQuery,
			order.ID, order.BuyerID, nullString(order.ClientOrderID), order.Amount, order.Status,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrConflictData
			}
			return err
		}

		if _, err := tx.Exec(ctx, deleteOrderItemsQuery, order.ID); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, item := range order.Items {
			batch.Queue(insertOrderItemQuery,
				order.ID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.LineTotal)
		}

		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return nil, err
	}

	order.Payment = models.Payment{Status: models.PaymentStatusPending}

	return order, nil
}

// FinalizeOrder stores captured payment and event of placed order.
// Finalizing an order again with the same transaction is a no-op.
func (or *OrderRepository) FinalizeOrder(ctx context.Context, orderID string, payment models.Payment, event *models.OutboxEvent) error {
	return or.db.InTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, finalizeOrderQuery, orderID, payment.TransactionID, payment.Amount, payment.Status)
		if err != nil {
			return err
		}

		if cmd.RowsAffected() == 0 {
			var txID string
			if err := tx.QueryRow(ctx, selectTransactionIDQuery, orderID).Scan(&txID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return models.ErrDataNotFound
				}
				return err
			}
			if txID != "" && txID == payment.TransactionID {
				return nil
			}
			return models.ErrDataNotFound
		}

		if event == nil {
			return nil
		}

		return insertOutbox(ctx, tx, event)
	})
}

// FailReservation releases pending order after declined payment.
// Reservation without client order id is deleted with its items, any other is marked as failed
// and may be re-armed by a retry with the same client order id.
func (or *OrderRepository) FailReservation(ctx context.Context, orderID string) error {
	cmd, err := or.db.Exec(ctx, deleteAnonymousReservationQuery, orderID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() > 0 {
		return nil
	}

	_, err = or.db.Exec(ctx, failReservationQuery, orderID)
	return err
}

// ExpireReservations fails reservations not updated since before, returns their ids
func (or *OrderRepository) ExpireReservations(ctx context.Context, before time.Time) ([]string, error) {
	rows, err := or.db.Query(ctx, expireReservationsQuery, before)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// GetOrderByClientID returns buyer's order by client order id regardless of payment status
func (or *OrderRepository) GetOrderByClientID(ctx context.Context, buyerID, clientOrderID string) (*models.Order, error) {
	order := models.Order{}
	err := scanOrder(or.db.QueryRow(ctx, selectOrderByClientIDQuery, buyerID, clientOrderID), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrderByID returns placed order with buyer and products
func (or *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	orders, err := or.listOrders(ctx, selectOrderByIDQuery, orderID)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, models.ErrDataNotFound
	}

	return &orders[0], nil
}

// GetOrdersByBuyerID returns placed orders of buyer, newest first
func (or *OrderRepository) GetOrdersByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error) {
	return or.listOrders(ctx, selectOrdersByBuyerIDQuery, buyerID)
}

// GetOrders returns all placed orders, newest first
func (or *OrderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	return or.listOrders(ctx, selectOrdersQuery)
}

// UpdateOrderStatus overwrites order status
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, event *models.OutboxEvent) error {
	return or.db.InTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, updateOrderStatusQuery, orderID, status)
		if err != nil {
			return err
		}

		if cmd.RowsAffected() == 0 {
			return models.ErrDataNotFound
		}

		if event == nil {
			return nil
		}

		return insertOutbox(ctx, tx, event)
	})
}

func (or *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	index := map[string]int{}

	for rows.Next() {
		order := models.Order{Buyer: &models.Buyer{}}
		var amount, paymentAmount string
		err = rows.Scan(&order.ID, &order.BuyerID, &order.ClientOrderID, &amount,
			&order.Payment.TransactionID, &paymentAmount, &order.Payment.Status, &order.Status,
			&order.CreatedAt, &order.UpdatedAt, &order.Buyer.Name, &order.Buyer.Email)
		if err != nil {
			return nil, err
		}
		if err := setAmounts(&order, amount, paymentAmount); err != nil {
			return nil, err
		}
		order.Buyer.ID = order.BuyerID

		index[order.ID] = len(orders)
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	if err := or.attachItems(ctx, orders, index, ids); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads line items joined with current products
func (or *OrderRepository) attachItems(ctx context.Context, orders []models.Order, index map[string]int, ids []string) error {
	rows, err := or.db.Query(ctx, selectOrderItemsQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID              string
			unitPrice, lineTotal string
			item                 models.LineItem
		)
		product, dest := productScanDest()
		err = rows.Scan(append([]any{&orderID, &item.ProductID, &item.Name, &unitPrice, &item.Quantity, &lineTotal}, dest...)...)
		if err != nil {
			return err
		}
		if err := product.finish(); err != nil {
			return err
		}

		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return err
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return err
		}
		item.Product = &product.Product

		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}

	return rows.Err()
}

func scanOrder(row pgx.Row, order *models.Order) error {
	var amount, paymentAmount string
	err := row.Scan(&order.ID, &order.BuyerID, &order.ClientOrderID, &amount,
		&order.Payment.TransactionID, &paymentAmount, &order.Payment.Status, &order.Status,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	return setAmounts(order, amount, paymentAmount)
}

func setAmounts(order *models.Order, amount, paymentAmount string) error {
	var err error
	if order.Amount, err = decimal.NewFromString(amount); err != nil {
		return err
	}
	if order.Payment.Amount, err = decimal.NewFromString(paymentAmount); err != nil {
		return err
	}
	return nil
}

// nullString stores empty string as NULL
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
