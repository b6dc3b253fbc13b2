package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
)

const (
	insertOutboxQuery = `
						INSERT INTO outbox (event_key, payload, status)
						VALUES ($1, $2, $3)
`
	selectPendingOutboxQuery = `
						SELECT id, event_key, payload, status, created_at FROM outbox
						WHERE status = $1
						ORDER BY id
						LIMIT $2
`
	markDoneOutboxesQuery = `
						UPDATE outbox
						SET status = $1, updated_at = now()
						WHERE id = ANY($2)
`
)

// OutboxRepository gives access to events waiting for delivery
type OutboxRepository struct {
	db *postgres.DB
}

// NewOutboxRepository creates new OutboxRepository instance
func NewOutboxRepository(db *postgres.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// GetPendingOutbox returns oldest undelivered events
func (r *OutboxRepository) GetPendingOutbox(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	rows, err := r.db.Query(ctx, selectPendingOutboxQuery, models.OutboxPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.OutboxEvent

	for rows.Next() {
		e := models.OutboxEvent{}
		if err := rows.Scan(&e.ID, &e.Key, &e.Payload, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// MarkDoneOutboxes marks events as delivered
func (r *OutboxRepository) MarkDoneOutboxes(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, markDoneOutboxesQuery, models.OutboxCompleted, ids)
	return err
}

// insertOutbox writes event as part of caller's transaction
func insertOutbox(ctx context.Context, tx pgx.Tx, event *models.OutboxEvent) error {
	_, err := tx.Exec(ctx, insertOutboxQuery, event.Key, string(event.Payload), models.OutboxPending)
	return err
}
