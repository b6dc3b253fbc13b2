package service

import (
	"context"

	"github.com/rookgm/gopherstore/internal/models"
)

// OutboxRepository is interface for outbox events
type OutboxRepository interface {
	// GetPendingOutbox returns oldest undelivered events
	GetPendingOutbox(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	// MarkDoneOutboxes marks events as delivered
	MarkDoneOutboxes(ctx context.Context, ids []int64) error
}

// EventPublisher delivers events to message broker
type EventPublisher interface {
	Publish(ctx context.Context, events []models.OutboxEvent) error
}

// EventRelay moves outbox events to message broker
type EventRelay struct {
	repo      OutboxRepository
	publisher EventPublisher
}

// NewEventRelay creates new EventRelay instance
func NewEventRelay(repo OutboxRepository, publisher EventPublisher) *EventRelay {
	return &EventRelay{
		repo:      repo,
		publisher: publisher,
	}
}

// RelayEvents publishes up to limit pending events, returns number of delivered events.
// Events are delivered at least once.
func (er *EventRelay) RelayEvents(ctx context.Context, limit int) (int, error) {
	pending, err := er.repo.GetPendingOutbox(ctx, limit)
	if err != nil {
		return 0, err
	}

	if len(pending) == 0 {
		return 0, nil
	}

	if err := er.publisher.Publish(ctx, pending); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(pending))
	for _, e := range pending {
		ids = append(ids, e.ID)
	}

	if err := er.repo.MarkDoneOutboxes(ctx, ids); err != nil {
		return 0, err
	}

	return len(ids), nil
}
