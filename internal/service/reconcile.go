package service

import (
	"context"
	"errors"
	"time"

	"github.com/rookgm/gopherstore/internal/logger"
	"github.com/rookgm/gopherstore/internal/models"
	"go.uber.org/zap"
)

// ReconcileRepository is interface for repairing orders left behind by checkout
type ReconcileRepository interface {
	// FinalizeOrder stores captured payment and outbox event
	FinalizeOrder(ctx context.Context, orderID string, payment models.Payment, event *models.OutboxEvent) error
	// ExpireReservations fails reservations not updated since before
	ExpireReservations(ctx context.Context, before time.Time) ([]string, error)
}

// Journal is journal of captures waiting for order store
type Journal interface {
	Pending() ([]models.JournalEntry, error)
	MarkAttempt(orderID string, cause error) error
	Remove(orderID string) error
}

// ReconcileService writes journaled captures and expires stale reservations
type ReconcileService struct {
	repo    ReconcileRepository
	journal Journal
	now     func() time.Time
}

// NewReconcileService creates new ReconcileService instance
func NewReconcileService(repo ReconcileRepository, journal Journal) *ReconcileService {
	return &ReconcileService{
		repo:    repo,
		journal: journal,
		now:     time.Now,
	}
}

// ReplayJournal finalizes journaled captures, returns number of saved orders.
// Entries that still fail stay in the journal for the next run.
func (rs *ReconcileService) ReplayJournal(ctx context.Context) (int, error) {
	entries, err := rs.journal.Pending()
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}

		err := rs.repo.FinalizeOrder(ctx, entry.OrderID, entry.Payment, entry.Event())
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				logger.Log.Error("journaled capture has no matching reservation",
					zap.String("order", entry.OrderID),
					zap.String("transaction", entry.Payment.TransactionID))
			} else {
				logger.Log.Warn("journaled capture is not saved yet",
					zap.String("order", entry.OrderID),
					zap.Int("attempts", entry.Attempts+1),
					zap.Error(err))
			}
			if merr := rs.journal.MarkAttempt(entry.OrderID, err); merr != nil {
				logger.Log.Error("journal update", zap.String("order", entry.OrderID), zap.Error(merr))
			}
			continue
		}

		if err := rs.journal.Remove(entry.OrderID); err != nil {
			logger.Log.Error("journal remove", zap.String("order", entry.OrderID), zap.Error(err))
		}

		logger.Log.Info("journaled capture saved",
			zap.String("order", entry.OrderID),
			zap.String("transaction", entry.Payment.TransactionID))
		saved++
	}

	return saved, nil
}

// ExpireReservations fails reservations older than ttl, returns their ids
func (rs *ReconcileService) ExpireReservations(ctx context.Context, ttl time.Duration) ([]string, error) {
	ids, err := rs.repo.ExpireReservations(ctx, rs.now().Add(-ttl))
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		// outcome of the capture is unknown, it has to be checked at the gateway
		logger.Log.Warn("reservation expired", zap.String("order", id), zap.Duration("ttl", ttl))
	}

	return ids, nil
}
