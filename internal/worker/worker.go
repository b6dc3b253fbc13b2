package worker

import (
	"context"
	"time"

	"github.com/rookgm/gopherstore/internal/logger"
	"go.uber.org/zap"
)

type Reconciler interface {
	// ReplayJournal saves captures that checkout could not write
	ReplayJournal(ctx context.Context) (int, error)
	// ExpireReservations fails reservations older than ttl
	ExpireReservations(ctx context.Context, ttl time.Duration) ([]string, error)
}

type Relay interface {
	// RelayEvents publishes pending outbox events
	RelayEvents(ctx context.Context, limit int) (int, error)
}

// Settings of order processor
type Settings struct {
	Interval       time.Duration
	ReservationTTL time.Duration
	BatchSize      int
}

// OrderProcessor is worker repairing interrupted checkouts and publishing order events
type OrderProcessor struct {
	reconciler Reconciler
	relay      Relay
	settings   Settings
}

// NewOrderProcessor create new order processor, relay is optional
func NewOrderProcessor(reconciler Reconciler, relay Relay, settings Settings) *OrderProcessor {
	if settings.Interval <= 0 {
		settings.Interval = 10 * time.Second
	}
	if settings.BatchSize <= 0 {
		settings.BatchSize = 100
	}
	return &OrderProcessor{
		reconciler: reconciler,
		relay:      relay,
		settings:   settings,
	}
}

// ProcessOrders runs processing every interval until ctx is done
func (op *OrderProcessor) ProcessOrders(ctx context.Context) {
	ticker := time.NewTicker(op.settings.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("order processor is done")
			return
		case <-ticker.C:
			op.process(ctx)
		}
	}
}

// process runs one pass. Journal goes first so a journaled capture is saved before its reservation expires.
func (op *OrderProcessor) process(ctx context.Context) {
	if saved, err := op.reconciler.ReplayJournal(ctx); err != nil {
		logger.Log.Error("error replay capture journal", zap.Error(err))
	} else if saved > 0 {
		logger.Log.Info("journaled orders saved", zap.Int("count", saved))
	}

	if op.settings.ReservationTTL > 0 {
		expired, err := op.reconciler.ExpireReservations(ctx, op.settings.ReservationTTL)
		if err != nil {
			logger.Log.Error("error expire reservations", zap.Error(err))
		} else if len(expired) > 0 {
			logger.Log.Info("reservations expired", zap.Strings("orders", expired))
		}
	}

	if op.relay == nil {
		return
	}

	for {
		sent, err := op.relay.RelayEvents(ctx, op.settings.BatchSize)
		if err != nil {
			logger.Log.Error("error relay order events", zap.Error(err))
			return
		}
		if sent < op.settings.BatchSize || ctx.Err() != nil {
			return
		}
	}
}
