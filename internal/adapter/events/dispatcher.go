package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"checkout/internal/adapter/storage/repository"
	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

const (
	dispatchInterval  = time.Second
	dispatchBatchSize = 100
	baseRetryDelay    = 5 * time.Second
	maxRetryDelay     = 5 * time.Minute
)

// EventPublisher abstracts the broker from the dispatch loop.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.EventEnvelope) error
}

// Dispatcher drains the outbox. Events are claimed under row locks
// inside a transaction, published, and marked sent before the claim
// commits; a publish failure reschedules the row with exponential
// backoff instead of losing it.
type Dispatcher struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher EventPublisher
}

func NewDispatcher(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		logger:    log,
		repo:      repo,
		publisher: publisher,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(dispatchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := d.dispatchBatch(ctx); err != nil {
					d.logger.Error("outbox dispatch failed", zap.Error(err))
				}
			case <-ctx.Done():
				d.logger.Debug("outbox dispatcher stopped")
				return
			}
		}
	}()
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) error {
	return d.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		txr := tx.(*repository.Repository)

		events, err := txr.FetchDueEvents(ctx, dispatchBatchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if err := d.publisher.Publish(ctx, &ev.Envelope); err != nil {
				delay := retryDelay(ev.Attempts)
				d.logger.Warn("event publish failed, rescheduling",
					zap.String("event_id", ev.Envelope.EventID),
					zap.Int("attempts", ev.Attempts),
					zap.Duration("retry_in", delay),
					zap.Error(err))
				if err := txr.MarkEventFailed(ctx, ev.ID, time.Now().Add(delay)); err != nil {
					return err
				}
				continue
			}
			if err := txr.MarkEventSent(ctx, ev.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func retryDelay(attempts int) time.Duration {
	delay := baseRetryDelay
	for i := 0; i < attempts && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
