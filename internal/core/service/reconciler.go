package service

import (
	"context"
	"time"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"

	"go.uber.org/zap"
)

// TimeoutReconciler converges card payments whose callback never
// arrived: PENDING rows older than the staleness threshold become
// TIMEOUT and trigger the same compensation as a failed payment.
type TimeoutReconciler struct {
	repo      port.Repository
	interval  time.Duration
	threshold time.Duration
	logger    *zap.Logger
}

func NewTimeoutReconciler(repo port.Repository, interval, threshold time.Duration, logger *zap.Logger) *TimeoutReconciler {
	return &TimeoutReconciler{
		repo:      repo,
		interval:  interval,
		threshold: threshold,
		logger:    logger,
	}
}

func (r *TimeoutReconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.logger.Debug("reconciler stopped")
				return
			case <-ticker.C:
				r.Sweep(ctx)
			}
		}
	}()
}

// Sweep handles every stale payment in its own transaction. One failure
// must not abort the sweep; failed rows stay PENDING and are retried on
// the next tick.
func (r *TimeoutReconciler) Sweep(ctx context.Context) (succeeded, failed int) {
	cutoff := time.Now().Add(-r.threshold)
	stale, err := r.repo.ListPendingPaymentsOlderThan(ctx, cutoff)
	if err != nil {
		r.logger.Error("list stale payments", zap.Error(err))
		return 0, 0
	}
	if len(stale) == 0 {
		return 0, 0
	}

	r.logger.Warn("timing out stale payments", zap.Int("count", len(stale)))

	for _, payment := range stale {
		if err := r.timeoutOne(ctx, payment.ID); err != nil {
			r.logger.Error("payment timeout failed",
				zap.Uint64("payment", payment.ID),
				zap.String("transactionKey", payment.TransactionKey),
				zap.Error(err))
			failed++
			continue
		}
		succeeded++
	}

	r.logger.Info("timeout sweep finished",
		zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	return succeeded, failed
}

func (r *TimeoutReconciler) timeoutOne(ctx context.Context, paymentID uint64) error {
	return r.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		payment, err := tx.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentStatusPending {
			// a late callback beat the sweep to this row
			return nil
		}
		if err := payment.Timeout(); err != nil {
			return err
		}
		if err := tx.UpdatePayment(ctx, payment); err != nil {
			return err
		}
		event, err := domain.NewEvent(domain.EventPaymentTimeout, domain.PaymentFailedPayload{
			TransactionKey: payment.TransactionKey,
			OrderID:        payment.OrderID,
			UserID:         payment.UserID,
			Reason:         domain.TimeoutReason,
		})
		if err != nil {
			return err
		}
		return tx.EnqueueEvent(ctx, event)
	})
}
