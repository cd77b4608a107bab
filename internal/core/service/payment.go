package service

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"

	"go.uber.org/zap"
)

// FallbackReason marks payments failed locally because the gateway never
// answered in time. Such payments are never left PENDING.
const FallbackReason = "payment system response delayed"

// PaymentService owns the payment state machine: the outbound PG request
// and the inbound callback reconciliation.
type PaymentService struct {
	repo    port.Repository
	gateway port.PaymentGateway
	logger  *zap.Logger
}

func NewPaymentService(repo port.Repository, gateway port.PaymentGateway, logger *zap.Logger) (*PaymentService, error) {
	return &PaymentService{repo: repo, gateway: gateway, logger: logger}, nil
}

// ProcessPayment creates the PENDING payment row, then calls the PG.
// The row is committed before any network I/O so a crash mid-call still
// leaves a record for the timeout reconciler to converge. No row lock is
// held across the gateway call.
func (s *PaymentService) ProcessPayment(ctx context.Context, cmd port.PaymentCommand) (*domain.Payment, error) {
	user, err := s.repo.GetUserByLogin(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	order, err := s.repo.GetOrderByIDAndUserID(ctx, cmd.OrderID, user.ID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending || order.PaymentMethod != domain.PaymentMethodCard {
		return nil, domain.ErrOrderNotPayable
	}
	if order.FinalTotal.Cmp(cmd.Amount) != 0 {
		return nil, domain.ErrAmountMismatch
	}

	payment := domain.NewPendingPayment(order.ID, user.ID, cmd.Amount, cmd.CardType, cmd.CardNo, "")
	payment, err = s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.RequestPayment(ctx, user.Login, port.GatewayRequest{
		OrderID:  order.ID,
		CardType: cmd.CardType,
		CardNo:   cmd.CardNo,
		Amount:   cmd.Amount,
	})
	if err != nil {
		// transport failure, exhausted retries or open breaker: write a
		// definitive FAILED instead of leaking an unresolvable PENDING
		s.logger.Error("gateway request failed, writing failed payment",
			zap.Uint64("order", order.ID), zap.Error(err))
		if ferr := s.failPayment(ctx, payment, FallbackReason); ferr != nil {
			return nil, ferr
		}
		return payment, nil
	}

	if result.Status == port.GatewayStatusFailed {
		// explicit business rejection by the PG, not retried
		if ferr := s.failPayment(ctx, payment, result.Reason); ferr != nil {
			return nil, ferr
		}
		return payment, nil
	}

	if err := payment.AssignTransactionKey(result.TransactionKey); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("gateway accepted payment, awaiting callback",
		zap.Uint64("order", order.ID),
		zap.String("transactionKey", result.TransactionKey))

	return payment, nil
}

func (s *PaymentService) failPayment(ctx context.Context, payment *domain.Payment, reason string) error {
	return s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		if err := payment.Fail(reason); err != nil {
			return err
		}
		if err := tx.UpdatePayment(ctx, payment); err != nil {
			return err
		}
		event, err := domain.NewEvent(domain.EventPaymentFailed, domain.PaymentFailedPayload{
			TransactionKey: payment.TransactionKey,
			OrderID:        payment.OrderID,
			UserID:         payment.UserID,
			Reason:         reason,
		})
		if err != nil {
			return err
		}
		return tx.EnqueueEvent(ctx, event)
	})
}

// HandleCallback reconciles a PG callback against local state. The
// callback payload is never trusted alone: the gateway is re-queried
// and the callback must agree with it. Duplicate and late callbacks are
// acknowledged without side effects.
func (s *PaymentService) HandleCallback(ctx context.Context, cb port.CallbackCommand) error {
	payment, err := s.repo.GetPaymentByTransactionKey(ctx, cb.TransactionKey)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return domain.ErrPaymentNotFound
		}
		return err
	}

	if payment.Status != domain.PaymentStatusPending {
		s.logger.Info("duplicate callback ignored",
			zap.String("transactionKey", cb.TransactionKey),
			zap.String("status", string(payment.Status)))
		return nil
	}

	user, err := s.repo.GetUserByID(ctx, payment.UserID)
	if err != nil {
		return err
	}

	pgData, err := s.gateway.GetPayment(ctx, user.Login, cb.TransactionKey)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
	}

	if payment.OrderID != cb.OrderID {
		s.logger.Error("callback order mismatch",
			zap.Uint64("stored", payment.OrderID), zap.Uint64("callback", cb.OrderID))
		return domain.ErrPaymentDataMismatch
	}
	if cb.Status != pgData.Status {
		s.logger.Error("callback status disagrees with gateway",
			zap.String("callback", cb.Status), zap.String("gateway", pgData.Status))
		return domain.ErrPaymentDataMismatch
	}

	order, err := s.repo.GetOrderByIDAndUserID(ctx, payment.OrderID, payment.UserID)
	if err != nil {
		return err
	}
	if pgData.Amount.Cmp(order.FinalTotal) != 0 {
		return domain.ErrAmountMismatch
	}

	return s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		locked, err := tx.GetPaymentForUpdate(ctx, payment.ID)
		if err != nil {
			return err
		}
		if locked.Status != domain.PaymentStatusPending {
			// lost the race with a concurrent callback or the reconciler
			return nil
		}

		switch pgData.Status {
		case port.GatewayStatusSuccess:
			if err := locked.Complete(); err != nil {
				return err
			}
			if err := tx.UpdatePayment(ctx, locked); err != nil {
				return err
			}
			event, err := domain.NewEvent(domain.EventPaymentCompleted, domain.PaymentCompletedPayload{
				TransactionKey: locked.TransactionKey,
				OrderID:        locked.OrderID,
				UserID:         locked.UserID,
				Amount:         locked.Amount.String(),
			})
			if err != nil {
				return err
			}
			return tx.EnqueueEvent(ctx, event)

		case port.GatewayStatusFailed:
			reason := pgData.Reason
			if reason == "" {
				reason = cb.Reason
			}
			if err := locked.Fail(reason); err != nil {
				return err
			}
			if err := tx.UpdatePayment(ctx, locked); err != nil {
				return err
			}
			event, err := domain.NewEvent(domain.EventPaymentFailed, domain.PaymentFailedPayload{
				TransactionKey: locked.TransactionKey,
				OrderID:        locked.OrderID,
				UserID:         locked.UserID,
				Reason:         reason,
			})
			if err != nil {
				return err
			}
			return tx.EnqueueEvent(ctx, event)

		case port.GatewayStatusPending:
			s.logger.Debug("callback for still-pending transaction",
				zap.String("transactionKey", cb.TransactionKey))
			return nil

		default:
			return domain.ErrPaymentDataMismatch
		}
	})
}

func (s *PaymentService) GetPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error) {
	payment, err := s.repo.GetPaymentByTransactionKey(ctx, transactionKey)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return payment, nil
}

// CancelPayment is the manual COMPLETED -> CANCEL edge.
func (s *PaymentService) CancelPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error) {
	return s.transition(ctx, userID, transactionKey, (*domain.Payment).CancelPayment)
}

// RefundPayment is the manual COMPLETED|CANCEL -> REFUNDED edge.
func (s *PaymentService) RefundPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error) {
	return s.transition(ctx, userID, transactionKey, (*domain.Payment).Refund)
}

func (s *PaymentService) transition(ctx context.Context, userID uint64, transactionKey string, fn func(*domain.Payment) error) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, userID, transactionKey)
	if err != nil {
		return nil, err
	}
	err = s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		locked, err := tx.GetPaymentForUpdate(ctx, payment.ID)
		if err != nil {
			return err
		}
		if err := fn(locked); err != nil {
			return err
		}
		payment = locked
		return tx.UpdatePayment(ctx, locked)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
