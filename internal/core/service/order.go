package service

import (
	"context"
	"errors"
	"sort"

	"checkout/internal/core/domain"
	"checkout/internal/core/port"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// OrderService orchestrates order creation and the compensating
// transactions that undo stock, coupon and point effects.
type OrderService struct {
	repo   port.Repository
	logger *zap.Logger
}

func NewOrderService(repo port.Repository, logger *zap.Logger) (*OrderService, error) {
	return &OrderService{repo: repo, logger: logger}, nil
}

// CreateOrder runs the whole checkout write in one transaction: user row
// lock, product row locks ascending by id, stock deduction, coupon
// consumption and, for point-funded orders, the point debit. Either all
// of it commits or none of it does.
func (s *OrderService) CreateOrder(ctx context.Context, cmd port.CreateOrderCommand) (*domain.Order, []*domain.OrderItem, error) {
	if len(cmd.Items) == 0 {
		return nil, nil, domain.ErrInvalidOrderItems
	}
	if cmd.PaymentMethod != domain.PaymentMethodPoint && cmd.PaymentMethod != domain.PaymentMethodCard {
		return nil, nil, domain.ErrBadRequest
	}

	seen := make(map[uint64]struct{}, len(cmd.Items))
	for _, it := range cmd.Items {
		if it.Quantity < domain.MinOrderQuantity || it.Quantity > domain.MaxOrderQuantity {
			return nil, nil, domain.ErrInvalidOrderItems
		}
		if _, dup := seen[it.ProductID]; dup {
			// duplicate product ids in one order are invalid input
			return nil, nil, domain.ErrInvalidOrderItems
		}
		seen[it.ProductID] = struct{}{}
	}

	items := make([]port.OrderItemCommand, len(cmd.Items))
	copy(items, cmd.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	var order *domain.Order
	var orderItems []*domain.OrderItem

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		user, err := tx.GetUserForUpdate(ctx, cmd.Username)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		originalTotal := decimal.Zero
		discountTotal := decimal.Zero
		orderItems = orderItems[:0]

		for _, it := range items {
			product, err := tx.GetProductForUpdate(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if !product.CanOrder(it.Quantity) {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Requested: it.Quantity,
					Available: product.Stock,
				}
			}

			qty, err := decimal.New(int64(it.Quantity), 0)
			if err != nil {
				return err
			}
			basePrice, err := product.Price.Mul(qty)
			if err != nil {
				return err
			}

			discount := decimal.Zero
			if it.CouponID != nil {
				coupon, err := tx.GetCouponForUpdate(ctx, *it.CouponID)
				if err != nil {
					return err
				}
				if err := coupon.VerifyOwnership(user.ID); err != nil {
					return err
				}
				if err := coupon.Use(); err != nil {
					return err
				}
				discount, err = coupon.Discount(basePrice)
				if err != nil {
					return err
				}
				if err := tx.UpdateCouponStatus(ctx, coupon.ID, coupon.Status); err != nil {
					return err
				}
			}

			item, err := domain.NewOrderItem(it.ProductID, it.CouponID, it.Quantity, product.Price, discount)
			if err != nil {
				return err
			}
			orderItems = append(orderItems, item)

			if err := product.DeductStock(it.Quantity); err != nil {
				return err
			}
			if err := tx.UpdateProductStock(ctx, product.ID, product.Stock); err != nil {
				return err
			}

			if originalTotal, err = originalTotal.Add(basePrice); err != nil {
				return err
			}
			if discountTotal, err = discountTotal.Add(discount); err != nil {
				return err
			}
		}

		finalTotal, err := originalTotal.Sub(discountTotal)
		if err != nil {
			return err
		}

		order, err = domain.NewOrder(user.ID, originalTotal, discountTotal, finalTotal, cmd.PaymentMethod)
		if err != nil {
			return err
		}
		order, err = tx.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := tx.CreateOrderItems(ctx, orderItems); err != nil {
			return err
		}

		if order.IsPointFunded() {
			balance, err := tx.GetPointBalanceForUpdate(ctx, user.ID)
			if err != nil {
				return err
			}
			if err := balance.Use(finalTotal); err != nil {
				return err
			}
			if err := tx.UpdatePointBalance(ctx, balance); err != nil {
				return err
			}
		}

		s.enqueueOrderCreated(ctx, tx, order)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return order, orderItems, nil
}

// enqueueOrderCreated is observability only; a failure here must not
// roll back the order.
func (s *OrderService) enqueueOrderCreated(ctx context.Context, tx port.Repository, order *domain.Order) {
	event, err := domain.NewEvent(domain.EventOrderCreated, domain.OrderCreatedPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		PaymentMethod: string(order.PaymentMethod),
		FinalTotal:    order.FinalTotal.String(),
	})
	if err == nil {
		err = tx.EnqueueEvent(ctx, event)
	}
	if err != nil {
		s.logger.Warn("order created event not enqueued",
			zap.Uint64("order", order.ID), zap.Error(err))
	}
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint64) (*domain.Order, []*domain.OrderItem, error) {
	order, err := s.repo.GetOrderByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.repo.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// CancelOrder handles a user-initiated cancellation through the same
// compensation path payment failures use.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint64, reason string) error {
	if _, err := s.repo.GetOrderByIDAndUserID(ctx, orderID, userID); err != nil {
		return err
	}
	return s.cancelWithCompensation(ctx, orderID, userID, reason, false)
}

// ConfirmOrderByPayment closes a successful card payment saga.
func (s *OrderService) ConfirmOrderByPayment(ctx context.Context, orderID, userID uint64) error {
	return s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domain.ErrDataNotFound
		}
		if order.Status == domain.OrderStatusConfirmed {
			// redelivered event
			return nil
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		return tx.UpdateOrder(ctx, order)
	})
}

// CancelOrderByPaymentFailure compensates a failed or timed-out card
// payment: restore stock, revert coupons, mark the order CANCELLED.
func (s *OrderService) CancelOrderByPaymentFailure(ctx context.Context, orderID, userID uint64, reason string) error {
	return s.cancelWithCompensation(ctx, orderID, userID, reason, true)
}

// cancelWithCompensation is atomic per order: either every item's stock
// and coupon is restored and the order is CANCELLED, or nothing is.
// Redelivered events see an already-CANCELLED order and no-op.
func (s *OrderService) cancelWithCompensation(ctx context.Context, orderID, userID uint64, reason string, allowConfirmedNoop bool) error {
	return s.repo.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domain.ErrDataNotFound
		}
		if order.Status == domain.OrderStatusCancelled {
			return nil
		}
		if allowConfirmedNoop && order.Status == domain.OrderStatusConfirmed {
			// a completed callback won the race; leave the order alone
			s.logger.Warn("skip compensation for confirmed order", zap.Uint64("order", orderID))
			return nil
		}
		if err := order.Cancel(reason); err != nil {
			return err
		}

		items, err := tx.ListOrderItems(ctx, orderID)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		for _, item := range items {
			product, err := tx.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			product.RestoreStock(item.Quantity)
			if err := tx.UpdateProductStock(ctx, product.ID, product.Stock); err != nil {
				return err
			}

			if item.CouponID == nil {
				continue
			}
			coupon, err := tx.GetCouponForUpdate(ctx, *item.CouponID)
			if err != nil {
				return err
			}
			if coupon.Status != domain.CouponStatusUsed {
				// double compensation; halt this order for manual review
				return domain.ErrInvalidCompensationState
			}
			coupon.Revert()
			if err := tx.UpdateCouponStatus(ctx, coupon.ID, coupon.Status); err != nil {
				return err
			}
		}

		if order.IsPointFunded() {
			balance, err := tx.GetPointBalanceForUpdate(ctx, order.UserID)
			if err != nil {
				return err
			}
			if err := balance.Refund(order.FinalTotal); err != nil {
				return err
			}
			if err := tx.UpdatePointBalance(ctx, balance); err != nil {
				return err
			}
		}

		return tx.UpdateOrder(ctx, order)
	})
}
