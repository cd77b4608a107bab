package port

import (
	"context"
	"time"

	"checkout/internal/core/domain"
)

// Repository is the persistence port. WithinTransaction hands the
// closure a Repository bound to one transaction; row locks taken through
// the ForUpdate methods are released when that transaction commits or
// rolls back. Lock order is the caller's responsibility: user row first,
// then product rows ascending by id.
//
//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error

	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint64) (*domain.User, error)
	GetUserForUpdate(ctx context.Context, login string) (*domain.User, error)

	// Product
	GetProductForUpdate(ctx context.Context, id uint64) (*domain.Product, error)
	UpdateProductStock(ctx context.Context, id uint64, stock int) error

	// Coupon
	GetCouponForUpdate(ctx context.Context, id uint64) (*domain.Coupon, error)
	UpdateCouponStatus(ctx context.Context, id uint64, status domain.CouponStatus) error

	// Points
	GetPointBalance(ctx context.Context, userID uint64) (*domain.PointBalance, error)
	GetPointBalanceForUpdate(ctx context.Context, userID uint64) (*domain.PointBalance, error)
	UpdatePointBalance(ctx context.Context, balance *domain.PointBalance) error

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateOrderItems(ctx context.Context, items []*domain.OrderItem) error
	GetOrderByIDAndUserID(ctx context.Context, orderID, userID uint64) (*domain.Order, error)
	GetOrderForUpdate(ctx context.Context, orderID uint64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID uint64) ([]*domain.OrderItem, error)

	// Payment
	CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, payment *domain.Payment) error
	GetPaymentByTransactionKey(ctx context.Context, key string) (*domain.Payment, error)
	GetPaymentForUpdate(ctx context.Context, id uint64) (*domain.Payment, error)
	ListPendingPaymentsOlderThan(ctx context.Context, threshold time.Time) ([]*domain.Payment, error)

	// Outbox. Enqueued events ride the enclosing transaction and are
	// published by the dispatcher after commit.
	EnqueueEvent(ctx context.Context, event *domain.EventEnvelope) error
}
