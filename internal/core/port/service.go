package port

import (
	"context"

	"checkout/internal/core/domain"

	"github.com/govalues/decimal"
)

type OrderItemCommand struct {
	ProductID uint64
	CouponID  *uint64
	Quantity  int
}

type CreateOrderCommand struct {
	Username      string
	PaymentMethod domain.PaymentMethod
	Items         []OrderItemCommand
}

type PaymentCommand struct {
	Username string
	OrderID  uint64
	CardType string
	CardNo   string
	Amount   decimal.Decimal
}

// CallbackCommand is the PG callback payload. Nothing in it is trusted
// before re-verification against the gateway.
type CallbackCommand struct {
	TransactionKey string
	OrderID        uint64
	Status         string
	Amount         decimal.Decimal
	Reason         string
}

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, []*domain.OrderItem, error)
	GetOrder(ctx context.Context, userID, orderID uint64) (*domain.Order, []*domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, userID, orderID uint64, reason string) error

	ConfirmOrderByPayment(ctx context.Context, orderID, userID uint64) error
	CancelOrderByPaymentFailure(ctx context.Context, orderID, userID uint64, reason string) error
}

type PaymentService interface {
	ProcessPayment(ctx context.Context, cmd PaymentCommand) (*domain.Payment, error)
	HandleCallback(ctx context.Context, cb CallbackCommand) error
	GetPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error)
	CancelPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error)
	RefundPayment(ctx context.Context, userID uint64, transactionKey string) (*domain.Payment, error)
}

type UserService interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login, password string) (string, error)
	GetPointBalance(ctx context.Context, userID uint64) (*domain.PointBalance, error)
	ChargePoints(ctx context.Context, userID uint64, amount decimal.Decimal) (*domain.PointBalance, error)
}
