package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodPoint PaymentMethod = "POINT"
	PaymentMethodCard  PaymentMethod = "CARD"
)

const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 999
)

// Order is an append-only state machine: created PENDING, closed via
// Confirm or Cancel, never mutated after CANCELLED.
type Order struct {
	ID             uint64
	UserID         uint64
	OriginalTotal  decimal.Decimal
	DiscountTotal  decimal.Decimal
	FinalTotal     decimal.Decimal
	PaymentMethod  PaymentMethod
	Status         OrderStatus
	CancelReason   string
	OrderedAt      time.Time
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ProductID uint64
	CouponID  *uint64
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// NewOrder checks the accounting invariant original - discount = final
// before the order may be persisted.
func NewOrder(userID uint64, original, discount, final decimal.Decimal, method PaymentMethod) (*Order, error) {
	check, err := original.Sub(discount)
	if err != nil {
		return nil, err
	}
	if check.Cmp(final) != 0 {
		return nil, ErrInvalidOrderItems
	}
	return &Order{
		UserID:        userID,
		OriginalTotal: original,
		DiscountTotal: discount,
		FinalTotal:    final,
		PaymentMethod: method,
		Status:        OrderStatusPending,
		OrderedAt:     time.Now(),
	}, nil
}

func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return ErrInvalidOrderStatus
	}
	o.Status = OrderStatusConfirmed
	return nil
}

func (o *Order) Cancel(reason string) error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusConfirmed {
		return ErrInvalidOrderStatus
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	return nil
}

func (o *Order) IsPointFunded() bool {
	return o.PaymentMethod == PaymentMethodPoint
}

// NewOrderItem freezes the unit price and the computed discount at order time.
func NewOrderItem(productID uint64, couponID *uint64, quantity int, unitPrice, discount decimal.Decimal) (*OrderItem, error) {
	if quantity < MinOrderQuantity || quantity > MaxOrderQuantity {
		return nil, ErrInvalidOrderItems
	}
	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return nil, err
	}
	base, err := unitPrice.Mul(qty)
	if err != nil {
		return nil, err
	}
	total, err := base.Sub(discount)
	if err != nil {
		return nil, err
	}
	return &OrderItem{
		ProductID: productID,
		CouponID:  couponID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  discount,
		Total:     total,
	}, nil
}

// BasePrice is unit price times quantity, before any discount.
func (i *OrderItem) BasePrice() (decimal.Decimal, error) {
	qty, err := decimal.New(int64(i.Quantity), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return i.UnitPrice.Mul(qty)
}
