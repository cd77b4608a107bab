package domain_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"

	"checkout/internal/core/domain"
)

func TestNewOrder_TotalsInvariant(t *testing.T) {
	order, err := domain.NewOrder(1,
		decimal.MustParse("10000"), decimal.MustParse("3000"), decimal.MustParse("7000"),
		domain.PaymentMethodCard)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	_, err = domain.NewOrder(1,
		decimal.MustParse("10000"), decimal.MustParse("3000"), decimal.MustParse("6000"),
		domain.PaymentMethodCard)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderItems)
}

func TestOrder_Transitions(t *testing.T) {
	order, err := domain.NewOrder(1,
		decimal.MustParse("100"), decimal.Zero, decimal.MustParse("100"),
		domain.PaymentMethodPoint)
	assert.NoError(t, err)

	assert.NoError(t, order.Confirm())
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)

	// confirmed orders may still be cancelled, cancelled ones may not
	assert.NoError(t, order.Cancel("change of mind"))
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, "change of mind", order.CancelReason)

	assert.ErrorIs(t, order.Confirm(), domain.ErrInvalidOrderStatus)
	assert.ErrorIs(t, order.Cancel("again"), domain.ErrInvalidOrderStatus)
}

func TestNewOrderItem(t *testing.T) {
	item, err := domain.NewOrderItem(3, nil, 2, decimal.MustParse("1500"), decimal.MustParse("300"))
	assert.NoError(t, err)
	assert.Equal(t, 0, item.Total.Cmp(decimal.MustParse("2700")))

	base, err := item.BasePrice()
	assert.NoError(t, err)
	assert.Equal(t, 0, base.Cmp(decimal.MustParse("3000")))

	_, err = domain.NewOrderItem(3, nil, 0, decimal.MustParse("1500"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderItems)

	_, err = domain.NewOrderItem(3, nil, 1000, decimal.MustParse("1500"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderItems)
}

func TestProduct_Stock(t *testing.T) {
	product := domain.Product{ID: 9, Stock: 5}

	assert.True(t, product.CanOrder(5))
	assert.False(t, product.CanOrder(6))
	assert.False(t, product.CanOrder(0))

	assert.NoError(t, product.DeductStock(5))
	assert.Equal(t, 0, product.Stock)

	err := product.DeductStock(1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, uint64(9), stockErr.ProductID)
	assert.Equal(t, 0, stockErr.Available)

	product.RestoreStock(5)
	assert.Equal(t, 5, product.Stock)
}

func TestPointBalance(t *testing.T) {
	balance := domain.PointBalance{UserID: 1, Amount: decimal.MustParse("100")}

	assert.ErrorIs(t, balance.Charge(decimal.Zero), domain.ErrBadRequest)
	assert.NoError(t, balance.Charge(decimal.MustParse("50")))
	assert.Equal(t, 0, balance.Amount.Cmp(decimal.MustParse("150")))

	err := balance.Use(decimal.MustParse("200"))
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Equal(t, 0, balance.Amount.Cmp(decimal.MustParse("150")), "failed use must not change balance")

	assert.NoError(t, balance.Use(decimal.MustParse("150")))
	assert.Equal(t, 0, balance.Amount.Sign())

	assert.NoError(t, balance.Refund(decimal.MustParse("150")))
	assert.Equal(t, 0, balance.Amount.Cmp(decimal.MustParse("150")))
}
