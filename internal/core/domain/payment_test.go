package domain_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"

	"checkout/internal/core/domain"
)

func newPending() *domain.Payment {
	return domain.NewPendingPayment(1, 2, decimal.MustParse("7000"), "CREDIT", "1234-5678", "")
}

func TestPayment_CompleteFromPendingOnly(t *testing.T) {
	payment := newPending()
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.CompletedAt)

	assert.NoError(t, payment.Complete())
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.NotNil(t, payment.CompletedAt)

	assert.ErrorIs(t, payment.Complete(), domain.ErrInvalidPaymentTransition)
	assert.ErrorIs(t, payment.Fail("late"), domain.ErrInvalidPaymentTransition)
	assert.ErrorIs(t, payment.Timeout(), domain.ErrInvalidPaymentTransition)
}

func TestPayment_FailKeepsReason(t *testing.T) {
	payment := newPending()
	assert.NoError(t, payment.Fail("card declined"))
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card declined", payment.FailureReason)

	assert.ErrorIs(t, payment.Complete(), domain.ErrInvalidPaymentTransition)
}

func TestPayment_Timeout(t *testing.T) {
	payment := newPending()
	assert.NoError(t, payment.Timeout())
	assert.Equal(t, domain.PaymentStatusTimeout, payment.Status)
	assert.Equal(t, domain.TimeoutReason, payment.FailureReason)
}

func TestPayment_AssignTransactionKey(t *testing.T) {
	payment := newPending()
	assert.NoError(t, payment.AssignTransactionKey("tx-123"))
	assert.Equal(t, "tx-123", payment.TransactionKey)
	// key assignment does not close the state machine
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)

	assert.NoError(t, payment.Fail("declined"))
	assert.ErrorIs(t, payment.AssignTransactionKey("tx-456"), domain.ErrInvalidPaymentTransition)
}

func TestPayment_CancelAndRefund(t *testing.T) {
	payment := newPending()
	assert.ErrorIs(t, payment.CancelPayment(), domain.ErrInvalidPaymentTransition)
	assert.ErrorIs(t, payment.Refund(), domain.ErrInvalidPaymentTransition)

	assert.NoError(t, payment.Complete())
	assert.NoError(t, payment.CancelPayment())
	assert.Equal(t, domain.PaymentStatusCancel, payment.Status)

	assert.NoError(t, payment.Refund())
	assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)

	assert.ErrorIs(t, payment.Refund(), domain.ErrInvalidPaymentTransition)
}
