package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancel    PaymentStatus = "CANCEL"
	PaymentStatusTimeout   PaymentStatus = "TIMEOUT"
)

const TimeoutReason = "timeout"

// Payment tracks one card-payment attempt against the external gateway.
// TransactionKey stays empty until the gateway accepts the request; the
// callback is authoritative for closing the state machine.
type Payment struct {
	ID             uint64
	TransactionKey string
	OrderID        uint64
	UserID         uint64
	Amount         decimal.Decimal
	CardType       string
	CardNo         string
	CallbackURL    string
	Status         PaymentStatus
	FailureReason  string
	RequestedAt    time.Time
	CompletedAt    *time.Time
}

func NewPendingPayment(orderID, userID uint64, amount decimal.Decimal, cardType, cardNo, callbackURL string) *Payment {
	return &Payment{
		OrderID:     orderID,
		UserID:      userID,
		Amount:      amount,
		CardType:    cardType,
		CardNo:      cardNo,
		CallbackURL: callbackURL,
		Status:      PaymentStatusPending,
		RequestedAt: time.Now(),
	}
}

// AssignTransactionKey records gateway acceptance without closing the
// state machine.
func (p *Payment) AssignTransactionKey(key string) error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidPaymentTransition
	}
	p.TransactionKey = key
	return nil
}

func (p *Payment) Complete() error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidPaymentTransition
	}
	p.Status = PaymentStatusCompleted
	now := time.Now()
	p.CompletedAt = &now
	return nil
}

func (p *Payment) Fail(reason string) error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidPaymentTransition
	}
	p.Status = PaymentStatusFailed
	p.FailureReason = reason
	return nil
}

func (p *Payment) Timeout() error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidPaymentTransition
	}
	p.Status = PaymentStatusTimeout
	p.FailureReason = TimeoutReason
	return nil
}

// CancelPayment is the manual COMPLETED -> CANCEL edge.
func (p *Payment) CancelPayment() error {
	if p.Status != PaymentStatusCompleted {
		return ErrInvalidPaymentTransition
	}
	p.Status = PaymentStatusCancel
	return nil
}

// Refund is reachable from COMPLETED or CANCEL only.
func (p *Payment) Refund() error {
	if p.Status != PaymentStatusCompleted && p.Status != PaymentStatusCancel {
		return ErrInvalidPaymentTransition
	}
	p.Status = PaymentStatusRefunded
	return nil
}
