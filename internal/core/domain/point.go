package domain

import "github.com/govalues/decimal"

// PointBalance is the per-user point ledger, guarded by the user row lock.
type PointBalance struct {
	UserID uint64
	Amount decimal.Decimal
}

func (b *PointBalance) Charge(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrBadRequest
	}
	next, err := b.Amount.Add(amount)
	if err != nil {
		return err
	}
	b.Amount = next
	return nil
}

func (b *PointBalance) Use(amount decimal.Decimal) error {
	if b.Amount.Cmp(amount) < 0 {
		return &InsufficientPointsError{
			UserID:    b.UserID,
			Requested: amount,
			Available: b.Amount,
		}
	}
	next, err := b.Amount.Sub(amount)
	if err != nil {
		return err
	}
	b.Amount = next
	return nil
}

func (b *PointBalance) Refund(amount decimal.Decimal) error {
	next, err := b.Amount.Add(amount)
	if err != nil {
		return err
	}
	b.Amount = next
	return nil
}
