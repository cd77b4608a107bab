package domain

import "github.com/govalues/decimal"

type CouponType string

const (
	CouponTypeFixedAmount CouponType = "FIXED_AMOUNT"
	CouponTypePercentage  CouponType = "PERCENTAGE"
)

type CouponStatus string

const (
	CouponStatusUnused CouponStatus = "UNUSED"
	CouponStatusUsed   CouponStatus = "USED"
)

// Coupon tracks binary usage only; the discount amount is computed at
// order time and frozen into the order item.
type Coupon struct {
	ID          uint64
	UserID      uint64
	Type        CouponType
	FixedAmount decimal.Decimal
	Percentage  int
	Status      CouponStatus
}

func (c *Coupon) VerifyOwnership(userID uint64) error {
	if c.UserID != userID {
		return ErrCouponNotOwned
	}
	return nil
}

func (c *Coupon) Use() error {
	if c.Status == CouponStatusUsed {
		return ErrCouponAlreadyUsed
	}
	c.Status = CouponStatusUsed
	return nil
}

// Revert returns the coupon to UNUSED. Idempotent.
func (c *Coupon) Revert() {
	c.Status = CouponStatusUnused
}

// Discount computes the per-item discount for the given base price.
// FIXED_AMOUNT is capped at the base price; PERCENTAGE rounds half-up.
func (c *Coupon) Discount(basePrice decimal.Decimal) (decimal.Decimal, error) {
	switch c.Type {
	case CouponTypeFixedAmount:
		if c.FixedAmount.Cmp(basePrice) > 0 {
			return basePrice, nil
		}
		return c.FixedAmount, nil
	case CouponTypePercentage:
		pct, err := decimal.New(int64(c.Percentage), 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw, err := basePrice.Mul(pct)
		if err != nil {
			return decimal.Decimal{}, err
		}
		raw, err = raw.Quo(decimal.Hundred)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return RoundHalfUp(raw, 0)
	default:
		return decimal.Zero, nil
	}
}
