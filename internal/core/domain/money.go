package domain

import "github.com/govalues/decimal"

// MoneyScale is the scale every persisted amount is kept at.
const MoneyScale = 2

// RoundHalfUp rounds a non-negative amount half-up to the given scale.
// Discount math requires half-up, while the decimal library rounds half-even.
func RoundHalfUp(d decimal.Decimal, scale int) (decimal.Decimal, error) {
	half, err := decimal.New(5, scale+1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	shifted, err := d.Add(half)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return shifted.Trunc(scale), nil
}
