package domain

import "github.com/govalues/decimal"

// Product carries the stock counter guarded by a row lock. DeductStock
// and RestoreStock are the only mutators and never drive the counter
// negative.
type Product struct {
	ID    uint64
	Name  string
	Price decimal.Decimal
	Stock int
}

func (p *Product) CanOrder(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

func (p *Product) DeductStock(quantity int) error {
	if !p.CanOrder(quantity) {
		return &InsufficientStockError{
			ProductID: p.ID,
			Requested: quantity,
			Available: p.Stock,
		}
	}
	p.Stock -= quantity
	return nil
}

func (p *Product) RestoreStock(quantity int) {
	p.Stock += quantity
}
