package port

import (
	"context"

	"github.com/govalues/decimal"
)

// Gateway transaction statuses as reported by the PG and its callbacks.
const (
	GatewayStatusSuccess = "SUCCESS"
	GatewayStatusFailed  = "FAILED"
	GatewayStatusPending = "PENDING"
)

type GatewayRequest struct {
	OrderID     uint64
	CardType    string
	CardNo      string
	Amount      decimal.Decimal
	CallbackURL string
}

type GatewayPayment struct {
	TransactionKey string
	Status         string
	Amount         decimal.Decimal
	Reason         string
}

// PaymentGateway wraps the external PG. Callback content is untrusted;
// GetPayment is the authoritative source for a transaction's state.
//
//go:generate mockgen -source=pg.go -destination=mock/pg.go -package=mock
type PaymentGateway interface {
	RequestPayment(ctx context.Context, username string, req GatewayRequest) (*GatewayPayment, error)
	GetPayment(ctx context.Context, username, transactionKey string) (*GatewayPayment, error)
}
