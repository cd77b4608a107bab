package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated     = "OrderCreated"
	EventPaymentCompleted = "PaymentCompleted"
	EventPaymentFailed    = "PaymentFailed"
	EventPaymentTimeout   = "PaymentTimeout"
)

// EventEnvelope is the wire format for every domain event. Envelopes are
// written to the outbox in the same transaction as the business change
// and published only after that transaction durably commits.
type EventEnvelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID       uint64 `json:"order_id"`
	UserID        uint64 `json:"user_id"`
	PaymentMethod string `json:"payment_method"`
	FinalTotal    string `json:"final_total"`
}

type PaymentCompletedPayload struct {
	TransactionKey string `json:"transaction_key"`
	OrderID        uint64 `json:"order_id"`
	UserID         uint64 `json:"user_id"`
	Amount         string `json:"amount"`
}

type PaymentFailedPayload struct {
	TransactionKey string `json:"transaction_key"`
	OrderID        uint64 `json:"order_id"`
	UserID         uint64 `json:"user_id"`
	Reason         string `json:"reason"`
}

func NewEvent(eventType string, payload any) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &EventEnvelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now(),
		Producer:   "checkout",
		Payload:    raw,
	}, nil
}
