package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"checkout/internal/adapter/config"
	"checkout/internal/core/domain"
)

// Publisher writes event envelopes to the payment topic. Messages are
// keyed by event type so consumers see per-type ordering.
type Publisher struct {
	logger *zap.Logger
	writer *kafka.Writer
}

func NewPublisher(cfg *config.Kafka, log *zap.Logger) (*Publisher, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.PaymentTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &Publisher{
		logger: log,
		writer: writer,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, event *domain.EventEnvelope) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling event %s: %w", event.EventID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EventType),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("error writing event %s: %w", event.EventID, err)
	}

	p.logger.Debug("published event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
