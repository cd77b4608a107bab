package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"checkout/internal/adapter/config"
	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

const dedupTTL = 24 * time.Hour

// Consumer applies payment outcomes to orders. The broker delivers at
// least once, so each event id is claimed in redis before its handler
// runs; handlers stay idempotent regardless, the claim just cuts the
// noise of reprocessing.
type Consumer struct {
	logger *zap.Logger
	reader *kafka.Reader
	redis  *redis.Client
	orders port.OrderService
}

func NewConsumer(cfg *config.Kafka, rdb *redis.Client, orders port.OrderService, log *zap.Logger) (*Consumer, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.PaymentTopic,
		GroupID: cfg.ConsumerGroup,
	})

	return &Consumer{
		logger: log,
		reader: reader,
		redis:  rdb,
		orders: orders,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					c.logger.Debug("event consumer stopped")
					return
				}
				c.logger.Error("error fetching message", zap.Error(err))
				continue
			}

			if err := c.handle(ctx, msg.Value); err != nil {
				// Leave the offset uncommitted so the event is redelivered.
				c.logger.Error("error handling event", zap.Error(err))
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("error committing offset", zap.Error(err))
			}
		}
	}()
}

func (c *Consumer) handle(ctx context.Context, value []byte) error {
	var envelope domain.EventEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		c.logger.Warn("dropping malformed event", zap.Error(err))
		return nil
	}

	claimed, err := c.claim(ctx, envelope.EventID)
	if err != nil {
		return err
	}
	if !claimed {
		c.logger.Debug("skipping duplicate event",
			zap.String("event_id", envelope.EventID))
		return nil
	}

	if err := c.apply(ctx, &envelope); err != nil {
		// release the claim so the redelivered event is not skipped
		c.release(ctx, envelope.EventID)
		return err
	}
	return nil
}

func (c *Consumer) apply(ctx context.Context, envelope *domain.EventEnvelope) error {
	switch envelope.EventType {
	case domain.EventPaymentCompleted:
		var payload domain.PaymentCompletedPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return err
		}
		return c.orders.ConfirmOrderByPayment(ctx, payload.OrderID, payload.UserID)

	case domain.EventPaymentFailed, domain.EventPaymentTimeout:
		var payload domain.PaymentFailedPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return err
		}
		return c.orders.CancelOrderByPaymentFailure(ctx, payload.OrderID, payload.UserID, payload.Reason)

	default:
		return nil
	}
}

func (c *Consumer) claim(ctx context.Context, eventID string) (bool, error) {
	if c.redis == nil {
		return true, nil
	}
	return c.redis.SetNX(ctx, "checkout:event:"+eventID, 1, dedupTTL).Result()
}

func (c *Consumer) release(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, "checkout:event:"+eventID).Err(); err != nil {
		c.logger.Warn("error releasing event claim",
			zap.String("event_id", eventID), zap.Error(err))
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
