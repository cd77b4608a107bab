package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"checkout/internal/core/domain"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

// OutboxEvent is a pending outbox row handed to the dispatcher.
type OutboxEvent struct {
	ID       uint64
	Envelope domain.EventEnvelope
	Attempts int
}

func (r *Repository) EnqueueEvent(ctx context.Context, event *domain.EventEnvelope) error {
	statement := r.db.QueryBuilder.
		Insert("outbox_events").
		Columns("event_id", "event_type", "payload", "status").
		Values(event.EventID, event.EventType, event.Payload, outboxStatusPending)

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return wrapError(err)
	}
	return nil
}

// FetchDueEvents claims a batch of publishable outbox rows. SKIP LOCKED
// lets concurrent dispatchers drain the table without contending; the
// claim holds only for the enclosing transaction, so callers must invoke
// this inside WithinTransaction and publish before it commits.
func (r *Repository) FetchDueEvents(ctx context.Context, limit uint64) ([]*OutboxEvent, error) {
	statement := r.db.QueryBuilder.
		Select("id", "event_id", "event_type", "payload", "created_at", "attempts").
		From("outbox_events").
		Where(sq.Eq{"status": outboxStatusPending}).
		Where(sq.Or{
			sq.Eq{"next_retry": nil},
			sq.LtOrEq{"next_retry": time.Now()},
		}).
		OrderBy("id ASC").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		ev := OutboxEvent{Envelope: domain.EventEnvelope{Producer: "checkout"}}
		err := rows.Scan(
			&ev.ID,
			&ev.Envelope.EventID,
			&ev.Envelope.EventType,
			&ev.Envelope.Payload,
			&ev.Envelope.OccurredAt,
			&ev.Attempts,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (r *Repository) MarkEventSent(ctx context.Context, id uint64) error {
	statement := r.db.QueryBuilder.
		Update("outbox_events").
		Set("status", outboxStatusSent).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return err
}

// MarkEventFailed keeps the row pending and schedules the next attempt.
func (r *Repository) MarkEventFailed(ctx context.Context, id uint64, nextRetry time.Time) error {
	statement := r.db.QueryBuilder.
		Update("outbox_events").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("next_retry", nextRetry).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return err
}
