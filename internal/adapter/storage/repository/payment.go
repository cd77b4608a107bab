package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"checkout/internal/core/domain"
)

func (r *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Insert("payments").
		Columns("transaction_key", "order_id", "user_id", "amount", "card_type", "card_no",
			"callback_url", "status", "failure_reason", "requested_at", "completed_at").
		Values(nullableKey(payment.TransactionKey), payment.OrderID, payment.UserID,
			payment.Amount, payment.CardType, payment.CardNo, payment.CallbackURL,
			payment.Status, payment.FailureReason, payment.RequestedAt, payment.CompletedAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&payment.ID); err != nil {
		return nil, wrapError(err)
	}
	return payment, nil
}

func (r *Repository) UpdatePayment(ctx context.Context, payment *domain.Payment) error {
	statement := r.db.QueryBuilder.
		Update("payments").
		Set("transaction_key", nullableKey(payment.TransactionKey)).
		Set("status", payment.Status).
		Set("failure_reason", payment.FailureReason).
		Set("completed_at", payment.CompletedAt).
		Where(sq.Eq{"id": payment.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *Repository) GetPaymentByTransactionKey(ctx context.Context, key string) (*domain.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"transaction_key": key}, false)
}

func (r *Repository) GetPaymentForUpdate(ctx context.Context, id uint64) (*domain.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"id": id}, true)
}

func (r *Repository) getPayment(ctx context.Context, pred any, forUpdate bool) (*domain.Payment, error) {
	statement := r.paymentSelect().Where(pred)
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	payment, err := scanPayment(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapError(err)
	}
	return payment, nil
}

// ListPendingPaymentsOlderThan feeds the timeout sweep. Rows are not
// locked here; the sweep re-checks each payment under FOR UPDATE in its
// own transaction.
func (r *Repository) ListPendingPaymentsOlderThan(ctx context.Context, threshold time.Time) ([]*domain.Payment, error) {
	statement := r.paymentSelect().
		Where(sq.Eq{"status": domain.PaymentStatusPending}).
		Where(sq.Lt{"requested_at": threshold}).
		OrderBy("requested_at ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *Repository) paymentSelect() sq.SelectBuilder {
	return r.db.QueryBuilder.
		Select("id", "transaction_key", "order_id", "user_id", "amount", "card_type",
			"card_no", "callback_url", "status", "failure_reason", "requested_at", "completed_at").
		From("payments")
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	payment := domain.Payment{}
	var key *string
	err := row.Scan(
		&payment.ID,
		&key,
		&payment.OrderID,
		&payment.UserID,
		&payment.Amount,
		&payment.CardType,
		&payment.CardNo,
		&payment.CallbackURL,
		&payment.Status,
		&payment.FailureReason,
		&payment.RequestedAt,
		&payment.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if key != nil {
		payment.TransactionKey = *key
	}
	return &payment, nil
}

// nullableKey maps the unassigned transaction key to SQL NULL so the
// unique index ignores payments the gateway never accepted.
func nullableKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}
