package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"checkout/internal/adapter/storage"
	"checkout/internal/core/domain"
	"checkout/internal/core/port"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db *storage.DB
	q  querier
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db, q: db.Pool}, nil
}

// WithinTransaction runs fn against a transaction-bound Repository. Row
// locks taken inside are released atomically at commit or rollback.
// Nested calls join the enclosing transaction.
func (r *Repository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx port.Repository) error) error {
	if _, nested := r.q.(pgx.Tx); nested {
		return fn(ctx, r)
	}
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		return fn(ctx, &Repository{db: r.db, q: tx})
	})
}

func wrapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrConflictingData
	}
	return err
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := r.WithinTransaction(ctx, func(ctx context.Context, tx port.Repository) error {
		txr := tx.(*Repository)

		userSt := r.db.QueryBuilder.
			Insert("users").
			Columns("login", "password").
			Values(user.Login, user.Password).
			Suffix("RETURNING id")

		sql, args, err := userSt.ToSql()
		if err != nil {
			return err
		}
		if err := txr.q.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
			return err
		}

		pointsSt := r.db.QueryBuilder.
			Insert("points").
			Columns("user_id", "amount").
			Values(user.ID, decimal.Zero)

		sql, args, err = pointsSt.ToSql()
		if err != nil {
			return err
		}
		_, err = txr.q.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"login": login}, false)
}

func (r *Repository) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id}, false)
}

// GetUserForUpdate takes the user row lock that heads the canonical
// lock order for order creation.
func (r *Repository) GetUserForUpdate(ctx context.Context, login string) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"login": login}, true)
}

func (r *Repository) getUser(ctx context.Context, pred any, forUpdate bool) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "login", "password").
		From("users").
		Where(pred)
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Login,
		&user.Password,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

func (r *Repository) GetProductForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "price", "stock").
		From("products").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &product, nil
}

func (r *Repository) UpdateProductStock(ctx context.Context, id uint64, stock int) error {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("stock", stock).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) GetCouponForUpdate(ctx context.Context, id uint64) (*domain.Coupon, error) {
	statement := r.db.QueryBuilder.
		Select("id", "user_id", "coupon_type", "fixed_amount", "percentage", "status").
		From("coupons").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	coupon := domain.Coupon{}
	var fixedAmount *decimal.Decimal
	var percentage *int
	err = r.q.QueryRow(ctx, sql, args...).Scan(
		&coupon.ID,
		&coupon.UserID,
		&coupon.Type,
		&fixedAmount,
		&percentage,
		&coupon.Status,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	if fixedAmount != nil {
		coupon.FixedAmount = *fixedAmount
	}
	if percentage != nil {
		coupon.Percentage = *percentage
	}
	return &coupon, nil
}

func (r *Repository) UpdateCouponStatus(ctx context.Context, id uint64, status domain.CouponStatus) error {
	statement := r.db.QueryBuilder.
		Update("coupons").
		Set("status", status).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) GetPointBalance(ctx context.Context, userID uint64) (*domain.PointBalance, error) {
	return r.getPointBalance(ctx, userID, false)
}

func (r *Repository) GetPointBalanceForUpdate(ctx context.Context, userID uint64) (*domain.PointBalance, error) {
	return r.getPointBalance(ctx, userID, true)
}

func (r *Repository) getPointBalance(ctx context.Context, userID uint64, forUpdate bool) (*domain.PointBalance, error) {
	statement := r.db.QueryBuilder.
		Select("user_id", "amount").
		From("points").
		Where(sq.Eq{"user_id": userID})
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	balance := domain.PointBalance{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(
		&balance.UserID,
		&balance.Amount,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &balance, nil
}

func (r *Repository) UpdatePointBalance(ctx context.Context, balance *domain.PointBalance) error {
	statement := r.db.QueryBuilder.
		Update("points").
		Set("amount", balance.Amount).
		Where(sq.Eq{"user_id": balance.UserID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return err
}
