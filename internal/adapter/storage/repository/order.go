package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"checkout/internal/core/domain"
)

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Insert("orders").
		Columns("user_id", "original_total", "discount_total", "final_total",
			"payment_method", "status", "cancel_reason", "ordered_at").
		Values(order.UserID, order.OriginalTotal, order.DiscountTotal, order.FinalTotal,
			order.PaymentMethod, order.Status, order.CancelReason, order.OrderedAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&order.ID); err != nil {
		return nil, wrapError(err)
	}
	return order, nil
}

func (r *Repository) CreateOrderItems(ctx context.Context, items []*domain.OrderItem) error {
	statement := r.db.QueryBuilder.
		Insert("order_items").
		Columns("order_id", "product_id", "coupon_id", "quantity", "unit_price", "discount", "total")
	for _, item := range items {
		statement = statement.Values(item.OrderID, item.ProductID, item.CouponID,
			item.Quantity, item.UnitPrice, item.Discount, item.Total)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *Repository) GetOrderByIDAndUserID(ctx context.Context, orderID, userID uint64) (*domain.Order, error) {
	return r.getOrder(ctx, sq.Eq{"id": orderID, "user_id": userID}, false)
}

func (r *Repository) GetOrderForUpdate(ctx context.Context, orderID uint64) (*domain.Order, error) {
	return r.getOrder(ctx, sq.Eq{"id": orderID}, true)
}

func (r *Repository) getOrder(ctx context.Context, pred any, forUpdate bool) (*domain.Order, error) {
	statement := r.orderSelect().Where(pred)
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapError(err)
	}
	return order, nil
}

func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("status", order.Status).
		Set("cancel_reason", order.CancelReason).
		Where(sq.Eq{"id": order.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.orderSelect().
		Where(sq.Eq{"user_id": userID}).
		OrderBy("ordered_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *Repository) ListOrderItems(ctx context.Context, orderID uint64) ([]*domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "product_id", "coupon_id", "quantity", "unit_price", "discount", "total").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("product_id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.CouponID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Discount,
			&item.Total,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *Repository) orderSelect() sq.SelectBuilder {
	return r.db.QueryBuilder.
		Select("id", "user_id", "original_total", "discount_total", "final_total",
			"payment_method", "status", "cancel_reason", "ordered_at").
		From("orders")
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.OriginalTotal,
		&order.DiscountTotal,
		&order.FinalTotal,
		&order.PaymentMethod,
		&order.Status,
		&order.CancelReason,
		&order.OrderedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
