package postgres

import (
	"context"
	"fmt"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.FromDate != "" {
		args = append(args, filter.FromDate)
		where += fmt.Sprintf(" AND delivery_date >= $%d", len(args))
	}
	if filter.ToDate != "" {
		args = append(args, filter.ToDate)
		where += fmt.Sprintf(" AND delivery_date <= $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM orders " + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT id, customer_name, to_char(delivery_date, 'YYYY-MM-DD') AS delivery_date,
		       time_slot, status, total, created_at, updated_at
		FROM orders
		%s
		ORDER BY delivery_date ASC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var orders []domain.Order
	if err := sqlx.SelectContext(ctx, r.db, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status %q", status)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check order update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}
	return nil
}
