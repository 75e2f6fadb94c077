package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const dateLayout = "2006-01-02"

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) GetDailyUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRow, error) {
	query := `
		SELECT
			ingredient_id,
			to_char(usage_date, 'YYYY-MM-DD') AS usage_date,
			quantity_used
		FROM ingredient_usage_daily
		WHERE usage_date BETWEEN $1 AND $2
		ORDER BY usage_date ASC
	`

	var rows []domain.UsageRow
	err := sqlx.SelectContext(ctx, r.db, &rows, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}
	return rows, nil
}

func (r *forecastRepository) GetVerifiedInvoiceItems(ctx context.Context, since time.Time) ([]domain.InvoiceItemRow, error) {
	query := `
		SELECT
			it.ingredient_id,
			to_char(i.invoice_date, 'YYYY-MM-DD') AS invoice_date,
			i.supplier_name,
			it.unit_cost,
			it.total_cost
		FROM invoice_items it
		JOIN invoices i ON it.invoice_id = i.id
		WHERE i.status = 'verified'
		  AND i.invoice_date >= $1
	`

	var rows []domain.InvoiceItemRow
	err := sqlx.SelectContext(ctx, r.db, &rows, query, since.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get verified invoice items: %w", err)
	}
	return rows, nil
}

func (r *forecastRepository) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	query := `
		SELECT id, name, unit, category, current_stock, min_stock_level, created_at, updated_at
		FROM ingredients
		ORDER BY name
	`

	var ingredients []domain.Ingredient
	err := sqlx.SelectContext(ctx, r.db, &ingredients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return ingredients, nil
}

// GetUpcomingCommitments multiplies order item quantities through
// product recipes so each row is already expressed in ingredient units.
func (r *forecastRepository) GetUpcomingCommitments(ctx context.Context, from, to time.Time) ([]domain.CommitmentRow, error) {
	query := `
		SELECT
			pi.ingredient_id,
			to_char(o.delivery_date, 'YYYY-MM-DD') AS delivery_date,
			SUM(pi.quantity * oi.quantity) AS quantity
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN product_ingredients pi ON pi.product_id = oi.product_id
		WHERE o.status IN ('pending', 'confirmed', 'in_progress')
		  AND o.delivery_date BETWEEN $1 AND $2
		GROUP BY pi.ingredient_id, o.delivery_date
		ORDER BY o.delivery_date ASC
	`

	var rows []domain.CommitmentRow
	err := sqlx.SelectContext(ctx, r.db, &rows, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming commitments: %w", err)
	}
	return rows, nil
}

func (r *forecastRepository) PopulateUsageRange(ctx context.Context, dates []time.Time) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, date := range dates {
			_, err := tx.ExecContext(ctx, `SELECT populate_ingredient_usage($1)`, date.Format(dateLayout))
			if err != nil {
				return fmt.Errorf("failed to populate usage for %s: %w", date.Format(dateLayout), err)
			}
		}
		return nil
	})
}

func (r *forecastRepository) UpdateIngredientCategory(ctx context.Context, ingredientID, category string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ingredients SET category = $1, updated_at = NOW() WHERE id = $2`,
		category, ingredientID)
	if err != nil {
		return fmt.Errorf("failed to update ingredient category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check category update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ingredient %s not found", ingredientID)
	}
	return nil
}
