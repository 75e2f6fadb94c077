package repository

import (
	"context"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
)

// ForecastRepository reads the inputs the forecasting engine consumes.
// All reads are snapshots; nothing here mutates state except the usage
// roll-up, which delegates to a database function.
type ForecastRepository interface {
	// GetDailyUsage returns daily ingredient-usage rows between the two
	// dates inclusive, ascending by date.
	GetDailyUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRow, error)

	// GetVerifiedInvoiceItems returns line items of verified invoices
	// dated on or after the given date.
	GetVerifiedInvoiceItems(ctx context.Context, since time.Time) ([]domain.InvoiceItemRow, error)

	// GetIngredients returns the full ingredient catalog with current
	// stock levels.
	GetIngredients(ctx context.Context) ([]domain.Ingredient, error)

	// GetUpcomingCommitments returns per-ingredient demand implied by
	// unfulfilled orders delivering between the two dates inclusive,
	// multiplied through product recipes.
	GetUpcomingCommitments(ctx context.Context, from, to time.Time) ([]domain.CommitmentRow, error)

	// PopulateUsageRange rolls fulfilled-order consumption for each of
	// the given days into the daily usage table, atomically: either all
	// days land or none do.
	PopulateUsageRange(ctx context.Context, dates []time.Time) error

	// UpdateIngredientCategory assigns a category to an ingredient.
	UpdateIngredientCategory(ctx context.Context, ingredientID, category string) error
}

// OrderRepository is the thin order-intake glue around the core.
type OrderRepository interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}
