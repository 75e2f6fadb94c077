package forecast

// Window sizes for the forecasting calculations.
const (
	// UsageWindowSize is the number of most recent usage entries fed
	// into the weighted moving average.
	UsageWindowSize = 30

	// HorizonDays is how far ahead demand is projected.
	HorizonDays = 14

	// RollingWindowSize is the trailing window for cost smoothing.
	RollingWindowSize = 7
)

// UsageRecord is one daily usage observation for an ingredient.
// Rows are produced externally by rolling up fulfilled orders; the same
// ingredient/date pair may appear more than once and each row counts as
// an independent observation.
type UsageRecord struct {
	IngredientID string  `json:"ingredient_id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	QuantityUsed float64 `json:"quantity_used"`
}

// UpcomingCommitment is ingredient demand implied by an order not yet
// fulfilled. Multiple commitments for the same date are additive.
type UpcomingCommitment struct {
	IngredientID string  `json:"ingredient_id"`
	DeliveryDate string  `json:"delivery_date"` // YYYY-MM-DD
	Quantity     float64 `json:"quantity"`
}

// InvoiceLineCost is a matched line item from a verified supplier invoice.
type InvoiceLineCost struct {
	IngredientID string  `json:"ingredient_id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	UnitCost     float64 `json:"unit_cost"`
}

// InvoiceLineSpend is an invoice line with a known total cost, counted
// toward aggregate spend whether or not the line matched an ingredient.
type InvoiceLineSpend struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	TotalCost    float64 `json:"total_cost"`
	SupplierName string  `json:"supplier_name,omitempty"`
}

// IngredientSnapshot is the current inventory state for one ingredient,
// supplied fresh on each run.
type IngredientSnapshot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	CurrentStock  float64  `json:"current_stock"`
	MinStockLevel *float64 `json:"min_stock_level"`
}

// ForecastPoint is one chart point: either a historical actual or a
// projected prediction, never both.
type ForecastPoint struct {
	Date      string   `json:"date"`
	Actual    *float64 `json:"actual,omitempty"`
	Predicted *float64 `json:"predicted,omitempty"`
}

// CostTrendPoint is the per-date average unit cost with its trailing
// rolling average.
type CostTrendPoint struct {
	Date           string  `json:"date"`
	UnitCost       float64 `json:"unit_cost"`
	RollingAverage float64 `json:"rolling_average"`
}

// MonthlySpend is the summed invoice spend for one calendar month.
type MonthlySpend struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// ReorderAlert ranks an ingredient's restocking urgency.
type ReorderAlert struct {
	IngredientID       string      `json:"ingredient_id"`
	IngredientName     string      `json:"ingredient_name"`
	Unit               string      `json:"unit"`
	CurrentStock       float64     `json:"current_stock"`
	ForecastedUsage14d float64     `json:"forecasted_usage_14d"`
	DaysRemaining      DaysOfCover `json:"days_remaining"`
	MinStockLevel      *float64    `json:"min_stock_level"`
}
