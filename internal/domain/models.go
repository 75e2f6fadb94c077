package domain

import "time"

// Ingredient is a catalog entry with its current inventory state.
type Ingredient struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Unit          string    `json:"unit" db:"unit"`
	Category      string    `json:"category" db:"category"`
	CurrentStock  float64   `json:"current_stock" db:"current_stock"`
	MinStockLevel *float64  `json:"min_stock_level" db:"min_stock_level"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// UsageRow is one daily ingredient-usage record rolled up from
// fulfilled orders.
type UsageRow struct {
	IngredientID string  `json:"ingredient_id" db:"ingredient_id"`
	UsageDate    string  `json:"usage_date" db:"usage_date"`
	QuantityUsed float64 `json:"quantity_used" db:"quantity_used"`
}

// CommitmentRow is ingredient demand implied by an unfulfilled order,
// already multiplied through the product recipe.
type CommitmentRow struct {
	IngredientID string  `json:"ingredient_id" db:"ingredient_id"`
	DeliveryDate string  `json:"delivery_date" db:"delivery_date"`
	Quantity     float64 `json:"quantity" db:"quantity"`
}

// InvoiceItemRow is a line item from a verified supplier invoice joined
// with its invoice header. IngredientID and UnitCost are null for
// unmatched lines; TotalCost is null when the OCR could not read it.
type InvoiceItemRow struct {
	IngredientID *string  `json:"ingredient_id" db:"ingredient_id"`
	InvoiceDate  string   `json:"invoice_date" db:"invoice_date"`
	SupplierName string   `json:"supplier_name" db:"supplier_name"`
	UnitCost     *float64 `json:"unit_cost" db:"unit_cost"`
	TotalCost    *float64 `json:"total_cost" db:"total_cost"`
}

// Order is a customer order headed for fulfillment.
type Order struct {
	ID           string      `json:"id" db:"id"`
	CustomerName string      `json:"customer_name" db:"customer_name"`
	DeliveryDate string      `json:"delivery_date" db:"delivery_date"`
	TimeSlot     string      `json:"time_slot" db:"time_slot"`
	Status       OrderStatus `json:"status" db:"status"`
	Total        float64     `json:"total" db:"total"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status   OrderStatus `json:"status"`
	FromDate string      `json:"from_date"`
	ToDate   string      `json:"to_date"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
