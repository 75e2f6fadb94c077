package domain

import "github.com/avelinebakes/backoffice/backend-go/internal/forecast"

// ForecastSeries is one ingredient's demand forecast for charting.
type ForecastSeries struct {
	IngredientName string                   `json:"ingredient_name"`
	Data           []forecast.ForecastPoint `json:"data"`
}

// CostTrendSeries is one ingredient's unit-cost trend for charting.
type CostTrendSeries struct {
	IngredientName string                    `json:"ingredient_name"`
	Data           []forecast.CostTrendPoint `json:"data"`
}

// TopIngredient summarizes total usage over the query window.
type TopIngredient struct {
	Name  string  `json:"name"`
	Usage float64 `json:"usage"`
	Unit  string  `json:"unit"`
}

// ForecastDashboard is the assembled forecasting view: summary cards,
// charts, and the ranked reorder table.
type ForecastDashboard struct {
	CurrentMonthSpend float64                    `json:"current_month_spend"`
	LastMonthSpend    float64                    `json:"last_month_spend"`
	MonthlySpend      []forecast.MonthlySpend    `json:"monthly_spend"`
	TopIngredients    []TopIngredient            `json:"top_ingredients"`
	LowStockCount     int                        `json:"low_stock_count"`
	DemandForecasts   map[string]ForecastSeries  `json:"demand_forecasts"`
	CostTrends        map[string]CostTrendSeries `json:"cost_trends"`
	ReorderAlerts     []forecast.ReorderAlert    `json:"reorder_alerts"`
}
