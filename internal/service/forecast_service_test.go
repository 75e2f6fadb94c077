package service

import (
	"context"
	"testing"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/cache"
	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/avelinebakes/backoffice/backend-go/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForecastRepo struct {
	usage         []domain.UsageRow
	invoiceItems  []domain.InvoiceItemRow
	ingredients   []domain.Ingredient
	commitments   []domain.CommitmentRow
	populatedDays []string
	categories    map[string]string
}

func (f *fakeForecastRepo) GetDailyUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRow, error) {
	return f.usage, nil
}

func (f *fakeForecastRepo) GetVerifiedInvoiceItems(ctx context.Context, since time.Time) ([]domain.InvoiceItemRow, error) {
	return f.invoiceItems, nil
}

func (f *fakeForecastRepo) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakeForecastRepo) GetUpcomingCommitments(ctx context.Context, from, to time.Time) ([]domain.CommitmentRow, error) {
	return f.commitments, nil
}

func (f *fakeForecastRepo) PopulateUsageRange(ctx context.Context, dates []time.Time) error {
	for _, date := range dates {
		f.populatedDays = append(f.populatedDays, date.Format("2006-01-02"))
	}
	return nil
}

func (f *fakeForecastRepo) UpdateIngredientCategory(ctx context.Context, ingredientID, category string) error {
	if f.categories == nil {
		f.categories = make(map[string]string)
	}
	f.categories[ingredientID] = category
	return nil
}

func newTestService(repo *fakeForecastRepo, now time.Time) *ForecastService {
	svc := NewForecastService(repo, cache.NewNoopForecastCache())
	svc.now = func() time.Time { return now }
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestDemandForecastFiltersByIngredient(t *testing.T) {
	repo := &fakeForecastRepo{
		usage: []domain.UsageRow{
			{IngredientID: "flour", UsageDate: "2025-06-02", QuantityUsed: 10},
			{IngredientID: "flour", UsageDate: "2025-06-03", QuantityUsed: 10},
			{IngredientID: "sugar", UsageDate: "2025-06-02", QuantityUsed: 99},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC))

	points, err := svc.DemandForecast(context.Background(), "flour")
	require.NoError(t, err)

	// Two actuals plus the projection horizon.
	require.Len(t, points, 2+forecast.HorizonDays)
	require.NotNil(t, points[0].Actual)
	assert.Equal(t, 10.0, *points[0].Actual)

	for _, p := range points[2:] {
		require.NotNil(t, p.Predicted)
		assert.NotEqual(t, 99.0, *p.Predicted)
	}
}

func TestDemandForecastNoHistory(t *testing.T) {
	svc := newTestService(&fakeForecastRepo{}, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC))

	points, err := svc.DemandForecast(context.Background(), "flour")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCostTrendSkipsUnmatchedLines(t *testing.T) {
	flour := "flour"
	repo := &fakeForecastRepo{
		invoiceItems: []domain.InvoiceItemRow{
			{IngredientID: &flour, InvoiceDate: "2025-06-01", UnitCost: floatPtr(2.0), TotalCost: floatPtr(20)},
			{IngredientID: nil, InvoiceDate: "2025-06-02", UnitCost: floatPtr(5.0), TotalCost: floatPtr(50)},
			{IngredientID: &flour, InvoiceDate: "2025-06-03", UnitCost: nil, TotalCost: floatPtr(30)},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC))

	points, err := svc.CostTrend(context.Background(), "flour")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2025-06-01", points[0].Date)
	assert.Equal(t, 2.0, points[0].UnitCost)
}

func TestMonthlySpendCountsUnmatchedLines(t *testing.T) {
	flour := "flour"
	repo := &fakeForecastRepo{
		invoiceItems: []domain.InvoiceItemRow{
			{IngredientID: &flour, InvoiceDate: "2025-06-01", TotalCost: floatPtr(20)},
			{IngredientID: nil, InvoiceDate: "2025-06-15", TotalCost: floatPtr(30)},
			{IngredientID: nil, InvoiceDate: "2025-06-20", TotalCost: nil},
			{IngredientID: &flour, InvoiceDate: "2025-05-10", TotalCost: floatPtr(5)},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC))

	months, err := svc.MonthlySpend(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, forecast.MonthlySpend{Month: "2025-05", Total: 5}, months[0])
	assert.Equal(t, forecast.MonthlySpend{Month: "2025-06", Total: 50}, months[1])
}

func TestReorderAlertsRanked(t *testing.T) {
	repo := &fakeForecastRepo{
		ingredients: []domain.Ingredient{
			{ID: "flour", Name: "Flour", Unit: "kg", CurrentStock: 5},
			{ID: "sugar", Name: "Sugar", Unit: "kg", CurrentStock: 500},
			{ID: "yeast", Name: "Yeast", Unit: "g", CurrentStock: 0},
		},
		usage: steadyUsage("flour", "sugar"),
	}
	svc := newTestService(repo, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC))

	alerts, lowStock, err := svc.ReorderAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Depleted yeast first, then flour running low, then well-stocked
	// sugar.
	assert.Equal(t, "yeast", alerts[0].IngredientID)
	assert.Equal(t, forecast.CoverDepleted, alerts[0].DaysRemaining.Kind)
	assert.Equal(t, "flour", alerts[1].IngredientID)
	assert.Equal(t, "sugar", alerts[2].IngredientID)

	// Depleted yeast and five-day flour both count as low.
	assert.Equal(t, 2, lowStock)
}

func TestDashboardAssembly(t *testing.T) {
	flour := "flour"
	repo := &fakeForecastRepo{
		ingredients: []domain.Ingredient{
			{ID: "flour", Name: "Flour", Unit: "kg", CurrentStock: 100},
			{ID: "sugar", Name: "Sugar", Unit: "kg", CurrentStock: 50},
		},
		usage: steadyUsage("flour", "sugar"),
		invoiceItems: []domain.InvoiceItemRow{
			{IngredientID: &flour, InvoiceDate: "2025-06-10", UnitCost: floatPtr(2.0), TotalCost: floatPtr(40)},
			{IngredientID: nil, InvoiceDate: "2025-05-20", TotalCost: floatPtr(15)},
		},
	}
	svc := newTestService(repo, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 40.0, dashboard.CurrentMonthSpend)
	assert.Equal(t, 15.0, dashboard.LastMonthSpend)
	assert.Len(t, dashboard.MonthlySpend, 2)

	require.Len(t, dashboard.TopIngredients, 2)
	assert.Equal(t, "Sugar", dashboard.TopIngredients[0].Name)

	require.Contains(t, dashboard.DemandForecasts, "flour")
	assert.Equal(t, "Flour", dashboard.DemandForecasts["flour"].IngredientName)

	require.Contains(t, dashboard.CostTrends, "flour")
	assert.NotContains(t, dashboard.CostTrends, "sugar")

	assert.Len(t, dashboard.ReorderAlerts, 2)
}

func TestPopulateUsageRange(t *testing.T) {
	repo := &fakeForecastRepo{}
	svc := newTestService(repo, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC))

	days, err := svc.PopulateUsage(context.Background(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, days)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, repo.populatedDays)
}

func TestPopulateUsageRejectsReversedRange(t *testing.T) {
	svc := newTestService(&fakeForecastRepo{}, time.Now())

	_, err := svc.PopulateUsage(context.Background(),
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestPopulateUsageRejectsOversizedRange(t *testing.T) {
	svc := newTestService(&fakeForecastRepo{}, time.Now())

	_, err := svc.PopulateUsage(context.Background(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestCategorizeIngredient(t *testing.T) {
	repo := &fakeForecastRepo{}
	svc := newTestService(repo, time.Now())

	require.NoError(t, svc.CategorizeIngredient(context.Background(), "flour", "Dry Goods"))
	assert.Equal(t, "Dry Goods", repo.categories["flour"])
}

// steadyUsage builds 30 days of usage ending 2025-06-30, with sugar
// consuming twice as much as flour.
func steadyUsage(flourID, sugarID string) []domain.UsageRow {
	var rows []domain.UsageRow
	for i := 0; i < 30; i++ {
		date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02")
		rows = append(rows,
			domain.UsageRow{IngredientID: flourID, UsageDate: date, QuantityUsed: 1},
			domain.UsageRow{IngredientID: sugarID, UsageDate: date, QuantityUsed: 2},
		)
	}
	return rows
}
