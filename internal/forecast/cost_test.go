package forecast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostTrend_Empty(t *testing.T) {
	points, err := CostTrend(nil)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.NotNil(t, points)
}

func TestCostTrend_RollingAverage(t *testing.T) {
	items := []InvoiceLineCost{
		{IngredientID: "sugar", Date: "2025-03-01", UnitCost: 1.00},
		{IngredientID: "sugar", Date: "2025-03-02", UnitCost: 2.00},
		{IngredientID: "sugar", Date: "2025-03-03", UnitCost: 3.00},
	}

	points, err := CostTrend(items)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 1.00, points[0].RollingAverage)
	assert.Equal(t, 1.50, points[1].RollingAverage)
	assert.Equal(t, 2.00, points[2].RollingAverage)
}

func TestCostTrend_SameDateLinesAverage(t *testing.T) {
	items := []InvoiceLineCost{
		{IngredientID: "sugar", Date: "2025-03-01", UnitCost: 2.00},
		{IngredientID: "sugar", Date: "2025-03-01", UnitCost: 4.00},
	}

	points, err := CostTrend(items)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 3.00, points[0].UnitCost)
}

func TestCostTrend_WindowShrinksNotPads(t *testing.T) {
	// Ten points of cost 1..10. The k-th rolling average covers points
	// max(1,k-6)..k: point 7 averages 1..7, point 10 averages 4..10.
	items := make([]InvoiceLineCost, 10)
	for i := range items {
		items[i] = InvoiceLineCost{
			IngredientID: "cocoa",
			Date:         fmt.Sprintf("2025-03-%02d", i+1),
			UnitCost:     float64(i + 1),
		}
	}

	points, err := CostTrend(items)
	require.NoError(t, err)
	require.Len(t, points, 10)

	assert.Equal(t, 4.00, points[6].RollingAverage)
	assert.Equal(t, 7.00, points[9].RollingAverage)
}

func TestCostTrend_SortsDates(t *testing.T) {
	items := []InvoiceLineCost{
		{IngredientID: "sugar", Date: "2025-03-05", UnitCost: 5},
		{IngredientID: "sugar", Date: "2025-03-01", UnitCost: 1},
		{IngredientID: "sugar", Date: "2025-03-03", UnitCost: 3},
	}

	points, err := CostTrend(items)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2025-03-01", points[0].Date)
	assert.Equal(t, "2025-03-03", points[1].Date)
	assert.Equal(t, "2025-03-05", points[2].Date)
}

func TestCostTrend_Validation(t *testing.T) {
	var vErr *ValidationError

	_, err := CostTrend([]InvoiceLineCost{{Date: "March 1", UnitCost: 1}})
	require.ErrorAs(t, err, &vErr)

	_, err = CostTrend([]InvoiceLineCost{{Date: "2025-03-01", UnitCost: -0.5}})
	require.ErrorAs(t, err, &vErr)
}

func TestSpendByMonth(t *testing.T) {
	items := []InvoiceLineSpend{
		{Date: "2025-04-28", TotalCost: 10.5, SupplierName: "Mill & Co"},
		{Date: "2025-03-02", TotalCost: 40},
		{Date: "2025-04-01", TotalCost: 20},
	}

	spend, err := SpendByMonth(items)
	require.NoError(t, err)
	require.Len(t, spend, 2)

	assert.Equal(t, MonthlySpend{Month: "2025-03", Total: 40}, spend[0])
	assert.Equal(t, "2025-04", spend[1].Month)
	assert.Equal(t, 30.5, spend[1].Total)
}

func TestSpendByMonth_Empty(t *testing.T) {
	spend, err := SpendByMonth(nil)
	require.NoError(t, err)
	assert.Empty(t, spend)
	assert.NotNil(t, spend)
}

func TestSpendByMonth_Validation(t *testing.T) {
	var vErr *ValidationError
	_, err := SpendByMonth([]InvoiceLineSpend{{Date: "2025-13-40", TotalCost: 1}})
	require.ErrorAs(t, err, &vErr)
}
