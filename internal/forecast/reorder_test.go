package forecast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func predictedPoints(quantities ...float64) []ForecastPoint {
	points := make([]ForecastPoint, len(quantities))
	for i := range quantities {
		q := quantities[i]
		points[i] = ForecastPoint{Date: "2025-06-09", Predicted: &q}
	}
	return points
}

func TestReorderAlerts_DaysRemaining(t *testing.T) {
	ten := 10.0
	forecast := make([]ForecastPoint, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		forecast = append(forecast, ForecastPoint{Date: "2025-06-09", Predicted: &ten})
	}
	// Actual points in the series must not count toward forecasted usage.
	forecast = append(forecast, ForecastPoint{Date: "2025-06-08", Actual: &ten})

	alerts := ReorderAlerts(
		[]IngredientSnapshot{{ID: "flour", Name: "Bread Flour", Unit: "kg", CurrentStock: 100}},
		map[string][]ForecastPoint{"flour": forecast},
	)

	require.Len(t, alerts, 1)
	assert.Equal(t, 140.0, alerts[0].ForecastedUsage14d)
	assert.Equal(t, FiniteDays(10), alerts[0].DaysRemaining)
}

func TestReorderAlerts_Sentinels(t *testing.T) {
	ingredients := []IngredientSnapshot{
		{ID: "a", Name: "Yeast", Unit: "g", CurrentStock: 0},
		{ID: "b", Name: "Salt", Unit: "g", CurrentStock: 50},
	}

	alerts := ReorderAlerts(ingredients, nil)
	require.Len(t, alerts, 2)

	assert.Equal(t, Depleted(), alerts[0].DaysRemaining)
	assert.Equal(t, Unbounded(), alerts[1].DaysRemaining)
}

func TestReorderAlerts_MissingForecastIsZeroUsage(t *testing.T) {
	alerts := ReorderAlerts(
		[]IngredientSnapshot{{ID: "x", CurrentStock: 5}},
		map[string][]ForecastPoint{"other": predictedPoints(3, 3)},
	)
	require.Len(t, alerts, 1)
	assert.Equal(t, 0.0, alerts[0].ForecastedUsage14d)
	assert.Equal(t, Unbounded(), alerts[0].DaysRemaining)
}

func TestRankAlerts_UnboundedLast(t *testing.T) {
	alerts := []ReorderAlert{
		{IngredientID: "a", DaysRemaining: Unbounded()},
		{IngredientID: "b", DaysRemaining: FiniteDays(9)},
		{IngredientID: "c", DaysRemaining: Depleted()},
		{IngredientID: "d", DaysRemaining: FiniteDays(2)},
	}

	RankAlerts(alerts)

	order := make([]string, len(alerts))
	for i, a := range alerts {
		order[i] = a.IngredientID
	}
	assert.Equal(t, []string{"c", "d", "b", "a"}, order)
}

func TestDaysOfCover_Status(t *testing.T) {
	tests := []struct {
		cover DaysOfCover
		want  AlertStatus
	}{
		{Depleted(), StatusCritical},
		{FiniteDays(0), StatusCritical},
		{FiniteDays(2), StatusCritical},
		{FiniteDays(3), StatusLow},
		{FiniteDays(6), StatusLow},
		{FiniteDays(7), StatusOK},
		{Unbounded(), StatusOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cover.Status(), "cover %+v", tt.cover)
	}
}

func TestLowStockCount_ExcludesUnbounded(t *testing.T) {
	alerts := []ReorderAlert{
		{DaysRemaining: FiniteDays(1)},
		{DaysRemaining: FiniteDays(6)},
		{DaysRemaining: FiniteDays(7)},
		{DaysRemaining: Depleted()},
		{DaysRemaining: Unbounded()},
	}
	assert.Equal(t, 3, LowStockCount(alerts))
}

func TestDaysOfCover_JSONRoundTrip(t *testing.T) {
	for _, cover := range []DaysOfCover{Depleted(), FiniteDays(12), Unbounded()} {
		data, err := json.Marshal(cover)
		require.NoError(t, err)

		var decoded DaysOfCover
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, cover, decoded)
	}

	var bad DaysOfCover
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"forever"}`), &bad))
}
