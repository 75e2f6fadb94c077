package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
func consecutiveUsage(t *testing.T, start string, quantities ...float64) []UsageRecord {
	t.Helper()
	day, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)

	records := make([]UsageRecord, len(quantities))
	for i, q := range quantities {
		records[i] = UsageRecord{
			IngredientID: "flour",
			Date:         day.AddDate(0, 0, i).Format("2006-01-02"),
			QuantityUsed: q,
		}
	}
	return records
}

func TestDemand_EmptyUsage(t *testing.T) {
	points, err := Demand(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.NotNil(t, points)
}

func TestDemand_FlatWeekProjectsFlat(t *testing.T) {
	// Seven identical observations Mon-Sun: WMA is 10 and every
	// day-of-week factor is 1, so all 14 projections are 10.00.
	usage := consecutiveUsage(t, "2025-06-02", 10, 10, 10, 10, 10, 10, 10)

	points, err := Demand(usage, nil)
	require.NoError(t, err)
	require.Len(t, points, 7+HorizonDays)

	for i, p := range points[:7] {
		require.NotNil(t, p.Actual, "point %d", i)
		assert.Nil(t, p.Predicted)
		assert.Equal(t, 10.0, *p.Actual)
	}
	for i, p := range points[7:] {
		require.NotNil(t, p.Predicted, "predicted point %d", i)
		assert.Nil(t, p.Actual)
		assert.Equal(t, 10.0, *p.Predicted)
		expectedDate := fmt.Sprintf("2025-06-%02d", 9+i)
		assert.Equal(t, expectedDate, p.Date)
	}
}

func TestDemand_CommittedOrderFloorsPrediction(t *testing.T) {
	usage := consecutiveUsage(t, "2025-06-02", 10, 10, 10, 10, 10, 10, 10)

	commitments := []UpcomingCommitment{
		// Lands on projected day 3 (2025-06-11); split to check that
		// same-date commitments are additive.
		{IngredientID: "flour", DeliveryDate: "2025-06-11", Quantity: 20},
		{IngredientID: "flour", DeliveryDate: "2025-06-11", Quantity: 5},
		// Smaller than the baseline: must not lower the prediction.
		{IngredientID: "flour", DeliveryDate: "2025-06-12", Quantity: 6},
	}

	points, err := Demand(usage, commitments)
	require.NoError(t, err)

	predicted := points[7:]
	assert.Equal(t, 25.0, *predicted[2].Predicted)
	assert.Equal(t, 10.0, *predicted[3].Predicted)
	for i, p := range predicted {
		if i == 2 {
			continue
		}
		assert.Equal(t, 10.0, *p.Predicted, "day %d", i+1)
	}
}

func TestDemand_WindowRetainsLast30ByPosition(t *testing.T) {
	usage := consecutiveUsage(t, "2025-05-01",
		make([]float64, 45)...)
	for i := range usage {
		usage[i].QuantityUsed = float64(i)
	}

	points, err := Demand(usage, nil)
	require.NoError(t, err)

	actuals := 0
	for _, p := range points {
		if p.Actual != nil {
			actuals++
		}
	}
	assert.Equal(t, UsageWindowSize, actuals)
	assert.Len(t, points, UsageWindowSize+HorizonDays)

	// Oldest retained entry is the 16th of 45.
	assert.Equal(t, "2025-05-16", points[0].Date)
	assert.Equal(t, 15.0, *points[0].Actual)
}

func TestDemand_UnsortedInputIsSorted(t *testing.T) {
	usage := consecutiveUsage(t, "2025-06-02", 1, 2, 3)
	usage[0], usage[2] = usage[2], usage[0]

	points, err := Demand(usage, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", points[0].Date)
	assert.Equal(t, 1.0, *points[0].Actual)
	assert.Equal(t, "2025-06-04", points[2].Date)
}

func TestDemand_DayOfWeekFactors(t *testing.T) {
	// Two Monday rows of 10 and one Tuesday row of 4. Duplicate
	// same-date rows count as independent observations, so the overall
	// average is 8, the Monday factor 1.25 and the Tuesday factor 0.5.
	// WMA over [10, 10, 4] with weights 1..3 is 7.
	usage := []UsageRecord{
		{IngredientID: "butter", Date: "2025-06-02", QuantityUsed: 10},
		{IngredientID: "butter", Date: "2025-06-02", QuantityUsed: 10},
		{IngredientID: "butter", Date: "2025-06-03", QuantityUsed: 4},
	}

	points, err := Demand(usage, nil)
	require.NoError(t, err)
	require.Len(t, points, 3+HorizonDays)

	byDate := map[string]float64{}
	for _, p := range points[3:] {
		byDate[p.Date] = *p.Predicted
	}

	assert.Equal(t, 8.75, byDate["2025-06-09"]) // Monday: 7 * 1.25
	assert.Equal(t, 3.5, byDate["2025-06-10"])  // Tuesday: 7 * 0.5
	assert.Equal(t, 7.0, byDate["2025-06-04"])  // Wednesday: no observations, factor 1
}

func TestDemand_AllZeroUsage(t *testing.T) {
	usage := consecutiveUsage(t, "2025-06-02", 0, 0, 0, 0)

	points, err := Demand(usage, nil)
	require.NoError(t, err)
	for _, p := range points {
		if p.Predicted != nil {
			assert.Equal(t, 0.0, *p.Predicted)
		}
	}
}

func TestDemand_NoNegativePredictions(t *testing.T) {
	usage := consecutiveUsage(t, "2025-06-02", 0, 5, 0, 12, 3, 0, 7, 1, 9, 2)

	points, err := Demand(usage, nil)
	require.NoError(t, err)
	for _, p := range points {
		if p.Predicted != nil {
			assert.GreaterOrEqual(t, *p.Predicted, 0.0)
		}
	}
}

func TestDemand_Validation(t *testing.T) {
	var vErr *ValidationError

	_, err := Demand([]UsageRecord{{Date: "06/02/2025", QuantityUsed: 1}}, nil)
	require.ErrorAs(t, err, &vErr)

	_, err = Demand([]UsageRecord{{Date: "2025-06-02", QuantityUsed: -1}}, nil)
	require.ErrorAs(t, err, &vErr)

	_, err = Demand(
		consecutiveUsage(t, "2025-06-02", 1),
		[]UpcomingCommitment{{DeliveryDate: "2025-06-10", Quantity: -3}},
	)
	require.ErrorAs(t, err, &vErr)
}
