package forecast

import (
	"math"
	"sort"
	"time"
)

// Demand computes a demand forecast for a single ingredient using a
// weighted moving average with day-of-week adjustment, projected
// HorizonDays past the last historical entry. Committed upcoming orders
// act as a floor on each projected day: known demand supersedes the
// statistical baseline when larger.
//
// The caller groups records by ingredient before calling. Usage may be
// unsorted and may contain several rows for the same date; duplicate
// rows are counted as independent observations when building the
// day-of-week buckets.
//
// The result lists the retained historical points (at most
// UsageWindowSize, ascending by date) followed by exactly HorizonDays
// predicted points. Empty usage yields an empty, non-nil slice.
func Demand(usage []UsageRecord, commitments []UpcomingCommitment) ([]ForecastPoint, error) {
	if len(usage) == 0 {
		return []ForecastPoint{}, nil
	}

	type observation struct {
		date time.Time
		key  string
		qty  float64
	}

	observations := make([]observation, 0, len(usage))
	for _, u := range usage {
		if u.QuantityUsed < 0 {
			return nil, errNegative("quantity_used", u.QuantityUsed)
		}
		d, err := parseDate("usage date", u.Date)
		if err != nil {
			return nil, err
		}
		observations = append(observations, observation{date: d, key: u.Date, qty: u.QuantityUsed})
	}

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].date.Before(observations[j].date)
	})

	// Retain the most recent entries by position, not by distinct date.
	if len(observations) > UsageWindowSize {
		observations = observations[len(observations)-UsageWindowSize:]
	}

	var dowTotals, dowCounts [7]float64
	var total float64
	for _, o := range observations {
		dow := int(o.date.Weekday())
		dowTotals[dow] += o.qty
		dowCounts[dow]++
		total += o.qty
	}
	overallAvg := total / float64(len(observations))

	// Ratio of weekday average to overall average; neutral factor when
	// the weekday has no observations or the overall average is zero.
	var dowFactors [7]float64
	for i := range dowFactors {
		if dowCounts[i] == 0 || overallAvg == 0 {
			dowFactors[i] = 1
			continue
		}
		dowFactors[i] = dowTotals[i] / dowCounts[i] / overallAvg
	}

	// Linearly increasing weights: the most recent point weighs most.
	var weightedSum, weightTotal float64
	for i, o := range observations {
		w := float64(i + 1)
		weightedSum += o.qty * w
		weightTotal += w
	}
	wma := weightedSum / weightTotal

	committedByDate := make(map[string]float64, len(commitments))
	for _, c := range commitments {
		if c.Quantity < 0 {
			return nil, errNegative("commitment quantity", c.Quantity)
		}
		if _, err := parseDate("delivery date", c.DeliveryDate); err != nil {
			return nil, err
		}
		committedByDate[c.DeliveryDate] += c.Quantity
	}

	points := make([]ForecastPoint, 0, len(observations)+HorizonDays)
	for _, o := range observations {
		actual := o.qty
		points = append(points, ForecastPoint{Date: o.key, Actual: &actual})
	}

	lastDate := observations[len(observations)-1].date
	for i := 1; i <= HorizonDays; i++ {
		target := lastDate.AddDate(0, 0, i)
		key := target.Format(dateLayout)

		predicted := math.Max(0, wma*dowFactors[int(target.Weekday())])
		if committed := committedByDate[key]; committed > predicted {
			predicted = committed
		}

		rounded := round2(predicted)
		points = append(points, ForecastPoint{Date: key, Predicted: &rounded})
	}

	return points, nil
}
