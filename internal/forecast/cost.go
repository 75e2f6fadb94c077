package forecast

import "sort"

// CostTrend computes the per-date average unit cost for a single
// ingredient's invoice lines, smoothed with a trailing rolling average
// over at most RollingWindowSize points. The window shrinks at the
// start of the series rather than padding with zeros.
func CostTrend(items []InvoiceLineCost) ([]CostTrendPoint, error) {
	if len(items) == 0 {
		return []CostTrendPoint{}, nil
	}

	type bucket struct {
		total float64
		count int
	}

	byDate := make(map[string]*bucket)
	for _, item := range items {
		if item.UnitCost < 0 {
			return nil, errNegative("unit_cost", item.UnitCost)
		}
		if _, err := parseDate("invoice date", item.Date); err != nil {
			return nil, err
		}
		b := byDate[item.Date]
		if b == nil {
			b = &bucket{}
			byDate[item.Date] = b
		}
		b.total += item.UnitCost
		b.count++
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	// Lexicographic order is chronological for YYYY-MM-DD keys.
	sort.Strings(dates)

	points := make([]CostTrendPoint, 0, len(dates))
	for _, d := range dates {
		b := byDate[d]
		points = append(points, CostTrendPoint{
			Date:     d,
			UnitCost: round2(b.total / float64(b.count)),
		})
	}

	for i := range points {
		start := i - (RollingWindowSize - 1)
		if start < 0 {
			start = 0
		}
		var sum float64
		for _, p := range points[start : i+1] {
			sum += p.UnitCost
		}
		points[i].RollingAverage = round2(sum / float64(i-start+1))
	}

	return points, nil
}

// SpendByMonth aggregates invoice line totals by calendar month,
// ascending by month key.
func SpendByMonth(items []InvoiceLineSpend) ([]MonthlySpend, error) {
	if len(items) == 0 {
		return []MonthlySpend{}, nil
	}

	totals := make(map[string]float64)
	for _, item := range items {
		if item.TotalCost < 0 {
			return nil, errNegative("total_cost", item.TotalCost)
		}
		d, err := parseDate("invoice date", item.Date)
		if err != nil {
			return nil, err
		}
		totals[d.Format("2006-01")] += item.TotalCost
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	result := make([]MonthlySpend, 0, len(months))
	for _, m := range months {
		result = append(result, MonthlySpend{Month: m, Total: round2(totals[m])})
	}
	return result, nil
}
