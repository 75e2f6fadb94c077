package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// CoverKind tags a DaysOfCover value.
type CoverKind string

const (
	// CoverDepleted means no stock and no measurable consumption.
	CoverDepleted CoverKind = "depleted"
	// CoverDays means the stock runs out after a finite number of days.
	CoverDays CoverKind = "days"
	// CoverUnbounded means stock is held but nothing consumes it on
	// this horizon, so it effectively never runs out.
	CoverUnbounded CoverKind = "unbounded"
)

// DaysOfCover is a tagged days-remaining result. An explicit variant is
// used instead of a floating-point infinity sentinel so the value
// serializes cleanly.
type DaysOfCover struct {
	Kind CoverKind `json:"kind"`
	Days int       `json:"days,omitempty"`
}

func Depleted() DaysOfCover           { return DaysOfCover{Kind: CoverDepleted} }
func Unbounded() DaysOfCover          { return DaysOfCover{Kind: CoverUnbounded} }
func FiniteDays(days int) DaysOfCover { return DaysOfCover{Kind: CoverDays, Days: days} }

// Finite reports the day count, with ok=false for the unbounded variant.
// Depleted counts as zero days.
func (d DaysOfCover) Finite() (int, bool) {
	switch d.Kind {
	case CoverUnbounded:
		return 0, false
	case CoverDays:
		return d.Days, true
	default:
		return 0, true
	}
}

// Less orders covers ascending by urgency: depleted and short finite
// covers first, unbounded last.
func (d DaysOfCover) Less(other DaysOfCover) bool {
	a, aFinite := d.Finite()
	b, bFinite := other.Finite()
	if aFinite != bFinite {
		return aFinite
	}
	return a < b
}

// AlertStatus bands an alert's urgency for presentation.
type AlertStatus string

const (
	StatusCritical AlertStatus = "Critical"
	StatusLow      AlertStatus = "Low"
	StatusOK       AlertStatus = "OK"
)

// Status bands the cover: under 3 days is Critical, under 7 is Low.
func (d DaysOfCover) Status() AlertStatus {
	days, finite := d.Finite()
	switch {
	case !finite:
		return StatusOK
	case days < 3:
		return StatusCritical
	case days < 7:
		return StatusLow
	default:
		return StatusOK
	}
}

func (d DaysOfCover) MarshalJSON() ([]byte, error) {
	type alias DaysOfCover
	return json.Marshal(alias(d))
}

func (d *DaysOfCover) UnmarshalJSON(data []byte) error {
	type alias DaysOfCover
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	switch a.Kind {
	case CoverDepleted, CoverDays, CoverUnbounded:
		*d = DaysOfCover(a)
		return nil
	default:
		return fmt.Errorf("unknown cover kind %q", a.Kind)
	}
}

// ReorderAlerts combines ingredient snapshots with per-ingredient demand
// forecasts into one alert per ingredient. An ingredient missing from
// the forecast map is treated as having zero forecasted usage.
func ReorderAlerts(ingredients []IngredientSnapshot, forecasts map[string][]ForecastPoint) []ReorderAlert {
	alerts := make([]ReorderAlert, 0, len(ingredients))
	for _, ing := range ingredients {
		var forecastedUsage float64
		for _, p := range forecasts[ing.ID] {
			if p.Predicted != nil {
				forecastedUsage += *p.Predicted
			}
		}

		var avgDailyUsage float64
		if forecastedUsage > 0 {
			avgDailyUsage = forecastedUsage / HorizonDays
		}

		var cover DaysOfCover
		switch {
		case avgDailyUsage > 0:
			cover = FiniteDays(int(math.Floor(ing.CurrentStock / avgDailyUsage)))
		case ing.CurrentStock > 0:
			cover = Unbounded()
		default:
			cover = Depleted()
		}

		alerts = append(alerts, ReorderAlert{
			IngredientID:       ing.ID,
			IngredientName:     ing.Name,
			Unit:               ing.Unit,
			CurrentStock:       ing.CurrentStock,
			ForecastedUsage14d: round2(forecastedUsage),
			DaysRemaining:      cover,
			MinStockLevel:      ing.MinStockLevel,
		})
	}
	return alerts
}

// RankAlerts sorts alerts ascending by days remaining, most urgent
// first, with unbounded covers last.
func RankAlerts(alerts []ReorderAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysRemaining.Less(alerts[j].DaysRemaining)
	})
}

// LowStockCount counts alerts under 7 days of cover, excluding the
// unbounded variant.
func LowStockCount(alerts []ReorderAlert) int {
	count := 0
	for _, a := range alerts {
		if days, finite := a.DaysRemaining.Finite(); finite && days < 7 {
			count++
		}
	}
	return count
}
