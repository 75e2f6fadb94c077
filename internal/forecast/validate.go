package forecast

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// ValidationError reports malformed input: an unparseable calendar date
// or a negative quantity/cost. The computation that raised it produced
// no partial results.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func errBadDate(field, value string) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf("%q is not a YYYY-MM-DD calendar date", value)}
}

func errNegative(field string, value float64) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf("%v must be non-negative", value)}
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errBadDate(field, value)
	}
	return d, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
