package hours

import (
	"fmt"
	"time"

	"hourcount/internal/model"
)

const millisPerHour = 3_600_000

// Elapsed returns the time between start and end as fractional hours.
// Callers validate end > start before computing; Elapsed itself does
// not re-check.
func Elapsed(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / millisPerHour
}

// Increment targets exactly one per-user hour counter column.
type Increment struct {
	Column string
	Hours  float64
}

var counterColumns = map[model.HourCategory]string{
	model.CategoryDept:  "hour_count_dept",
	model.CategoryMeet:  "hour_count_meet",
	model.CategoryEvent: "hour_count_event",
	model.CategoryMisc:  "hour_count_misc",
}

// Countable reports whether approving a log in this category feeds one
// of the four user counters. HR logs are self-tracking only and never
// do.
func Countable(category model.HourCategory) bool {
	_, ok := counterColumns[category]
	return ok
}

// IncrementFor maps a category to its single counter column. Exactly
// one counter is targeted per call; categories outside the countable
// set (including HR) are a contract violation reported as an error.
func IncrementFor(category model.HourCategory, hrs float64) (Increment, error) {
	column, ok := counterColumns[category]
	if !ok {
		return Increment{}, fmt.Errorf("no hour counter for category %q", category)
	}
	return Increment{Column: column, Hours: hrs}, nil
}
