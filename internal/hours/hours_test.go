package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hourcount/internal/model"
)

func TestElapsed(t *testing.T) {
	base := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected float64
	}{
		{
			name:     "two and a half hours",
			start:    base,
			end:      base.Add(2*time.Hour + 30*time.Minute),
			expected: 2.5,
		},
		{
			name:     "exactly one hour",
			start:    base,
			end:      base.Add(time.Hour),
			expected: 1,
		},
		{
			name:     "fifteen minutes",
			start:    base,
			end:      base.Add(15 * time.Minute),
			expected: 0.25,
		},
		{
			name:     "spans midnight",
			start:    time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC),
			end:      time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
			expected: 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Elapsed(tt.start, tt.end))
		})
	}
}

func TestIncrementFor(t *testing.T) {
	tests := []struct {
		category model.HourCategory
		column   string
	}{
		{model.CategoryDept, "hour_count_dept"},
		{model.CategoryMeet, "hour_count_meet"},
		{model.CategoryEvent, "hour_count_event"},
		{model.CategoryMisc, "hour_count_misc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			inc, err := IncrementFor(tt.category, 2.5)
			assert.NoError(t, err)
			assert.Equal(t, tt.column, inc.Column)
			assert.Equal(t, 2.5, inc.Hours)
		})
	}
}

func TestIncrementForRejectsNonCountable(t *testing.T) {
	_, err := IncrementFor(model.CategoryHR, 1)
	assert.Error(t, err)

	_, err = IncrementFor(model.HourCategory("Bogus"), 1)
	assert.Error(t, err)
}

func TestCountable(t *testing.T) {
	assert.True(t, Countable(model.CategoryDept))
	assert.True(t, Countable(model.CategoryMeet))
	assert.True(t, Countable(model.CategoryEvent))
	assert.True(t, Countable(model.CategoryMisc))
	assert.False(t, Countable(model.CategoryHR))
	assert.False(t, Countable(model.HourCategory("Bogus")))
}
