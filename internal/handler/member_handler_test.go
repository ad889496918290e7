package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		clock    string
		expected time.Time
	}{
		{
			name:     "plain date",
			date:     "2026-03-14",
			clock:    "14:30",
			expected: time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 date keeps only the calendar day",
			date:     "2026-03-14T09:00:00Z",
			clock:    "18:05",
			expected: time.Date(2026, 3, 14, 18, 5, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			date:     " 2026-03-14 ",
			clock:    " 08:00 ",
			expected: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := combineDateTime(tt.date, tt.clock)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCombineDateTimeRejectsGarbage(t *testing.T) {
	_, err := combineDateTime("14-03-2026", "14:30")
	assert.Error(t, err)

	_, err = combineDateTime("2026-03-14", "2:30pm")
	assert.Error(t, err)
}
