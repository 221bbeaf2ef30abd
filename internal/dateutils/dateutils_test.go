package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		layout string
	}{
		{
			name:   "current statement format",
			input:  "2025-07-15 10:23:45",
			want:   time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC),
			layout: "2006-01-02 15:04:05",
		},
		{
			name:   "day first with dashes",
			input:  "15-07-2025 10:23:45",
			want:   time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC),
			layout: "02-01-2006 15:04:05",
		},
		{
			name:   "day first with slashes",
			input:  "15/07/2025 10:23:45",
			want:   time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC),
			layout: "02/01/2006 15:04:05",
		},
		{
			name:   "no seconds",
			input:  "2025-07-15 10:23",
			want:   time.Date(2025, 7, 15, 10, 23, 0, 0, time.UTC),
			layout: "2006-01-02 15:04",
		},
		{
			name:   "T separated",
			input:  "2025-07-15T10:23:45",
			want:   time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC),
			layout: "2006-01-02T15:04:05",
		},
		{
			name:   "day first no seconds with dashes",
			input:  "15-07-2025 10:23",
			want:   time.Date(2025, 7, 15, 10, 23, 0, 0, time.UTC),
			layout: "02-01-2006 15:04",
		},
		{
			name:   "day first no seconds with slashes",
			input:  "15/07/2025 10:23",
			want:   time.Date(2025, 7, 15, 10, 23, 0, 0, time.UTC),
			layout: "02/01/2006 15:04",
		},
		{
			name:   "date only",
			input:  "2025-07-15",
			want:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			layout: "2006-01-02",
		},
		{
			name:   "day first date only",
			input:  "15-07-2025",
			want:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			layout: "02-01-2006",
		},
		{
			name:   "extra whitespace",
			input:  "  2025-07-15   10:23:45 ",
			want:   time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC),
			layout: "2006-01-02 15:04:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, layout, err := ParseTimestamp(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.layout, layout)
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	_, _, err := ParseTimestamp("not a date")
	assert.Error(t, err)

	_, _, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC)
	assert.Equal(t, "July_25", MonthKey(ts))
}

func TestWeekKey(t *testing.T) {
	ts := time.Date(2025, 7, 15, 10, 23, 45, 0, time.UTC)
	assert.Equal(t, "29_25", WeekKey(ts))
}
