// Package dateutils provides date and time parsing for statement rows.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Timestamp layouts used by statement generations. The exact format varies
// by era, so the list is configuration data: extend it when a new statement
// generation appears, do not assume it is exhaustive.
var StatementTimeFormats = []string{
	"2006-01-02 15:04:05", // current statements
	"2006-01-02T15:04:05", // T-separated export variant
	"02-01-2006 15:04:05", // older statements, day first
	"02/01/2006 15:04:05",
	"2006-01-02 15:04", // minutes precision
	"2006-01-02T15:04",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
	"2006-01-02", // date-only summary rows
	"02-01-2006",
	"02/01/2006",
}

// ParseTimestamp attempts to parse a statement timestamp using each of the
// accepted layouts. Returns the parsed time and the layout that matched.
func ParseTimestamp(value string) (time.Time, string, error) {
	value = CleanDateString(value)

	for _, layout := range StatementTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse timestamp: %s", value)
}

// CleanDateString removes unwanted characters and normalizes whitespace.
func CleanDateString(value string) string {
	value = strings.TrimSpace(value)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(value, " ")
}

// MonthKey buckets a timestamp into the statement month label, e.g.
// "July_25".
func MonthKey(t time.Time) string {
	return t.Format("January_06")
}

// WeekKey buckets a timestamp into the ISO week label, e.g. "29_25".
func WeekKey(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("%02d_%s", week, t.Format("06"))
}
