package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a printed statement amount into a decimal value.
// Thousands separators are stripped and the string is parsed as an exact
// decimal, never as binary floating point, so re-rendering round-trips to
// the printed value. Empty placeholders ("", "-", "N/A") parse to zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "-", "N/A", "n/a":
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s': %w", raw, err)
	}
	return d, nil
}

// FormatAmount renders a decimal amount the way statements print it, with
// two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
