package kassabuch

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// parseDecimal reads a number typed by a user or found in an old file.
//
// Surrounding spaces are ignored and "," is accepted as decimal separator.
// Anything that is not a number yields def.
func parseDecimal(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// ParseAmount reads an amount, malformed or empty input reads as zero.
func ParseAmount(s string) Amount {
	return Amount{value: parseDecimal(s, decimal.Zero)}
}

// ParseQuantity reads a quantity, malformed or empty input reads as blank.
func ParseQuantity(s string) Quantity {
	return Quantity{value: parseDecimal(s, decimal.Zero)}
}

// stringOf converts a decoded JSON value to the text it stands for.
// Product files written by older versions hold numbers as strings.
func stringOf(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
