package date

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// DefaultClock is the time of a bill typed without one.
const DefaultClock = "00:00"

// NormalizeBillDate turns a date typed on a bill into "yyyy-mm-dd".
//
// The short form "dd-mm" (or "dd.mm") takes the given year. Other inputs are
// parsed leniently ("2021-02-13", "13.02.2021", "Feb 13 2021"). Anything else
// gives "yyyy-00-00" so that the bill is still recorded.
func NormalizeBillDate(input string, year int) string {
	input = strings.TrimSpace(input)
	if parts := strings.FieldsFunc(input, isDateSeparator); len(parts) == 2 {
		return fmt.Sprintf("%d-%s-%s", year, pad2(parts[1]), pad2(parts[0]))
	}
	if t, err := dateparse.ParseAny(input); err == nil {
		return New(t.Date()).String()
	}
	return fmt.Sprintf("%d-00-00", year)
}

func isDateSeparator(r rune) bool { return r == '-' || r == '.' || r == '/' }

// NormalizeClock turns a time typed as "h:m" or "h-m" into "HH:MM".
// Anything else is DefaultClock.
func NormalizeClock(input string) string {
	input = strings.ReplaceAll(strings.TrimSpace(input), "-", ":")
	hours, minutes, ok := strings.Cut(input, ":")
	if !ok || hours == "" || minutes == "" || strings.Contains(minutes, ":") {
		return DefaultClock
	}
	return pad2(hours) + ":" + pad2(minutes)
}

// pad2 adds the leading zero of a single digit.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
