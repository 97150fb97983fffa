package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// Span returns the smallest range holding every day.
func Span(days ...Date) Range {
	var r Range
	for i, d := range days {
		if i == 0 || d.Before(r.From) {
			r.From = d
		}
		if i == 0 || d.After(r.To) {
			r.To = d
		}
	}
	return r
}

// Contains return true date is included in the range (boundaries included).
// A zero boundary leaves that side open.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Identifier names the range in file names, e.g. "2021-02-01_to_2021-02-13".
func (r Range) Identifier() string {
	return fmt.Sprintf("%s_to_%s", r.From, r.To)
}
