package kassabuch

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind tells how a DiscountClass was given.
type DiscountKind int

const (
	// Unset is an empty or unknown discount class, worth 0%.
	Unset DiscountKind = iota
	// Letter is a code from the discount class table.
	Letter
	// Percentage is a number typed directly.
	Percentage
)

// DiscountClass is the discount applied to a line, resolved once when the
// line is read.
type DiscountClass struct {
	kind DiscountKind
	code string
	pct  decimal.Decimal
}

// PercentageClass returns a discount class of pct percent.
func PercentageClass[T float32 | float64 | int | int32 | int64 | decimal.Decimal](pct T) DiscountClass {
	return DiscountClass{kind: Percentage, pct: newDecimal(pct)}
}

// LetterClass returns the discount class of a table entry.
func LetterClass(code string, pct decimal.Decimal) DiscountClass {
	return DiscountClass{kind: Letter, code: code, pct: pct}
}

// ParseDiscountClass resolves raw against the table: a known letter first,
// then a number, otherwise Unset.
func ParseDiscountClass(raw string, table DiscountTable) DiscountClass {
	key := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if key == "" {
		return DiscountClass{}
	}
	if e, ok := table[key]; ok {
		return LetterClass(key, e.Discount)
	}
	if pct, err := decimal.NewFromString(key); err == nil {
		return DiscountClass{kind: Percentage, pct: pct}
	}
	return DiscountClass{}
}

func (c DiscountClass) Kind() DiscountKind { return c.kind }

// Percent returns the discount rate in percent, 0 for Unset.
func (c DiscountClass) Percent() decimal.Decimal {
	if c.kind == Unset {
		return decimal.Zero
	}
	return c.pct
}

// String returns the class as it was typed: the letter, the number or "".
func (c DiscountClass) String() string {
	switch c.kind {
	case Letter:
		return c.code
	case Percentage:
		return c.pct.String()
	default:
		return ""
	}
}

// Column returns the class as written in a bill row: a percentage as a
// fraction with two decimals ("10" is "0.10"), a letter as is.
func (c DiscountClass) Column() string {
	switch c.kind {
	case Letter:
		return c.code
	case Percentage:
		return c.pct.Div(hundred).StringFixed(2)
	default:
		return ""
	}
}

// DiscountEntry is one row of the discount class table.
type DiscountEntry struct {
	Discount    decimal.Decimal `json:"discount"`
	Description string          `json:"description"`
	Store       string          `json:"store"`
}

// DiscountTable maps discount class letters to their entry.
type DiscountTable map[string]DiscountEntry
