package kassabuch

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amount represents a price, a price adjustment or a sum of them.
//
// Amounts carry no currency: a bill book is kept in a single currency that
// only matters when amounts are displayed.
type Amount struct {
	value decimal.Decimal
}

// A returns an Amount from a constant.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsNegative() bool         { return a.value.IsNegative() }
func (a Amount) Add(b Amount) Amount      { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount              { return Amount{value: a.value.Neg()} }
func (a Amount) Mul(q Quantity) Amount    { return Amount{value: a.value.Mul(q.value)} }
func (a Amount) Div(q Quantity) Amount    { return Amount{value: a.value.Div(q.value)} }
func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) LessThan(b Amount) bool   { return a.value.LessThan(b.value) }
func (a Amount) InexactFloat64() float64  { return a.value.InexactFloat64() }
func (a Amount) String() string           { return a.value.String() }

// Percent returns pct percent of a.
func (a Amount) Percent(pct decimal.Decimal) Amount {
	return Amount{value: a.value.Mul(pct).Div(hundred)}
}

// Round rounds to cents, halves away from zero.
func (a Amount) Round() Amount { return Amount{value: a.value.Round(2)} }

// Fixed returns the amount with exactly two decimals, "." separated, or ""
// when it is zero.
func (a Amount) Fixed() string {
	if a.value.IsZero() {
		return ""
	}
	return a.value.StringFixed(2)
}

// Display formats the amount in the given currency, e.g. "€12.50".
func (a Amount) Display(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return a.value.StringFixed(2) + " " + currency
	}
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// MarshalJSON writes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings like "0,0"; malformed values read as zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = ParseAmount(stringOf(v))
	return nil
}
