package kassabuch

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

var one = decimal.NewFromInt(1)

// Quantity is the number of units bought on a line.
//
// The zero Quantity is blank: nothing was typed, which counts as one unit
// in every computation but is written as an empty field.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a Quantity from a constant.
func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) IsBlank() bool               { return q.value.IsZero() }
func (q Quantity) IsOne() bool                 { return q.value.Equal(one) }
func (q Quantity) Decimal() decimal.Decimal    { return q.value }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }

// Effective returns the multiplier used in computations: a blank, zero or
// negative quantity counts as 1.
func (q Quantity) Effective() Quantity {
	if !q.value.IsPositive() {
		return Quantity{value: one}
	}
	return q
}

// String returns the shortest decimal form, or "" for a blank quantity.
func (q Quantity) String() string {
	if q.IsBlank() {
		return ""
	}
	return q.value.String()
}

// MarshalJSON writes blank quantities as "" and others as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsBlank() {
		return []byte(`""`), nil
	}
	return []byte(q.value.String()), nil
}

// UnmarshalJSON accepts numbers, numeric strings with either decimal separator, "" and null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = ParseQuantity(stringOf(v))
	return nil
}
