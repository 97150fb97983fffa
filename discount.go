package kassabuch

import "strings"

// LineInput holds the values of a purchase line that drive its price.
type LineInput struct {
	PriceSingle      Amount
	Quantity         Quantity
	DiscountClass    DiscountClass
	QuantityDiscount Amount // usually negative
	Sale             Amount // usually negative
	// MinusFirst applies the discount rate after the quantity discount and
	// the sale instead of on the undiscounted price.
	MinusFirst bool
}

// LineResult holds the derived values of a purchase line.
type LineResult struct {
	PriceQuantity Amount
	Discount      Amount
	PriceFinal    Amount
}

// ComputeLine computes the price of a line. It never fails: missing values
// have already been read as zero, and a blank quantity counts as one unit.
func ComputeLine(in LineInput) LineResult {
	pq := in.PriceSingle.Mul(in.Quantity.Effective()).Round()

	base := pq
	if in.MinusFirst {
		base = in.Sale.Add(in.QuantityDiscount).Add(pq)
	}
	discount := base.Neg().Percent(in.DiscountClass.Percent()).Round()

	return LineResult{
		PriceQuantity: pq,
		Discount:      discount,
		PriceFinal:    pq.Add(discount).Add(in.QuantityDiscount).Add(in.Sale).Round(),
	}
}

// RawLine is a purchase line as typed, every field is free text.
type RawLine struct {
	Name             string
	PriceSingle      string
	Quantity         string
	DiscountClass    string
	ProductClass     string
	Unknown          string
	QuantityDiscount string
	Sale             string
	MinusFirst       bool
}

// Input parses the numeric fields of the line.
func (r RawLine) Input(table DiscountTable) LineInput {
	return LineInput{
		PriceSingle:      ParseAmount(r.PriceSingle),
		Quantity:         ParseQuantity(r.Quantity),
		DiscountClass:    ParseDiscountClass(r.DiscountClass, table),
		QuantityDiscount: ParseAmount(r.QuantityDiscount),
		Sale:             ParseAmount(r.Sale),
		MinusFirst:       r.MinusFirst,
	}
}

// Item parses the line into a computed LineItem.
func (r RawLine) Item(table DiscountTable) LineItem {
	in := r.Input(table)
	return LineItem{
		Name:         strings.TrimRight(r.Name, " "),
		LineInput:    in,
		ProductClass: r.ProductClass,
		Unknown:      r.Unknown,
		LineResult:   ComputeLine(in),
	}
}

// ComputeRawLine parses and computes a typed line.
func ComputeRawLine(r RawLine, table DiscountTable) LineResult {
	return ComputeLine(r.Input(table))
}
