package kassabuch

import (
	"slices"
	"strconv"
	"strings"
)

// FormatOptions tunes the locale of bill rows.
type FormatOptions struct {
	// DecimalSeparator replaces every "." of every field.
	DecimalSeparator string
}

// DefaultFormat writes decimal commas.
var DefaultFormat = FormatOptions{DecimalSeparator: ","}

// ExportTitles are the column titles of an export file, after the line count.
var ExportTitles = []string{"Zeit", "Händler", "Bezeichnung", "Preis", "Menge", "RK", "WK", "", "Preis", "Rabatt", "Mengenrab", "Aktion", "Preis"}

// RowWidth is the number of fields of every bill row.
const RowWidth = 14

// FormatBill returns the header row and the product rows of b.
//
// Amounts are written with two decimals and zero amounts are left blank.
// Quantities are written as typed, the discount class as its column form.
// The header holds discounts, quantity discounts and sales as positive values.
func FormatBill(b Bill, opts FormatOptions) (header []string, rows [][]string) {
	count := ""
	if n := len(b.Products); n > 0 {
		count = strconv.Itoa(n)
	}
	header = opts.localize([]string{
		b.Date, b.Time, b.Store, b.Payment, count,
		"", "", "", "",
		b.PriceQuantitySum.Fixed(),
		b.DiscountSum.Neg().Fixed(),
		b.QuantityDiscountSum.Neg().Fixed(),
		b.SaleSum.Neg().Fixed(),
		b.Total.Fixed(),
	})

	for _, p := range b.Products {
		rows = append(rows, opts.localize([]string{
			"", "", "",
			p.Name,
			p.PriceSingle.Fixed(),
			p.Quantity.String(),
			p.DiscountClass.Column(),
			p.ProductClass,
			p.Unknown,
			p.PriceQuantity.Fixed(),
			p.Discount.Fixed(),
			p.QuantityDiscount.Fixed(),
			p.Sale.Fixed(),
			p.PriceFinal.Fixed(),
		}))
	}
	return header, rows
}

// BillRows returns the rows of a single bill file: the header then the products.
func BillRows(b Bill, opts FormatOptions) [][]string {
	header, rows := FormatBill(b, opts)
	return append([][]string{header}, rows...)
}

// ExportRows returns the rows of an export file.
//
// The first row starts with the number of rows that follow, then the column
// titles. Each bill is its header, its products and an empty row.
func ExportRows(bills []Bill, opts FormatOptions) [][]string {
	count := 0
	for _, b := range bills {
		count += len(b.Products) + 2
	}
	out := [][]string{append([]string{strconv.Itoa(count)}, ExportTitles...)}
	for _, b := range bills {
		out = append(out, BillRows(b, opts)...)
		out = append(out, []string{})
	}
	return out
}

func (o FormatOptions) localize(row []string) []string {
	for i, field := range row {
		row[i] = o.field(field)
	}
	return row
}

func (o FormatOptions) field(s string) string {
	if o.DecimalSeparator == "" || o.DecimalSeparator == "." {
		return s
	}
	return strings.ReplaceAll(s, ".", o.DecimalSeparator)
}

// restore returns the name among known that field was written from, or field
// itself. An exact match wins over a localized one.
func (o FormatOptions) restore(field string, known []string) string {
	if slices.Contains(known, field) {
		return field
	}
	for _, name := range known {
		if o.field(name) == field {
			return name
		}
	}
	return field
}

// written returns r as it reads back from a bill file: names localized, the
// discount class in its column form and amounts per unit from the rounded
// final price.
func (r PurchaseRecord) written(o FormatOptions, table DiscountTable) PurchaseRecord {
	r.Store = o.field(r.Store)
	r.Payment = o.field(r.Payment)
	r.DiscountClass = ParseDiscountClass(r.DiscountClass, table).Column()
	r.PriceFinalPerUnit = r.PriceFinal.Div(r.Quantity.Effective()).Round()
	return r
}
