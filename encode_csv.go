package kassabuch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CSVDialect describes how bill files are written.
//
// Fields holding the delimiter, the quote or a line break are quoted, quotes
// inside are doubled. Records end with "\r\n".
type CSVDialect struct {
	Delimiter rune
	Quote     rune
	Encoding  encoding.Encoding
}

// DefaultDialect is the dialect spreadsheets of the bill book expect.
var DefaultDialect = CSVDialect{Delimiter: ';', Quote: '|', Encoding: charmap.Windows1252}

func (d CSVDialect) needsQuotes(field string) bool {
	return strings.ContainsRune(field, d.Delimiter) ||
		strings.ContainsRune(field, d.Quote) ||
		strings.ContainsAny(field, "\r\n")
}

func (d CSVDialect) quote(field string) string {
	q := string(d.Quote)
	return q + strings.ReplaceAll(field, q, q+q) + q
}

// WriteRows writes rows to w.
func (d CSVDialect) WriteRows(w io.Writer, rows [][]string) error {
	tw := transform.NewWriter(w, encoder(d.Encoding))
	bw := bufio.NewWriter(tw)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				bw.WriteRune(d.Delimiter)
			}
			if d.needsQuotes(field) {
				field = d.quote(field)
			}
			bw.WriteString(field)
		}
		bw.WriteString("\r\n")
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return tw.Close()
}

// rowReader reads records written by a CSVDialect, padded or cut to RowWidth.
type rowReader struct {
	r *bufio.Reader
	d CSVDialect
}

// NewReader returns a reader of the records of r.
func (d CSVDialect) NewReader(r io.Reader) csvutil.Reader {
	return &rowReader{r: bufio.NewReader(transform.NewReader(r, decoder(d.Encoding))), d: d}
}

func (rr *rowReader) Read() ([]string, error) {
	var (
		fields []string
		field  strings.Builder
		quoted bool
		read   bool
	)
	for {
		c, _, err := rr.r.ReadRune()
		if err == io.EOF {
			if !read {
				return nil, io.EOF
			}
			return rr.pad(append(fields, field.String())), nil
		}
		if err != nil {
			return nil, err
		}
		read = true
		switch {
		case quoted && c == rr.d.Quote:
			if next, _, err := rr.r.ReadRune(); err == nil {
				if next == rr.d.Quote {
					field.WriteRune(c)
					continue
				}
				rr.r.UnreadRune()
			}
			quoted = false
		case quoted:
			field.WriteRune(c)
		case c == rr.d.Quote && field.Len() == 0:
			quoted = true
		case c == rr.d.Delimiter:
			fields = append(fields, field.String())
			field.Reset()
		case c == '\r':
		case c == '\n':
			return rr.pad(append(fields, field.String())), nil
		default:
			field.WriteRune(c)
		}
	}
}

func (rr *rowReader) pad(fields []string) []string {
	for len(fields) < RowWidth {
		fields = append(fields, "")
	}
	return fields[:RowWidth]
}

// billRow is any row of a bill file. Header rows hold the bill in the first
// columns: date, time, store, payment (as Name) and the product count (as Price).
type billRow struct {
	Date             string `csv:"date"`
	Time             string `csv:"time"`
	Store            string `csv:"store"`
	Name             string `csv:"name"`
	Price            string `csv:"price"`
	Quantity         string `csv:"quantity"`
	DiscountClass    string `csv:"discount_class"`
	ProductClass     string `csv:"product_class"`
	Unknown          string `csv:"unknown"`
	PriceQuantity    string `csv:"price_quantity"`
	Discount         string `csv:"discount"`
	QuantityDiscount string `csv:"quantity_discount"`
	Sale             string `csv:"sale"`
	PriceFinal       string `csv:"price_final"`
}

var billColumns = []string{
	"date", "time", "store", "name", "price", "quantity", "discount_class", "product_class",
	"unknown", "price_quantity", "discount", "quantity_discount", "sale", "price_final",
}

func (r billRow) isBlank() bool { return r == billRow{} }

// isTitle reports whether r is the first row of an export file.
func (r billRow) isTitle() bool { return r.Time == ExportTitles[0] && r.Store == ExportTitles[1] }

// DecodeBills reads the bills of a backup or export file.
//
// The totals are the ones written in the file. Each product gets the
// purchase record of its bill as history, like a freshly built bill.
func DecodeBills(r io.Reader, d CSVDialect, table DiscountTable) ([]Bill, error) {
	dec, err := csvutil.NewDecoder(d.NewReader(r), billColumns...)
	if err != nil {
		return nil, err
	}
	var (
		bills []Bill
		cur   *Bill
	)
	for line := 1; ; line++ {
		var row billRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("invalid bill row %d: %w", line, err)
		}
		switch {
		case row.isBlank() || row.isTitle():
		case row.Date != "":
			bills = append(bills, row.bill())
			cur = &bills[len(bills)-1]
		case cur == nil:
			return nil, fmt.Errorf("product on row %d comes before any bill", line)
		default:
			p := row.product(table)
			p.History = []PurchaseRecord{purchaseRecord(p, cur.BillMeta)}
			cur.Products = append(cur.Products, p)
		}
	}
	return bills, nil
}

func (r billRow) bill() Bill {
	return Bill{
		BillMeta:            BillMeta{Date: r.Date, Time: r.Time, Store: r.Store, Payment: r.Name},
		PriceQuantitySum:    ParseAmount(r.PriceQuantity),
		DiscountSum:         ParseAmount(r.Discount).Neg(),
		QuantityDiscountSum: ParseAmount(r.QuantityDiscount).Neg(),
		SaleSum:             ParseAmount(r.Sale).Neg(),
		Total:               ParseAmount(r.PriceFinal),
	}
}

func (r billRow) product(table DiscountTable) Product {
	p := NewProduct(r.Name)
	p.PriceSingle = ParseAmount(r.Price)
	p.Quantity = ParseQuantity(r.Quantity)
	p.DiscountClass = columnDiscountClass(r.DiscountClass, table)
	p.ProductClass = r.ProductClass
	p.Unknown = r.Unknown
	p.PriceQuantity = ParseAmount(r.PriceQuantity)
	p.Discount = ParseAmount(r.Discount)
	p.QuantityDiscount = ParseAmount(r.QuantityDiscount)
	p.Sale = ParseAmount(r.Sale)
	p.PriceFinal = ParseAmount(r.PriceFinal)
	return p
}

// columnDiscountClass reverses DiscountClass.Column.
func columnDiscountClass(column string, table DiscountTable) DiscountClass {
	if e, ok := table[column]; ok {
		return LetterClass(column, e.Discount)
	}
	fraction := parseDecimal(column, decimal.NewFromInt(-1))
	if fraction.IsNegative() {
		return DiscountClass{}
	}
	return DiscountClass{kind: Percentage, pct: fraction.Mul(hundred)}
}
