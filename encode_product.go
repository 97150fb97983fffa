package kassabuch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// jproduct is the content of a product file.
type jproduct struct {
	Name                string           `json:"name"`
	DefaultPricePerUnit Amount           `json:"default_price_per_unit"`
	DefaultQuantity     Quantity         `json:"default_quantity"`
	ProductClass        text             `json:"product_class"`
	Unknown             text             `json:"unknown"`
	Display             *bool            `json:"display"`
	Notes               text             `json:"notes"`
	History             []PurchaseRecord `json:"history"`
}

// text is a string field that older files sometimes hold as a number.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = text(stringOf(v))
	return nil
}

// EncodeProduct writes p as a product file: indented JSON, history last.
// The identifier is not part of the content, it names the file.
func EncodeProduct(w io.Writer, p Product) error {
	history := p.History
	if history == nil {
		history = []PurchaseRecord{}
	}
	display := p.Display
	jp := jproduct{
		Name:                p.Name,
		DefaultPricePerUnit: p.PriceSingle,
		DefaultQuantity:     p.Quantity,
		ProductClass:        text(p.ProductClass),
		Unknown:             text(p.Unknown),
		Display:             &display,
		Notes:               text(p.Notes),
		History:             history,
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(jp)
}

// DecodeProduct reads a product file. A file without "display" is displayed.
func DecodeProduct(r io.Reader) (Product, error) {
	var jp jproduct
	if err := json.NewDecoder(r).Decode(&jp); err != nil {
		return Product{}, fmt.Errorf("invalid product file: %w", err)
	}
	p := NewProduct(jp.Name)
	p.PriceSingle = jp.DefaultPricePerUnit
	p.Quantity = jp.DefaultQuantity
	p.ProductClass = string(jp.ProductClass)
	p.Unknown = string(jp.Unknown)
	if jp.Display != nil {
		p.Display = *jp.Display
	}
	p.Notes = string(jp.Notes)
	p.History = jp.History
	return p, nil
}

// marshalProduct returns the product file content of p.
func marshalProduct(p Product) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeProduct(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
