package renderer

import (
	"github.com/etnz/kassabuch"
)

// Bill is the printable form of a saved bill.
// Amounts are already displayed in the report currency.
type Bill struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Store   string `json:"store"`
	Payment string `json:"payment"`
	Lines   []Line `json:"lines"`

	Total               string `json:"total"`
	PriceQuantitySum    string `json:"priceQuantitySum"`
	DiscountSum         string `json:"discountSum,omitempty"`
	QuantityDiscountSum string `json:"quantityDiscountSum,omitempty"`
	SaleSum             string `json:"saleSum,omitempty"`
}

// Line is one product of a printable bill.
type Line struct {
	Name          string `json:"name"`
	PriceSingle   string `json:"priceSingle"`
	Quantity      string `json:"quantity"`
	DiscountClass string `json:"discountClass,omitempty"`
	ProductClass  string `json:"productClass,omitempty"`
	Reductions    string `json:"reductions,omitempty"` // discount, quantity discount and sale together
	PriceFinal    string `json:"priceFinal"`
}

// NewBill prepares b for rendering.
func NewBill(b kassabuch.Bill, currency string) *Bill {
	v := &Bill{
		Date:             b.Date,
		Time:             b.Time,
		Store:            b.Store,
		Payment:          b.Payment,
		Total:            b.Total.Display(currency),
		PriceQuantitySum: b.PriceQuantitySum.Display(currency),
	}
	v.DiscountSum = nonZero(b.DiscountSum, currency)
	v.QuantityDiscountSum = nonZero(b.QuantityDiscountSum, currency)
	v.SaleSum = nonZero(b.SaleSum, currency)

	for _, p := range b.Products {
		quantity := p.Quantity.String()
		if quantity == "" {
			quantity = "1"
		}
		reductions := p.Discount.Add(p.QuantityDiscount).Add(p.Sale)
		v.Lines = append(v.Lines, Line{
			Name:          p.Name,
			PriceSingle:   p.PriceSingle.Display(currency),
			Quantity:      quantity,
			DiscountClass: p.DiscountClass.String(),
			ProductClass:  p.ProductClass,
			Reductions:    nonZero(reductions, currency),
			PriceFinal:    p.PriceFinal.Display(currency),
		})
	}
	return v
}

func nonZero(a kassabuch.Amount, currency string) string {
	if a.IsZero() {
		return ""
	}
	return a.Display(currency)
}

// Search is the printable outcome of a template search.
type Search struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	Chosen     string   `json:"chosen,omitempty"`
	Price      string   `json:"price,omitempty"`
	Quantity   string   `json:"quantity,omitempty"`
	Class      string   `json:"class,omitempty"`
	Unknown    string   `json:"unknown,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// NewSearch prepares r for rendering.
func NewSearch(r kassabuch.Resolution, currency string) *Search {
	v := &Search{Query: r.Query, Candidates: r.Candidates}
	if r.Template != nil {
		v.Chosen = r.Fill.Name
		v.Price = r.Fill.PriceSingle.Display(currency)
		v.Quantity = r.Fill.Quantity.String()
		v.Class = r.Fill.ProductClass
		v.Unknown = r.Fill.Unknown
		v.Notes = r.Template.Notes
	}
	return v
}

// Prices is the printable price history of a product.
type Prices struct {
	Name   string      `json:"name"`
	Points []PriceLine `json:"points"`
	Count  int         `json:"count"`
	Min    string      `json:"min"`
	Max    string      `json:"max"`
	Mean   string      `json:"mean"`
	Median string      `json:"median"`
	Change string      `json:"change"`
}

// PriceLine is one purchase of a price history.
type PriceLine struct {
	DateTime string `json:"dateTime"`
	Store    string `json:"store"`
	PerUnit  string `json:"perUnit"`
}

// NewPrices prepares a price history for rendering.
func NewPrices(name string, points []kassabuch.PricePoint, s kassabuch.PriceSummary, currency string) *Prices {
	v := &Prices{
		Name:   name,
		Count:  s.Count,
		Min:    kassabuch.A(s.Min).Display(currency),
		Max:    kassabuch.A(s.Max).Display(currency),
		Mean:   kassabuch.A(s.Mean).Display(currency),
		Median: kassabuch.A(s.Median).Display(currency),
		Change: s.Change.SignedString(),
	}
	for _, p := range points {
		v.Points = append(v.Points, PriceLine{DateTime: p.DateTime, Store: p.Store, PerUnit: p.PerUnit.Display(currency)})
	}
	return v
}
