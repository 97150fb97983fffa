package kassabuch

// LineItem is one computed line of a bill being typed.
type LineItem struct {
	Name string
	LineInput
	ProductClass string
	Unknown      string
	LineResult
}

// isEmpty reports whether nothing was entered on the line.
func (i LineItem) isEmpty() bool {
	return i.Name == "" && i.Quantity.IsBlank() && i.PriceFinal.IsZero()
}

// BillMeta describes the purchase a bill records.
type BillMeta struct {
	Date    string // yyyy-mm-dd
	Time    string // HH:MM
	Store   string
	Payment string
}

// DateTime returns the timestamp recorded in purchase histories.
func (m BillMeta) DateTime() string { return m.Date + "T" + m.Time }

// Bill is a saved purchase: its products and totals.
//
// A Bill is never modified once built. Each product snapshot holds, as its
// History, the purchase record of this bill.
type Bill struct {
	BillMeta
	Products []Product

	Total               Amount
	DiscountSum         Amount
	QuantityDiscountSum Amount
	SaleSum             Amount
	PriceQuantitySum    Amount
}

// IsEmpty reports whether the bill has no product.
func (b Bill) IsEmpty() bool { return len(b.Products) == 0 }

// BuildBill assembles a bill from computed line items.
//
// Lines where nothing was entered are dropped, a quantity of 1 is written
// blank, and every sum is derived from the remaining lines.
func BuildBill(items []LineItem, meta BillMeta) Bill {
	b := Bill{BillMeta: meta}
	for _, item := range items {
		if item.isEmpty() {
			continue
		}
		p := NewProduct(item.Name)
		p.PriceSingle = item.PriceSingle
		p.Quantity = item.Quantity
		if p.Quantity.IsOne() {
			p.Quantity = Quantity{}
		}
		p.DiscountClass = item.DiscountClass
		p.ProductClass = item.ProductClass
		p.Unknown = item.Unknown
		p.PriceQuantity = item.PriceQuantity
		p.Discount = item.Discount
		p.QuantityDiscount = item.QuantityDiscount
		p.Sale = item.Sale
		p.PriceFinal = item.PriceFinal
		p.History = []PurchaseRecord{purchaseRecord(p, meta)}
		b.Products = append(b.Products, p)

		b.Total = b.Total.Add(p.PriceFinal)
		b.DiscountSum = b.DiscountSum.Add(p.Discount)
		b.QuantityDiscountSum = b.QuantityDiscountSum.Add(p.QuantityDiscount)
		b.SaleSum = b.SaleSum.Add(p.Sale)
		b.PriceQuantitySum = b.PriceQuantitySum.Add(p.PriceQuantity)
	}
	b.Total = b.Total.Round()
	b.DiscountSum = b.DiscountSum.Round()
	b.QuantityDiscountSum = b.QuantityDiscountSum.Round()
	b.SaleSum = b.SaleSum.Round()
	b.PriceQuantitySum = b.PriceQuantitySum.Round()
	return b
}

// purchaseRecord returns the history entry of a bill line.
func purchaseRecord(p Product, meta BillMeta) PurchaseRecord {
	return PurchaseRecord{
		DateTime:          meta.DateTime(),
		Store:             meta.Store,
		Payment:           meta.Payment,
		PriceSingle:       p.PriceSingle.Round(),
		Quantity:          p.Quantity,
		PriceQuantity:     p.PriceQuantity.Round(),
		DiscountClass:     p.DiscountClass.String(),
		QuantityDiscount:  p.QuantityDiscount.Round(),
		Sale:              p.Sale.Round(),
		Discount:          p.Discount.Round(),
		PriceFinal:        p.PriceFinal.Round(),
		PriceFinalPerUnit: p.PriceFinal.Div(p.Quantity.Effective()).Round(),
	}
}
