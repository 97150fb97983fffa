package kassabuch

// NoIdentifier marks a product not yet saved in a catalog.
const NoIdentifier = -1

// Product is a catalog entry: the template used to fill a new line, and
// everything ever bought under that name.
//
// The line fields (PriceQuantity to PriceFinal) are only meaningful on the
// product snapshots of a Bill.
type Product struct {
	Identifier    int
	Name          string
	PriceSingle   Amount
	Quantity      Quantity
	DiscountClass DiscountClass
	ProductClass  string
	Unknown       string

	PriceQuantity    Amount
	Discount         Amount
	QuantityDiscount Amount
	Sale             Amount
	PriceFinal       Amount

	Display bool // listed by the template search
	Notes   string
	History []PurchaseRecord
}

// NewProduct returns an unsaved, displayed product.
func NewProduct(name string) Product {
	return Product{Identifier: NoIdentifier, Name: name, Display: true}
}

// clone returns a copy that does not share its history.
func (p Product) clone() Product {
	p.History = append([]PurchaseRecord(nil), p.History...)
	return p
}

// PurchaseRecord is one purchase of a product.
type PurchaseRecord struct {
	DateTime          string   `json:"date_time"`
	Store             string   `json:"store"`
	Payment           string   `json:"payment"`
	PriceSingle       Amount   `json:"price_single"`
	Quantity          Quantity `json:"quantity"`
	PriceQuantity     Amount   `json:"price_quantity"`
	DiscountClass     string   `json:"discount_class"`
	QuantityDiscount  Amount   `json:"quantity_discount"`
	Sale              Amount   `json:"sale"`
	Discount          Amount   `json:"discount"`
	PriceFinal        Amount   `json:"price_final"`
	PriceFinalPerUnit Amount   `json:"price_final_per_unit"`
}

// Equal reports whether every field of r and s holds the same value.
func (r PurchaseRecord) Equal(s PurchaseRecord) bool {
	return r.DateTime == s.DateTime &&
		r.Store == s.Store &&
		r.Payment == s.Payment &&
		r.PriceSingle.Equal(s.PriceSingle) &&
		r.Quantity.Equal(s.Quantity) &&
		r.PriceQuantity.Equal(s.PriceQuantity) &&
		r.DiscountClass == s.DiscountClass &&
		r.QuantityDiscount.Equal(s.QuantityDiscount) &&
		r.Sale.Equal(s.Sale) &&
		r.Discount.Equal(s.Discount) &&
		r.PriceFinal.Equal(s.PriceFinal) &&
		r.PriceFinalPerUnit.Equal(s.PriceFinalPerUnit)
}
