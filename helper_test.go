package kassabuch

import "testing"

// newTestCatalog returns a catalog of displayed products, identified in order.
func newTestCatalog(t *testing.T, names ...string) *Catalog {
	t.Helper()
	c := NewCatalog()
	for i, name := range names {
		p := NewProduct(name)
		p.Identifier = i
		p.Quantity = Q(1)
		if err := c.Add(p); err != nil {
			t.Fatalf("Add(%q) unexpected error: %v", name, err)
		}
	}
	return c
}

// line returns a computed line item.
func line(name string, price float64, quantity float64, class DiscountClass) LineItem {
	in := LineInput{PriceSingle: A(price), Quantity: Q(quantity), DiscountClass: class}
	return LineItem{Name: name, LineInput: in, LineResult: ComputeLine(in)}
}

// testBill is a shop visit with two products, one of them discounted.
func testBill() Bill {
	milk := line("Milk", 1.00, 1, DiscountClass{})
	milk.ProductClass = "1"
	eggs := line("Eggs", 0.25, 6, PercentageClass(10))
	return BuildBill([]LineItem{milk, {}, eggs}, BillMeta{Date: "2021-02-13", Time: "12:34", Store: "Corner Shop", Payment: "Cash"})
}
