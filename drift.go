package kassabuch

// Drift tells how a typed line departs from the template of its product.
type Drift struct {
	New    bool     // no product of that name
	Fields []string // template fields holding another value
}

// Changed reports whether saving the line as a template would change anything.
func (d Drift) Changed() bool { return d.New || len(d.Fields) > 0 }

// Drift compares a line with the stored template of its product.
func (c *Catalog) Drift(item LineItem) Drift {
	p, ok := c.Get(item.Name)
	if !ok {
		return Drift{New: true}
	}
	var d Drift
	if !p.PriceSingle.Equal(item.PriceSingle) {
		d.Fields = append(d.Fields, "price")
	}
	if !p.Quantity.Effective().Equal(item.Quantity.Effective()) {
		d.Fields = append(d.Fields, "quantity")
	}
	if p.ProductClass != item.ProductClass {
		d.Fields = append(d.Fields, "product class")
	}
	if p.Unknown != item.Unknown {
		d.Fields = append(d.Fields, "unknown")
	}
	return d
}
