package kassabuch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIdentifierCollision is returned when a freshly allocated identifier
	// is already held by a product: the catalog and its index disagree and
	// nothing may be written until that is fixed.
	ErrIdentifierCollision = errors.New("identifier collision")
	// ErrEmptyName is returned when saving a product without a name.
	ErrEmptyName = errors.New("product name is empty")
)

// ProductStore persists products.
type ProductStore interface {
	WriteProduct(p Product) error
}

// ResolveIdentifier returns the identifier of name: the stored one when the
// product is known, otherwise one more than the highest identifier in use.
// An empty catalog starts at 0.
func ResolveIdentifier(name string, c *Catalog) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveIdentifier(name)
}

// resolveIdentifier implements ResolveIdentifier. c.mu must be held.
func (c *Catalog) resolveIdentifier(name string) (int, error) {
	if id, ok := c.ids[name]; ok {
		return id, nil
	}
	id := -1
	for _, used := range c.ids {
		id = max(id, used)
	}
	id++
	if holder, taken := c.holder(id); taken {
		return 0, fmt.Errorf("%w: new identifier %d for %q is held by %q", ErrIdentifierCollision, id, name, holder)
	}
	return id, nil
}

// SaveProduct records the purchases in p.History into the catalog.
//
// A known product keeps its template values, display flag and notes, only its
// history grows. An unknown product is created from p with a new identifier.
// The product is written to store before the catalog is updated; store may be nil.
func SaveProduct(c *Catalog, p Product, store ProductStore) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.Name = strings.TrimRight(p.Name, " ")
	if p.Name == "" {
		return Product{}, ErrEmptyName
	}

	saved, known := c.products[p.Name]
	if known {
		saved = saved.clone()
		saved.History = MergeHistory(saved.History, p.History)
	} else {
		id, err := c.resolveIdentifier(p.Name)
		if err != nil {
			return Product{}, err
		}
		saved = p.template()
		saved.Identifier = id
		saved.History = MergeHistory(nil, p.History)
	}
	return c.store(saved, store)
}

// TemplateOption changes an attribute that a template save keeps otherwise.
type TemplateOption func(*Product)

// WithDisplay sets whether the template search lists the product.
func WithDisplay(display bool) TemplateOption { return func(p *Product) { p.Display = display } }

// WithNotes replaces the product notes.
func WithNotes(notes string) TemplateOption { return func(p *Product) { p.Notes = notes } }

// SaveTemplate stores the template values of p (price, quantity, product
// class, unknown) under its name.
//
// The history of a known product is kept and merged with p.History. Display
// and notes only change through opts; a new product is displayed.
func SaveTemplate(c *Catalog, p Product, store ProductStore, opts ...TemplateOption) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.Name = strings.TrimRight(p.Name, " ")
	if p.Name == "" {
		return Product{}, ErrEmptyName
	}

	saved := p.template()
	if prior, known := c.products[p.Name]; known {
		saved.Identifier = prior.Identifier
		saved.Display = prior.Display
		saved.Notes = prior.Notes
		saved.History = MergeHistory(prior.History, p.History)
	} else {
		id, err := c.resolveIdentifier(p.Name)
		if err != nil {
			return Product{}, err
		}
		saved.Identifier = id
		saved.Display = true
		saved.Notes = ""
		saved.History = MergeHistory(nil, p.History)
	}
	for _, opt := range opts {
		opt(&saved)
	}
	return c.store(saved, store)
}

// store persists p then puts it in the catalog. c.mu must be held.
func (c *Catalog) store(p Product, store ProductStore) (Product, error) {
	if store != nil {
		if err := store.WriteProduct(p); err != nil {
			return Product{}, fmt.Errorf("could not save product %q: %w", p.Name, err)
		}
	}
	c.put(p)
	return p.clone(), nil
}

// template returns p reduced to what a catalog keeps: the line values are
// dropped and a blank quantity becomes 1.
func (p Product) template() Product {
	t := Product{
		Identifier:   p.Identifier,
		Name:         p.Name,
		PriceSingle:  p.PriceSingle,
		Quantity:     p.Quantity,
		ProductClass: p.ProductClass,
		Unknown:      p.Unknown,
		Display:      p.Display,
		Notes:        p.Notes,
		History:      p.History,
	}
	if t.Quantity.IsBlank() {
		t.Quantity = Q(1)
	}
	return t
}
