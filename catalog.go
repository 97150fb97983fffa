package kassabuch

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	// ErrDuplicateName is returned when two products share a name.
	ErrDuplicateName = errors.New("duplicate product name")
	// ErrDuplicateIdentifier is returned when two products share an identifier.
	ErrDuplicateIdentifier = errors.New("duplicate product identifier")
)

// Catalog holds every known product by name, and the Name→Identifier index.
//
// The index mirrors the products and can be rebuilt from them at any time.
// Mutations are serialized so that allocating an identifier and storing the
// product happen as one step.
type Catalog struct {
	mu       sync.Mutex
	products map[string]Product
	ids      map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]Product),
		ids:      make(map[string]int),
	}
}

// Add inserts a product that already has an identifier, as read from disk.
func (c *Catalog) Add(p Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Identifier < 0 {
		return fmt.Errorf("product %q has no identifier", p.Name)
	}
	if _, exists := c.products[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
	}
	if holder, taken := c.holder(p.Identifier); taken {
		return fmt.Errorf("%w: %d is used by %q and %q", ErrDuplicateIdentifier, p.Identifier, holder, p.Name)
	}
	c.put(p)
	return nil
}

// put stores p and indexes it. c.mu must be held.
func (c *Catalog) put(p Product) {
	c.products[p.Name] = p.clone()
	c.ids[p.Name] = p.Identifier
}

// holder returns the name of the product holding id. c.mu must be held.
//
// It scans the products, not the index, so that a stale index cannot hide a
// collision.
func (c *Catalog) holder(id int) (string, bool) {
	for name, p := range c.products {
		if p.Identifier == id {
			return name, true
		}
	}
	return "", false
}

// Get returns a copy of the named product.
func (c *Catalog) Get(name string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[name]
	if !ok {
		return Product{}, false
	}
	return p.clone(), true
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.products[name]
	return ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.products)
}

// Names returns all product names in alphabetical order.
func (c *Catalog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.products))
	for name := range c.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Products returns a copy of every product, sorted by name.
func (c *Catalog) Products() []Product {
	names := c.Names()
	c.mu.Lock()
	defer c.mu.Unlock()
	products := make([]Product, 0, len(names))
	for _, name := range names {
		if p, ok := c.products[name]; ok {
			products = append(products, p.clone())
		}
	}
	return products
}

// Keys returns a copy of the Name→Identifier index.
func (c *Catalog) Keys() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make(map[string]int, len(c.ids))
	for name, id := range c.ids {
		keys[name] = id
	}
	return keys
}

// Identifiers returns the identifiers in use, in increasing order.
func (c *Catalog) Identifiers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int, 0, len(c.products))
	for _, p := range c.products {
		ids = append(ids, p.Identifier)
	}
	slices.Sort(ids)
	return ids
}

// RebuildIndex recomputes the Name→Identifier index from the products.
func (c *Catalog) RebuildIndex() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = make(map[string]int, len(c.products))
	for name, p := range c.products {
		c.ids[name] = p.Identifier
	}
}
