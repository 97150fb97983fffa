package kassabuch

import (
	"slices"
	"sort"
)

// Store holds what a store implies on a new bill.
type Store struct {
	DefaultPayment       string `json:"default_payment"`
	DefaultDiscountClass string `json:"default_discount_class"`
}

// References are the stores, payment methods and discount classes a bill
// refers to.
type References struct {
	Stores          map[string]Store
	Payments        []string
	DiscountClasses DiscountTable
}

// NewReferences returns empty references.
func NewReferences() *References {
	return &References{
		Stores:          make(map[string]Store),
		DiscountClasses: make(DiscountTable),
	}
}

// StoreNames returns the store names in alphabetical order.
func (r *References) StoreNames() []string {
	names := make([]string, 0, len(r.Stores))
	for name := range r.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StoreMatch is the outcome of a store search.
type StoreMatch struct {
	Candidates []string
	Store      string // chosen store, "" when none
	Payment    string // its default payment
}

// MatchStores searches the stores ignoring case, with the same tie-break as
// the template search.
func (r *References) MatchStores(query string) StoreMatch {
	m := StoreMatch{Candidates: MatchNames(query, r.StoreNames(), SubstringMatch)}
	if name, ok := pick(query, m.Candidates); ok {
		m.Store = name
		m.Payment = r.Stores[name].DefaultPayment
	}
	return m
}

// MatchPayments returns the payment methods containing query, ignoring case.
func (r *References) MatchPayments(query string) []string {
	return MatchNames(query, r.Payments, SubstringMatch)
}

// DefaultDiscountClass returns the discount class usually typed at store.
func (r *References) DefaultDiscountClass(store string) string {
	return r.Stores[store].DefaultDiscountClass
}

// Register adds the store and the payment of a bill when they are new.
// It reports which of them were added.
func (r *References) Register(store, payment string) (newStore, newPayment bool) {
	if r.Stores == nil {
		r.Stores = make(map[string]Store)
	}
	if store != "" {
		if _, ok := r.Stores[store]; !ok {
			r.Stores[store] = Store{}
			newStore = true
		}
	}
	if payment != "" && !slices.Contains(r.Payments, payment) {
		r.Payments = append(r.Payments, payment)
		sort.Strings(r.Payments)
		newPayment = true
	}
	return newStore, newPayment
}
