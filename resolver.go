package kassabuch

import (
	"regexp"
	"sort"
	"strings"
)

// MatchMode selects how typed text is matched against names.
type MatchMode int

const (
	// SubstringMatch matches names containing the text, ignoring case.
	SubstringMatch MatchMode = iota
	// PatternMatch reads the text as a pattern where * stands for any run of
	// characters, matched anywhere in the name and ignoring case.
	PatternMatch
)

// Fill holds the line fields set after a template search.
type Fill struct {
	Name         string
	PriceSingle  Amount
	Quantity     Quantity
	ProductClass string
	Unknown      string
}

// Resolution is the outcome of a template search.
type Resolution struct {
	Query      string
	Candidates []string // displayed names matching the query, sorted
	Template   *Product // the product filled in, nil when none was chosen
	Fill       Fill
}

// ResolveTemplate searches the displayed products of c for query.
//
// A single candidate, or among several the one equal to query ignoring case,
// fills the line. Otherwise the line is cleared and keeps query as its name.
func ResolveTemplate(query string, c *Catalog, mode MatchMode) Resolution {
	var displayed []string
	for _, p := range c.Products() {
		if p.Display {
			displayed = append(displayed, p.Name)
		}
	}

	res := Resolution{
		Query:      query,
		Candidates: MatchNames(query, displayed, mode),
		Fill:       Fill{Name: query},
	}
	name, ok := pick(query, res.Candidates)
	if !ok {
		return res
	}
	p, ok := c.Get(name)
	if !ok {
		return res
	}
	res.Template = &p
	res.Fill = Fill{
		Name:         p.Name,
		PriceSingle:  p.PriceSingle,
		Quantity:     p.Quantity,
		ProductClass: p.ProductClass,
		Unknown:      p.Unknown,
	}
	return res
}

// MatchNames returns the names matching query, sorted. An invalid pattern
// matches nothing.
func MatchNames(query string, names []string, mode MatchMode) []string {
	q := strings.ToLower(query)
	match := func(name string) bool { return strings.Contains(name, q) }
	if mode == PatternMatch {
		re, err := regexp.Compile(strings.ReplaceAll(q, "*", ".*"))
		if err != nil {
			return nil
		}
		match = re.MatchString
	}

	var matches []string
	for _, name := range names {
		if match(strings.ToLower(name)) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

// pick applies the tie-break: the only candidate, or the one equal to query
// ignoring case.
func pick(query string, candidates []string) (string, bool) {
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0], true
	}
	q := strings.ToLower(query)
	for _, name := range candidates {
		if strings.ToLower(name) == q {
			return name, true
		}
	}
	return "", false
}
