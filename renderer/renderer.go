// Package renderer turns bills, searches and price histories into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/kassabuch"
)

//go:embed *.md
var templates embed.FS

// RenderBill renders a saved bill, amounts displayed in currency.
func RenderBill(b kassabuch.Bill, currency string) string {
	partials := map[string]string{
		"bill_title":  "bill_title.md",
		"bill_lines":  "bill_lines.md",
		"bill_totals": "bill_totals.md",
	}
	return renderTemplate("bill", "bill.md", partials, NewBill(b, currency))
}

// RenderSearch renders the outcome of a template search.
func RenderSearch(r kassabuch.Resolution, currency string) string {
	return renderTemplate("search", "search.md", nil, NewSearch(r, currency))
}

// RenderPrices renders the price history of a product.
func RenderPrices(name string, points []kassabuch.PricePoint, s kassabuch.PriceSummary, currency string) string {
	partials := map[string]string{
		"prices_summary": "prices_summary.md",
	}
	if s.Count == 0 {
		partials["prices_summary"] = ""
	}
	return renderTemplate("prices", "prices.md", partials, NewPrices(name, points, s, currency))
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// an empty file name renders nothing
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
