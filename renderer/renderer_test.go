package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/kassabuch"
)

func testBill() kassabuch.Bill {
	items := []kassabuch.LineItem{
		kassabuch.RawLine{Name: "Milk", PriceSingle: "1,00", Quantity: "1"}.Item(nil),
		kassabuch.RawLine{Name: "Eggs", PriceSingle: "0,25", Quantity: "6", DiscountClass: "10"}.Item(nil),
	}
	return kassabuch.BuildBill(items, kassabuch.BillMeta{Date: "2021-02-13", Time: "12:34", Store: "Corner Shop", Payment: "Cash"})
}

func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no template embedded")
	}
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := template.New(file).Parse(string(content)); err != nil {
			t.Errorf("template %s does not parse: %v", file, err)
		}
	}
}

func TestRenderBill(t *testing.T) {
	got := RenderBill(testBill(), "EUR")
	for _, want := range []string{
		"# Corner Shop",
		"2021-02-13 12:34, paid by Cash",
		"| Milk | €1.00 | 1 |",
		"| Eggs | €0.25 | 6 | 10 |",
		"| Discount |",
		"| **Total** | **€2.35** |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderBill() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Quantity discount") || strings.Contains(got, "error") {
		t.Errorf("RenderBill() =\n%s", got)
	}
}

func TestNewBill(t *testing.T) {
	b := NewBill(testBill(), "EUR")
	if len(b.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(b.Lines))
	}
	if b.Lines[0].Reductions != "" {
		t.Errorf("Lines[0].Reductions = %q, want empty", b.Lines[0].Reductions)
	}
	if b.Lines[1].Reductions == "" || b.DiscountSum == "" {
		t.Errorf("the discount of the eggs is missing: %+v", b)
	}
	if b.SaleSum != "" {
		t.Errorf("SaleSum = %q, want empty", b.SaleSum)
	}
}

func TestRenderSearch(t *testing.T) {
	c := kassabuch.NewCatalog()
	for i, name := range []string{"Milk 1L", "Milk 2L"} {
		p := kassabuch.NewProduct(name)
		p.Identifier = i
		p.PriceSingle = kassabuch.A(1.5)
		p.Quantity = kassabuch.Q(1)
		if err := c.Add(p); err != nil {
			t.Fatal(err)
		}
	}

	got := RenderSearch(kassabuch.ResolveTemplate("milk", c, kassabuch.SubstringMatch), "EUR")
	if !strings.Contains(got, "* Milk 1L\n* Milk 2L") || strings.Contains(got, "**") {
		t.Errorf("RenderSearch(milk) =\n%s", got)
	}

	got = RenderSearch(kassabuch.ResolveTemplate("2l", c, kassabuch.SubstringMatch), "EUR")
	if !strings.Contains(got, "**Milk 2L**: €1.50") {
		t.Errorf("RenderSearch(2l) =\n%s", got)
	}

	got = RenderSearch(kassabuch.ResolveTemplate("tea", c, kassabuch.SubstringMatch), "EUR")
	if !strings.Contains(got, "No product matches.") {
		t.Errorf("RenderSearch(tea) =\n%s", got)
	}
}

func TestRenderPrices(t *testing.T) {
	points := []kassabuch.PricePoint{
		{DateTime: "2021-01-01T10:00", Store: "A", PerUnit: kassabuch.A(2)},
		{DateTime: "2021-02-01T10:00", Store: "B", PerUnit: kassabuch.A(2.5)},
	}
	s, err := kassabuch.SummarizePrices(points)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPrices("Butter", points, s, "EUR")
	for _, want := range []string{"# Butter", "| 2021-02-01T10:00 | B | €2.50 |", "| 2 purchases |", "| Change | +25.00% |"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPrices() does not contain %q:\n%s", want, got)
		}
	}

	empty := RenderPrices("New", nil, kassabuch.PriceSummary{}, "EUR")
	if strings.Contains(empty, "purchases") {
		t.Errorf("RenderPrices(empty) =\n%s", empty)
	}
}
