package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/kassabuch"
	"github.com/etnz/kassabuch/date"
	"github.com/etnz/kassabuch/renderer"
	"github.com/google/subcommands"
)

type billCmd struct {
	date         string
	time         string
	store        string
	payment      string
	defaultClass bool
}

func (*billCmd) Name() string     { return "bill" }
func (*billCmd) Synopsis() string { return "save a bill typed on standard input" }
func (*billCmd) Usage() string {
	return `kb bill -store <store> [-date <dd-mm>] [-time <hh:mm>] [-payment <payment>] [-default-class] < lines

  Reads one line per product:

    name;price;quantity;discount class;quantity discount;sale;product class;unknown;minus first

  "minus first" is x, 1 or minus to apply the discount class after the
  quantity discount and the sale. A line with a name only is filled from
  the product template. The bill is saved to the product histories and
  backed up in the output folder.
`
}

func (c *billCmd) SetFlags(f *flag.FlagSet) {
	now := time.Now()
	f.StringVar(&c.date, "date", now.Format("02-01"), "bill date, dd-mm in the configured year or any full date")
	f.StringVar(&c.time, "time", now.Format("15:04"), "bill time, hh:mm or hh-mm")
	f.StringVar(&c.store, "store", "", "store, or a part of its name")
	f.StringVar(&c.payment, "payment", "", "payment method, defaults to the store's")
	f.BoolVar(&c.defaultClass, "default-class", false, "use the store's discount class on lines without one")
}

func (c *billCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.store == "" {
		fmt.Fprintln(os.Stderr, "Error: -store is required")
		return subcommands.ExitUsageError
	}
	cfg, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	meta, err := c.meta(s.References, cfg.Year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	lines, err := readLines(stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading lines: %v\n", err)
		return subcommands.ExitFailure
	}
	defaultClass := ""
	if c.defaultClass {
		defaultClass = s.References.DefaultDiscountClass(meta.Store)
	}

	items := make([]kassabuch.LineItem, 0, len(lines))
	for _, raw := range lines {
		raw = fillLine(s, raw)
		if raw.DiscountClass == "" {
			raw.DiscountClass = defaultClass
		}
		item := s.Line(raw)
		if item.Name != "" {
			if d := s.Catalog.Drift(item); d.New {
				fmt.Fprintf(os.Stderr, "Warning: %q is a new product\n", item.Name)
			} else if d.Changed() {
				fmt.Fprintf(os.Stderr, "Warning: %q differs from its template: %s\n", item.Name, strings.Join(d.Fields, ", "))
			}
		}
		items = append(items, item)
	}

	b, err := s.SaveBill(items, meta)
	if errors.Is(err, kassabuch.ErrEmptyBill) {
		fmt.Fprintln(os.Stderr, "Error: the bill has no product")
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bill: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderBill(b, cfg.Currency))
	return subcommands.ExitSuccess
}

// meta resolves the store and payment flags and normalizes date and time.
func (c *billCmd) meta(refs *kassabuch.References, year int) (kassabuch.BillMeta, error) {
	meta := kassabuch.BillMeta{
		Date:  date.NormalizeBillDate(c.date, year),
		Time:  date.NormalizeClock(c.time),
		Store: c.store,
	}
	m := refs.MatchStores(c.store)
	switch {
	case m.Store != "":
		meta.Store = m.Store
		meta.Payment = m.Payment
	case len(m.Candidates) > 1:
		return meta, fmt.Errorf("store %q is ambiguous: %s", c.store, strings.Join(m.Candidates, ", "))
	}

	if c.payment != "" {
		meta.Payment = c.payment
		candidates := refs.MatchPayments(c.payment)
		if len(candidates) == 1 {
			meta.Payment = candidates[0]
		}
		for _, p := range candidates {
			if strings.EqualFold(p, c.payment) {
				meta.Payment = p
			}
		}
	}
	return meta, nil
}

// lineFields is the order of the fields of a typed line.
var lineFields = []func(*kassabuch.RawLine) *string{
	func(r *kassabuch.RawLine) *string { return &r.Name },
	func(r *kassabuch.RawLine) *string { return &r.PriceSingle },
	func(r *kassabuch.RawLine) *string { return &r.Quantity },
	func(r *kassabuch.RawLine) *string { return &r.DiscountClass },
	func(r *kassabuch.RawLine) *string { return &r.QuantityDiscount },
	func(r *kassabuch.RawLine) *string { return &r.Sale },
	func(r *kassabuch.RawLine) *string { return &r.ProductClass },
	func(r *kassabuch.RawLine) *string { return &r.Unknown },
}

// readLines reads ';' separated lines, blank lines are skipped.
func readLines(r io.Reader) ([]kassabuch.RawLine, error) {
	var lines []kassabuch.RawLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, ";")
		if len(fields) > len(lineFields)+1 {
			return nil, fmt.Errorf("line %d: %d fields, at most %d expected", n, len(fields), len(lineFields)+1)
		}
		var raw kassabuch.RawLine
		for i, field := range fields {
			if i == len(lineFields) {
				minus, err := parseMinusFirst(field)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", n, err)
				}
				raw.MinusFirst = minus
				continue
			}
			*lineFields[i](&raw) = strings.TrimSpace(field)
		}
		lines = append(lines, raw)
	}
	return lines, scanner.Err()
}

// parseMinusFirst reads the last field of a typed line.
func parseMinusFirst(field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "", "0", "no", "false":
		return false, nil
	case "x", "1", "minus", "yes", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid minus first %q, want x, 1 or minus", field)
	}
}

// fillLine completes a line typed without a price from the template its name
// resolves to.
func fillLine(s *kassabuch.Session, raw kassabuch.RawLine) kassabuch.RawLine {
	if raw.Name == "" || raw.PriceSingle != "" {
		return raw
	}
	res := s.ResolveTemplate(raw.Name)
	if res.Template == nil {
		return raw
	}
	raw.Name = res.Fill.Name
	raw.PriceSingle = res.Fill.PriceSingle.String()
	if raw.Quantity == "" {
		raw.Quantity = res.Fill.Quantity.String()
	}
	if raw.ProductClass == "" {
		raw.ProductClass = res.Fill.ProductClass
	}
	if raw.Unknown == "" {
		raw.Unknown = res.Fill.Unknown
	}
	return raw
}
