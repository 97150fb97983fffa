package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/kassabuch"
	"github.com/google/subcommands"
)

type templateCmd struct {
	name         string
	price        string
	quantity     string
	productClass string
	unknown      string
	notes        string
	display      bool
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "create or update a product template" }
func (*templateCmd) Usage() string {
	return `kb template -name <name> [-price <price>] [-quantity <qty>] [-class <class>] [-unknown <text>] [-notes <text>] [-display=false]

  Saves the defaults of a product. Its history is kept, display and notes
  only change when given.
`
}

func (c *templateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "product name")
	f.StringVar(&c.price, "price", "", "default unit price")
	f.StringVar(&c.quantity, "quantity", "1", "default quantity")
	f.StringVar(&c.productClass, "class", "", "product class")
	f.StringVar(&c.unknown, "unknown", "", "free text column")
	f.StringVar(&c.notes, "notes", "", "notes shown by the search")
	f.BoolVar(&c.display, "display", true, "list the product in searches")
}

func (c *templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}
	_, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	p := kassabuch.NewProduct(c.name)
	p.PriceSingle = kassabuch.ParseAmount(c.price)
	p.Quantity = kassabuch.ParseQuantity(c.quantity)
	p.ProductClass = c.productClass
	p.Unknown = c.unknown

	var opts []kassabuch.TemplateOption
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "display":
			opts = append(opts, kassabuch.WithDisplay(c.display))
		case "notes":
			opts = append(opts, kassabuch.WithNotes(c.notes))
		}
	})

	saved, err := s.SaveTemplate(p, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving template %q: %v\n", c.name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Saved %s as %s (price %s, quantity %s, display %s)\n",
		saved.Name,
		kassabuch.ProductFileName(saved.Identifier),
		saved.PriceSingle.Decimal().StringFixed(2),
		saved.Quantity,
		strconv.FormatBool(saved.Display),
	)
	return subcommands.ExitSuccess
}
