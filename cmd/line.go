package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kassabuch"
	"github.com/google/subcommands"
)

type lineCmd struct {
	price            string
	quantity         string
	class            string
	quantityDiscount string
	sale             string
	minusFirst       bool
}

func (*lineCmd) Name() string     { return "line" }
func (*lineCmd) Synopsis() string { return "compute the prices of a bill line" }
func (*lineCmd) Usage() string {
	return `kb line -price <price> [-quantity <qty>] [-class <class>] [-quantity-discount <amount>] [-sale <amount>] [-minus-first]

  Prints the quantity price, the discount and the final price of a line.
`
}

func (c *lineCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "price", "", "unit price")
	f.StringVar(&c.quantity, "quantity", "", "quantity, blank counts as 1")
	f.StringVar(&c.class, "class", "", "discount class: a key of the discount classes file or a rate in percent")
	f.StringVar(&c.quantityDiscount, "quantity-discount", "", "quantity discount, negative")
	f.StringVar(&c.sale, "sale", "", "sale reduction, negative")
	f.BoolVar(&c.minusFirst, "minus-first", false, "apply the discount rate after the quantity discount and the sale")
}

func (c *lineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	refs, err := cfg.ReferenceFiles(NewLogger(cfg)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading references: %v\n", err)
		return subcommands.ExitFailure
	}

	res := kassabuch.ComputeRawLine(kassabuch.RawLine{
		PriceSingle:      c.price,
		Quantity:         c.quantity,
		DiscountClass:    c.class,
		QuantityDiscount: c.quantityDiscount,
		Sale:             c.sale,
		MinusFirst:       c.minusFirst,
	}, refs.DiscountClasses)

	fmt.Fprintf(stdout, "%s %s %s\n",
		res.PriceQuantity.Decimal().StringFixed(2),
		res.Discount.Decimal().StringFixed(2),
		res.PriceFinal.Decimal().StringFixed(2),
	)
	return subcommands.ExitSuccess
}
