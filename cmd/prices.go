package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/kassabuch"
	"github.com/etnz/kassabuch/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show the price history of a product" }
func (*pricesCmd) Usage() string {
	return `kb prices <product>

  Lists the unit prices paid for the product, by date, and their statistics.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: a product is required")
		return subcommands.ExitUsageError
	}
	cfg, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	res := s.ResolveTemplate(query)
	if res.Template == nil {
		if len(res.Candidates) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no product matches %q\n", query)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %q matches several products: %s\n", query, strings.Join(res.Candidates, ", "))
		}
		return subcommands.ExitFailure
	}

	content, err := cfg.ProductStore(s.Logger).ReadProductText(res.Template.Identifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading product %q: %v\n", res.Template.Name, err)
		return subcommands.ExitFailure
	}
	points, err := kassabuch.PriceSeries(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history of %q: %v\n", res.Template.Name, err)
		return subcommands.ExitFailure
	}
	summary, err := kassabuch.SummarizePrices(points)
	if err != nil && !errors.Is(err, kassabuch.ErrNoPrice) {
		fmt.Fprintf(os.Stderr, "Error summarizing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderPrices(res.Template.Name, points, summary, cfg.Currency))
	return subcommands.ExitSuccess
}
