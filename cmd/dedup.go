package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kassabuch"
	"github.com/google/subcommands"
)

type dedupCmd struct {
	dryRun bool
}

func (*dedupCmd) Name() string     { return "dedup" }
func (*dedupCmd) Synopsis() string { return "remove duplicated purchases from product histories" }
func (*dedupCmd) Usage() string {
	return `kb dedup [-n]

  Rewrites every product file whose history records the same purchase twice.
`
}

func (c *dedupCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "only list the products to rewrite")
}

func (c *dedupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	count := 0
	for _, p := range s.Catalog.Products() {
		history := kassabuch.MergeHistory(nil, p.History)
		if len(history) == len(p.History) {
			continue
		}
		fmt.Fprintf(stdout, "%s: %d duplicated purchases\n", p.Name, len(p.History)-len(history))
		count++
		if c.dryRun {
			continue
		}
		p.History = history
		if err := s.Products.WriteProduct(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing product %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}
	}
	fmt.Fprintf(stdout, "%d products with duplicates\n", count)
	return subcommands.ExitSuccess
}
