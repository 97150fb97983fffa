package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kassabuch"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "merge bill files into the product histories" }
func (*importCmd) Usage() string {
	return `kb import <file.csv>...

  Reads bill backups or exports and adds their purchases to the product
  histories. Purchases already recorded are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one bill file is required")
		return subcommands.ExitUsageError
	}
	_, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	var bills []kassabuch.Bill
	for _, path := range f.Args() {
		file, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		decoded, err := kassabuch.DecodeBills(file, s.Dialect, s.References.DiscountClasses)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		bills = append(bills, decoded...)
	}

	n, err := s.ImportBills(bills)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing bills: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %d bills into %d products\n", len(bills), n)
	return subcommands.ExitSuccess
}
