package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/kassabuch"
	"github.com/etnz/kassabuch/date"
	"github.com/google/subcommands"
)

type exportCmd struct {
	from   string
	to     string
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the saved bills of a period" }
func (*exportCmd) Usage() string {
	return `kb export [-from <date>] [-to <date>] [-format csv|xlsx]

  Gathers the bill backups of the period into one export file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", date.Today().String(), "first bill date, empty for no limit")
	f.StringVar(&c.to, "to", "", "last bill date, empty for no limit")
	f.StringVar(&c.format, "format", "csv", "export format: csv or xlsx")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period date.Range
	var err error
	if c.from != "" {
		if period.From, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if period.To, err = date.Parse(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cfg, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	bills, err := kassabuch.ReadBillFiles(backups(cfg), period, s.Dialect, s.References.DiscountClasses)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading bill backups: %v\n", err)
		return subcommands.ExitFailure
	}

	path, err := s.Export(bills, c.format)
	if errors.Is(err, kassabuch.ErrNoBill) {
		fmt.Fprintln(os.Stderr, "Error: no bill in that period")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting bills: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported %d bills to %s\n", len(bills), path)
	return subcommands.ExitSuccess
}
