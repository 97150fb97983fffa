package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type storesCmd struct{}

func (*storesCmd) Name() string     { return "stores" }
func (*storesCmd) Synopsis() string { return "list stores and their default payment" }
func (*storesCmd) Usage() string {
	return `kb stores [text]

  Lists the stores whose name contains text, and the store a bill would use.
`
}

func (c *storesCmd) SetFlags(f *flag.FlagSet) {}

func (c *storesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	m := s.References.MatchStores(strings.Join(f.Args(), " "))
	for _, name := range m.Candidates {
		mark := " "
		if name == m.Store {
			mark = "*"
		}
		store := s.References.Stores[name]
		fmt.Fprintf(stdout, "%s %s\t%s\t%s\n", mark, name, store.DefaultPayment, store.DefaultDiscountClass)
	}
	return subcommands.ExitSuccess
}

type paymentsCmd struct{}

func (*paymentsCmd) Name() string     { return "payments" }
func (*paymentsCmd) Synopsis() string { return "list payment methods" }
func (*paymentsCmd) Usage() string {
	return `kb payments [text]

  Lists the payment methods containing text.
`
}

func (c *paymentsCmd) SetFlags(f *flag.FlagSet) {}

func (c *paymentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	for _, p := range s.References.MatchPayments(strings.Join(f.Args(), " ")) {
		fmt.Fprintln(stdout, p)
	}
	return subcommands.ExitSuccess
}
