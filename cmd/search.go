package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/kassabuch"
	"github.com/etnz/kassabuch/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	pattern bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search product templates" }
func (*searchCmd) Usage() string {
	return `kb search [-p] <text>

  Lists the displayed products matching text and the defaults of the chosen one.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.pattern, "p", false, "read text as a pattern where * stands for any text")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: search text is required")
		return subcommands.ExitUsageError
	}
	cfg, s, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	if c.pattern {
		s.Mode = kassabuch.PatternMatch
	}
	printMarkdown(renderer.RenderSearch(s.ResolveTemplate(query), cfg.Currency))
	return subcommands.ExitSuccess
}
