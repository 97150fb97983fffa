package cmd

import (
	"testing"

	"github.com/google/subcommands"
)

func TestCompletionCommand(t *testing.T) {
	newBook(t)
	c := completionCommand()
	for _, cmd := range Commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("no completion for %q", cmd.Name())
		}
	}
	if _, ok := c.Sub["bill"].Flags["default-class"]; !ok {
		t.Errorf("bill flags are not completed")
	}

	if _, status := run(t, &templateCmd{}, "", "-name", "Gouda", "-price", "3"); status != subcommands.ExitSuccess {
		t.Fatal("template failed")
	}
	got := predictProducts("gou")
	if len(got) != 1 || got[0] != "Gouda" {
		t.Errorf("predictProducts(gou) = %v, want [Gouda]", got)
	}
	if got := predictStores("x"); len(got) != 0 {
		t.Errorf("predictStores(x) = %v, want none", got)
	}
}
