package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockroom/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	n int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show an item and its recent history" }
func (*showCmd) Usage() string {
	return `stock show [-n <count>] <name>

  Shows an item and its most recent quantity changes, newest first.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 5, "number of history events to show")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := itemName(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	it, found := openInventory().Get(name)
	if !found {
		fmt.Fprintf(os.Stderr, "Warning: %q does not exist\n", name)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderItem(name, it, c.n, currency))
	return subcommands.ExitSuccess
}
