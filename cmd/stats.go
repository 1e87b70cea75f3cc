package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stockroom/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the total value and the number of low stock items" }
func (*statsCmd) Usage() string {
	return `stock stats

  Shows statistics over the whole inventory.
`
}

func (*statsCmd) SetFlags(f *flag.FlagSet) {}

func (*statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.RenderStats(openInventory().Stats(), currency))
	return subcommands.ExitSuccess
}
