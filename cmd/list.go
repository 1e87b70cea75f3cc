package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/renderer"
	"github.com/google/subcommands"
)

// viewFlags are the flags selecting a view of the inventory.
type viewFlags struct {
	mode   string
	search string
}

func (v *viewFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&v.mode, "f", "all", "filter mode: all, low, zero or recent")
	f.StringVar(&v.search, "s", "", "only show items whose name contains this text, ignoring case")
}

// report builds the report of the selected view.
func (v *viewFlags) report(inv *stockroom.Inventory) (*renderer.Report, error) {
	mode, err := stockroom.ParseFilterMode(v.mode)
	if err != nil {
		return nil, err
	}
	return renderer.NewReport(inv, mode, v.search, currency, stockroom.Now()), nil
}

type listCmd struct {
	viewFlags
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list items with their value and the inventory statistics" }
func (*listCmd) Usage() string {
	return `stock list [-f <mode>] [-s <search>]

  Lists items sorted by name. See "stock topic filters" for filter modes.
`
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, err := c.report(openInventory())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.RenderReport(rep))
	return subcommands.ExitSuccess
}
