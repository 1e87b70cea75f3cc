package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	yes bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an item and its history" }
func (*rmCmd) Usage() string {
	return `stock rm [-y] <name>

  Deletes an item and its history, after confirmation.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := itemName(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	inv := openInventory()
	if !inv.Has(name) {
		fmt.Fprintf(os.Stderr, "Warning: %q does not exist\n", name)
		return subcommands.ExitSuccess
	}
	if !c.yes && !confirm(fmt.Sprintf("Delete %q and its history?", name)) {
		return subcommands.ExitSuccess
	}
	inv.Delete(name)
	fmt.Printf("Deleted %q\n", name)
	return saveInventory(inv)
}
