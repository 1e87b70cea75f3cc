package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type nudgeCmd struct {
	delta int
	note  string
}

func (*nudgeCmd) Name() string     { return "nudge" }
func (*nudgeCmd) Synopsis() string { return "add to or remove from an item's quantity" }
func (*nudgeCmd) Usage() string {
	return `stock nudge -n <delta> [-m <note>] <name>

  Changes the quantity of an item by delta. The quantity never goes below
  zero. The change actually applied is recorded in the item's history.

Usage Examples:
# Two boxes were delivered.
$ stock nudge -n 2 -m "delivery" Widget
`
}

func (c *nudgeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.delta, "n", 1, "quantity to add, negative to remove")
	f.StringVar(&c.note, "m", "", "note recorded with the change")
}

func (c *nudgeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := itemName(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	inv := openInventory()
	applied, err := inv.ApplyDelta(name, c.delta, c.note)
	if err != nil {
		if warnNoop(err) {
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error changing quantity: %v\n", err)
		return subcommands.ExitFailure
	}
	it, _ := inv.Get(name)
	if applied == 0 {
		fmt.Printf("%s: no change, quantity is %d\n", name, it.Quantity)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s: %+d → %d\n", name, applied, it.Quantity)
	return saveInventory(inv)
}
