package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/stockroom"
	"github.com/google/subcommands"
)

type setCmd struct {
	quantity string
	price    string
	low      string
	note     string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "set an item's quantity, price and low stock threshold" }
func (*setCmd) Usage() string {
	return `stock set [-q <quantity>] [-p <price>] [-low <threshold>] [-m <note>] <name>

  Updates an item. Values that are not given are kept. A quantity change is
  recorded in the history with the note, "Manual update" by default.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "new quantity, a non negative integer")
	f.StringVar(&c.price, "p", "", "new unit price, a non negative decimal number like 2.50")
	f.StringVar(&c.low, "low", "", "new low stock threshold, an integer")
	f.StringVar(&c.note, "m", "", "note recorded with a quantity change")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := itemName(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	inv := openInventory()
	it, found := inv.Get(name)
	if !found {
		fmt.Fprintf(os.Stderr, "Warning: %q does not exist, create it first with: stock add %q\n", name, name)
		return subcommands.ExitSuccess
	}

	qty, price, low := c.quantity, c.price, c.low
	if qty == "" {
		qty = strconv.Itoa(it.Quantity)
	}
	if price == "" {
		price = it.Price.String()
	}
	if low == "" {
		low = strconv.Itoa(it.LowThreshold)
	}
	u, err := stockroom.ParseUpdate(qty, price, low)
	if err != nil {
		var verr *stockroom.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", verr)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := inv.ApplyUpdate(name, u, c.note); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %q: quantity %d, price %s, low stock at %d\n", name, u.Quantity, u.Price.Format(currency), u.LowThreshold)
	return saveInventory(inv)
}
