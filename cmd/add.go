package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create new items" }
func (*addCmd) Usage() string {
	return `stock add <name>...

  Creates items with a quantity of 0, a price of 0 and a low stock threshold
  of 5. Surrounding spaces are removed from names. Existing names are left
  untouched.
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (*addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing item name")
		return subcommands.ExitUsageError
	}
	inv := openInventory()
	created := 0
	for _, name := range f.Args() {
		if err := inv.Create(name); err != nil {
			if warnNoop(err) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		created++
		fmt.Printf("Created %q\n", name)
	}
	if created == 0 {
		return subcommands.ExitSuccess
	}
	return saveInventory(inv)
}
