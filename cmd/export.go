package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockroom"
	"github.com/google/subcommands"
)

type exportCmd struct {
	viewFlags
	all    bool
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export items to a CSV file" }
func (*exportCmd) Usage() string {
	return `stock export [-f <mode>] [-s <search>] [-all] [-o <file.csv>]

  Writes the selected items, or all of them with -all, as CSV with the
  columns Name, Qty, Low Threshold, Price and Total.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.viewFlags.SetFlags(f)
	f.BoolVar(&c.all, "all", false, "export the whole inventory, ignoring -f and -s")
	f.StringVar(&c.output, "o", "inventory.csv", "output file, - for stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	inv := openInventory()
	var rows []stockroom.Row
	if c.all {
		rows = inv.View(stockroom.All, "")
	} else {
		rep, err := c.report(inv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		rows = rep.Rows
	}

	var buf bytes.Buffer
	if err := stockroom.WriteCSV(&buf, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output == "-" {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d items to %s\n", len(rows), c.output)
	return subcommands.ExitSuccess
}
