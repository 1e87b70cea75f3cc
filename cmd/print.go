package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockroom/renderer"
	"github.com/google/subcommands"
)

type printCmd struct {
	viewFlags
	output string
}

func (*printCmd) Name() string     { return "print" }
func (*printCmd) Synopsis() string { return "write the selected items as a printable HTML page" }
func (*printCmd) Usage() string {
	return `stock print [-f <mode>] [-s <search>] [-o <file.html>]

  Writes an HTML report of the selected items, to open in a browser and print.
`
}

func (c *printCmd) SetFlags(f *flag.FlagSet) {
	c.viewFlags.SetFlags(f)
	f.StringVar(&c.output, "o", renderer.DefaultPrintFile, "output file")
}

func (c *printCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, err := c.report(openInventory())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var buf bytes.Buffer
	if err := renderer.WriteHTML(&buf, rep); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Printed %d items to %s\n", len(rep.Rows), c.output)
	return subcommands.ExitSuccess
}
