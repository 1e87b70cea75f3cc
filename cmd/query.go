package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockroom"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the inventory" }
func (*queryCmd) Usage() string {
	return `stock query <jsonpath>

  Evaluates a JSONPath expression against the JSON form of the inventory and
  prints the result as JSON, whatever the storage format.

Usage Examples:
# Quantities of all items.
$ stock query '$.*.quantity'

# Latest change of Widget.
$ stock query '$.Widget.history[-1:]'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	result, err := query(openInventory(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(result)
	return subcommands.ExitSuccess
}

// query evaluates path against the JSON document of inv and returns the
// result as indented JSON.
func query(inv *stockroom.Inventory, path string) (string, error) {
	var buf bytes.Buffer
	if err := stockroom.Encode(&buf, inv); err != nil {
		return "", err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return "", err
	}
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	out, err := json.MarshalIndent(val, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
