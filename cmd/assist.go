package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/stockroom/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an assistant that reads the inventory" }
func (*assistCmd) Usage() string {
	return `stock assist [<prompt>]

  Starts an interactive session with a Gemini assistant. The assistant reads
  the inventory but never changes it. Type 'bye' to exit.

  The Gemini client is configured by the environment, e.g. GOOGLE_API_KEY.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Gemini's client: %v\n", err)
		return subcommands.ExitFailure
	}

	log := newLogger()
	storekeeper := agent.NewStorekeeper(openInventory(), currency)
	buyer := agent.NewBuyer()
	storekeeper.Log, buyer.Log = log, log

	a := agent.New(os.Stdout, os.Stdin, storekeeper, buyer)
	a.Print = func(_ io.Writer, answer string) { printMarkdown(answer + "\n") }
	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: assistant failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
