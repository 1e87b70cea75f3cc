// Command stock tracks a small inventory stored in a local file.
//
// Run "stock topic" for the documentation.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockroom/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.SetFlags(flag.CommandLine)
	cmd.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for group, commands := range cmd.Commands {
		for _, c := range commands {
			commander.Register(c, group)
		}
	}

	flag.Parse()

	// Unknown subcommands may be provided by a stock-<name> executable.
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
