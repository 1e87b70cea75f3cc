package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/backup"
	"github.com/etnz/stockroom/storage"
	"github.com/etnz/stockroom/tui"
	"github.com/google/subcommands"
)

type browseCmd struct{}

func (*browseCmd) Name() string     { return "browse" }
func (*browseCmd) Synopsis() string { return "browse and edit the inventory in the terminal" }
func (*browseCmd) Usage() string {
	return `stock browse

  Opens the interactive browser. Changes are saved on "s" or when quitting.
  Press q to quit.
`
}

func (*browseCmd) SetFlags(f *flag.FlagSet) {}

func (*browseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m := tui.New(openInventory(), currency)
	m.Save = func(inv *stockroom.Inventory) error { return storage.Save(inventoryFile, inv) }
	m.Backup = func() (string, error) {
		path, err := backup.Create(inventoryFile, backupDir, stockroom.Now(), false)
		return filepath.Base(path), err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := final.(tui.Model).SaveErr; err != nil {
		fmt.Fprintf(os.Stderr, "Error saving inventory: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
