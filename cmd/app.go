// Package cmd implements the stock command line application.
//
// There is one subcommand per user intent. Each loads the inventory file,
// calls the stockroom engine, renders the result and saves the file when the
// inventory changed.
package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/backup"
	"github.com/etnz/stockroom/storage"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables providing the defaults of the global flags.
const (
	EnvFile      = "STOCK_FILE"
	EnvBackupDir = "STOCK_BACKUP_DIR"
	EnvCurrency  = "STOCK_CURRENCY"
	EnvVerbose   = "STOCK_VERBOSE"
)

// DefaultCurrency formats prices when none is configured.
const DefaultCurrency = "USD"

// As a short lived CLI application, global flags are plain package variables.
var (
	inventoryFile string
	backupDir     string
	currency      string
	verbose       bool
)

// Commands lists the subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"items": {
		&addCmd{}, &rmCmd{}, &nudgeCmd{}, &setCmd{},
	},
	"reports": {
		&listCmd{}, &showCmd{}, &statsCmd{}, &exportCmd{}, &printCmd{}, &queryCmd{},
	},
	"files": {
		&backupCmd{}, &backupsCmd{}, &restoreCmd{},
	},
	"interactive": {
		&browseCmd{}, &assistCmd{},
	},
	"help": {
		&topicCmd{},
	},
}

// SetFlags loads the optional .env file of the working directory and declares
// the global flags on f, their defaults taken from the environment.
func SetFlags(f *flag.FlagSet) {
	_ = godotenv.Load()
	f.StringVar(&inventoryFile, "file", envOr(EnvFile, storage.DefaultFile), "inventory file, its extension selects the format (.json, .bolt, .sqlite)")
	f.StringVar(&backupDir, "backup-dir", envOr(EnvBackupDir, backup.DefaultDir), "directory holding the backups")
	f.StringVar(&currency, "currency", envOr(EnvCurrency, DefaultCurrency), "ISO code of the currency used to display prices")
	v, _ := strconv.ParseBool(os.Getenv(EnvVerbose))
	f.BoolVar(&verbose, "v", v, "log inventory changes on stderr")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newLogger returns the logger of engine and storage traces.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// openInventory loads the inventory file. It never fails: a missing or
// malformed file is an empty inventory.
func openInventory() *stockroom.Inventory {
	return storage.Load(inventoryFile, newLogger())
}

// saveInventory writes the inventory file back.
func saveInventory(inv *stockroom.Inventory) subcommands.ExitStatus {
	if err := storage.Save(inventoryFile, inv); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving inventory: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// warnNoop reports an engine error that left the inventory unchanged and is
// not worth a failure. It returns false for any other error.
func warnNoop(err error) bool {
	for _, target := range []error{stockroom.ErrBlankName, stockroom.ErrDuplicate, stockroom.ErrNotFound, stockroom.ErrNoSelection} {
		if errors.Is(err, target) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return true
		}
	}
	return false
}

// confirm asks a yes/no question on stdin. Anything but y or yes is a no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// itemName returns the single positional argument naming an item.
func itemName(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one item name, got %d arguments\n", f.NArg())
		return "", false
	}
	return f.Arg(0), true
}
