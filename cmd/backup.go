package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/backup"
	"github.com/etnz/stockroom/storage"
	"github.com/google/subcommands"
)

type backupCmd struct {
	compress bool
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "copy the inventory file into the backup directory" }
func (*backupCmd) Usage() string {
	return `stock backup [-z]

  Copies the inventory file to <backup-dir>/backup_YYYYMMDD_HHMMSS<ext>.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.compress, "z", false, "gzip compress the copy")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := backup.Create(inventoryFile, backupDir, stockroom.Now(), c.compress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error backing up: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Backup saved: %s\n", filepath.Base(path))
	return subcommands.ExitSuccess
}

type backupsCmd struct{}

func (*backupsCmd) Name() string     { return "backups" }
func (*backupsCmd) Synopsis() string { return "list the backups, newest first" }
func (*backupsCmd) Usage() string {
	return `stock backups

  Lists the backups of the backup directory. Backups identical to the current
  inventory file are marked.
`
}

func (*backupsCmd) SetFlags(f *flag.FlagSet) {}

func (*backupsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	infos, err := backup.List(backupDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(infos) == 0 {
		fmt.Printf("No backups in %s\n", backupDir)
		return subcommands.ExitSuccess
	}
	current, err := backup.Digest(inventoryFile)
	hasCurrent := err == nil

	var b strings.Builder
	b.WriteString("| Backup | Taken | Size | Digest | |\n")
	b.WriteString("|:---|:---|---:|:---|:---|\n")
	for _, info := range infos {
		mark := ""
		if hasCurrent && info.Digest == current {
			mark = "current"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %016x | %s |\n", info.Name, info.Time.Format(stockroom.TimestampFormat), info.Size, info.Digest, mark)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	yes bool
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "overwrite the inventory file with a backup" }
func (*restoreCmd) Usage() string {
	return `stock restore [-y] <backup>

  Overwrites the inventory file with a backup, given by its file name in the
  backup directory or by its path. Compressed backups are inflated.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one backup")
		return subcommands.ExitUsageError
	}
	src := f.Arg(0)
	if _, err := os.Stat(src); err != nil {
		src = filepath.Join(backupDir, f.Arg(0))
	}
	if _, err := os.Stat(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: backup %q not found\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if !c.yes && !confirm(fmt.Sprintf("Overwrite %s with %s?", inventoryFile, filepath.Base(src))) {
		return subcommands.ExitSuccess
	}
	if err := backup.Restore(src, inventoryFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring: %v\n", err)
		return subcommands.ExitFailure
	}
	inv := storage.Load(inventoryFile, newLogger())
	fmt.Printf("Restored %s: %d items\n", filepath.Base(src), inv.Len())
	return subcommands.ExitSuccess
}
