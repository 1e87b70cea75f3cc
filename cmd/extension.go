package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix prefixes the executables found in PATH that extend stock
// with new subcommands: "stock reorder" runs "stock-reorder".
const ExtensionPrefix = "stock-"

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, group := range Commands {
		for _, c := range group {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

// RunExtension runs the stock-<subcommand> executable with args.
//
// The global flags are passed as STOCK_* environment variables. It returns
// false if there is no such executable, and the exit code of the extension
// otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	path, err := exec.LookPath(name)
	if err != nil {
		newLogger().WithError(err).Debugf("no extension %s", name)
		return false, 0
	}

	c := exec.Command(path, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = append(os.Environ(),
		EnvFile+"="+inventoryFile,
		EnvBackupDir+"="+backupDir,
		EnvCurrency+"="+currency,
		EnvVerbose+"="+strconv.FormatBool(verbose),
	)

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
