package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension scripts are shell scripts")
	}
	dir := workspace(t, "inventory.json")
	currency = "EUR"

	// The extension dumps its environment and arguments into the file given
	// as first argument, and exits with 3.
	script := `#!/bin/sh
{
  echo "STOCK_FILE=$STOCK_FILE"
  echo "STOCK_CURRENCY=$STOCK_CURRENCY"
  echo "STOCK_VERBOSE=$STOCK_VERBOSE"
  echo "ARGS=$*"
} > "$1"
exit 3
`
	if err := os.WriteFile(filepath.Join(dir, "stock-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	out := filepath.Join(dir, "out.txt")
	found, code := RunExtension("hello", []string{out, "world"})
	if !found || code != 3 {
		t.Fatalf("RunExtension() = %v, %d, want true, 3", found, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"STOCK_FILE=" + inventoryFile,
		"STOCK_CURRENCY=EUR",
		"STOCK_VERBOSE=false",
		"ARGS=" + out + " world",
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("extension output does not contain %q:\n%s", want, got)
		}
	}

	if found, _ := RunExtension("missing-extension", nil); found {
		t.Error("RunExtension(missing-extension) found an extension")
	}
}

func TestIsCommand(t *testing.T) {
	for name, want := range map[string]bool{"nudge": true, "browse": true, "hello": false} {
		if got := IsCommand(name); got != want {
			t.Errorf("IsCommand(%q) = %v, want %v", name, got, want)
		}
	}
}
