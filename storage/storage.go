// Package storage persists a stockroom.Inventory to a single local file.
//
// The file format is chosen by extension: ".bolt" is a bbolt database,
// ".sqlite" and ".db" are SQLite databases, anything else is the indented
// JSON document of stockroom.Encode. Every backend overwrites the whole
// store on Save.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockroom"
	"github.com/sirupsen/logrus"
)

// DefaultFile is the inventory file used when none is configured.
const DefaultFile = "inventory.json"

// Backend reads and writes a whole inventory.
type Backend interface {
	// Load reads the stored inventory. It fails if the file does not exist
	// or cannot be decoded.
	Load() (*stockroom.Inventory, error)
	// Save replaces the stored inventory with inv.
	Save(inv *stockroom.Inventory) error
}

// For returns the backend for path, based on its extension.
func For(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bolt":
		return BoltFile{Path: path}
	case ".sqlite", ".db":
		return SQLiteFile{Path: path}
	default:
		return JSONFile{Path: path}
	}
}

// Load reads the inventory stored at path.
//
// A missing or unreadable file is not an error: it yields an empty inventory,
// and a warning is logged for anything but a missing file.
func Load(path string, log logrus.FieldLogger) *stockroom.Inventory {
	inv, err := For(path).Load()
	switch {
	case err == nil:
		inv.Log = log
		log.WithFields(logrus.Fields{"file": path, "items": inv.Len()}).Debug("inventory loaded")
		return inv
	case errors.Is(err, fs.ErrNotExist):
		log.WithField("file", path).Debug("no inventory file, starting empty")
	default:
		log.WithField("file", path).WithError(err).Warn("cannot load inventory, starting empty")
	}
	inv = stockroom.New()
	inv.Log = log
	return inv
}

// Save writes inv to path, replacing its previous content.
func Save(path string, inv *stockroom.Inventory) error {
	if err := For(path).Save(inv); err != nil {
		return fmt.Errorf("could not save inventory to %q: %w", path, err)
	}
	return nil
}

// exists returns an error wrapping fs.ErrNotExist if path does not exist.
// Database backends check it first so that loading does not create the file.
func exists(path string) error {
	_, err := os.Stat(path)
	return err
}
