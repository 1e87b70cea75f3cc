package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/etnz/stockroom"
	_ "github.com/glebarez/go-sqlite"
)

const createItemsTable = `CREATE TABLE IF NOT EXISTS items (name TEXT PRIMARY KEY, data TEXT NOT NULL)`

// SQLiteFile stores the inventory in a SQLite database, one row per item in
// the items table, each data column being the item's JSON record.
type SQLiteFile struct {
	Path string
}

func (f SQLiteFile) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	return db, nil
}

func (f SQLiteFile) Load() (*stockroom.Inventory, error) {
	if err := exists(f.Path); err != nil {
		return nil, err
	}
	db, err := f.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.Exec(createItemsTable); err != nil {
		return nil, fmt.Errorf("failed to create items table: %w", err)
	}
	rows, err := db.Query("SELECT name, data FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	inv := stockroom.New()
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		var it stockroom.Item
		if err := json.Unmarshal([]byte(data), &it); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item %q: %w", name, err)
		}
		if err := inv.Put(name, it); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (f SQLiteFile) Save(inv *stockroom.Inventory) error {
	db, err := f.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createItemsTable); err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO items (name, data) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for name, it := range inv.Items() {
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("failed to marshal item %q: %w", name, err)
		}
		if _, err := stmt.Exec(name, string(data)); err != nil {
			return fmt.Errorf("failed to insert item %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
