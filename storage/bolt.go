package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/stockroom"
	"go.etcd.io/bbolt"
)

var itemsBucket = []byte("items")

// BoltFile stores the inventory in a bbolt database, one key per item name
// in the "items" bucket, each value being the item's JSON record.
type BoltFile struct {
	Path string
}

func (f BoltFile) open(readOnly bool) (*bbolt.DB, error) {
	db, err := bbolt.Open(f.Path, 0644, &bbolt.Options{Timeout: 1 * time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return db, nil
}

func (f BoltFile) Load() (*stockroom.Inventory, error) {
	if err := exists(f.Path); err != nil {
		return nil, err
	}
	db, err := f.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	inv := stockroom.New()
	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(itemsBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var it stockroom.Item
			if err := json.Unmarshal(v, &it); err != nil {
				return fmt.Errorf("failed to unmarshal item %q: %w", k, err)
			}
			return inv.Put(string(k), it)
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (f BoltFile) Save(inv *stockroom.Inventory) error {
	db, err := f.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(itemsBucket) != nil {
			if err := tx.DeleteBucket(itemsBucket); err != nil {
				return fmt.Errorf("failed to clear items bucket: %w", err)
			}
		}
		bucket, err := tx.CreateBucket(itemsBucket)
		if err != nil {
			return fmt.Errorf("failed to create items bucket: %w", err)
		}
		for name, it := range inv.Items() {
			data, err := json.Marshal(it)
			if err != nil {
				return fmt.Errorf("failed to marshal item %q: %w", name, err)
			}
			if err := bucket.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
}
