package storage

import (
	"bytes"
	"os"

	"github.com/etnz/stockroom"
)

// JSONFile stores the inventory as an indented JSON document.
type JSONFile struct {
	Path string
}

func (f JSONFile) Load() (*stockroom.Inventory, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return stockroom.Decode(r)
}

func (f JSONFile) Save(inv *stockroom.Inventory) error {
	var buf bytes.Buffer
	if err := stockroom.Encode(&buf, inv); err != nil {
		return err
	}
	return os.WriteFile(f.Path, buf.Bytes(), 0644)
}
