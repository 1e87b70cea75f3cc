package stockroom

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes the inventory as an indented JSON object mapping each item
// name to its record, names in byte order.
func Encode(w io.Writer, inv *Inventory) error {
	doc := make(map[string]*Item, len(inv.items))
	for name, it := range inv.items {
		doc[name] = it
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode inventory: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write inventory: %w", err)
	}
	return nil
}

// Decode reads an inventory written by Encode.
//
// Records missing optional fields get their defaults, see Item.UnmarshalJSON.
func Decode(r io.Reader) (*Inventory, error) {
	var doc map[string]Item
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode inventory: %w", err)
	}
	inv := New()
	for name, it := range doc {
		if err := inv.Put(name, it); err != nil {
			return nil, fmt.Errorf("could not decode inventory: %w", err)
		}
	}
	return inv, nil
}
