package stockroom

import (
	"encoding/json"
	"fmt"
)

// DefaultLowThreshold is the low-stock threshold of new items, and of records
// that do not define one.
const DefaultLowThreshold = 5

// Item is the record of one stock item. Its name is the key it is stored under.
type Item struct {
	Quantity     int
	Price        Price
	LowThreshold int
	History      Ledger
}

// IsLow reports whether the item is at or below its low-stock threshold.
func (it Item) IsLow() bool { return it.Quantity <= it.LowThreshold }

// IsEmpty reports whether the item is out of stock.
func (it Item) IsEmpty() bool { return it.Quantity == 0 }

// Value is the item's quantity times its unit price.
func (it Item) Value() Price { return it.Price.Mul(it.Quantity) }

// clone returns a copy that does not share its history with it.
func (it Item) clone() Item {
	it.History = it.History.clone()
	return it
}

// MarshalJSON writes the item as {"quantity", "price", "low_threshold", "history"}.
func (it Item) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", it.Quantity)
	w.Append("price", it.Price)
	w.Append("low_threshold", it.LowThreshold)
	w.Append("history", it.History)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an item record, resolving defaults for missing fields:
// a missing low_threshold is DefaultLowThreshold, missing quantity, price or
// history are zero or empty.
func (it *Item) UnmarshalJSON(data []byte) error {
	var aux struct {
		Quantity     *int   `json:"quantity"`
		Price        *Price `json:"price"`
		LowThreshold *int   `json:"low_threshold"`
		History      Ledger `json:"history"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	item := Item{LowThreshold: DefaultLowThreshold, History: aux.History}
	if aux.Quantity != nil {
		if *aux.Quantity < 0 {
			return fmt.Errorf("invalid quantity %d: must not be negative", *aux.Quantity)
		}
		item.Quantity = *aux.Quantity
	}
	if aux.Price != nil {
		if aux.Price.IsNegative() {
			return fmt.Errorf("invalid price %s: must not be negative", aux.Price)
		}
		item.Price = *aux.Price
	}
	if aux.LowThreshold != nil {
		item.LowThreshold = *aux.LowThreshold
	}
	*it = item
	return nil
}
