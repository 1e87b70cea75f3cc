package stockroom

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Inventory is the set of stock items, keyed by name.
//
// An Inventory is not safe for concurrent use. Every operation either fully
// succeeds or leaves the inventory unchanged.
type Inventory struct {
	items map[string]*Item

	// Clock returns the time stamped on new events. It defaults to Now.
	Clock func() time.Time
	// Log receives mutation traces. It defaults to a logger that discards them.
	Log logrus.FieldLogger
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{
		items: make(map[string]*Item),
		Clock: Now,
		Log:   discard,
	}
}

var discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Hooks: make(logrus.LevelHooks), Level: logrus.PanicLevel}

func (inv *Inventory) now() time.Time {
	if inv.Clock == nil {
		return Now()
	}
	return inv.Clock()
}

func (inv *Inventory) log() logrus.FieldLogger {
	if inv.Log == nil {
		return discard
	}
	return inv.Log
}

// Len returns the number of items.
func (inv *Inventory) Len() int { return len(inv.items) }

// Names returns the item names in byte order.
func (inv *Inventory) Names() []string {
	return slices.Sorted(maps.Keys(inv.items))
}

// Has reports whether an item is named name.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.items[name]
	return ok
}

// Get returns a copy of the named item.
func (inv *Inventory) Get(name string) (Item, bool) {
	it, ok := inv.items[name]
	if !ok {
		return Item{}, false
	}
	return it.clone(), true
}

// Items iterates over the items in name order. Yielded items are copies.
func (inv *Inventory) Items() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		for _, name := range inv.Names() {
			if !yield(name, inv.items[name].clone()) {
				return
			}
		}
	}
}

// Put stores item under name as is, replacing any previous record.
//
// It is meant for loaders: it does not record any event. Name must not be
// blank, quantity and price must not be negative.
func (inv *Inventory) Put(name string, item Item) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	if item.Quantity < 0 {
		return fmt.Errorf("item %q: invalid quantity %d: must not be negative", name, item.Quantity)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("item %q: invalid price %s: must not be negative", name, item.Price)
	}
	it := item.clone()
	inv.items[name] = &it
	return nil
}

// Create adds a new item with quantity 0, price 0 and DefaultLowThreshold,
// and records an "Item created" event.
//
// The name is trimmed of surrounding white space. It returns ErrBlankName or
// ErrDuplicate and leaves the inventory unchanged when the name cannot be used.
func (inv *Inventory) Create(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	if inv.Has(name) {
		return fmt.Errorf("cannot create %q: %w", name, ErrDuplicate)
	}
	it := &Item{LowThreshold: DefaultLowThreshold}
	it.History.Append(Event{Timestamp: inv.now(), Delta: 0, NewQuantity: 0, Note: "Item created"})
	inv.items[name] = it
	inv.log().WithField("item", name).Info("item created")
	return nil
}

// Delete removes the named item and its history. It returns false, and does
// nothing, if there is no such item.
func (inv *Inventory) Delete(name string) bool {
	if !inv.Has(name) {
		return false
	}
	delete(inv.items, name)
	inv.log().WithField("item", name).Info("item deleted")
	return true
}

// lookup returns the live record for name, or ErrNoSelection, or ErrNotFound.
func (inv *Inventory) lookup(name string) (*Item, error) {
	if name == "" {
		return nil, ErrNoSelection
	}
	it, ok := inv.items[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return it, nil
}

// ApplyDelta changes the named item's quantity by delta, clamping at zero
// and saturating at math.MaxInt.
//
// It returns the change actually applied. An event is recorded only when that
// change is not zero. The note is trimmed of surrounding white space.
func (inv *Inventory) ApplyDelta(name string, delta int, note string) (applied int, err error) {
	it, err := inv.lookup(name)
	if err != nil {
		return 0, err
	}
	note = strings.TrimSpace(note)
	var newQty int
	switch {
	case delta > 0 && it.Quantity > math.MaxInt-delta:
		newQty = math.MaxInt
	case delta < 0 && it.Quantity+delta < 0:
		newQty = 0
	default:
		newQty = it.Quantity + delta
	}
	applied = newQty - it.Quantity
	if applied == 0 {
		inv.log().WithFields(logrus.Fields{"item": name, "delta": delta}).Debug("no quantity change")
		return 0, nil
	}
	it.Quantity = newQty
	it.History.Append(Event{Timestamp: inv.now(), Delta: applied, NewQuantity: newQty, Note: note})
	inv.log().WithFields(logrus.Fields{"item": name, "delta": applied, "quantity": newQty}).Info("quantity changed")
	return applied, nil
}

// History iterates over the n newest events of the named item, newest first.
// The sequence is empty if there is no such item.
func (inv *Inventory) History(name string, n int) iter.Seq[Event] {
	it, ok := inv.items[name]
	if !ok {
		return func(func(Event) bool) {}
	}
	return it.History.Recent(n)
}
