package stockroom

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"time"
)

// MaxHistory is the number of events a Ledger retains.
const MaxHistory = 20

// Event records one change of an item's quantity.
type Event struct {
	Timestamp   time.Time // Second resolution, local time.
	Delta       int       // New quantity minus old quantity, 0 for the creation event.
	NewQuantity int
	Note        string
}

// MarshalJSON writes the event as {"date", "change", "new_qty", "note"}.
func (e Event) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Timestamp.Format(TimestampFormat))
	w.Append("change", e.Delta)
	w.Append("new_qty", e.NewQuantity)
	w.Append("note", e.Note)
	return w.MarshalJSON()
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var aux struct {
		Date   string `json:"date"`
		Change int    `json:"change"`
		NewQty int    `json:"new_qty"`
		Note   string `json:"note"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := ParseTimestamp(aux.Date)
	if err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	*e = Event{Timestamp: t, Delta: aux.Change, NewQuantity: aux.NewQty, Note: aux.Note}
	return nil
}

// Ledger is the bounded, chronological log of an item's quantity changes.
//
// Events are kept oldest first. Appending beyond MaxHistory evicts the oldest
// events. The zero value is an empty ledger.
type Ledger struct {
	events []Event
}

// Append adds e as the newest event, evicting the oldest ones if needed.
func (l *Ledger) Append(e Event) {
	l.events = append(l.events, e)
	if n := len(l.events); n > MaxHistory {
		// reslice rather than shift, so that running iterators keep their snapshot.
		l.events = l.events[n-MaxHistory:]
	}
}

// Len returns the number of retained events.
func (l Ledger) Len() int { return len(l.events) }

// Latest returns the newest event, if any.
func (l Ledger) Latest() (Event, bool) {
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Events iterates over all retained events, oldest first.
func (l Ledger) Events() iter.Seq[Event] {
	events := l.events
	return func(yield func(Event) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}

// Recent iterates over the n newest events, newest first.
//
// The sequence reads a snapshot of the ledger taken when Recent is called, so
// it can be ranged over several times.
func (l Ledger) Recent(n int) iter.Seq[Event] {
	events := l.events
	return func(yield func(Event) bool) {
		for i := len(events) - 1; i >= 0 && len(events)-i <= n; i-- {
			if !yield(events[i]) {
				return
			}
		}
	}
}

func (l Ledger) clone() Ledger {
	return Ledger{events: slices.Clone(l.events)}
}

// MarshalJSON writes the events as a JSON array, oldest first. An empty ledger is [].
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.events == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.events)
}

// UnmarshalJSON reads a JSON array of events, oldest first. Only the newest
// MaxHistory events are retained.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return err
	}
	l.events = nil
	for _, e := range events {
		l.Append(e)
	}
	return nil
}
