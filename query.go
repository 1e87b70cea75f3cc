package stockroom

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// StatusLow is the Row status of items at or below their threshold.
const StatusLow = "LOW"

// Row is one line of an inventory view.
type Row struct {
	Name         string
	Quantity     int
	LowThreshold int
	Price        Price
	Total        Price  // Quantity times Price.
	Status       string // StatusLow or empty.
}

// View returns the items selected by mode whose name contains search, sorted by name.
//
// Search is trimmed and matched without regard to case. An empty search
// matches every name.
func (inv *Inventory) View(mode FilterMode, search string) []Row {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	now := inv.now()

	rows := make([]Row, 0, len(inv.items))
	for _, name := range inv.Names() {
		it := inv.items[name]
		if !mode.match(it, now) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(name), needle) {
			continue
		}
		rows = append(rows, rowOf(name, it))
	}
	return rows
}

func rowOf(name string, it *Item) Row {
	r := Row{
		Name:         name,
		Quantity:     it.Quantity,
		LowThreshold: it.LowThreshold,
		Price:        it.Price,
		Total:        it.Value(),
	}
	if it.IsLow() {
		r.Status = StatusLow
	}
	return r
}

// match reports whether it belongs to the mode's subset at time now.
func (m FilterMode) match(it *Item, now time.Time) bool {
	switch m {
	case Low:
		return it.IsLow()
	case Zero:
		return it.IsEmpty()
	case Recent:
		return isRecent(it.History, now)
	default:
		return true
	}
}

// isRecent reports whether the latest event is no more than RecentWindow whole days old.
// A ledger without events is never recent.
func isRecent(l Ledger, now time.Time) bool {
	last, ok := l.Latest()
	if !ok {
		return false
	}
	days := int(now.Sub(last.Timestamp) / (24 * time.Hour))
	return days <= RecentWindow
}
