package stockroom

import "fmt"

// FilterMode selects a subset of the inventory for display or export.
type FilterMode int

const (
	// All selects every item.
	All FilterMode = iota
	// Low selects items at or below their low-stock threshold.
	Low
	// Zero selects items out of stock.
	Zero
	// Recent selects items whose latest change is at most RecentWindow days old.
	Recent
)

// RecentWindow is the number of whole days an item stays "recent" after its latest change.
const RecentWindow = 7

// FilterModes lists all modes in display order.
var FilterModes = []FilterMode{All, Low, Zero, Recent}

func (m FilterMode) String() string {
	switch m {
	case All:
		return "all"
	case Low:
		return "low"
	case Zero:
		return "zero"
	case Recent:
		return "recent"
	default:
		return "unknown"
	}
}

// Label is the human title of the mode.
func (m FilterMode) Label() string {
	switch m {
	case All:
		return "All"
	case Low:
		return "Low Stock"
	case Zero:
		return "Out of Stock"
	case Recent:
		return "Recently Updated"
	default:
		return "Unknown"
	}
}

// ParseFilterMode parses a string into a FilterMode. The empty string is All.
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "", "all":
		return All, nil
	case "low":
		return Low, nil
	case "zero":
		return Zero, nil
	case "recent":
		return Recent, nil
	default:
		return 0, fmt.Errorf("unknown filter mode: %q (want all, low, zero or recent)", s)
	}
}
