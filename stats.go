package stockroom

// Stats summarizes the whole inventory, regardless of any view.
type Stats struct {
	Items         int
	TotalValue    Price
	LowStockCount int
}

// TotalValue is the sum of quantity times price over every item.
func (inv *Inventory) TotalValue() Price {
	var total Price
	for _, it := range inv.items {
		total = total.Add(it.Value())
	}
	return total
}

// LowStockCount is the number of items at or below their threshold.
func (inv *Inventory) LowStockCount() int {
	n := 0
	for _, it := range inv.items {
		if it.IsLow() {
			n++
		}
	}
	return n
}

// Stats computes the inventory statistics.
func (inv *Inventory) Stats() Stats {
	return Stats{
		Items:         inv.Len(),
		TotalValue:    inv.TotalValue(),
		LowStockCount: inv.LowStockCount(),
	}
}
