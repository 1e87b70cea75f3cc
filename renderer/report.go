package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/stockroom"
)

// Report is a view of the inventory ready to be rendered.
type Report struct {
	Title     string
	Generated time.Time
	Currency  string // ISO code used to format prices.
	Mode      stockroom.FilterMode
	Search    string
	Rows      []stockroom.Row
	Stats     stockroom.Stats
	ShowStats bool // Append the whole-inventory statistics after the table.
}

// NewReport builds the report of inv filtered by mode and search.
func NewReport(inv *stockroom.Inventory, mode stockroom.FilterMode, search, currency string, now time.Time) *Report {
	return &Report{
		Title:     "Inventory Report",
		Generated: now,
		Currency:  currency,
		Mode:      mode,
		Search:    strings.TrimSpace(search),
		Rows:      inv.View(mode, search),
		Stats:     inv.Stats(),
		ShowStats: true,
	}
}

// Money formats p in the report currency.
func (r *Report) Money(p stockroom.Price) string { return p.Format(r.Currency) }

// markdownRenderer accumulates a markdown document.
type markdownRenderer struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *markdownRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// cell escapes s for use in a markdown table cell.
func cell(s string) string {
	return strings.NewReplacer(`\`, `\\`, "|", `\|`, "<", "&lt;").Replace(s)
}

// RenderReport renders the report as markdown.
func RenderReport(rep *Report) string {
	var r markdownRenderer
	r.Printf("# %s\n\n", rep.Title)
	r.Printf("Generated on: %s\n\n", rep.Generated.Format("2006-01-02 15:04"))
	if rep.Mode != stockroom.All || rep.Search != "" {
		r.Printf("Showing: **%s**", rep.Mode.Label())
		if rep.Search != "" {
			r.Printf(`, name contains "%s"`, cell(rep.Search))
		}
		r.Printf("\n\n")
	}
	renderRows(&r, rep)
	if rep.ShowStats {
		renderStats(&r, rep.Stats, rep.Currency)
	}
	return r.String()
}

func renderRows(r *markdownRenderer, rep *Report) {
	if len(rep.Rows) == 0 {
		r.Printf("*No items to show.*\n\n")
		return
	}
	r.Printf("| Item Name | Qty | Low @ | Price | Total Value | Status |\n")
	r.Printf("|:---|---:|---:|---:|---:|:---:|\n")
	for _, row := range rep.Rows {
		r.Printf("| %s | %d | %d | %s | %s | %s |\n", cell(row.Name), row.Quantity, row.LowThreshold, rep.Money(row.Price), rep.Money(row.Total), row.Status)
	}
	r.Printf("\n")
}

func renderStats(r *markdownRenderer, s stockroom.Stats, currency string) {
	r.Printf("- Total Value: **%s**\n", s.TotalValue.Format(currency))
	r.Printf("- Low Stock Items: **%d**\n", s.LowStockCount)
	r.Printf("- Items: %d\n", s.Items)
}

// RenderStats renders the inventory statistics as markdown.
func RenderStats(s stockroom.Stats, currency string) string {
	var r markdownRenderer
	renderStats(&r, s, currency)
	return r.String()
}

// HistoryLine formats an event like "2025-03-10 09:00:00 +10 → 10 (Manual update)".
func HistoryLine(e stockroom.Event) string {
	sign := ""
	if e.Delta >= 0 {
		sign = "+"
	}
	line := fmt.Sprintf("%s %s%d → %d", e.Timestamp.Format(stockroom.TimestampFormat), sign, e.Delta, e.NewQuantity)
	if e.Note != "" {
		line += " (" + e.Note + ")"
	}
	return line
}

// RenderItem renders one item and its n most recent events as markdown.
func RenderItem(name string, it stockroom.Item, n int, currency string) string {
	var r markdownRenderer
	r.Printf("## %s\n\n", name)
	r.Printf("| Qty | Low @ | Price | Total Value | Status |\n")
	r.Printf("|---:|---:|---:|---:|:---:|\n")
	status := ""
	if it.IsLow() {
		status = stockroom.StatusLow
	}
	r.Printf("| %d | %d | %s | %s | %s |\n\n", it.Quantity, it.LowThreshold, it.Price.Format(currency), it.Value().Format(currency), status)

	r.Printf("### Recent History\n\n")
	empty := true
	for e := range it.History.Recent(n) {
		empty = false
		r.Printf("- %s\n", HistoryLine(e))
	}
	if empty {
		r.Printf("*No history.*\n")
	}
	return r.String()
}
