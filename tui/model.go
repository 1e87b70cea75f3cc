// Package tui implements the interactive inventory browser of the stock command.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/renderer"
)

// prompt is what the bottom line is asking for.
type prompt int

const (
	promptNone prompt = iota
	promptSearch
	promptCreate
	promptNote
	promptEdit
	promptDelete
	promptQuit
)

// HistoryLines is the number of events shown for the selected item.
const HistoryLines = 5

var editLabels = [3]string{"Quantity: ", "Price: ", "Low @: "}

// Model is the Bubbletea model of the inventory browser.
//
// It only holds presentation state: every change goes through the engine.
type Model struct {
	inv      *stockroom.Inventory
	currency string

	mode   stockroom.FilterMode
	search string
	rows   []stockroom.Row
	cursor int

	prompt   prompt
	input    textinput.Model
	edit     [3]string
	editStep int
	note     string // note of the next change, then cleared

	message string
	isError bool
	dirty   bool

	width int

	// Save writes the inventory. It is called on "s" and when quitting.
	Save func(*stockroom.Inventory) error
	// Backup copies the saved inventory and returns the backup name. Nil disables "b".
	Backup func() (string, error)

	// SaveErr is the error of the final save, if any.
	SaveErr error
}

// New returns a browser over inv showing prices in currency.
func New(inv *stockroom.Inventory, currency string) Model {
	input := textinput.New()
	input.CharLimit = 80
	m := Model{
		inv:      inv,
		currency: currency,
		input:    input,
		width:    80,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Dirty reports whether the inventory changed since it was last saved.
func (m Model) Dirty() bool { return m.dirty }

// Selected returns the name of the selected item, or "" when the view is empty.
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].Name
}

// refresh recomputes the view, keeping the selection on the same item when
// it is still visible.
func (m *Model) refresh() {
	m.selectName(m.Selected())
}

// selectName recomputes the view and moves the cursor to name if visible.
func (m *Model) selectName(name string) {
	m.rows = m.inv.View(m.mode, m.search)
	for i, r := range m.rows {
		if r.Name == name {
			m.cursor = i
			return
		}
	}
	m.cursor = min(m.cursor, len(m.rows)-1)
	m.cursor = max(m.cursor, 0)
}

func (m *Model) info(format string, args ...any) {
	m.message, m.isError = fmt.Sprintf(format, args...), false
}

func (m *Model) fail(err error) {
	m.message, m.isError = err.Error(), true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePrompt(msg)
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress handles keys while browsing.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "q", "ctrl+c":
		if !m.dirty {
			return m, tea.Quit
		}
		m.prompt = promptQuit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.rows)-1)

	case "a":
		m.setMode(stockroom.All)
	case "l":
		m.setMode(stockroom.Low)
	case "z":
		m.setMode(stockroom.Zero)
	case "r":
		m.setMode(stockroom.Recent)

	case "+":
		m.nudge(1)
	case "-":
		m.nudge(-1)
	case "]":
		m.nudge(10)
	case "[":
		m.nudge(-10)

	case "/":
		return m, m.ask(promptSearch, "Search: ", m.search)
	case "n":
		return m, m.ask(promptCreate, "New item: ", "")
	case "m":
		return m, m.ask(promptNote, "Note: ", m.note)
	case "e", "enter":
		it, ok := m.inv.Get(m.Selected())
		if !ok {
			m.fail(stockroom.ErrNoSelection)
			return m, nil
		}
		m.edit = [3]string{strconv.Itoa(it.Quantity), it.Price.String(), strconv.Itoa(it.LowThreshold)}
		m.editStep = 0
		return m, m.ask(promptEdit, editLabels[0], m.edit[0])
	case "d", "delete":
		if m.Selected() == "" {
			m.fail(stockroom.ErrNoSelection)
			return m, nil
		}
		m.prompt = promptDelete

	case "s":
		m.save()
	case "b":
		m.backup()
	case "esc":
		m.search = ""
		m.refresh()
	}
	return m, nil
}

func (m *Model) setMode(mode stockroom.FilterMode) {
	m.mode = mode
	m.refresh()
}

func (m *Model) nudge(delta int) {
	name := m.Selected()
	applied, err := m.inv.ApplyDelta(name, delta, m.note)
	if err != nil {
		m.fail(err)
		return
	}
	it, _ := m.inv.Get(name)
	if applied == 0 {
		m.info("%s: no change, quantity is %d", name, it.Quantity)
		return
	}
	m.note = ""
	m.dirty = true
	m.info("%s: %+d → %d", name, applied, it.Quantity)
	m.refresh()
}

func (m *Model) save() {
	if m.Save == nil {
		return
	}
	if err := m.Save(m.inv); err != nil {
		m.fail(err)
		return
	}
	m.dirty = false
	m.info("Saved %d items", m.inv.Len())
}

func (m *Model) backup() {
	if m.Backup == nil {
		return
	}
	if m.dirty {
		m.info("Unsaved changes are not part of the backup, press s first")
		return
	}
	name, err := m.Backup()
	if err != nil {
		m.fail(err)
		return
	}
	m.info("Backup saved: %s", name)
}

// ask opens the text prompt.
func (m *Model) ask(p prompt, label, value string) tea.Cmd {
	m.prompt = p
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

// handlePrompt handles keys while a prompt is open.
func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.prompt {
	case promptDelete:
		if key == "y" {
			name := m.Selected()
			if m.inv.Delete(name) {
				m.dirty = true
				m.info("Deleted %q", name)
			}
			m.refresh()
		}
		m.prompt = promptNone
		return m, nil

	case promptQuit:
		switch key {
		case "y":
			if m.Save != nil {
				m.SaveErr = m.Save(m.inv)
			}
			return m, tea.Quit
		case "n":
			return m, tea.Quit
		case "esc":
			m.prompt = promptNone
		}
		return m, nil
	}

	switch key {
	case "esc":
		if m.prompt == promptSearch {
			m.search = ""
			m.refresh()
		}
		m.closePrompt()
		return m, nil
	case "enter":
		m.submit(m.input.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptSearch {
		m.search = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

// submit handles the value of the text prompt.
func (m *Model) submit(value string) {
	switch m.prompt {
	case promptSearch:
		m.search = value
		m.refresh()
	case promptNote:
		m.note = strings.TrimSpace(value)
	case promptCreate:
		if err := m.inv.Create(value); err != nil {
			m.fail(err)
			break
		}
		name := strings.TrimSpace(value)
		m.dirty = true
		m.info("Created %q", name)
		m.selectName(name)
	case promptEdit:
		m.edit[m.editStep] = value
		if m.editStep < len(m.edit)-1 {
			m.editStep++
			m.ask(promptEdit, editLabels[m.editStep], m.edit[m.editStep])
			return
		}
		m.applyEdit()
	}
	m.closePrompt()
}

func (m *Model) applyEdit() {
	name := m.Selected()
	u, err := stockroom.ParseUpdate(m.edit[0], m.edit[1], m.edit[2])
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.inv.ApplyUpdate(name, u, m.note); err != nil {
		m.fail(err)
		return
	}
	m.note = ""
	m.dirty = true
	m.info("Updated %q", name)
	m.refresh()
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder
	rule := mutedStyle.Render(strings.Repeat("─", max(10, min(m.width-2, 100))))

	title := titleStyle.Render(" Stockroom ")
	if m.dirty {
		title += "  " + errorStyle.Render("● modified")
	}
	b.WriteString(title + "\n\n")
	b.WriteString(m.renderTabs() + "\n")
	if m.search != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("name contains %q", m.search)) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(m.renderRows())
	b.WriteString(rule + "\n")
	b.WriteString(m.renderStats() + "\n")
	if d := m.renderDetails(); d != "" {
		b.WriteString(d + "\n")
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, mode := range stockroom.FilterModes {
		label := fmt.Sprintf("[%s] %s", "alzr"[i:i+1], mode.Label())
		if mode == m.mode {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRows() string {
	if len(m.rows) == 0 {
		return mutedStyle.Render("  No items to show.") + "\n"
	}
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-24s %6s %6s %12s %14s %s", "Item Name", "Qty", "Low @", "Price", "Total Value", "Status")) + "\n")
	for i, r := range m.rows {
		line := fmt.Sprintf("  %-24s %6d %6d %12s %14s %s", truncate(r.Name, 24), r.Quantity, r.LowThreshold, r.Price.Format(m.currency), r.Total.Format(m.currency), r.Status)
		switch {
		case i == m.cursor:
			line = selectedRowStyle.Render(line)
		case r.Quantity == 0:
			line = emptyStyle.Render(line)
		case r.Status != "":
			line = lowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderStats() string {
	s := m.inv.Stats()
	return "  " + statLabelStyle.Render("Total Value: ") + statValueStyle.Render(s.TotalValue.Format(m.currency)) +
		"   " + statLabelStyle.Render("Low Stock: ") + statValueStyle.Render(strconv.Itoa(s.LowStockCount)) +
		"   " + statLabelStyle.Render("Items: ") + statValueStyle.Render(strconv.Itoa(s.Items))
}

func (m Model) renderDetails() string {
	name := m.Selected()
	if name == "" {
		return ""
	}
	var lines []string
	for e := range m.inv.History(name, HistoryLines) {
		lines = append(lines, renderer.HistoryLine(e))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("No history."))
	}
	return panelStyle.Render(lipgloss.NewStyle().Bold(true).Render(name) + "\n" + strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	switch m.prompt {
	case promptDelete:
		return errorStyle.Render(fmt.Sprintf("Delete %s? (1 item) [y/N]", m.Selected()))
	case promptQuit:
		return errorStyle.Render("Save changes before quitting? [y/n, esc to stay]")
	case promptNone:
	default:
		return m.input.View()
	}
	var b strings.Builder
	if m.message != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(successStyle.Render(m.message))
		}
		b.WriteString("\n")
	}
	if m.note != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("next note: %q", m.note)) + "\n")
	}
	b.WriteString(mutedStyle.Render("↑/↓ select  +/- nudge  ]/[ ±10  e edit  n new  d delete  / search  m note  s save  b backup  q quit"))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
