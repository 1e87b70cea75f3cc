package stockroom

import (
	"errors"
	"io"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// newTestInventory returns an empty inventory whose clock is pinned to now.
func newTestInventory(t *testing.T, now time.Time) (*Inventory, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	inv := New()
	inv.Clock = func() time.Time { return now }
	inv.Log = logger
	return inv, hook
}

// mustCreate creates name and sets its fields, failing the test on error.
func mustCreate(t *testing.T, inv *Inventory, name string, qty int, price float64, low int) {
	t.Helper()
	if err := inv.Create(name); err != nil {
		t.Fatalf("Create(%q) error: %v", name, err)
	}
	if err := inv.ApplyUpdate(name, Update{Quantity: qty, Price: P(price), LowThreshold: low}, ""); err != nil {
		t.Fatalf("ApplyUpdate(%q) error: %v", name, err)
	}
}

func TestInventory_Create(t *testing.T) {
	inv, hook := newTestInventory(t, day0)

	if err := inv.Create("  Widget "); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	it, ok := inv.Get("Widget")
	if !ok {
		t.Fatal("Get(Widget) not found after Create")
	}
	if it.Quantity != 0 || !it.Price.IsZero() || it.LowThreshold != DefaultLowThreshold {
		t.Errorf("new item = %d / %s / %d, want 0 / 0 / %d", it.Quantity, it.Price, it.LowThreshold, DefaultLowThreshold)
	}
	want := []Event{{Timestamp: day0, Delta: 0, NewQuantity: 0, Note: "Item created"}}
	if diff := cmp.Diff(want, slices.Collect(it.History.Events())); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if e := hook.LastEntry(); e == nil || e.Data["item"] != "Widget" {
		t.Errorf("expected a log entry for the created item, got %v", e)
	}

	tests := []struct {
		name string
		want error
	}{
		{"", ErrBlankName},
		{"   \t", ErrBlankName},
		{"Widget", ErrDuplicate},
		{" Widget", ErrDuplicate},
	}
	for _, tt := range tests {
		if err := inv.Create(tt.name); !errors.Is(err, tt.want) {
			t.Errorf("Create(%q) = %v, want %v", tt.name, err, tt.want)
		}
	}
	if inv.Len() != 1 {
		t.Errorf("Len() = %d, want 1", inv.Len())
	}
}

func TestInventory_NamesAreCaseSensitive(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	for _, name := range []string{"bolt", "Bolt", "BOLT"} {
		if err := inv.Create(name); err != nil {
			t.Fatalf("Create(%q) error: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"BOLT", "Bolt", "bolt"}, inv.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestInventory_Delete(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "Widget", 3, 1, 5)

	if inv.Delete("Gadget") {
		t.Error("Delete(Gadget) = true for a missing item")
	}
	if inv.Len() != 1 {
		t.Errorf("Len() = %d after deleting a missing item, want 1", inv.Len())
	}
	if !inv.Delete("Widget") {
		t.Error("Delete(Widget) = false, want true")
	}
	if _, ok := inv.Get("Widget"); ok {
		t.Error("Widget still present after Delete")
	}
	if n := len(slices.Collect(inv.History("Widget", 5))); n != 0 {
		t.Errorf("History of a deleted item has %d events", n)
	}
}

func TestInventory_ApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		delta       int
		wantApplied int
		wantQty     int
		wantEvents  int // events after creation and the initial update
	}{
		{name: "increment", start: 2, delta: 1, wantApplied: 1, wantQty: 3, wantEvents: 1},
		{name: "big increment", start: 2, delta: 10, wantApplied: 10, wantQty: 12, wantEvents: 1},
		{name: "decrement", start: 2, delta: -1, wantApplied: -1, wantQty: 1, wantEvents: 1},
		{name: "clamped", start: 4, delta: -10, wantApplied: -4, wantQty: 0, wantEvents: 1},
		{name: "already empty", start: 0, delta: -1, wantApplied: 0, wantQty: 0, wantEvents: 0},
		{name: "zero", start: 5, delta: 0, wantApplied: 0, wantQty: 5, wantEvents: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, _ := newTestInventory(t, day0)
			mustCreate(t, inv, "x", tt.start, 1, 5)
			before, _ := inv.Get("x")

			applied, err := inv.ApplyDelta("x", tt.delta, "nudge")
			if err != nil {
				t.Fatalf("ApplyDelta() error: %v", err)
			}
			if applied != tt.wantApplied {
				t.Errorf("applied = %d, want %d", applied, tt.wantApplied)
			}
			after, _ := inv.Get("x")
			if after.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", after.Quantity, tt.wantQty)
			}
			if got := after.History.Len() - before.History.Len(); got != tt.wantEvents {
				t.Fatalf("%d events appended, want %d", got, tt.wantEvents)
			}
			if tt.wantEvents == 1 {
				last, _ := after.History.Latest()
				want := Event{Timestamp: day0, Delta: tt.wantApplied, NewQuantity: tt.wantQty, Note: "nudge"}
				if diff := cmp.Diff(want, last); diff != "" {
					t.Errorf("event mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestInventory_ApplyDeltaNeverNegative(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "x", 7, 1, 5)
	for _, d := range []int{-3, 10, -100, -1, 1, -10, 10, -10, -10} {
		if _, err := inv.ApplyDelta("x", d, ""); err != nil {
			t.Fatalf("ApplyDelta(%d) error: %v", d, err)
		}
		it, _ := inv.Get("x")
		if it.Quantity < 0 {
			t.Fatalf("quantity went negative: %d", it.Quantity)
		}
		for e := range it.History.Events() {
			if e.NewQuantity < 0 {
				t.Fatalf("event with negative quantity: %+v", e)
			}
		}
	}
}

func TestInventory_ApplyDeltaSaturates(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "x", 10, 1, 5)

	applied, err := inv.ApplyDelta("x", math.MaxInt, "restock")
	if err != nil {
		t.Fatalf("ApplyDelta(MaxInt) error: %v", err)
	}
	if want := math.MaxInt - 10; applied != want {
		t.Errorf("ApplyDelta(MaxInt) = %d, want %d", applied, want)
	}
	it, _ := inv.Get("x")
	if it.Quantity != math.MaxInt {
		t.Errorf("quantity = %d, want %d", it.Quantity, math.MaxInt)
	}

	applied, err = inv.ApplyDelta("x", 1, "")
	if err != nil || applied != 0 {
		t.Errorf("ApplyDelta(+1) at MaxInt = %d, %v, want 0, nil", applied, err)
	}

	applied, err = inv.ApplyDelta("x", math.MinInt, "")
	if err != nil {
		t.Fatalf("ApplyDelta(MinInt) error: %v", err)
	}
	if applied != -math.MaxInt {
		t.Errorf("ApplyDelta(MinInt) = %d, want %d", applied, -math.MaxInt)
	}
	if it, _ := inv.Get("x"); it.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", it.Quantity)
	}
}

func TestInventory_ApplyDeltaTrimsNote(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "x", 1, 1, 5)
	if _, err := inv.ApplyDelta("x", 2, "  sold out  "); err != nil {
		t.Fatal(err)
	}
	it, _ := inv.Get("x")
	if last, _ := it.History.Latest(); last.Note != "sold out" {
		t.Errorf("note = %q, want %q", last.Note, "sold out")
	}
}

func TestNew_DiscardsLogs(t *testing.T) {
	l, ok := New().Log.(*logrus.Logger)
	if !ok {
		t.Fatalf("default Log is a %T, want *logrus.Logger", New().Log)
	}
	if l.Out != io.Discard {
		t.Errorf("default Log writes to %v, want io.Discard", l.Out)
	}
}

func TestInventory_PutRejectsNegativePrice(t *testing.T) {
	inv := New()
	if err := inv.Put("x", Item{Quantity: 1, Price: P(-0.5)}); err == nil {
		t.Error("Put with a negative price succeeded")
	}
	if inv.Has("x") {
		t.Error("rejected item was stored")
	}
}

func TestInventory_ApplyDeltaErrors(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	if _, err := inv.ApplyDelta("", 1, ""); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ApplyDelta(\"\") = %v, want %v", err, ErrNoSelection)
	}
	if _, err := inv.ApplyDelta("ghost", 1, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("ApplyDelta(ghost) = %v, want %v", err, ErrNotFound)
	}
}

func TestInventory_HistoryIsBounded(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	if err := inv.Create("x"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		if _, err := inv.ApplyDelta("x", 1, ""); err != nil {
			t.Fatal(err)
		}
	}
	it, _ := inv.Get("x")
	if it.History.Len() != MaxHistory {
		t.Fatalf("history length = %d, want %d", it.History.Len(), MaxHistory)
	}
	// the creation event and the 10 first increments were evicted.
	first := slices.Collect(it.History.Events())[0]
	if first.NewQuantity != 11 {
		t.Errorf("oldest retained event new_qty = %d, want 11", first.NewQuantity)
	}
	var newest []int
	for e := range inv.History("x", 3) {
		newest = append(newest, e.NewQuantity)
	}
	if diff := cmp.Diff([]int{30, 29, 28}, newest); diff != "" {
		t.Errorf("History(x, 3) mismatch (-want +got):\n%s", diff)
	}
}

func TestInventory_GetReturnsACopy(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "x", 1, 1, 5)
	it, _ := inv.Get("x")
	it.Quantity = 99
	it.History.Append(Event{Note: "sneaky"})

	again, _ := inv.Get("x")
	if again.Quantity != 1 || again.History.Len() != 2 {
		t.Errorf("stored item modified through a copy: %+v", again)
	}
}

func TestWidgetScenario(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	if err := inv.Create("Widget"); err != nil {
		t.Fatal(err)
	}
	u, err := ParseUpdate("10", "2.50", "5")
	if err != nil {
		t.Fatalf("ParseUpdate() error: %v", err)
	}
	if err := inv.ApplyUpdate("Widget", u, ""); err != nil {
		t.Fatalf("ApplyUpdate() error: %v", err)
	}
	if got := inv.TotalValue(); !got.Equal(P(25)) {
		t.Errorf("TotalValue() = %s, want 25", got)
	}

	applied, err := inv.ApplyDelta("Widget", -15, "")
	if err != nil {
		t.Fatal(err)
	}
	if applied != -10 {
		t.Errorf("applied = %d, want -10", applied)
	}
	it, _ := inv.Get("Widget")
	if it.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", it.Quantity)
	}
	var deltas []int
	for e := range it.History.Events() {
		deltas = append(deltas, e.Delta)
	}
	if diff := cmp.Diff([]int{0, 10, -10}, deltas); diff != "" {
		t.Errorf("history deltas mismatch (-want +got):\n%s", diff)
	}
	if got := inv.TotalValue().Fixed(); got != "0.00" {
		t.Errorf("TotalValue() = %s, want 0.00", got)
	}
}
