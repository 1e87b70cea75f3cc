package stockroom

import (
	"encoding/json"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var day0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func ev(i int) Event {
	return Event{Timestamp: day0.Add(time.Duration(i) * time.Minute), Delta: i, NewQuantity: i, Note: fmt.Sprint("e", i)}
}

func TestLedger_Append(t *testing.T) {
	tests := []struct {
		appended  int
		wantLen   int
		wantFirst int
	}{
		{appended: 0, wantLen: 0},
		{appended: 1, wantLen: 1, wantFirst: 1},
		{appended: MaxHistory, wantLen: MaxHistory, wantFirst: 1},
		{appended: MaxHistory + 1, wantLen: MaxHistory, wantFirst: 2},
		{appended: 3 * MaxHistory, wantLen: MaxHistory, wantFirst: 2*MaxHistory + 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.appended), func(t *testing.T) {
			var l Ledger
			for i := 1; i <= tt.appended; i++ {
				l.Append(ev(i))
			}
			if got := l.Len(); got != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", got, tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			first := slices.Collect(l.Events())[0]
			if first.Delta != tt.wantFirst {
				t.Errorf("oldest event = %d, want %d", first.Delta, tt.wantFirst)
			}
			last, _ := l.Latest()
			if last.Delta != tt.appended {
				t.Errorf("latest event = %d, want %d", last.Delta, tt.appended)
			}
		})
	}
}

func TestLedger_Recent(t *testing.T) {
	var l Ledger
	for i := 1; i <= 7; i++ {
		l.Append(ev(i))
	}
	deltas := func(n int) []int {
		var got []int
		for e := range l.Recent(n) {
			got = append(got, e.Delta)
		}
		return got
	}
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{7}},
		{5, []int{7, 6, 5, 4, 3}},
		{50, []int{7, 6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, deltas(tt.n)); diff != "" {
			t.Errorf("Recent(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestLedger_RecentIsASnapshot(t *testing.T) {
	var l Ledger
	for i := 1; i <= MaxHistory; i++ {
		l.Append(ev(i))
	}
	seq := l.Recent(3)
	first := slices.Collect(seq)
	for i := MaxHistory + 1; i <= MaxHistory+5; i++ {
		l.Append(ev(i))
	}
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("sequence changed after Append (-first +second):\n%s", diff)
	}
	if l.Len() != MaxHistory {
		t.Errorf("Len() = %d, want %d", l.Len(), MaxHistory)
	}
}

func TestLedger_JSON(t *testing.T) {
	var empty Ledger
	got, err := json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("empty ledger = %s, want []", got)
	}

	e := Event{Timestamp: day0, Delta: -3, NewQuantity: 7, Note: "sold"}
	got, err = json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"date":"2025-03-10 09:00:00","change":-3,"new_qty":7,"note":"sold"}`
	if string(got) != want {
		t.Errorf("Marshal(event) = %s, want %s", got, want)
	}

	// more events than retained: only the newest survive.
	var long []Event
	for i := 1; i <= MaxHistory+4; i++ {
		long = append(long, ev(i))
	}
	data, err := json.Marshal(long)
	if err != nil {
		t.Fatal(err)
	}
	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(long[4:], slices.Collect(l.Events())); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestEvent_UnmarshalInvalidDate(t *testing.T) {
	var e Event
	if err := json.Unmarshal([]byte(`{"date":"10/03/2025","change":1,"new_qty":1,"note":""}`), &e); err == nil {
		t.Error("Unmarshal() expected an error for a malformed date")
	}
}
