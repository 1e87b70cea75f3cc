package stockroom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	inv, _ := newTestInventory(t, day0)
	mustCreate(t, inv, "Widget", 10, 2.5, 5)
	if err := inv.Create("Bolt"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, inv); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := `{
    "Bolt": {
        "quantity": 0,
        "price": 0,
        "low_threshold": 5,
        "history": [
            {
                "date": "2025-03-10 09:00:00",
                "change": 0,
                "new_qty": 0,
                "note": "Item created"
            }
        ]
    },
    "Widget": {
        "quantity": 10,
        "price": 2.5,
        "low_threshold": 5,
        "history": [
            {
                "date": "2025-03-10 09:00:00",
                "change": 0,
                "new_qty": 0,
                "note": "Item created"
            },
            {
                "date": "2025-03-10 09:00:00",
                "change": 10,
                "new_qty": 10,
                "note": "Manual update"
            }
        ]
    }
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	inv := sampleInventory(t)
	for i := 0; i < 25; i++ {
		if _, err := inv.ApplyDelta("Apple", 1, "restock"); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, inv); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(inv.Names(), got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	for name, want := range inv.Items() {
		it, _ := got.Get(name)
		if diff := cmp.Diff(want, it, cmp.AllowUnexported(Ledger{})); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		inv, err := Decode(strings.NewReader(`{"Nut": {"quantity": 4, "price": "1.5"}, "Washer": {}}`))
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		nut, _ := inv.Get("Nut")
		if nut.Quantity != 4 || !nut.Price.Equal(P(1.5)) || nut.LowThreshold != DefaultLowThreshold || nut.History.Len() != 0 {
			t.Errorf("Nut = %+v", nut)
		}
		washer, _ := inv.Get("Washer")
		if washer.Quantity != 0 || !washer.Price.IsZero() || washer.LowThreshold != DefaultLowThreshold {
			t.Errorf("Washer = %+v", washer)
		}
	})

	t.Run("null history", func(t *testing.T) {
		inv, err := Decode(strings.NewReader(`{"Nut": {"quantity": 1, "price": 1, "low_threshold": 0, "history": null}}`))
		if err != nil {
			t.Fatalf("Decode() error: %v", err)
		}
		if nut, _ := inv.Get("Nut"); nut.History.Len() != 0 || nut.LowThreshold != 0 {
			t.Errorf("Nut = %+v", nut)
		}
	})

	for _, doc := range []string{
		``,
		`[]`,
		`{"Nut": 3}`,
		`{"Nut": {"quantity": -1}}`,
		`{"Nut": {"price": -1}}`,
		`{"Nut": {"quantity": "many"}}`,
		`{"Nut": {"history": [{"date": "yesterday"}]}}`,
		`{"  ": {}}`,
	} {
		t.Run("malformed "+doc, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(doc)); err == nil {
				t.Errorf("Decode(%q) succeeded, want an error", doc)
			}
		})
	}
}
