package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/stockroom"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

// sample returns a small inventory with some history.
func sample(t *testing.T) *stockroom.Inventory {
	t.Helper()
	inv := stockroom.New()
	inv.Clock = func() time.Time { return now }
	inv.Log, _ = test.NewNullLogger()

	require.NoError(t, inv.Create("Widget"))
	u, err := stockroom.ParseUpdate("10", "2.50", "5")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyUpdate("Widget", u, ""))
	_, err = inv.ApplyDelta("Widget", -3, "sold")
	require.NoError(t, err)

	require.NoError(t, inv.Create("Bolt, M4"))
	for i := 0; i < 25; i++ {
		_, err := inv.ApplyDelta("Bolt, M4", 10, "")
		require.NoError(t, err)
	}
	return inv
}

// requireSameInventory asserts want and got hold the same records.
func requireSameInventory(t *testing.T, want, got *stockroom.Inventory) {
	t.Helper()
	require.Equal(t, want.Names(), got.Names())
	for name, w := range want.Items() {
		g, ok := got.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, w.Quantity, g.Quantity, name)
		assert.True(t, w.Price.Equal(g.Price), "%s price %s != %s", name, w.Price, g.Price)
		assert.Equal(t, w.LowThreshold, g.LowThreshold, name)
		require.Equal(t, w.History.Len(), g.History.Len(), name)
		var we, ge []stockroom.Event
		for e := range w.History.Events() {
			we = append(we, e)
		}
		for e := range g.History.Events() {
			ge = append(ge, e)
		}
		for i := range we {
			assert.True(t, we[i].Timestamp.Equal(ge[i].Timestamp), "%s event %d timestamp", name, i)
			assert.Equal(t, we[i].Delta, ge[i].Delta)
			assert.Equal(t, we[i].NewQuantity, ge[i].NewQuantity)
			assert.Equal(t, we[i].Note, ge[i].Note)
		}
	}
}

func TestFor(t *testing.T) {
	assert.IsType(t, JSONFile{}, For("inventory.json"))
	assert.IsType(t, JSONFile{}, For("inventory"))
	assert.IsType(t, BoltFile{}, For("stock.bolt"))
	assert.IsType(t, SQLiteFile{}, For("stock.sqlite"))
	assert.IsType(t, SQLiteFile{}, For("STOCK.DB"))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"inventory.json", "inventory.bolt", "inventory.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sample(t)

			require.NoError(t, Save(path, want))
			got, err := For(path).Load()
			require.NoError(t, err)
			requireSameInventory(t, want, got)

			// saving again replaces the whole store.
			require.True(t, want.Delete("Widget"))
			require.NoError(t, Save(path, want))
			got, err = For(path).Load()
			require.NoError(t, err)
			assert.Equal(t, []string{"Bolt, M4"}, got.Names())
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	for _, name := range []string{"missing.json", "missing.bolt", "missing.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			log, hook := test.NewNullLogger()

			inv := Load(path, log)
			assert.Equal(t, 0, inv.Len())
			for _, e := range hook.AllEntries() {
				assert.NotEqual(t, logrus.WarnLevel, e.Level, "a missing file is not worth a warning")
			}
			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err), "loading must not create %s", name)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	for _, name := range []string{"bad.json", "bad.bolt", "bad.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte(`{"Widget": {"quantity": "ten"`), 0644))
			log, hook := test.NewNullLogger()

			inv := Load(path, log)
			assert.Equal(t, 0, inv.Len())
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

			_, err := For(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_JSONDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Widget": {"quantity": 3, "price": 1.5}}`), 0644))
	log, _ := test.NewNullLogger()

	inv := Load(path, log)
	it, ok := inv.Get("Widget")
	require.True(t, ok)
	assert.Equal(t, 3, it.Quantity)
	assert.Equal(t, stockroom.DefaultLowThreshold, it.LowThreshold)
	assert.Equal(t, 0, it.History.Len())
}
