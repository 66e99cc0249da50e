// ABOUTME: Tests for the SQLite slot store
// ABOUTME: Exercises the store.Backend contract, audit history and a full store round trip
package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
)

func openTestSlots(t *testing.T) *SlotStore {
	t.Helper()
	s, err := OpenSlotStore(filepath.Join(t.TempDir(), "revenueos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSlotStoreGetSetDelete(t *testing.T) {
	s := openTestSlots(t)

	_, err := s.Get([]byte("theme"))
	assert.ErrorIs(t, err, store.ErrSlotNotFound)

	require.NoError(t, s.Set([]byte("theme"), []byte("dark")))
	got, err := s.Get([]byte("theme"))
	require.NoError(t, err)
	assert.Equal(t, "dark", string(got))

	require.NoError(t, s.Set([]byte("theme"), []byte("light")))
	got, err = s.Get([]byte("theme"))
	require.NoError(t, err)
	assert.Equal(t, "light", string(got))

	require.NoError(t, s.Delete([]byte("theme")))
	_, err = s.Get([]byte("theme"))
	assert.ErrorIs(t, err, store.ErrSlotNotFound)

	require.NoError(t, s.Delete([]byte("theme")), "deleting a missing slot is fine")
}

func TestSlotStoreHistory(t *testing.T) {
	s := openTestSlots(t)
	fixed := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Set([]byte("leads-filter"), []byte("hot")))
	require.NoError(t, s.Set([]byte("leads-filter"), []byte("overdue")))
	require.NoError(t, s.Delete([]byte("leads-filter")))
	require.NoError(t, s.Delete([]byte("leads-filter")))

	events, err := s.History("leads-filter", 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "delete", events[0].Action)
	assert.Equal(t, "set", events[1].Action)
	assert.Equal(t, len("overdue"), events[1].Size)
	assert.True(t, events[2].RecordedAt.Equal(fixed))
}

func TestSlotStoreKeysAndUpdatedAt(t *testing.T) {
	s := openTestSlots(t)
	fixed := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Set([]byte("theme"), []byte("dark")))
	require.NoError(t, s.Set([]byte("hasOnboarded"), []byte("true")))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"hasOnboarded", "theme"}, keys)

	ts, err := s.UpdatedAt("theme")
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixed))

	_, err = s.UpdatedAt("missing")
	assert.ErrorIs(t, err, store.ErrSlotNotFound)
}

func TestSlotStoreBacksStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revenueos.db")
	now := time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	slots, err := OpenSlotStore(path)
	require.NoError(t, err)
	st := store.New(slots, store.WithClock(clock))
	require.NoError(t, st.Load())
	_, err = st.ToggleFlow("meta-1")
	require.NoError(t, err)
	require.NoError(t, slots.Close())

	reopened, err := OpenSlotStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	st2 := store.New(reopened, store.WithClock(clock))
	require.NoError(t, st2.Load())
	assert.Equal(t, store.SourceStored, st2.LoadReport().Source)
	assert.Contains(t, st2.Get().ActiveFlowIDs, "meta-1")
	assert.Len(t, st2.Get().Leads, len(models.Seed(now).Leads))
}
