// ABOUTME: Tests for the toast service
// ABOUTME: Uses short durations to exercise replacement and auto-dismissal

package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndAutoClear(t *testing.T) {
	s := New(WithDuration(20 * time.Millisecond))

	toast := s.Show(Success, "Lead created.")
	_, err := ulid.Parse(toast.ID)
	require.NoError(t, err)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, toast, cur)

	assert.Eventually(t, func() bool {
		_, ok := s.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNewToastReplacesAndOldTimerDoesNotClear(t *testing.T) {
	s := New(WithDuration(50 * time.Millisecond))

	s.Show(Info, "first")
	time.Sleep(30 * time.Millisecond)
	second := s.Show(Error, "second")

	// the first toast's deadline passes while the second is showing
	time.Sleep(30 * time.Millisecond)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)
	assert.Equal(t, Error, cur.Kind)

	assert.Eventually(t, func() bool {
		_, ok := s.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribeAndDismiss(t *testing.T) {
	s := New(WithDuration(time.Hour))

	var mu sync.Mutex
	var seen []string
	unsubscribe := s.Subscribe(func(t *Toast) {
		mu.Lock()
		defer mu.Unlock()
		if t == nil {
			seen = append(seen, "<cleared>")
			return
		}
		seen = append(seen, t.Message)
	})

	s.Show(Success, "Flow activated successfully.")
	s.Dismiss()
	s.Dismiss()
	unsubscribe()
	s.Show(Info, "ignored")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Flow activated successfully.", "<cleared>"}, seen)
}

func TestClockStampsToast(t *testing.T) {
	at := time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return at }), WithDuration(time.Hour))
	assert.Equal(t, at, s.Show(Info, "x").ShownAt)
}
