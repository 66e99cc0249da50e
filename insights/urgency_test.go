// ABOUTME: Tests for urgency classification, due labels and relative time text
// ABOUTME: Uses fixed reference times so results do not depend on the wall clock
package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestUrgency(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	lateToday := time.Date(2026, 3, 18, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 3, 18, 0, 1, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		due       *time.Time
		completed bool
		want      UrgencyStatus
	}{
		{"no due date", nil, false, UrgencyNeedsScheduling},
		{"yesterday", &yesterday, false, UrgencyOverdue},
		{"earlier today is not overdue", &earlyToday, false, UrgencyDueToday},
		{"later today", &lateToday, false, UrgencyDueToday},
		{"tomorrow", &tomorrow, false, UrgencyOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Urgency(now, tt.due, tt.completed))
		})
	}
}

func TestUrgencyCompletedWinsOverAnyDate(t *testing.T) {
	longAgo := now.AddDate(-2, 0, 0)
	for _, due := range []*time.Time{nil, &longAgo, at(0), at(72 * time.Hour)} {
		assert.Equal(t, UrgencyCompleted, Urgency(now, due, true))
	}
}

func TestUrgencyUsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	localNow := time.Date(2026, 3, 18, 20, 0, 0, 0, loc) // 01:00 UTC on the 19th
	due := time.Date(2026, 3, 19, 0, 30, 0, 0, time.UTC) // 19:30 local on the 18th
	assert.Equal(t, UrgencyDueToday, Urgency(localNow, &due, false))
}

func TestOverdueDays(t *testing.T) {
	assert.Equal(t, 0, OverdueDays(now, nil))
	assert.Equal(t, 0, OverdueDays(now, at(time.Hour)))
	assert.Equal(t, 0, OverdueDays(now, at(-23*time.Hour)))
	assert.Equal(t, 2, OverdueDays(now, at(-50*time.Hour)))
}

func TestDueText(t *testing.T) {
	assert.Equal(t, "Completed", DueText(now, nil, true))
	assert.Equal(t, "No due date", DueText(now, nil, false))
	assert.Equal(t, "Overdue by 3 days", DueText(now, at(-72*time.Hour), false))
	assert.Equal(t, "Due today", DueText(now, at(time.Hour), false))
	assert.Equal(t, "Due tomorrow", DueText(now, at(24*time.Hour), false))
	assert.Equal(t, "Due in 5 days", DueText(now, at(5*24*time.Hour), false))
}

func TestTimeSince(t *testing.T) {
	assert.Equal(t, "just now", TimeSince(now, now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", TimeSince(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "2h ago", TimeSince(now, now.Add(-150*time.Minute)))
	assert.Equal(t, "3d ago", TimeSince(now, now.Add(-80*time.Hour)))
	assert.Equal(t, "2w ago", TimeSince(now, now.AddDate(0, 0, -15)))
}

func TestSLAText(t *testing.T) {
	text, urgent := SLAText(now, now.Add(-90*time.Minute))
	assert.Equal(t, "Overdue by 90m", text)
	assert.True(t, urgent)

	text, urgent = SLAText(now, now.Add(10*time.Minute))
	assert.Equal(t, "Respond in 10m", text)
	assert.True(t, urgent)

	text, urgent = SLAText(now, now.Add(40*time.Minute))
	assert.Equal(t, "Respond in 40m", text)
	assert.False(t, urgent)

	text, urgent = SLAText(now, now.Add(3*time.Hour))
	assert.Equal(t, "Due in 3h", text)
	assert.False(t, urgent)
}
