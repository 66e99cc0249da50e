// ABOUTME: Next-action urgency classification shared by every screen
// ABOUTME: Compares due dates on calendar days in the location of the evaluation time
package insights

import (
	"fmt"
	"math"
	"time"
)

// UrgencyStatus is the five-way classification of a lead's next action.
type UrgencyStatus string

const (
	UrgencyCompleted       UrgencyStatus = "completed"
	UrgencyNeedsScheduling UrgencyStatus = "needs-scheduling"
	UrgencyOverdue         UrgencyStatus = "overdue"
	UrgencyDueToday        UrgencyStatus = "due-today"
	UrgencyOnTrack         UrgencyStatus = "on-track"
)

// Rank orders statuses for "most urgent first" sorting.
func (u UrgencyStatus) Rank() int {
	switch u {
	case UrgencyOverdue:
		return 0
	case UrgencyDueToday:
		return 1
	case UrgencyNeedsScheduling:
		return 2
	case UrgencyOnTrack:
		return 3
	default:
		return 4
	}
}

// Urgency classifies a next action. A completed action wins over any date.
func Urgency(now time.Time, due *time.Time, completed bool) UrgencyStatus {
	if completed {
		return UrgencyCompleted
	}
	if due == nil {
		return UrgencyNeedsScheduling
	}
	switch diff := calendarDays(now, *due); {
	case diff < 0:
		return UrgencyOverdue
	case diff == 0:
		return UrgencyDueToday
	default:
		return UrgencyOnTrack
	}
}

// OverdueDays is the number of whole days elapsed since due, or 0 when not past due.
func OverdueDays(now time.Time, due *time.Time) int {
	if due == nil {
		return 0
	}
	elapsed := now.Sub(*due)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// DueText renders the relative due label used in lead lists.
func DueText(now time.Time, due *time.Time, completed bool) string {
	if completed {
		return "Completed"
	}
	if due == nil {
		return "No due date"
	}
	diff := calendarDays(now, *due)
	switch {
	case diff < 0:
		return fmt.Sprintf("Overdue by %d days", -diff)
	case diff == 0:
		return "Due today"
	case diff == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", diff)
	}
}

// calendarDays returns the number of calendar days from now's date to t's date.
func calendarDays(now, t time.Time) int {
	loc := now.Location()
	ny, nm, nd := now.Date()
	ty, tm, td := t.In(loc).Date()
	a := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Round is half-up rounding, as used by every displayed percentage and score.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
