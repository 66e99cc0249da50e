// ABOUTME: Relative time labels and first-response SLA countdowns
package insights

import (
	"fmt"
	"math"
	"time"
)

// TimeSince renders "just now", "Nm ago", "Nh ago", "Nd ago" or "Nw ago".
func TimeSince(now, t time.Time) string {
	seconds := int64(math.Floor(now.Sub(t).Seconds()))
	if seconds < 60 {
		return "just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return fmt.Sprintf("%dw ago", days/7)
}

// SLAText renders the countdown to a first-response deadline.
func SLAText(now, due time.Time) (text string, urgent bool) {
	minutes := due.Sub(now).Minutes()
	if minutes < 0 {
		return fmt.Sprintf("Overdue by %dm", int(math.Abs(Round(minutes)))), true
	}
	if minutes < 60 {
		return fmt.Sprintf("Respond in %dm", int(Round(minutes))), minutes < 15
	}
	return fmt.Sprintf("Due in %dh", int(Round(minutes/60))), false
}

// SLABreached reports whether the deadline has passed.
func SLABreached(now, due time.Time) bool {
	return due.Before(now)
}
