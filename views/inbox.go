// ABOUTME: Inbox screen: incoming conversations ordered by response urgency
// ABOUTME: SLA-breached first, then unread, then newest

package views

import (
	"sort"
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

const (
	InboxAll          = "all"
	InboxNeedsReply   = "needs_reply"
	InboxHot          = "hot"
	InboxDisqualified = "disqualified"
)

func ValidInboxFilter(f string) bool {
	switch f {
	case InboxAll, InboxNeedsReply, InboxHot, InboxDisqualified:
		return true
	}
	return false
}

type InboxLead struct {
	models.Lead
	SLABreached bool   `json:"slaBreached"`
	SLAText     string `json:"slaText,omitempty"`
	SLAUrgent   bool   `json:"slaUrgent"`
	LastMessage string `json:"lastMessage,omitempty"`
	Received    string `json:"received"`
}

func inboxMatch(l models.Lead, filter string) bool {
	switch filter {
	case InboxNeedsReply:
		return l.Status == models.LeadNew && !l.Contacted
	case InboxHot:
		return l.Priority == models.PriorityHot
	case InboxDisqualified:
		return l.Status == models.LeadDisqualified
	default:
		return true
	}
}

// BuildInbox filters and orders the conversation list.
func BuildInbox(st models.AppState, filter string, now time.Time) []InboxLead {
	var out []InboxLead
	for _, l := range st.Leads {
		if !inboxMatch(l, filter) {
			continue
		}
		il := InboxLead{Lead: l, Received: insights.TimeSince(now, l.CreatedAt)}
		if l.SLA != nil {
			il.SLABreached = insights.SLABreached(now, l.SLA.FirstResponseDue)
			il.SLAText, il.SLAUrgent = insights.SLAText(now, l.SLA.FirstResponseDue)
		}
		if n := len(l.Messages); n > 0 {
			il.LastMessage = l.Messages[n-1].Content
		}
		out = append(out, il)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SLABreached != b.SLABreached {
			return a.SLABreached
		}
		if a.Unread != b.Unread {
			return a.Unread
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}
