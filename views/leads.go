// ABOUTME: Leads screen: owner names, urgency, due labels and the filter bar
// ABOUTME: Filters are all, overdue, due-today, new, hot or an acquisition channel

package views

import (
	"sort"
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

const (
	LeadFilterAll      = "all"
	LeadFilterOverdue  = "overdue"
	LeadFilterDueToday = "due-today"
	LeadFilterNew      = "new"
	LeadFilterHot      = "hot"
)

// HotScore is the minimum score for the hot filter.
const HotScore = 75

// ValidLeadFilter accepts the fixed filters and any origin name.
func ValidLeadFilter(f string) bool {
	switch f {
	case LeadFilterAll, LeadFilterOverdue, LeadFilterDueToday, LeadFilterNew, LeadFilterHot:
		return true
	}
	_, err := models.ParseOrigin(f)
	return err == nil
}

type DisplayLead struct {
	models.Lead
	OwnerName string                 `json:"owner"`
	Urgency   insights.UrgencyStatus `json:"urgency"`
	DueText   string                 `json:"dueText"`
}

type LeadsSummary struct {
	Count    int `json:"count"`
	Overdue  int `json:"overdue"`
	DueToday int `json:"dueToday"`
}

type Leads struct {
	Filter       string         `json:"filter"`
	Leads        []DisplayLead  `json:"leads"`
	Summary      LeadsSummary   `json:"summary"`
	FilterCounts map[string]int `json:"filterCounts"`
}

// DisplayLeads decorates every lead, newest first.
func DisplayLeads(st models.AppState, now time.Time) []DisplayLead {
	out := make([]DisplayLead, 0, len(st.Leads))
	for _, l := range st.Leads {
		out = append(out, DisplayLead{
			Lead:      l,
			OwnerName: ownerName(st.Users, l.OwnerID),
			Urgency:   insights.Urgency(now, l.DueDate, l.ActionCompleted),
			DueText:   insights.DueText(now, l.DueDate, l.ActionCompleted),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func matchesLeadFilter(l DisplayLead, filter string) bool {
	switch filter {
	case LeadFilterAll:
		return true
	case LeadFilterOverdue:
		return l.Urgency == insights.UrgencyOverdue
	case LeadFilterDueToday:
		return l.Urgency == insights.UrgencyDueToday
	case LeadFilterNew:
		return l.Status == models.LeadNew
	case LeadFilterHot:
		return l.Score >= HotScore
	default:
		return string(l.Origin) == filter
	}
}

// FilterLeads keeps the order of leads.
func FilterLeads(leads []DisplayLead, filter string) []DisplayLead {
	var out []DisplayLead
	for _, l := range leads {
		if matchesLeadFilter(l, filter) {
			out = append(out, l)
		}
	}
	return out
}

// BuildLeads projects the Leads screen. The summary and counts always cover every lead.
func BuildLeads(st models.AppState, filter string, now time.Time) Leads {
	if !ValidLeadFilter(filter) {
		filter = LeadFilterAll
	}
	all := DisplayLeads(st, now)
	counts := map[string]int{}
	for _, f := range []string{LeadFilterAll, LeadFilterOverdue, LeadFilterDueToday, LeadFilterNew, LeadFilterHot} {
		counts[f] = len(FilterLeads(all, f))
	}
	return Leads{
		Filter: filter,
		Leads:  FilterLeads(all, filter),
		Summary: LeadsSummary{
			Count:    len(all),
			Overdue:  counts[LeadFilterOverdue],
			DueToday: counts[LeadFilterDueToday],
		},
		FilterCounts: counts,
	}
}
