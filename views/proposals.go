// ABOUTME: Proposals screen: header counts, status and quick filters, search
// ABOUTME: Each row carries its deal stage and a last activity label

package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

const (
	QuickNone          = "none"
	QuickNeedsFollowUp = "needs_follow_up"
	QuickViewed        = "viewed_recently"
	QuickExpiring      = "expiring_soon"

	StatusFilterAll = "all"
)

const (
	viewedRecentlyWindow = 3 * 24 * time.Hour
	expiringWindow       = 7 * 24 * time.Hour
)

// ValidProposalStatusFilter accepts "all" or a proposal status.
func ValidProposalStatusFilter(f string) bool {
	if f == StatusFilterAll {
		return true
	}
	_, err := models.ParseProposalStatus(f)
	return err == nil
}

func ValidQuickFilter(f string) bool {
	switch f {
	case QuickNone, QuickNeedsFollowUp, QuickViewed, QuickExpiring:
		return true
	}
	return false
}

type ProposalsHeader struct {
	Total         int `json:"total"`
	Viewed        int `json:"viewed"`
	NeedsFollowUp int `json:"needsFollowUp"`
	Accepted      int `json:"accepted"`
}

type ProposalRow struct {
	models.Proposal
	DealStage    string `json:"dealStage"`
	LastActivity string `json:"lastActivity"`
}

type ProposalFilters struct {
	Status string `json:"status"`
	Quick  string `json:"quick"`
	Search string `json:"search"`
}

type Proposals struct {
	Header  ProposalsHeader `json:"header"`
	Filters ProposalFilters `json:"filters"`
	Rows    []ProposalRow   `json:"rows"`
}

// BuildProposals applies the status filter, then the quick filter, then search.
func BuildProposals(st models.AppState, f ProposalFilters, now time.Time) Proposals {
	out := Proposals{Header: proposalsHeader(st.Proposals), Filters: f}

	sorted := make([]models.Proposal, len(st.Proposals))
	copy(sorted, st.Proposals)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range sorted {
		if f.Status != "" && f.Status != StatusFilterAll && string(p.Status) != f.Status {
			continue
		}
		if !quickMatch(p, f.Quick, now) {
			continue
		}
		stage := "N/A"
		if d, ok := findDeal(st.Deals, p.DealID); ok {
			stage = string(d.Stage)
		}
		if search != "" && !searchMatch(p, stage, search) {
			continue
		}
		out.Rows = append(out.Rows, ProposalRow{Proposal: p, DealStage: stage, LastActivity: LastActivity(p, now)})
	}
	return out
}

func proposalsHeader(ps []models.Proposal) ProposalsHeader {
	h := ProposalsHeader{Total: len(ps)}
	for _, p := range ps {
		switch p.Status {
		case models.ProposalViewed, models.ProposalNegotiation:
			h.Viewed++
		case models.ProposalAccepted:
			h.Viewed++
			h.Accepted++
		}
		if p.FollowUpStatus == models.FollowUpNeeded {
			h.NeedsFollowUp++
		}
	}
	return h
}

func quickMatch(p models.Proposal, quick string, now time.Time) bool {
	switch quick {
	case QuickNeedsFollowUp:
		return p.FollowUpStatus == models.FollowUpNeeded
	case QuickViewed:
		return p.LastViewedAt != nil && now.Sub(*p.LastViewedAt) < viewedRecentlyWindow
	case QuickExpiring:
		switch p.Status {
		case models.ProposalAccepted, models.ProposalExpired, models.ProposalReplaced:
			return false
		}
		return !p.ValidUntil.IsZero() && p.ValidUntil.Sub(now) < expiringWindow
	default:
		return true
	}
}

func searchMatch(p models.Proposal, stage, search string) bool {
	if strings.Contains(strings.ToLower(p.LeadName), search) {
		return true
	}
	if strings.Contains(strconv.FormatFloat(p.Value, 'f', -1, 64), search) {
		return true
	}
	return stage != "N/A" && strings.Contains(strings.ToLower(stage), search)
}

// LastActivity describes the newest timeline event. Ages stop at days here.
func LastActivity(p models.Proposal, now time.Time) string {
	if len(p.Timeline) == 0 {
		return "No activity yet"
	}
	last := p.Timeline[len(p.Timeline)-1]
	return fmt.Sprintf("%s %s", last.Type, ageInDays(now, last.Timestamp))
}

func ageInDays(now, t time.Time) string {
	if days := int(now.Sub(t).Hours() / 24); days >= 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return insights.TimeSince(now, t)
}

// ProposalLink is the public share link of a proposal.
func ProposalLink(id int64) string {
	return fmt.Sprintf("https://revenue-os.app/proposal/%d", id)
}
