// ABOUTME: Today screen: the rep's action list for the day
// ABOUTME: Hot leads, uncontacted leads, overdue follow-ups, stalled and reactivation deals

package views

import (
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

// StallDays is how long a deal may sit without action before it counts as stalled.
const StallDays = 7

type OverdueLead struct {
	models.Lead
	DaysOverdue int `json:"daysOverdue"`
}

type ProposalFollowUp struct {
	models.Proposal
	LastViewed     *time.Time `json:"lastViewed,omitempty"`
	LastViewedText string     `json:"lastViewedText"`
}

type DealWithLead struct {
	models.Deal
	LeadName string `json:"leadName"`
}

type Today struct {
	HotLeads                 []models.Lead        `json:"hotLeads"`
	NoContact                []models.Lead        `json:"noContact"`
	OverdueFollowUps         []OverdueLead        `json:"overdueFollowUps"`
	ProposalsNeedingFollowUp []ProposalFollowUp   `json:"proposalsNeedingFollowUp"`
	StalledDeals             []DealWithLead       `json:"stalledDeals"`
	Reactivation             []DealWithLead       `json:"reactivation"`
	MicroLessons             []models.MicroLesson `json:"microLessons"`
	TotalOverdue             int                  `json:"totalOverdue"`
	Checklist                Checklist            `json:"checklist"`
}

// BuildToday projects the Today screen. Only lead follow-ups carry due
// dates, so they are the whole overdue total.
func BuildToday(st models.AppState, checklist Checklist, now time.Time) Today {
	t := Today{MicroLessons: st.MicroLessons, Checklist: checklist}

	for _, l := range st.Leads {
		if l.Priority == models.PriorityHot && l.Status == models.LeadQualified && l.DealID == nil {
			t.HotLeads = append(t.HotLeads, l)
		}
		if !l.Contacted && l.Status == models.LeadNew {
			t.NoContact = append(t.NoContact, l)
		}
		if l.Contacted && insights.Urgency(now, l.DueDate, l.ActionCompleted) == insights.UrgencyOverdue {
			t.OverdueFollowUps = append(t.OverdueFollowUps, OverdueLead{Lead: l, DaysOverdue: insights.OverdueDays(now, l.DueDate)})
		}
	}
	t.TotalOverdue = len(t.OverdueFollowUps)

	for _, p := range st.Proposals {
		if p.Status != models.ProposalViewed {
			continue
		}
		f := ProposalFollowUp{Proposal: p, LastViewedText: "recently"}
		for i := len(p.Timeline) - 1; i >= 0; i-- {
			if p.Timeline[i].Type == models.EventViewed {
				ts := p.Timeline[i].Timestamp
				f.LastViewed = &ts
				f.LastViewedText = insights.TimeSince(now, ts)
				break
			}
		}
		t.ProposalsNeedingFollowUp = append(t.ProposalsNeedingFollowUp, f)
	}

	for _, d := range st.Deals {
		if !d.Stage.IsTerminal() && now.Sub(d.LastActionAt).Hours()/24 > StallDays {
			t.StalledDeals = append(t.StalledDeals, DealWithLead{Deal: d, LeadName: leadNameForDeal(st.Leads, d.ID)})
		}
		if d.SpecialStatus == models.SpecialReactivateLater {
			t.Reactivation = append(t.Reactivation, DealWithLead{Deal: d, LeadName: leadNameForDeal(st.Leads, d.ID)})
		}
	}
	return t
}
