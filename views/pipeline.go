// ABOUTME: Pipeline screen: kanban cards, stage totals, header and manager stats
// ABOUTME: Expected revenue uses the pipeline probability table

package views

import (
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

type KanbanDeal struct {
	models.Deal
	Lead        models.Lead            `json:"lead"`
	OwnerName   string                 `json:"owner"`
	RiskStatus  insights.UrgencyStatus `json:"riskStatus"`
	DaysInStage int                    `json:"daysInStage"`
	IsStalled   bool                   `json:"isStalled"`
	OverdueDays int                    `json:"overdueDays,omitempty"`
}

type StageColumn struct {
	Stage models.Stage `json:"stage"`
	Deals []KanbanDeal `json:"deals"`
	Value float64      `json:"value"`
}

type StageStats struct {
	AvgAge  float64 `json:"avgAge"`
	Stalled int     `json:"stalled"`
	Overdue int     `json:"overdue"`
}

type ManagerStats struct {
	Stats      map[models.Stage]StageStats `json:"stats"`
	Bottleneck models.Stage                `json:"bottleneckStage,omitempty"`
}

type Pipeline struct {
	Columns         []StageColumn `json:"columns"`
	PipelineValue   float64       `json:"totalPipelineValue"`
	ExpectedRevenue float64       `json:"expectedRevenue"`
	GapToGoal       float64       `json:"gapToGoal"`
	Manager         ManagerStats  `json:"manager"`
}

// KanbanDeals decorates every deal with its lead and risk data.
func KanbanDeals(st models.AppState, now time.Time) []KanbanDeal {
	out := make([]KanbanDeal, 0, len(st.Deals))
	for _, d := range st.Deals {
		out = append(out, kanbanDeal(st, d, now))
	}
	return out
}

// KanbanDealFor decorates one deal by id.
func KanbanDealFor(st models.AppState, dealID int64, now time.Time) (KanbanDeal, bool) {
	d, ok := findDeal(st.Deals, dealID)
	if !ok {
		return KanbanDeal{}, false
	}
	return kanbanDeal(st, d, now), true
}

func kanbanDeal(st models.AppState, d models.Deal, now time.Time) KanbanDeal {
	lead, ok := findLead(st.Leads, d.LeadID)
	if !ok {
		lead = models.Lead{ID: d.LeadID, Name: UnknownLead}
	}
	k := KanbanDeal{
		Deal:        d,
		Lead:        lead,
		OwnerName:   ownerName(st.Users, lead.OwnerID),
		RiskStatus:  insights.Urgency(now, lead.DueDate, lead.ActionCompleted),
		DaysInStage: wholeDays(d.StageEnteredAt, now),
	}
	k.IsStalled = k.DaysInStage > StallDays
	if k.RiskStatus == insights.UrgencyOverdue {
		k.OverdueDays = insights.OverdueDays(now, lead.DueDate)
	}
	return k
}

// BuildPipeline projects the board. The header gap is not floored at zero.
func BuildPipeline(st models.AppState, now time.Time) Pipeline {
	all := KanbanDeals(st, now)
	p := Pipeline{
		PipelineValue:   insights.PipelineValue(st.Deals),
		ExpectedRevenue: insights.Forecast(st.Deals, insights.PipelineProbabilities),
		Manager:         ManagerStats{Stats: map[models.Stage]StageStats{}},
	}
	p.GapToGoal = st.MonthlyGoal - p.ExpectedRevenue

	maxAge := -1.0
	for _, stage := range models.Stages {
		col := StageColumn{Stage: stage}
		for _, k := range all {
			if k.Stage == stage {
				col.Deals = append(col.Deals, k)
				col.Value += k.Value
			}
		}
		p.Columns = append(p.Columns, col)

		if stage.IsTerminal() || len(col.Deals) == 0 {
			continue
		}
		var s StageStats
		var ageSum int
		for _, k := range col.Deals {
			ageSum += k.DaysInStage
			if k.IsStalled {
				s.Stalled++
			}
			if k.RiskStatus == insights.UrgencyOverdue {
				s.Overdue++
			}
		}
		s.AvgAge = float64(ageSum) / float64(len(col.Deals))
		p.Manager.Stats[stage] = s
		if s.AvgAge > maxAge {
			maxAge = s.AvgAge
			p.Manager.Bottleneck = stage
		}
	}
	return p
}

// Column returns the column of a stage.
func (p Pipeline) Column(stage models.Stage) StageColumn {
	for _, c := range p.Columns {
		if c.Stage == stage {
			return c
		}
	}
	return StageColumn{Stage: stage}
}
