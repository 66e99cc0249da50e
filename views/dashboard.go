// ABOUTME: Executive dashboard: scenario metrics, simulation, funnel, channels and advice
// ABOUTME: Owns the widget catalog and the layout filtering rules

package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

type Scenario string

const (
	ScenarioHealthy  Scenario = "healthy"
	ScenarioRisk     Scenario = "risk"
	ScenarioRecovery Scenario = "recovery"
)

var Scenarios = []Scenario{ScenarioHealthy, ScenarioRisk, ScenarioRecovery}

func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("invalid scenario: %s (valid: healthy, risk, recovery)", s)
}

// Next cycles healthy, risk, recovery.
func (s Scenario) Next() Scenario {
	for i, sc := range Scenarios {
		if sc == s {
			return Scenarios[(i+1)%len(Scenarios)]
		}
	}
	return ScenarioHealthy
}

// ScenarioData picks the leads and deals the dashboard reads. The healthy
// scenario is the default demo dataset, not the live workspace.
func ScenarioData(s Scenario, now time.Time) models.ScenarioData {
	switch s {
	case ScenarioRisk:
		return models.RiskScenario(now)
	case ScenarioRecovery:
		return models.RecoveryScenario(now)
	default:
		seed := models.Seed(now)
		return models.ScenarioData{Leads: seed.Leads, Deals: seed.Deals}
	}
}

const (
	WidgetPipeline           = "kpi_pipeline"
	WidgetForecast           = "kpi_forecast"
	WidgetGap                = "kpi_gap"
	WidgetWinRate            = "kpi_win_rate"
	WidgetSimulator          = "forecast_simulator"
	WidgetRecommendations    = "ai_recommendations"
	WidgetFunnel             = "funnel_analysis"
	WidgetChannelPerformance = "channel_performance"
	WidgetDiscipline         = "discipline_metrics"
)

// WidgetCatalog lists every widget the dashboard can show.
func WidgetCatalog() []models.Widget {
	return []models.Widget{
		{ID: WidgetPipeline, Name: "Active Pipeline", ColSpan: 1},
		{ID: WidgetForecast, Name: "Forecasted Revenue", ColSpan: 1},
		{ID: WidgetGap, Name: "Gap to Goal", ColSpan: 1},
		{ID: WidgetWinRate, Name: "Win Rate", ColSpan: 1},
		{ID: WidgetSimulator, Name: "Forecast & Scenario Simulation", ColSpan: 2},
		{ID: WidgetRecommendations, Name: "AI Recommendations", ColSpan: 2},
		{ID: WidgetFunnel, Name: "Funnel & Loss Analysis", ColSpan: 1},
		{ID: WidgetChannelPerformance, Name: "Channel Performance", ColSpan: 1},
		{ID: WidgetDiscipline, Name: "Sales Execution Discipline", ColSpan: 1},
	}
}

func catalogWidget(id string) (models.Widget, bool) {
	for _, w := range WidgetCatalog() {
		if w.ID == id {
			return w, true
		}
	}
	return models.Widget{}, false
}

// DefaultLayout is the catalog without the win-rate tile.
func DefaultLayout() []models.Widget {
	var out []models.Widget
	for _, w := range WidgetCatalog() {
		if w.ID != WidgetWinRate {
			out = append(out, w)
		}
	}
	return out
}

// ResolveLayout drops saved widgets the catalog no longer knows. Without a
// saved layout the default one applies.
func ResolveLayout(saved []models.Widget, ok bool) []models.Widget {
	if !ok {
		return DefaultLayout()
	}
	out := []models.Widget{}
	for _, w := range saved {
		if _, known := catalogWidget(w.ID); known {
			out = append(out, w)
		}
	}
	return out
}

// AvailableWidgets is the catalog minus the active layout.
func AvailableWidgets(active []models.Widget) []models.Widget {
	used := map[string]bool{}
	for _, w := range active {
		used[w.ID] = true
	}
	var out []models.Widget
	for _, w := range WidgetCatalog() {
		if !used[w.ID] {
			out = append(out, w)
		}
	}
	return out
}

type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

type Benchmark struct {
	ResponseTime float64 `json:"responseTime"`
	FollowUpRate float64 `json:"followUpRate"`
}

type DisciplineMetrics struct {
	ResponseTime float64   `json:"responseTime"`
	FollowUpRate float64   `json:"followUpRate"`
	Overdue      int       `json:"overdue"`
	Benchmark    Benchmark `json:"benchmark"`
}

// SimulationInput holds the what-if sliders.
type SimulationInput struct {
	WinRateDelta float64 `json:"winRateDelta"`
	ClosedDeals  int     `json:"closedDeals"`
}

type Simulation struct {
	SimulationInput
	Forecast float64 `json:"simulatedForecast"`
	Gap      float64 `json:"simulatedGap"`
}

type Dashboard struct {
	Scenario         Scenario                `json:"scenario"`
	MonthlyGoal      float64                 `json:"monthlyGoal"`
	PipelineValue    float64                 `json:"pipelineValue"`
	Forecast         float64                 `json:"forecastedRevenue"`
	GapToGoal        float64                 `json:"gapToGoal"`
	CloseRate        float64                 `json:"closeRate"`
	ExecutiveSummary Message                 `json:"executiveSummary"`
	Simulation       Simulation              `json:"simulation"`
	Funnel           []insights.FunnelStage  `json:"funnel"`
	Channels         []insights.ChannelStats `json:"channelPerformance"`
	ChannelBest      string                  `json:"channelBest"`
	ChannelWorst     string                  `json:"channelWorst"`
	Discipline       DisciplineMetrics       `json:"disciplineMetrics"`
	Recommendations  []Recommendation        `json:"recommendations"`
	Layout           []models.Widget         `json:"layout"`
	AvailableWidgets []models.Widget         `json:"availableWidgets"`
}

// BuildDashboard projects the dashboard for a scenario. The goal always
// comes from the live workspace.
func BuildDashboard(goal float64, scenario Scenario, sim SimulationInput, layout []models.Widget, now time.Time) Dashboard {
	data := ScenarioData(scenario, now)
	table := insights.DashboardProbabilities

	forecast := insights.Forecast(data.Deals, table)
	d := Dashboard{
		Scenario:      scenario,
		MonthlyGoal:   goal,
		PipelineValue: insights.PipelineValue(data.Deals),
		Forecast:      forecast,
		GapToGoal:     insights.GapToGoal(goal, forecast),
		CloseRate:     insights.CloseRate(data.Deals),
		Funnel:        insights.Funnel(data.Deals),
		Channels:      insights.ChannelPerformance(data.Leads, data.Deals),
		Discipline:    disciplineFor(scenario),
		Layout:        layout,
	}
	d.ExecutiveSummary = executiveSummary(d.GapToGoal, scenario)

	simulated := insights.Simulate(data.Deals, table, sim.WinRateDelta, sim.ClosedDeals)
	d.Simulation = Simulation{
		SimulationInput: sim,
		Forecast:        simulated,
		Gap:             insights.GapToGoal(goal, simulated),
	}
	d.ChannelBest, d.ChannelWorst = insights.ChannelSummary(d.Channels)
	d.Recommendations = recommendations(data, now)
	d.AvailableWidgets = AvailableWidgets(layout)
	return d
}

func executiveSummary(gap float64, s Scenario) Message {
	switch {
	case gap <= 0 && s != ScenarioRisk:
		return Message{"On track to exceed goal.", "Momentum is strong. Focus on high-value deals in negotiation to maximize the upside."}
	case s == ScenarioRisk:
		return Message{"This month is at risk.", "Negotiation is the main bottleneck. Advancing 2 deals would close 70% of the gap."}
	case s == ScenarioRecovery:
		return Message{"Recovery in progress.", "Efforts are paying off, but the gap remains. Prioritize overdue follow-ups to regain momentum."}
	default:
		return Message{"Healthy, but with a gap.", "Pipeline is active, but requires focus on converting Proposal Sent deals to close the remaining gap."}
	}
}

func disciplineFor(s Scenario) DisciplineMetrics {
	bench := Benchmark{ResponseTime: 30, FollowUpRate: 90}
	switch s {
	case ScenarioRisk:
		return DisciplineMetrics{ResponseTime: 55, FollowUpRate: 61, Overdue: 8, Benchmark: bench}
	case ScenarioRecovery:
		return DisciplineMetrics{ResponseTime: 25, FollowUpRate: 85, Overdue: 3, Benchmark: bench}
	default:
		return DisciplineMetrics{ResponseTime: 18, FollowUpRate: 92, Overdue: 1, Benchmark: bench}
	}
}

// recommendations suggests the largest negotiation deal, the longest
// overdue lead and a fixed proposal review.
func recommendations(data models.ScenarioData, now time.Time) []Recommendation {
	var out []Recommendation

	var top *models.Deal
	for i, d := range data.Deals {
		if d.Stage == models.StageNegotiation && (top == nil || d.Value > top.Value) {
			top = &data.Deals[i]
		}
	}
	if top != nil {
		name := UnknownLead
		if l, ok := findLead(data.Leads, top.LeadID); ok {
			name = l.Name
		}
		out = append(out, Recommendation{
			Title:       "Prioritize closing " + name,
			Explanation: fmt.Sprintf("This $%s deal has the highest impact on your forecast.", FormatMoney(top.Value)),
		})
	}

	var overdue []models.Lead
	for _, l := range data.Leads {
		if insights.Urgency(now, l.DueDate, l.ActionCompleted) == insights.UrgencyOverdue {
			overdue = append(overdue, l)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool { return overdue[i].DueDate.Before(*overdue[j].DueDate) })
	if len(overdue) > 0 {
		out = append(out, Recommendation{
			Title:       fmt.Sprintf("Follow-up with %s immediately", overdue[0].Name),
			Explanation: "This action is overdue and putting the deal at risk.",
		})
	}

	return append(out, Recommendation{
		Title:       "Review stalled deals in Proposal Sent",
		Explanation: "Advancing these deals is key to closing your revenue gap.",
	})
}

// FormatMoney renders an amount with thousands separators and no trailing zeros.
func FormatMoney(v float64) string {
	return humanize.Commaf(v)
}
