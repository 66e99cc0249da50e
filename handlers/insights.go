// ABOUTME: Read-side MCP tool handlers for the dashboard, today list and team
// ABOUTME: Implements get_dashboard, get_today, get_team, forecast_simulation and toggle_flow
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
)

type InsightHandlers struct {
	app *controllers.AppController
}

func NewInsightHandlers(app *controllers.AppController) *InsightHandlers {
	return &InsightHandlers{app: app}
}

func parseScenario(s string) (views.Scenario, error) {
	if s == "" {
		return views.ScenarioHealthy, nil
	}
	return views.ParseScenario(s)
}

type GetDashboardInput struct {
	Scenario string `json:"scenario,omitempty" jsonschema:"healthy, risk or recovery (default healthy)"`
}

func (h *InsightHandlers) GetDashboard(_ context.Context, _ *mcp.CallToolRequest, input GetDashboardInput) (*mcp.CallToolResult, any, error) {
	scenario, err := parseScenario(input.Scenario)
	if err != nil {
		return nil, nil, err
	}
	s := h.app.Store()
	d := views.BuildDashboard(s.Get().MonthlyGoal, scenario, views.SimulationInput{}, h.app.Dashboard.Layout(), s.Now())
	return nil, d, nil
}

type GetTodayInput struct{}

func (h *InsightHandlers) GetToday(_ context.Context, _ *mcp.CallToolRequest, _ GetTodayInput) (*mcp.CallToolResult, any, error) {
	return nil, h.app.Today(), nil
}

type GetTeamInput struct {
	Leaderboard string `json:"leaderboard,omitempty" jsonschema:"improvement, consistency, response_time or top_closer (default improvement)"`
}

type TeamOutput struct {
	Leaderboard     team.LeaderboardTab `json:"leaderboard"`
	Reps            []team.Rep          `json:"reps"`
	Momentum        team.Momentum       `json:"momentum"`
	CoachingSignals []team.Rep          `json:"coaching_signals"`
	Copilot         team.Copilot        `json:"manager_copilot"`
}

func (h *InsightHandlers) GetTeam(_ context.Context, _ *mcp.CallToolRequest, input GetTeamInput) (*mcp.CallToolResult, any, error) {
	roster := h.app.Roster()
	if roster == nil {
		return nil, nil, fmt.Errorf("team roster is not loaded")
	}
	tab := team.TabImprovement
	if input.Leaderboard != "" {
		t, err := team.ParseLeaderboardTab(input.Leaderboard)
		if err != nil {
			return nil, nil, err
		}
		tab = t
	}
	return nil, TeamOutput{
		Leaderboard:     tab,
		Reps:            roster.Leaderboard(tab),
		Momentum:        roster.Momentum(),
		CoachingSignals: roster.CoachingSignals(),
		Copilot:         roster.ManagerCopilot(),
	}, nil
}

type ForecastSimulationInput struct {
	Scenario     string  `json:"scenario,omitempty" jsonschema:"healthy, risk or recovery (default healthy)"`
	WinRateDelta float64 `json:"win_rate_delta,omitempty" jsonschema:"Win rate change in percentage points applied to open deals"`
	ClosedDeals  int     `json:"closed_deals,omitempty" jsonschema:"Number of extra deals assumed closed at negotiation odds"`
}

type ForecastSimulationOutput struct {
	Scenario          string  `json:"scenario"`
	MonthlyGoal       float64 `json:"monthly_goal"`
	Forecast          float64 `json:"forecast"`
	GapToGoal         float64 `json:"gap_to_goal"`
	WinRateDelta      float64 `json:"win_rate_delta"`
	ClosedDeals       int     `json:"closed_deals"`
	SimulatedForecast float64 `json:"simulated_forecast"`
	SimulatedGap      float64 `json:"simulated_gap"`
}

func (h *InsightHandlers) ForecastSimulation(_ context.Context, _ *mcp.CallToolRequest, input ForecastSimulationInput) (*mcp.CallToolResult, ForecastSimulationOutput, error) {
	scenario, err := parseScenario(input.Scenario)
	if err != nil {
		return nil, ForecastSimulationOutput{}, err
	}
	if input.ClosedDeals < 0 {
		return nil, ForecastSimulationOutput{}, fmt.Errorf("closed_deals cannot be negative")
	}
	s := h.app.Store()
	sim := views.SimulationInput{WinRateDelta: input.WinRateDelta, ClosedDeals: input.ClosedDeals}
	d := views.BuildDashboard(s.Get().MonthlyGoal, scenario, sim, h.app.Dashboard.Layout(), s.Now())
	return nil, ForecastSimulationOutput{
		Scenario:          string(d.Scenario),
		MonthlyGoal:       d.MonthlyGoal,
		Forecast:          d.Forecast,
		GapToGoal:         d.GapToGoal,
		WinRateDelta:      d.Simulation.WinRateDelta,
		ClosedDeals:       d.Simulation.ClosedDeals,
		SimulatedForecast: d.Simulation.Forecast,
		SimulatedGap:      d.Simulation.Gap,
	}, nil
}

type ToggleFlowInput struct {
	FlowID string `json:"flow_id" jsonschema:"Automation flow ID such as wa-1 (required)"`
}

type ToggleFlowOutput struct {
	FlowID string `json:"flow_id"`
	Active bool   `json:"active"`
}

func (h *InsightHandlers) ToggleFlow(_ context.Context, _ *mcp.CallToolRequest, input ToggleFlowInput) (*mcp.CallToolResult, ToggleFlowOutput, error) {
	active, err := h.app.Integrations.ToggleFlow(input.FlowID)
	if err != nil {
		return nil, ToggleFlowOutput{}, err
	}
	return nil, ToggleFlowOutput{FlowID: input.FlowID, Active: active}, nil
}
