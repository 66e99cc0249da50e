// ABOUTME: MCP resource handlers exposing workspace projections as JSON
// ABOUTME: Serves revenueos:// URIs for leads, deals, proposals, contracts, pipeline, dashboard, team and status
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
)

const uriScheme = "revenueos://"

// Resource is one registered revenueos:// document.
type Resource struct {
	Name        string
	Title       string
	Description string
}

// Resources lists every document ReadResource can serve.
var Resources = []Resource{
	{Name: "leads", Title: "Leads", Description: "Every lead with owner, urgency and due label"},
	{Name: "deals", Title: "Deals", Description: "Every deal decorated with its lead and risk status"},
	{Name: "proposals", Title: "Proposals", Description: "Latest proposals with signals, header stats and filters"},
	{Name: "contracts", Title: "Contracts", Description: "Risk-assessed contracts and the revenue summary"},
	{Name: "pipeline", Title: "Pipeline", Description: "Kanban columns, stage totals and manager stats"},
	{Name: "dashboard", Title: "Dashboard", Description: "Executive dashboard for the healthy scenario"},
	{Name: "team", Title: "Team", Description: "Team reps, momentum and coaching signals"},
	{Name: "status", Title: "Status", Description: "Workspace load report and entity counts"},
}

type ResourceHandlers struct {
	app *controllers.AppController
}

func NewResourceHandlers(app *controllers.AppController) *ResourceHandlers {
	return &ResourceHandlers{app: app}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", uriScheme)
	}
	name := strings.TrimPrefix(uri, uriScheme)

	v, err := h.document(name)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) document(name string) (any, error) {
	s := h.app.Store()
	st, now := s.Get(), s.Now()

	switch name {
	case "leads":
		return views.DisplayLeads(st, now), nil
	case "deals":
		return views.KanbanDeals(st, now), nil
	case "proposals":
		return views.BuildProposals(st, views.ProposalFilters{Status: views.StatusFilterAll, Quick: views.QuickNone}, now), nil
	case "contracts":
		return views.BuildContracts(st, views.StatusFilterAll, now), nil
	case "pipeline":
		return views.BuildPipeline(st, now), nil
	case "dashboard":
		return views.BuildDashboard(st.MonthlyGoal, views.ScenarioHealthy, views.SimulationInput{}, h.app.Dashboard.Layout(), now), nil
	case "team":
		roster := h.app.Roster()
		if roster == nil {
			return nil, fmt.Errorf("team roster is not loaded")
		}
		return TeamOutput{
			Leaderboard:     team.TabImprovement,
			Reps:            roster.Reps(),
			Momentum:        roster.Momentum(),
			CoachingSignals: roster.CoachingSignals(),
			Copilot:         roster.ManagerCopilot(),
		}, nil
	case "status":
		return h.app.Status(), nil
	default:
		return nil, fmt.Errorf("unknown resource: %s", name)
	}
}
