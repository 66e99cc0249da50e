// ABOUTME: MCP server construction for Revenue OS
// ABOUTME: Registers every tool, resource and prompt against one app controller
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
)

// NewServer builds an MCP server whose tools act on app.
func NewServer(app *controllers.AppController, version string) *mcp.Server {
	leadHandlers := NewLeadHandlers(app)
	dealHandlers := NewDealHandlers(app)
	proposalHandlers := NewProposalHandlers(app)
	contractHandlers := NewContractHandlers(app)
	insightHandlers := NewInsightHandlers(app)
	resourceHandlers := NewResourceHandlers(app)
	promptHandlers := NewPromptHandlers(app)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "revenueos",
		Version: version,
	}, nil)

	// Leads
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_leads",
		Description: "List leads with owner, urgency and due labels, optionally filtered",
	}, leadHandlers.ListLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_lead",
		Description: "Create a new lead with its first next action",
	}, leadHandlers.AddLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_lead",
		Description: "Change a lead's owner, status, next action, due date or notes",
	}, leadHandlers.UpdateLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_lead_action",
		Description: "Toggle the completion of a lead's next action",
	}, leadHandlers.CompleteLeadAction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "qualify_lead",
		Description: "Record budget, urgency, fit and intent answers and score the lead",
	}, leadHandlers.QualifyLead)

	// Deals
	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal",
		Description: "Move a deal to another pipeline stage and set the lead's next action",
	}, dealHandlers.MoveDeal)

	// Proposals
	mcp.AddTool(server, &mcp.Tool{
		Name:        "simulate_proposal_view",
		Description: "Record a client viewing a proposal",
	}, proposalHandlers.SimulateProposalView)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_proposal_revision",
		Description: "Create a new draft version of a proposal, replacing the current latest",
	}, proposalHandlers.CreateProposalRevision)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_proposal_status",
		Description: "Set a proposal's status",
	}, proposalHandlers.UpdateProposalStatus)

	// Contracts
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_contract",
		Description: "Generate a contract from a proposal",
	}, contractHandlers.GenerateContract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contract_status",
		Description: "Set a contract's status; cancelling requires confirm=true",
	}, contractHandlers.UpdateContractStatus)

	// Insights
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_flow",
		Description: "Activate or deactivate an integration automation flow",
	}, insightHandlers.ToggleFlow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Executive dashboard: forecast, gap to goal, funnel, channels and recommendations",
	}, insightHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_today",
		Description: "Today's action list: hot leads, overdue follow-ups, stalled deals",
	}, insightHandlers.GetToday)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team",
		Description: "Team leaderboard, momentum, coaching signals and manager copilot",
	}, insightHandlers.GetTeam)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "forecast_simulation",
		Description: "What-if forecast for a win rate change and a number of closed deals",
	}, insightHandlers.ForecastSimulation)

	for _, r := range Resources {
		server.AddResource(&mcp.Resource{
			Name:        r.Name,
			Title:       r.Title,
			Description: r.Description,
			MIMEType:    "application/json",
			URI:         uriScheme + r.Name,
		}, resourceHandlers.ReadResource)
	}

	for _, p := range Prompts {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}
