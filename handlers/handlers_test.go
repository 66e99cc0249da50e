// ABOUTME: Integration tests for the MCP server over in-memory transports
// ABOUTME: Exercises every tool, the revenueos:// resources and the prompts
package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
)

var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func setupSession(t *testing.T) (*mcp.ClientSession, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), store.WithClock(func() time.Time { return refNow }))
	require.NoError(t, s.Load())
	roster, err := team.Open(s.Backend(), s.Get().TeamPerformance, 7, refNow, nil)
	require.NoError(t, err)
	app := controllers.NewApp(s, notify.New(notify.WithDuration(time.Hour)), roster)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err = NewServer(app, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session, s
}

// callTool calls a tool, fails on a tool error and decodes the JSON reply into out.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, name)
	require.NotEmpty(t, result.Content, name)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	require.False(t, result.IsError, "%s returned error: %s", name, tc.Text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(tc.Text), out))
	}
}

// callToolExpectError returns the error text of a failed tool call.
func callToolExpectError(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, name)
	require.True(t, result.IsError, "%s: expected an error", name)
	return result.Content[0].(*mcp.TextContent).Text
}

func TestListTools(t *testing.T) {
	session, _ := setupSession(t)
	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_leads", "add_lead", "update_lead", "complete_lead_action", "qualify_lead",
		"move_deal", "simulate_proposal_view", "create_proposal_revision", "update_proposal_status",
		"generate_contract", "update_contract_status", "toggle_flow",
		"get_dashboard", "get_today", "get_team", "forecast_simulation",
	}, names)
}

func TestListLeadsTool(t *testing.T) {
	session, _ := setupSession(t)

	var all ListLeadsOutput
	callTool(t, session, "list_leads", map[string]any{}, &all)
	assert.Equal(t, "all", all.Filter)
	assert.Len(t, all.Leads, 6)
	assert.Equal(t, 6, all.Count)

	var hot ListLeadsOutput
	callTool(t, session, "list_leads", map[string]any{"filter": "hot"}, &hot)
	for _, l := range hot.Leads {
		assert.GreaterOrEqual(t, l.Score, 75)
	}

	msg := callToolExpectError(t, session, "list_leads", map[string]any{"filter": "bogus"})
	assert.Contains(t, msg, "invalid filter")
}

func TestAddLeadTool(t *testing.T) {
	session, s := setupSession(t)

	var lead LeadOutput
	callTool(t, session, "add_lead", map[string]any{
		"name": "Acme", "origin": "Referral", "owner_id": 2, "next_action": "Intro call", "due_date": "2026-03-20",
	}, &lead)
	assert.Equal(t, "Acme", lead.Name)
	assert.Equal(t, "Bruno Costa", lead.Owner)
	assert.Equal(t, "New", lead.Status)
	require.NotNil(t, lead.DueDate)
	assert.Equal(t, "2026-03-20T00:00:00Z", *lead.DueDate)
	assert.Len(t, s.Get().Leads, 7)

	msg := callToolExpectError(t, session, "add_lead", map[string]any{
		"name": "", "origin": "Referral", "owner_id": 2, "next_action": "Intro call", "due_date": "2026-03-20",
	})
	assert.Contains(t, msg, "Please fill in all required fields.")

	msg = callToolExpectError(t, session, "add_lead", map[string]any{
		"name": "Acme", "origin": "Referral", "owner_id": 2, "next_action": "Intro call", "due_date": "next week",
	})
	assert.Contains(t, msg, "invalid date")
}

func TestUpdateLeadTool(t *testing.T) {
	session, s := setupSession(t)

	var lead LeadOutput
	callTool(t, session, "update_lead", map[string]any{"id": 2, "status": "Disqualified", "notes": "No budget"}, &lead)
	assert.Equal(t, "Disqualified", lead.Status)
	assert.Equal(t, "Follow-up on proposal", lead.NextAction, "untouched fields keep their value")
	require.NotNil(t, lead.DueDate)

	stored, err := s.Lead(2)
	require.NoError(t, err)
	assert.Equal(t, "No budget", stored.Notes)
	assert.Equal(t, "Lead details updated.", stored.ActivityLog[0].Description)

	callTool(t, session, "update_lead", map[string]any{"id": 2, "due_date": ""}, &lead)
	assert.Nil(t, lead.DueDate)

	callToolExpectError(t, session, "update_lead", map[string]any{"id": 2, "status": "Won"})
	callToolExpectError(t, session, "update_lead", map[string]any{"id": 999})
}

func TestCompleteLeadActionTool(t *testing.T) {
	session, _ := setupSession(t)

	var lead LeadOutput
	callTool(t, session, "complete_lead_action", map[string]any{"id": 1}, &lead)
	assert.True(t, lead.ActionCompleted)
	assert.Equal(t, "completed", lead.Urgency)

	callTool(t, session, "complete_lead_action", map[string]any{"id": 1}, &lead)
	assert.False(t, lead.ActionCompleted)
}

func TestQualifyLeadTool(t *testing.T) {
	session, _ := setupSession(t)

	var lead LeadOutput
	callTool(t, session, "qualify_lead", map[string]any{
		"id": 6, "budget": "High", "urgency": "Today", "fit": "Perfect fit", "intent": "Asked for proposal",
	}, &lead)
	assert.Equal(t, 100, lead.Score)
	assert.Equal(t, "Hot", lead.Priority)
	assert.Equal(t, "Qualified", lead.Status)
}

func TestMoveDealTool(t *testing.T) {
	session, s := setupSession(t)

	var deal DealOutput
	callTool(t, session, "move_deal", map[string]any{"id": 104, "stage": "Contacted", "next_action": "Send pricing"}, &deal)
	assert.Equal(t, "Contacted", deal.Stage)
	assert.Equal(t, "Send pricing", deal.NextAction)
	require.NotNil(t, deal.DueDate)
	assert.Equal(t, "2026-03-19T00:00:00Z", *deal.DueDate)

	lead, err := s.Lead(4)
	require.NoError(t, err)
	assert.Equal(t, `Deal moved to Contacted. Next action: "Send pricing"`, lead.ActivityLog[0].Description)

	callTool(t, session, "move_deal", map[string]any{"id": 101, "stage": "Won", "next_action": "Kickoff", "final_value": 17500}, &deal)
	assert.Equal(t, "Won", deal.Stage)
	assert.Equal(t, 17500.0, deal.Value)

	msg := callToolExpectError(t, session, "move_deal", map[string]any{"id": 102, "stage": "Lost", "next_action": ""})
	assert.Contains(t, msg, "Next Action and Due Date are mandatory.")
	callToolExpectError(t, session, "move_deal", map[string]any{"id": 102, "stage": "Closed", "next_action": "x"})
}

func TestProposalTools(t *testing.T) {
	session, _ := setupSession(t)

	var p ProposalOutput
	callTool(t, session, "simulate_proposal_view", map[string]any{"id": 203}, &p)
	assert.Equal(t, "Viewed", p.Status)
	assert.Equal(t, 1, p.ViewCount)
	assert.Equal(t, "needed", p.FollowUpStatus)

	callTool(t, session, "create_proposal_revision", map[string]any{"id": 201}, &p)
	assert.Equal(t, 3, p.Version)
	assert.Equal(t, "Draft", p.Status)
	assert.True(t, p.IsLatest)

	callTool(t, session, "update_proposal_status", map[string]any{"id": 205, "status": "Sent"}, &p)
	assert.Equal(t, "Sent", p.Status)
	require.NotNil(t, p.SentAt)
	assert.Equal(t, "2026-03-18T14:30:00Z", *p.SentAt)

	callToolExpectError(t, session, "update_proposal_status", map[string]any{"id": 205, "status": "Lost"})
}

func TestContractTools(t *testing.T) {
	session, s := setupSession(t)

	var c ContractOutput
	callTool(t, session, "generate_contract", map[string]any{"proposal_id": 204, "contract_type": "recurring"}, &c)
	assert.Equal(t, "Generated", c.Status)
	assert.Equal(t, "recurring", c.ContractType)
	assert.Equal(t, "Global Logistics Inc.", c.LegalName)
	assert.Equal(t, 25000.0, c.Value)
	assert.Len(t, s.Get().Contracts, 5)

	msg := callToolExpectError(t, session, "update_contract_status", map[string]any{"id": 302, "status": "Cancelled"})
	assert.Contains(t, msg, "confirm=true")

	callTool(t, session, "update_contract_status", map[string]any{"id": 302, "status": "Cancelled", "confirm": true}, &c)
	assert.Equal(t, "Cancelled", c.Status)
}

func TestToggleFlowTool(t *testing.T) {
	session, _ := setupSession(t)

	var out ToggleFlowOutput
	callTool(t, session, "toggle_flow", map[string]any{"flow_id": "wa-1"}, &out)
	assert.False(t, out.Active)

	callToolExpectError(t, session, "toggle_flow", map[string]any{"flow_id": "nope"})
}

func TestDashboardTools(t *testing.T) {
	session, _ := setupSession(t)

	var dash map[string]any
	callTool(t, session, "get_dashboard", map[string]any{}, &dash)
	assert.Equal(t, "healthy", dash["scenario"])
	assert.Equal(t, 60000.0, dash["pipelineValue"])
	assert.Equal(t, 36250.0, dash["forecastedRevenue"])

	callToolExpectError(t, session, "get_dashboard", map[string]any{"scenario": "boom"})

	var sim ForecastSimulationOutput
	callTool(t, session, "forecast_simulation", map[string]any{"win_rate_delta": 10, "closed_deals": 1}, &sim)
	assert.Equal(t, 36250.0, sim.Forecast)
	assert.Equal(t, 213750.0, sim.GapToGoal)
	assert.Greater(t, sim.SimulatedForecast, sim.Forecast)

	callToolExpectError(t, session, "forecast_simulation", map[string]any{"closed_deals": -1})
}

func TestTodayAndTeamTools(t *testing.T) {
	session, _ := setupSession(t)

	var today map[string]any
	callTool(t, session, "get_today", map[string]any{}, &today)
	assert.Contains(t, today, "overdueFollowUps")
	assert.Contains(t, today, "checklist")

	var tm struct {
		Leaderboard string           `json:"leaderboard"`
		Reps        []map[string]any `json:"reps"`
	}
	callTool(t, session, "get_team", map[string]any{"leaderboard": "top_closer"}, &tm)
	assert.Equal(t, "top_closer", tm.Leaderboard)
	assert.Len(t, tm.Reps, 3)

	callToolExpectError(t, session, "get_team", map[string]any{"leaderboard": "fastest"})
}

func TestResources(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	list, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list.Resources, len(Resources))

	for _, r := range Resources {
		res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uriScheme + r.Name})
		require.NoError(t, err, r.Name)
		require.Len(t, res.Contents, 1)
		assert.Equal(t, "application/json", res.Contents[0].MIMEType)
		assert.True(t, json.Valid([]byte(res.Contents[0].Text)), r.Name)
	}

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "revenueos://status"})
	require.NoError(t, err)
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &status))
	assert.Equal(t, 6.0, status["leads"])
	assert.Equal(t, "seed", status["source"])
}

func TestReadResourceRejectsUnknownURI(t *testing.T) {
	h := NewResourceHandlers(nil)
	_, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "crm://contacts"}})
	assert.ErrorContains(t, err, "invalid URI scheme")
}

func TestPrompts(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	list, err := session.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list.Prompts, 3)

	res, err := session.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "deal-coaching",
		Arguments: map[string]string{"deal_id": "101", "trigger": "It's too expensive"},
	})
	require.NoError(t, err)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Client: Tech Solutions Ltda")
	assert.Contains(t, text, "Stage: Proposal Sent")
	assert.Contains(t, text, "Value: $15,000")
	assert.Contains(t, text, `"It's too expensive"`)

	res, err = session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "pipeline-review"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "Monthly goal: $250,000")

	res, err = session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "follow-up-plan"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "Tech Solutions Ltda")

	_, err = session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "deal-coaching", Arguments: map[string]string{"deal_id": "999"}})
	assert.Error(t, err)
}
