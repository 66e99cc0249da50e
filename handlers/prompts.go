// ABOUTME: MCP prompt handlers for reusable sales workflow templates
// ABOUTME: Provides deal-coaching, pipeline-review and follow-up-plan prompts
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/views"
)

type PromptHandlers struct {
	app *controllers.AppController
}

func NewPromptHandlers(app *controllers.AppController) *PromptHandlers {
	return &PromptHandlers{app: app}
}

// Prompts describes every prompt GetPrompt can render.
var Prompts = []*mcp.Prompt{
	{
		Name:        "deal-coaching",
		Description: "Coach a rep through the next step of one deal",
		Arguments: []*mcp.PromptArgument{
			{Name: "deal_id", Description: "Deal to coach on", Required: true},
			{Name: "trigger", Description: "What the client just said or did"},
		},
	},
	{
		Name:        "pipeline-review",
		Description: "Review the pipeline stage by stage against the monthly goal",
	},
	{
		Name:        "follow-up-plan",
		Description: "Plan today's follow-ups from overdue leads and viewed proposals",
	},
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "deal-coaching":
		return h.dealCoaching(request.Params.Arguments)
	case "pipeline-review":
		return h.pipelineReview()
	case "follow-up-plan":
		return h.followUpPlan()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}

func (h *PromptHandlers) dealCoaching(args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["deal_id"]
	if !ok {
		return nil, fmt.Errorf("deal_id is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid deal_id: %w", err)
	}
	s := h.app.Store()
	deal, ok := views.KanbanDealFor(s.Get(), id, s.Now())
	if !ok {
		return nil, fmt.Errorf("deal %d not found", id)
	}

	var b strings.Builder
	b.WriteString("Coach the sales rep on the next step for this deal:\n\n")
	fmt.Fprintf(&b, "Client: %s\n", deal.Lead.Name)
	fmt.Fprintf(&b, "Owner: %s\n", deal.OwnerName)
	fmt.Fprintf(&b, "Stage: %s (%d days in stage)\n", deal.Stage, deal.DaysInStage)
	fmt.Fprintf(&b, "Value: $%s\n", views.FormatMoney(deal.Value))
	fmt.Fprintf(&b, "Risk: %s\n", deal.RiskStatus)
	if deal.SpecialStatus != "" {
		fmt.Fprintf(&b, "Special status: %s\n", deal.SpecialStatus)
	}
	fmt.Fprintf(&b, "Next action: %s\n", deal.Lead.NextActionText)
	if trigger := args["trigger"]; trigger != "" {
		fmt.Fprintf(&b, "\nThe client just said: %q\n", trigger)
	}
	if len(deal.Lead.ActivityLog) > 0 {
		b.WriteString("\nRecent activity:\n")
		for i, a := range deal.Lead.ActivityLog {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", a.Timestamp.Format("Jan 2"), a.Description)
		}
	}
	b.WriteString("\nSuggest one concrete next action, a short message script and how to handle the most likely objection.")
	return userPrompt(fmt.Sprintf("Coaching for deal %d", id), b.String()), nil
}

func (h *PromptHandlers) pipelineReview() (*mcp.GetPromptResult, error) {
	s := h.app.Store()
	st := s.Get()
	p := views.BuildPipeline(st, s.Now())

	var b strings.Builder
	b.WriteString("Review this sales pipeline and point out where revenue is at risk:\n\n")
	fmt.Fprintf(&b, "Monthly goal: $%s\n", views.FormatMoney(st.MonthlyGoal))
	fmt.Fprintf(&b, "Open pipeline: $%s\n", views.FormatMoney(p.PipelineValue))
	fmt.Fprintf(&b, "Expected revenue: $%s\n", views.FormatMoney(p.ExpectedRevenue))
	fmt.Fprintf(&b, "Gap to goal: $%s\n\n", views.FormatMoney(p.GapToGoal))
	for _, col := range p.Columns {
		fmt.Fprintf(&b, "%s (%d deals, $%s)\n", col.Stage, len(col.Deals), views.FormatMoney(col.Value))
		for _, d := range col.Deals {
			flag := ""
			if d.IsStalled {
				flag = " [stalled]"
			}
			fmt.Fprintf(&b, "  - %s: $%s, risk %s%s\n", d.Lead.Name, views.FormatMoney(d.Value), d.RiskStatus, flag)
		}
	}
	if p.Manager.Bottleneck != "" {
		fmt.Fprintf(&b, "\nBottleneck stage: %s\n", p.Manager.Bottleneck)
	}
	b.WriteString("\nRank the three deals that most need attention and say why.")
	return userPrompt("Pipeline review", b.String()), nil
}

func (h *PromptHandlers) followUpPlan() (*mcp.GetPromptResult, error) {
	t := h.app.Today()

	var b strings.Builder
	b.WriteString("Plan today's follow-ups for this rep:\n\n")
	if len(t.OverdueFollowUps) == 0 && len(t.ProposalsNeedingFollowUp) == 0 && len(t.NoContact) == 0 {
		b.WriteString("Nothing is overdue today.\n")
	}
	if len(t.OverdueFollowUps) > 0 {
		b.WriteString("Overdue follow-ups:\n")
		for _, l := range t.OverdueFollowUps {
			fmt.Fprintf(&b, "- %s: %q, %d days overdue\n", l.Name, l.NextActionText, l.DaysOverdue)
		}
	}
	if len(t.ProposalsNeedingFollowUp) > 0 {
		b.WriteString("Proposals viewed but not answered:\n")
		for _, p := range t.ProposalsNeedingFollowUp {
			fmt.Fprintf(&b, "- %s (v%d, $%s): last viewed %s\n", p.LeadName, p.Version, views.FormatMoney(p.Value), p.LastViewedText)
		}
	}
	if len(t.NoContact) > 0 {
		b.WriteString("New leads not contacted yet:\n")
		for _, l := range t.NoContact {
			fmt.Fprintf(&b, "- %s via %s\n", l.Name, l.Origin)
		}
	}
	b.WriteString("\nOrder these by urgency and draft a one-line message for each.")
	return userPrompt("Follow-up plan for today", b.String()), nil
}
