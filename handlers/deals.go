// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements move_deal, which runs the pipeline move dialog in one call
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/views"
)

type DealHandlers struct {
	app *controllers.AppController
}

func NewDealHandlers(app *controllers.AppController) *DealHandlers {
	return &DealHandlers{app: app}
}

type DealOutput struct {
	ID            int64   `json:"id"`
	LeadID        int64   `json:"lead_id"`
	LeadName      string  `json:"lead_name"`
	Owner         string  `json:"owner"`
	Stage         string  `json:"stage"`
	Value         float64 `json:"value"`
	SpecialStatus string  `json:"special_status,omitempty"`
	RiskStatus    string  `json:"risk_status"`
	DaysInStage   int     `json:"days_in_stage"`
	IsStalled     bool    `json:"is_stalled"`
	NextAction    string  `json:"next_action"`
	DueDate       *string `json:"due_date,omitempty"`
	LastActionAt  string  `json:"last_action_at"`
}

func dealToOutput(d views.KanbanDeal) DealOutput {
	return DealOutput{
		ID:            d.ID,
		LeadID:        d.LeadID,
		LeadName:      d.Lead.Name,
		Owner:         d.OwnerName,
		Stage:         string(d.Stage),
		Value:         d.Value,
		SpecialStatus: string(d.SpecialStatus),
		RiskStatus:    string(d.RiskStatus),
		DaysInStage:   d.DaysInStage,
		IsStalled:     d.IsStalled,
		NextAction:    d.Lead.NextActionText,
		DueDate:       formatTimePtr(d.Lead.DueDate),
		LastActionAt:  formatTime(d.LastActionAt),
	}
}

type MoveDealInput struct {
	ID         int64    `json:"id" jsonschema:"Deal ID (required)"`
	Stage      string   `json:"stage" jsonschema:"Target stage: New Lead, Contacted, Proposal Sent, Negotiation, Won or Lost"`
	NextAction string   `json:"next_action" jsonschema:"Next action for the lead after the move (required)"`
	DueDate    string   `json:"due_date,omitempty" jsonschema:"Due date of the next action (default: tomorrow)"`
	FinalValue *float64 `json:"final_value,omitempty" jsonschema:"Closing value when moving to Won"`
	LossReason string   `json:"loss_reason,omitempty" jsonschema:"Why the deal was lost when moving to Lost (default: Price)"`
}

func (h *DealHandlers) MoveDeal(_ context.Context, _ *mcp.CallToolRequest, input MoveDealInput) (*mcp.CallToolResult, DealOutput, error) {
	stage, err := models.ParseStage(input.Stage)
	if err != nil {
		return nil, DealOutput{}, err
	}
	deal, err := h.app.Store().Deal(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}
	p := h.app.Pipeline
	if err := p.OpenMove(input.ID, stage); err != nil {
		return nil, DealOutput{}, err
	}
	defer p.CancelMove()

	var editErr error
	p.EditMove(func(f *controllers.MoveForm) {
		f.NextAction = input.NextAction
		if input.DueDate != "" {
			due, err := parseDate(input.DueDate)
			if err != nil {
				editErr = err
				return
			}
			f.DueDate = &due
		}
		f.FinalValue = deal.Value
		if input.FinalValue != nil {
			f.FinalValue = *input.FinalValue
		}
		if input.LossReason != "" {
			f.LossReason = input.LossReason
		}
	})
	if editErr != nil {
		return nil, DealOutput{}, editErr
	}
	if err := p.SaveMove(); err != nil {
		return nil, DealOutput{}, err
	}

	s := h.app.Store()
	moved, ok := views.KanbanDealFor(s.Get(), input.ID, s.Now())
	if !ok {
		return nil, DealOutput{}, fmt.Errorf("deal %d not found", input.ID)
	}
	return nil, dealToOutput(moved), nil
}
