// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements list_leads, add_lead, update_lead, complete_lead_action and qualify_lead
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/views"
)

type LeadHandlers struct {
	app *controllers.AppController
}

func NewLeadHandlers(app *controllers.AppController) *LeadHandlers {
	return &LeadHandlers{app: app}
}

type LeadOutput struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Origin          string  `json:"origin"`
	Owner           string  `json:"owner"`
	Status          string  `json:"status"`
	NextAction      string  `json:"next_action"`
	DueDate         *string `json:"due_date,omitempty"`
	DueText         string  `json:"due_text"`
	Urgency         string  `json:"urgency"`
	ActionCompleted bool    `json:"action_completed"`
	Score           int     `json:"score"`
	Priority        string  `json:"priority,omitempty"`
	DealID          *int64  `json:"deal_id,omitempty"`
	UpdatedAt       string  `json:"updated_at"`
}

func leadToOutput(l views.DisplayLead) LeadOutput {
	return LeadOutput{
		ID:              l.ID,
		Name:            l.Name,
		Origin:          string(l.Origin),
		Owner:           l.OwnerName,
		Status:          string(l.Status),
		NextAction:      l.NextActionText,
		DueDate:         formatTimePtr(l.DueDate),
		DueText:         l.DueText,
		Urgency:         string(l.Urgency),
		ActionCompleted: l.ActionCompleted,
		Score:           l.Score,
		Priority:        string(l.Priority),
		DealID:          l.DealID,
		UpdatedAt:       formatTime(l.UpdatedAt),
	}
}

// displayLead decorates one lead the way the leads screen does.
func (h *LeadHandlers) displayLead(id int64) (LeadOutput, error) {
	s := h.app.Store()
	for _, l := range views.DisplayLeads(s.Get(), s.Now()) {
		if l.ID == id {
			return leadToOutput(l), nil
		}
	}
	return LeadOutput{}, fmt.Errorf("lead %d not found", id)
}

type ListLeadsInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"Filter: all, overdue, due-today, new, hot or an origin such as Instagram (default: the saved leads filter)"`
}

type ListLeadsOutput struct {
	Filter   string       `json:"filter"`
	Leads    []LeadOutput `json:"leads"`
	Count    int          `json:"count"`
	Overdue  int          `json:"overdue"`
	DueToday int          `json:"due_today"`
}

func (h *LeadHandlers) ListLeads(_ context.Context, _ *mcp.CallToolRequest, input ListLeadsInput) (*mcp.CallToolResult, ListLeadsOutput, error) {
	filter := input.Filter
	if filter == "" {
		filter = h.app.Leads.Filter()
	}
	if !views.ValidLeadFilter(filter) {
		return nil, ListLeadsOutput{}, fmt.Errorf("invalid filter: %s", filter)
	}
	s := h.app.Store()
	v := views.BuildLeads(s.Get(), filter, s.Now())

	out := ListLeadsOutput{
		Filter:   v.Filter,
		Leads:    make([]LeadOutput, 0, len(v.Leads)),
		Count:    v.Summary.Count,
		Overdue:  v.Summary.Overdue,
		DueToday: v.Summary.DueToday,
	}
	for _, l := range v.Leads {
		out.Leads = append(out.Leads, leadToOutput(l))
	}
	return nil, out, nil
}

type AddLeadInput struct {
	Name       string `json:"name" jsonschema:"Lead or company name (required)"`
	Origin     string `json:"origin" jsonschema:"Acquisition channel: Instagram, WhatsApp, Website, Referral or Other"`
	OwnerID    int64  `json:"owner_id" jsonschema:"ID of the owning rep"`
	NextAction string `json:"next_action" jsonschema:"The single next action for this lead"`
	DueDate    string `json:"due_date" jsonschema:"Due date of the next action (YYYY-MM-DD or RFC 3339)"`
}

func (h *LeadHandlers) AddLead(_ context.Context, _ *mcp.CallToolRequest, input AddLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	form := controllers.LeadForm{
		Name:       input.Name,
		Origin:     models.Origin(input.Origin),
		OwnerID:    input.OwnerID,
		NextAction: input.NextAction,
	}
	if input.DueDate != "" {
		due, err := parseDate(input.DueDate)
		if err != nil {
			return nil, LeadOutput{}, err
		}
		form.DueDate = &due
	}
	lead, err := h.app.Leads.Create(form)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	out, err := h.displayLead(lead.ID)
	return nil, out, err
}

type UpdateLeadInput struct {
	ID         int64   `json:"id" jsonschema:"Lead ID (required)"`
	OwnerID    *int64  `json:"owner_id,omitempty" jsonschema:"New owner rep ID"`
	Status     *string `json:"status,omitempty" jsonschema:"New status: New, In Progress, Qualified or Disqualified"`
	NextAction *string `json:"next_action,omitempty" jsonschema:"New next action text"`
	DueDate    *string `json:"due_date,omitempty" jsonschema:"New due date; an empty string clears it"`
	Notes      *string `json:"notes,omitempty" jsonschema:"Replacement notes"`
}

// UpdateLead applies a partial edit on top of the current lead, the way the
// detail panel saves its full form.
func (h *LeadHandlers) UpdateLead(_ context.Context, _ *mcp.CallToolRequest, input UpdateLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	lead, err := h.app.Store().Lead(input.ID)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	edit := controllers.LeadEdit{
		OwnerID:    lead.OwnerID,
		Status:     lead.Status,
		NextAction: lead.NextActionText,
		DueDate:    lead.DueDate,
		Notes:      lead.Notes,
	}
	if input.OwnerID != nil {
		edit.OwnerID = *input.OwnerID
	}
	if input.Status != nil {
		status, err := models.ParseLeadStatus(*input.Status)
		if err != nil {
			return nil, LeadOutput{}, err
		}
		edit.Status = status
	}
	if input.NextAction != nil {
		edit.NextAction = *input.NextAction
	}
	if input.DueDate != nil {
		edit.DueDate = nil
		if *input.DueDate != "" {
			due, err := parseDate(*input.DueDate)
			if err != nil {
				return nil, LeadOutput{}, err
			}
			edit.DueDate = &due
		}
	}
	if input.Notes != nil {
		edit.Notes = *input.Notes
	}
	if err := h.app.Leads.Update(input.ID, edit); err != nil {
		return nil, LeadOutput{}, err
	}
	out, err := h.displayLead(input.ID)
	return nil, out, err
}

type CompleteLeadActionInput struct {
	ID int64 `json:"id" jsonschema:"Lead ID (required)"`
}

// CompleteLeadAction toggles the next action, so a second call reopens it.
func (h *LeadHandlers) CompleteLeadAction(_ context.Context, _ *mcp.CallToolRequest, input CompleteLeadActionInput) (*mcp.CallToolResult, LeadOutput, error) {
	if _, err := h.app.Leads.ToggleComplete(input.ID); err != nil {
		return nil, LeadOutput{}, err
	}
	out, err := h.displayLead(input.ID)
	return nil, out, err
}

type QualifyLeadInput struct {
	ID      int64  `json:"id" jsonschema:"Lead ID (required)"`
	Budget  string `json:"budget" jsonschema:"High, Medium, Low or No budget"`
	Urgency string `json:"urgency" jsonschema:"Today, This week, This month or Just researching"`
	Fit     string `json:"fit" jsonschema:"Perfect fit, Partial fit or Not a fit"`
	Intent  string `json:"intent" jsonschema:"Asked for proposal, Book appointment, Pricing request or General inquiry"`
	Notes   string `json:"notes,omitempty" jsonschema:"Qualification notes"`
}

func (h *LeadHandlers) QualifyLead(_ context.Context, _ *mcp.CallToolRequest, input QualifyLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	lead, err := h.app.Inbox.Qualify(input.ID, models.Qualification{
		Budget:  models.Budget(input.Budget),
		Urgency: models.Urgency(input.Urgency),
		Fit:     models.Fit(input.Fit),
		Intent:  models.Intent(input.Intent),
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, LeadOutput{}, err
	}
	out, err := h.displayLead(lead.ID)
	return nil, out, err
}
