// ABOUTME: Proposal MCP tool handlers
// ABOUTME: Implements simulate_proposal_view, create_proposal_revision and update_proposal_status
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

type ProposalHandlers struct {
	app *controllers.AppController
}

func NewProposalHandlers(app *controllers.AppController) *ProposalHandlers {
	return &ProposalHandlers{app: app}
}

type ProposalOutput struct {
	ID             int64    `json:"id"`
	DealID         int64    `json:"deal_id"`
	LeadName       string   `json:"lead_name"`
	Value          float64  `json:"value"`
	Status         string   `json:"status"`
	Version        int      `json:"version"`
	IsLatest       bool     `json:"is_latest"`
	ViewCount      int      `json:"view_count"`
	LastViewedAt   *string  `json:"last_viewed_at,omitempty"`
	SentAt         *string  `json:"sent_at,omitempty"`
	ValidUntil     string   `json:"valid_until"`
	Signals        []string `json:"ai_signals"`
	FollowUpStatus string   `json:"follow_up_status"`
	LastActivity   string   `json:"last_activity"`
	Link           string   `json:"link"`
}

func (h *ProposalHandlers) proposalToOutput(p models.Proposal) ProposalOutput {
	signals := make([]string, 0, len(p.Signals))
	for _, s := range p.Signals {
		signals = append(signals, string(s))
	}
	return ProposalOutput{
		ID:             p.ID,
		DealID:         p.DealID,
		LeadName:       p.LeadName,
		Value:          p.Value,
		Status:         string(p.Status),
		Version:        p.Version,
		IsLatest:       p.IsLatest,
		ViewCount:      p.ViewCount,
		LastViewedAt:   formatTimePtr(p.LastViewedAt),
		SentAt:         formatTimePtr(p.SentAt),
		ValidUntil:     formatTime(p.ValidUntil),
		Signals:        signals,
		FollowUpStatus: string(p.FollowUpStatus),
		LastActivity:   views.LastActivity(p, h.app.Store().Now()),
		Link:           views.ProposalLink(p.ID),
	}
}

type ProposalIDInput struct {
	ID int64 `json:"id" jsonschema:"Proposal ID (required)"`
}

// SimulateProposalView records a client opening the proposal link.
func (h *ProposalHandlers) SimulateProposalView(_ context.Context, _ *mcp.CallToolRequest, input ProposalIDInput) (*mcp.CallToolResult, ProposalOutput, error) {
	p, err := h.app.Proposals.SimulateView(input.ID)
	if err != nil {
		return nil, ProposalOutput{}, err
	}
	return nil, h.proposalToOutput(p), nil
}

func (h *ProposalHandlers) CreateProposalRevision(_ context.Context, _ *mcp.CallToolRequest, input ProposalIDInput) (*mcp.CallToolResult, ProposalOutput, error) {
	rev, err := h.app.Proposals.Act(input.ID, controllers.ActionDuplicate)
	if err != nil {
		return nil, ProposalOutput{}, err
	}
	return nil, h.proposalToOutput(rev), nil
}

type UpdateProposalStatusInput struct {
	ID     int64  `json:"id" jsonschema:"Proposal ID (required)"`
	Status string `json:"status" jsonschema:"Draft, Sent, Viewed, Negotiation, Accepted, Expired or Replaced"`
}

func (h *ProposalHandlers) UpdateProposalStatus(_ context.Context, _ *mcp.CallToolRequest, input UpdateProposalStatusInput) (*mcp.CallToolResult, ProposalOutput, error) {
	status, err := models.ParseProposalStatus(input.Status)
	if err != nil {
		return nil, ProposalOutput{}, err
	}
	s := h.app.Store()
	patch := store.ProposalPatch{Status: &status}
	if status == models.ProposalSent {
		now := s.Now()
		patch.SentAt = &now
	}
	if err := s.UpdateProposal(input.ID, patch); err != nil {
		return nil, ProposalOutput{}, err
	}
	p, err := s.Proposal(input.ID)
	if err != nil {
		return nil, ProposalOutput{}, err
	}
	return nil, h.proposalToOutput(p), nil
}
