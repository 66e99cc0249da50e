// ABOUTME: Contract MCP tool handlers
// ABOUTME: Implements generate_contract and update_contract_status
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

type ContractHandlers struct {
	app *controllers.AppController
}

func NewContractHandlers(app *controllers.AppController) *ContractHandlers {
	return &ContractHandlers{app: app}
}

type ContractOutput struct {
	ID           int64   `json:"id"`
	ProposalID   int64   `json:"proposal_id"`
	DealID       int64   `json:"deal_id"`
	LeadName     string  `json:"lead_name"`
	LegalName    string  `json:"legal_name"`
	Value        float64 `json:"value"`
	ContractType string  `json:"contract_type"`
	Status       string  `json:"status"`
	RiskLevel    string  `json:"risk_level"`
	RevenueState string  `json:"revenue_state"`
	AISignal     string  `json:"ai_signal"`
	CreatedAt    string  `json:"created_at"`
	SentAt       *string `json:"sent_at,omitempty"`
	SignedAt     *string `json:"signed_at,omitempty"`
}

func (h *ContractHandlers) contractToOutput(c models.Contract) ContractOutput {
	risk := insights.ContractRisk(c, h.app.Store().Now())
	return ContractOutput{
		ID:           c.ID,
		ProposalID:   c.ProposalID,
		DealID:       c.DealID,
		LeadName:     c.LeadName,
		LegalName:    c.LegalName,
		Value:        c.Value,
		ContractType: string(c.ContractType),
		Status:       string(c.Status),
		RiskLevel:    string(risk.RiskLevel),
		RevenueState: string(risk.RevenueState),
		AISignal:     risk.AISignal,
		CreatedAt:    formatTime(c.CreatedAt),
		SentAt:       formatTimePtr(c.SentAt),
		SignedAt:     formatTimePtr(c.SignedAt),
	}
}

type GenerateContractInput struct {
	ProposalID   int64  `json:"proposal_id" jsonschema:"Accepted proposal to generate the contract from (required)"`
	ContractType string `json:"contract_type,omitempty" jsonschema:"one-time, recurring or milestone (default one-time)"`
	LegalName    string `json:"legal_name,omitempty" jsonschema:"Client legal name (default: lead name + Inc.)"`
}

func (h *ContractHandlers) GenerateContract(_ context.Context, _ *mcp.CallToolRequest, input GenerateContractInput) (*mcp.CallToolResult, ContractOutput, error) {
	c := h.app.Contracts
	if _, err := c.SelectProposal(input.ProposalID); err != nil {
		return nil, ContractOutput{}, err
	}
	c.EditForm(func(f *controllers.ContractForm) {
		if input.ContractType != "" {
			f.ContractType = models.ContractType(input.ContractType)
		}
		if input.LegalName != "" {
			f.LegalName = input.LegalName
		}
	})
	created, err := c.Generate()
	if err != nil {
		return nil, ContractOutput{}, err
	}
	return nil, h.contractToOutput(created), nil
}

type UpdateContractStatusInput struct {
	ID      int64  `json:"id" jsonschema:"Contract ID (required)"`
	Status  string `json:"status" jsonschema:"Draft, Generated, Sent, Viewed, Signed, Active, At Risk, Completed or Cancelled"`
	Confirm bool   `json:"confirm,omitempty" jsonschema:"Must be true to cancel a contract"`
}

func (h *ContractHandlers) UpdateContractStatus(_ context.Context, _ *mcp.CallToolRequest, input UpdateContractStatusInput) (*mcp.CallToolResult, ContractOutput, error) {
	err := h.app.Contracts.SetStatus(input.ID, models.ContractStatus(input.Status), input.Confirm)
	if errors.Is(err, controllers.ErrConfirmationRequired) {
		return nil, ContractOutput{}, fmt.Errorf("cancelling contract %d needs confirm=true", input.ID)
	}
	if err != nil {
		return nil, ContractOutput{}, err
	}
	c, err := h.app.Store().Contract(input.ID)
	if err != nil {
		return nil, ContractOutput{}, err
	}
	return nil, h.contractToOutput(c), nil
}
