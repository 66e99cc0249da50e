// ABOUTME: Contracts screen controller for the status filter, row actions and generation
// ABOUTME: Cancelling requires confirmation; generation starts from an accepted proposal

package controllers

import (
	"fmt"
	"sync"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

const (
	ContractResend     = "resend"
	ContractMarkActive = "mark_active"
	ContractCancel     = "cancel"
)

// ContractForm is the "generate contract" panel.
type ContractForm struct {
	ProposalID   int64               `json:"proposalId"`
	DealID       int64               `json:"dealId"`
	LeadName     string              `json:"leadName"`
	Value        float64             `json:"value"`
	ContractType models.ContractType `json:"contractType"`
	LegalName    string              `json:"legalName"`
}

type ContractsController struct {
	store  *store.Store
	toasts *notify.Service
	prefs  *store.Prefs

	mu   sync.Mutex
	form ContractForm
}

func NewContractsController(s *store.Store, toasts *notify.Service) *ContractsController {
	return &ContractsController{store: s, toasts: toasts, prefs: s.Prefs(), form: newContractForm()}
}

func newContractForm() ContractForm {
	return ContractForm{ContractType: models.ContractOneTime}
}

func (c *ContractsController) Filter() string {
	return c.prefs.Filter(store.KeyContractsFilter, views.StatusFilterAll, views.ValidContractFilter)
}

func (c *ContractsController) SetFilter(f string) error {
	if !views.ValidContractFilter(f) {
		return invalid(fmt.Sprintf("Unknown status %q.", f))
	}
	return c.prefs.SetFilter(store.KeyContractsFilter, f)
}

func (c *ContractsController) View() views.Contracts {
	return views.BuildContracts(c.store.Get(), c.Filter(), c.store.Now())
}

// Act runs a row action. Cancel needs confirm set.
func (c *ContractsController) Act(id int64, action string, confirm bool) error {
	if _, err := c.store.Contract(id); err != nil {
		return err
	}
	now := c.store.Now()

	var (
		patch store.ContractPatch
		kind  = notify.Success
		msg   string
	)
	switch action {
	case ContractResend:
		status := models.ContractSent
		patch = store.ContractPatch{Status: &status, SentAt: &now}
		msg = "Contract resent to client."
	case ContractMarkActive:
		status := models.ContractActive
		patch = store.ContractPatch{Status: &status, ActivatedAt: &now}
		msg = "Contract marked as Active."
	case ContractCancel:
		if !confirm {
			return ErrConfirmationRequired
		}
		status := models.ContractCancelled
		patch = store.ContractPatch{Status: &status, CancelledAt: &now}
		kind, msg = notify.Info, "Contract has been cancelled."
	default:
		return invalid(fmt.Sprintf("Unknown action %q.", action))
	}

	if err := c.store.UpdateContract(id, patch); err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	c.toasts.Show(kind, msg)
	return nil
}

// SetStatus moves a contract to any status and stamps the matching
// milestone. Cancelling needs confirm set.
func (c *ContractsController) SetStatus(id int64, status models.ContractStatus, confirm bool) error {
	if _, err := models.ParseContractStatus(string(status)); err != nil {
		return invalid(err.Error())
	}
	if status == models.ContractCancelled && !confirm {
		return ErrConfirmationRequired
	}
	now := c.store.Now()
	patch := store.ContractPatch{Status: &status}
	switch status {
	case models.ContractSent:
		patch.SentAt = &now
	case models.ContractViewed:
		patch.ViewedAt = &now
	case models.ContractSigned:
		patch.SignedAt = &now
	case models.ContractActive:
		patch.ActivatedAt = &now
	case models.ContractCompleted:
		patch.CompletedAt = &now
	case models.ContractCancelled:
		patch.CancelledAt = &now
	}
	if err := c.store.UpdateContract(id, patch); err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	return nil
}

func (c *ContractsController) Form() ContractForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SelectProposal pre-fills the form from an accepted proposal.
func (c *ContractsController) SelectProposal(id int64) (ContractForm, error) {
	p, err := c.store.Proposal(id)
	if err != nil {
		return ContractForm{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.ProposalID = p.ID
	c.form.DealID = p.DealID
	c.form.LeadName = p.LeadName
	c.form.Value = p.Value
	c.form.LegalName = p.LeadName + " Inc."
	return c.form, nil
}

// EditForm changes the generation form in place.
func (c *ContractsController) EditForm(fn func(f *ContractForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Generate creates the contract from the form and resets it.
func (c *ContractsController) Generate() (models.Contract, error) {
	f := c.Form()
	if f.ProposalID == 0 || f.ContractType == "" {
		return models.Contract{}, invalid("Please select a proposal and contract type.")
	}
	if _, err := models.ParseContractType(string(f.ContractType)); err != nil {
		return models.Contract{}, invalid(err.Error())
	}
	now := c.store.Now()
	created, err := c.store.AddContract(store.NewContract{
		ProposalID:   f.ProposalID,
		DealID:       f.DealID,
		LeadName:     f.LeadName,
		Value:        f.Value,
		ContractType: f.ContractType,
		Status:       models.ContractGenerated,
		LegalName:    f.LegalName,
		Timeline: []models.ContractEvent{{
			Status:    models.ContractGenerated,
			Timestamp: now,
			Details:   fmt.Sprintf("Created from Proposal #%d", f.ProposalID),
		}},
	})
	if err != nil {
		return models.Contract{}, fmt.Errorf("failed to generate contract: %w", err)
	}
	c.toasts.Show(notify.Success, "New contract generated!")

	c.mu.Lock()
	c.form = newContractForm()
	c.mu.Unlock()
	return created, nil
}
