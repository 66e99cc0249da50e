// ABOUTME: Proposals screen controller for filters, search and row actions
// ABOUTME: Status and quick filters persist; the search box does not

package controllers

import (
	"fmt"
	"sync"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

// Row actions accepted by Act.
const (
	ActionCopyLink         = "copy_link"
	ActionDuplicate        = "duplicate"
	ActionGenerateContract = "generate_contract"
	ActionResend           = "resend"
)

type ProposalsController struct {
	store  *store.Store
	toasts *notify.Service
	prefs  *store.Prefs

	mu       sync.Mutex
	search   string
	selected int64
}

func NewProposalsController(s *store.Store, toasts *notify.Service) *ProposalsController {
	return &ProposalsController{store: s, toasts: toasts, prefs: s.Prefs()}
}

func (c *ProposalsController) Filters() views.ProposalFilters {
	c.mu.Lock()
	search := c.search
	c.mu.Unlock()
	return views.ProposalFilters{
		Status: c.prefs.Filter(store.KeyProposalStatusFilter, views.StatusFilterAll, views.ValidProposalStatusFilter),
		Quick:  c.prefs.Filter(store.KeyProposalQuickFilter, views.QuickNone, views.ValidQuickFilter),
		Search: search,
	}
}

func (c *ProposalsController) SetStatusFilter(f string) error {
	if !views.ValidProposalStatusFilter(f) {
		return invalid(fmt.Sprintf("Unknown status %q.", f))
	}
	return c.prefs.SetFilter(store.KeyProposalStatusFilter, f)
}

func (c *ProposalsController) SetQuickFilter(f string) error {
	if !views.ValidQuickFilter(f) {
		return invalid(fmt.Sprintf("Unknown quick filter %q.", f))
	}
	return c.prefs.SetFilter(store.KeyProposalQuickFilter, f)
}

func (c *ProposalsController) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = q
}

func (c *ProposalsController) View() views.Proposals {
	return views.BuildProposals(c.store.Get(), c.Filters(), c.store.Now())
}

func (c *ProposalsController) Open(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
}

func (c *ProposalsController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = 0
}

// Selected re-reads the open proposal.
func (c *ProposalsController) Selected() (models.Proposal, bool) {
	c.mu.Lock()
	id := c.selected
	c.mu.Unlock()
	if id == 0 {
		return models.Proposal{}, false
	}
	p, err := c.store.Proposal(id)
	return p, err == nil
}

// Act runs a row action and returns the affected proposal.
func (c *ProposalsController) Act(id int64, action string) (models.Proposal, error) {
	p, err := c.store.Proposal(id)
	if err != nil {
		return models.Proposal{}, err
	}

	switch action {
	case ActionCopyLink:
		c.toasts.Show(notify.Success, "Public link copied!")
		return p, nil

	case ActionDuplicate:
		rev, err := c.store.CreateProposalRevision(id)
		if err != nil {
			return models.Proposal{}, fmt.Errorf("failed to create revision: %w", err)
		}
		c.toasts.Show(notify.Success, fmt.Sprintf("New draft v%d created for %s.", p.Version+1, p.LeadName))
		return rev, nil

	case ActionGenerateContract:
		c.toasts.Show(notify.Info, "Contract generation initiated!")
		return p, nil

	case ActionResend:
		now := c.store.Now()
		if err := c.store.UpdateProposal(id, store.ProposalPatch{SentAt: &now}); err != nil {
			return models.Proposal{}, fmt.Errorf("failed to resend proposal: %w", err)
		}
		c.toasts.Show(notify.Success, "Proposal re-sent!")
		return c.store.Proposal(id)
	}
	return models.Proposal{}, invalid(fmt.Sprintf("Unknown action %q.", action))
}

// Link is the public URL copied by the copy-link action.
func (c *ProposalsController) Link(id int64) string {
	return views.ProposalLink(id)
}

// SimulateView records a client view of the proposal.
func (c *ProposalsController) SimulateView(id int64) (models.Proposal, error) {
	if err := c.store.SimulateProposalView(id); err != nil {
		return models.Proposal{}, fmt.Errorf("failed to record view: %w", err)
	}
	return c.store.Proposal(id)
}
