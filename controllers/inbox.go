// ABOUTME: Inbox controller for the conversation list, selection and qualification
// ABOUTME: Opening a conversation marks it read; qualifying scores and prioritizes the lead

package controllers

import (
	"fmt"
	"sync"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

type InboxController struct {
	store *store.Store

	mu       sync.Mutex
	filter   string
	selected int64
}

func NewInboxController(s *store.Store) *InboxController {
	return &InboxController{store: s, filter: views.InboxAll}
}

func (c *InboxController) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *InboxController) SetFilter(f string) error {
	if !views.ValidInboxFilter(f) {
		return invalid(fmt.Sprintf("Unknown filter %q.", f))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	return nil
}

func (c *InboxController) View() []views.InboxLead {
	return views.BuildInbox(c.store.Get(), c.Filter(), c.store.Now())
}

// Select opens a conversation and marks it read.
func (c *InboxController) Select(id int64) (models.Lead, error) {
	lead, err := c.store.Lead(id)
	if err != nil {
		return models.Lead{}, err
	}
	if lead.Unread {
		read := false
		if err := c.store.UpdateLead(id, store.LeadPatch{Unread: &read}); err != nil {
			return models.Lead{}, fmt.Errorf("failed to mark read: %w", err)
		}
		lead.Unread = false
	}
	c.mu.Lock()
	c.selected = id
	c.mu.Unlock()
	return lead, nil
}

// Selected re-reads the open conversation.
func (c *InboxController) Selected() (models.Lead, bool) {
	c.mu.Lock()
	id := c.selected
	c.mu.Unlock()
	if id == 0 {
		return models.Lead{}, false
	}
	lead, err := c.store.Lead(id)
	return lead, err == nil
}

// Qualify stores the answers, derives score and priority and marks the lead qualified.
func (c *InboxController) Qualify(id int64, q models.Qualification) (models.Lead, error) {
	score := insights.QualificationScore(q)
	priority := insights.PriorityFor(score)
	status := models.LeadQualified
	if err := c.store.UpdateLead(id, store.LeadPatch{
		Qualification: &q,
		Score:         &score,
		Priority:      &priority,
		Status:        &status,
	}); err != nil {
		return models.Lead{}, fmt.Errorf("failed to qualify lead: %w", err)
	}
	return c.store.Lead(id)
}
