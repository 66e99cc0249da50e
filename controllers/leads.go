// ABOUTME: Leads screen controller for the filter, the create form and edits
// ABOUTME: The chosen filter is remembered across restarts

package controllers

import (
	"fmt"
	"time"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

// LeadForm is the "new lead" form. Every field is required.
type LeadForm struct {
	Name       string        `json:"name"`
	Origin     models.Origin `json:"origin"`
	OwnerID    int64         `json:"ownerId"`
	NextAction string        `json:"nextActionText"`
	DueDate    *time.Time    `json:"dueDate"`
}

// LeadEdit is the detail panel edit. A nil DueDate clears the date.
type LeadEdit struct {
	OwnerID    int64             `json:"ownerId"`
	Status     models.LeadStatus `json:"status"`
	NextAction string            `json:"nextActionText"`
	DueDate    *time.Time        `json:"dueDate"`
	Notes      string            `json:"notes"`
}

type LeadsController struct {
	store  *store.Store
	toasts *notify.Service
	prefs  *store.Prefs
}

func NewLeadsController(s *store.Store, toasts *notify.Service) *LeadsController {
	return &LeadsController{store: s, toasts: toasts, prefs: s.Prefs()}
}

func (c *LeadsController) Filter() string {
	return c.prefs.Filter(store.KeyLeadsFilter, views.LeadFilterAll, views.ValidLeadFilter)
}

func (c *LeadsController) SetFilter(f string) error {
	if !views.ValidLeadFilter(f) {
		return invalid(fmt.Sprintf("Unknown filter %q.", f))
	}
	return c.prefs.SetFilter(store.KeyLeadsFilter, f)
}

func (c *LeadsController) View() views.Leads {
	return views.BuildLeads(c.store.Get(), c.Filter(), c.store.Now())
}

// Create adds a new, unread lead.
func (c *LeadsController) Create(f LeadForm) (models.Lead, error) {
	if f.Name == "" || f.Origin == "" || f.OwnerID == 0 || f.NextAction == "" || f.DueDate == nil {
		return models.Lead{}, invalid("Please fill in all required fields.")
	}
	if _, err := models.ParseOrigin(string(f.Origin)); err != nil {
		return models.Lead{}, invalid(err.Error())
	}
	lead, err := c.store.AddLead(store.NewLead{
		Name:           f.Name,
		Origin:         f.Origin,
		OwnerID:        f.OwnerID,
		Status:         models.LeadNew,
		NextActionText: f.NextAction,
		DueDate:        f.DueDate,
		Unread:         true,
	})
	if err != nil {
		return models.Lead{}, fmt.Errorf("failed to create lead: %w", err)
	}
	c.toasts.Show(notify.Success, "Lead created successfully!")
	return lead, nil
}

// Update saves the detail panel and logs the edit.
func (c *LeadsController) Update(id int64, e LeadEdit) error {
	patch := store.LeadPatch{
		OwnerID:        &e.OwnerID,
		Status:         &e.Status,
		NextActionText: &e.NextAction,
		Notes:          &e.Notes,
	}
	if e.DueDate != nil {
		patch.DueDate = e.DueDate
	} else {
		patch.ClearDueDate = true
	}
	if err := c.store.UpdateLead(id, patch); err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if err := c.store.AddLeadActivity(id, "Lead details updated."); err != nil {
		return err
	}
	c.toasts.Show(notify.Success, "Lead updated successfully!")
	return nil
}

// ToggleComplete flips the next action without a toast.
func (c *LeadsController) ToggleComplete(id int64) (bool, error) {
	return toggleLeadAction(c.store, id)
}

func (c *LeadsController) Reschedule(id int64, due time.Time) error {
	if err := c.store.UpdateLead(id, store.LeadPatch{DueDate: &due}); err != nil {
		return fmt.Errorf("failed to reschedule: %w", err)
	}
	return c.store.AddLeadActivity(id, fmt.Sprintf("Action due date rescheduled to %s.", mediumDate(due)))
}
