// ABOUTME: Pipeline board controller for drag and drop, the move modal and card actions
// ABOUTME: Saving a move updates the stage and next action and logs the activity

package controllers

import (
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

// MoveForm is the "move deal" modal. Only NextAction and DueDate are required.
type MoveForm struct {
	NextAction    string     `json:"nextActionText"`
	DueDate       *time.Time `json:"dueDate"`
	Channel       string     `json:"channel"`
	ProposalType  string     `json:"proposalType"`
	Objection     string     `json:"objection"`
	FinalValue    float64    `json:"finalValue"`
	PaymentMethod string     `json:"paymentMethod"`
	LossReason    string     `json:"lossReason"`
}

type MoveModal struct {
	DealID      int64        `json:"dealId"`
	LeadID      int64        `json:"leadId"`
	TargetStage models.Stage `json:"targetStage"`
	Form        MoveForm     `json:"form"`
	Error       string       `json:"error,omitempty"`
}

// NewMoveForm returns the modal defaults: due tomorrow, WhatsApp, price objection.
func NewMoveForm(now time.Time) MoveForm {
	tomorrow := now.AddDate(0, 0, 1)
	due := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
	return MoveForm{
		DueDate:       &due,
		Channel:       "WhatsApp",
		ProposalType:  "General Services",
		Objection:     "Price",
		PaymentMethod: "Stripe",
		LossReason:    "Price",
	}
}

type PipelineController struct {
	store  *store.Store
	toasts *notify.Service
	Coach  *Coach

	mu          sync.Mutex
	dragged     *views.KanbanDeal
	dragOver    models.Stage
	modal       *MoveModal
	detailID    int64
	managerView bool
}

func NewPipelineController(s *store.Store, toasts *notify.Service) *PipelineController {
	return &PipelineController{store: s, toasts: toasts, Coach: NewCoach(toasts, CoachDelay)}
}

// View projects the board from the current snapshot.
func (c *PipelineController) View() views.Pipeline {
	return views.BuildPipeline(c.store.Get(), c.store.Now())
}

func (c *PipelineController) ToggleManagerView() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.managerView = !c.managerView
	return c.managerView
}

func (c *PipelineController) ManagerView() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.managerView
}

// Drag and drop

func (c *PipelineController) DragStart(dealID int64) error {
	k, ok := views.KanbanDealFor(c.store.Get(), dealID, c.store.Now())
	if !ok {
		return fmt.Errorf("deal %d: %w", dealID, store.ErrNotFound)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragged = &k
	return nil
}

// DragOver highlights a column other than the dragged deal's own.
func (c *PipelineController) DragOver(stage models.Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragged != nil && c.dragged.Stage != stage {
		c.dragOver = stage
	}
}

func (c *PipelineController) DragOverStage() models.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragOver
}

func (c *PipelineController) DragLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragOver = ""
}

// Drop opens the move modal when the target differs from the current stage.
// Drag state is cleared either way.
func (c *PipelineController) Drop(target models.Stage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	deal := c.dragged
	c.dragged, c.dragOver = nil, ""
	if deal == nil || deal.Stage == target {
		return false
	}
	c.modal = &MoveModal{DealID: deal.ID, LeadID: deal.LeadID, TargetStage: target, Form: NewMoveForm(c.store.Now())}
	return true
}

func (c *PipelineController) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragged, c.dragOver = nil, ""
}

// Move modal

// OpenMove opens the modal directly, as the CLI and MCP tools do.
func (c *PipelineController) OpenMove(dealID int64, target models.Stage) error {
	d, err := c.store.Deal(dealID)
	if err != nil {
		return err
	}
	if target.Index() < 0 {
		return invalid(fmt.Sprintf("Unknown stage %q.", target))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = &MoveModal{DealID: d.ID, LeadID: d.LeadID, TargetStage: target, Form: NewMoveForm(c.store.Now())}
	return nil
}

func (c *PipelineController) Modal() (MoveModal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == nil {
		return MoveModal{}, false
	}
	return *c.modal, true
}

// EditMove changes the form of the open modal.
func (c *PipelineController) EditMove(fn func(f *MoveForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal != nil {
		fn(&c.modal.Form)
	}
}

func (c *PipelineController) CancelMove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = nil
}

// SaveMove applies the open modal: stage change, new next action, activity
// entries and the outcome fields of Won and Lost.
func (c *PipelineController) SaveMove() error {
	c.mu.Lock()
	m := c.modal
	if m == nil || m.Form.NextAction == "" || m.Form.DueDate == nil {
		if m != nil {
			m.Error = "Next Action and Due Date are mandatory."
		}
		c.mu.Unlock()
		return invalid("Next Action and Due Date are mandatory.")
	}
	ctx := *m
	c.mu.Unlock()

	if err := c.store.MoveDeal(store.DealMove{
		DealID:     ctx.DealID,
		LeadID:     ctx.LeadID,
		Stage:      ctx.TargetStage,
		NextAction: ctx.Form.NextAction,
		DueDate:    *ctx.Form.DueDate,
		FinalValue: ctx.Form.FinalValue,
		LossReason: ctx.Form.LossReason,
	}); err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}

	c.toasts.Show(notify.Success, fmt.Sprintf("Deal moved to %s", ctx.TargetStage))
	c.CancelMove()
	return nil
}

// Card actions

// ToggleComplete flips the lead's next action and logs it.
func (c *PipelineController) ToggleComplete(leadID int64) error {
	completed, err := toggleLeadAction(c.store, leadID)
	if err != nil {
		return err
	}
	if completed {
		c.toasts.Show(notify.Success, "Action completed!")
	} else {
		c.toasts.Show(notify.Success, "Action marked incomplete.")
	}
	return nil
}

func (c *PipelineController) Reschedule(leadID int64, due time.Time) error {
	if err := c.store.UpdateLead(leadID, store.LeadPatch{DueDate: &due}); err != nil {
		return fmt.Errorf("failed to reschedule: %w", err)
	}
	if err := c.store.AddLeadActivity(leadID, fmt.Sprintf("Action rescheduled to %s.", mediumDate(due))); err != nil {
		return err
	}
	c.toasts.Show(notify.Success, "Action rescheduled.")
	return nil
}

// Detail slide-over

func (c *PipelineController) OpenDetail(dealID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = dealID
}

func (c *PipelineController) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = 0
}

// Detail re-reads the open deal so it always reflects the latest snapshot.
func (c *PipelineController) Detail() (views.KanbanDeal, bool) {
	c.mu.Lock()
	id := c.detailID
	c.mu.Unlock()
	if id == 0 {
		return views.KanbanDeal{}, false
	}
	return views.KanbanDealFor(c.store.Get(), id, c.store.Now())
}

// toggleLeadAction flips actionCompleted and logs the matching activity.
func toggleLeadAction(s *store.Store, leadID int64) (bool, error) {
	lead, err := s.Lead(leadID)
	if err != nil {
		return false, err
	}
	completed := !lead.ActionCompleted
	if err := s.UpdateLead(leadID, store.LeadPatch{ActionCompleted: &completed}); err != nil {
		return false, fmt.Errorf("failed to update action: %w", err)
	}
	text := fmt.Sprintf("Action %q completed.", lead.NextActionText)
	if !completed {
		text = fmt.Sprintf("Action %q marked as incomplete.", lead.NextActionText)
	}
	if err := s.AddLeadActivity(leadID, text); err != nil {
		return false, err
	}
	return completed, nil
}
