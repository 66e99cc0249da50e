// ABOUTME: Store mutation operations for leads, deals, proposals, contracts and flows
// ABOUTME: Each operation merges fields, stamps the clock time and refreshes derived fields
package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

// ActivityLogLimit caps a lead's activity log.
const ActivityLogLimit = 20

// NewLead carries the caller-supplied fields of a lead.
type NewLead struct {
	Name            string
	Origin          models.Origin
	OwnerID         int64
	Status          models.LeadStatus
	NextActionText  string
	DueDate         *time.Time
	ActionCompleted bool
	Score           int
	Notes           string
	Contacted       bool
	Unread          bool
	Messages        []models.ChatMessage
	Priority        models.Priority
	DealID          *int64
	Qualification   *models.Qualification
	SLA             *models.SLA
}

// LeadPatch merges every non-nil field. ClearDueDate unsets the due date.
type LeadPatch struct {
	Name            *string
	Origin          *models.Origin
	OwnerID         *int64
	Status          *models.LeadStatus
	NextActionText  *string
	DueDate         *time.Time
	ClearDueDate    bool
	ActionCompleted *bool
	Score           *int
	Notes           *string
	Contacted       *bool
	FirstContactAt  *time.Time
	Unread          *bool
	Priority        *models.Priority
	DealID          *int64
	Qualification   *models.Qualification
}

// DealPatch merges every non-nil field. Stage changes go through UpdateDealStage.
type DealPatch struct {
	Value              *float64
	SpecialStatus      *models.SpecialStatus
	OnHoldReason       *models.HoldReason
	ReactivateAt       *time.Time
	ClearSpecialStatus bool
}

type ProposalPatch struct {
	Status         *models.ProposalStatus
	Value          *float64
	SentAt         *time.Time
	ValidUntil     *time.Time
	FollowUpStatus *models.FollowUpStatus
	ScopeSummary   *string
}

type NewContract struct {
	ProposalID   int64
	DealID       int64
	LeadName     string
	Value        float64
	ContractType models.ContractType
	Status       models.ContractStatus
	LegalName    string
	Timeline     []models.ContractEvent
}

type ContractPatch struct {
	Status       *models.ContractStatus
	Value        *float64
	ContractType *models.ContractType
	LegalName    *string
	SentAt       *time.Time
	ViewedAt     *time.Time
	SignedAt     *time.Time
	ActivatedAt  *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

// Lookups

func (s *Store) Lead(id int64) (models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexLead(s.state, id); i >= 0 {
		return s.state.Leads[i].Clone(), nil
	}
	return models.Lead{}, fmt.Errorf("lead %d: %w", id, ErrNotFound)
}

func (s *Store) Deal(id int64) (models.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexDeal(s.state, id); i >= 0 {
		return s.state.Deals[i].Clone(), nil
	}
	return models.Deal{}, fmt.Errorf("deal %d: %w", id, ErrNotFound)
}

func (s *Store) Proposal(id int64) (models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexProposal(s.state, id); i >= 0 {
		return s.state.Proposals[i].Clone(), nil
	}
	return models.Proposal{}, fmt.Errorf("proposal %d: %w", id, ErrNotFound)
}

func (s *Store) Contract(id int64) (models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexContract(s.state, id); i >= 0 {
		return s.state.Contracts[i].Clone(), nil
	}
	return models.Contract{}, fmt.Errorf("contract %d: %w", id, ErrNotFound)
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// Leads

// AddLead prepends a new lead with a time-based id.
func (s *Store) AddLead(in NewLead) (models.Lead, error) {
	if in.Name == "" {
		return models.Lead{}, errors.New("lead name is required")
	}
	var created models.Lead
	err := s.mutate("add_lead", func(st *models.AppState) error {
		now := s.now()
		status := in.Status
		if status == "" {
			status = models.LeadNew
		}
		messages := in.Messages
		if messages == nil {
			messages = []models.ChatMessage{}
		}
		created = models.Lead{
			ID:              s.nextEntityID(),
			Name:            in.Name,
			Origin:          in.Origin,
			OwnerID:         in.OwnerID,
			Status:          status,
			CreatedAt:       now,
			UpdatedAt:       now,
			NextActionText:  in.NextActionText,
			DueDate:         in.DueDate,
			ActionCompleted: in.ActionCompleted,
			Score:           in.Score,
			Notes:           in.Notes,
			ActivityLog:     []models.Activity{{Timestamp: now, Description: "Lead created."}},
			Contacted:       in.Contacted,
			DealID:          in.DealID,
			Unread:          in.Unread,
			Messages:        messages,
			Qualification:   in.Qualification,
			Priority:        in.Priority,
			SLA:             in.SLA,
		}
		st.Leads = append([]models.Lead{created}, st.Leads...)
		return nil
	})
	return created.Clone(), err
}

func (s *Store) UpdateLead(id int64, p LeadPatch) error {
	return s.mutate("update_lead", func(st *models.AppState) error {
		i := indexLead(*st, id)
		if i < 0 {
			return fmt.Errorf("lead %d: %w", id, ErrNotFound)
		}
		l := &st.Leads[i]
		setIf(&l.Name, p.Name)
		setIf(&l.Origin, p.Origin)
		setIf(&l.OwnerID, p.OwnerID)
		setIf(&l.Status, p.Status)
		setIf(&l.NextActionText, p.NextActionText)
		if p.ClearDueDate {
			l.DueDate = nil
		} else if p.DueDate != nil {
			l.DueDate = models.TimePtr(*p.DueDate)
		}
		setIf(&l.ActionCompleted, p.ActionCompleted)
		setIf(&l.Score, p.Score)
		setIf(&l.Notes, p.Notes)
		setIf(&l.Contacted, p.Contacted)
		if p.FirstContactAt != nil {
			l.FirstContactAt = models.TimePtr(*p.FirstContactAt)
		}
		setIf(&l.Unread, p.Unread)
		setIf(&l.Priority, p.Priority)
		if p.DealID != nil {
			l.DealID = models.IDPtr(*p.DealID)
		}
		if p.Qualification != nil {
			q := *p.Qualification
			l.Qualification = &q
		}
		l.UpdatedAt = s.now()
		return nil
	})
}

// AddLeadActivity prepends an entry and keeps the newest ActivityLogLimit.
func (s *Store) AddLeadActivity(id int64, description string) error {
	return s.mutate("add_lead_activity", func(st *models.AppState) error {
		i := indexLead(*st, id)
		if i < 0 {
			return fmt.Errorf("lead %d: %w", id, ErrNotFound)
		}
		prependActivity(&st.Leads[i], s.now(), description)
		return nil
	})
}

func prependActivity(l *models.Lead, now time.Time, description string) {
	log := append([]models.Activity{{Timestamp: now, Description: description}}, l.ActivityLog...)
	if len(log) > ActivityLogLimit {
		log = log[:ActivityLogLimit]
	}
	l.ActivityLog = log
	l.UpdatedAt = now
}

// Deals

func (s *Store) UpdateDeal(id int64, p DealPatch) error {
	return s.mutate("update_deal", func(st *models.AppState) error {
		i := indexDeal(*st, id)
		if i < 0 {
			return fmt.Errorf("deal %d: %w", id, ErrNotFound)
		}
		d := &st.Deals[i]
		setIf(&d.Value, p.Value)
		if p.ClearSpecialStatus {
			d.SpecialStatus, d.OnHoldReason, d.ReactivateAt = "", "", nil
		}
		setIf(&d.SpecialStatus, p.SpecialStatus)
		setIf(&d.OnHoldReason, p.OnHoldReason)
		if p.ReactivateAt != nil {
			d.ReactivateAt = models.TimePtr(*p.ReactivateAt)
		}
		d.LastActionAt = s.now()
		return nil
	})
}

// UpdateDealStage moves a deal and restarts its stage clock.
func (s *Store) UpdateDealStage(id int64, stage models.Stage) error {
	if stage.Index() < 0 {
		return fmt.Errorf("invalid stage: %s", stage)
	}
	return s.mutate("update_deal_stage", func(st *models.AppState) error {
		i := indexDeal(*st, id)
		if i < 0 {
			return fmt.Errorf("deal %d: %w", id, ErrNotFound)
		}
		now := s.now()
		d := &st.Deals[i]
		d.Stage = stage
		d.LastActionAt = now
		d.StageEnteredAt = now
		return nil
	})
}

// DealMove is a pipeline move: the new stage, the lead's next action and
// the outcome fields of Won and Lost.
type DealMove struct {
	DealID     int64
	LeadID     int64
	Stage      models.Stage
	NextAction string
	DueDate    time.Time
	FinalValue float64
	LossReason string
}

// MoveDeal applies m as one write. Nothing changes when the deal or the
// lead is missing.
func (s *Store) MoveDeal(m DealMove) error {
	if m.Stage.Index() < 0 {
		return fmt.Errorf("invalid stage: %s", m.Stage)
	}
	return s.mutate("move_deal", func(st *models.AppState) error {
		di := indexDeal(*st, m.DealID)
		if di < 0 {
			return fmt.Errorf("deal %d: %w", m.DealID, ErrNotFound)
		}
		li := indexLead(*st, m.LeadID)
		if li < 0 {
			return fmt.Errorf("lead %d: %w", m.LeadID, ErrNotFound)
		}
		now := s.now()

		d := &st.Deals[di]
		d.Stage = m.Stage
		d.LastActionAt = now
		d.StageEnteredAt = now
		if m.Stage == models.StageWon {
			d.Value = m.FinalValue
		}

		l := &st.Leads[li]
		l.NextActionText = m.NextAction
		l.DueDate = models.TimePtr(m.DueDate)
		l.ActionCompleted = false
		prependActivity(l, now, fmt.Sprintf("Deal moved to %s. Next action: %q", m.Stage, m.NextAction))
		if m.Stage == models.StageLost {
			prependActivity(l, now, "Loss Reason: "+m.LossReason)
		}
		return nil
	})
}

// Proposals

// UpdateProposal merges p, records a status change on the timeline, stamps
// UpdatedAt and recomputes signals.
func (s *Store) UpdateProposal(id int64, p ProposalPatch) error {
	return s.mutate("update_proposal", func(st *models.AppState) error {
		i := indexProposal(*st, id)
		if i < 0 {
			return fmt.Errorf("proposal %d: %w", id, ErrNotFound)
		}
		now := s.now()
		prop := &st.Proposals[i]
		if p.Status != nil && *p.Status != prop.Status {
			prop.Timeline = append(prop.Timeline, models.TimelineEvent{Type: models.TimelineEventType(*p.Status), Timestamp: now})
		}
		setIf(&prop.Status, p.Status)
		setIf(&prop.Value, p.Value)
		if p.SentAt != nil {
			prop.SentAt = models.TimePtr(*p.SentAt)
		}
		setIf(&prop.ValidUntil, p.ValidUntil)
		setIf(&prop.FollowUpStatus, p.FollowUpStatus)
		setIf(&prop.ScopeSummary, p.ScopeSummary)
		prop.UpdatedAt = now
		*prop = insights.Recalculate(*prop, now)
		return nil
	})
}

// SimulateProposalView records one client view.
func (s *Store) SimulateProposalView(id int64) error {
	return s.mutate("simulate_proposal_view", func(st *models.AppState) error {
		i := indexProposal(*st, id)
		if i < 0 {
			return fmt.Errorf("proposal %d: %w", id, ErrNotFound)
		}
		now := s.now()
		prop := &st.Proposals[i]
		prop.ViewCount++
		prop.Timeline = append(prop.Timeline, models.TimelineEvent{
			Type:      models.EventViewed,
			Timestamp: now,
			Details:   fmt.Sprintf("View #%d", prop.ViewCount),
		})
		if prop.Status == models.ProposalSent {
			prop.Status = models.ProposalViewed
		}
		prop.FollowUpStatus = models.FollowUpNeeded
		prop.LastViewedAt = models.TimePtr(now)
		prop.UpdatedAt = now
		*prop = insights.Recalculate(*prop, now)
		return nil
	})
}

// CreateProposalRevision appends a Draft revision and retires every latest
// proposal of the same deal, the original included.
func (s *Store) CreateProposalRevision(id int64) (models.Proposal, error) {
	var revision models.Proposal
	err := s.mutate("create_proposal_revision", func(st *models.AppState) error {
		i := indexProposal(*st, id)
		if i < 0 {
			return fmt.Errorf("proposal %d: %w", id, ErrNotFound)
		}
		now := s.now()
		original := st.Proposals[i]
		newID := s.nextEntityID()

		revision = original.Clone()
		revision.ID = newID
		revision.Version = original.Version + 1
		revision.IsLatest = true
		revision.Status = models.ProposalDraft
		revision.CreatedAt = now
		revision.UpdatedAt = now
		revision.SentAt = nil
		revision.ViewCount = 0
		revision.LastViewedAt = nil
		revision.Signals = []models.Signal{}
		revision.FollowUpStatus = models.FollowUpNone
		revision.Timeline = []models.TimelineEvent{{
			Type:      models.EventCreated,
			Timestamp: now,
			Details:   fmt.Sprintf("From v%d", original.Version),
		}}
		revision.ReplacedBy = nil

		for j := range st.Proposals {
			p := &st.Proposals[j]
			if p.ID != id && !(p.DealID == original.DealID && p.IsLatest) {
				continue
			}
			p.IsLatest = false
			p.Status = models.ProposalReplaced
			p.ReplacedBy = models.IDPtr(newID)
			p.UpdatedAt = now
			p.Timeline = append(p.Timeline, models.TimelineEvent{
				Type:      models.EventReplaced,
				Timestamp: now,
				Details:   fmt.Sprintf("by v%d", revision.Version),
			})
		}
		st.Proposals = append(st.Proposals, revision)
		return nil
	})
	return revision.Clone(), err
}

// Contracts

// AddContract prepends a contract with a time-based id.
func (s *Store) AddContract(in NewContract) (models.Contract, error) {
	var created models.Contract
	err := s.mutate("add_contract", func(st *models.AppState) error {
		now := s.now()
		status := in.Status
		if status == "" {
			status = models.ContractGenerated
		}
		timeline := slices.Clone(in.Timeline)
		if timeline == nil {
			timeline = []models.ContractEvent{}
		}
		created = models.Contract{
			ID:           s.nextEntityID(),
			ProposalID:   in.ProposalID,
			DealID:       in.DealID,
			LeadName:     in.LeadName,
			Value:        in.Value,
			ContractType: in.ContractType,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
			Timeline:     timeline,
			LegalName:    in.LegalName,
		}
		st.Contracts = append([]models.Contract{created}, st.Contracts...)
		return nil
	})
	return created.Clone(), err
}

// UpdateContract merges p and stamps UpdatedAt. A timeline entry is appended
// only when the status changes.
func (s *Store) UpdateContract(id int64, p ContractPatch) error {
	return s.mutate("update_contract", func(st *models.AppState) error {
		i := indexContract(*st, id)
		if i < 0 {
			return fmt.Errorf("contract %d: %w", id, ErrNotFound)
		}
		now := s.now()
		c := &st.Contracts[i]
		if p.Status != nil && *p.Status != c.Status {
			c.Timeline = append(c.Timeline, models.ContractEvent{Status: *p.Status, Timestamp: now})
		}
		c.UpdatedAt = now
		setIf(&c.Status, p.Status)
		setIf(&c.Value, p.Value)
		setIf(&c.ContractType, p.ContractType)
		setIf(&c.LegalName, p.LegalName)
		for _, ts := range []struct {
			dst **time.Time
			src *time.Time
		}{
			{&c.SentAt, p.SentAt}, {&c.ViewedAt, p.ViewedAt}, {&c.SignedAt, p.SignedAt},
			{&c.ActivatedAt, p.ActivatedAt}, {&c.CompletedAt, p.CompletedAt}, {&c.CancelledAt, p.CancelledAt},
		} {
			if ts.src != nil {
				*ts.dst = models.TimePtr(*ts.src)
			}
		}
		return nil
	})
}

// Settings

// ToggleFlow flips membership of flowID in the active set and reports
// whether it is now active. Only catalog flows can be activated; an active
// id is always removable, even once the catalog no longer lists it.
func (s *Store) ToggleFlow(flowID string) (bool, error) {
	var active bool
	err := s.mutate("toggle_flow", func(st *models.AppState) error {
		if i := slices.Index(st.ActiveFlowIDs, flowID); i >= 0 {
			st.ActiveFlowIDs = slices.Delete(st.ActiveFlowIDs, i, i+1)
			active = false
			return nil
		}
		if !flowExists(*st, flowID) {
			return fmt.Errorf("flow %s: %w", flowID, ErrNotFound)
		}
		st.ActiveFlowIDs = append(st.ActiveFlowIDs, flowID)
		active = true
		return nil
	})
	return active, err
}

func (s *Store) SetMonthlyGoal(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("monthly goal must be positive, got %.2f", amount)
	}
	return s.mutate("set_monthly_goal", func(st *models.AppState) error {
		st.MonthlyGoal = amount
		return nil
	})
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func indexLead(st models.AppState, id int64) int {
	return slices.IndexFunc(st.Leads, func(l models.Lead) bool { return l.ID == id })
}

func indexDeal(st models.AppState, id int64) int {
	return slices.IndexFunc(st.Deals, func(d models.Deal) bool { return d.ID == id })
}

func indexProposal(st models.AppState, id int64) int {
	return slices.IndexFunc(st.Proposals, func(p models.Proposal) bool { return p.ID == id })
}

func indexContract(st models.AppState, id int64) int {
	return slices.IndexFunc(st.Contracts, func(c models.Contract) bool { return c.ID == id })
}

func flowExists(st models.AppState, flowID string) bool {
	for _, in := range st.Integrations {
		for _, f := range in.Flows {
			if f.ID == flowID {
				return true
			}
		}
	}
	return false
}
