// ABOUTME: Tests for lead, deal, proposal, contract and flow operations
// ABOUTME: Checks timestamps, timeline bookkeeping and revision chains
package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/models"
)

func TestAddLeadDefaults(t *testing.T) {
	s, _, _ := setupStore(t)
	due := refNow.Add(24 * time.Hour)

	lead, err := s.AddLead(NewLead{
		Name:           "Acme Corp",
		Origin:         models.OriginWebsite,
		OwnerID:        1,
		NextActionText: "Send intro",
		DueDate:        &due,
		Unread:         true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.LeadNew, lead.Status)
	assert.Equal(t, 0, lead.Score)
	assert.False(t, lead.Contacted)
	assert.NotNil(t, lead.Messages)
	assert.Empty(t, lead.Messages)
	require.Len(t, lead.ActivityLog, 1)
	assert.Equal(t, "Lead created.", lead.ActivityLog[0].Description)
	assert.Equal(t, refNow, lead.CreatedAt)

	state := s.Get()
	assert.Len(t, state.Leads, 7)
	assert.Equal(t, lead.ID, state.Leads[0].ID, "new leads are prepended")
}

func TestAddLeadRequiresName(t *testing.T) {
	s, _, _ := setupStore(t)
	_, err := s.AddLead(NewLead{})
	require.Error(t, err)
	assert.Len(t, s.Get().Leads, 6)
}

func TestNewIDsStrictlyIncrease(t *testing.T) {
	s, _, _ := setupStore(t)
	var last int64
	for i := 0; i < 5; i++ {
		lead, err := s.AddLead(NewLead{Name: fmt.Sprintf("Lead %d", i)})
		require.NoError(t, err)
		assert.Greater(t, lead.ID, last)
		last = lead.ID
	}
	c, err := s.AddContract(NewContract{ProposalID: 204, DealID: 103, LeadName: "Global Logistics"})
	require.NoError(t, err)
	assert.Greater(t, c.ID, last)
}

func TestUpdateLeadMergesFields(t *testing.T) {
	s, _, clock := setupStore(t)
	clock.Advance(time.Hour)

	score := 88
	done := true
	require.NoError(t, s.UpdateLead(4, LeadPatch{Score: &score, ActionCompleted: &done, ClearDueDate: true}))

	lead, err := s.Lead(4)
	require.NoError(t, err)
	assert.Equal(t, 88, lead.Score)
	assert.True(t, lead.ActionCompleted)
	assert.Nil(t, lead.DueDate)
	assert.Equal(t, "Fast Burger Chain", lead.Name)
	assert.Equal(t, refNow.Add(time.Hour), lead.UpdatedAt)

	assert.ErrorIs(t, s.UpdateLead(999, LeadPatch{Score: &score}), ErrNotFound)
}

func TestAddLeadActivityCapsLog(t *testing.T) {
	s, _, _ := setupStore(t)
	for i := 0; i < ActivityLogLimit+5; i++ {
		require.NoError(t, s.AddLeadActivity(2, fmt.Sprintf("entry %d", i)))
	}

	lead, err := s.Lead(2)
	require.NoError(t, err)
	require.Len(t, lead.ActivityLog, ActivityLogLimit)
	assert.Equal(t, fmt.Sprintf("entry %d", ActivityLogLimit+4), lead.ActivityLog[0].Description)

	assert.ErrorIs(t, s.AddLeadActivity(999, "nope"), ErrNotFound)
}

func TestUpdateDealStageResetsStageClock(t *testing.T) {
	s, _, clock := setupStore(t)
	before, err := s.Deal(101)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	require.NoError(t, s.UpdateDealStage(101, models.StageNegotiation))
	moved, err := s.Deal(101)
	require.NoError(t, err)
	assert.Equal(t, models.StageNegotiation, moved.Stage)
	assert.True(t, moved.StageEnteredAt.After(before.StageEnteredAt))
	assert.Equal(t, moved.StageEnteredAt, moved.LastActionAt)

	// moving into the same stage still restarts the clock
	clock.Advance(time.Minute)
	require.NoError(t, s.UpdateDealStage(101, models.StageNegotiation))
	again, err := s.Deal(101)
	require.NoError(t, err)
	assert.True(t, again.StageEnteredAt.After(moved.StageEnteredAt))

	assert.Error(t, s.UpdateDealStage(101, models.Stage("Limbo")))
	assert.ErrorIs(t, s.UpdateDealStage(999, models.StageWon), ErrNotFound)
}

func TestMoveDealIsOneWrite(t *testing.T) {
	s, _, clock := setupStore(t)
	writes := 0
	s.Subscribe(func(models.AppState) error { writes++; return nil })

	clock.Advance(time.Hour)
	due := refNow.Add(48 * time.Hour)
	require.NoError(t, s.MoveDeal(DealMove{
		DealID: 102, LeadID: 2, Stage: models.StageLost,
		NextAction: "Archive", DueDate: due, LossReason: "Timing",
	}))
	assert.Equal(t, 1, writes)

	deal, err := s.Deal(102)
	require.NoError(t, err)
	assert.Equal(t, models.StageLost, deal.Stage)
	assert.Equal(t, clock.Now(), deal.StageEnteredAt)
	assert.Equal(t, 8000.0, deal.Value)

	lead, err := s.Lead(2)
	require.NoError(t, err)
	assert.Equal(t, "Archive", lead.NextActionText)
	assert.Equal(t, due, *lead.DueDate)
	assert.False(t, lead.ActionCompleted)
	assert.Equal(t, clock.Now(), lead.UpdatedAt)
	assert.Equal(t, "Loss Reason: Timing", lead.ActivityLog[0].Description)
	assert.Equal(t, `Deal moved to Lost. Next action: "Archive"`, lead.ActivityLog[1].Description)
}

func TestMoveDealLeavesStateOnFailure(t *testing.T) {
	s, _, _ := setupStore(t)
	before := s.Get()

	err := s.MoveDeal(DealMove{DealID: 101, LeadID: 999, Stage: models.StageWon, NextAction: "Kickoff", DueDate: refNow, FinalValue: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, s.Get(), "the deal stage is untouched when the lead is missing")

	err = s.MoveDeal(DealMove{DealID: 999, LeadID: 1, Stage: models.StageWon, NextAction: "Kickoff", DueDate: refNow})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.MoveDeal(DealMove{DealID: 101, LeadID: 1, Stage: models.Stage("Limbo")}))
	assert.Equal(t, before, s.Get())
}

func TestUpdateDealSpecialStatus(t *testing.T) {
	s, _, clock := setupStore(t)
	clock.Advance(time.Hour)

	require.NoError(t, s.UpdateDeal(102, DealPatch{ClearSpecialStatus: true}))
	deal, err := s.Deal(102)
	require.NoError(t, err)
	assert.Empty(t, deal.SpecialStatus)
	assert.Empty(t, deal.OnHoldReason)
	assert.Equal(t, models.StageNegotiation, deal.Stage)
	assert.Equal(t, refNow.Add(time.Hour), deal.LastActionAt)

	value := 9000.0
	status := models.SpecialReactivateLater
	require.NoError(t, s.UpdateDeal(102, DealPatch{Value: &value, SpecialStatus: &status}))
	deal, err = s.Deal(102)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, deal.Value)
	assert.Equal(t, models.SpecialReactivateLater, deal.SpecialStatus)
}

func TestUpdateProposalTimeline(t *testing.T) {
	s, _, _ := setupStore(t)
	before, err := s.Proposal(205)
	require.NoError(t, err)

	sent := models.ProposalSent
	require.NoError(t, s.UpdateProposal(205, ProposalPatch{Status: &sent, SentAt: &refNow}))
	after, err := s.Proposal(205)
	require.NoError(t, err)
	require.Len(t, after.Timeline, len(before.Timeline)+1)
	assert.Equal(t, models.EventSent, after.Timeline[len(after.Timeline)-1].Type)
	assert.Equal(t, models.ProposalSent, after.Status)

	// same status again adds nothing
	require.NoError(t, s.UpdateProposal(205, ProposalPatch{Status: &sent}))
	again, err := s.Proposal(205)
	require.NoError(t, err)
	assert.Len(t, again.Timeline, len(after.Timeline))
}

func TestUpdateProposalRecomputesSignals(t *testing.T) {
	s, _, clock := setupStore(t)
	clock.Advance(3 * 24 * time.Hour)

	summary := "Hardware prototype, phase one."
	require.NoError(t, s.UpdateProposal(203, ProposalPatch{ScopeSummary: &summary}))
	p, err := s.Proposal(203)
	require.NoError(t, err)
	assert.Equal(t, []models.Signal{models.SignalRiskNotOpened}, p.Signals)
}

func TestSimulateProposalView(t *testing.T) {
	s, _, _ := setupStore(t)
	require.NoError(t, s.SimulateProposalView(203))

	p, err := s.Proposal(203)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalViewed, p.Status)
	assert.Equal(t, 1, p.ViewCount)
	assert.Equal(t, models.FollowUpNeeded, p.FollowUpStatus)
	require.NotNil(t, p.LastViewedAt)
	assert.Equal(t, refNow, *p.LastViewedAt)
	assert.Empty(t, p.Signals, "a single view is neither high intent nor unopened")

	require.NoError(t, s.SimulateProposalView(203))
	p, err = s.Proposal(203)
	require.NoError(t, err)
	assert.Equal(t, 2, p.ViewCount)
	assert.Equal(t, []models.Signal{models.SignalHighIntent}, p.Signals)
	assert.Equal(t, "View #2", p.Timeline[len(p.Timeline)-1].Details)
}

func TestCreateProposalRevision(t *testing.T) {
	s, _, _ := setupStore(t)

	rev, err := s.CreateProposalRevision(201)
	require.NoError(t, err)
	assert.Equal(t, 3, rev.Version)
	assert.True(t, rev.IsLatest)
	assert.Equal(t, models.ProposalDraft, rev.Status)
	assert.Empty(t, rev.Signals)
	assert.Zero(t, rev.ViewCount)
	assert.Nil(t, rev.SentAt)
	assert.Equal(t, int64(101), rev.DealID)
	require.Len(t, rev.Timeline, 1)
	assert.Equal(t, models.EventCreated, rev.Timeline[0].Type)

	original, err := s.Proposal(201)
	require.NoError(t, err)
	assert.False(t, original.IsLatest)
	assert.Equal(t, models.ProposalReplaced, original.Status)
	require.NotNil(t, original.ReplacedBy)
	assert.Equal(t, rev.ID, *original.ReplacedBy)

	v1, err := s.Proposal(200)
	require.NoError(t, err)
	assert.Equal(t, int64(201), *v1.ReplacedBy, "older revisions keep their chain")

	latest := 0
	for _, p := range s.Get().Proposals {
		if p.DealID == 101 && p.IsLatest {
			latest++
		}
	}
	assert.Equal(t, 1, latest)

	_, err = s.CreateProposalRevision(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddAndUpdateContract(t *testing.T) {
	s, _, clock := setupStore(t)

	c, err := s.AddContract(NewContract{
		ProposalID:   204,
		DealID:       103,
		LeadName:     "Global Logistics",
		Value:        25000,
		ContractType: models.ContractOneTime,
		LegalName:    "Global Logistics Inc.",
		Timeline:     []models.ContractEvent{{Status: models.ContractGenerated, Timestamp: refNow, Details: "Created from Proposal #204"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContractGenerated, c.Status)
	assert.Equal(t, c.ID, s.Get().Contracts[0].ID)

	clock.Advance(time.Hour)
	sent := models.ContractSent
	sentAt := clock.Now()
	require.NoError(t, s.UpdateContract(c.ID, ContractPatch{Status: &sent, SentAt: &sentAt}))
	require.NoError(t, s.UpdateContract(c.ID, ContractPatch{Status: &sent}))

	got, err := s.Contract(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractSent, got.Status)
	require.NotNil(t, got.SentAt)
	assert.Equal(t, sentAt, *got.SentAt)
	require.Len(t, got.Timeline, 2, "repeated status adds no entry")
	assert.Equal(t, models.ContractSent, got.Timeline[1].Status)

	assert.ErrorIs(t, s.UpdateContract(999, ContractPatch{Status: &sent}), ErrNotFound)
}

func TestFieldOnlyPatchesStampUpdatedAt(t *testing.T) {
	s, _, clock := setupStore(t)
	clock.Advance(time.Hour)

	value := 9500.0
	require.NoError(t, s.UpdateProposal(205, ProposalPatch{Value: &value}))
	prop, err := s.Proposal(205)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), prop.UpdatedAt)

	clock.Advance(time.Hour)
	legal := "Global Logistics Holdings"
	require.NoError(t, s.UpdateContract(301, ContractPatch{Value: &value, LegalName: &legal}))
	c, err := s.Contract(301)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), c.UpdatedAt)
	assert.Equal(t, 9500.0, c.Value)
	assert.Len(t, c.Timeline, len(models.Seed(refNow).Contracts[0].Timeline), "no status change, no timeline entry")
}

func TestToggleFlow(t *testing.T) {
	s, _, _ := setupStore(t)
	before := s.Get().ActiveFlowIDs

	active, err := s.ToggleFlow("meta-1")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Contains(t, s.Get().ActiveFlowIDs, "meta-1")

	active, err = s.ToggleFlow("meta-1")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, before, s.Get().ActiveFlowIDs)

	active, err = s.ToggleFlow("wa-1")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = s.ToggleFlow("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, s.Get().ActiveFlowIDs, "does-not-exist")
}

func TestToggleFlowRemovesRetiredActiveID(t *testing.T) {
	s, _, _ := setupStore(t)
	require.NoError(t, s.Mutate(func(st *models.AppState) error {
		st.ActiveFlowIDs = append(st.ActiveFlowIDs, "retired-1")
		return nil
	}))

	active, err := s.ToggleFlow("retired-1")
	require.NoError(t, err)
	assert.False(t, active)
	assert.NotContains(t, s.Get().ActiveFlowIDs, "retired-1")

	_, err = s.ToggleFlow("retired-1")
	assert.ErrorIs(t, err, ErrNotFound, "a retired id cannot come back")
}

func TestSetMonthlyGoal(t *testing.T) {
	s, _, _ := setupStore(t)
	assert.Error(t, s.SetMonthlyGoal(0))
	assert.Equal(t, float64(models.DefaultMonthlyGoal), s.Get().MonthlyGoal)
	require.NoError(t, s.SetMonthlyGoal(300000))
	assert.Equal(t, 300000.0, s.Get().MonthlyGoal)
}
