// ABOUTME: Tests for the pipeline controller and the deal coach
// ABOUTME: Runs against an in-memory store at a fixed reference time

package controllers

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
)

var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*store.Store, *notify.Service) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), store.WithClock(func() time.Time { return refNow }))
	require.NoError(t, s.Load())
	return s, notify.New(notify.WithDuration(time.Hour))
}

func toastText(t *testing.T, n *notify.Service) (notify.Kind, string) {
	t.Helper()
	cur, ok := n.Current()
	require.True(t, ok, "expected a toast")
	return cur.Kind, cur.Message
}

func TestDropOnSameStageDoesNothing(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)

	require.NoError(t, c.DragStart(104))
	c.DragOver(models.StageNewLead)
	assert.Empty(t, c.DragOverStage(), "own column is never highlighted")

	assert.False(t, c.Drop(models.StageNewLead))
	_, open := c.Modal()
	assert.False(t, open)
}

func TestDropOpensMoveModalWithDefaults(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)

	require.NoError(t, c.DragStart(104))
	c.DragOver(models.StageContacted)
	assert.Equal(t, models.StageContacted, c.DragOverStage())
	require.True(t, c.Drop(models.StageContacted))
	assert.Empty(t, c.DragOverStage())

	m, ok := c.Modal()
	require.True(t, ok)
	assert.Equal(t, int64(104), m.DealID)
	assert.Equal(t, int64(4), m.LeadID)
	assert.Equal(t, models.StageContacted, m.TargetStage)
	require.NotNil(t, m.Form.DueDate)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), *m.Form.DueDate)
	assert.Equal(t, "WhatsApp", m.Form.Channel)
	assert.Equal(t, "Price", m.Form.LossReason)
	assert.Equal(t, "Stripe", m.Form.PaymentMethod)
	assert.Empty(t, m.Form.NextAction)
}

func TestDragStartUnknownDeal(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	assert.ErrorIs(t, c.DragStart(999), store.ErrNotFound)
	assert.False(t, c.Drop(models.StageWon))
}

func TestSaveMoveRequiresNextAction(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	require.NoError(t, c.OpenMove(104, models.StageContacted))

	err := c.SaveMove()
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Next Action and Due Date are mandatory.", verr.Message)

	m, ok := c.Modal()
	require.True(t, ok, "modal stays open")
	assert.Equal(t, "Next Action and Due Date are mandatory.", m.Error)

	deal, err := s.Deal(104)
	require.NoError(t, err)
	assert.Equal(t, models.StageNewLead, deal.Stage)
}

func TestSaveMoveUpdatesDealAndLead(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	require.NoError(t, c.OpenMove(104, models.StageContacted))
	c.EditMove(func(f *MoveForm) { f.NextAction = "Call back" })

	require.NoError(t, c.SaveMove())

	deal, err := s.Deal(104)
	require.NoError(t, err)
	assert.Equal(t, models.StageContacted, deal.Stage)

	lead, err := s.Lead(4)
	require.NoError(t, err)
	assert.Equal(t, "Call back", lead.NextActionText)
	assert.False(t, lead.ActionCompleted)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), *lead.DueDate)
	assert.Equal(t, `Deal moved to Contacted. Next action: "Call back"`, lead.ActivityLog[0].Description)

	kind, msg := toastText(t, n)
	assert.Equal(t, notify.Success, kind)
	assert.Equal(t, "Deal moved to Contacted", msg)

	_, open := c.Modal()
	assert.False(t, open)
}

func TestSaveMoveToWonSetsFinalValue(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	require.NoError(t, c.OpenMove(101, models.StageWon))
	c.EditMove(func(f *MoveForm) {
		f.NextAction = "Kickoff"
		f.FinalValue = 18000
	})
	require.NoError(t, c.SaveMove())

	deal, err := s.Deal(101)
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, deal.Stage)
	assert.Equal(t, 18000.0, deal.Value)
}

func TestSaveMoveToLostLogsReason(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	require.NoError(t, c.OpenMove(102, models.StageLost))
	c.EditMove(func(f *MoveForm) {
		f.NextAction = "Archive"
		f.LossReason = "Timing"
	})
	require.NoError(t, c.SaveMove())

	lead, err := s.Lead(2)
	require.NoError(t, err)
	assert.Equal(t, "Loss Reason: Timing", lead.ActivityLog[0].Description)
	assert.Equal(t, `Deal moved to Lost. Next action: "Archive"`, lead.ActivityLog[1].Description)

	deal, err := s.Deal(102)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, deal.Value, "lost deals keep their value")
}

func TestSaveMovePublishesOneSnapshot(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	var seen []models.AppState
	s.Subscribe(func(st models.AppState) error { seen = append(seen, st); return nil })

	require.NoError(t, c.OpenMove(101, models.StageWon))
	c.EditMove(func(f *MoveForm) {
		f.NextAction = "Kickoff"
		f.FinalValue = 18000
	})
	require.NoError(t, c.SaveMove())

	require.Len(t, seen, 1, "subscribers never observe a half-applied move")
	var deal models.Deal
	for _, d := range seen[0].Deals {
		if d.ID == 101 {
			deal = d
		}
	}
	assert.Equal(t, models.StageWon, deal.Stage)
	assert.Equal(t, 18000.0, deal.Value)
}

func TestOpenMoveRejectsUnknownStage(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	assert.ErrorIs(t, c.OpenMove(101, models.Stage("Limbo")), ErrValidation)
	assert.ErrorIs(t, c.OpenMove(999, models.StageWon), store.ErrNotFound)
}

func TestPipelineToggleComplete(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)

	require.NoError(t, c.ToggleComplete(5))
	lead, err := s.Lead(5)
	require.NoError(t, err)
	assert.False(t, lead.ActionCompleted)
	assert.Equal(t, `Action "Final pricing call" marked as incomplete.`, lead.ActivityLog[0].Description)
	_, msg := toastText(t, n)
	assert.Equal(t, "Action marked incomplete.", msg)

	require.NoError(t, c.ToggleComplete(5))
	lead, err = s.Lead(5)
	require.NoError(t, err)
	assert.True(t, lead.ActionCompleted)
	assert.Equal(t, `Action "Final pricing call" completed.`, lead.ActivityLog[0].Description)
	_, msg = toastText(t, n)
	assert.Equal(t, "Action completed!", msg)
}

func TestPipelineReschedule(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	due := time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC)

	require.NoError(t, c.Reschedule(4, due))
	lead, err := s.Lead(4)
	require.NoError(t, err)
	assert.Equal(t, due, *lead.DueDate)
	assert.Equal(t, "Action rescheduled to Mar 25, 2026.", lead.ActivityLog[0].Description)
	_, msg := toastText(t, n)
	assert.Equal(t, "Action rescheduled.", msg)
}

func TestDetailFollowsStore(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)

	_, open := c.Detail()
	assert.False(t, open)

	c.OpenDetail(104)
	d, ok := c.Detail()
	require.True(t, ok)
	assert.Equal(t, models.StageNewLead, d.Stage)

	require.NoError(t, s.UpdateDealStage(104, models.StageContacted))
	d, ok = c.Detail()
	require.True(t, ok)
	assert.Equal(t, models.StageContacted, d.Stage)

	c.CloseDetail()
	_, open = c.Detail()
	assert.False(t, open)
}

func TestManagerViewToggle(t *testing.T) {
	s, n := setup(t)
	c := NewPipelineController(s, n)
	assert.False(t, c.ManagerView())
	assert.True(t, c.ToggleManagerView())
	assert.False(t, c.ToggleManagerView())
}

func TestCoachRepliesAfterDelay(t *testing.T) {
	_, n := setup(t)
	coach := NewCoach(n, 10*time.Millisecond)

	id := coach.Ask(101, "Price objection")
	st := coach.State()
	assert.Equal(t, id, st.RequestID)
	assert.True(t, st.Open)
	assert.True(t, st.Thinking)
	assert.Empty(t, st.Response)

	assert.Eventually(t, func() bool {
		st := coach.State()
		return !st.Thinking && len(st.Response) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, CoachSuggestions, coach.State().Response)

	coach.Copy(CoachSuggestions[0])
	_, msg := toastText(t, n)
	assert.Equal(t, "Message copied to clipboard!", msg)
}

func TestCoachDropsSupersededReply(t *testing.T) {
	_, n := setup(t)
	coach := NewCoach(n, 20*time.Millisecond)

	var mu sync.Mutex
	var delivered []string
	coach.OnUpdate(func(st CoachState) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, st.RequestID)
	})

	first := coach.Ask(101, "Price")
	second := coach.Ask(102, "Authority")
	require.NotEqual(t, first, second)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{second}, delivered)
	mu.Unlock()
	assert.Equal(t, int64(102), coach.State().DealID)
}

func TestCoachCloseDropsPendingReply(t *testing.T) {
	_, n := setup(t)
	coach := NewCoach(n, 10*time.Millisecond)

	coach.Ask(101, "Price")
	coach.Close()
	time.Sleep(30 * time.Millisecond)

	st := coach.State()
	assert.False(t, st.Open)
	assert.Empty(t, st.Response)
}
