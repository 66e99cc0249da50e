// ABOUTME: Tests for roster augmentation, persistence, leaderboards and coaching
package team

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
)

var now = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func members() []models.TeamMember {
	return models.Seed(now).TeamPerformance
}

func openRoster(t *testing.T, backend store.Backend, seed int64) *Roster {
	t.Helper()
	r, err := Open(backend, members(), seed, now, nil)
	require.NoError(t, err)
	return r
}

func TestAugment(t *testing.T) {
	reps := Augment(members(), 42, now)
	require.Len(t, reps, 3)

	anna, bruno, carla := reps[0], reps[1], reps[2]
	assert.Equal(t, 91, anna.DisciplineScore)
	assert.Equal(t, insights.TierGold, anna.CurrentTier)
	assert.Equal(t, DefaultFocus, anna.CurrentFocus)
	assert.Equal(t, insights.Streaks{FollowUp: 3, Response: 0}, anna.Streaks)

	assert.Equal(t, 78, bruno.DisciplineScore)
	assert.Equal(t, insights.TierSilver, bruno.CurrentTier)
	assert.Equal(t, "Follow-up discipline", bruno.CurrentFocus)
	require.NotNil(t, bruno.CoachingPlan)
	assert.Equal(t, 33, bruno.CoachingPlan.Progress)
	assert.Equal(t, now.Add(7*24*time.Hour), bruno.CoachingPlan.DueDate)

	assert.Equal(t, 96, carla.DisciplineScore)
	assert.Equal(t, insights.TierElite, carla.CurrentTier)
	assert.Equal(t, []insights.Badge{insights.BadgeFollowUpMaster, insights.BadgeNegotiationNinja, insights.BadgeConsistency}, carla.Badges)
	assert.Nil(t, carla.CoachingPlan)

	for _, rep := range reps {
		assert.GreaterOrEqual(t, rep.WeeklyDelta.Revenue, -0.3*15000)
		assert.Less(t, rep.WeeklyDelta.Revenue, 0.7*15000)
		assert.GreaterOrEqual(t, rep.WeeklyDelta.Discipline, -4.0)
		assert.Less(t, rep.WeeklyDelta.Discipline, 6.0)
	}
}

func TestAugmentIsDeterministicPerSeed(t *testing.T) {
	assert.Equal(t, Augment(members(), 7, now), Augment(members(), 7, now))
	assert.NotEqual(t, Augment(members(), 7, now)[0].WeeklyDelta, Augment(members(), 8, now)[0].WeeklyDelta)
}

func TestOpenPersistsAndReloads(t *testing.T) {
	backend := store.NewMemoryBackend()
	first := openRoster(t, backend, 0)
	assert.NotZero(t, first.Seed(), "zero seed draws a fresh one")

	data, err := backend.Get([]byte(store.KeyTeam))
	require.NoError(t, err)
	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Contains(t, stored, "seed")
	assert.Contains(t, stored, "reps")

	second := openRoster(t, backend, 0)
	assert.Equal(t, first.Seed(), second.Seed())
	assert.Equal(t, first.Reps()[1].WeeklyDelta, second.Reps()[1].WeeklyDelta)
}

func TestOpenAcceptsBareRepList(t *testing.T) {
	backend := store.NewMemoryBackend()
	data, err := json.Marshal(Augment(members(), 3, now))
	require.NoError(t, err)
	require.NoError(t, backend.Set([]byte(store.KeyTeam), data))

	r := openRoster(t, backend, 99)
	assert.Len(t, r.Reps(), 3)
	assert.Zero(t, r.Seed())
}

func TestOpenRebuildsUnreadableSnapshot(t *testing.T) {
	backend := store.NewMemoryBackend()
	require.NoError(t, backend.Set([]byte(store.KeyTeam), []byte("garbage")))
	r := openRoster(t, backend, 5)
	assert.Equal(t, int64(5), r.Seed())
	assert.Len(t, r.Reps(), 3)
}

func TestLeaderboards(t *testing.T) {
	r := openRoster(t, store.NewMemoryBackend(), 42)

	names := func(reps []Rep) []string {
		var out []string
		for _, rep := range reps {
			out = append(out, rep.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Carla Dias", "Anna Silva", "Bruno Costa"}, names(r.Leaderboard(TabResponseTime)))
	assert.Equal(t, []string{"Carla Dias", "Anna Silva", "Bruno Costa"}, names(r.Leaderboard(TabTopCloser)))
	assert.Equal(t, []string{"Carla Dias", "Anna Silva", "Bruno Costa"}, names(r.Leaderboard(TabConsistency)))

	improvement := r.Leaderboard(TabImprovement)
	for i := 1; i < len(improvement); i++ {
		assert.GreaterOrEqual(t, improvement[i-1].WeeklyDelta.Discipline, improvement[i].WeeklyDelta.Discipline)
	}

	_, err := ParseLeaderboardTab("fastest")
	assert.Error(t, err)
}

func TestMomentumAndSignals(t *testing.T) {
	r := openRoster(t, store.NewMemoryBackend(), 42)

	m := r.Momentum()
	assert.Equal(t, 387000.0, m.Revenue)
	assert.Equal(t, 25, m.DealsWon)
	assert.InDelta(t, 88.33, m.AvgDiscipline, 0.01)
	assert.Equal(t, 5, m.TeamStreak)

	signals := r.CoachingSignals()
	require.Len(t, signals, 1)
	assert.Equal(t, "Bruno Costa", signals[0].Name)

	copilot := r.ManagerCopilot()
	require.Len(t, copilot.Top, 1)
	assert.Equal(t, int64(2), copilot.Top[0].ID)
	assert.Contains(t, copilot.RecommendedChallenge, "95%")
}

func TestCoachFor(t *testing.T) {
	assert.Equal(t, "7-Day Follow-up Streak", CoachFor(Rep{CurrentFocus: "Follow-up discipline"}).Challenge)
	assert.Equal(t, "Close a stalled deal", CoachFor(Rep{CurrentFocus: "Negotiation skills"}).Challenge)

	def := CoachFor(Rep{CurrentFocus: DefaultFocus})
	assert.Equal(t, "Mentor a teammate", def.Challenge)
	assert.Empty(t, def.Script)
}

func TestToggleCoachingAction(t *testing.T) {
	backend := store.NewMemoryBackend()
	r := openRoster(t, backend, 42)

	plan, err := r.ToggleCoachingAction(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 67, plan.Progress)

	plan, err = r.ToggleCoachingAction(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 33, plan.Progress)
	assert.False(t, plan.Actions[0].Completed)

	reloaded := openRoster(t, backend, 42)
	bruno, err := reloaded.Rep(2)
	require.NoError(t, err)
	assert.Equal(t, 33, bruno.CoachingPlan.Progress)
	assert.True(t, bruno.CoachingPlan.Actions[1].Completed)

	_, err = r.ToggleCoachingAction(1, 0)
	assert.Error(t, err, "anna has no plan")
	_, err = r.ToggleCoachingAction(2, 5)
	assert.Error(t, err)
	_, err = r.ToggleCoachingAction(99, 0)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReset(t *testing.T) {
	r := openRoster(t, store.NewMemoryBackend(), 42)
	_, err := r.ToggleCoachingAction(2, 1)
	require.NoError(t, err)

	require.NoError(t, r.Reset(members(), now))
	bruno, err := r.Rep(2)
	require.NoError(t, err)
	assert.Equal(t, 33, bruno.CoachingPlan.Progress)
	assert.Equal(t, int64(42), r.Seed())
}
