// ABOUTME: Team roster of reps augmented with discipline, tier, streaks, badges and weekly deltas
// ABOUTME: Persisted under its own slot together with the seed that produced the deltas
package team

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
)

// DefaultFocus is used when a member has no coaching needs.
const DefaultFocus = "Scaling Consistency"

// coachedRepID receives the demo coaching plan.
const coachedRepID = 2

type CoachingAction struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type CoachingPlan struct {
	Goal     string           `json:"goal"`
	Actions  []CoachingAction `json:"actions"`
	DueDate  time.Time        `json:"dueDate"`
	Progress int              `json:"progress"`
}

type WeeklyDelta struct {
	Revenue    float64 `json:"revenue"`
	Discipline float64 `json:"discipline"`
}

// Rep is a team member plus the derived coaching view.
type Rep struct {
	models.TeamMember
	DisciplineScore int              `json:"disciplineScore"`
	CurrentTier     insights.Tier    `json:"currentTier"`
	Streaks         insights.Streaks `json:"streaks"`
	Badges          []insights.Badge `json:"badges"`
	WeeklyDelta     WeeklyDelta      `json:"weeklyDelta"`
	CurrentFocus    string           `json:"currentFocus"`
	CoachingPlan    *CoachingPlan    `json:"coachingPlan,omitempty"`
}

func (r Rep) clone() Rep {
	r.NeedsCoaching = slices.Clone(r.NeedsCoaching)
	r.Badges = slices.Clone(r.Badges)
	if r.CoachingPlan != nil {
		plan := *r.CoachingPlan
		plan.Actions = slices.Clone(plan.Actions)
		r.CoachingPlan = &plan
	}
	return r
}

// snapshot is the persisted form.
type snapshot struct {
	Seed int64 `json:"seed"`
	Reps []Rep `json:"reps"`
}

// NewSeed draws a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Augment derives reps from members. Weekly deltas are drawn from a generator
// seeded with seed, revenue then discipline, in roster order.
func Augment(members []models.TeamMember, seed int64, now time.Time) []Rep {
	rng := rand.New(rand.NewSource(seed))
	reps := make([]Rep, 0, len(members))
	for _, m := range members {
		discipline := insights.DisciplineScore(m.AvgResponseTime, m.FollowUpRate)
		rep := Rep{
			TeamMember:      m,
			DisciplineScore: discipline,
			CurrentTier:     insights.TierFor(discipline, m.Revenue),
			Streaks:         insights.StreaksFor(m),
			Badges:          insights.Badges(m),
			WeeklyDelta: WeeklyDelta{
				Revenue:    (rng.Float64() - 0.3) * 15000,
				Discipline: (rng.Float64() - 0.4) * 10,
			},
			CurrentFocus: DefaultFocus,
		}
		if len(m.NeedsCoaching) > 0 {
			rep.CurrentFocus = m.NeedsCoaching[0]
		}
		if m.ID == coachedRepID {
			rep.CoachingPlan = demoPlan(now)
		}
		reps = append(reps, rep.clone())
	}
	return reps
}

func demoPlan(now time.Time) *CoachingPlan {
	return &CoachingPlan{
		Goal: "Achieve >90% follow-up rate for 2 consecutive weeks.",
		Actions: []CoachingAction{
			{Text: `Set reminders for all "Proposal Viewed" events.`, Completed: true},
			{Text: "Use Lucas AI script for follow-ups.", Completed: false},
			{Text: "Review overdue actions at EOD.", Completed: false},
		},
		DueDate:  now.Add(7 * 24 * time.Hour),
		Progress: 33,
	}
}

// Roster owns the persisted team snapshot.
type Roster struct {
	backend store.Backend
	logger  *log.Logger

	mu   sync.RWMutex
	snap snapshot
}

// Open loads the roster from backend. When nothing usable is stored it is
// rebuilt from members with seed (a zero seed draws a fresh one) and saved.
func Open(backend store.Backend, members []models.TeamMember, seed int64, now time.Time, logger *log.Logger) (*Roster, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Roster{backend: backend, logger: logger}

	data, err := backend.Get([]byte(store.KeyTeam))
	switch {
	case err == nil:
		if snap, ok := decode(data); ok {
			r.snap = snap
			return r, nil
		}
		logger.Warn("team snapshot unreadable, rebuilding roster")
	case !errors.Is(err, store.ErrSlotNotFound):
		return nil, fmt.Errorf("failed to read team snapshot: %w", err)
	}

	if err := r.rebuild(members, seed, now); err != nil {
		return nil, err
	}
	return r, nil
}

// decode accepts the seeded snapshot or a bare list of reps.
func decode(data []byte) (snapshot, bool) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Reps != nil {
		return snap, true
	}
	var reps []Rep
	if err := json.Unmarshal(data, &reps); err == nil && reps != nil {
		return snapshot{Reps: reps}, true
	}
	return snapshot{}, false
}

func (r *Roster) rebuild(members []models.TeamMember, seed int64, now time.Time) error {
	if seed == 0 {
		drawn, err := NewSeed()
		if err != nil {
			return err
		}
		seed = drawn
	}
	r.mu.Lock()
	r.snap = snapshot{Seed: seed, Reps: Augment(members, seed, now)}
	r.mu.Unlock()
	return r.save()
}

// Reset rebuilds from members with the current seed.
func (r *Roster) Reset(members []models.TeamMember, now time.Time) error {
	return r.rebuild(members, r.Seed(), now)
}

func (r *Roster) save() error {
	r.mu.RLock()
	data, err := json.Marshal(r.snap)
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode team snapshot: %w", err)
	}
	if err := r.backend.Set([]byte(store.KeyTeam), data); err != nil {
		r.logger.Error("failed to persist team snapshot", "err", err)
		return fmt.Errorf("failed to persist team snapshot: %w", err)
	}
	return nil
}

// Seed is the generator seed behind the stored deltas.
func (r *Roster) Seed() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.Seed
}

// Reps returns a copy of the roster in stored order.
func (r *Roster) Reps() []Rep {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rep, len(r.snap.Reps))
	for i, rep := range r.snap.Reps {
		out[i] = rep.clone()
	}
	return out
}

func (r *Roster) Rep(id int64) (Rep, error) {
	for _, rep := range r.Reps() {
		if rep.ID == id {
			return rep, nil
		}
	}
	return Rep{}, fmt.Errorf("rep %d: %w", id, store.ErrNotFound)
}

// ToggleCoachingAction flips one plan action, recomputes progress and persists.
func (r *Roster) ToggleCoachingAction(repID int64, index int) (CoachingPlan, error) {
	r.mu.Lock()
	i := slices.IndexFunc(r.snap.Reps, func(rep Rep) bool { return rep.ID == repID })
	if i < 0 {
		r.mu.Unlock()
		return CoachingPlan{}, fmt.Errorf("rep %d: %w", repID, store.ErrNotFound)
	}
	rep := r.snap.Reps[i].clone()
	if rep.CoachingPlan == nil {
		r.mu.Unlock()
		return CoachingPlan{}, fmt.Errorf("rep %d has no coaching plan", repID)
	}
	plan := rep.CoachingPlan
	if index < 0 || index >= len(plan.Actions) {
		r.mu.Unlock()
		return CoachingPlan{}, fmt.Errorf("coaching action %d out of range (0-%d)", index, len(plan.Actions)-1)
	}
	plan.Actions[index].Completed = !plan.Actions[index].Completed
	done := 0
	for _, a := range plan.Actions {
		if a.Completed {
			done++
		}
	}
	plan.Progress = int(insights.Round(float64(done) / float64(len(plan.Actions)) * 100))
	r.snap.Reps[i] = rep
	out := *plan
	out.Actions = slices.Clone(plan.Actions)
	r.mu.Unlock()

	return out, r.save()
}
