// ABOUTME: Team leaderboards, momentum, coaching signals, manager copilot and rep coaching
// ABOUTME: All projections read the roster snapshot and never mutate it
package team

import (
	"fmt"
	"sort"
)

type LeaderboardTab string

const (
	TabImprovement  LeaderboardTab = "improvement"
	TabConsistency  LeaderboardTab = "consistency"
	TabResponseTime LeaderboardTab = "response_time"
	TabTopCloser    LeaderboardTab = "top_closer"
)

var LeaderboardTabs = []LeaderboardTab{TabImprovement, TabConsistency, TabResponseTime, TabTopCloser}

func ParseLeaderboardTab(s string) (LeaderboardTab, error) {
	for _, t := range LeaderboardTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid leaderboard: %s (valid: improvement, consistency, response_time, top_closer)", s)
}

// Leaderboard orders reps for tab. Ties keep roster order.
func (r *Roster) Leaderboard(tab LeaderboardTab) []Rep {
	reps := r.Reps()
	var less func(a, b Rep) bool
	switch tab {
	case TabImprovement:
		less = func(a, b Rep) bool { return a.WeeklyDelta.Discipline > b.WeeklyDelta.Discipline }
	case TabConsistency:
		less = func(a, b Rep) bool { return a.Streaks.FollowUp > b.Streaks.FollowUp }
	case TabResponseTime:
		less = func(a, b Rep) bool { return a.AvgResponseTime < b.AvgResponseTime }
	case TabTopCloser:
		less = func(a, b Rep) bool { return a.DealsWon > b.DealsWon }
	default:
		return reps
	}
	sort.SliceStable(reps, func(i, j int) bool { return less(reps[i], reps[j]) })
	return reps
}

type Momentum struct {
	Revenue       float64 `json:"revenue"`
	DealsWon      int     `json:"dealsWon"`
	AvgDiscipline float64 `json:"avgDiscipline"`
	TeamStreak    int     `json:"teamStreak"`
}

// teamStreak is a fixed demo figure.
const teamStreak = 5

func (r *Roster) Momentum() Momentum {
	reps := r.Reps()
	m := Momentum{TeamStreak: teamStreak}
	total := 0
	for _, rep := range reps {
		m.Revenue += rep.Revenue
		m.DealsWon += rep.DealsWon
		total += rep.DisciplineScore
	}
	if len(reps) > 0 {
		m.AvgDiscipline = float64(total) / float64(len(reps))
	}
	return m
}

// disciplineAlert is the score under which a rep needs attention.
const disciplineAlert = 80

// CoachingSignals lists reps below the discipline alert, weakest first.
func (r *Roster) CoachingSignals() []Rep {
	var out []Rep
	for _, rep := range r.Reps() {
		if rep.DisciplineScore < disciplineAlert {
			out = append(out, rep)
		}
	}
	sortByDiscipline(out)
	return out
}

type Copilot struct {
	Top                  []Rep  `json:"top3"`
	RecommendedChallenge string `json:"recommendedChallenge"`
}

// ManagerCopilot picks up to three reps with weak discipline or a revenue
// drop of more than 5000 this week.
func (r *Roster) ManagerCopilot() Copilot {
	var attention []Rep
	for _, rep := range r.Reps() {
		if rep.DisciplineScore < disciplineAlert || rep.WeeklyDelta.Revenue < -5000 {
			attention = append(attention, rep)
		}
	}
	sortByDiscipline(attention)
	if len(attention) > 3 {
		attention = attention[:3]
	}
	return Copilot{
		Top:                  attention,
		RecommendedChallenge: "Team goal: Achieve a 95% collective follow-up rate this week.",
	}
}

func sortByDiscipline(reps []Rep) {
	sort.SliceStable(reps, func(i, j int) bool { return reps[i].DisciplineScore < reps[j].DisciplineScore })
}

// Coaching is the suggested next step for a rep's current focus.
type Coaching struct {
	Bottleneck string `json:"bottleneck"`
	Action     string `json:"action"`
	Script     string `json:"script,omitempty"`
	Challenge  string `json:"challenge"`
}

func CoachFor(rep Rep) Coaching {
	switch rep.CurrentFocus {
	case "Follow-up discipline":
		return Coaching{
			Bottleneck: "Follow-ups after proposal views are inconsistent.",
			Action:     `Set a task to follow-up within 3 hours of every "Proposal Viewed" notification.`,
			Script:     "Hi [Client Name], just wanted to check if you had any initial thoughts on the proposal I sent over. Happy to clarify any points!",
			Challenge:  "7-Day Follow-up Streak",
		}
	case "Negotiation skills":
		return Coaching{
			Bottleneck: "Deals are stalling in the negotiation stage.",
			Action:     "When a client mentions price, re-validate the value before offering a discount.",
			Script:     "I understand the budget is a key factor. Before we discuss numbers, can we quickly confirm that the proposed solution solves your main problem effectively?",
			Challenge:  "Close a stalled deal",
		}
	default:
		return Coaching{
			Bottleneck: "Performance is strong. The next level is about scaling your success.",
			Action:     "Identify the top 3 characteristics of your last 5 won deals to build a high-probability target profile.",
			Challenge:  "Mentor a teammate",
		}
	}
}
