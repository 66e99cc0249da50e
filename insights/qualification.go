// ABOUTME: Inbox qualification scoring from budget, urgency, fit and intent
// ABOUTME: Maps the score onto the Hot/Warm/Cold lead priority
package insights

import "github.com/harperreed/revenueos/models"

var (
	budgetPoints = map[models.Budget]int{
		models.BudgetNone: 0, models.BudgetLow: 10, models.BudgetMedium: 20, models.BudgetHigh: 30,
	}
	urgencyPoints = map[models.Urgency]int{
		models.UrgencyResearching: 5, models.UrgencyThisMonth: 15, models.UrgencyThisWeek: 25, models.UrgencyToday: 30,
	}
	fitPoints = map[models.Fit]int{
		models.FitNone: 0, models.FitPartial: 15, models.FitPerfect: 30,
	}
	intentPoints = map[models.Intent]int{
		models.IntentGeneral: 5, models.IntentPricing: 10, models.IntentBooking: 10, models.IntentProposal: 10,
	}
)

// QualificationScore sums the four answer weights. Unknown answers score 0.
func QualificationScore(q models.Qualification) int {
	return budgetPoints[q.Budget] + urgencyPoints[q.Urgency] + fitPoints[q.Fit] + intentPoints[q.Intent]
}

// PriorityFor buckets a qualification score.
func PriorityFor(score int) models.Priority {
	switch {
	case score >= 75:
		return models.PriorityHot
	case score >= 45:
		return models.PriorityWarm
	default:
		return models.PriorityCold
	}
}
