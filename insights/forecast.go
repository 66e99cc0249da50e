// ABOUTME: Weighted revenue forecast, what-if simulation and goal gap
// ABOUTME: Two probability tables exist: the dashboard's and the pipeline board's
package insights

import "github.com/harperreed/revenueos/models"

// ProbabilityTable maps a stage to its win probability.
type ProbabilityTable map[models.Stage]float64

// DashboardProbabilities weights the executive dashboard forecast.
var DashboardProbabilities = ProbabilityTable{
	models.StageNewLead:      0.05,
	models.StageContacted:    0.15,
	models.StageProposalSent: 0.40,
	models.StageNegotiation:  0.75,
	models.StageWon:          1,
	models.StageLost:         0,
}

// PipelineProbabilities weights the pipeline board's expected revenue.
var PipelineProbabilities = ProbabilityTable{
	models.StageNewLead:      0.20,
	models.StageContacted:    0.35,
	models.StageProposalSent: 0.55,
	models.StageNegotiation:  0.75,
	models.StageWon:          1,
	models.StageLost:         0,
}

// ActiveDeals filters out Won and Lost deals.
func ActiveDeals(deals []models.Deal) []models.Deal {
	var out []models.Deal
	for _, d := range deals {
		if !d.Stage.IsTerminal() {
			out = append(out, d)
		}
	}
	return out
}

// PipelineValue sums the value of active deals.
func PipelineValue(deals []models.Deal) float64 {
	var sum float64
	for _, d := range ActiveDeals(deals) {
		sum += d.Value
	}
	return sum
}

// Forecast is the probability-weighted value of active deals.
func Forecast(deals []models.Deal, table ProbabilityTable) float64 {
	var sum float64
	for _, d := range ActiveDeals(deals) {
		sum += d.Value * table[d.Stage]
	}
	return sum
}

// Simulate overlays a win-rate delta (percentage points) and a count of extra
// deals assumed closed at negotiation odds on top of the base forecast.
func Simulate(deals []models.Deal, table ProbabilityTable, winRateDelta float64, closedCount int) float64 {
	base := Forecast(deals, table)
	active := ActiveDeals(deals)
	if len(active) == 0 {
		return base
	}
	pipeline := PipelineValue(deals)
	avgDeal := pipeline / float64(len(active))
	winRateImpact := pipeline * (winRateDelta / 100)
	closedImpact := float64(closedCount) * avgDeal * table[models.StageNegotiation]
	return base + winRateImpact + closedImpact
}

// GapToGoal is the shortfall against the goal, never negative.
func GapToGoal(goal, forecast float64) float64 {
	if gap := goal - forecast; gap > 0 {
		return gap
	}
	return 0
}

// CloseRate is won/(won+lost) as a percentage, 0 when nothing has closed.
func CloseRate(deals []models.Deal) float64 {
	var won, lost int
	for _, d := range deals {
		switch d.Stage {
		case models.StageWon:
			won++
		case models.StageLost:
			lost++
		}
	}
	if won+lost == 0 {
		return 0
	}
	return float64(won) / float64(won+lost) * 100
}
