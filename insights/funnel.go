// ABOUTME: Cumulative pipeline funnel with conversion and drop-off rates
// ABOUTME: Flags the single stage losing the largest share of its deals
package insights

import "github.com/harperreed/revenueos/models"

// FunnelStages are the stages the funnel walks. Lost deals never enter it.
var FunnelStages = []models.Stage{
	models.StageNewLead, models.StageContacted, models.StageProposalSent,
	models.StageNegotiation, models.StageWon,
}

type FunnelStage struct {
	Stage        models.Stage `json:"name"`
	DealCount    int          `json:"dealCount"`
	Value        float64      `json:"value"`
	InRate       float64      `json:"inRate"`
	LossRate     float64      `json:"lossRate"`
	IsBottleneck bool         `json:"isBottleneck"`
}

// Funnel counts every deal at a stage or any later one, so counts never
// increase along the stage order. Value sums only deals sitting at the stage.
func Funnel(deals []models.Deal) []FunnelStage {
	counts := make([]int, len(FunnelStages))
	for i := range FunnelStages {
		for _, d := range deals {
			if idx := funnelIndex(d.Stage); idx >= i {
				counts[i]++
			}
		}
	}

	out := make([]FunnelStage, len(FunnelStages))
	bottleneck := -1
	maxLoss := 0.0
	for i, stage := range FunnelStages {
		count := counts[i]
		inRate := 100.0
		if i > 0 && counts[i-1] > 0 {
			inRate = float64(count) / float64(counts[i-1]) * 100
		}
		next := count
		if i < len(counts)-1 {
			next = counts[i+1]
		}
		lossRate := 0.0
		if count > 0 {
			lossRate = float64(count-next) / float64(count) * 100
		}
		if i < len(FunnelStages)-1 && lossRate > maxLoss {
			maxLoss = lossRate
			bottleneck = i
		}

		var value float64
		for _, d := range deals {
			if d.Stage == stage {
				value += d.Value
			}
		}

		out[i] = FunnelStage{
			Stage:     stage,
			DealCount: count,
			Value:     value,
			InRate:    inRate,
			LossRate:  lossRate,
		}
	}
	if bottleneck >= 0 {
		out[bottleneck].IsBottleneck = true
	}
	return out
}

func funnelIndex(s models.Stage) int {
	for i, st := range FunnelStages {
		if st == s {
			return i
		}
	}
	return -1
}
