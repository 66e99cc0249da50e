// ABOUTME: Acquisition channel performance: revenue, win rate, deal size, time to close
// ABOUTME: Also produces the best/worst channel summary sentences
package insights

import (
	"fmt"
	"sort"

	"github.com/harperreed/revenueos/models"
)

// ReportedChannels are the channels the dashboard compares.
var ReportedChannels = []models.Origin{
	models.OriginWhatsApp, models.OriginInstagram, models.OriginWebsite, models.OriginReferral,
}

type ChannelStats struct {
	Channel        models.Origin `json:"channel"`
	Revenue        float64       `json:"revenue"`
	WinRate        float64       `json:"winRate"`
	AvgDealSize    float64       `json:"avgDealSize"`
	AvgTimeToClose float64       `json:"avgTimeToClose"` // days
}

// ChannelPerformance omits channels without leads and sorts by revenue, highest first.
func ChannelPerformance(leads []models.Lead, deals []models.Deal) []ChannelStats {
	var out []ChannelStats
	for _, ch := range ReportedChannels {
		byID := map[int64]models.Lead{}
		for _, l := range leads {
			if l.Origin == ch {
				byID[l.ID] = l
			}
		}
		if len(byID) == 0 {
			continue
		}

		var won int
		var revenue, closeDays float64
		for _, d := range deals {
			lead, ok := byID[d.LeadID]
			if !ok || d.Stage != models.StageWon {
				continue
			}
			won++
			revenue += d.Value
			closeDays += daysBetween(lead.CreatedAt, d.StageEnteredAt)
		}

		stats := ChannelStats{
			Channel: ch,
			Revenue: revenue,
			WinRate: float64(won) / float64(len(byID)) * 100,
		}
		if won > 0 {
			stats.AvgDealSize = revenue / float64(won)
			stats.AvgTimeToClose = closeDays / float64(won)
		}
		out = append(out, stats)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// ChannelSummary names the top channel by revenue and the weakest by win rate.
func ChannelSummary(perf []ChannelStats) (best, worst string) {
	if len(perf) == 0 {
		return "N/A", "N/A"
	}
	top := perf[0]
	low := perf[0]
	for _, p := range perf[1:] {
		if p.WinRate < low.WinRate {
			low = p
		}
	}
	best = fmt.Sprintf("%s is the top performer, with a %d%% win rate.", top.Channel, int(Round(top.WinRate)))
	worst = fmt.Sprintf("%s has the lowest win rate. Consider re-evaluating lead quality from this source.", low.Channel)
	return best, worst
}
