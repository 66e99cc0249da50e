// ABOUTME: Terminal rendering of the dashboard, pipeline board and funnel
// ABOUTME: Plain-text bars sized to the largest value in each chart
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/views"
)

const barWidth = 10

func bar(value, max float64) string {
	if max <= 0 {
		max = 1
	}
	n := int(value * barWidth / max)
	if n > barWidth {
		n = barWidth
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func money(v float64) string {
	if v < 0 {
		return "-$" + views.FormatMoney(-v)
	}
	return "$" + views.FormatMoney(v)
}

func header(out *strings.Builder, title string) {
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  " + title + "\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
}

// RenderDashboard prints the executive dashboard for one scenario.
func RenderDashboard(d views.Dashboard) string {
	var out strings.Builder
	header(&out, fmt.Sprintf("REVENUE OS DASHBOARD (%s)", strings.ToUpper(string(d.Scenario))))

	out.WriteString("REVENUE\n")
	out.WriteString(fmt.Sprintf("  Monthly goal      %s\n", money(d.MonthlyGoal)))
	out.WriteString(fmt.Sprintf("  Open pipeline     %s\n", money(d.PipelineValue)))
	out.WriteString(fmt.Sprintf("  Forecast          %s  %s\n", money(d.Forecast), bar(d.Forecast, d.MonthlyGoal)))
	out.WriteString(fmt.Sprintf("  Gap to goal       %s\n", money(d.GapToGoal)))
	out.WriteString(fmt.Sprintf("  Close rate        %.0f%%\n\n", d.CloseRate))

	out.WriteString(d.ExecutiveSummary.Title + "\n")
	out.WriteString("  " + d.ExecutiveSummary.Message + "\n\n")

	if d.Simulation.WinRateDelta != 0 || d.Simulation.ClosedDeals != 0 {
		out.WriteString("SIMULATION\n")
		out.WriteString(fmt.Sprintf("  %+.0f pts win rate, %d extra deals closed\n", d.Simulation.WinRateDelta, d.Simulation.ClosedDeals))
		out.WriteString(fmt.Sprintf("  Forecast %s, gap %s\n\n", money(d.Simulation.Forecast), money(d.Simulation.Gap)))
	}

	out.WriteString("FUNNEL\n")
	renderFunnel(&out, d.Funnel)
	out.WriteString("\n")

	if len(d.Channels) > 0 {
		out.WriteString("CHANNELS\n")
		for _, c := range d.Channels {
			out.WriteString(fmt.Sprintf("  %-10s %s  win %.0f%%  avg %s\n", c.Channel, money(c.Revenue), c.WinRate, money(c.AvgDealSize)))
		}
		if d.ChannelBest != "" {
			out.WriteString("  " + d.ChannelBest + "\n")
		}
		if d.ChannelWorst != "" {
			out.WriteString("  " + d.ChannelWorst + "\n")
		}
		out.WriteString("\n")
	}

	out.WriteString("DISCIPLINE\n")
	out.WriteString(fmt.Sprintf("  Response time %.0f min (benchmark %.0f)\n", d.Discipline.ResponseTime, d.Discipline.Benchmark.ResponseTime))
	out.WriteString(fmt.Sprintf("  Follow-up rate %.0f%% (benchmark %.0f%%)\n", d.Discipline.FollowUpRate, d.Discipline.Benchmark.FollowUpRate))
	out.WriteString(fmt.Sprintf("  Overdue actions %d\n", d.Discipline.Overdue))

	if len(d.Recommendations) > 0 {
		out.WriteString("\nRECOMMENDATIONS\n")
		for _, r := range d.Recommendations {
			out.WriteString(fmt.Sprintf("  ⚠️  %s\n     %s\n", r.Title, r.Explanation))
		}
	}
	return out.String()
}

// RenderFunnel prints the funnel on its own.
func RenderFunnel(stages []insights.FunnelStage) string {
	var out strings.Builder
	out.WriteString("PIPELINE FUNNEL\n")
	renderFunnel(&out, stages)
	return out.String()
}

func renderFunnel(out *strings.Builder, stages []insights.FunnelStage) {
	maxCount := 0
	for _, s := range stages {
		if s.DealCount > maxCount {
			maxCount = s.DealCount
		}
	}
	for _, s := range stages {
		flag := ""
		if s.IsBottleneck {
			flag = "  ← bottleneck"
		}
		out.WriteString(fmt.Sprintf("  %-14s %s  %2d  in %3.0f%%  loss %3.0f%%%s\n",
			s.Stage, bar(float64(s.DealCount), float64(maxCount)), s.DealCount, s.InRate, s.LossRate, flag))
	}
}

// RenderPipeline prints the board as one line per stage plus the header totals.
func RenderPipeline(p views.Pipeline) string {
	var out strings.Builder
	header(&out, "PIPELINE")

	maxValue := 0.0
	for _, c := range p.Columns {
		if c.Value > maxValue {
			maxValue = c.Value
		}
	}
	for _, c := range p.Columns {
		out.WriteString(fmt.Sprintf("  %-14s %s  %2d (%s)\n", c.Stage, bar(c.Value, maxValue), len(c.Deals), money(c.Value)))
	}
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("  Pipeline %s  Expected %s  Gap %s\n", money(p.PipelineValue), money(p.ExpectedRevenue), money(p.GapToGoal)))
	if p.Manager.Bottleneck != "" {
		out.WriteString(fmt.Sprintf("  Bottleneck: %s\n", p.Manager.Bottleneck))
	}
	return out.String()
}
