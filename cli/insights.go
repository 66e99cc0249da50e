// ABOUTME: Read-only CLI views: today, dashboard, funnel, forecast, graph and status
// ABOUTME: Terminal rendering comes from the viz package
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/views"
	"github.com/harperreed/revenueos/viz"
)

// TodayCommand prints the day's action list.
func TodayCommand(app *controllers.AppController, args []string) error {
	t := app.Today()

	_, _ = fmt.Fprintf(stdout, "TODAY  (%d overdue)\n\n", t.TotalOverdue)

	section := func(title string, n int) bool {
		if n == 0 {
			return false
		}
		_, _ = fmt.Fprintf(stdout, "%s (%d)\n", title, n)
		return true
	}

	if section("🔥 Hot leads", len(t.HotLeads)) {
		for _, l := range t.HotLeads {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  score %d  %s\n", l.ID, l.Name, l.Score, l.NextActionText)
		}
		_, _ = fmt.Fprintln(stdout)
	}
	if section("📭 Not contacted", len(t.NoContact)) {
		for _, l := range t.NoContact {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  (%s)\n", l.ID, l.Name, l.Origin)
		}
		_, _ = fmt.Fprintln(stdout)
	}
	if section("⏰ Overdue follow-ups", len(t.OverdueFollowUps)) {
		for _, l := range t.OverdueFollowUps {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  %dd overdue  %s\n", l.ID, l.Name, l.DaysOverdue, l.NextActionText)
		}
		_, _ = fmt.Fprintln(stdout)
	}
	if section("📄 Proposals to follow up", len(t.ProposalsNeedingFollowUp)) {
		for _, p := range t.ProposalsNeedingFollowUp {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  %s  viewed %s\n", p.ID, p.LeadName, money(p.Value), p.LastViewedText)
		}
		_, _ = fmt.Fprintln(stdout)
	}
	if section("🧊 Stalled deals", len(t.StalledDeals)) {
		for _, d := range t.StalledDeals {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  %s  %s\n", d.ID, d.LeadName, d.Stage, money(d.Value))
		}
		_, _ = fmt.Fprintln(stdout)
	}
	if section("♻️  Reactivation", len(t.Reactivation)) {
		for _, d := range t.Reactivation {
			_, _ = fmt.Fprintf(stdout, "  %d  %s  %s  %s\n", d.ID, d.LeadName, d.SpecialStatus, money(d.Value))
		}
		_, _ = fmt.Fprintln(stdout)
	}

	if !t.Checklist.Dismissed {
		_, _ = fmt.Fprintf(stdout, "Getting started (%.0f%%)\n", t.Checklist.Progress())
		for _, item := range t.Checklist.Items {
			box := "[ ]"
			if item.Completed {
				box = "[x]"
			}
			_, _ = fmt.Fprintf(stdout, "  %s %s\n", box, item.Text)
		}
	}
	return nil
}

// DashboardCommand renders the executive dashboard.
func DashboardCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	scenario := fs.String("scenario", string(views.ScenarioHealthy), "Scenario: healthy, risk or recovery")
	winRate := fs.Float64("win-rate", 0, "Simulated win rate change in points")
	closed := fs.Int("closed", 0, "Simulated extra deals closed")
	_ = fs.Parse(args)

	sc, err := views.ParseScenario(*scenario)
	if err != nil {
		return err
	}
	d := app.Dashboard
	d.SetScenario(sc)
	if err := d.SetSimulation(views.SimulationInput{WinRateDelta: *winRate, ClosedDeals: *closed}); err != nil {
		return err
	}
	_, _ = fmt.Fprint(stdout, viz.RenderDashboard(d.View()))
	return nil
}

// FunnelCommand renders the stage funnel of the stored deals.
func FunnelCommand(app *controllers.AppController, args []string) error {
	st := app.Store().Get()
	_, _ = fmt.Fprint(stdout, viz.RenderFunnel(insights.Funnel(st.Deals)))

	perf := insights.ChannelPerformance(st.Leads, st.Deals)
	if len(perf) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(stdout)
	w := newTable()
	_, _ = fmt.Fprintln(w, "CHANNEL\tREVENUE\tWIN RATE\tAVG DEAL\tDAYS TO CLOSE")
	_, _ = fmt.Fprintln(w, "-------\t-------\t--------\t--------\t-------------")
	for _, c := range perf {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\t%.0f\n", c.Channel, money(c.Revenue), c.WinRate, money(c.AvgDealSize), c.AvgTimeToClose)
	}
	_ = w.Flush()
	return nil
}

// ForecastCommand prints the forecast and a what-if simulation.
func ForecastCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	scenario := fs.String("scenario", string(views.ScenarioHealthy), "Scenario: healthy, risk or recovery")
	winRate := fs.Float64("win-rate", 0, "Win rate change in points")
	closed := fs.Int("closed", 0, "Extra deals closed")
	_ = fs.Parse(args)

	sc, err := views.ParseScenario(*scenario)
	if err != nil {
		return err
	}
	if *closed < 0 {
		return fmt.Errorf("closed deals cannot be negative")
	}
	s := app.Store()
	d := views.BuildDashboard(s.Get().MonthlyGoal, sc, views.SimulationInput{WinRateDelta: *winRate, ClosedDeals: *closed}, app.Dashboard.Layout(), s.Now())

	_, _ = fmt.Fprintf(stdout, "Scenario:            %s\n", d.Scenario)
	_, _ = fmt.Fprintf(stdout, "Monthly goal:        %s\n", money(d.MonthlyGoal))
	_, _ = fmt.Fprintf(stdout, "Forecast:            %s\n", money(d.Forecast))
	_, _ = fmt.Fprintf(stdout, "Gap to goal:         %s\n", money(d.GapToGoal))
	_, _ = fmt.Fprintf(stdout, "\nWhat if: %+.0f pts win rate, %d extra deals\n", *winRate, *closed)
	_, _ = fmt.Fprintf(stdout, "Simulated forecast:  %s\n", money(d.Simulation.Forecast))
	_, _ = fmt.Fprintf(stdout, "Simulated gap:       %s\n", money(d.Simulation.Gap))
	return nil
}

// GraphCommand writes the revenue flow graph as DOT.
func GraphCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	s := app.Store()
	dot, err := viz.PipelineGraph(s.Get(), s.Now())
	if err != nil {
		return err
	}
	if *output != "" {
		if err := os.WriteFile(*output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "✓ Graph written to %s\n", *output)
		return nil
	}
	_, _ = fmt.Fprintln(stdout, dot)
	return nil
}

// StatusCommand reports where the workspace was loaded from and what it holds.
func StatusCommand(app *controllers.AppController, args []string) error {
	st := app.Status()

	_, _ = fmt.Fprintln(stdout, "Revenue OS Status")
	_, _ = fmt.Fprintln(stdout, "─────────────────")
	_, _ = fmt.Fprintf(stdout, "Loaded from:  %s", st.Source)
	if st.Reason != "" {
		_, _ = fmt.Fprintf(stdout, " (%s)", st.Reason)
	}
	_, _ = fmt.Fprintln(stdout)
	if st.SavedAt != nil {
		_, _ = fmt.Fprintf(stdout, "Last saved:   %s\n", st.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintf(stdout, "Leads:        %d\n", st.Leads)
	_, _ = fmt.Fprintf(stdout, "Deals:        %d\n", st.Deals)
	_, _ = fmt.Fprintf(stdout, "Proposals:    %d\n", st.Proposals)
	_, _ = fmt.Fprintf(stdout, "Contracts:    %d\n", st.Contracts)
	_, _ = fmt.Fprintf(stdout, "Active flows: %d\n", st.ActiveFlows)
	_, _ = fmt.Fprintf(stdout, "Monthly goal: %s\n", money(st.MonthlyGoal))
	_, _ = fmt.Fprintf(stdout, "Theme:        %s\n", st.Theme)
	_, _ = fmt.Fprintf(stdout, "Onboarded:    %v\n", st.Onboarded)
	return nil
}
