// ABOUTME: Team CLI commands
// ABOUTME: roster, leaderboards, coaching cards and coaching plan checkboxes
package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/team"
)

func roster(app *controllers.AppController) (*team.Roster, error) {
	r := app.Roster()
	if r == nil {
		return nil, fmt.Errorf("team roster is not loaded")
	}
	return r, nil
}

// TeamListCommand prints every rep with discipline, tier and weekly change.
func TeamListCommand(app *controllers.AppController, args []string) error {
	r, err := roster(app)
	if err != nil {
		return err
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tDISCIPLINE\tTIER\tREVENUE\tWON\tWEEK\tBADGES")
	_, _ = fmt.Fprintln(w, "--\t----\t----------\t----\t-------\t---\t----\t------")
	for _, rep := range r.Reps() {
		badges := make([]string, 0, len(rep.Badges))
		for _, b := range rep.Badges {
			badges = append(badges, string(b))
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%d\t%+.0f\t%s\n",
			rep.ID, rep.Name, rep.DisciplineScore, rep.CurrentTier, money(rep.Revenue), rep.DealsWon,
			rep.WeeklyDelta.Discipline, strings.Join(badges, ", "))
	}
	_ = w.Flush()

	m := r.Momentum()
	_, _ = fmt.Fprintf(stdout, "\nTeam revenue: %s  Deals won: %d  Avg discipline: %.0f  Streak: %d days\n",
		money(m.Revenue), m.DealsWon, m.AvgDiscipline, m.TeamStreak)

	if signals := r.CoachingSignals(); len(signals) > 0 {
		_, _ = fmt.Fprintln(stdout, "\nNeeds coaching:")
		for _, rep := range signals {
			_, _ = fmt.Fprintf(stdout, "  ⚠️  %s (discipline %d)\n", rep.Name, rep.DisciplineScore)
		}
	}
	return nil
}

// TeamLeaderboardCommand ranks reps on one leaderboard tab.
func TeamLeaderboardCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("team leaderboard", flag.ExitOnError)
	tabName := fs.String("tab", string(team.TabImprovement), "Tab: improvement, consistency, response_time or top_closer")
	_ = fs.Parse(args)

	r, err := roster(app)
	if err != nil {
		return err
	}
	tab, err := team.ParseLeaderboardTab(*tabName)
	if err != nil {
		return err
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "#\tNAME\tDISCIPLINE\tRESPONSE\tFOLLOW-UP\tREVENUE")
	_, _ = fmt.Fprintln(w, "-\t----\t----------\t--------\t---------\t-------")
	for i, rep := range r.Leaderboard(tab) {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%.0f min\t%.0f%%\t%s\n",
			i+1, rep.Name, rep.DisciplineScore, rep.AvgResponseTime, rep.FollowUpRate, money(rep.Revenue))
	}
	_ = w.Flush()
	return nil
}

// TeamCoachCommand prints the coaching card and plan for one rep.
func TeamCoachCommand(app *controllers.AppController, args []string) error {
	r, err := roster(app)
	if err != nil {
		return err
	}
	id, err := requireID(args, "rep")
	if err != nil {
		return err
	}
	rep, err := r.Rep(id)
	if err != nil {
		return err
	}

	c := team.CoachFor(rep)
	_, _ = fmt.Fprintf(stdout, "%s (%s, focus: %s)\n\n", rep.Name, rep.CurrentTier, rep.CurrentFocus)
	_, _ = fmt.Fprintf(stdout, "Bottleneck: %s\n", c.Bottleneck)
	_, _ = fmt.Fprintf(stdout, "Action:     %s\n", c.Action)
	if c.Script != "" {
		_, _ = fmt.Fprintf(stdout, "Script:     %s\n", c.Script)
	}
	_, _ = fmt.Fprintf(stdout, "Challenge:  %s\n", c.Challenge)

	if plan := rep.CoachingPlan; plan != nil {
		_, _ = fmt.Fprintf(stdout, "\nPlan: %s (%d%%, due %s)\n", plan.Goal, plan.Progress, plan.DueDate.Format(dateLayout))
		for i, a := range plan.Actions {
			box := "[ ]"
			if a.Completed {
				box = "[x]"
			}
			_, _ = fmt.Fprintf(stdout, "  %d. %s %s\n", i, box, a.Text)
		}
	}
	return nil
}

// TeamToggleActionCommand checks or unchecks one coaching plan action.
func TeamToggleActionCommand(app *controllers.AppController, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: team toggle-action <rep-id> <action-index>")
	}
	r, err := roster(app)
	if err != nil {
		return err
	}
	id, err := parseID(args[0], "rep")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid action index: %s", args[1])
	}
	plan, err := r.ToggleCoachingAction(id, index)
	if err != nil {
		return fmt.Errorf("failed to toggle action: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "✓ Coaching plan %d%% complete\n", plan.Progress)
	return nil
}
