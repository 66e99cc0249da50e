// ABOUTME: Deal CLI commands
// ABOUTME: list the board, move a deal through the move dialog, update value and special status
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

// DealsListCommand lists deals grouped by stage.
func DealsListCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("deals list", flag.ExitOnError)
	stageFilter := fs.String("stage", "", "Only show this stage")
	_ = fs.Parse(args)

	var only models.Stage
	if *stageFilter != "" {
		st, err := models.ParseStage(*stageFilter)
		if err != nil {
			return err
		}
		only = st
	}

	p := app.Pipeline.View()
	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tLEAD\tSTAGE\tVALUE\tOWNER\tDAYS\tNEXT ACTION\tFLAGS")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-----\t-----\t----\t-----------\t-----")
	for _, col := range p.Columns {
		if only != "" && col.Stage != only {
			continue
		}
		for _, d := range col.Deals {
			_, _ = fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				d.ID, urgencyIndicator[d.RiskStatus], d.Lead.Name, d.Stage, money(d.Value), d.OwnerName,
				d.DaysInStage, truncate(d.Lead.NextActionText, 28), dealFlags(d))
		}
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nPipeline: %s  Expected: %s  Gap to goal: %s\n",
		money(p.PipelineValue), money(p.ExpectedRevenue), money(p.GapToGoal))
	return nil
}

func dealFlags(d views.KanbanDeal) string {
	var flags []string
	if d.SpecialStatus != "" {
		flags = append(flags, string(d.SpecialStatus))
	}
	if d.IsStalled {
		flags = append(flags, "stalled")
	}
	if d.OverdueDays > 0 {
		flags = append(flags, fmt.Sprintf("%dd overdue", d.OverdueDays))
	}
	return strings.Join(flags, ", ")
}

// DealsMoveCommand moves a deal to another stage.
func DealsMoveCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("deals move", flag.ExitOnError)
	action := fs.String("action", "", "Next action after the move (required)")
	due := fs.String("due", "", "Next action due date YYYY-MM-DD (default: tomorrow)")
	value := fs.Float64("value", 0, "Final value when moving to Won (default: current value)")
	lossReason := fs.String("loss-reason", "", "Loss reason when moving to Lost")
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: deals move <deal-id> <stage> --action <text>")
	}
	id, err := parseID(fs.Arg(0), "deal")
	if err != nil {
		return err
	}
	stage, err := models.ParseStage(strings.Join(fs.Args()[1:], " "))
	if err != nil {
		return err
	}
	deal, err := app.Store().Deal(id)
	if err != nil {
		return err
	}

	p := app.Pipeline
	if err := p.OpenMove(id, stage); err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}
	defer p.CancelMove()

	var dueErr error
	p.EditMove(func(f *controllers.MoveForm) {
		f.NextAction = *action
		if *due != "" {
			d, err := parseDate(*due)
			if err != nil {
				dueErr = err
				return
			}
			f.DueDate = &d
		}
		f.FinalValue = deal.Value
		if *value > 0 {
			f.FinalValue = *value
		}
		if *lossReason != "" {
			f.LossReason = *lossReason
		}
	})
	if dueErr != nil {
		return dueErr
	}
	if err := p.SaveMove(); err != nil {
		return err
	}
	echoToast(app, "")
	return nil
}

var specialStatuses = map[string]models.SpecialStatus{
	"paused":           models.SpecialPaused,
	"on hold":          models.SpecialOnHold,
	"on-hold":          models.SpecialOnHold,
	"reactivate later": models.SpecialReactivateLater,
	"reactivate-later": models.SpecialReactivateLater,
}

var holdReasons = map[string]models.HoldReason{
	"client":   models.HoldClient,
	"budget":   models.HoldBudget,
	"approval": models.HoldApproval,
}

// DealsUpdateCommand changes a deal's value or special status.
func DealsUpdateCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("deals update", flag.ExitOnError)
	value := fs.Float64("value", 0, "New deal value")
	special := fs.String("special", "", "Special status: paused, on-hold, reactivate-later or none")
	reason := fs.String("hold-reason", "", "On-hold reason: client, budget or approval")
	reactivate := fs.String("reactivate", "", "Reactivation date YYYY-MM-DD")
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "deal")
	if err != nil {
		return err
	}

	var patch store.DealPatch
	if *value > 0 {
		patch.Value = value
	}
	switch s := strings.ToLower(*special); s {
	case "":
	case "none":
		patch.ClearSpecialStatus = true
	default:
		st, ok := specialStatuses[s]
		if !ok {
			return fmt.Errorf("invalid special status: %s", *special)
		}
		patch.SpecialStatus = &st
	}
	if *reason != "" {
		r, ok := holdReasons[strings.ToLower(*reason)]
		if !ok {
			return fmt.Errorf("invalid hold reason: %s", *reason)
		}
		patch.OnHoldReason = &r
	}
	if *reactivate != "" {
		d, err := parseDate(*reactivate)
		if err != nil {
			return err
		}
		patch.ReactivateAt = &d
	}

	if err := app.Store().UpdateDeal(id, patch); err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "✓ Deal %d updated\n", id)
	return nil
}
