// ABOUTME: Lead CLI commands
// ABOUTME: list, add, complete, reschedule and activity for the leads screen
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

var urgencyIndicator = map[insights.UrgencyStatus]string{
	insights.UrgencyOverdue:         "🔴",
	insights.UrgencyDueToday:        "🟡",
	insights.UrgencyNeedsScheduling: "⚪",
	insights.UrgencyOnTrack:         "🟢",
	insights.UrgencyCompleted:       "✅",
}

// LeadsListCommand lists leads with the saved filter, or sets a new one.
func LeadsListCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("leads list", flag.ExitOnError)
	filter := fs.String("filter", "", "Filter: all, overdue, due-today, new, hot or an origin (saved)")
	_ = fs.Parse(args)

	if *filter != "" {
		if err := app.Leads.SetFilter(*filter); err != nil {
			return err
		}
	}
	v := app.Leads.View()

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tORIGIN\tOWNER\tSTATUS\tNEXT ACTION\tDUE\tSCORE")
	_, _ = fmt.Fprintln(w, "--\t----\t------\t-----\t------\t-----------\t---\t-----")
	for _, l := range v.Leads {
		_, _ = fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			l.ID, urgencyIndicator[l.Urgency], l.Name, l.Origin, l.OwnerName, l.Status,
			truncate(l.NextActionText, 30), l.DueText, l.Score)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(stdout, "\nFilter: %s  Leads: %d  Overdue: %d  Due today: %d\n",
		v.Filter, v.Summary.Count, v.Summary.Overdue, v.Summary.DueToday)
	return nil
}

// LeadsAddCommand creates a lead. Every flag is required.
func LeadsAddCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("leads add", flag.ExitOnError)
	name := fs.String("name", "", "Lead name (required)")
	origin := fs.String("origin", "", "Origin: WhatsApp, Instagram, Website, Referral or Other (required)")
	owner := fs.Int64("owner", 0, "Owner team member ID (required)")
	action := fs.String("action", "", "Next action (required)")
	due := fs.String("due", "", "Next action due date YYYY-MM-DD (required)")
	_ = fs.Parse(args)

	form := controllers.LeadForm{
		Name:       *name,
		Origin:     models.Origin(*origin),
		OwnerID:    *owner,
		NextAction: *action,
	}
	if *origin != "" {
		o, err := models.ParseOrigin(*origin)
		if err != nil {
			return err
		}
		form.Origin = o
	}
	if *due != "" {
		d, err := parseDate(*due)
		if err != nil {
			return err
		}
		form.DueDate = &d
	}

	lead, err := app.Leads.Create(form)
	if err != nil {
		return err
	}
	echoToast(app, "")
	_, _ = fmt.Fprintf(stdout, "  ID: %d\n", lead.ID)
	return nil
}

// LeadsCompleteCommand toggles whether the lead's next action is done.
func LeadsCompleteCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("leads complete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "lead")
	if err != nil {
		return err
	}
	done, err := app.Leads.ToggleComplete(id)
	if err != nil {
		return fmt.Errorf("failed to complete action: %w", err)
	}
	if done {
		_, _ = fmt.Fprintf(stdout, "✓ Action completed for lead %d\n", id)
	} else {
		_, _ = fmt.Fprintf(stdout, "✓ Action reopened for lead %d\n", id)
	}
	return nil
}

// LeadsRescheduleCommand moves the next action to a new date.
func LeadsRescheduleCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("leads reschedule", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: leads reschedule <lead-id> <YYYY-MM-DD>")
	}
	id, err := parseID(fs.Arg(0), "lead")
	if err != nil {
		return err
	}
	due, err := parseDate(fs.Arg(1))
	if err != nil {
		return err
	}
	if err := app.Leads.Reschedule(id, due); err != nil {
		return fmt.Errorf("failed to reschedule: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "✓ Lead %d rescheduled to %s\n", id, due.Format(dateLayout))
	return nil
}

// LeadsActivityCommand prints the activity log, or appends to it with --note.
func LeadsActivityCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("leads activity", flag.ExitOnError)
	note := fs.String("note", "", "Log an activity instead of listing")
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "lead")
	if err != nil {
		return err
	}
	s := app.Store()

	if *note != "" {
		if err := s.AddLeadActivity(id, *note); err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "✓ Activity logged for lead %d\n", id)
		return nil
	}

	lead, err := s.Lead(id)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "%s (%s)\n\n", lead.Name, lead.Status)
	if len(lead.ActivityLog) == 0 {
		_, _ = fmt.Fprintln(stdout, "No activity yet.")
		return nil
	}
	now := s.Now()
	for _, a := range lead.ActivityLog {
		_, _ = fmt.Fprintf(stdout, "  %-16s %s\n", insights.TimeSince(now, a.Timestamp), a.Description)
	}
	return nil
}
