// ABOUTME: Proposal CLI commands
// ABOUTME: list with filters, simulate a client view, revise, resend and set status
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
)

// ProposalsListCommand lists proposals. --status and --quick are remembered.
func ProposalsListCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("proposals list", flag.ExitOnError)
	status := fs.String("status", "", "Status filter: all or a proposal status (saved)")
	quick := fs.String("quick", "", "Quick filter: none, needs_follow_up, viewed_recently, expiring_soon (saved)")
	search := fs.String("search", "", "Search by lead name")
	_ = fs.Parse(args)

	c := app.Proposals
	if *status != "" {
		if err := c.SetStatusFilter(*status); err != nil {
			return err
		}
	}
	if *quick != "" {
		if err := c.SetQuickFilter(*quick); err != nil {
			return err
		}
	}
	c.SetSearch(*search)
	v := c.View()

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tLEAD\tVERSION\tVALUE\tSTATUS\tVIEWS\tSIGNALS\tLAST ACTIVITY")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t-----\t------\t-----\t-------\t-------------")
	for _, p := range v.Rows {
		version := fmt.Sprintf("v%d", p.Version)
		if !p.IsLatest {
			version += " (old)"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.LeadName, version, money(p.Value), p.Status, p.ViewCount, signalList(p.Signals), p.LastActivity)
	}
	_ = w.Flush()

	h := v.Header
	_, _ = fmt.Fprintf(stdout, "\nTotal: %d  Viewed: %d  Needs follow-up: %d  Accepted: %d\n",
		h.Total, h.Viewed, h.NeedsFollowUp, h.Accepted)
	return nil
}

// ProposalsViewCommand records a simulated client view.
func ProposalsViewCommand(app *controllers.AppController, args []string) error {
	id, err := requireID(args, "proposal")
	if err != nil {
		return err
	}
	p, err := app.Proposals.SimulateView(id)
	if err != nil {
		return fmt.Errorf("failed to simulate view: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "✓ Proposal %d viewed (%d views)\n", p.ID, p.ViewCount)
	if len(p.Signals) > 0 {
		_, _ = fmt.Fprintf(stdout, "  Signals: %s\n", signalList(p.Signals))
	}
	return nil
}

// ProposalsReviseCommand creates a new draft version.
func ProposalsReviseCommand(app *controllers.AppController, args []string) error {
	return proposalAction(app, args, controllers.ActionDuplicate)
}

// ProposalsResendCommand stamps a new sent date.
func ProposalsResendCommand(app *controllers.AppController, args []string) error {
	return proposalAction(app, args, controllers.ActionResend)
}

func proposalAction(app *controllers.AppController, args []string, action string) error {
	id, err := requireID(args, "proposal")
	if err != nil {
		return err
	}
	if _, err := app.Proposals.Act(id, action); err != nil {
		return err
	}
	echoToast(app, "")
	return nil
}

// ProposalsStatusCommand sets a proposal's status.
func ProposalsStatusCommand(app *controllers.AppController, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: proposals status <proposal-id> <status>")
	}
	id, err := parseID(args[0], "proposal")
	if err != nil {
		return err
	}
	status, err := models.ParseProposalStatus(args[1])
	if err != nil {
		return err
	}

	s := app.Store()
	patch := store.ProposalPatch{Status: &status}
	if status == models.ProposalSent {
		now := s.Now()
		patch.SentAt = &now
	}
	if err := s.UpdateProposal(id, patch); err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "✓ Proposal %d is now %s\n", id, status)
	return nil
}

func signalList(signals []models.Signal) string {
	if len(signals) == 0 {
		return "-"
	}
	out := make([]string, 0, len(signals))
	for _, s := range signals {
		out = append(out, string(s))
	}
	return strings.Join(out, ", ")
}
