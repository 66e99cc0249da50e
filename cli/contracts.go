// ABOUTME: Contract CLI commands
// ABOUTME: list with risk, generate from a proposal, resend, activate and cancel
package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

var riskIndicator = map[insights.RiskLevel]string{
	insights.RiskHigh:   "🔴",
	insights.RiskMedium: "🟡",
	insights.RiskLow:    "🟢",
	insights.RiskNone:   "  ",
}

// ContractsListCommand lists contracts. --status is remembered.
func ContractsListCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("contracts list", flag.ExitOnError)
	status := fs.String("status", "", "Status filter: all or a contract status (saved)")
	_ = fs.Parse(args)

	c := app.Contracts
	if *status != "" {
		if err := c.SetFilter(*status); err != nil {
			return err
		}
	}
	v := c.View()

	w := newTable()
	_, _ = fmt.Fprintln(w, "ID\tCLIENT\tTYPE\tVALUE\tSTATUS\tREVENUE\tSIGNAL")
	_, _ = fmt.Fprintln(w, "--\t------\t----\t-----\t------\t-------\t------")
	for _, ct := range v.Contracts {
		_, _ = fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\t%s\n",
			ct.ID, riskIndicator[ct.RiskLevel], ct.LeadName, ct.ContractType, money(ct.Value),
			ct.Status, ct.RevenueState, ct.AISignal)
	}
	_ = w.Flush()

	s := v.Summary
	_, _ = fmt.Fprintf(stdout, "\nAwaiting signature: %d (%s)  Committed: %s  At risk: %s\n",
		s.AwaitingSignatureCount, money(s.AwaitingSignatureValue), money(s.CommittedRevenue), money(s.RevenueAtRisk))
	return nil
}

// ContractsGenerateCommand creates a contract from a proposal.
func ContractsGenerateCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("contracts generate", flag.ExitOnError)
	kind := fs.String("type", string(models.ContractOneTime), "Contract type: one-time, recurring or milestone")
	legal := fs.String("legal-name", "", "Legal name of the client (default: lead name + Inc.)")
	_ = fs.Parse(args)

	proposalID, err := requireID(fs.Args(), "proposal")
	if err != nil {
		return err
	}
	ct, err := models.ParseContractType(*kind)
	if err != nil {
		return err
	}

	c := app.Contracts
	if _, err := c.SelectProposal(proposalID); err != nil {
		return err
	}
	c.EditForm(func(f *controllers.ContractForm) {
		f.ContractType = ct
		if *legal != "" {
			f.LegalName = *legal
		}
	})
	created, err := c.Generate()
	if err != nil {
		return err
	}
	echoToast(app, "")
	_, _ = fmt.Fprintf(stdout, "  ID: %d\n  Client: %s\n  Value: %s\n", created.ID, created.LegalName, money(created.Value))
	return nil
}

// ContractsResendCommand marks a contract as sent again.
func ContractsResendCommand(app *controllers.AppController, args []string) error {
	return contractAction(app, args, controllers.ContractResend, false)
}

// ContractsActivateCommand marks a contract as active.
func ContractsActivateCommand(app *controllers.AppController, args []string) error {
	return contractAction(app, args, controllers.ContractMarkActive, false)
}

// ContractsCancelCommand cancels a contract. Requires --yes.
func ContractsCancelCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("contracts cancel", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Confirm cancellation")
	_ = fs.Parse(args)
	return contractAction(app, fs.Args(), controllers.ContractCancel, *yes)
}

func contractAction(app *controllers.AppController, args []string, action string, confirm bool) error {
	id, err := requireID(args, "contract")
	if err != nil {
		return err
	}
	if err := app.Contracts.Act(id, action, confirm); err != nil {
		if errors.Is(err, controllers.ErrConfirmationRequired) {
			return fmt.Errorf("cancelling contract %d needs --yes", id)
		}
		return err
	}
	echoToast(app, "")
	return nil
}
