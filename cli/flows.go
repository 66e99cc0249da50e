// ABOUTME: Integration flow CLI commands
// ABOUTME: list the catalog with flow states and toggle a flow on or off
package cli

import (
	"fmt"

	"github.com/harperreed/revenueos/controllers"
)

// FlowsListCommand prints every integration with its automation flows.
func FlowsListCommand(app *controllers.AppController, args []string) error {
	v := app.Integrations.View()

	w := newTable()
	_, _ = fmt.Fprintln(w, "INTEGRATION\tSTATUS\tFLOW\tACTIVE\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "-----------\t------\t----\t------\t-----------")
	for _, cat := range v.Categories {
		for _, card := range cat.Items {
			if len(card.FlowStates) == 0 {
				_, _ = fmt.Fprintf(w, "%s\t%s\t-\t-\t%s\n", card.Name, card.Status, truncate(card.Description, 40))
				continue
			}
			for _, f := range card.FlowStates {
				active := "no"
				if f.Active {
					active = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", card.Name, card.Status, f.ID, active, truncate(f.Description, 40))
			}
		}
	}
	_ = w.Flush()

	if len(v.Insights) > 0 {
		_, _ = fmt.Fprintln(stdout, "\nAI insights:")
		for _, in := range v.Insights {
			_, _ = fmt.Fprintf(stdout, "  • %s\n", in.Title)
		}
	}
	return nil
}

// FlowsToggleCommand switches a flow on or off.
func FlowsToggleCommand(app *controllers.AppController, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("flow ID required")
	}
	if _, err := app.Integrations.ToggleFlow(args[0]); err != nil {
		return fmt.Errorf("failed to toggle flow: %w", err)
	}
	echoToast(app, "")
	return nil
}
