// ABOUTME: Shared helpers for the CLI commands
// ABOUTME: Output writer, id and date parsing, table setup and toast echo
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/views"
)

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

const dateLayout = "2006-01-02"

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", what, s)
	}
	return id, nil
}

// requireID reads the first positional argument as an entity id.
func requireID(args []string, what string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s ID required", what)
	}
	return parseID(args[0], what)
}

// parseDate accepts YYYY-MM-DD in the local zone or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func money(v float64) string {
	return "$" + views.FormatMoney(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// echoToast prints the notification an action raised, or fallback when none did.
func echoToast(app *controllers.AppController, fallback string) {
	if t, ok := app.Toasts().Current(); ok {
		_, _ = fmt.Fprintf(stdout, "✓ %s\n", t.Message)
		app.Toasts().Dismiss()
		return
	}
	if fallback != "" {
		_, _ = fmt.Fprintf(stdout, "✓ %s\n", fallback)
	}
}
