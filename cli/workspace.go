// ABOUTME: Workspace CLI commands
// ABOUTME: reset with a confirmation prompt, seed demo data and show the config
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/harperreed/revenueos/config"
	"github.com/harperreed/revenueos/controllers"
)

// Swapped by tests.
var (
	stdin      io.Reader = os.Stdin
	isTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// ResetCommand restores the default dataset and team roster.
// Without --yes it asks on a terminal and refuses otherwise.
func ResetCommand(app *controllers.AppController, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	confirm := *yes
	if !confirm {
		if !isTerminal() {
			return fmt.Errorf("refusing to reset without --yes")
		}
		_, _ = fmt.Fprint(stdout, "This replaces ALL workspace data with the demo dataset. Type 'reset' to confirm: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		confirm = strings.TrimSpace(line) == "reset"
	}
	if !confirm {
		_, _ = fmt.Fprintln(stdout, "Reset cancelled.")
		return nil
	}

	if err := app.ResetWorkspace(true); err != nil {
		return err
	}
	echoToast(app, "")
	return nil
}

// SeedCommand loads the demo dataset.
func SeedCommand(app *controllers.AppController, args []string) error {
	if err := app.SeedData(); err != nil {
		return err
	}
	echoToast(app, "")
	return nil
}

// ConfigCommand prints the effective configuration, or writes it with --save.
func ConfigCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective configuration to the config file")
	_ = fs.Parse(args)

	if *save {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "✓ Config written to %s\n", cfg.FilePath())
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "SETTING\tVALUE")
	_, _ = fmt.Fprintln(w, "-------\t-----")
	_, _ = fmt.Fprintf(w, "file\t%s\n", cfg.FilePath())
	_, _ = fmt.Fprintf(w, "backend\t%s\n", cfg.Backend)
	_, _ = fmt.Fprintf(w, "db_path\t%s\n", cfg.DBPath)
	if cfg.Backend == config.BackendRedis {
		_, _ = fmt.Fprintf(w, "redis_addr\t%s\n", cfg.RedisAddr)
		_, _ = fmt.Fprintf(w, "redis_db\t%d\n", cfg.RedisDB)
		_, _ = fmt.Fprintf(w, "redis_prefix\t%s\n", cfg.RedisPrefix)
	}
	_, _ = fmt.Fprintf(w, "web_port\t%d\n", cfg.WebPort)
	_, _ = fmt.Fprintf(w, "log_level\t%s\n", cfg.LogLevel)
	if cfg.TeamSeed != 0 {
		_, _ = fmt.Fprintf(w, "team_seed\t%d\n", cfg.TeamSeed)
	}
	if cfg.MonthlyGoal > 0 {
		_, _ = fmt.Fprintf(w, "monthly_goal\t%s\n", money(cfg.MonthlyGoal))
	}
	_ = w.Flush()
	return nil
}
