// ABOUTME: Entry point for the Revenue OS CLI, TUI, web dashboard and MCP server
// ABOUTME: Routes to subcommands after applying config, .env and global flags
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/harperreed/revenueos/charm"
	"github.com/harperreed/revenueos/cli"
	"github.com/harperreed/revenueos/config"
	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/logging"
	"github.com/harperreed/revenueos/tui"
	"github.com/harperreed/revenueos/web"
)

const version = "0.1.0"

type command func(app *controllers.AppController, args []string) error

var groups = map[string]map[string]command{
	"leads": {
		"list":       cli.LeadsListCommand,
		"add":        cli.LeadsAddCommand,
		"complete":   cli.LeadsCompleteCommand,
		"reschedule": cli.LeadsRescheduleCommand,
		"activity":   cli.LeadsActivityCommand,
	},
	"deals": {
		"list":   cli.DealsListCommand,
		"move":   cli.DealsMoveCommand,
		"update": cli.DealsUpdateCommand,
	},
	"proposals": {
		"list":   cli.ProposalsListCommand,
		"view":   cli.ProposalsViewCommand,
		"revise": cli.ProposalsReviseCommand,
		"resend": cli.ProposalsResendCommand,
		"status": cli.ProposalsStatusCommand,
	},
	"contracts": {
		"list":     cli.ContractsListCommand,
		"generate": cli.ContractsGenerateCommand,
		"resend":   cli.ContractsResendCommand,
		"activate": cli.ContractsActivateCommand,
		"cancel":   cli.ContractsCancelCommand,
	},
	"team": {
		"list":          cli.TeamListCommand,
		"leaderboard":   cli.TeamLeaderboardCommand,
		"coach":         cli.TeamCoachCommand,
		"toggle-action": cli.TeamToggleActionCommand,
	},
	"flows": {
		"list":   cli.FlowsListCommand,
		"toggle": cli.FlowsToggleCommand,
	},
}

var single = map[string]command{
	"today":     cli.TodayCommand,
	"dashboard": cli.DashboardCommand,
	"funnel":    cli.FunnelCommand,
	"forecast":  cli.ForecastCommand,
	"graph":     cli.GraphCommand,
	"status":    cli.StatusCommand,
	"seed":      cli.SeedCommand,
	"reset":     cli.ResetCommand,
}

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path for the sqlite backend")
	backend := flag.String("backend", "", "Storage backend: sqlite, charm, redis or memory")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("revenueos version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "help":
		printUsage()
		return
	case "config":
		if err := cli.ConfigCommand(cfg, commandArgs); err != nil {
			logger.Fatalf("Error: %v", err)
		}
		return
	case "sync":
		if err := runSync(logger, commandArgs); err != nil {
			logger.Fatalf("Error: %v", err)
		}
		return
	}

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		logger.Fatalf("Error: %v", err)
	}
	defer func() { _ = ws.close() }()

	if err := run(ws, cfg, logger, command, commandArgs); err != nil {
		_ = ws.close()
		logger.Fatalf("Error: %v", err)
	}
}

func run(ws *workspace, cfg *config.Config, logger *log.Logger, command string, args []string) error {
	app := ws.app

	if cmd, ok := single[command]; ok {
		return cmd(app, args)
	}

	if group, ok := groups[command]; ok {
		if len(args) == 0 {
			fmt.Printf("Error: %s requires a subcommand\n\n", command)
			printUsage()
			os.Exit(1)
		}
		cmd, ok := group[args[0]]
		if !ok {
			fmt.Printf("Unknown %s command: %s\n\n", command, args[0])
			printUsage()
			os.Exit(1)
		}
		return cmd(app, args[1:])
	}

	switch command {
	case "tui":
		p := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
		_, err := p.Run()
		return err

	case "web":
		fs := flag.NewFlagSet("web", flag.ExitOnError)
		port := fs.Int("port", cfg.WebPort, "Port to listen on")
		_ = fs.Parse(args)

		server, err := web.NewServer(app, ws.metrics.Handler(), logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Start(ctx, *port)

	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.MCPCommand(ctx, app, version, logger)
	}

	fmt.Printf("Unknown command: %s\n\n", command)
	printUsage()
	os.Exit(1)
	return nil
}

func runSync(logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sync requires a subcommand (link, status, unlink, now, wipe)")
	}
	open := func() (*charm.Client, error) {
		cfg, err := charm.LoadConfig()
		if err != nil {
			return nil, err
		}
		return charm.Open(cfg, logger)
	}

	out := os.Stdout
	switch args[0] {
	case "link":
		return charm.SyncLinkCommand(out, open, args[1:])
	case "status":
		return charm.SyncStatusCommand(out, open, args[1:])
	case "unlink":
		return charm.SyncUnlinkCommand(out, args[1:])
	case "now":
		return charm.SyncNowCommand(out, open, args[1:])
	case "wipe":
		return charm.SyncWipeCommand(out, open, args[1:])
	}
	return fmt.Errorf("unknown sync command: %s", args[0])
}

func printUsage() {
	fmt.Printf(`revenueos v%s - Revenue OS sales workspace

USAGE:
  revenueos [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/revenueos/revenueos.db)
  --backend <name>       Storage backend: sqlite, charm, redis or memory (default: sqlite)
  --log-level <level>    Log level: debug, info, warn or error

INTERFACES:
  revenueos tui                      Interactive terminal UI
  revenueos web [--port <n>]         Web dashboard and JSON API (default port 8080)
  revenueos mcp                      MCP server on stdio

HOME:
  revenueos today                    Today's priorities, overdue follow-ups and lessons
  revenueos status                   Where the workspace was loaded from and what it holds

LEADS:
  revenueos leads list [--filter <f>]              all, overdue, due-today, new, hot or an origin
  revenueos leads add --name --origin --owner --action --due
  revenueos leads complete <id>                    Toggle the next action done
  revenueos leads reschedule <id> <YYYY-MM-DD>
  revenueos leads activity [--note <text>] <id>

DEALS:
  revenueos deals list [--stage <stage>]
  revenueos deals move [--action --due --value --loss-reason] <id> <stage>
  revenueos deals update [--value --special --hold-reason --reactivate] <id>

PROPOSALS:
  revenueos proposals list [--status --quick --search]
  revenueos proposals view <id>                    Record a client view
  revenueos proposals revise <id>                  New draft version
  revenueos proposals resend <id>
  revenueos proposals status <id> <status>

CONTRACTS:
  revenueos contracts list [--status <s>]
  revenueos contracts generate [--type --legal-name] <proposal-id>
  revenueos contracts resend <id>
  revenueos contracts activate <id>
  revenueos contracts cancel --yes <id>

TEAM:
  revenueos team list
  revenueos team leaderboard [--tab <tab>]         improvement, consistency, response_time, top_closer
  revenueos team coach <rep-id>
  revenueos team toggle-action <rep-id> <index>

INSIGHTS:
  revenueos dashboard [--scenario --win-rate --closed]
  revenueos funnel
  revenueos forecast [--scenario --win-rate --closed]
  revenueos graph [--output <file>]                Pipeline graph (xdot)
  revenueos flows list
  revenueos flows toggle <flow-id>

WORKSPACE:
  revenueos seed                     Load the demo dataset
  revenueos reset [--yes]            Restore the default dataset
  revenueos config [--save]          Show the effective configuration

SYNC (charm backend):
  revenueos sync link                Link this device and run a first sync
  revenueos sync status              Show sync settings and stored slots
  revenueos sync unlink              How to disconnect this device
  revenueos sync now                 Sync immediately
  revenueos sync wipe --confirm      Delete every local slot

EXAMPLES:
  # Work the overdue queue
  revenueos leads list --filter overdue

  # Move a deal to Negotiation
  revenueos deals move --action "Send final pricing" 101 Negotiation

  # Serve the dashboard from redis
  REVENUEOS_BACKEND=redis revenueos web --port 9000

`, version)
}
