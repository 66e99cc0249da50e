// ABOUTME: Tests for the CLI commands against an in-memory workspace
// ABOUTME: Captures command output and checks the resulting store state
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/config"
	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
)

var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func setupTestCLI(t *testing.T) (*controllers.AppController, *bytes.Buffer) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), store.WithClock(func() time.Time { return refNow }))
	require.NoError(t, s.Load())
	roster, err := team.Open(s.Backend(), s.Get().TeamPerformance, 7, refNow, nil)
	require.NoError(t, err)
	app := controllers.NewApp(s, notify.New(notify.WithDuration(time.Hour)), roster)

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return app, &buf
}

func TestLeadsListFilter(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, LeadsListCommand(app, []string{"--filter", "overdue"}))
	assert.Contains(t, out.String(), "Fast Burger")
	assert.NotContains(t, out.String(), "Inova")
	assert.Contains(t, out.String(), "Filter: overdue")

	assert.Equal(t, "overdue", app.Leads.Filter(), "filter is remembered")
	assert.ErrorIs(t, LeadsListCommand(app, []string{"--filter", "bogus"}), controllers.ErrValidation)
}

func TestLeadsAdd(t *testing.T) {
	app, out := setupTestCLI(t)

	err := LeadsAddCommand(app, []string{"--name", "Acme"})
	require.ErrorIs(t, err, controllers.ErrValidation)

	require.NoError(t, LeadsAddCommand(app, []string{
		"--name", "Acme", "--origin", "Referral", "--owner", "2",
		"--action", "Intro call", "--due", "2026-03-20",
	}))
	assert.Contains(t, out.String(), "✓ Lead created successfully!")
	assert.Len(t, app.Store().Get().Leads, 7)

	assert.Error(t, LeadsAddCommand(app, []string{"--origin", "Fax"}))
}

func TestLeadsCompleteAndReschedule(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, LeadsCompleteCommand(app, []string{"1"}))
	assert.Contains(t, out.String(), "✓ Action completed for lead 1")
	lead, err := app.Store().Lead(1)
	require.NoError(t, err)
	assert.True(t, lead.ActionCompleted)

	require.NoError(t, LeadsRescheduleCommand(app, []string{"2", "2026-04-02"}))
	assert.Contains(t, out.String(), "rescheduled to 2026-04-02")

	assert.Error(t, LeadsCompleteCommand(app, nil))
	assert.Error(t, LeadsCompleteCommand(app, []string{"abc"}))
	assert.Error(t, LeadsRescheduleCommand(app, []string{"2", "tomorrow"}))
}

func TestLeadsActivity(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, LeadsActivityCommand(app, []string{"--note", "Called the CFO", "3"}))
	lead, err := app.Store().Lead(3)
	require.NoError(t, err)
	assert.Equal(t, "Called the CFO", lead.ActivityLog[0].Description)

	out.Reset()
	require.NoError(t, LeadsActivityCommand(app, []string{"3"}))
	assert.Contains(t, out.String(), "Global Logistics")
	assert.Contains(t, out.String(), "Called the CFO")
}

func TestDealsListAndMove(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, DealsListCommand(app, []string{"--stage", "Negotiation"}))
	assert.Contains(t, out.String(), "On Hold")
	assert.NotContains(t, out.String(), "Tech Solutions")

	require.NoError(t, DealsMoveCommand(app, []string{"--action", "Call back", "104", "Contacted"}))
	assert.Contains(t, out.String(), "✓ Deal moved to Contacted")
	d, err := app.Store().Deal(104)
	require.NoError(t, err)
	assert.Equal(t, models.StageContacted, d.Stage)

	err = DealsMoveCommand(app, []string{"104", "Proposal", "Sent"})
	require.ErrorIs(t, err, controllers.ErrValidation, "next action is required")

	require.NoError(t, DealsMoveCommand(app, []string{"--action", "Kickoff", "--value", "30000", "105", "Won"}))
	d, err = app.Store().Deal(105)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, d.Value)
}

func TestDealsUpdate(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, DealsUpdateCommand(app, []string{"--special", "none", "--value", "9000", "102"}))
	assert.Contains(t, out.String(), "✓ Deal 102 updated")
	d, err := app.Store().Deal(102)
	require.NoError(t, err)
	assert.Empty(t, d.SpecialStatus)
	assert.Equal(t, 9000.0, d.Value)

	require.NoError(t, DealsUpdateCommand(app, []string{"--special", "on-hold", "--hold-reason", "budget", "104"}))
	d, err = app.Store().Deal(104)
	require.NoError(t, err)
	assert.Equal(t, models.SpecialOnHold, d.SpecialStatus)
	assert.Equal(t, models.HoldBudget, d.OnHoldReason)

	assert.Error(t, DealsUpdateCommand(app, []string{"--special", "frozen", "104"}))
}

func TestProposalCommands(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, ProposalsListCommand(app, []string{"--status", "Draft"}))
	assert.Contains(t, out.String(), "205")

	require.NoError(t, ProposalsReviseCommand(app, []string{"201"}))
	assert.Contains(t, out.String(), "✓ New draft v3 created for Tech Solutions Ltda.")

	require.NoError(t, ProposalsViewCommand(app, []string{"203"}))
	p, err := app.Store().Proposal(203)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalViewed, p.Status)

	require.NoError(t, ProposalsStatusCommand(app, []string{"205", "Sent"}))
	p, err = app.Store().Proposal(205)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalSent, p.Status)
	require.NotNil(t, p.SentAt)
	assert.Equal(t, refNow, *p.SentAt)

	assert.Error(t, ProposalsStatusCommand(app, []string{"205", "Lost"}))
}

func TestContractCommands(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, ContractsListCommand(app, nil))
	assert.Contains(t, out.String(), "Awaiting signature")

	err := ContractsCancelCommand(app, []string{"302"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	require.NoError(t, ContractsCancelCommand(app, []string{"--yes", "302"}))
	assert.Contains(t, out.String(), "✓ Contract has been cancelled.")

	require.NoError(t, ContractsActivateCommand(app, []string{"301"}))
	c, err := app.Store().Contract(301)
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, c.Status)

	require.NoError(t, ContractsGenerateCommand(app, []string{"--type", "recurring", "204"}))
	assert.Contains(t, out.String(), "✓ New contract generated!")
	assert.Equal(t, models.ContractRecurring, app.Store().Get().Contracts[0].ContractType)

	assert.Error(t, ContractsGenerateCommand(app, []string{"--type", "forever", "204"}))
}

func TestTeamCommands(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, TeamListCommand(app, nil))
	assert.Contains(t, out.String(), "Team revenue")

	require.NoError(t, TeamLeaderboardCommand(app, []string{"--tab", "top_closer"}))
	assert.Error(t, TeamLeaderboardCommand(app, []string{"--tab", "fastest"}))

	out.Reset()
	require.NoError(t, TeamCoachCommand(app, []string{"2"}))
	assert.Contains(t, out.String(), "Bottleneck:")
	assert.Contains(t, out.String(), "Plan:")

	require.NoError(t, TeamToggleActionCommand(app, []string{"2", "0"}))
	assert.Contains(t, out.String(), "✓ Coaching plan")
	assert.Error(t, TeamToggleActionCommand(app, []string{"2", "x"}))
}

func TestTeamCommandsNeedRoster(t *testing.T) {
	app, _ := setupTestCLI(t)
	bare := controllers.NewApp(app.Store(), app.Toasts(), nil)
	assert.Error(t, TeamListCommand(bare, nil))
}

func TestFlowsCommands(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, FlowsListCommand(app, nil))
	assert.Contains(t, out.String(), "wa-1")

	require.NoError(t, FlowsToggleCommand(app, []string{"wa-1"}))
	assert.Contains(t, out.String(), "✓ Flow deactivated successfully.")
	assert.Error(t, FlowsToggleCommand(app, []string{"nope"}))
}

func TestInsightCommands(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, TodayCommand(app, nil))
	assert.Contains(t, out.String(), "TODAY")
	assert.Contains(t, out.String(), "Fast Burger")

	out.Reset()
	require.NoError(t, DashboardCommand(app, nil))
	assert.Contains(t, out.String(), "REVENUE OS DASHBOARD (HEALTHY)")
	assert.Error(t, DashboardCommand(app, []string{"--scenario", "boom"}))

	out.Reset()
	require.NoError(t, FunnelCommand(app, nil))
	assert.Contains(t, out.String(), "PIPELINE FUNNEL")

	out.Reset()
	require.NoError(t, ForecastCommand(app, nil))
	assert.Contains(t, out.String(), "Forecast:            $36,250")
	assert.Contains(t, out.String(), "Gap to goal:         $213,750")
	assert.Error(t, ForecastCommand(app, []string{"--closed", "-1"}))
}

func TestGraphCommand(t *testing.T) {
	app, out := setupTestCLI(t)
	path := filepath.Join(t.TempDir(), "flow.dot")

	require.NoError(t, GraphCommand(app, []string{"--output", path}))
	assert.Contains(t, out.String(), "✓ Graph written to")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "deal_101")
}

func TestStatusCommand(t *testing.T) {
	app, out := setupTestCLI(t)

	require.NoError(t, StatusCommand(app, nil))
	assert.Contains(t, out.String(), "Loaded from:  seed (missing)")
	assert.Contains(t, out.String(), "Leads:        6")
	assert.Contains(t, out.String(), "Monthly goal: $250,000")
}

func TestResetCommand(t *testing.T) {
	app, out := setupTestCLI(t)
	prevTerm, prevIn := isTerminal, stdin
	t.Cleanup(func() { isTerminal, stdin = prevTerm, prevIn })

	_, err := app.Leads.Create(controllers.LeadForm{Name: "Acme", Origin: models.OriginOther, OwnerID: 1, NextAction: "Call", DueDate: &refNow})
	require.NoError(t, err)
	app.Toasts().Dismiss()

	isTerminal = func() bool { return false }
	assert.Error(t, ResetCommand(app, nil))

	isTerminal = func() bool { return true }
	stdin = strings.NewReader("no\n")
	require.NoError(t, ResetCommand(app, nil))
	assert.Contains(t, out.String(), "Reset cancelled.")
	assert.Len(t, app.Store().Get().Leads, 7)

	stdin = strings.NewReader("reset\n")
	require.NoError(t, ResetCommand(app, nil))
	assert.Contains(t, out.String(), "✓ Workspace has been reset.")
	assert.Len(t, app.Store().Get().Leads, 6)
}

func TestSeedCommand(t *testing.T) {
	app, out := setupTestCLI(t)
	require.NoError(t, SeedCommand(app, nil))
	assert.Contains(t, out.String(), "✓ Demo data has been loaded!")
}

func TestConfigCommand(t *testing.T) {
	_, out := setupTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(path, "")
	require.NoError(t, err)

	require.NoError(t, ConfigCommand(cfg, nil))
	assert.Contains(t, out.String(), "backend")
	assert.Contains(t, out.String(), "sqlite")

	require.NoError(t, ConfigCommand(cfg, []string{"--save"}))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
