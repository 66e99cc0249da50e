// ABOUTME: Tests for the TUI model key handling and rendering
// ABOUTME: Drives Update with key messages against an in-memory workspace
package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
)

var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func setupModel(t *testing.T) (Model, *controllers.AppController) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), store.WithClock(func() time.Time { return refNow }))
	require.NoError(t, s.Load())
	roster, err := team.Open(s.Backend(), s.Get().TeamPerformance, 7, refNow, nil)
	require.NoError(t, err)
	app := controllers.NewApp(s, notify.New(notify.WithDuration(time.Hour)), roster)
	return NewModel(app), app
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func gotoTab(t *testing.T, m Model, tab Tab) Model {
	t.Helper()
	for m.tab != tab {
		m = press(t, m, "tab")
	}
	return m
}

// selectRow moves the cursor onto the row matching kind and id.
func selectRow(t *testing.T, m Model, kind rowKind, id int64, key string) Model {
	t.Helper()
	for i, r := range m.rows() {
		if r.kind == kind && r.id == id && r.key == key {
			m.selectedRow = i
			return m
		}
	}
	t.Fatalf("no row for kind %d id %d key %q", kind, id, key)
	return m
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupModel(t)
	assert.Equal(t, TabToday, m.tab)

	m = press(t, m, "tab")
	assert.Equal(t, TabLeads, m.tab)
	m = press(t, m, "shift+tab")
	m = press(t, m, "shift+tab")
	assert.Equal(t, TabIntegrations, m.tab)

	assert.Contains(t, m.View(), "Integrations")
}

func TestNavigationStaysInBounds(t *testing.T) {
	m, _ := setupModel(t)
	m = gotoTab(t, m, TabLeads)

	m = press(t, m, "k")
	assert.Equal(t, 0, m.selectedRow)
	for i := 0; i < 20; i++ {
		m = press(t, m, "j")
	}
	assert.Equal(t, len(m.rows())-1, m.selectedRow)
}

func TestLeadsTabCompletesAction(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabLeads)
	assert.Contains(t, m.View(), "Fast Burger")

	m = selectRow(t, m, kindLead, 1, "")
	press(t, m, "c")

	lead, err := app.Store().Lead(1)
	require.NoError(t, err)
	assert.True(t, lead.ActionCompleted)
}

func TestPipelineTabCompletesLeadAction(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabPipeline)

	rows := m.rows()
	require.NotEmpty(t, rows)
	m.selectedRow = 0
	before, err := app.Store().Lead(rows[0].leadID)
	require.NoError(t, err)
	press(t, m, "c")

	lead, err := app.Store().Lead(rows[0].leadID)
	require.NoError(t, err)
	assert.Equal(t, !before.ActionCompleted, lead.ActionCompleted)
	toast, ok := app.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, notify.Success, toast.Kind)
}

func TestProposalsTabSimulateView(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabProposals)

	before, err := app.Store().Proposal(203)
	require.NoError(t, err)
	m = selectRow(t, m, kindProposal, 203, "")
	press(t, m, "v")

	after, err := app.Store().Proposal(203)
	require.NoError(t, err)
	assert.Equal(t, before.ViewCount+1, after.ViewCount)
}

func TestIntegrationsTabTogglesFlow(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabIntegrations)

	m = selectRow(t, m, kindFlow, 0, "wa-1")
	m = press(t, m, "f")

	assert.NotContains(t, app.Store().Get().ActiveFlowIDs, "wa-1")
	assert.Contains(t, m.View(), "Flow deactivated successfully.")
}

func TestDashboardTabCyclesScenario(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabDashboard)
	assert.Contains(t, m.View(), "REVENUE OS DASHBOARD")

	press(t, m, "s")
	assert.Equal(t, views.ScenarioRisk, app.Dashboard.View().Scenario)
}

func TestDetailViewAndBack(t *testing.T) {
	m, _ := setupModel(t)
	m = gotoTab(t, m, TabLeads)
	m = selectRow(t, m, kindLead, 4, "")

	m = press(t, m, "enter")
	require.Equal(t, ViewDetail, m.viewMode)
	out := m.View()
	assert.Contains(t, out, "DETAIL VIEW")
	assert.Contains(t, out, "Fast Burger")
	assert.Contains(t, out, string(insights.UrgencyOverdue))

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestRepDetailTogglesPlanAction(t *testing.T) {
	m, app := setupModel(t)
	m = gotoTab(t, m, TabTeam)
	m = selectRow(t, m, kindRep, 2, "")
	m = press(t, m, "enter")
	assert.Contains(t, m.View(), "Plan:")

	press(t, m, "1")
	rep, err := app.Roster().Rep(2)
	require.NoError(t, err)
	require.NotNil(t, rep.CoachingPlan)
	assert.False(t, rep.CoachingPlan.Actions[0].Completed, "the first demo action starts completed")
}

func TestErrorsBecomeToasts(t *testing.T) {
	m, app := setupModel(t)
	m.viewMode = ViewDetail
	m.selected = listRow{kind: kindRep, id: 1}

	m = press(t, m, "1")
	toast, ok := app.Toasts().Current()
	require.True(t, ok)
	assert.Equal(t, notify.Error, toast.Kind)
	assert.Contains(t, m.View(), "no coaching plan")
}

func TestGraphView(t *testing.T) {
	m, _ := setupModel(t)
	m = gotoTab(t, m, TabPipeline)

	m = press(t, m, "g")
	require.Equal(t, ViewGraph, m.viewMode)
	out := m.View()
	assert.Contains(t, out, "PIPELINE GRAPH")
	assert.Contains(t, out, "digraph")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Empty(t, m.graphDOT)
}

func TestWindowResizeAndQuit(t *testing.T) {
	m, _ := setupModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
