// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: One tab per screen with row actions and toasts in the footer
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/notify"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewGraph
)

// Tab is one screen of the app.
type Tab int

const (
	TabToday Tab = iota
	TabLeads
	TabPipeline
	TabProposals
	TabContracts
	TabDashboard
	TabTeam
	TabIntegrations
	tabCount
)

var tabNames = []string{"Today", "Leads", "Pipeline", "Proposals", "Contracts", "Dashboard", "Team", "Integrations"}

func (t Tab) String() string { return tabNames[t] }

// toastMsg re-renders the footer when the current toast changes.
type toastMsg struct{}

// Model is the main bubbletea model
type Model struct {
	app      *controllers.AppController
	viewMode ViewMode
	tab      Tab

	selectedRow int
	selected    listRow

	graphDOT string

	toasts chan struct{}

	width  int
	height int
}

// NewModel creates a new TUI model and subscribes to toast changes.
func NewModel(app *controllers.AppController) Model {
	m := Model{
		app:      app,
		viewMode: ViewList,
		tab:      TabToday,
		toasts:   make(chan struct{}, 1),
		width:    100,
		height:   30,
	}
	ch := m.toasts
	app.Toasts().Subscribe(func(*notify.Toast) {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	return m
}

func (m Model) waitForToast() tea.Cmd {
	ch := m.toasts
	return func() tea.Msg {
		<-ch
		return toastMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForToast()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case toastMsg:
		return m, m.waitForToast()
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewGraph:
		return m.renderGraphView()
	}
	return m.renderListView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	}
	return m.handleListKeys(msg)
}

// fail surfaces an error as an error toast.
func (m Model) fail(err error) {
	if err != nil {
		m.app.Toasts().Show(notify.Error, err.Error())
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	toastStyles = map[notify.Kind]lipgloss.Style{
		notify.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notify.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func (m Model) renderToast() string {
	t, ok := m.app.Toasts().Current()
	if !ok {
		return ""
	}
	return toastStyles[t.Kind].Render("● " + t.Message)
}
