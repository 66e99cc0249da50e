package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
	"github.com/harperreed/revenueos/viz"
)

type rowKind int

const (
	kindNone rowKind = iota
	kindLead
	kindDeal
	kindProposal
	kindContract
	kindRep
	kindFlow
)

// listRow ties a rendered row to the entity it shows.
type listRow struct {
	kind   rowKind
	id     int64
	leadID int64
	key    string
	cells  table.Row
}

var urgencyIcons = map[insights.UrgencyStatus]string{
	insights.UrgencyOverdue:         "🔴",
	insights.UrgencyDueToday:        "🟡",
	insights.UrgencyNeedsScheduling: "⚪",
	insights.UrgencyOnTrack:         "🟢",
	insights.UrgencyCompleted:       "✅",
}

func money(v float64) string {
	return "$" + views.FormatMoney(v)
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("REVENUE OS"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.tab == TabDashboard {
		s.WriteString(viz.RenderDashboard(m.app.Dashboard.View()))
	} else {
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n")

	if toast := m.renderToast(); toast != "" {
		s.WriteString("\n" + toast + "\n")
	}
	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i := Tab(0); i < tabCount; i++ {
		if i == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(i.String()))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(i.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) columns() []table.Column {
	switch m.tab {
	case TabToday:
		return []table.Column{{Title: "Section", Width: 18}, {Title: "Name", Width: 24}, {Title: "Detail", Width: 40}}
	case TabLeads:
		return []table.Column{{Title: "Lead", Width: 26}, {Title: "Origin", Width: 10}, {Title: "Owner", Width: 14}, {Title: "Next Action", Width: 28}, {Title: "Due", Width: 14}}
	case TabPipeline:
		return []table.Column{{Title: "Stage", Width: 14}, {Title: "Lead", Width: 24}, {Title: "Value", Width: 10}, {Title: "Days", Width: 5}, {Title: "Next Action", Width: 30}}
	case TabProposals:
		return []table.Column{{Title: "Lead", Width: 24}, {Title: "Ver", Width: 4}, {Title: "Value", Width: 10}, {Title: "Status", Width: 12}, {Title: "Views", Width: 6}, {Title: "Last Activity", Width: 24}}
	case TabContracts:
		return []table.Column{{Title: "Client", Width: 24}, {Title: "Type", Width: 10}, {Title: "Value", Width: 10}, {Title: "Status", Width: 10}, {Title: "Signal", Width: 36}}
	case TabTeam:
		return []table.Column{{Title: "Rep", Width: 20}, {Title: "Discipline", Width: 10}, {Title: "Tier", Width: 8}, {Title: "Revenue", Width: 12}, {Title: "Week", Width: 6}}
	case TabIntegrations:
		return []table.Column{{Title: "Integration", Width: 18}, {Title: "Flow", Width: 8}, {Title: "Active", Width: 7}, {Title: "Description", Width: 48}}
	}
	return nil
}

// rows builds the current tab's rows fresh from the store.
func (m Model) rows() []listRow {
	app := m.app
	var out []listRow

	switch m.tab {
	case TabToday:
		t := app.Today()
		for _, l := range t.OverdueFollowUps {
			out = append(out, listRow{kind: kindLead, id: l.ID, cells: table.Row{"Overdue", l.Name, fmt.Sprintf("%dd · %s", l.DaysOverdue, l.NextActionText)}})
		}
		for _, l := range t.HotLeads {
			out = append(out, listRow{kind: kindLead, id: l.ID, cells: table.Row{"Hot", l.Name, l.NextActionText}})
		}
		for _, l := range t.NoContact {
			out = append(out, listRow{kind: kindLead, id: l.ID, cells: table.Row{"Not contacted", l.Name, string(l.Origin)}})
		}
		for _, p := range t.ProposalsNeedingFollowUp {
			out = append(out, listRow{kind: kindProposal, id: p.ID, cells: table.Row{"Proposal", p.LeadName, "viewed " + p.LastViewedText}})
		}
		for _, d := range t.StalledDeals {
			out = append(out, listRow{kind: kindDeal, id: d.ID, leadID: d.LeadID, cells: table.Row{"Stalled", d.LeadName, string(d.Stage)}})
		}
	case TabLeads:
		for _, l := range app.Leads.View().Leads {
			out = append(out, listRow{kind: kindLead, id: l.ID, cells: table.Row{
				urgencyIcons[l.Urgency] + " " + l.Name, string(l.Origin), l.OwnerName, l.NextActionText, l.DueText,
			}})
		}
	case TabPipeline:
		for _, col := range app.Pipeline.View().Columns {
			for _, d := range col.Deals {
				out = append(out, listRow{kind: kindDeal, id: d.ID, leadID: d.LeadID, cells: table.Row{
					string(d.Stage), urgencyIcons[d.RiskStatus] + " " + d.Lead.Name, money(d.Value), fmt.Sprint(d.DaysInStage), d.Lead.NextActionText,
				}})
			}
		}
	case TabProposals:
		for _, p := range app.Proposals.View().Rows {
			out = append(out, listRow{kind: kindProposal, id: p.ID, cells: table.Row{
				p.LeadName, fmt.Sprintf("v%d", p.Version), money(p.Value), string(p.Status), fmt.Sprint(p.ViewCount), p.LastActivity,
			}})
		}
	case TabContracts:
		for _, c := range app.Contracts.View().Contracts {
			out = append(out, listRow{kind: kindContract, id: c.ID, cells: table.Row{
				c.LeadName, string(c.ContractType), money(c.Value), string(c.Status), c.AISignal,
			}})
		}
	case TabTeam:
		if r := app.Roster(); r != nil {
			for _, rep := range r.Leaderboard(team.TabImprovement) {
				out = append(out, listRow{kind: kindRep, id: rep.ID, cells: table.Row{
					rep.Name, fmt.Sprint(rep.DisciplineScore), string(rep.CurrentTier), money(rep.Revenue), fmt.Sprintf("%+.0f", rep.WeeklyDelta.Discipline),
				}})
			}
		}
	case TabIntegrations:
		for _, cat := range app.Integrations.View().Categories {
			for _, card := range cat.Items {
				for _, f := range card.FlowStates {
					active := "no"
					if f.Active {
						active = "yes"
					}
					out = append(out, listRow{kind: kindFlow, key: f.ID, cells: table.Row{card.Name, f.ID, active, f.Description}})
				}
			}
		}
	}
	return out
}

func (m Model) renderTable() string {
	rows := m.rows()
	if len(rows) == 0 {
		return "Nothing here yet."
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, r.cells)
	}

	height := m.height - 12
	if height < 5 {
		height = 5
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{"Tab/Shift+Tab: Switch", "↑/↓: Navigate", "Enter: Details"}
	switch m.tab {
	case TabToday, TabLeads, TabPipeline:
		help = append(help, "c: Complete action")
	case TabProposals:
		help = append(help, "v: Simulate view", "r: Revise")
	case TabDashboard:
		help = append(help, "s: Scenario")
	case TabIntegrations:
		help = append(help, "f: Toggle flow")
	}
	if m.tab == TabPipeline {
		help = append(help, "g: Graph")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) current() (listRow, bool) {
	rows := m.rows()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return listRow{}, false
	}
	return rows[m.selectedRow], true
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.rows())-1 {
			m.selectedRow++
		}
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.selectedRow = 0
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selectedRow = 0
	case "enter":
		if row, ok := m.current(); ok && row.kind != kindFlow {
			m.selected = row
			m.viewMode = ViewDetail
		}
	case "c":
		m.completeAction()
	case "v":
		if row, ok := m.current(); ok && row.kind == kindProposal {
			_, err := m.app.Proposals.SimulateView(row.id)
			m.fail(err)
		}
	case "r":
		if row, ok := m.current(); ok && row.kind == kindProposal {
			_, err := m.app.Proposals.Act(row.id, controllers.ActionDuplicate)
			m.fail(err)
		}
	case "f":
		if row, ok := m.current(); ok && row.kind == kindFlow {
			_, err := m.app.Integrations.ToggleFlow(row.key)
			m.fail(err)
		}
	case "s":
		if m.tab == TabDashboard {
			m.app.Dashboard.CycleScenario()
		}
	case "g":
		if m.tab == TabPipeline {
			m.generateGraph()
			m.viewMode = ViewGraph
		}
	}
	return m, nil
}

func (m Model) completeAction() {
	row, ok := m.current()
	if !ok {
		return
	}
	switch row.kind {
	case kindLead:
		_, err := m.app.Leads.ToggleComplete(row.id)
		m.fail(err)
	case kindDeal:
		m.fail(m.app.Pipeline.ToggleComplete(row.leadID))
	}
}
