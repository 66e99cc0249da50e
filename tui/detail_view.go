package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/team"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

const detailDate = "Jan 2, 2006"

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	switch m.selected.kind {
	case kindLead:
		s.WriteString(m.renderLeadDetail(m.selected.id))
	case kindDeal:
		s.WriteString(m.renderDealDetail(m.selected.id))
	case kindProposal:
		s.WriteString(m.renderProposalDetail())
	case kindContract:
		s.WriteString(m.renderContractDetail())
	case kindRep:
		s.WriteString(m.renderRepDetail())
	}

	s.WriteString("\n")
	if toast := m.renderToast(); toast != "" {
		s.WriteString(toast + "\n")
	}
	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderLeadDetail(id int64) string {
	lead, err := m.app.Store().Lead(id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	now := m.app.Store().Now()

	var s strings.Builder
	s.WriteString(m.renderField("Name", lead.Name))
	s.WriteString(m.renderField("Origin", string(lead.Origin)))
	s.WriteString(m.renderField("Status", string(lead.Status)))
	s.WriteString(m.renderField("Score", fmt.Sprint(lead.Score)))
	s.WriteString(m.renderField("Next Action", lead.NextActionText))
	if lead.DueDate != nil {
		s.WriteString(m.renderField("Due", lead.DueDate.Format(detailDate)))
	}
	s.WriteString(m.renderField("Urgency", string(insights.Urgency(now, lead.DueDate, lead.ActionCompleted))))
	s.WriteString(m.renderField("Notes", lead.Notes))

	if len(lead.ActivityLog) > 0 {
		s.WriteString("\n")
		s.WriteString(titleStyle.Render("Activity"))
		s.WriteString("\n")
		for i, a := range lead.ActivityLog {
			if i == 8 {
				break
			}
			s.WriteString(fmt.Sprintf("  • %s  %s\n", insights.TimeSince(now, a.Timestamp), a.Description))
		}
	}
	return s.String()
}

func (m Model) renderDealDetail(id int64) string {
	deal, err := m.app.Store().Deal(id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	now := m.app.Store().Now()

	var s strings.Builder
	s.WriteString(m.renderField("Stage", string(deal.Stage)))
	s.WriteString(m.renderField("Value", money(deal.Value)))
	s.WriteString(m.renderField("In Stage Since", deal.StageEnteredAt.Format(detailDate)))
	s.WriteString(m.renderField("Last Action", insights.TimeSince(now, deal.LastActionAt)))
	if deal.SpecialStatus != "" {
		s.WriteString(m.renderField("Special Status", string(deal.SpecialStatus)))
	}
	if deal.OnHoldReason != "" {
		s.WriteString(m.renderField("Hold Reason", string(deal.OnHoldReason)))
	}
	if deal.ReactivateAt != nil {
		s.WriteString(m.renderField("Reactivate", deal.ReactivateAt.Format(detailDate)))
	}
	s.WriteString("\n")
	s.WriteString(m.renderLeadDetail(deal.LeadID))
	return s.String()
}

func (m Model) renderProposalDetail() string {
	p, err := m.app.Store().Proposal(m.selected.id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var s strings.Builder
	s.WriteString(m.renderField("Client", p.LeadName))
	s.WriteString(m.renderField("Version", fmt.Sprintf("v%d", p.Version)))
	s.WriteString(m.renderField("Value", money(p.Value)))
	s.WriteString(m.renderField("Status", string(p.Status)))
	s.WriteString(m.renderField("Views", fmt.Sprint(p.ViewCount)))
	s.WriteString(m.renderField("Valid Until", p.ValidUntil.Format(detailDate)))
	s.WriteString(m.renderField("Follow-up", string(p.FollowUpStatus)))
	s.WriteString(m.renderField("Scope", p.ScopeSummary))
	if len(p.Signals) > 0 {
		sigs := make([]string, 0, len(p.Signals))
		for _, sig := range p.Signals {
			sigs = append(sigs, string(sig))
		}
		s.WriteString(m.renderField("Signals", strings.Join(sigs, ", ")))
	}
	if len(p.Timeline) > 0 {
		s.WriteString("\n")
		s.WriteString(titleStyle.Render("Timeline"))
		s.WriteString("\n")
		for _, e := range p.Timeline {
			s.WriteString(fmt.Sprintf("  • %s  %s %s\n", e.Timestamp.Format(detailDate), e.Type, e.Details))
		}
	}
	return s.String()
}

func (m Model) renderContractDetail() string {
	c, err := m.app.Store().Contract(m.selected.id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	a := insights.ContractRisk(c, m.app.Store().Now())

	var s strings.Builder
	s.WriteString(m.renderField("Client", c.LeadName))
	s.WriteString(m.renderField("Legal Name", c.LegalName))
	s.WriteString(m.renderField("Type", string(c.ContractType)))
	s.WriteString(m.renderField("Value", money(c.Value)))
	s.WriteString(m.renderField("Status", string(c.Status)))
	s.WriteString(m.renderField("Risk", string(a.RiskLevel)))
	s.WriteString(m.renderField("Revenue", string(a.RevenueState)))
	s.WriteString(m.renderField("Signal", a.AISignal))
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("Timeline"))
	s.WriteString("\n")
	for _, e := range c.Timeline {
		s.WriteString(fmt.Sprintf("  • %s  %s %s\n", e.Timestamp.Format(detailDate), e.Status, e.Details))
	}
	return s.String()
}

func (m Model) renderRepDetail() string {
	roster := m.app.Roster()
	if roster == nil {
		return "Team data is not loaded."
	}
	rep, err := roster.Rep(m.selected.id)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	coach := team.CoachFor(rep)

	var s strings.Builder
	s.WriteString(m.renderField("Name", rep.Name))
	s.WriteString(m.renderField("Tier", string(rep.CurrentTier)))
	s.WriteString(m.renderField("Discipline", fmt.Sprint(rep.DisciplineScore)))
	s.WriteString(m.renderField("Revenue", money(rep.Revenue)))
	s.WriteString(m.renderField("Focus", rep.CurrentFocus))
	s.WriteString(m.renderField("Bottleneck", coach.Bottleneck))
	s.WriteString(m.renderField("Action", coach.Action))
	s.WriteString(m.renderField("Challenge", coach.Challenge))
	if plan := rep.CoachingPlan; plan != nil {
		s.WriteString("\n")
		s.WriteString(titleStyle.Render(fmt.Sprintf("Plan: %s (%d%%)", plan.Goal, plan.Progress)))
		s.WriteString("\n")
		for _, a := range plan.Actions {
			box := "[ ]"
			if a.Completed {
				box = "[x]"
			}
			s.WriteString(fmt.Sprintf("  %s %s\n", box, a.Text))
		}
	}
	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back"}
	switch m.selected.kind {
	case kindLead, kindDeal:
		help = append(help, "c: Complete action")
	case kindProposal:
		help = append(help, "v: Simulate view")
	case kindRep:
		help = append(help, "1-9: Toggle plan action")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.viewMode = ViewList
		m.selected = listRow{}
	case "c":
		switch m.selected.kind {
		case kindLead:
			_, err := m.app.Leads.ToggleComplete(m.selected.id)
			m.fail(err)
		case kindDeal:
			m.fail(m.app.Pipeline.ToggleComplete(m.selected.leadID))
		}
	case "v":
		if m.selected.kind == kindProposal {
			_, err := m.app.Proposals.SimulateView(m.selected.id)
			m.fail(err)
		}
	default:
		if m.selected.kind == kindRep && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if roster := m.app.Roster(); roster != nil {
				_, err := roster.ToggleCoachingAction(m.selected.id, int(key[0]-'1'))
				m.fail(err)
			}
		}
	}
	return m, nil
}
