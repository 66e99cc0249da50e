package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/revenueos/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("PIPELINE GRAPH"))
	s.WriteString("\n\n")

	s.WriteString(viz.RenderPipeline(m.app.Pipeline.View()))
	s.WriteString("\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(m.graphDOT))
	}
	s.WriteString("\n\n")
	s.WriteString(m.renderGraphHelp())
	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.graphDOT = ""
	}
	return m, nil
}

func (m *Model) generateGraph() {
	dot, err := viz.PipelineGraph(m.app.Store().Get(), m.app.Store().Now())
	if err != nil {
		m.graphDOT = fmt.Sprintf("Error: %v", err)
		return
	}
	m.graphDOT = dot
}
