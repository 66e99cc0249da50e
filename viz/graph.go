// ABOUTME: Graphviz rendering of the revenue flow
// ABOUTME: Leads link to deals colored by risk, then latest proposals, then contracts
package viz

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/views"
)

// riskColors fills deal nodes by the urgency of their lead's next action.
var riskColors = map[insights.UrgencyStatus]string{
	insights.UrgencyOverdue:         "salmon",
	insights.UrgencyDueToday:        "gold",
	insights.UrgencyNeedsScheduling: "lightgray",
	insights.UrgencyOnTrack:         "palegreen",
	insights.UrgencyCompleted:       "lightblue",
}

// PipelineGraph renders leads, deals, latest proposals and contracts as DOT.
func PipelineGraph(st models.AppState, now time.Time) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Revenue Flow")
	graph.SetRankDir(cgraph.LRRank)

	leadNodes := make(map[int64]*cgraph.Node)
	for _, l := range st.Leads {
		node, err := graph.CreateNodeByName(fmt.Sprintf("lead_%d", l.ID))
		if err != nil {
			return "", fmt.Errorf("failed to create lead node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%s)", l.Name, l.Origin))
		node.SetShape("ellipse")
		leadNodes[l.ID] = node
	}

	dealNodes := make(map[int64]*cgraph.Node)
	for _, d := range views.KanbanDeals(st, now) {
		node, err := graph.CreateNodeByName(fmt.Sprintf("deal_%d", d.ID))
		if err != nil {
			return "", fmt.Errorf("failed to create deal node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("$%s\n%s", views.FormatMoney(d.Value), d.Stage))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(riskColor(d))
		dealNodes[d.ID] = node

		if leadNode, ok := leadNodes[d.LeadID]; ok {
			if _, err := graph.CreateEdgeByName(fmt.Sprintf("lead_deal_%d", d.ID), leadNode, node); err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
		}
	}

	proposalNodes := make(map[int64]*cgraph.Node)
	for _, p := range st.Proposals {
		if !p.IsLatest {
			continue
		}
		node, err := graph.CreateNodeByName(fmt.Sprintf("proposal_%d", p.ID))
		if err != nil {
			return "", fmt.Errorf("failed to create proposal node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("Proposal v%d\n%s", p.Version, p.Status))
		node.SetShape("note")
		proposalNodes[p.ID] = node

		if dealNode, ok := dealNodes[p.DealID]; ok {
			edge, err := graph.CreateEdgeByName(fmt.Sprintf("deal_proposal_%d", p.ID), dealNode, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("dashed")
		}
	}

	for _, c := range st.Contracts {
		node, err := graph.CreateNodeByName(fmt.Sprintf("contract_%d", c.ID))
		if err != nil {
			return "", fmt.Errorf("failed to create contract node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("Contract\n%s", c.Status))
		node.SetShape("component")
		node.SetStyle("filled")
		node.SetFillColor("lightyellow")

		from, ok := proposalNodes[c.ProposalID]
		if !ok {
			from, ok = dealNodes[c.DealID]
		}
		if ok {
			edge, err := graph.CreateEdgeByName(fmt.Sprintf("contract_%d_edge", c.ID), from, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("dotted")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func riskColor(d views.KanbanDeal) string {
	switch d.Stage {
	case models.StageWon:
		return "lightblue"
	case models.StageLost:
		return "gray"
	}
	if c, ok := riskColors[d.RiskStatus]; ok {
		return c
	}
	return "white"
}
