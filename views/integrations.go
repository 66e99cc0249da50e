// ABOUTME: Integrations hub: catalog grouped by category with flow activation state
// ABOUTME: AI insights report whether their suggested flow is already on

package views

import "github.com/harperreed/revenueos/models"

var categoryNames = map[models.IntegrationCategory]string{
	models.CategoryLeadCapture:   "Lead Capture",
	models.CategoryConversations: "Conversations",
	models.CategoryMarketing:     "Marketing",
	models.CategoryMeetings:      "Meetings & Scheduling",
	models.CategoryPayments:      "Payments",
	models.CategoryProductivity:  "Productivity",
	models.CategoryAdvanced:      "Advanced",
}

type FlowState struct {
	models.Flow
	Active bool `json:"active"`
}

type IntegrationCard struct {
	models.Integration
	FlowStates  []FlowState `json:"flowStates"`
	ActiveFlows int         `json:"activeFlows"`
}

type IntegrationCategory struct {
	Key   models.IntegrationCategory `json:"key"`
	Name  string                     `json:"name"`
	Items []IntegrationCard          `json:"items"`
}

type InsightCard struct {
	models.AIInsight
	FlowActive bool `json:"flowActive"`
}

type Integrations struct {
	Categories []IntegrationCategory `json:"categories"`
	Insights   []InsightCard         `json:"insights"`
}

// FlowActive reports whether a flow id is switched on.
func FlowActive(st models.AppState, flowID string) bool {
	for _, id := range st.ActiveFlowIDs {
		if id == flowID {
			return true
		}
	}
	return false
}

// BuildIntegrations groups the catalog in the fixed category order and
// leaves out categories without integrations.
func BuildIntegrations(st models.AppState) Integrations {
	grouped := map[models.IntegrationCategory][]IntegrationCard{}
	for _, in := range st.Integrations {
		card := IntegrationCard{Integration: in}
		for _, f := range in.Flows {
			active := FlowActive(st, f.ID)
			if active {
				card.ActiveFlows++
			}
			card.FlowStates = append(card.FlowStates, FlowState{Flow: f, Active: active})
		}
		grouped[in.Category] = append(grouped[in.Category], card)
	}

	var out Integrations
	for _, cat := range models.IntegrationCategories {
		items, ok := grouped[cat]
		if !ok {
			continue
		}
		out.Categories = append(out.Categories, IntegrationCategory{Key: cat, Name: categoryNames[cat], Items: items})
	}
	for _, ins := range st.AIInsights {
		out.Insights = append(out.Insights, InsightCard{AIInsight: ins, FlowActive: ins.RelatedFlowID != "" && FlowActive(st, ins.RelatedFlowID)})
	}
	return out
}

// FindIntegration looks an integration up by id.
func FindIntegration(st models.AppState, id string) (models.Integration, bool) {
	for _, in := range st.Integrations {
		if in.ID == id {
			return in, true
		}
	}
	return models.Integration{}, false
}
