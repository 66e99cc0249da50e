// ABOUTME: Fixed demo datasets relative to a reference time
// ABOUTME: Provides the default workspace snapshot and the dashboard risk/recovery scenarios
package models

import "time"

// DefaultMonthlyGoal is the revenue target of a fresh workspace.
const DefaultMonthlyGoal = 250000

// dayOffsets anchors every seeded date to the reference instant.
type dayOffsets struct {
	now time.Time
}

func (d dayOffsets) at(days int) time.Time {
	return d.now.AddDate(0, 0, days)
}

func (d dayOffsets) ptr(days int) *time.Time {
	t := d.at(days)
	return &t
}

func activity(at time.Time, text string) []Activity {
	return []Activity{{Timestamp: at, Description: text}}
}

// Seed builds the default workspace. Reset and seed both resolve to it.
func Seed(now time.Time) AppState {
	d := dayOffsets{now: now}
	today, yesterday := d.at(0), d.at(-1)
	twoDaysAgo, fourDaysAgo := d.at(-2), d.at(-4)
	fiveDaysAgo, eightDaysAgo, tenDaysAgo := d.at(-5), d.at(-8), d.at(-10)
	twoHoursAgo := now.Add(-2 * time.Hour)

	return AppState{
		Users: []User{
			{ID: 1, Name: "Anna Silva", Avatar: "https://i.pravatar.cc/100?u=anna"},
			{ID: 2, Name: "Bruno Costa", Avatar: "https://i.pravatar.cc/100?u=bruno"},
			{ID: 3, Name: "Carla Dias", Avatar: "https://i.pravatar.cc/100?u=carla"},
		},
		Leads: []Lead{
			{
				ID: 1, Name: "Tech Solutions Ltda", Origin: OriginWebsite, OwnerID: 1, Status: LeadQualified,
				CreatedAt: yesterday, UpdatedAt: yesterday, DealID: IDPtr(101), Score: 85, Priority: PriorityHot,
				NextActionText: "Send proposal doc", DueDate: d.ptr(1),
				Notes:       "Client is very interested in our new AI features.",
				ActivityLog: activity(yesterday, "Lead created"), Contacted: true, FirstContactAt: d.ptr(-1),
				Messages:      []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetHigh, Urgency: UrgencyThisMonth, Fit: FitPerfect, Intent: IntentProposal},
			},
			{
				ID: 2, Name: "Inova Digital Agency", Origin: OriginWhatsApp, OwnerID: 1, Status: LeadInProgress,
				CreatedAt: fourDaysAgo, UpdatedAt: fourDaysAgo, DealID: IDPtr(102), Score: 60, Priority: PriorityWarm,
				NextActionText: "Follow-up on proposal", DueDate: d.ptr(0),
				ActivityLog: activity(fourDaysAgo, "Lead created"), Contacted: true, FirstContactAt: d.ptr(-4),
				Messages: []ChatMessage{},
			},
			{
				ID: 3, Name: "Global Logistics", Origin: OriginReferral, OwnerID: 2, Status: LeadQualified,
				CreatedAt: eightDaysAgo, UpdatedAt: yesterday, DealID: IDPtr(103), Score: 75, Priority: PriorityHot,
				NextActionText: "Send contract", DueDate: d.ptr(3),
				Notes:       "Referred by John Doe from Acme Corp.",
				ActivityLog: activity(eightDaysAgo, "Lead created"), Contacted: true, FirstContactAt: d.ptr(-8),
				Messages:      []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetMedium, Urgency: UrgencyThisWeek, Fit: FitPerfect, Intent: IntentBooking},
			},
			{
				ID: 4, Name: "Fast Burger Chain", Origin: OriginInstagram, OwnerID: 3, Status: LeadNew,
				CreatedAt: twoDaysAgo, UpdatedAt: twoDaysAgo, DealID: IDPtr(104), Score: 0,
				NextActionText: "Initial contact message", DueDate: d.ptr(-2),
				ActivityLog: activity(twoDaysAgo, "Lead created"), Unread: true,
				Messages: []ChatMessage{{Sender: "user", Content: "Hi, what are your prices?", Timestamp: twoDaysAgo}},
				SLA:      &SLA{FirstResponseDue: twoDaysAgo.Add(time.Hour)},
			},
			{
				ID: 5, Name: "Future Gadgets Inc.", Origin: OriginWebsite, OwnerID: 2, Status: LeadQualified,
				CreatedAt: yesterday, UpdatedAt: today, DealID: IDPtr(105), Score: 90, Priority: PriorityHot,
				NextActionText: "Final pricing call", DueDate: d.ptr(1), ActionCompleted: true,
				Notes: "Completed the call, waiting for their internal decision.",
				ActivityLog: []Activity{
					{Timestamp: yesterday, Description: "Lead created"},
					{Timestamp: today, Description: `Action "Final pricing call" completed.`},
				},
				Contacted: true, FirstContactAt: d.ptr(-1), Messages: []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetHigh, Urgency: UrgencyThisWeek, Fit: FitPerfect, Intent: IntentProposal},
			},
			{
				ID: 6, Name: "Downtown Cleaners", Origin: OriginReferral, OwnerID: 1, Status: LeadNew,
				CreatedAt: today, UpdatedAt: today, NextActionText: "Schedule discovery call",
				ActivityLog: activity(today, "Lead created"), Unread: true, Messages: []ChatMessage{},
			},
		},
		Deals: []Deal{
			{ID: 101, LeadID: 1, Stage: StageProposalSent, Value: 15000, LastActionAt: yesterday, StageEnteredAt: twoDaysAgo},
			{ID: 102, LeadID: 2, Stage: StageNegotiation, Value: 8000, LastActionAt: twoDaysAgo, StageEnteredAt: fourDaysAgo, SpecialStatus: SpecialOnHold, OnHoldReason: HoldBudget},
			{ID: 103, LeadID: 3, Stage: StageWon, Value: 25000, LastActionAt: yesterday, StageEnteredAt: yesterday},
			{ID: 104, LeadID: 4, Stage: StageNewLead, Value: 5000, LastActionAt: twoDaysAgo, StageEnteredAt: twoDaysAgo},
			{ID: 105, LeadID: 5, Stage: StageNegotiation, Value: 32000, LastActionAt: fourDaysAgo, StageEnteredAt: eightDaysAgo, SpecialStatus: SpecialPaused, ReactivateAt: d.ptr(7)},
		},
		Proposals: []Proposal{
			{
				ID: 201, DealID: 101, LeadName: "Tech Solutions Ltda", Value: 15000, Status: ProposalViewed, Version: 2, IsLatest: true,
				CreatedAt: yesterday, SentAt: d.ptr(-1), ValidUntil: d.at(14), ViewCount: 3, LastViewedAt: TimePtr(twoHoursAgo),
				Timeline: []TimelineEvent{
					{Type: EventCreated, Timestamp: twoDaysAgo},
					{Type: EventSent, Timestamp: twoDaysAgo, Details: "Version 1 Sent"},
					{Type: EventRevisionRequested, Timestamp: yesterday},
					{Type: EventReplaced, Timestamp: yesterday, Details: "v2"},
					{Type: EventSent, Timestamp: yesterday, Details: "Version 2 Sent"},
					{Type: EventViewed, Timestamp: twoHoursAgo, Details: "Viewed for 5m 12s"},
				},
				ScopeSummary: "Full-stack web application development.", Signals: []Signal{SignalHighIntent}, FollowUpStatus: FollowUpNeeded,
			},
			{
				ID: 200, DealID: 101, LeadName: "Tech Solutions Ltda", Value: 14500, Status: ProposalReplaced, Version: 1,
				CreatedAt: twoDaysAgo, SentAt: d.ptr(-2), ValidUntil: d.at(7), ViewCount: 1, LastViewedAt: d.ptr(-2),
				Timeline: []TimelineEvent{
					{Type: EventCreated, Timestamp: twoDaysAgo},
					{Type: EventSent, Timestamp: twoDaysAgo},
					{Type: EventReplaced, Timestamp: yesterday, Details: "by v2"},
				},
				ScopeSummary: "Initial web application scope.", Signals: []Signal{}, FollowUpStatus: FollowUpCompleted, ReplacedBy: IDPtr(201),
			},
			{
				ID: 202, DealID: 102, LeadName: "Inova Digital Agency", Value: 8500, Status: ProposalNegotiation, Version: 1, IsLatest: true,
				CreatedAt: tenDaysAgo, SentAt: d.ptr(-8), ValidUntil: d.at(7), ViewCount: 1, LastViewedAt: d.ptr(-8),
				Timeline: []TimelineEvent{
					{Type: EventCreated, Timestamp: tenDaysAgo},
					{Type: EventSent, Timestamp: eightDaysAgo},
					{Type: EventViewed, Timestamp: eightDaysAgo},
					{Type: EventRevisionRequested, Timestamp: fiveDaysAgo, Details: "Client requested adjustment on payment terms."},
				},
				ScopeSummary: "Social media management package.", Signals: []Signal{SignalStalledNegotiation}, FollowUpStatus: FollowUpNeeded,
			},
			{
				ID: 203, DealID: 105, LeadName: "Future Gadgets Inc.", Value: 32000, Status: ProposalSent, Version: 1, IsLatest: true,
				CreatedAt: fourDaysAgo, SentAt: d.ptr(-4), ValidUntil: d.at(1),
				Timeline: []TimelineEvent{
					{Type: EventCreated, Timestamp: fourDaysAgo},
					{Type: EventSent, Timestamp: fourDaysAgo},
				},
				ScopeSummary: "Hardware prototype development.", Signals: []Signal{SignalRiskNotOpened}, FollowUpStatus: FollowUpNeeded,
			},
			{
				ID: 204, DealID: 103, LeadName: "Global Logistics", Value: 25000, Status: ProposalAccepted, Version: 1, IsLatest: true,
				CreatedAt: eightDaysAgo, SentAt: d.ptr(-8), ValidUntil: d.at(-1), ViewCount: 1, LastViewedAt: d.ptr(-8),
				Timeline: []TimelineEvent{
					{Type: EventCreated, Timestamp: eightDaysAgo},
					{Type: EventSent, Timestamp: eightDaysAgo},
					{Type: EventViewed, Timestamp: eightDaysAgo},
					{Type: EventAccepted, Timestamp: yesterday},
				},
				ScopeSummary: "Logistics software integration.", Signals: []Signal{}, FollowUpStatus: FollowUpCompleted,
			},
			{
				ID: 205, DealID: 104, LeadName: "Fast Burger Chain", Value: 5000, Status: ProposalDraft, Version: 1, IsLatest: true,
				CreatedAt: today, ValidUntil: d.at(14),
				Timeline:     []TimelineEvent{{Type: EventCreated, Timestamp: today}},
				ScopeSummary: "Initial social media campaign.", Signals: []Signal{}, FollowUpStatus: FollowUpNone,
			},
		},
		Contracts: []Contract{
			{
				ID: 301, ProposalID: 204, DealID: 103, LeadName: "Global Logistics", Value: 25000, ContractType: ContractOneTime, Status: ContractSigned,
				CreatedAt: twoDaysAgo, SentAt: d.ptr(-2), ViewedAt: d.ptr(-2), SignedAt: d.ptr(-1),
				Timeline: []ContractEvent{
					{Status: ContractGenerated, Timestamp: twoDaysAgo},
					{Status: ContractSent, Timestamp: twoDaysAgo},
					{Status: ContractViewed, Timestamp: twoDaysAgo},
					{Status: ContractSigned, Timestamp: yesterday},
				},
				LegalName: "Global Logistics S.A.",
			},
			{
				ID: 302, ProposalID: 201, DealID: 101, LeadName: "Tech Solutions Ltda", Value: 15000, ContractType: ContractMilestone, Status: ContractSent,
				CreatedAt: today, SentAt: d.ptr(0),
				Timeline: []ContractEvent{
					{Status: ContractGenerated, Timestamp: today},
					{Status: ContractSent, Timestamp: today},
				},
				LegalName: "Tech Solutions Ltda ME",
			},
			{
				ID: 303, ProposalID: 203, DealID: 105, LeadName: "Future Gadgets Inc.", Value: 32000, ContractType: ContractOneTime, Status: ContractSent,
				CreatedAt: fourDaysAgo, SentAt: d.ptr(-4),
				Timeline: []ContractEvent{
					{Status: ContractGenerated, Timestamp: fourDaysAgo},
					{Status: ContractSent, Timestamp: fourDaysAgo, Details: "Sent via DocuSign"},
				},
				LegalName: "Future Gadgets Inc.",
			},
			{
				ID: 304, DealID: 110, LeadName: "Boutique Flor de Lis", Value: 9500, ContractType: ContractRecurring, Status: ContractActive,
				CreatedAt: tenDaysAgo, SentAt: d.ptr(-10), ViewedAt: d.ptr(-10), SignedAt: d.ptr(-8), ActivatedAt: d.ptr(-8),
				Timeline: []ContractEvent{
					{Status: ContractGenerated, Timestamp: tenDaysAgo},
					{Status: ContractSent, Timestamp: tenDaysAgo},
					{Status: ContractSigned, Timestamp: eightDaysAgo},
					{Status: ContractActive, Timestamp: eightDaysAgo},
				},
				LegalName: "Boutique Flor de Lis ME",
			},
		},
		TeamPerformance: []TeamMember{
			{ID: 1, Name: "Anna Silva", Avatar: "https://i.pravatar.cc/100?u=anna", AvgResponseTime: 25, FollowUpRate: 95, DealsWon: 8, Revenue: 125000, Trend: TrendImproving, NeedsCoaching: []string{}},
			{ID: 2, Name: "Bruno Costa", Avatar: "https://i.pravatar.cc/100?u=bruno", AvgResponseTime: 45, FollowUpRate: 78, DealsWon: 5, Revenue: 82000, Trend: TrendDeclining, NeedsCoaching: []string{"Follow-up discipline", "Proposal closing"}},
			{ID: 3, Name: "Carla Dias", Avatar: "https://i.pravatar.cc/100?u=carla", AvgResponseTime: 15, FollowUpRate: 99, DealsWon: 12, Revenue: 180000, Trend: TrendStable, NeedsCoaching: []string{"Negotiation skills"}},
		},
		MicroLessons: []MicroLesson{
			{ID: 1, Title: "How to follow up after a proposal is viewed", Category: "Follow-up", Duration: 3},
			{ID: 2, Title: "Asking for the budget without being awkward", Category: "Qualification", Duration: 4},
			{ID: 3, Title: "Creating urgency during negotiation", Category: "Negotiation", Duration: 5},
		},
		Integrations:  seedIntegrations(),
		AIInsights:    seedInsights(),
		ActiveFlowIDs: []string{"wa-1", "cal-1"},
		MonthlyGoal:   DefaultMonthlyGoal,
	}
}

func seedIntegrations() []Integration {
	return []Integration{
		{ID: "meta", Name: "Meta Lead Ads", Logo: "https://i.imgur.com/83r23o5.png", BgColor: "#1877F2", Category: CategoryLeadCapture,
			Description: "Instantly create new leads in Revenue OS from your Facebook & Instagram lead ads.", Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "meta-1", Description: "When a new lead is submitted, create a new lead in the Inbox."},
				{ID: "meta-2", Description: `If lead source is "High-Intent Form", mark lead as Hot.`, Premium: true},
				{ID: "meta-3", Description: "If lead is submitted after hours, create a follow-up task for the next business day."},
			}},
		{ID: "typeform", Name: "Typeform", Logo: "https://i.imgur.com/eJ4J3aW.png", Category: CategoryLeadCapture,
			Description: "Turn beautiful forms, surveys, and quizzes into high-quality leads.", Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "typeform-1", Description: "When a new form is submitted, create a new lead in the Inbox."},
			}},
		{ID: "whatsapp", Name: "WhatsApp Business", Logo: "https://i.imgur.com/qLwR39t.png", BgColor: "#25D366", Category: CategoryConversations,
			Description: "Turn WhatsApp messages into deals and manage conversations without leaving the app.", Status: IntegrationConnected,
			Flows: []Flow{
				{ID: "wa-1", Description: "When a new message is received from an unknown number, create a new lead."},
				{ID: "wa-2", Description: "If a lead doesn't reply in 24 hours, create a mandatory follow-up task."},
				{ID: "wa-3", Description: `When a lead mentions "proposal", flag the deal as ready for a proposal.`, Premium: true},
			}},
		{ID: "instagram", Name: "Instagram DM", Logo: "https://i.imgur.com/Vb6iSwn.png", Category: CategoryConversations,
			Description: "Capture leads directly from your Instagram Direct Messages and never miss an opportunity.", Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "ig-1", Description: "When a new message is received, create a new lead in the Inbox."},
				{ID: "ig-2", Description: `If a message is not replied to in 30 minutes, mark the lead as "High Priority".`, Premium: true},
			}},
		{ID: "hubspot", Name: "HubSpot", Logo: "https://i.imgur.com/JGx5a7c.png", BgColor: "#FF7A59", Category: CategoryMarketing,
			Description: "Sync leads and deals with HubSpot to keep your marketing and sales teams aligned.", Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "hs-1", Description: "When a lead is disqualified in Revenue OS, add them to a nurture sequence in HubSpot."},
			}},
		{ID: "calendly", Name: "Calendly", Logo: "https://i.imgur.com/Q23CNYw.png", BgColor: "#006BFF", Category: CategoryMeetings,
			Description: "Automate deal creation and pipeline progression from your scheduled meetings.", Status: IntegrationConnected,
			Flows: []Flow{
				{ID: "cal-1", Description: `When a new meeting is booked, create a new deal in the "Contacted" stage.`},
				{ID: "cal-2", Description: `If a meeting is a no-show, create a "Recovery" follow-up task.`},
				{ID: "cal-3", Description: `When a meeting is completed, automatically move the deal to the "Proposal Sent" stage.`, Premium: true},
			}},
		{ID: "stripe", Name: "Stripe", Logo: "https://i.imgur.com/E8w4662.png", BgColor: "#635BFF", Category: CategoryPayments,
			Description: `Automatically mark deals as "Won" when payments are successfully processed.`, Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "stripe-1", Description: `When a payment is confirmed for a linked invoice, move the deal to "Won".`},
				{ID: "stripe-2", Description: "If a payment link is created, update the deal value."},
			}},
		{ID: "slack", Name: "Slack", Logo: "https://i.imgur.com/yS2u5j8.png", BgColor: "#4A154B", Category: CategoryProductivity,
			Description: "Get real-time notifications about important deal events directly in your Slack channels.", Status: IntegrationAvailable,
			Flows: []Flow{
				{ID: "slack-1", Description: `When a deal is marked as "Won", post a celebration message to the #sales channel.`},
				{ID: "slack-2", Description: `If a deal is flagged as "At Risk", send a notification to the deal owner.`, Premium: true},
			}},
		{ID: "zapier", Name: "Zapier", Logo: "https://i.imgur.com/7dJ0x4W.png", BgColor: "#FF4A00", Category: CategoryAdvanced,
			Description: "Connect Revenue OS to thousands of other apps with custom, no-code workflows.", Status: IntegrationComingSoon,
			Flows: []Flow{}},
	}
}

func seedInsights() []AIInsight {
	return []AIInsight{
		{ID: "ai-1", Title: "Instagram leads turn cold after 30 mins. Activate a high-priority follow-up flow.", RelatedFlowID: "ig-2"},
		{ID: "ai-2", Title: "Deals with a booked meeting convert 2.1x more. Connect your calendar.", RelatedFlowID: "cal-1"},
		{ID: "ai-3", Title: "Automate invoicing for your won deals to save time.", RelatedFlowID: "stripe-1"},
	}
}

// RiskScenario is the dashboard's "month at risk" dataset.
func RiskScenario(now time.Time) ScenarioData {
	d := dayOffsets{now: now}
	today, yesterday := d.at(0), d.at(-1)
	fourDaysAgo, eightDaysAgo := d.at(-4), d.at(-8)
	tenDaysAgo, fifteenDaysAgo := d.at(-10), d.at(-15)

	return ScenarioData{
		Leads: []Lead{
			{ID: 1, Name: "Tech Solutions Ltda", Origin: OriginWebsite, OwnerID: 1, Status: LeadInProgress, CreatedAt: yesterday, UpdatedAt: yesterday,
				DealID: IDPtr(101), Score: 60, Priority: PriorityWarm, NextActionText: "Send proposal doc", DueDate: d.ptr(-1),
				Notes: "Client is hesitant about pricing.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-1), Messages: []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetMedium, Urgency: UrgencyThisMonth, Fit: FitPartial, Intent: IntentPricing}},
			{ID: 2, Name: "Inova Digital Agency", Origin: OriginWhatsApp, OwnerID: 1, Status: LeadNew, CreatedAt: fourDaysAgo, UpdatedAt: fourDaysAgo,
				NextActionText: "Initial contact", DueDate: d.ptr(-2), ActivityLog: []Activity{}, Unread: true, Messages: []ChatMessage{}},
			{ID: 3, Name: "Global Logistics", Origin: OriginReferral, OwnerID: 2, Status: LeadQualified, CreatedAt: fifteenDaysAgo, UpdatedAt: tenDaysAgo,
				DealID: IDPtr(103), Score: 75, Priority: PriorityHot, NextActionText: "Follow-up on contract", DueDate: d.ptr(-8),
				Notes: "Stalled, waiting for legal review.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-15), Messages: []ChatMessage{}},
			{ID: 4, Name: "Fast Burger Chain", Origin: OriginInstagram, OwnerID: 3, Status: LeadNew, CreatedAt: eightDaysAgo, UpdatedAt: eightDaysAgo,
				NextActionText: "Initial contact message", DueDate: d.ptr(-4), ActivityLog: []Activity{}, Unread: true, Messages: []ChatMessage{}},
			{ID: 5, Name: "Future Gadgets Inc.", Origin: OriginWebsite, OwnerID: 2, Status: LeadDisqualified, CreatedAt: yesterday, UpdatedAt: today,
				Score: 20, NextActionText: "N/A", ActionCompleted: true, Notes: "Not a good fit.", ActivityLog: []Activity{},
				Contacted: true, FirstContactAt: d.ptr(-1), Messages: []ChatMessage{}},
			{ID: 6, Name: "Downtown Cleaners", Origin: OriginReferral, OwnerID: 1, Status: LeadNew, CreatedAt: today, UpdatedAt: today,
				NextActionText: "Schedule discovery call", DueDate: d.ptr(1), ActivityLog: []Activity{}, Unread: true, Messages: []ChatMessage{}},
		},
		Deals: []Deal{
			{ID: 101, LeadID: 1, Stage: StageContacted, Value: 15000, LastActionAt: tenDaysAgo, StageEnteredAt: tenDaysAgo},
			{ID: 103, LeadID: 3, Stage: StageProposalSent, Value: 25000, LastActionAt: eightDaysAgo, StageEnteredAt: fifteenDaysAgo, SpecialStatus: SpecialOnHold, OnHoldReason: HoldClient},
			{ID: 104, LeadID: 4, Stage: StageNewLead, Value: 5000, LastActionAt: eightDaysAgo, StageEnteredAt: eightDaysAgo},
		},
	}
}

// RecoveryScenario is the dashboard's "recovery in progress" dataset.
func RecoveryScenario(now time.Time) ScenarioData {
	d := dayOffsets{now: now}
	today, yesterday := d.at(0), d.at(-1)
	twoDaysAgo, fourDaysAgo, eightDaysAgo := d.at(-2), d.at(-4), d.at(-8)

	return ScenarioData{
		Leads: []Lead{
			{ID: 1, Name: "Tech Solutions Ltda", Origin: OriginWebsite, OwnerID: 1, Status: LeadQualified, CreatedAt: yesterday, UpdatedAt: yesterday,
				DealID: IDPtr(101), Score: 85, Priority: PriorityHot, NextActionText: "Send proposal doc", DueDate: d.ptr(1),
				Notes: "Client is very interested.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-1), Messages: []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetHigh, Urgency: UrgencyThisMonth, Fit: FitPerfect, Intent: IntentProposal}},
			{ID: 2, Name: "Inova Digital Agency", Origin: OriginWhatsApp, OwnerID: 1, Status: LeadInProgress, CreatedAt: fourDaysAgo, UpdatedAt: fourDaysAgo,
				DealID: IDPtr(102), Score: 60, Priority: PriorityWarm, NextActionText: "Follow-up on proposal", DueDate: d.ptr(0),
				Notes: "Followed up, waiting for response.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-4), Messages: []ChatMessage{}},
			{ID: 3, Name: "Global Logistics", Origin: OriginReferral, OwnerID: 2, Status: LeadInProgress, CreatedAt: eightDaysAgo, UpdatedAt: yesterday,
				DealID: IDPtr(103), Score: 70, Priority: PriorityWarm, NextActionText: "Send updated contract", DueDate: d.ptr(3),
				Notes: "Re-engaged after stall.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-8), Messages: []ChatMessage{}},
			{ID: 4, Name: "Fast Burger Chain", Origin: OriginInstagram, OwnerID: 3, Status: LeadInProgress, CreatedAt: twoDaysAgo, UpdatedAt: twoDaysAgo,
				Score: 40, NextActionText: "Schedule demo", DueDate: d.ptr(1), Notes: "Initial contact made.", ActivityLog: []Activity{},
				Contacted: true, Messages: []ChatMessage{}},
			{ID: 5, Name: "Future Gadgets Inc.", Origin: OriginWebsite, OwnerID: 2, Status: LeadQualified, CreatedAt: yesterday, UpdatedAt: today,
				DealID: IDPtr(105), Score: 90, Priority: PriorityHot, NextActionText: "Final pricing call", DueDate: d.ptr(1),
				Notes: "Ready to move forward.", ActivityLog: []Activity{}, Contacted: true, FirstContactAt: d.ptr(-1), Messages: []ChatMessage{},
				Qualification: &Qualification{Budget: BudgetHigh, Urgency: UrgencyThisWeek, Fit: FitPerfect, Intent: IntentProposal}},
			{ID: 6, Name: "Downtown Cleaners", Origin: OriginReferral, OwnerID: 1, Status: LeadNew, CreatedAt: today, UpdatedAt: today,
				NextActionText: "Schedule discovery call", DueDate: d.ptr(1), ActivityLog: []Activity{}, Unread: true, Messages: []ChatMessage{}},
		},
		Deals: []Deal{
			{ID: 101, LeadID: 1, Stage: StageProposalSent, Value: 15000, LastActionAt: yesterday, StageEnteredAt: twoDaysAgo},
			{ID: 102, LeadID: 2, Stage: StageNegotiation, Value: 8000, LastActionAt: twoDaysAgo, StageEnteredAt: fourDaysAgo},
			{ID: 103, LeadID: 3, Stage: StageNegotiation, Value: 25000, LastActionAt: yesterday, StageEnteredAt: eightDaysAgo},
			{ID: 105, LeadID: 5, Stage: StageContacted, Value: 32000, LastActionAt: today, StageEnteredAt: today},
		},
	}
}
