// ABOUTME: Data models for Revenue OS entities
// ABOUTME: Defines leads, deals, proposals, contracts, team and integration types
package models

import (
	"fmt"
	"time"
)

// Origin is the acquisition channel of a lead.
type Origin string

const (
	OriginWhatsApp  Origin = "WhatsApp"
	OriginInstagram Origin = "Instagram"
	OriginWebsite   Origin = "Website"
	OriginReferral  Origin = "Referral"
	OriginOther     Origin = "Other"
)

// Origins lists every acquisition channel in display order.
var Origins = []Origin{OriginWhatsApp, OriginInstagram, OriginWebsite, OriginReferral, OriginOther}

// ParseOrigin validates a channel name.
func ParseOrigin(s string) (Origin, error) {
	for _, o := range Origins {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid origin: %s", s)
}

// Stage is one ordered step of the deal pipeline.
type Stage string

const (
	StageNewLead      Stage = "New Lead"
	StageContacted    Stage = "Contacted"
	StageProposalSent Stage = "Proposal Sent"
	StageNegotiation  Stage = "Negotiation"
	StageWon          Stage = "Won"
	StageLost         Stage = "Lost"
)

// Stages is the pipeline in order. Won and Lost are terminal.
var Stages = []Stage{StageNewLead, StageContacted, StageProposalSent, StageNegotiation, StageWon, StageLost}

// IsTerminal reports whether the stage closes the deal.
func (s Stage) IsTerminal() bool {
	return s == StageWon || s == StageLost
}

// Index returns the position of the stage in the pipeline, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStage validates a stage name.
func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	if st.Index() < 0 {
		return "", fmt.Errorf("invalid stage: %s (valid: New Lead, Contacted, Proposal Sent, Negotiation, Won, Lost)", s)
	}
	return st, nil
}

type LeadStatus string

const (
	LeadNew          LeadStatus = "New"
	LeadInProgress   LeadStatus = "In Progress"
	LeadQualified    LeadStatus = "Qualified"
	LeadDisqualified LeadStatus = "Disqualified"
)

// ParseLeadStatus validates a lead lifecycle status.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case LeadNew, LeadInProgress, LeadQualified, LeadDisqualified:
		return LeadStatus(s), nil
	}
	return "", fmt.Errorf("invalid lead status: %s", s)
}

type Priority string

const (
	PriorityHot  Priority = "Hot"
	PriorityWarm Priority = "Warm"
	PriorityCold Priority = "Cold"
)

type ProposalStatus string

const (
	ProposalDraft       ProposalStatus = "Draft"
	ProposalSent        ProposalStatus = "Sent"
	ProposalViewed      ProposalStatus = "Viewed"
	ProposalNegotiation ProposalStatus = "Negotiation"
	ProposalAccepted    ProposalStatus = "Accepted"
	ProposalExpired     ProposalStatus = "Expired"
	ProposalReplaced    ProposalStatus = "Replaced"
)

// ProposalStatuses lists proposal statuses in lifecycle order.
var ProposalStatuses = []ProposalStatus{
	ProposalDraft, ProposalSent, ProposalViewed, ProposalNegotiation,
	ProposalAccepted, ProposalExpired, ProposalReplaced,
}

// ParseProposalStatus validates a proposal status.
func ParseProposalStatus(s string) (ProposalStatus, error) {
	for _, st := range ProposalStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid proposal status: %s", s)
}

// Signal is a heuristic engagement tag derived from proposal data.
type Signal string

const (
	SignalHighIntent         Signal = "high_intent"
	SignalRiskNotOpened      Signal = "risk_not_opened"
	SignalStalledNegotiation Signal = "stalled_negotiation"
)

type FollowUpStatus string

const (
	FollowUpNeeded    FollowUpStatus = "needed"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpNone      FollowUpStatus = "none"
)

type TimelineEventType string

const (
	EventCreated           TimelineEventType = "Created"
	EventSent              TimelineEventType = "Sent"
	EventViewed            TimelineEventType = "Viewed"
	EventRevisionRequested TimelineEventType = "Revision Requested"
	EventAccepted          TimelineEventType = "Accepted"
	EventExpired           TimelineEventType = "Expired"
	EventReplaced          TimelineEventType = "Replaced"
)

type ContractStatus string

const (
	ContractDraft     ContractStatus = "Draft"
	ContractGenerated ContractStatus = "Generated"
	ContractSent      ContractStatus = "Sent"
	ContractViewed    ContractStatus = "Viewed"
	ContractSigned    ContractStatus = "Signed"
	ContractActive    ContractStatus = "Active"
	ContractAtRisk    ContractStatus = "At Risk"
	ContractCompleted ContractStatus = "Completed"
	ContractCancelled ContractStatus = "Cancelled"
)

// ContractStatuses lists the lifecycle followed by the side states.
var ContractStatuses = []ContractStatus{
	ContractDraft, ContractGenerated, ContractSent, ContractViewed, ContractSigned,
	ContractActive, ContractCompleted, ContractAtRisk, ContractCancelled,
}

// ParseContractStatus validates a contract status.
func ParseContractStatus(s string) (ContractStatus, error) {
	for _, st := range ContractStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid contract status: %s", s)
}

type ContractType string

const (
	ContractOneTime   ContractType = "one-time"
	ContractRecurring ContractType = "recurring"
	ContractMilestone ContractType = "milestone"
)

// ParseContractType validates a contract billing type.
func ParseContractType(s string) (ContractType, error) {
	switch ContractType(s) {
	case ContractOneTime, ContractRecurring, ContractMilestone:
		return ContractType(s), nil
	}
	return "", fmt.Errorf("invalid contract type: %s (valid: one-time, recurring, milestone)", s)
}

type SpecialStatus string

const (
	SpecialPaused          SpecialStatus = "Paused"
	SpecialOnHold          SpecialStatus = "On Hold"
	SpecialReactivateLater SpecialStatus = "Reactivate Later"
)

type HoldReason string

const (
	HoldClient   HoldReason = "Client"
	HoldBudget   HoldReason = "Budget"
	HoldApproval HoldReason = "Approval"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Activity is one entry of a lead's activity log.
type Activity struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

type ChatMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Budget string

const (
	BudgetNone   Budget = "No budget"
	BudgetLow    Budget = "Low"
	BudgetMedium Budget = "Medium"
	BudgetHigh   Budget = "High"
)

type Urgency string

const (
	UrgencyToday       Urgency = "Today"
	UrgencyThisWeek    Urgency = "This week"
	UrgencyThisMonth   Urgency = "This month"
	UrgencyResearching Urgency = "Just researching"
)

type Fit string

const (
	FitPerfect Fit = "Perfect fit"
	FitPartial Fit = "Partial fit"
	FitNone    Fit = "Not a fit"
)

type Intent string

const (
	IntentPricing  Intent = "Pricing request"
	IntentBooking  Intent = "Book appointment"
	IntentProposal Intent = "Asked for proposal"
	IntentGeneral  Intent = "General inquiry"
)

// Qualification is the snapshot captured when a lead is qualified.
type Qualification struct {
	Budget  Budget  `json:"budget"`
	Urgency Urgency `json:"urgency"`
	Fit     Fit     `json:"fit"`
	Intent  Intent  `json:"intent"`
	Notes   string  `json:"notes,omitempty"`
}

type SLA struct {
	FirstResponseDue time.Time `json:"firstResponseDue"`
}

// Lead carries a single outstanding next action and a capped activity log.
type Lead struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Origin    Origin     `json:"origin"`
	OwnerID   int64      `json:"ownerId"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	NextActionText  string     `json:"nextActionText"`
	DueDate         *time.Time `json:"dueDate"`
	ActionCompleted bool       `json:"actionCompleted"`

	Score       int        `json:"score"`
	Notes       string     `json:"notes"`
	ActivityLog []Activity `json:"activityLog"`

	Contacted      bool           `json:"contacted"`
	FirstContactAt *time.Time     `json:"firstContactAt,omitempty"`
	DealID         *int64         `json:"dealId,omitempty"`
	Unread         bool           `json:"unread"`
	Messages       []ChatMessage  `json:"messages"`
	Qualification  *Qualification `json:"qualification,omitempty"`
	Priority       Priority       `json:"priority,omitempty"`
	SLA            *SLA           `json:"sla,omitempty"`
}

type Deal struct {
	ID             int64         `json:"id"`
	LeadID         int64         `json:"leadId"`
	Stage          Stage         `json:"stage"`
	Value          float64       `json:"value"`
	LastActionAt   time.Time     `json:"lastActionAt"`
	StageEnteredAt time.Time     `json:"stageEnteredAt"`
	SpecialStatus  SpecialStatus `json:"specialStatus,omitempty"`
	OnHoldReason   HoldReason    `json:"onHoldReason,omitempty"`
	ReactivateAt   *time.Time    `json:"reactivateAt,omitempty"`
}

type TimelineEvent struct {
	Type      TimelineEventType `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Details   string            `json:"details,omitempty"`
}

type Proposal struct {
	ID             int64           `json:"id"`
	DealID         int64           `json:"dealId"`
	LeadName       string          `json:"leadName"`
	Value          float64         `json:"value"`
	Status         ProposalStatus  `json:"status"`
	Version        int             `json:"version"`
	IsLatest       bool            `json:"isLatest"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	SentAt         *time.Time      `json:"sentAt,omitempty"`
	ValidUntil     time.Time       `json:"validUntil"`
	ViewCount      int             `json:"viewCount"`
	LastViewedAt   *time.Time      `json:"lastViewedAt,omitempty"`
	Timeline       []TimelineEvent `json:"timeline"`
	ScopeSummary   string          `json:"scopeSummary"`
	Signals        []Signal        `json:"aiSignals"`
	FollowUpStatus FollowUpStatus  `json:"followUpStatus"`
	ReplacedBy     *int64          `json:"replacedBy,omitempty"`
}

// HasSignal reports whether the proposal currently carries the tag.
func (p Proposal) HasSignal(s Signal) bool {
	for _, sig := range p.Signals {
		if sig == s {
			return true
		}
	}
	return false
}

type ContractEvent struct {
	Status    ContractStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Details   string         `json:"details,omitempty"`
}

type Contract struct {
	ID           int64           `json:"id"`
	ProposalID   int64           `json:"proposalId"`
	DealID       int64           `json:"dealId"`
	LeadName     string          `json:"leadName"`
	Value        float64         `json:"value"`
	ContractType ContractType    `json:"contractType"`
	Status       ContractStatus  `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	SentAt       *time.Time      `json:"sentAt,omitempty"`
	ViewedAt     *time.Time      `json:"viewedAt,omitempty"`
	SignedAt     *time.Time      `json:"signedAt,omitempty"`
	ActivatedAt  *time.Time      `json:"activatedAt,omitempty"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	CancelledAt  *time.Time      `json:"cancelledAt,omitempty"`
	Timeline     []ContractEvent `json:"timeline"`
	LegalName    string          `json:"legalName"`
}

type TeamMember struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Avatar          string   `json:"avatar"`
	AvgResponseTime float64  `json:"avgResponseTime"` // minutes
	FollowUpRate    float64  `json:"followUpRate"`    // percent
	DealsWon        int      `json:"dealsWon"`
	Revenue         float64  `json:"revenue"`
	Trend           Trend    `json:"trend"`
	NeedsCoaching   []string `json:"needsCoaching"`
}

type MicroLesson struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Duration int    `json:"duration"` // minutes
}

type IntegrationCategory string

const (
	CategoryLeadCapture   IntegrationCategory = "lead_capture"
	CategoryConversations IntegrationCategory = "conversations"
	CategoryMarketing     IntegrationCategory = "marketing"
	CategoryMeetings      IntegrationCategory = "meetings"
	CategoryPayments      IntegrationCategory = "payments"
	CategoryProductivity  IntegrationCategory = "productivity"
	CategoryAdvanced      IntegrationCategory = "advanced"
)

// IntegrationCategories is the fixed display order of the catalog.
var IntegrationCategories = []IntegrationCategory{
	CategoryLeadCapture, CategoryConversations, CategoryMarketing, CategoryMeetings,
	CategoryPayments, CategoryProductivity, CategoryAdvanced,
}

type IntegrationStatus string

const (
	IntegrationConnected  IntegrationStatus = "connected"
	IntegrationAvailable  IntegrationStatus = "available"
	IntegrationComingSoon IntegrationStatus = "coming_soon"
)

type Flow struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Premium     bool   `json:"premium,omitempty"`
}

type Integration struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Logo        string              `json:"logo"`
	BgColor     string              `json:"bgColor,omitempty"`
	Category    IntegrationCategory `json:"category"`
	Description string              `json:"description"`
	Status      IntegrationStatus   `json:"status"`
	Flows       []Flow              `json:"flows"`
}

type AIInsight struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	RelatedFlowID string `json:"relatedFlowId,omitempty"`
}

// AppState is the canonical snapshot owned by the store.
type AppState struct {
	Users           []User        `json:"users"`
	Leads           []Lead        `json:"leads"`
	Deals           []Deal        `json:"deals"`
	Proposals       []Proposal    `json:"proposals"`
	Contracts       []Contract    `json:"contracts"`
	TeamPerformance []TeamMember  `json:"teamPerformance"`
	MicroLessons    []MicroLesson `json:"microLessons"`
	Integrations    []Integration `json:"integrations"`
	AIInsights      []AIInsight   `json:"aiInsights"`
	ActiveFlowIDs   []string      `json:"activeFlowIds"`
	MonthlyGoal     float64       `json:"monthlyGoal"`
}

// ScenarioData is a lead/deal pair used by the dashboard what-if views.
type ScenarioData struct {
	Leads []Lead `json:"leads"`
	Deals []Deal `json:"deals"`
}

// Widget is one tile of the customizable dashboard layout.
type Widget struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ColSpan int    `json:"colSpan"`
}
