// ABOUTME: Contract risk assessment and revenue recognition state
// ABOUTME: Rules are ordered; cancellation and slow signing override the signal text
package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/harperreed/revenueos/models"
)

type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type RevenueState string

const (
	RevenueExpected   RevenueState = "Expected"
	RevenueCommitted  RevenueState = "Committed"
	RevenueRecognized RevenueState = "Recognized"
)

// AverageSigningDays is the benchmark quoted when a signing cycle runs long.
const AverageSigningDays = 3

type ContractAssessment struct {
	RiskLevel    RiskLevel    `json:"riskLevel"`
	RevenueState RevenueState `json:"revenueState"`
	AISignal     string       `json:"aiSignal"`
	TimeToSign   *float64     `json:"timeToSign,omitempty"` // days
}

// ContractRisk evaluates a contract at now. A missing timestamp counts as
// infinitely old.
func ContractRisk(c models.Contract, now time.Time) ContractAssessment {
	daysSince := func(t *time.Time) float64 {
		if t == nil {
			return math.Inf(1)
		}
		return daysBetween(*t, now)
	}

	a := ContractAssessment{RiskLevel: RiskLow, AISignal: "Revenue locked and safe."}

	switch {
	case c.Status == models.ContractSent && c.ViewedAt == nil && daysSince(c.SentAt) > 7:
		a.RiskLevel = RiskHigh
		if c.SentAt == nil {
			a.AISignal = "High risk: sent date unknown, not viewed."
		} else {
			a.AISignal = fmt.Sprintf("High risk: sent %d days ago, not viewed.", int(Round(daysSince(c.SentAt))))
		}
	case c.Status == models.ContractSent && c.ViewedAt == nil && daysSince(c.SentAt) > 3:
		a.RiskLevel = RiskMedium
		a.AISignal = "Risk: awaiting client view."
	case c.Status == models.ContractViewed && c.SignedAt == nil && daysSince(c.ViewedAt) > 5:
		a.RiskLevel = RiskMedium
		a.AISignal = "Client viewed but has not signed. Follow-up recommended."
	case c.Status == models.ContractAtRisk:
		a.RiskLevel = RiskHigh
		a.AISignal = "Manually flagged as At Risk."
	case IsCommitted(c.Status):
		a.RiskLevel = RiskNone
	}

	if c.Status == models.ContractCancelled {
		a.RiskLevel = RiskNone
		a.AISignal = "Contract cancelled."
	}

	switch c.Status {
	case models.ContractActive, models.ContractCompleted:
		a.RevenueState = RevenueRecognized
	case models.ContractSigned:
		a.RevenueState = RevenueCommitted
	default:
		a.RevenueState = RevenueExpected
	}

	if c.SentAt != nil && c.SignedAt != nil {
		days := daysBetween(*c.SentAt, *c.SignedAt)
		a.TimeToSign = &days
		if days > 7 {
			a.AISignal = fmt.Sprintf("Signing cycle (%dd) longer than average (%dd).", int(Round(days)), AverageSigningDays)
		}
	}
	return a
}

// IsCommitted reports whether the contract's revenue is signed or recognised.
func IsCommitted(s models.ContractStatus) bool {
	return s == models.ContractSigned || s == models.ContractActive || s == models.ContractCompleted
}
