// ABOUTME: Contracts screen: risk-assessed contracts, status filter and revenue summary
// ABOUTME: Also lists accepted proposals available for contract generation

package views

import (
	"sort"
	"time"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

// ValidContractFilter accepts "all" or a contract status.
func ValidContractFilter(f string) bool {
	if f == StatusFilterAll {
		return true
	}
	_, err := models.ParseContractStatus(f)
	return err == nil
}

type DisplayContract struct {
	models.Contract
	insights.ContractAssessment
}

type ContractsSummary struct {
	AwaitingSignatureCount int     `json:"awaitingSignatureCount"`
	AwaitingSignatureValue float64 `json:"awaitingSignatureValue"`
	CommittedRevenue       float64 `json:"committedRevenue"`
	RevenueAtRisk          float64 `json:"revenueAtRisk"`
	AvgTimeToSign          float64 `json:"avgTimeToSign"`
}

type Contracts struct {
	Filter            string            `json:"filter"`
	Contracts         []DisplayContract `json:"contracts"`
	Summary           ContractsSummary  `json:"summary"`
	AcceptedProposals []models.Proposal `json:"acceptedProposals"`
}

// DisplayContracts assesses every contract, newest first.
func DisplayContracts(st models.AppState, now time.Time) []DisplayContract {
	out := make([]DisplayContract, 0, len(st.Contracts))
	for _, c := range st.Contracts {
		out = append(out, DisplayContract{Contract: c, ContractAssessment: insights.ContractRisk(c, now)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// BuildContracts projects the screen. The summary always covers every contract.
func BuildContracts(st models.AppState, filter string, now time.Time) Contracts {
	if !ValidContractFilter(filter) {
		filter = StatusFilterAll
	}
	all := DisplayContracts(st, now)
	out := Contracts{Filter: filter, Summary: summarizeContracts(all)}
	for _, c := range all {
		if filter == StatusFilterAll || string(c.Status) == filter {
			out.Contracts = append(out.Contracts, c)
		}
	}
	for _, p := range st.Proposals {
		if p.Status == models.ProposalAccepted {
			out.AcceptedProposals = append(out.AcceptedProposals, p)
		}
	}
	return out
}

func summarizeContracts(cs []DisplayContract) ContractsSummary {
	var s ContractsSummary
	var signed int
	var signDays float64
	for _, c := range cs {
		switch c.Status {
		case models.ContractSent, models.ContractViewed:
			s.AwaitingSignatureCount++
			s.AwaitingSignatureValue += c.Value
		}
		if insights.IsCommitted(c.Status) {
			s.CommittedRevenue += c.Value
		}
		if c.RiskLevel == insights.RiskHigh || c.RiskLevel == insights.RiskMedium {
			s.RevenueAtRisk += c.Value
		}
		if c.TimeToSign != nil {
			signed++
			signDays += *c.TimeToSign
		}
	}
	if signed > 0 {
		s.AvgTimeToSign = signDays / float64(signed)
	}
	return s
}
