// ABOUTME: Tests for the proposals and contracts projections
// ABOUTME: Filters, search, header counts, risk summary and activity labels

package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
)

func rowIDs(rows []ProposalRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestProposalsHeaderAndOrder(t *testing.T) {
	st := models.Seed(refNow)
	v := BuildProposals(st, ProposalFilters{Status: StatusFilterAll, Quick: QuickNone}, refNow)

	assert.Equal(t, ProposalsHeader{Total: 6, Viewed: 3, NeedsFollowUp: 3, Accepted: 1}, v.Header)
	assert.Equal(t, []int64{205, 201, 200, 203, 204, 202}, rowIDs(v.Rows))

	row := v.Rows[1]
	assert.Equal(t, "Proposal Sent", row.DealStage)
	assert.Equal(t, "Viewed 2h ago", row.LastActivity)
	assert.Equal(t, "Revision Requested 5d ago", v.Rows[5].LastActivity)
}

func TestProposalsFilters(t *testing.T) {
	st := models.Seed(refNow)
	tests := []struct {
		name string
		f    ProposalFilters
		want []int64
	}{
		{"status draft", ProposalFilters{Status: "Draft"}, []int64{205}},
		{"needs follow up", ProposalFilters{Quick: QuickNeedsFollowUp}, []int64{201, 203, 202}},
		{"viewed recently", ProposalFilters{Quick: QuickViewed}, []int64{201, 200}},
		{"expiring soon", ProposalFilters{Quick: QuickExpiring}, []int64{203}},
		{"search by name", ProposalFilters{Search: "TECH"}, []int64{201, 200}},
		{"search by value", ProposalFilters{Search: "32000"}, []int64{203}},
		{"search by stage", ProposalFilters{Search: "negotiation"}, []int64{203, 202}},
		{"status and quick", ProposalFilters{Status: "Viewed", Quick: QuickNeedsFollowUp}, []int64{201}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowIDs(BuildProposals(st, tt.f, refNow).Rows))
		})
	}
}

func TestProposalMissingDealAndEmptyTimeline(t *testing.T) {
	st := models.Seed(refNow)
	st.Proposals = append(st.Proposals, models.Proposal{ID: 900, DealID: 4040, LeadName: "Orphan", CreatedAt: refNow})

	v := BuildProposals(st, ProposalFilters{Search: "orphan"}, refNow)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "N/A", v.Rows[0].DealStage)
	assert.Equal(t, "No activity yet", v.Rows[0].LastActivity)

	assert.Empty(t, BuildProposals(st, ProposalFilters{Search: "n/a"}, refNow).Rows)
}

func TestLastActivityStopsAtDays(t *testing.T) {
	p := models.Proposal{Timeline: []models.TimelineEvent{{Type: models.EventSent, Timestamp: refNow.AddDate(0, 0, -10)}}}
	assert.Equal(t, "Sent 10d ago", LastActivity(p, refNow))

	p.Timeline[0].Timestamp = refNow.Add(-30 * time.Second)
	assert.Equal(t, "Sent just now", LastActivity(p, refNow))
}

func TestProposalFilterValidation(t *testing.T) {
	assert.True(t, ValidProposalStatusFilter("all"))
	assert.True(t, ValidProposalStatusFilter("Replaced"))
	assert.False(t, ValidProposalStatusFilter("replaced"))
	assert.True(t, ValidQuickFilter(QuickExpiring))
	assert.False(t, ValidQuickFilter(""))
	assert.Equal(t, "https://revenue-os.app/proposal/201", ProposalLink(201))
}

func contractIDs(cs []DisplayContract) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestContractsSeed(t *testing.T) {
	st := models.Seed(refNow)
	v := BuildContracts(st, StatusFilterAll, refNow)

	assert.Equal(t, []int64{302, 301, 303, 304}, contractIDs(v.Contracts))
	assert.Equal(t, 2, v.Summary.AwaitingSignatureCount)
	assert.Equal(t, 47000.0, v.Summary.AwaitingSignatureValue)
	assert.Equal(t, 34500.0, v.Summary.CommittedRevenue)
	assert.Equal(t, 32000.0, v.Summary.RevenueAtRisk)
	assert.InDelta(t, 1.5, v.Summary.AvgTimeToSign, 0.0001)

	byID := map[int64]DisplayContract{}
	for _, c := range v.Contracts {
		byID[c.ID] = c
	}
	assert.Equal(t, insights.RiskMedium, byID[303].RiskLevel)
	assert.Equal(t, "Risk: awaiting client view.", byID[303].AISignal)
	assert.Equal(t, insights.RiskLow, byID[302].RiskLevel)
	assert.Equal(t, insights.RevenueCommitted, byID[301].RevenueState)
	assert.Equal(t, insights.RevenueRecognized, byID[304].RevenueState)

	require.Len(t, v.AcceptedProposals, 1)
	assert.Equal(t, int64(204), v.AcceptedProposals[0].ID)
}

func TestContractsFilter(t *testing.T) {
	st := models.Seed(refNow)

	v := BuildContracts(st, "Sent", refNow)
	assert.Equal(t, []int64{302, 303}, contractIDs(v.Contracts))
	assert.Equal(t, 34500.0, v.Summary.CommittedRevenue, "summary ignores the filter")

	v = BuildContracts(st, "sent", refNow)
	assert.Equal(t, StatusFilterAll, v.Filter)
	assert.Len(t, v.Contracts, 4)
}
