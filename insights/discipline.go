// ABOUTME: Sales discipline scoring, tiers, badges and streaks for team members
// ABOUTME: Tier thresholds are a descending ladder where the first match wins
package insights

import "github.com/harperreed/revenueos/models"

type Tier string

const (
	TierElite  Tier = "Elite"
	TierGold   Tier = "Gold"
	TierSilver Tier = "Silver"
	TierBronze Tier = "Bronze"
)

type Badge string

const (
	BadgeFollowUpMaster   Badge = "Follow-up Master"
	BadgeFastResponder    Badge = "Fast Responder"
	BadgeNegotiationNinja Badge = "Negotiation Ninja"
	BadgeConsistency      Badge = "Consistency Champion"
)

// negotiationNinjaID is the rep recognised for negotiation in the demo roster.
const negotiationNinjaID = 3

type Streaks struct {
	FollowUp int `json:"followUp"`
	Response int `json:"response"`
}

// DisciplineScore blends response time (minutes) and follow-up rate (percent).
func DisciplineScore(avgResponseMinutes, followUpRate float64) int {
	return int(Round(((100 - avgResponseMinutes/2) + followUpRate) / 2))
}

type tierRule struct {
	tier       Tier
	revenue    float64
	discipline int
	either     bool
}

var tierLadder = []tierRule{
	{tier: TierElite, revenue: 150000, discipline: 90},
	{tier: TierGold, revenue: 100000, discipline: 85},
	{tier: TierSilver, revenue: 75000, discipline: 75, either: true},
}

// TierFor walks the ladder top-down.
func TierFor(discipline int, revenue float64) Tier {
	for _, r := range tierLadder {
		revOK := revenue > r.revenue
		discOK := discipline > r.discipline
		if (r.either && (revOK || discOK)) || (!r.either && revOK && discOK) {
			return r.tier
		}
	}
	return TierBronze
}

func Badges(m models.TeamMember) []Badge {
	badges := []Badge{}
	if m.FollowUpRate > 98 {
		badges = append(badges, BadgeFollowUpMaster)
	}
	if m.AvgResponseTime < 15 {
		badges = append(badges, BadgeFastResponder)
	}
	if m.ID == negotiationNinjaID {
		badges = append(badges, BadgeNegotiationNinja)
	}
	if m.Trend == models.TrendStable {
		badges = append(badges, BadgeConsistency)
	}
	return badges
}

func StreaksFor(m models.TeamMember) Streaks {
	s := Streaks{FollowUp: 3}
	if m.FollowUpRate > 95 {
		s.FollowUp = 12
	}
	if m.AvgResponseTime < 20 {
		s.Response = 8
	}
	return s
}
