// ABOUTME: Proposal engagement signals derived from view and timeline data
// ABOUTME: Signals are recomputed wholesale and never patched incrementally
package insights

import (
	"time"

	"github.com/harperreed/revenueos/models"
)

const (
	highIntentWindow    = 48 * time.Hour
	notOpenedAfter      = 3 * 24 * time.Hour
	stalledNegotiationN = 5 * 24 * time.Hour
)

// Signals derives the engagement tags of a proposal at now.
func Signals(p models.Proposal, now time.Time) []models.Signal {
	signals := []models.Signal{}

	if p.ViewCount > 1 && p.LastViewedAt != nil && now.Sub(*p.LastViewedAt) < highIntentWindow {
		signals = append(signals, models.SignalHighIntent)
	}

	if p.Status == models.ProposalSent && p.SentAt != nil && p.ViewCount == 0 && now.Sub(*p.SentAt) > notOpenedAfter {
		signals = append(signals, models.SignalRiskNotOpened)
	}

	if p.Status == models.ProposalNegotiation && len(p.Timeline) > 0 {
		last := p.Timeline[len(p.Timeline)-1]
		if now.Sub(last.Timestamp) > stalledNegotiationN {
			signals = append(signals, models.SignalStalledNegotiation)
		}
	}

	return signals
}

// Recalculate returns p with its signal set replaced.
func Recalculate(p models.Proposal, now time.Time) models.Proposal {
	p.Signals = Signals(p, now)
	return p
}
