// ABOUTME: Deep-copy helpers for snapshot values
// ABOUTME: Keeps store snapshots immutable by never sharing slices or pointers
package models

import (
	"slices"
	"time"
)

// Clone returns a deep copy of the snapshot.
func (s AppState) Clone() AppState {
	out := s
	out.Users = slices.Clone(s.Users)
	out.Leads = cloneEach(s.Leads, Lead.Clone)
	out.Deals = cloneEach(s.Deals, Deal.Clone)
	out.Proposals = cloneEach(s.Proposals, Proposal.Clone)
	out.Contracts = cloneEach(s.Contracts, Contract.Clone)
	out.TeamPerformance = cloneEach(s.TeamPerformance, func(m TeamMember) TeamMember {
		m.NeedsCoaching = slices.Clone(m.NeedsCoaching)
		return m
	})
	out.MicroLessons = slices.Clone(s.MicroLessons)
	out.Integrations = cloneEach(s.Integrations, func(in Integration) Integration {
		in.Flows = slices.Clone(in.Flows)
		return in
	})
	out.AIInsights = slices.Clone(s.AIInsights)
	out.ActiveFlowIDs = slices.Clone(s.ActiveFlowIDs)
	return out
}

func (l Lead) Clone() Lead {
	out := l
	out.DueDate = cloneTime(l.DueDate)
	out.FirstContactAt = cloneTime(l.FirstContactAt)
	out.DealID = cloneID(l.DealID)
	out.ActivityLog = slices.Clone(l.ActivityLog)
	out.Messages = slices.Clone(l.Messages)
	if l.Qualification != nil {
		q := *l.Qualification
		out.Qualification = &q
	}
	if l.SLA != nil {
		sla := *l.SLA
		out.SLA = &sla
	}
	return out
}

func (d Deal) Clone() Deal {
	out := d
	out.ReactivateAt = cloneTime(d.ReactivateAt)
	return out
}

func (p Proposal) Clone() Proposal {
	out := p
	out.SentAt = cloneTime(p.SentAt)
	out.LastViewedAt = cloneTime(p.LastViewedAt)
	out.ReplacedBy = cloneID(p.ReplacedBy)
	out.Timeline = slices.Clone(p.Timeline)
	out.Signals = slices.Clone(p.Signals)
	return out
}

func (c Contract) Clone() Contract {
	out := c
	out.SentAt = cloneTime(c.SentAt)
	out.ViewedAt = cloneTime(c.ViewedAt)
	out.SignedAt = cloneTime(c.SignedAt)
	out.ActivatedAt = cloneTime(c.ActivatedAt)
	out.CompletedAt = cloneTime(c.CompletedAt)
	out.CancelledAt = cloneTime(c.CancelledAt)
	out.Timeline = slices.Clone(c.Timeline)
	return out
}

// cloneEach preserves nil-ness so clones compare equal to their source.
func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// IDPtr returns a pointer to id.
func IDPtr(id int64) *int64 {
	return &id
}
