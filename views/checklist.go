// ABOUTME: Activation checklist shown on the Today screen
// ABOUTME: Values are immutable; Complete returns an updated copy

package views

import "github.com/harperreed/revenueos/insights"

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Checklist struct {
	Items     []ChecklistItem `json:"items"`
	Dismissed bool            `json:"dismissed"`
}

// DefaultChecklist starts with the first response already done.
func DefaultChecklist() Checklist {
	return Checklist{Items: []ChecklistItem{
		{ID: "respond", Text: "Respond to your first lead", Completed: true},
		{ID: "qualify", Text: "Qualify a lead", Completed: false},
		{ID: "move", Text: "Move a deal in the pipeline", Completed: false},
		{ID: "send", Text: "Send your first proposal", Completed: false},
	}}
}

func (c Checklist) CompletedCount() int {
	n := 0
	for _, it := range c.Items {
		if it.Completed {
			n++
		}
	}
	return n
}

// Progress is the completed share in percent, 0 for an empty list.
func (c Checklist) Progress() float64 {
	if len(c.Items) == 0 {
		return 0
	}
	return float64(c.CompletedCount()) / float64(len(c.Items)) * 100
}

// Done reports whether every task is complete.
func (c Checklist) Done() bool {
	return len(c.Items) > 0 && c.CompletedCount() == len(c.Items)
}

// Complete marks a task done. Unknown ids leave the list unchanged.
func (c Checklist) Complete(id string) Checklist {
	items := make([]ChecklistItem, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].ID == id {
			items[i].Completed = true
		}
	}
	return Checklist{Items: items, Dismissed: c.Dismissed}
}

// Dismiss hides the checklist for the session.
func (c Checklist) Dismiss() Checklist {
	items := make([]ChecklistItem, len(c.Items))
	copy(items, c.Items)
	return Checklist{Items: items, Dismissed: true}
}

// ProgressLabel renders the rounded percentage.
func (c Checklist) ProgressLabel() int {
	return int(insights.Round(c.Progress()))
}
