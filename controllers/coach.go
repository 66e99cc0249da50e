// ABOUTME: Deal coach panel with canned suggestions after a short delay
// ABOUTME: Each request carries an id so superseded replies are dropped

package controllers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/revenueos/notify"
)

// CoachDelay is how long the coach "thinks" before replying.
const CoachDelay = 1500 * time.Millisecond

// CoachSuggestions are the canned replies of the deal coach.
var CoachSuggestions = []string{
	"Acknowledging their concern while reinforcing value is key. Try this: 'I understand the budget is a primary concern. Let's revisit the scope to see if we can align the value directly with your most critical needs.'",
	"To test their authority, you could ask: 'Besides yourself, who else on the team will be involved in the final decision-making process for this partnership?'",
	"Create urgency by highlighting a potential loss: 'We have availability to start onboarding next week. If we delay, the next slot is in 3 weeks, which might impact your Q3 goals.'",
}

type CoachState struct {
	RequestID string   `json:"requestId,omitempty"`
	DealID    int64    `json:"dealId"`
	Trigger   string   `json:"trigger"`
	Open      bool     `json:"open"`
	Thinking  bool     `json:"thinking"`
	Response  []string `json:"response"`
}

// Coach answers one question at a time. A newer question or closing the
// panel supersedes the pending reply, which is then dropped.
type Coach struct {
	mu       sync.Mutex
	state    CoachState
	delay    time.Duration
	toasts   *notify.Service
	onUpdate func(CoachState)
}

func NewCoach(toasts *notify.Service, delay time.Duration) *Coach {
	return &Coach{delay: delay, toasts: toasts}
}

// OnUpdate registers a callback fired when a reply lands.
func (c *Coach) OnUpdate(fn func(CoachState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Ask opens the coach for a deal and returns the request id.
func (c *Coach) Ask(dealID int64, trigger string) string {
	id := uuid.NewString()
	c.mu.Lock()
	c.state = CoachState{RequestID: id, DealID: dealID, Trigger: trigger, Open: true, Thinking: true, Response: []string{}}
	c.mu.Unlock()

	time.AfterFunc(c.delay, func() { c.deliver(id) })
	return id
}

func (c *Coach) deliver(id string) {
	c.mu.Lock()
	if c.state.RequestID != id {
		c.mu.Unlock()
		return
	}
	c.state.Thinking = false
	c.state.Response = append([]string(nil), CoachSuggestions...)
	st := c.snapshot()
	fn := c.onUpdate
	c.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

func (c *Coach) State() CoachState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Coach) snapshot() CoachState {
	st := c.state
	st.Response = append([]string(nil), c.state.Response...)
	return st
}

func (c *Coach) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CoachState{}
}

// Copy pretends to copy a suggestion to the clipboard.
func (c *Coach) Copy(string) {
	c.toasts.Show(notify.Success, "Message copied to clipboard!")
}
