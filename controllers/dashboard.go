// ABOUTME: Dashboard controller for the scenario, simulator inputs and widget layout
// ABOUTME: Layout edits persist; scenario and simulator inputs are session state

package controllers

import (
	"fmt"
	"slices"
	"sync"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

type DashboardController struct {
	store *store.Store
	prefs *store.Prefs

	mu        sync.Mutex
	scenario  views.Scenario
	sim       views.SimulationInput
	customize bool
	dragged   string
	layout    []models.Widget
}

func NewDashboardController(s *store.Store) *DashboardController {
	prefs := s.Prefs()
	return &DashboardController{
		store:    s,
		prefs:    prefs,
		scenario: views.ScenarioHealthy,
		layout:   views.ResolveLayout(prefs.DashboardLayout()),
	}
}

func (c *DashboardController) View() views.Dashboard {
	c.mu.Lock()
	scenario, sim, layout := c.scenario, c.sim, slices.Clone(c.layout)
	c.mu.Unlock()
	return views.BuildDashboard(c.store.Get().MonthlyGoal, scenario, sim, layout, c.store.Now())
}

func (c *DashboardController) SetScenario(s views.Scenario) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scenario = s
}

// CycleScenario advances healthy, risk, recovery and back.
func (c *DashboardController) CycleScenario() views.Scenario {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scenario = c.scenario.Next()
	return c.scenario
}

// SetSimulation changes the what-if inputs.
func (c *DashboardController) SetSimulation(in views.SimulationInput) error {
	if in.ClosedDeals < 0 {
		return invalid("Closed deals cannot be negative.")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sim = in
	return nil
}

func (c *DashboardController) ToggleCustomize() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customize = !c.customize
	if !c.customize {
		c.dragged = ""
	}
	return c.customize
}

func (c *DashboardController) Customizing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customize
}

func (c *DashboardController) Layout() []models.Widget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.layout)
}

// AddWidget appends a catalog widget that is not already shown.
func (c *DashboardController) AddWidget(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range views.AvailableWidgets(c.layout) {
		if w.ID == id {
			return c.saveLocked(append(slices.Clone(c.layout), w))
		}
	}
	return invalid(fmt.Sprintf("Widget %q is not available.", id))
}

func (c *DashboardController) RemoveWidget(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(c.layout), func(w models.Widget) bool { return w.ID == id })
	return c.saveLocked(next)
}

// DragStart only works in customize mode.
func (c *DashboardController) DragStart(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.customize {
		return false
	}
	c.dragged = id
	return true
}

// Drop moves the dragged widget to the target's position.
func (c *DashboardController) Drop(targetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.dragged
	c.dragged = ""
	if src == "" || src == targetID {
		return nil
	}
	return c.saveLocked(moveWidget(c.layout, src, targetID))
}

func moveWidget(layout []models.Widget, srcID, targetID string) []models.Widget {
	from := slices.IndexFunc(layout, func(w models.Widget) bool { return w.ID == srcID })
	to := slices.IndexFunc(layout, func(w models.Widget) bool { return w.ID == targetID })
	if from < 0 || to < 0 {
		return layout
	}
	next := slices.Clone(layout)
	w := next[from]
	next = slices.Delete(next, from, from+1)
	return slices.Insert(next, to, w)
}

// saveLocked must be called with c.mu held.
func (c *DashboardController) saveLocked(layout []models.Widget) error {
	if err := c.prefs.SetDashboardLayout(layout); err != nil {
		return err
	}
	c.layout = layout
	return nil
}
