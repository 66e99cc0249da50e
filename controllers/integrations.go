// ABOUTME: Integrations controller for flow toggles and the integration slide-over
// ABOUTME: Coming-soon integrations only show a notice instead of opening

package controllers

import (
	"fmt"
	"sync"

	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/views"
)

type IntegrationsController struct {
	store  *store.Store
	toasts *notify.Service

	mu   sync.Mutex
	open string
}

func NewIntegrationsController(s *store.Store, toasts *notify.Service) *IntegrationsController {
	return &IntegrationsController{store: s, toasts: toasts}
}

func (c *IntegrationsController) View() views.Integrations {
	return views.BuildIntegrations(c.store.Get())
}

// ToggleFlow flips a flow and reports whether it is now active.
func (c *IntegrationsController) ToggleFlow(flowID string) (bool, error) {
	active, err := c.store.ToggleFlow(flowID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle flow: %w", err)
	}
	if active {
		c.toasts.Show(notify.Success, "Flow activated successfully.")
	} else {
		c.toasts.Show(notify.Success, "Flow deactivated successfully.")
	}
	return active, nil
}

// Open shows the slide-over and reports whether it opened.
func (c *IntegrationsController) Open(id string) (bool, error) {
	in, ok := views.FindIntegration(c.store.Get(), id)
	if !ok {
		return false, fmt.Errorf("integration %s: %w", id, store.ErrNotFound)
	}
	if in.Status == models.IntegrationComingSoon {
		c.toasts.Show(notify.Info, fmt.Sprintf("%s integration is coming soon!", in.Name))
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = id
	return true, nil
}

func (c *IntegrationsController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = ""
}

// Selected returns the open integration with its flow states.
func (c *IntegrationsController) Selected() (views.IntegrationCard, bool) {
	c.mu.Lock()
	id := c.open
	c.mu.Unlock()
	if id == "" {
		return views.IntegrationCard{}, false
	}
	for _, cat := range c.View().Categories {
		for _, card := range cat.Items {
			if card.ID == id {
				return card, true
			}
		}
	}
	return views.IntegrationCard{}, false
}
