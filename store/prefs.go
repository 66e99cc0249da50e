// ABOUTME: Per-screen preference slots stored beside the main snapshot
// ABOUTME: Every read falls back to its default when the slot is absent or invalid
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/harperreed/revenueos/models"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Prefs reads and writes the small UI preference slots. Values are stored
// as plain strings, except the dashboard layout which is JSON.
type Prefs struct {
	backend Backend
	logger  *log.Logger
}

func NewPrefs(backend Backend, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prefs{backend: backend, logger: logger}
}

// Prefs returns a preference reader sharing the store's backend.
func (s *Store) Prefs() *Prefs {
	return NewPrefs(s.backend, s.logger)
}

func (p *Prefs) read(key string) (string, bool) {
	data, err := p.backend.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			p.logger.Warn("failed to read preference", "key", key, "err", err)
		}
		return "", false
	}
	return string(data), true
}

func (p *Prefs) write(key, value string) error {
	if err := p.backend.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Filter returns the stored filter under key when allowed accepts it, else def.
func (p *Prefs) Filter(key, def string, allowed func(string) bool) string {
	v, ok := p.read(key)
	if !ok || v == "" || (allowed != nil && !allowed(v)) {
		return def
	}
	return v
}

func (p *Prefs) SetFilter(key, value string) error {
	return p.write(key, value)
}

// Theme defaults to light.
func (p *Prefs) Theme() Theme {
	v, _ := p.read(KeyTheme)
	if Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (p *Prefs) SetTheme(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("invalid theme: %s (valid: light, dark)", t)
	}
	return p.write(KeyTheme, string(t))
}

// ToggleTheme flips and stores the theme, returning the new value.
func (p *Prefs) ToggleTheme() (Theme, error) {
	next := ThemeDark
	if p.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, p.SetTheme(next)
}

func (p *Prefs) Onboarded() bool {
	v, ok := p.read(KeyOnboarded)
	return ok && v == "true"
}

func (p *Prefs) SetOnboarded() error {
	return p.write(KeyOnboarded, "true")
}

// DashboardLayout returns the stored layout and whether one was readable.
func (p *Prefs) DashboardLayout() ([]models.Widget, bool) {
	v, ok := p.read(KeyDashboardLayout)
	if !ok {
		return nil, false
	}
	var widgets []models.Widget
	if err := json.Unmarshal([]byte(v), &widgets); err != nil {
		p.logger.Warn("discarding unreadable dashboard layout", "err", err)
		return nil, false
	}
	return widgets, true
}

func (p *Prefs) SetDashboardLayout(widgets []models.Widget) error {
	if widgets == nil {
		widgets = []models.Widget{}
	}
	data, err := json.Marshal(widgets)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard layout: %w", err)
	}
	return p.write(KeyDashboardLayout, string(data))
}
