// ABOUTME: Configuration for the Charm KV slot backend
// ABOUTME: Stores server host, auto-sync preference and last sync bookkeeping

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names the Charm KV database and the local data directory.
	AppName = "revenueos"

	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	Host string `json:"host,omitempty"`

	// AutoSync pushes after every slot write.
	AutoSync bool `json:"auto_sync"`

	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`

	// LastSyncAt is written after every successful manual or startup sync.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	path string
}

func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// ConfigPath is where the charm settings live, under the XDG data dir.
func ConfigPath() string {
	return filepath.Join(xdg.DataHome, AppName, ConfigFileName)
}

// LoadConfig reads the settings file. A missing or unreadable file yields defaults.
func LoadConfig() (*Config, error) {
	return loadConfigFrom(ConfigPath())
}

func loadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var stored Config
	if err := json.Unmarshal(data, &stored); err != nil {
		return cfg, nil //nolint:nilerr // invalid config falls back to defaults
	}
	stored.path = path
	if stored.Host == "" {
		stored.Host = DefaultCharmHost
	}
	if stored.StaleThreshold == 0 {
		stored.StaleThreshold = kv.DefaultStaleThreshold
	}
	return &stored, nil
}

// Save writes the config back to where it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// MarkSynced records a successful sync and saves.
func (c *Config) MarkSynced(at time.Time) error {
	at = at.UTC()
	c.LastSyncAt = &at
	return c.Save()
}

// Stale reports whether the last sync is older than StaleThreshold.
func (c *Config) Stale(now time.Time) bool {
	if c.LastSyncAt == nil {
		return true
	}
	return now.Sub(*c.LastSyncAt) > c.StaleThreshold
}
