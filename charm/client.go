// ABOUTME: Charm KV client implementing the store slot backend with cloud sync
// ABOUTME: Maps badger misses to store.ErrSlotNotFound and logs sync results

package charm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/revenueos/store"
)

// Client wraps charm KV as a store.Backend.
type Client struct {
	kv         *kv.KV
	config     *Config
	logger     *log.Logger
	mu         sync.RWMutex
	testClient *testClient // Used for testing without server dependency
}

// Open opens the revenueos charm database against cfg.Host and pulls
// remote changes when auto-sync is on.
func Open(cfg *Config, logger *log.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// charm reads the host from the environment when opening the KV
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{kv: db, config: cfg, logger: logger}
	if cfg.AutoSync {
		if err := c.Sync(); err != nil {
			logger.Warn("startup sync failed", "host", cfg.Host, "err", err)
		}
	}
	return c, nil
}

// Close is a no-op; charm/kv does not expose Close and badger is released on exit.
func (c *Client) Close() error {
	return nil
}

func (c *Client) Config() *Config {
	if c.testClient != nil {
		return c.testClient.Config()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected reports whether a charm account id can be fetched.
func (c *Client) IsConnected() bool {
	if c.testClient != nil {
		return true
	}
	_, err := c.ID()
	return err == nil
}

// Sync pulls and pushes with the charm server and records the time.
func (c *Client) Sync() error {
	var err error
	if c.testClient != nil {
		err = c.testClient.Sync()
	} else {
		c.mu.Lock()
		err = c.kv.Sync()
		c.mu.Unlock()
	}
	if err != nil {
		return fmt.Errorf("failed to sync with %s: %w", c.config.Host, err)
	}
	if err := c.config.MarkSynced(time.Now()); err != nil {
		c.logger.Warn("failed to record sync time", "err", err)
	}
	c.logger.Info("charm sync complete", "host", c.config.Host)
	return nil
}

func (c *Client) Get(key []byte) ([]byte, error) {
	var (
		v   []byte
		err error
	)
	if c.testClient != nil {
		v, err = c.testClient.Get(key)
	} else {
		c.mu.RLock()
		v, err = c.kv.Get(key)
		c.mu.RUnlock()
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrSlotNotFound
	}
	return v, err
}

// Set stores a slot and pushes it when auto-sync is on.
func (c *Client) Set(key, value []byte) error {
	if c.testClient != nil {
		return c.testClient.Set(key, value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set(key, value); err != nil {
		return err
	}
	c.autoSync()
	return nil
}

func (c *Client) Delete(key []byte) error {
	if c.testClient != nil {
		return c.testClient.Delete(key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(key); err != nil {
		return err
	}
	c.autoSync()
	return nil
}

// autoSync must be called with c.mu held.
func (c *Client) autoSync() {
	if !c.config.AutoSync {
		return
	}
	if err := c.kv.Sync(); err != nil {
		c.logger.Warn("auto-sync failed", "err", err)
	}
}

func (c *Client) Keys() ([][]byte, error) {
	if c.testClient != nil {
		return c.testClient.Keys()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}

// Reset wipes every local slot.
func (c *Client) Reset() error {
	if c.testClient != nil {
		return c.testClient.Reset()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

var _ store.Backend = (*Client)(nil)
