// ABOUTME: Redis slot backend for deployments sharing one workspace between processes
// ABOUTME: Keys are namespaced with a prefix; redis.Nil maps to store.ErrSlotNotFound
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harperreed/revenueos/store"
)

const (
	DefaultPrefix    = "revenueos:"
	DefaultTimeout   = 3 * time.Second
	slotIndexKeyName = "slots"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// OperationTimeout bounds every call; the Backend interface carries no context.
	OperationTimeout time.Duration
}

// Backend stores slots as plain Redis strings and tracks their names in a set.
type Backend struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// New connects and pings the server.
func New(cfg Config) (*Backend, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = DefaultTimeout
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Backend{client: rdb, prefix: cfg.Prefix, timeout: cfg.OperationTimeout}, nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}

func (b *Backend) key(k []byte) string {
	return b.prefix + string(k)
}

func (b *Backend) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

func (b *Backend) Get(key []byte) ([]byte, error) {
	ctx, cancel := b.withTimeout()
	defer cancel()

	v, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return v, nil
}

func (b *Backend) Set(key, value []byte) error {
	ctx, cancel := b.withTimeout()
	defer cancel()

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.key(key), value, 0)
		pipe.SAdd(ctx, b.prefix+slotIndexKeyName, string(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Delete(key []byte) error {
	ctx, cancel := b.withTimeout()
	defer cancel()

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key(key))
		pipe.SRem(ctx, b.prefix+slotIndexKeyName, string(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Keys lists the slot names written through this prefix.
func (b *Backend) Keys() ([]string, error) {
	ctx, cancel := b.withTimeout()
	defer cancel()

	keys, err := b.client.SMembers(ctx, b.prefix+slotIndexKeyName).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return keys, nil
}

var _ store.Backend = (*Backend)(nil)
