// ABOUTME: Application configuration from a JSON file, .env and REVENUEOS_* variables
// ABOUTME: Later sources override earlier ones; a missing or invalid file means defaults

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	AppName        = "revenueos"
	ConfigFileName = "config.json"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend     string `json:"backend" env:"REVENUEOS_BACKEND"`
	DBPath      string `json:"db_path" env:"REVENUEOS_DB_PATH"`
	RedisAddr   string `json:"redis_addr,omitempty" env:"REVENUEOS_REDIS_ADDR"`
	RedisDB     int    `json:"redis_db,omitempty" env:"REVENUEOS_REDIS_DB"`
	RedisPrefix string `json:"redis_prefix,omitempty" env:"REVENUEOS_REDIS_PREFIX"`
	WebPort     int    `json:"web_port" env:"REVENUEOS_WEB_PORT"`
	LogLevel    string `json:"log_level" env:"REVENUEOS_LOG_LEVEL"`

	// TeamSeed fixes the weekly deltas of the team roster. Zero draws one.
	TeamSeed int64 `json:"team_seed,omitempty" env:"REVENUEOS_TEAM_SEED"`

	// MonthlyGoal overrides the stored goal when positive.
	MonthlyGoal float64 `json:"monthly_goal,omitempty" env:"REVENUEOS_MONTHLY_GOAL"`

	path string
}

func Default() *Config {
	return &Config{
		Backend:     BackendSQLite,
		DBPath:      DefaultDBPath(),
		RedisAddr:   "localhost:6379",
		RedisPrefix: AppName + ":",
		WebPort:     8080,
		LogLevel:    "info",
	}
}

// Path is the config file location under the XDG config dir.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// Load reads the config file, then .env in the working directory, then the environment.
func Load() (*Config, error) {
	return LoadFrom(Path(), ".env")
}

func LoadFrom(path, dotenv string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		fallback := Default()
		fallback.path = path
		return fallback, nil //nolint:nilerr // invalid config falls back to defaults
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendCharm, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid backend: %s (valid: sqlite, charm, redis, memory)", c.Backend)
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid web port: %d", c.WebPort)
	}
	return nil
}

// FilePath is where the config was loaded from.
func (c *Config) FilePath() string {
	if c.path == "" {
		return Path()
	}
	return c.path
}

// Save writes the config back to where it was loaded from.
func (c *Config) Save() error {
	path := c.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
