package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Sweep    SweepConfig    `toml:"sweep"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type DatabaseConfig struct {
	URL         string `toml:"url"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

// RedisConfig controls where stock snapshots are published. An empty Addr
// disables publishing.
type RedisConfig struct {
	Addr               string `toml:"addr"`
	Password           string `toml:"password"`
	DB                 int    `toml:"db"`
	SnapshotTTLSeconds int    `toml:"snapshot_ttl_seconds"`
}

// LedgerConfig holds ledger matching rules
type LedgerConfig struct {
	// FoldVariationCase lowercases variation keys from every ledger before
	// netting. Off by default: keys must match exactly.
	FoldVariationCase bool `toml:"fold_variation_case"`
}

// SweepConfig schedules the optional catalog-wide reconciliation job
type SweepConfig struct {
	IntervalSeconds int `toml:"interval_seconds"` // 0 disables the sweep
	BatchSize       int `toml:"batch_size"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Redis: RedisConfig{
			SnapshotTTLSeconds: 300,
		},
		Sweep: SweepConfig{BatchSize: 500},
	}
}

func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Redis.SnapshotTTLSeconds) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Sweep.IntervalSeconds) * time.Second
}

// Load reads the TOML file if filename is set, then applies environment
// overrides. Environment always wins.
func Load(filename string) (*Config, error) {
	config := Default()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (set DATABASE_URL or [database].url)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Sweep.IntervalSeconds < 0 {
		return fmt.Errorf("sweep interval cannot be negative")
	}
	if c.Sweep.BatchSize <= 0 {
		return fmt.Errorf("sweep batch size must be positive")
	}
	return nil
}
