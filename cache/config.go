package cache

import (
	"fmt"
	"time"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config represents cache store configuration
type Config struct {
	// Backend selects the durable layer: "file" or "redis"
	Backend string `yaml:"backend" validate:"oneof=file redis"`

	// Dir is the directory used by the file backend
	Dir string `yaml:"dir"`

	Redis RedisConfig `yaml:"redis"`

	// GoCache configuration of the in-memory front
	GoCache GoCacheConfig `yaml:"go_cache"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db" validate:"min=0"`
	KeyPrefix string `yaml:"key_prefix"`
	PoolSize  int    `yaml:"pool_size" validate:"min=0"`
}

// GoCacheConfig configuration for in-memory go-cache
type GoCacheConfig struct {
	// DefaultExpiration default expiration time for cache items
	// If 0, items never expire by default
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval interval for cleaning up expired items
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	Enabled bool `yaml:"enabled"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		Backend: BackendFile,
		Dir:     "./cache_data",
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "market-aggregator:",
		},
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
			Enabled:           true,
		},
	}
}

// Validate checks backend specific settings
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.Dir == "" {
			return fmt.Errorf("dir is required for the %s backend", BackendFile)
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
