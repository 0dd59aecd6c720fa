// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Gateway configuration: defaults, TOML file, environment overrides and a
// thread-safe store with reload propagation.

package control

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/xyproto/env/v2"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvMaxCapacity     = "HIOLOAD_IOVEC_MAX_CAPACITY"
	EnvDefaultCapacity = "HIOLOAD_IOVEC_DEFAULT_CAPACITY"
	EnvPoolRetain      = "HIOLOAD_IOVEC_POOL_RETAIN"
	EnvLogLevel        = "HIOLOAD_IOVEC_LOG_LEVEL"
)

// Config holds the gateway's tunables.
type Config struct {
	// MaxCapacity bounds every buffer the gateway allocates.
	MaxCapacity int `toml:"max_capacity"`
	// DefaultCapacity is used when scripting code omits a capacity.
	DefaultCapacity int `toml:"default_capacity"`
	// PoolRetain caps idle regions kept per size class.
	PoolRetain int `toml:"pool_retain"`
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MaxCapacity:     16 << 20,
		DefaultCapacity: 4096,
		PoolRetain:      64,
		LogLevel:        "info",
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if c.MaxCapacity <= 0 {
		return fmt.Errorf("max_capacity must be positive, got %d", c.MaxCapacity)
	}
	if c.DefaultCapacity <= 0 || c.DefaultCapacity > c.MaxCapacity {
		return fmt.Errorf("default_capacity must be in (0, %d], got %d", c.MaxCapacity, c.DefaultCapacity)
	}
	if c.PoolRetain < 0 {
		return fmt.Errorf("pool_retain must not be negative, got %d", c.PoolRetain)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// LoadConfig reads a TOML file over the defaults and applies environment
// overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from HIOLOAD_IOVEC_* variables that are set.
func ApplyEnv(cfg Config) Config {
	cfg.MaxCapacity = env.Int(EnvMaxCapacity, cfg.MaxCapacity)
	cfg.DefaultCapacity = env.Int(EnvDefaultCapacity, cfg.DefaultCapacity)
	cfg.PoolRetain = env.Int(EnvPoolRetain, cfg.PoolRetain)
	cfg.LogLevel = env.Str(EnvLogLevel, cfg.LogLevel)
	return cfg
}

// ConfigStore holds the live configuration with listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    Config
	listeners []func(Config)
}

// NewConfigStore initializes a store with cfg.
func NewConfigStore(cfg Config) *ConfigStore {
	return &ConfigStore{config: cfg}
}

// Get returns the current configuration.
func (cs *ConfigStore) Get() Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config
}

// GetSnapshot returns the configuration as a key/value map.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cfg := cs.Get()
	return map[string]any{
		"max_capacity":     cfg.MaxCapacity,
		"default_capacity": cfg.DefaultCapacity,
		"pool_retain":      cfg.PoolRetain,
		"log_level":        cfg.LogLevel,
	}
}

// normalizeNumbers turns integral float64 values into ints. Scripting
// runtimes hand every number over as a float.
func normalizeNumbers(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			v = int64(f)
		}
		out[k] = v
	}
	return out
}

// SetConfig merges key/value pairs into the configuration. Keys follow the
// TOML field names; the merged result must validate.
func (cs *ConfigStore) SetConfig(values map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalizeNumbers(values)); err != nil {
		return fmt.Errorf("encode config update: %w", err)
	}
	cs.mu.Lock()
	next := cs.config
	md, err := toml.Decode(buf.String(), &next)
	if err != nil {
		cs.mu.Unlock()
		return fmt.Errorf("decode config update: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		cs.mu.Unlock()
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := next.Validate(); err != nil {
		cs.mu.Unlock()
		return err
	}
	cs.config = next
	listeners := append([]func(Config){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// OnReload registers a listener called synchronously after each update.
func (cs *ConfigStore) OnReload(fn func(Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
