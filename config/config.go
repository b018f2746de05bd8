package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/observe"
)

// Config is the top-level configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" toml:"cache"`
	Telemetry TelemetryConfig `yaml:"observe" toml:"observe"`
}

// CacheConfig configures construction caches.
type CacheConfig struct {
	// CacheErrors replays a failed build's error on later lookups.
	CacheErrors bool `yaml:"cache_errors" toml:"cache_errors"`
}

// TelemetryConfig configures tracing, metrics and logging for cache builds.
type TelemetryConfig struct {
	ServiceName string        `yaml:"service_name" toml:"service_name"`
	Version     string        `yaml:"version" toml:"version"`
	Tracing     TracingConfig `yaml:"tracing" toml:"tracing"`
	Metrics     MetricsConfig `yaml:"metrics" toml:"metrics"`
	Logging     LoggingConfig `yaml:"logging" toml:"logging"`
}

// TracingConfig mirrors observe.TracingConfig.
type TracingConfig struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled"`
	Exporter  string  `yaml:"exporter" toml:"exporter"`
	SamplePct float64 `yaml:"sample_pct" toml:"sample_pct"`
}

// MetricsConfig mirrors observe.MetricsConfig.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Exporter string `yaml:"exporter" toml:"exporter"`
}

// LoggingConfig mirrors observe.LoggingConfig.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Level   string `yaml:"level" toml:"level"`
}

// Default returns the default configuration: failures are not cached,
// tracing and metrics are off, and info-level logging is on.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{CacheErrors: false},
		Telemetry: TelemetryConfig{
			ServiceName: "shapeops",
			Tracing: TracingConfig{
				Exporter:  "none",
				SamplePct: 1.0,
			},
			Metrics: MetricsConfig{Exporter: "none"},
			Logging: LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// Load reads the configuration at path. A missing file yields Default()
// with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	expanded, err := ExpandEnv(string(data))
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, c); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Save writes c to path in the format implied by its extension.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var sb strings.Builder
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewEncoder(&sb).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	} else {
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		sb.Write(data)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SHAPEOPS_CACHE_ERRORS"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SHAPEOPS_CACHE_ERRORS=%q", ErrInvalidBool, v)
		}
		c.Cache.CacheErrors = on
	}
	if v := os.Getenv("SHAPEOPS_LOG_LEVEL"); v != "" {
		c.Telemetry.Logging.Level = v
		c.Telemetry.Logging.Enabled = true
	}
	if v := os.Getenv("SHAPEOPS_TRACE_EXPORTER"); v != "" {
		c.Telemetry.Tracing.Exporter = v
		c.Telemetry.Tracing.Enabled = v != "none"
	}
	if v := os.Getenv("SHAPEOPS_METRICS_EXPORTER"); v != "" {
		c.Telemetry.Metrics.Exporter = v
		c.Telemetry.Metrics.Enabled = v != "none"
	}
	return nil
}

// Validate checks the telemetry section against observe's rules.
func (c *Config) Validate() error {
	oc := c.ObserveConfig()
	return oc.Validate()
}

// CacheOptions returns the cache options described by c.
func (c *Config) CacheOptions() []cache.Option {
	return []cache.Option{
		cache.WithCacheErrors(c.Cache.CacheErrors),
	}
}

// Instrument builds an Observer from the telemetry section and returns the
// cache options with build middleware attached. The returned shutdown func
// flushes and stops the telemetry providers.
func (c *Config) Instrument(ctx context.Context) ([]cache.Option, func(context.Context) error, error) {
	obs, err := observe.NewObserver(ctx, c.ObserveConfig())
	if err != nil {
		return nil, nil, err
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, nil, err
	}
	return append(c.CacheOptions(), cache.WithMiddleware(mw)), obs.Shutdown, nil
}

// ObserveConfig converts the telemetry section to an observe.Config.
func (c *Config) ObserveConfig() observe.Config {
	t := c.Telemetry
	return observe.Config{
		ServiceName: t.ServiceName,
		Version:     t.Version,
		Tracing: observe.TracingConfig{
			Enabled:   t.Tracing.Enabled,
			Exporter:  t.Tracing.Exporter,
			SamplePct: t.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  t.Metrics.Enabled,
			Exporter: t.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: t.Logging.Enabled,
			Level:   t.Logging.Level,
		},
	}
}
