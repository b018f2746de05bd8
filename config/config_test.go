package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/shapeops/cache"
	"github.com/jonwraymond/shapeops/observe"
	"github.com/jonwraymond/shapeops/shape"
	"github.com/jonwraymond/shapeops/shape/reflectshape"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SHAPEOPS_CACHE_ERRORS",
		"SHAPEOPS_LOG_LEVEL",
		"SHAPEOPS_TRACE_EXPORTER",
		"SHAPEOPS_METRICS_EXPORTER",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "shapeops.yaml", `
cache:
  cache_errors: true
observe:
  service_name: codecs
  version: "2.1"
  tracing:
    enabled: true
    exporter: stdout
    sample_pct: 0.25
  logging:
    enabled: true
    level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Cache.CacheErrors)
	assert.Equal(t, "codecs", cfg.Telemetry.ServiceName)
	assert.Equal(t, "2.1", cfg.Telemetry.Version)
	assert.Equal(t, TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 0.25}, cfg.Telemetry.Tracing)
	assert.Equal(t, "debug", cfg.Telemetry.Logging.Level)
	// Unset sections keep their defaults.
	assert.Equal(t, "none", cfg.Telemetry.Metrics.Exporter)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "shapeops.toml", `
[cache]
cache_errors = true

[observe]
service_name = "codecs"

[observe.metrics]
enabled = true
exporter = "stdout"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Cache.CacheErrors)
	assert.Equal(t, "codecs", cfg.Telemetry.ServiceName)
	assert.Equal(t, MetricsConfig{Enabled: true, Exporter: "stdout"}, cfg.Telemetry.Metrics)
	assert.Equal(t, "info", cfg.Telemetry.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "cache: [unclosed"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "[cache\n"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("invalid exporter", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "observe:\n  tracing:\n    enabled: true\n    exporter: zipkin\n"))
		assert.ErrorIs(t, err, observe.ErrInvalidTracingExporter)
	})

	t.Run("missing env reference", func(t *testing.T) {
		_, err := Load(writeFile(t, "env.yaml", "observe:\n  service_name: ${SHAPEOPS_TEST_UNSET_NAME}\n"))
		assert.ErrorIs(t, err, ErrMissingEnv)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorContains(t, err, "failed to read config")
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("cache errors", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHAPEOPS_CACHE_ERRORS", "true")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.True(t, cfg.Cache.CacheErrors)
	})

	t.Run("invalid bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHAPEOPS_CACHE_ERRORS", "sometimes")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, ErrInvalidBool)
	})

	t.Run("exporters enable their sections", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHAPEOPS_TRACE_EXPORTER", "stdout")
		t.Setenv("SHAPEOPS_METRICS_EXPORTER", "none")
		t.Setenv("SHAPEOPS_LOG_LEVEL", "warn")

		cfg, err := Load(writeFile(t, "c.yaml", "observe:\n  metrics:\n    enabled: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Telemetry.Tracing.Enabled)
		assert.Equal(t, "stdout", cfg.Telemetry.Tracing.Exporter)
		assert.False(t, cfg.Telemetry.Metrics.Enabled)
		assert.Equal(t, "warn", cfg.Telemetry.Logging.Level)
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHAPEOPS_CACHE_ERRORS", "false")

		cfg, err := Load(writeFile(t, "c.yaml", "cache:\n  cache_errors: true\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Cache.CacheErrors)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			want := Default()
			want.Cache.CacheErrors = true
			want.Telemetry.ServiceName = "roundtrip"
			want.Telemetry.Metrics = MetricsConfig{Enabled: true, Exporter: "prometheus"}

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, want.Save(path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCacheOptions(t *testing.T) {
	cfg := Default()
	cfg.Cache.CacheErrors = true

	c, err := cache.New(reflectshape.New(), func(cache.Resolver) shape.Visitor {
		return shape.Unsupported{}
	}, cfg.CacheOptions()...)
	require.NoError(t, err)
	assert.True(t, c.Policy().CacheErrors)
}

func TestObserveConfig(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Version = "1.0"

	oc := cfg.ObserveConfig()
	assert.Equal(t, "shapeops", oc.ServiceName)
	assert.Equal(t, "1.0", oc.Version)
	assert.Equal(t, observe.LoggingConfig{Enabled: true, Level: "info"}, oc.Logging)
	assert.NoError(t, oc.Validate())
}

func TestInstrument(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Logging.Enabled = false

	opts, shutdown, err := cfg.Instrument(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	assert.Len(t, opts, 2)

	_, err = cache.New(reflectshape.New(), func(cache.Resolver) shape.Visitor {
		return shape.Unsupported{}
	}, opts...)
	require.NoError(t, err)

	bad := Default()
	bad.Telemetry.ServiceName = ""
	_, _, err = bad.Instrument(context.Background())
	assert.ErrorIs(t, err, observe.ErrMissingServiceName)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SHAPEOPS_TEST_HOST", "collector")

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "no refs", "no refs", false},
		{"braced", "http://${SHAPEOPS_TEST_HOST}:4317", "http://collector:4317", false},
		{"bare untouched", "$SHAPEOPS_TEST_HOST", "$SHAPEOPS_TEST_HOST", false},
		{"escaped", "$${SHAPEOPS_TEST_HOST}", "${SHAPEOPS_TEST_HOST}", false},
		{"missing", "${SHAPEOPS_TEST_MISSING_B} ${SHAPEOPS_TEST_MISSING_A}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnv(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingEnv)
				assert.ErrorContains(t, err, "SHAPEOPS_TEST_MISSING_A, SHAPEOPS_TEST_MISSING_B")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
