// Package config loads shapeops settings from YAML or TOML files.
//
// The file format is chosen by extension: .toml files are decoded with
// BurntSushi/toml, everything else with yaml.v3. A missing file yields
// Default(). References of the form ${VAR} are expanded from the environment
// before decoding, and SHAPEOPS_* variables override decoded values:
//
//	SHAPEOPS_CACHE_ERRORS      cache.failures replay (true|false)
//	SHAPEOPS_LOG_LEVEL         observe.logging.level
//	SHAPEOPS_TRACE_EXPORTER    observe.tracing.exporter
//	SHAPEOPS_METRICS_EXPORTER  observe.metrics.exporter
package config
