// Package config loads gesturetree wrap configuration from YAML or
// JSON files and materializes it into options.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/journal"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/observability"
)

// Config declares how a manager should be wrapped.
type Config struct {
	// LogLevel enables structured dispatch logging at the given level
	// ("debug", "info", "warn", "error"). Empty disables logging.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// JournalPath enables the SQLite dispatch journal at the given
	// path (":memory:" for an ephemeral journal). Empty disables it.
	JournalPath string `yaml:"journal_path" json:"journal_path"`

	// Tracing enables OpenTelemetry spans around dispatches.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Metrics enables OpenTelemetry dispatch and handler metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// EventTypes restricts which event types On() registers.
	// Empty means all types.
	EventTypes []string `yaml:"event_types" json:"event_types"`
}

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c, nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return c, nil
}

// Options materializes the config into Wrap options. The returned
// closer releases resources the options hold (the journal store) and
// must be called after the manager is destroyed; it is non-nil even
// when there is nothing to release.
func (c Config) Options() ([]gesturetree.Option, func() error, error) {
	var opts []gesturetree.Option
	closer := func() error { return nil }

	if c.LogLevel != "" {
		level, err := parseLevel(c.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		opts = append(opts, gesturetree.WithLogger(logger))
	}

	if c.Tracing {
		opts = append(opts, gesturetree.WithSpans(observability.NewSpanManager()))
	}

	if c.Metrics {
		opts = append(opts, gesturetree.WithMetrics(observability.NewMetricsRecorder()))
	}

	if c.JournalPath != "" {
		store, err := journal.NewSQLiteStore(c.JournalPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		opts = append(opts, gesturetree.WithJournal(store))
		closer = store.Close
	}

	if len(c.EventTypes) > 0 {
		opts = append(opts, gesturetree.WithEventTypes(c.EventTypes...))
	}

	return opts, closer, nil
}

// parseLevel maps a config string to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}
