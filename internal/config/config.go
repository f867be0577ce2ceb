// Package config provides configuration types and defaults for the vikey
// playground.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration options for the playground.
type Config struct {
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Registers RegistersConfig `mapstructure:"registers"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// UIConfig holds display preferences for the playground buffer view.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowLineNums  bool `mapstructure:"show_line_numbers"`
	TabWidth      int  `mapstructure:"tab_width"`
}

// ThemeConfig selects the playground's color scheme. Unlike a full editor
// the playground only ever needs a base preset and a light/dark toggle; it
// has no per-token color override surface since it renders a status bar and
// a single buffer, not a multi-panel board.
type ThemeConfig struct {
	// Preset names a built-in palette. Valid values: "default", "mono".
	// It is validated and saved; the playground's styles do not vary by
	// preset, only by Mode.
	Preset string `mapstructure:"preset"`
	// Mode forces "dark" or "light"; empty auto-detects from the terminal.
	Mode string `mapstructure:"mode"`
}

// RegistersConfig controls the SQLite-backed register bank.
type RegistersConfig struct {
	// DBPath is the path to the register database file.
	// Default: ~/.config/vikey/registers.db
	DBPath string `mapstructure:"db_path"`

	// CacheTTLSeconds controls how long a register's content stays in the
	// in-memory read-through cache before the next Get falls back to SQLite.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// TracingConfig holds distributed tracing configuration for the parser and
// playground host, carried verbatim in shape from the orchestration
// tracing config this was adapted from.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ValidateTracing checks tracing configuration for errors. Returns nil if
// the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// ValidateTheme checks that the theme preset and mode are recognized.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Preset {
	case "", "default", "mono":
	default:
		return fmt.Errorf("theme.preset must be \"default\" or \"mono\", got %q", theme.Preset)
	}
	switch theme.Mode {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme.mode must be \"dark\" or \"light\", got %q", theme.Mode)
	}
	return nil
}

// DefaultRegistersDBPath returns the default location for the register
// database, rooted under the user's config directory.
func DefaultRegistersDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "registers.db"
	}
	return filepath.Join(home, ".config", "vikey", "registers.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowStatusBar: true,
			ShowLineNums:  true,
			TabWidth:      4,
		},
		Theme: ThemeConfig{
			Preset: "default",
		},
		Registers: RegistersConfig{
			DBPath:          DefaultRegistersDBPath(),
			CacheTTLSeconds: 600,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with
// explanatory comments, written to disk the first time vikey runs without
// an existing config file.
func DefaultConfigTemplate() string {
	return `# vikey playground configuration

ui:
  show_status_bar: true
  show_line_numbers: true
  tab_width: 4

theme:
  preset: default
  # mode: dark

registers:
  db_path: ""
  cache_ttl_seconds: 600

tracing:
  enabled: false
  exporter: file
  file_path: ""
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default config template to path, creating
// any missing parent directories.
func WriteDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(DefaultConfigTemplate()), 0o600)
}
