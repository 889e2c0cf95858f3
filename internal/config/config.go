// Package config provides configuration types, defaults and validation for breathe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/log"
)

// Config holds all configuration options for breathe.
type Config struct {
	Duration   int           `mapstructure:"duration" yaml:"duration"`
	AutoReload bool          `mapstructure:"auto_reload" yaml:"auto_reload"`
	Sound      SoundConfig   `mapstructure:"sound" yaml:"sound"`
	UI         UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme      ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Tracing    TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics    MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SoundConfig holds audio cue options.
type SoundConfig struct {
	Muted bool `mapstructure:"muted" yaml:"muted"`
	// Player selects the playback backend: "auto" (first available system
	// player, else the terminal bell), "bell", "none", or the name of a
	// player command such as "afplay", "paplay" or "aplay".
	Player string `mapstructure:"player" yaml:"player"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	Language  string `mapstructure:"language" yaml:"language"`     // "en" (default) or "ru"
	Countdown bool   `mapstructure:"countdown" yaml:"countdown"`   // count down instead of up within a phase
	ShowStats bool   `mapstructure:"show_stats" yaml:"show_stats"` // show cycles and elapsed time
	Mouse     bool   `mapstructure:"mouse" yaml:"mouse"`           // enable mouse clicks
}

// ThemeConfig holds color overrides. Empty values keep the defaults.
type ThemeConfig struct {
	Accent string `mapstructure:"accent" yaml:"accent"` // pulse and highlights
	Muted  string `mapstructure:"muted" yaml:"muted"`   // hints and inactive elements
	Text   string `mapstructure:"text" yaml:"text"`     // primary text
}

// TracingConfig holds session tracing options.
type TracingConfig struct {
	// Enabled controls whether each breathing session is recorded as a span.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/breathe/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0].
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// MetricsConfig holds session counter options.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Exporter is "none" (in-process only) or "otlp".
	Exporter        string `mapstructure:"exporter" yaml:"exporter"`
	OTLPEndpoint    string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	IntervalSeconds int    `mapstructure:"interval_seconds" yaml:"interval_seconds"`
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	playerName = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)
)

// DefaultTracesFilePath returns ~/.config/breathe/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "breathe", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Duration:   breathing.DefaultCycleDuration,
		AutoReload: true,
		Sound: SoundConfig{
			Muted:  false,
			Player: "auto",
		},
		UI: UIConfig{
			Language:  labels.English,
			Countdown: true,
			ShowStats: true,
			Mouse:     true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Metrics: MetricsConfig{
			Enabled:         false,
			Exporter:        "none",
			OTLPEndpoint:    "localhost:4317",
			IntervalSeconds: 30,
		},
	}
}

// Validate checks the configuration for errors.
func Validate(cfg Config) error {
	if !breathing.IsSupportedDuration(cfg.Duration) {
		return fmt.Errorf("duration %d: must be one of %v", cfg.Duration, breathing.SupportedDurations())
	}
	if err := ValidateSound(cfg.Sound); err != nil {
		return err
	}
	if !labels.IsSupported(cfg.UI.Language) {
		return fmt.Errorf("ui.language %q: must be one of %v", cfg.UI.Language, labels.Languages())
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return ValidateMetrics(cfg.Metrics)
}

// ValidateSound checks sound configuration.
func ValidateSound(s SoundConfig) error {
	if s.Player == "" {
		return nil
	}
	if !playerName.MatchString(s.Player) {
		return fmt.Errorf("sound.player %q: must be auto, bell, none or a command name", s.Player)
	}
	return nil
}

// ValidateTheme checks that every color override is a hex color.
func ValidateTheme(t ThemeConfig) error {
	for name, value := range map[string]string{"accent": t.Accent, "muted": t.Muted, "text": t.Text} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s %q: must be a hex color like #E6FA4B", name, value)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter %q: must be none, file, stdout or otlp", tracing.Exporter)
	}
	if tracing.SampleRate < 0 || tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate %v: must be between 0 and 1", tracing.SampleRate)
	}
	return nil
}

// ValidateMetrics checks metrics configuration.
func ValidateMetrics(m MetricsConfig) error {
	switch m.Exporter {
	case "", "none", "otlp":
	default:
		return fmt.Errorf("metrics.exporter %q: must be none or otlp", m.Exporter)
	}
	if m.IntervalSeconds < 0 {
		return fmt.Errorf("metrics.interval_seconds %d: must not be negative", m.IntervalSeconds)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# breathe configuration

# Seconds per phase (inhale, hold, exhale, hold): 4, 6, 8 or 10
duration: 4

# Re-read this file when it changes while breathe is running
auto_reload: true

sound:
  muted: false
  # auto, bell, none, or a player command (afplay, paplay, aplay)
  player: auto

ui:
  language: en      # en or ru
  countdown: true   # count down the seconds left in each phase
  show_stats: true  # show cycles and elapsed time
  mouse: true       # click the pulse to start/pause, click durations to pick one

# Color overrides (hex)
# theme:
#   accent: "#E6FA4B"
#   muted: "#888888"
#   text: "#F0F0F0"

# Session tracing: every session becomes one span with phase events
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/breathe/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Session counters (cycles completed, phases entered, sessions started)
# metrics:
#   enabled: false
#   exporter: none                 # none or otlp
#   otlp_endpoint: localhost:4317
#   interval_seconds: 30
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
