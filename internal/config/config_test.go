package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unsupported duration", func(c *Config) { c.Duration = 5 }, "duration 5"},
		{"zero duration", func(c *Config) { c.Duration = 0 }, "must be one of"},
		{"unknown language", func(c *Config) { c.UI.Language = "fr" }, "ui.language"},
		{"bad player", func(c *Config) { c.Sound.Player = "rm -rf" }, "sound.player"},
		{"bad accent", func(c *Config) { c.Theme.Accent = "yellow" }, "theme.accent"},
		{"bad text color", func(c *Config) { c.Theme.Text = "#12345" }, "theme.text"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "tracing.sample_rate"},
		{"bad metrics exporter", func(c *Config) { c.Metrics.Exporter = "prometheus" }, "metrics.exporter"},
		{"negative interval", func(c *Config) { c.Metrics.IntervalSeconds = -1 }, "metrics.interval_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsOverrides(t *testing.T) {
	cfg := Defaults()
	cfg.Duration = 10
	cfg.UI.Language = "ru"
	cfg.Sound.Player = "paplay"
	cfg.Theme = ThemeConfig{Accent: "#E6FA4B", Muted: "#888", Text: "#f0f0f0"}
	cfg.Tracing.Exporter = "otlp"
	cfg.Metrics.Exporter = "otlp"

	require.NoError(t, Validate(cfg))
}

func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	cfg, err := Unmarshal([]byte(DefaultConfigTemplate()))
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestDefaultTracesFilePath(t *testing.T) {
	path := DefaultTracesFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.Equal(t, "traces.jsonl", filepath.Base(path))
}
