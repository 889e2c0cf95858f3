package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal renders the effective configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses YAML into a Config starting from Defaults, so keys missing
// from data keep their default values.
func Unmarshal(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Changes lists the top-level settings that differ between two configs, by
// their YAML key. Used to describe a reload.
func Changes(old, updated Config) []string {
	var changed []string
	if old.Duration != updated.Duration {
		changed = append(changed, "duration")
	}
	if old.AutoReload != updated.AutoReload {
		changed = append(changed, "auto_reload")
	}
	if old.Sound != updated.Sound {
		changed = append(changed, "sound")
	}
	if old.UI != updated.UI {
		changed = append(changed, "ui")
	}
	if old.Theme != updated.Theme {
		changed = append(changed, "theme")
	}
	if old.Tracing != updated.Tracing {
		changed = append(changed, "tracing")
	}
	if old.Metrics != updated.Metrics {
		changed = append(changed, "metrics")
	}
	return changed
}

// Overlay applies the file edits between oldFile and newFile to current.
// Settings the file did not change keep their value in current, so flag and
// environment overrides from launch survive a reload.
func Overlay(current, oldFile, newFile Config) Config {
	out := current
	out.Duration = pick(current.Duration, oldFile.Duration, newFile.Duration)
	out.AutoReload = pick(current.AutoReload, oldFile.AutoReload, newFile.AutoReload)

	out.Sound.Muted = pick(current.Sound.Muted, oldFile.Sound.Muted, newFile.Sound.Muted)
	out.Sound.Player = pick(current.Sound.Player, oldFile.Sound.Player, newFile.Sound.Player)

	out.UI.Language = pick(current.UI.Language, oldFile.UI.Language, newFile.UI.Language)
	out.UI.Countdown = pick(current.UI.Countdown, oldFile.UI.Countdown, newFile.UI.Countdown)
	out.UI.ShowStats = pick(current.UI.ShowStats, oldFile.UI.ShowStats, newFile.UI.ShowStats)
	out.UI.Mouse = pick(current.UI.Mouse, oldFile.UI.Mouse, newFile.UI.Mouse)

	out.Theme.Accent = pick(current.Theme.Accent, oldFile.Theme.Accent, newFile.Theme.Accent)
	out.Theme.Muted = pick(current.Theme.Muted, oldFile.Theme.Muted, newFile.Theme.Muted)
	out.Theme.Text = pick(current.Theme.Text, oldFile.Theme.Text, newFile.Theme.Text)

	out.Tracing.Enabled = pick(current.Tracing.Enabled, oldFile.Tracing.Enabled, newFile.Tracing.Enabled)
	out.Tracing.Exporter = pick(current.Tracing.Exporter, oldFile.Tracing.Exporter, newFile.Tracing.Exporter)
	out.Tracing.FilePath = pick(current.Tracing.FilePath, oldFile.Tracing.FilePath, newFile.Tracing.FilePath)
	out.Tracing.OTLPEndpoint = pick(current.Tracing.OTLPEndpoint, oldFile.Tracing.OTLPEndpoint, newFile.Tracing.OTLPEndpoint)
	out.Tracing.SampleRate = pick(current.Tracing.SampleRate, oldFile.Tracing.SampleRate, newFile.Tracing.SampleRate)

	out.Metrics.Enabled = pick(current.Metrics.Enabled, oldFile.Metrics.Enabled, newFile.Metrics.Enabled)
	out.Metrics.Exporter = pick(current.Metrics.Exporter, oldFile.Metrics.Exporter, newFile.Metrics.Exporter)
	out.Metrics.OTLPEndpoint = pick(current.Metrics.OTLPEndpoint, oldFile.Metrics.OTLPEndpoint, newFile.Metrics.OTLPEndpoint)
	out.Metrics.IntervalSeconds = pick(current.Metrics.IntervalSeconds, oldFile.Metrics.IntervalSeconds, newFile.Metrics.IntervalSeconds)
	return out
}

// pick returns updated when the file changed the setting, else current.
func pick[T comparable](current, old, updated T) T {
	if old != updated {
		return updated
	}
	return current
}
