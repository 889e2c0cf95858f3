package app

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/breathe/internal/config"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/ui/styles"
	"github.com/zjrosen/breathe/internal/ui/toaster"
)

// reload re-reads the config file after the watcher reports a change and
// applies only the settings the edit touched. An unreadable or invalid file
// keeps the current settings.
func (m Model) reload() (Model, tea.Cmd) {
	fileCfg, err := readConfig(m.configPath)
	if err != nil {
		log.Warn(log.CatConfig, "Config reload rejected", "path", m.configPath, "error", err)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Config not reloaded: "+err.Error(), toaster.StyleError)
		return m, cmd
	}
	cfg := config.Overlay(m.cfg, m.fileCfg, fileCfg)
	m.fileCfg = fileCfg
	return m.ApplyConfig(cfg)
}

func readConfig(path string) (config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := config.Unmarshal(data)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// ApplyConfig switches to cfg at runtime. Sound, UI and theme changes apply
// in place; a new duration resets the session. Tracing and metrics settings
// take effect on the next launch.
func (m Model) ApplyConfig(cfg config.Config) (Model, tea.Cmd) {
	changed := config.Changes(m.cfg, cfg)
	if len(changed) == 0 {
		return m, nil
	}
	old := m.cfg
	m.cfg = cfg
	log.Info(log.CatConfig, "Config applied", "changed", strings.Join(changed, ","))

	var cmds []tea.Cmd

	if old.Sound.Muted != cfg.Sound.Muted {
		m.emitter.SetMuted(cfg.Sound.Muted)
	}
	if old.Sound.Player != cfg.Sound.Player && m.soundFor != nil {
		m.emitter.SetService(m.soundFor(cfg.Sound.Player))
	}

	if old.Theme != cfg.Theme {
		styles.ApplyTheme(themeOf(cfg))
		m.pulse.ClearCache()
	}

	if old.UI != cfg.UI {
		m = m.applyUI(cfg.UI)
		if old.UI.Language != cfg.UI.Language {
			cmds = append(cmds, tea.SetWindowTitle(m.labels.Title))
		}
		if old.UI.Mouse != cfg.UI.Mouse {
			if cfg.UI.Mouse {
				cmds = append(cmds, tea.EnableMouseCellMotion)
			} else {
				cmds = append(cmds, tea.DisableMouse)
			}
		}
	}

	notice := "Config reloaded: " + strings.Join(changed, ", ")
	style := toaster.StyleSuccess
	if old.Duration != cfg.Duration {
		if err := m.runner.SetCycleDuration(cfg.Duration); err != nil {
			log.Warn(log.CatConfig, "Reloaded duration rejected", "duration", cfg.Duration, "error", err)
			style = toaster.StyleWarn
		} else {
			notice = m.durationNotice(cfg.Duration)
		}
	}

	m = m.sync().layout()
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(notice, style)
	return m, tea.Batch(append(cmds, cmd)...)
}
