// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	keyhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/config"
	"github.com/zjrosen/breathe/internal/keys"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/pubsub"
	"github.com/zjrosen/breathe/internal/sound"
	"github.com/zjrosen/breathe/internal/telemetry"
	"github.com/zjrosen/breathe/internal/ui/help"
	"github.com/zjrosen/breathe/internal/ui/logoverlay"
	"github.com/zjrosen/breathe/internal/ui/pulse"
	"github.com/zjrosen/breathe/internal/ui/stats"
	"github.com/zjrosen/breathe/internal/ui/styles"
	"github.com/zjrosen/breathe/internal/ui/toaster"
	"github.com/zjrosen/breathe/internal/watcher"
)

// Options configures a new Model.
type Options struct {
	Config config.Config

	// ConfigPath is watched for changes when Config.AutoReload is set.
	ConfigPath string

	// Debug enables the log overlay (Ctrl+X toggle).
	Debug bool

	// Sound plays the phase tones. Nil plays nothing.
	Sound sound.Service

	// SoundFor builds a playback backend when sound.player changes on
	// reload. Nil keeps the current backend.
	SoundFor func(player string) sound.Service

	// TickerFactory replaces the real-time ticker.
	TickerFactory breathing.TickerFactory

	// Tracer and Metrics record sessions. Either may be nil.
	Tracer  trace.Tracer
	Metrics *telemetry.Metrics
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	// fileCfg is the config file as last read, without flag or env overrides.
	fileCfg    config.Config
	soundFor   func(player string) sound.Service

	runner   *breathing.Runner
	emitter  *sound.Emitter
	recorder *telemetry.SessionRecorder

	// Controller events are also fanned out on a broker for async listeners.
	transitions        *pubsub.Broker[breathing.Transition]
	transitionListener *pubsub.ContinuousListener[breathing.Transition]
	ctx                context.Context
	cancel             context.CancelFunc

	keys     keys.KeyMap
	labels   labels.Set
	pulse    pulse.Model
	stats    stats.Model
	help     help.Model
	footer   keyhelp.Model
	showHelp bool
	toaster  toaster.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	width  int
	height int
}

// New creates the application model. The returned Model owns a ticker,
// an optional file watcher and a session span; call Close when done.
func New(opts Options) Model {
	cfg := opts.Config
	ctx, cancel := context.WithCancel(context.Background())

	emitter := sound.NewEmitter(opts.Sound, sound.WithMuted(cfg.Sound.Muted))
	recorder := telemetry.NewSessionRecorder(opts.Tracer, opts.Metrics)
	transitions := pubsub.NewBroker[breathing.Transition]()

	ctrl := breathing.NewController(
		breathing.WithCycleDuration(cfg.Duration),
		breathing.WithPublisher(pubsub.Fanout[breathing.Transition]{emitter, recorder, transitions}),
	)
	runner := breathing.NewRunner(ctrl, breathing.WithTickerFactory(opts.TickerFactory))

	var (
		watcherHandle *watcher.Watcher
		watcherCh     <-chan struct{}
	)
	if cfg.AutoReload && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle = w
				watcherCh = ch
			} else {
				log.Warn(log.CatWatcher, "Config watcher failed to start", "error", err)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "Config watcher unavailable", "error", err)
		}
	}

	var logListener *log.LogListener
	if opts.Debug {
		logListener = log.NewListener(ctx)
	}

	fileCfg := cfg
	if opts.ConfigPath != "" {
		if fc, err := readConfig(opts.ConfigPath); err == nil {
			fileCfg = fc
		} else {
			log.Warn(log.CatConfig, "Config file unreadable, reloads diff against launch config", "path", opts.ConfigPath, "error", err)
		}
	}

	km := keys.DefaultKeyMap()
	m := Model{
		cfg:                cfg,
		configPath:         opts.ConfigPath,
		fileCfg:            fileCfg,
		soundFor:           opts.SoundFor,
		runner:             runner,
		emitter:            emitter,
		recorder:           recorder,
		transitions:        transitions,
		transitionListener: pubsub.NewContinuousListener[breathing.Transition](ctx, transitions),
		ctx:                ctx,
		cancel:             cancel,
		keys:               km,
		pulse:              pulse.New(),
		stats:              stats.New(),
		help:               help.New(km),
		footer:             keyhelp.New(),
		toaster:            toaster.New(),
		debugMode:          opts.Debug,
		logOverlay:         logoverlay.New(),
		logListener:        logListener,
		watcherHandle:      watcherHandle,
		watcherCh:          watcherCh,
	}
	styles.ApplyTheme(themeOf(cfg))
	return m.applyUI(cfg.UI).sync()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(m.labels.Title),
		m.transitionListener.Listen(),
		watcher.WaitCmd(m.configPath, m.watcherCh),
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// State returns the breathing session state.
func (m Model) State() breathing.State {
	return m.runner.State()
}

// Muted reports whether tones are suppressed.
func (m Model) Muted() bool {
	return m.emitter.Muted()
}

// Config returns the configuration currently applied.
func (m Model) Config() config.Config {
	return m.cfg
}

// Close ends the session span and releases the ticker and watcher.
func (m Model) Close() {
	m.recorder.Close(m.runner.State())
	m.runner.Close()
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			log.Warn(log.CatWatcher, "Stopping config watcher", "error", err)
		}
	}
	m.cancel()
	m.transitions.Close()
}

// tickMsg is one tick delivered by the lease with LeaseID.
type tickMsg struct {
	LeaseID uint64
	Time    time.Time
}

// waitTick blocks on lease for the next tick. A released lease yields no message.
func waitTick(lease *breathing.Lease) tea.Cmd {
	if lease == nil {
		return nil
	}
	return func() tea.Msg {
		ts, ok := lease.Wait()
		if !ok {
			return nil
		}
		return tickMsg{LeaseID: lease.ID(), Time: ts}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		m.footer.Width = msg.Width
		return m.layout(), nil

	case tickMsg:
		m.runner.Tick(msg.LeaseID)
		var cmd tea.Cmd
		if lease := m.runner.Lease(); lease != nil && lease.ID() == msg.LeaseID {
			cmd = waitTick(lease)
		}
		return m.sync(), cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.logOverlay.Visible() || m.showHelp || !m.cfg.UI.Mouse {
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		return m.handleClick(msg)

	case watcher.ChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reload()
		return m, tea.Batch(cmd, watcher.WaitCmd(m.configPath, m.watcherCh))

	case pubsub.Event[breathing.Transition]:
		var cmd tea.Cmd
		if summary := m.summary(msg); summary != "" {
			m.toaster, cmd = m.toaster.Show(summary, toaster.StyleInfo)
		}
		return m, tea.Batch(cmd, m.transitionListener.Listen())

	case log.LogEvent:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, m.keys.Logs) {
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil
	}

	// The debug log overlay takes precedence while visible.
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()

	case key.Matches(msg, m.keys.Reset):
		m.runner.Reset()
		return m.sync(), nil

	case key.Matches(msg, m.keys.PrevDuration):
		return m.setDuration(breathing.StepDuration(m.runner.State().CycleDurationSeconds, -1))

	case key.Matches(msg, m.keys.NextDuration):
		return m.setDuration(breathing.StepDuration(m.runner.State().CycleDurationSeconds, 1))

	case key.Matches(msg, m.keys.Mute):
		return m.toggleMute()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	}

	if d, ok := m.keys.DurationFor(msg.String()); ok {
		return m.setDuration(d)
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if zone.Get(pulse.ZoneID).InBounds(msg) {
		return m.toggle()
	}
	for _, d := range breathing.SupportedDurations() {
		if zone.Get(stats.DurationZoneID(d)).InBounds(msg) {
			return m.setDuration(d)
		}
	}
	if m.stats.ShowsReset() && zone.Get(stats.ResetZoneID).InBounds(msg) {
		m.runner.Reset()
		return m.sync(), nil
	}
	if zone.Get(stats.MuteZoneID).InBounds(msg) {
		return m.toggleMute()
	}
	return m, nil
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	lease := m.runner.Toggle()
	return m.sync(), waitTick(lease)
}

func (m Model) setDuration(seconds int) (tea.Model, tea.Cmd) {
	if seconds == m.runner.State().CycleDurationSeconds {
		return m, nil
	}
	if err := m.runner.SetCycleDuration(seconds); err != nil {
		log.Warn(log.CatTimer, "Rejected cycle duration", "duration", seconds, "error", err)
		return m, nil
	}
	m = m.sync()
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(m.durationNotice(seconds), toaster.StyleSuccess)
	return m, cmd
}

func (m Model) toggleMute() (tea.Model, tea.Cmd) {
	muted := m.emitter.ToggleMuted()
	log.Info(log.CatSound, "Sound toggled", "muted", muted)
	notice := m.labels.Unmuted
	if muted {
		notice = m.labels.Muted
	}
	m = m.sync()
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(notice, toaster.StyleInfo)
	return m, cmd
}

func (m Model) durationNotice(seconds int) string {
	return fmt.Sprintf("%d %s", seconds, strings.ToLower(m.labels.Seconds))
}

// summary describes the session a reset or duration change discarded.
// Sessions that never counted a second yield "".
func (m Model) summary(ev pubsub.Event[breathing.Transition]) string {
	if ev.Type != breathing.EventReset {
		return ""
	}
	prev := ev.Payload.Previous
	if prev.TotalElapsedSeconds == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d  ·  %s %s",
		m.labels.Cycles, prev.CyclesCompleted,
		m.labels.Time, stats.FormatElapsed(prev.TotalElapsedSeconds),
	)
}

// sync copies the session state into the views.
func (m Model) sync() Model {
	s := m.runner.State()
	m.pulse = m.pulse.SetState(s)
	m.stats = m.stats.SetState(s).SetMuted(m.emitter.Muted())
	return m
}

func (m Model) applyUI(ui config.UIConfig) Model {
	m.labels = labels.For(ui.Language)
	m.pulse = m.pulse.SetLabels(m.labels).SetCountdown(ui.Countdown)
	m.stats = m.stats.SetLabels(m.labels).SetShowStats(ui.ShowStats)
	m.help = m.help.SetLanguage(ui.Language)
	return m.layout()
}

func themeOf(cfg config.Config) styles.Theme {
	return styles.Theme{
		Accent: cfg.Theme.Accent,
		Muted:  cfg.Theme.Muted,
		Text:   cfg.Theme.Text,
	}
}
