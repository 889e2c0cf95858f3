package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/breathe/internal/app"
	"github.com/zjrosen/breathe/internal/config"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/sound"
	"github.com/zjrosen/breathe/internal/telemetry"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	// envPrefix prefixes every environment override, e.g. BREATHE_SOUND_MUTED.
	envPrefix  = "BREATHE"
	localDir   = ".breathe"
	configName = "config.yaml"
)

var (
	version   = "dev"
	cfgFile   string
	cfgPath   string
	cfgErr    error
	cfg       config.Config
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "breathe",
	Short: "A square breathing timer for the terminal",
	Long: `breathe guides square (box) breathing: inhale, hold, exhale and hold
again, each for the same number of seconds, with a pulsing square, a
countdown and an optional tone on every phase change.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return cfgErr
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .breathe/config.yaml, then ~/.config/breathe/config.yaml)")
	flags.IntP("duration", "d", config.Defaults().Duration, "seconds per phase (4, 6, 8 or 10)")
	flags.Bool("mute", false, "start with sound off")
	flags.String("lang", "", "interface language (en or ru)")
	flags.BoolVar(&debugFlag, "debug", false, "write a debug log and enable the log overlay (Ctrl+X)")

	// Bind flags to viper
	_ = viper.BindPFlag("duration", flags.Lookup("duration"))
	_ = viper.BindPFlag("sound.muted", flags.Lookup("mute"))
	_ = viper.BindPFlag("ui.language", flags.Lookup("lang"))
}

func initConfig() {
	cfg, cfgPath, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads the configuration into v from file, or from the first
// config found in the lookup order. When none exists a commented default is
// written to the user config directory. Environment variables and a .env
// file override file values.
func loadConfig(v *viper.Viper, file string) (config.Config, string, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		// Config lookup order:
		// 1. .breathe/config.yaml (current directory)
		// 2. ~/.config/breathe/config.yaml (user config)
		local := filepath.Join(localDir, configName)
		if _, err := os.Stat(local); err == nil {
			v.SetConfigFile(local)
		} else {
			v.AddConfigPath(userConfigDir())
			v.SetConfigName(strings.TrimSuffix(configName, filepath.Ext(configName)))
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return config.Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		// No config file found anywhere: create the default in the user dir.
		defaultPath := filepath.Join(userConfigDir(), configName)
		if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
			v.SetConfigFile(defaultPath)
			_ = v.ReadInConfig()
		} else {
			log.Warn(log.CatConfig, "Could not write default config", "path", defaultPath, "error", writeErr)
		}
	}

	var loaded config.Config
	if err := v.Unmarshal(&loaded); err != nil {
		return config.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(loaded); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, v.ConfigFileUsed(), nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("duration", d.Duration)
	v.SetDefault("auto_reload", d.AutoReload)
	v.SetDefault("sound.muted", d.Sound.Muted)
	v.SetDefault("sound.player", d.Sound.Player)
	v.SetDefault("ui.language", d.UI.Language)
	v.SetDefault("ui.countdown", d.UI.Countdown)
	v.SetDefault("ui.show_stats", d.UI.ShowStats)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("theme.accent", d.Theme.Accent)
	v.SetDefault("theme.muted", d.Theme.Muted)
	v.SetDefault("theme.text", d.Theme.Text)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.exporter", d.Metrics.Exporter)
	v.SetDefault("metrics.otlp_endpoint", d.Metrics.OTLPEndpoint)
	v.SetDefault("metrics.interval_seconds", d.Metrics.IntervalSeconds)
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return localDir
	}
	return filepath.Join(home, ".config", "breathe")
}

// setupLogging installs the file logger when debug mode is on (flag or
// BREATHE_DEBUG). The returned cleanup is never nil.
func setupLogging(prefix string) (func(), error) {
	if os.Getenv(envPrefix+"_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv(envPrefix + "_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "breathe starting", "version", version, "config", cfgPath, "logPath", logPath)
	return cleanup, nil
}

// session holds the telemetry and sound backends shared by the presenters.
type session struct {
	tracing *telemetry.Provider
	metrics *telemetry.Metrics
	tones   *sound.ToneFiles
	sound   sound.Service
}

func newSession(ctx context.Context, c config.Config) (*session, error) {
	tracing, err := telemetry.NewProvider(ctx, c.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	metrics, err := telemetry.NewMetrics(ctx, c.Metrics)
	if err != nil {
		_ = tracing.Shutdown(ctx)
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}
	s := &session{
		tracing: tracing,
		metrics: metrics,
		tones:   sound.NewToneFiles(""),
	}
	s.sound = s.soundFor(c.Sound.Player)
	return s, nil
}

func (s *session) soundFor(player string) sound.Service {
	return sound.DetectService(player, exec.LookPath, sound.WithToneFiles(s.tones))
}

// Close flushes telemetry and removes the tone files.
func (s *session) Close(ctx context.Context) {
	if err := s.tracing.Shutdown(ctx); err != nil {
		log.Warn(log.CatTrace, "Tracing shutdown failed", "error", err)
	}
	if err := s.metrics.Shutdown(ctx); err != nil {
		log.Warn(log.CatTrace, "Metrics shutdown failed", "error", err)
	}
	if err := s.tones.Remove(); err != nil {
		log.Warn(log.CatSound, "Removing tone files failed", "error", err)
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupLogging("breathe")
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close(context.WithoutCancel(ctx))

	zone.NewGlobal()
	defer zone.Close()

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Debug:      debugFlag || os.Getenv(envPrefix+"_DEBUG") != "",
		Sound:      sess.sound,
		SoundFor:   sess.soundFor,
		Tracer:     sess.tracing.Tracer(),
		Metrics:    sess.metrics,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	final, err := tea.NewProgram(model, opts...).Run()

	// Clean up the session span, ticker and watcher.
	if m, ok := final.(app.Model); ok {
		m.Close()
	} else {
		model.Close()
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
