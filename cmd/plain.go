package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/plain"
)

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Run a session without the full-screen interface",
	Long: `Print one line per phase with a countdown, then a summary when the
session ends. Stops after --cycles completed squares, or on Ctrl+C.

Example:
  breathe plain               # Run until interrupted
  breathe plain --cycles 5    # Five squares, then exit
  breathe plain -d 6 --mute   # Six seconds per phase, no tones`,
	RunE: runPlain,
}

var (
	plainCycles  int
	plainNoColor bool
)

func init() {
	rootCmd.AddCommand(plainCmd)

	plainCmd.Flags().IntVar(&plainCycles, "cycles", 0, "stop after this many completed cycles (0 = until interrupted)")
	plainCmd.Flags().BoolVar(&plainNoColor, "no-color", false, "disable colored output")
}

func runPlain(cmd *cobra.Command, _ []string) error {
	if plainCycles < 0 {
		return fmt.Errorf("--cycles must not be negative, got %d", plainCycles)
	}
	if plainNoColor {
		color.NoColor = true
	}

	cleanup, err := setupLogging("breathe-plain")
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close(context.WithoutCancel(ctx))

	plain.Run(ctx, plain.Options{
		Out:      cmd.OutOrStdout(),
		Labels:   labels.For(cfg.UI.Language),
		Duration: cfg.Duration,
		Cycles:   plainCycles,
		Sound:    sess.sound,
		Muted:    cfg.Sound.Muted,
		Tracer:   sess.tracing.Tracer(),
		Metrics:  sess.metrics,
	})
	return nil
}
