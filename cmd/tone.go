package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/sound"
)

var toneCmd = &cobra.Command{
	Use:   "tone <phase>",
	Short: "Play the tone of one phase",
	Long: `Play the tone for a phase through the configured sound backend, to
check that audio works. Phases: inhale, hold_in, exhale, hold_out.

Example:
  breathe tone inhale
  breathe tone exhale --wav exhale.wav   # Write the tone instead of playing it`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: phaseArgs(),
	RunE:      runTone,
}

var toneWAV string

func init() {
	rootCmd.AddCommand(toneCmd)

	toneCmd.Flags().StringVar(&toneWAV, "wav", "", "write the tone to this WAV file instead of playing it")
}

func phaseArgs() []string {
	phases := breathing.ActivePhases()
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.String()
	}
	return names
}

func parseTonePhase(arg string) (breathing.Phase, error) {
	phase, err := breathing.ParsePhase(strings.ToLower(arg))
	if err != nil || !phase.IsActivePhase() {
		return breathing.Idle, fmt.Errorf("unknown phase %q (want one of %s)", arg, strings.Join(phaseArgs(), ", "))
	}
	return phase, nil
}

func runTone(cmd *cobra.Command, args []string) error {
	phase, err := parseTonePhase(args[0])
	if err != nil {
		return err
	}

	if toneWAV != "" {
		data, err := sound.WAV(phase)
		if err != nil {
			return err
		}
		if err := os.WriteFile(toneWAV, data, 0o644); err != nil { //nolint:gosec // G306: a user-requested audio file
			return fmt.Errorf("writing %s: %w", toneWAV, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%.0f Hz)\n", toneWAV, sound.Frequency(phase))
		return nil
	}

	tones := sound.NewToneFiles("")
	defer func() { _ = tones.Remove() }()

	svc := sound.DetectService(cfg.Sound.Player, nil, sound.WithToneFiles(tones))
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := svc.Play(ctx, phase); err != nil {
		return fmt.Errorf("playing %s tone: %w", phase, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Played %s (%.0f Hz) via %s\n", phase, sound.Frequency(phase), backendName(svc))
	return nil
}

func backendName(svc sound.Service) string {
	switch s := svc.(type) {
	case *sound.PlayerService:
		return s.Command()
	case *sound.BellService:
		return "terminal bell"
	default:
		return "no sound"
	}
}
