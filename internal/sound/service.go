// Package sound plays a short tone when the breathing phase changes.
package sound

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/log"
)

// Service plays the tone for a phase.
type Service interface {
	Play(ctx context.Context, phase breathing.Phase) error
}

// NoopService plays nothing.
type NoopService struct{}

func (NoopService) Play(context.Context, breathing.Phase) error { return nil }

// BellService rings the terminal bell.
type BellService struct {
	w io.Writer
}

// NewBellService writes BEL to w, or stderr when w is nil.
func NewBellService(w io.Writer) *BellService {
	if w == nil {
		w = os.Stderr
	}
	return &BellService{w: w}
}

func (b *BellService) Play(context.Context, breathing.Phase) error {
	_, err := io.WriteString(b.w, "\a")
	return err
}

// knownPlayers are tried in order by DetectService.
var knownPlayers = []string{"afplay", "paplay", "aplay"}

var playerArgs = map[string][]string{
	"aplay": {"-q"},
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// PlayerService hands the rendered WAV to a system audio player.
type PlayerService struct {
	command string
	tones   *ToneFiles
	run     Runner
}

// PlayerOption configures a PlayerService.
type PlayerOption func(*PlayerService)

// WithRunner replaces command execution.
func WithRunner(r Runner) PlayerOption {
	return func(p *PlayerService) {
		p.run = r
	}
}

// WithToneFiles sets where rendered tones are kept.
func WithToneFiles(t *ToneFiles) PlayerOption {
	return func(p *PlayerService) {
		p.tones = t
	}
}

// NewPlayerService plays tones through command.
func NewPlayerService(command string, opts ...PlayerOption) *PlayerService {
	p := &PlayerService{
		command: command,
		run:     execRunner,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tones == nil {
		p.tones = NewToneFiles("")
	}
	return p
}

// Command returns the player executable.
func (p *PlayerService) Command() string {
	return p.command
}

func (p *PlayerService) Play(ctx context.Context, phase breathing.Phase) error {
	path, err := p.tones.Path(phase)
	if err != nil {
		return err
	}
	args := append(append([]string{}, playerArgs[p.command]...), path)
	return p.run(ctx, p.command, args...)
}

// LookPath reports where an executable lives.
type LookPath func(file string) (string, error)

// DetectService resolves the configured player name. "none" disables sound,
// "bell" forces the terminal bell and "auto" picks the first installed
// player, falling back to the bell. Any other value is used as a command.
func DetectService(player string, lookPath LookPath, opts ...PlayerOption) Service {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	switch player {
	case "none":
		return NoopService{}
	case "bell":
		return NewBellService(nil)
	case "", "auto":
		for _, name := range knownPlayers {
			if _, err := lookPath(name); err == nil {
				log.Debug(log.CatSound, "Detected audio player", "player", name)
				return NewPlayerService(name, opts...)
			}
		}
		log.Info(log.CatSound, "No audio player found, using terminal bell")
		return NewBellService(nil)
	default:
		if _, err := lookPath(player); err != nil {
			log.Warn(log.CatSound, "Configured player not found, using terminal bell", "player", player)
			return NewBellService(nil)
		}
		return NewPlayerService(player, opts...)
	}
}
