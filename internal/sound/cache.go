package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/log"
)

// ToneFiles renders each phase tone to a WAV file on first use and reuses it.
type ToneFiles struct {
	mu    sync.Mutex
	dir   string
	paths map[breathing.Phase]string
}

// NewToneFiles stores tones under dir. An empty dir uses a fresh temp directory.
func NewToneFiles(dir string) *ToneFiles {
	return &ToneFiles{dir: dir, paths: make(map[breathing.Phase]string)}
}

// Path returns the WAV file for phase, writing it if needed.
func (f *ToneFiles) Path(phase breathing.Phase) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.paths[phase]; ok {
		return p, nil
	}

	if f.dir == "" {
		dir, err := os.MkdirTemp("", "breathe-tones-*")
		if err != nil {
			return "", fmt.Errorf("creating tone directory: %w", err)
		}
		f.dir = dir
	}

	data, err := WAV(phase)
	if err != nil {
		return "", err
	}

	p := filepath.Join(f.dir, phase.String()+".wav")
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("writing tone: %w", err)
	}
	log.Debug(log.CatSound, "Rendered tone", "phase", phase, "path", p, "bytes", len(data))

	f.paths[phase] = p
	return p, nil
}

// Remove deletes the rendered files.
func (f *ToneFiles) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for phase, p := range f.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing tone %s: %w", phase, err)
		}
	}
	f.paths = make(map[breathing.Phase]string)
	return nil
}
