package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// isolate points HOME and the working directory at an empty temp dir so no
// real config is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 8\nsound:\n  muted: true\nui:\n  language: ru\n")

	got, used, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 8, got.Duration)
	assert.True(t, got.Sound.Muted)
	assert.Equal(t, "ru", got.UI.Language)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "auto", got.Sound.Player)
	assert.True(t, got.UI.ShowStats)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 8\n")
	t.Setenv("BREATHE_DURATION", "10")
	t.Setenv("BREATHE_SOUND_PLAYER", "bell")

	got, _, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 10, got.Duration)
	assert.Equal(t, "bell", got.Sound.Player)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 5\n")

	_, _, err := loadConfig(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "duration 5")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := loadConfig(viper.New(), filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadConfig_LocalDirTakesPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, localDir), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, localDir, configName), []byte("duration: 6\n"), 0o600))

	got, used, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 6, got.Duration)
	assert.Equal(t, filepath.Join(localDir, configName), used)
}

func TestLoadConfig_WritesDefaultWhenNoneFound(t *testing.T) {
	home := isolate(t)

	got, used, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	want := filepath.Join(home, ".config", "breathe", configName)
	assert.Equal(t, want, used)
	assert.Equal(t, config.Defaults().Duration, got.Duration)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestParseTonePhase(t *testing.T) {
	tests := []struct {
		arg     string
		want    breathing.Phase
		wantErr bool
	}{
		{arg: "inhale", want: breathing.Inhale},
		{arg: "HOLD_IN", want: breathing.HoldIn},
		{arg: "exhale", want: breathing.Exhale},
		{arg: "hold_out", want: breathing.HoldOut},
		{arg: "idle", wantErr: true},
		{arg: "breathe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseTonePhase(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "inhale, hold_in, exhale, hold_out")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// execute runs the root command with args and returns its output. Package
// flag variables are reset afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, toneWAV, configTemplate = "", "", false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand_PrintsEffectiveConfig(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 6\n")

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "duration: 6")
	assert.Contains(t, out, "player: auto")
}

func TestConfigCommand_Template(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 4\n")

	out, err := execute(t, "config", "--config", path, "--template")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTemplate(), out)
}

func TestToneCommand_WritesWAV(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, "duration: 4\n")
	wav := filepath.Join(dir, "inhale.wav")

	out, err := execute(t, "tone", "inhale", "--config", path, "--wav", wav)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+wav)

	data, err := os.ReadFile(wav)
	require.NoError(t, err)
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestToneCommand_UnknownPhase(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "duration: 4\n")

	_, err := execute(t, "tone", "idle", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown phase "idle"`)
}
