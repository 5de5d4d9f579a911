package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/ui/preferences"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsAppliesValidFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `focus_minutes: 50
short_break_minutes: 0
long_break_minutes: 120
pause_timeout_seconds: 300
sound_enabled: false
sound_volume: -1.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute, settings.Focus)
	assert.Equal(t, 5*time.Minute, settings.ShortBreak, "out of range value keeps default")
	assert.Equal(t, 15*time.Minute, settings.LongBreak, "out of range value keeps default")
	assert.Equal(t, 5*time.Minute, settings.PauseTimeout)
	assert.False(t, settings.SoundEnabled)
	assert.Equal(t, -1.5, settings.SoundVolume)
}

func TestLoadSettingsOmittedSoundKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: 30\nsound_volume: 9\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, settings.SoundEnabled)
	assert.Zero(t, settings.SoundVolume)
}

func TestLoadSettingsInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: [1, 2"), 0o644))

	settings, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestWriteDefaultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	require.NoError(t, WriteDefaults(path, false))
	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)

	err = WriteDefaults(path, false)
	require.ErrorIs(t, err, ErrSettingsExist)
	require.NoError(t, WriteDefaults(path, true))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultPath("Pomodoro")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("Pomodoro", "settings.yaml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
