package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ErrSettingsExist is returned when writing defaults over an existing file.
var ErrSettingsExist = errors.New("settings file already exists")

type yamlSettings struct {
	FocusMinutes        int      `yaml:"focus_minutes"`
	ShortBreakMinutes   int      `yaml:"short_break_minutes"`
	LongBreakMinutes    int      `yaml:"long_break_minutes"`
	PauseTimeoutSeconds int      `yaml:"pause_timeout_seconds"`
	SoundEnabled        *bool    `yaml:"sound_enabled"`
	SoundVolume         *float64 `yaml:"sound_volume"`
}

// LoadSettings reads user preferences from the YAML file at configPath.
// If the file does not exist, default settings are returned.
func LoadSettings(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// WriteDefaults writes a settings file holding the default values.
// An existing file is only replaced when force is set.
func WriteDefaults(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s: %w", configPath, ErrSettingsExist)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings := preferences.DefaultSettings()
	fileData := yamlSettings{
		FocusMinutes:        int(settings.Focus / time.Minute),
		ShortBreakMinutes:   int(settings.ShortBreak / time.Minute),
		LongBreakMinutes:    int(settings.LongBreak / time.Minute),
		PauseTimeoutSeconds: int(settings.PauseTimeout / time.Second),
		SoundEnabled:        &settings.SoundEnabled,
		SoundVolume:         &settings.SoundVolume,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if model.ValidMinutes(fileData.FocusMinutes) {
		settings.Focus = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if model.ValidMinutes(fileData.ShortBreakMinutes) {
		settings.ShortBreak = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if model.ValidMinutes(fileData.LongBreakMinutes) {
		settings.LongBreak = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.PauseTimeoutSeconds > 0 {
		settings.PauseTimeout = time.Duration(fileData.PauseTimeoutSeconds) * time.Second
	}

	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if volume := fileData.SoundVolume; volume != nil && *volume >= preferences.MinSoundVolume && *volume <= preferences.MaxSoundVolume {
		settings.SoundVolume = *volume
	}
}
