package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines user preferences loaded at startup.
type Settings struct {
	Focus        time.Duration
	ShortBreak   time.Duration
	LongBreak    time.Duration
	PauseTimeout time.Duration

	SoundEnabled bool
	// SoundVolume is a base-2 gain; 0 plays the alert unchanged.
	SoundVolume float64
}

// Volume bounds accepted for SoundVolume.
const (
	MinSoundVolume = -5.0
	MaxSoundVolume = 1.0
)

// DefaultSettings returns default settings for Pomodoro.
func DefaultSettings() Settings {
	durations := model.DefaultDurations()
	return Settings{
		Focus:        durations.Focus,
		ShortBreak:   durations.ShortBreak,
		LongBreak:    durations.LongBreak,
		PauseTimeout: durations.PauseTimeout,
		SoundEnabled: true,
		SoundVolume:  0,
	}
}

// Durations converts settings to the session engine durations.
func (settings Settings) Durations() model.Durations {
	return model.Durations{
		Focus:        settings.Focus,
		ShortBreak:   settings.ShortBreak,
		LongBreak:    settings.LongBreak,
		PauseTimeout: settings.PauseTimeout,
	}
}
