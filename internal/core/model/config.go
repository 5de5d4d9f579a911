package model

import (
	"fmt"
	"time"
)

// Bounds for a single configured mode duration, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 99
)

// DefaultPauseTimeout is how long a focus session may stay paused before it is reset.
const DefaultPauseTimeout = 120 * time.Second

// Durations contains the configured length of every session mode.
type Durations struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	PauseTimeout time.Duration
}

// DefaultDurations returns the classic 25/5/15 pomodoro schedule.
func DefaultDurations() Durations {
	return Durations{
		Focus:        25 * time.Minute,
		ShortBreak:   5 * time.Minute,
		LongBreak:    15 * time.Minute,
		PauseTimeout: DefaultPauseTimeout,
	}
}

// ValidMinutes reports whether minutes is an accepted mode duration.
func ValidMinutes(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// WithMinutes returns a copy of durations with the three mode lengths replaced.
// No field is changed unless all three values are valid.
func (durations Durations) WithMinutes(focus, short, long int) (Durations, error) {
	for _, minutes := range []int{focus, short, long} {
		if !ValidMinutes(minutes) {
			return durations, fmt.Errorf("duration %d out of range [%d,%d] minutes", minutes, MinMinutes, MaxMinutes)
		}
	}
	durations.Focus = time.Duration(focus) * time.Minute
	durations.ShortBreak = time.Duration(short) * time.Minute
	durations.LongBreak = time.Duration(long) * time.Minute
	return durations, nil
}

// Minutes returns the three mode lengths in whole minutes.
func (durations Durations) Minutes() (focus, short, long int) {
	return int(durations.Focus / time.Minute), int(durations.ShortBreak / time.Minute), int(durations.LongBreak / time.Minute)
}
