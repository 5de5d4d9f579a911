package timer

import (
	"fmt"
	"time"

	"pomodoro/internal/core/session"
)

// FormatClock renders a remaining duration as "MM : SS".
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d : %02d", seconds/60, seconds%60)
}

// StartLabel is the caption of the start/pause button for a phase.
func StartLabel(phase session.Phase) string {
	switch phase {
	case session.PhaseRunning:
		return "Pause"
	case session.PhasePaused:
		return "Resume"
	default:
		return "Start"
	}
}

// CounterLabels returns the focus, short break and long break tallies.
func CounterLabels(counters session.Counters) [3]string {
	return [3]string{
		fmt.Sprintf("Focus Sessions: %d", counters.FocusCompleted),
		fmt.Sprintf("Short Breaks: %d", counters.ShortBreakCompleted),
		fmt.Sprintf("Long Breaks: %d", counters.LongBreakCompleted),
	}
}

// CompletionNotice describes what finished between two counter updates.
func CompletionNotice(previous, current session.Counters) (string, bool) {
	switch {
	case current.FocusCompleted > previous.FocusCompleted:
		if current.UnusedLongBreakCredits > previous.UnusedLongBreakCredits {
			return "Focus session complete. Time for a long break!", true
		}
		return "Focus session complete. Time for a short break.", true
	case current.ShortBreakCompleted > previous.ShortBreakCompleted:
		return "Short break over. Back to focus.", true
	case current.LongBreakCompleted > previous.LongBreakCompleted:
		return "Long break over. Back to focus.", true
	default:
		return "", false
	}
}
