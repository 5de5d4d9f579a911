package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/session"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25 : 00", FormatClock(25*time.Minute))
	assert.Equal(t, "04 : 09", FormatClock(4*time.Minute+9*time.Second))
	assert.Equal(t, "99 : 00", FormatClock(99*time.Minute))
	assert.Equal(t, "00 : 00", FormatClock(-time.Second))
}

func TestStartLabel(t *testing.T) {
	assert.Equal(t, "Start", StartLabel(session.PhaseIdle))
	assert.Equal(t, "Pause", StartLabel(session.PhaseRunning))
	assert.Equal(t, "Resume", StartLabel(session.PhasePaused))
}

func TestCounterLabels(t *testing.T) {
	labels := CounterLabels(session.Counters{FocusCompleted: 3, ShortBreakCompleted: 2, LongBreakCompleted: 1})
	assert.Equal(t, [3]string{"Focus Sessions: 3", "Short Breaks: 2", "Long Breaks: 1"}, labels)
}

func TestCompletionNotice(t *testing.T) {
	before := session.Counters{FocusCompleted: 3, FocusStreak: 3}

	notice, ok := CompletionNotice(before, session.Counters{FocusCompleted: 4, FocusStreak: 4, UnusedLongBreakCredits: 1})
	assert.True(t, ok)
	assert.Contains(t, notice, "long break")

	notice, ok = CompletionNotice(session.Counters{}, session.Counters{FocusCompleted: 1})
	assert.True(t, ok)
	assert.Contains(t, notice, "short break")

	notice, ok = CompletionNotice(before, session.Counters{FocusCompleted: 3, ShortBreakCompleted: 1})
	assert.True(t, ok)
	assert.Equal(t, "Short break over. Back to focus.", notice)

	_, ok = CompletionNotice(before, before)
	assert.False(t, ok)
}
