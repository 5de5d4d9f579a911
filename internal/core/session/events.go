package session

import "time"

// Mode identifies the kind of interval being timed.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Label returns the human readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}

// Phase is the run state of the countdown.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// Counters holds the completed session tallies for the process lifetime.
type Counters struct {
	FocusCompleted         int
	ShortBreakCompleted    int
	LongBreakCompleted     int
	FocusStreak            int
	UnusedLongBreakCredits int
	LastSessionWasFocus    bool
}

// EventType defines the type of engine event.
type EventType string

const (
	EventDisplay         EventType = "display"
	EventModeChanged     EventType = "mode_changed"
	EventPhaseChanged    EventType = "phase_changed"
	EventCountersChanged EventType = "counters_changed"
	EventRejected        EventType = "rejected"
	EventAutoReset       EventType = "auto_reset"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	Mode      Mode
	Phase     Phase
	Remaining time.Duration
	Total     time.Duration
	Progress  float64
	Counters  Counters
	Message   string
	At        time.Time
}

// Clock splits Remaining into whole minutes and seconds.
func (event Event) Clock() (minutes, seconds int) {
	total := int(event.Remaining / time.Second)
	if total < 0 {
		total = 0
	}
	return total / 60, total % 60
}

// Snapshot is a copy of the engine state.
type Snapshot struct {
	Mode              Mode
	Phase             Phase
	Total             time.Duration
	Remaining         time.Duration
	Counters          Counters
	SecondsSincePause int
	WatchdogActive    bool
}
