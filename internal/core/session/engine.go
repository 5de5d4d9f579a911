package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Every fourth completed focus session earns a long break.
const focusSessionsPerLongBreak = 4

// Notifier receives side effects the engine requests.
// PlayAlertSound must return without waiting for playback.
type Notifier interface {
	PlayAlertSound()
}

// Config contains the collaborators of an Engine.
type Config struct {
	Clock    Clock
	Notifier Notifier
	Logger   *slog.Logger
}

// Engine is the pomodoro session state machine.
type Engine struct {
	mu        sync.Mutex
	durations model.Durations
	mode      Mode
	phase     Phase
	total     time.Duration
	remaining time.Duration
	counters  Counters
	watchdog  pauseWatchdog

	// longBreakPaid is set when entering the current long break consumed a credit.
	longBreakPaid bool

	clock     Clock
	ownsClock bool
	// armedAt is the clock generation of the current Arm, 0 while disarmed.
	armedAt   uint64
	notifier  Notifier
	logger    *slog.Logger
	events    []chan Event
	closed    bool
}

// New creates an idle Engine in focus mode.
func New(durations model.Durations, config Config) *Engine {
	if durations.PauseTimeout <= 0 {
		durations.PauseTimeout = model.DefaultPauseTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	engine := &Engine{
		durations: durations,
		mode:      ModeFocus,
		phase:     PhaseIdle,
		total:     durations.Focus,
		remaining: durations.Focus,
		// Both breaks are selectable before the first focus session.
		counters:  Counters{LastSessionWasFocus: true},
		watchdog:  newPauseWatchdog(durations.PauseTimeout),
		clock:     config.Clock,
		notifier:  config.Notifier,
		logger:    config.Logger,
	}
	if engine.clock == nil {
		engine.clock = NewTickerClock(time.Second)
		engine.ownsClock = true
	}
	engine.clock.OnTick(engine.clockTick)
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Mode:              engine.mode,
		Phase:             engine.phase,
		Total:             engine.total,
		Remaining:         engine.remaining,
		Counters:          engine.counters,
		SecondsSincePause: engine.watchdog.seconds,
		WatchdogActive:    engine.watchdog.active,
	}
}

// Durations returns the configured mode durations.
func (engine *Engine) Durations() model.Durations {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.durations
}

// Refresh re-emits the full state to observers.
func (engine *Engine) Refresh() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.emitLocked(engine.eventLocked(EventModeChanged))
	engine.emitLocked(engine.eventLocked(EventPhaseChanged))
	engine.emitLocked(engine.eventLocked(EventCountersChanged))
	engine.emitLocked(engine.eventLocked(EventDisplay))
}

// Start begins or resumes the countdown. It does nothing while running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.phase == PhaseRunning {
		return
	}
	engine.startLocked()
}

// Pause freezes the countdown.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.phase != PhaseRunning {
		return
	}
	engine.pauseLocked()
}

func (engine *Engine) pauseLocked() {
	engine.phase = PhasePaused
	if engine.mode == ModeFocus {
		// The clock keeps ticking to drive the watchdog.
		engine.watchdog.start()
		engine.armLocked()
	} else {
		engine.disarmLocked()
	}
	engine.logger.Debug("session paused", "mode", engine.mode, "remaining", engine.remaining)
	engine.emitLocked(engine.eventLocked(EventPhaseChanged))
}

// Resume continues a paused countdown.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.phase != PhasePaused {
		return
	}
	engine.startLocked()
}

// Toggle starts an idle timer, pauses a running one and resumes a paused one.
func (engine *Engine) Toggle() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	switch engine.phase {
	case PhaseRunning:
		engine.pauseLocked()
	default:
		engine.startLocked()
	}
}

// Reset stops the countdown and restores the full duration of the current mode.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.resetLocked()
}

// SwitchMode selects a new mode. It is only allowed while idle, and break
// modes must satisfy the eligibility rules.
func (engine *Engine) SwitchMode(mode Mode) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.phase != PhaseIdle {
		return engine.rejectLocked(msgSwitchWhileActive, fmt.Errorf("switch to %s while %s: %w", mode, engine.phase, ErrInvalidTransition))
	}

	consumeCredit := false
	switch mode {
	case ModeFocus:
	case ModeShortBreak:
		if !engine.canStartShortBreakLocked() {
			return engine.rejectLocked(msgShortBreakDenied, fmt.Errorf("switch to %s: %w", mode, ErrBreakNotAllowed))
		}
	case ModeLongBreak:
		if !engine.canStartLongBreakLocked() {
			return engine.rejectLocked(msgLongBreakDenied, fmt.Errorf("switch to %s: %w", mode, ErrBreakNotAllowed))
		}
		consumeCredit = engine.counters.FocusStreak%focusSessionsPerLongBreak != 0 && engine.counters.UnusedLongBreakCredits > 0
	default:
		return fmt.Errorf("unknown mode %q: %w", mode, ErrInvalidTransition)
	}

	engine.advanceLocked(mode)
	engine.counters.LastSessionWasFocus = false
	if consumeCredit {
		engine.counters.UnusedLongBreakCredits = max(0, engine.counters.UnusedLongBreakCredits-1)
		engine.longBreakPaid = true
	}
	engine.emitLocked(engine.eventLocked(EventCountersChanged))
	return nil
}

// CanStartShortBreak reports whether a short break may be selected now.
func (engine *Engine) CanStartShortBreak() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.canStartShortBreakLocked()
}

// CanStartLongBreak reports whether a long break may be selected now.
func (engine *Engine) CanStartLongBreak() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.canStartLongBreakLocked()
}

// Tick advances the engine by one second.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.tickLocked()
}

// clockTick is the clock callback. Ticks from an earlier arm are dropped.
func (engine *Engine) clockTick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if generation == 0 || generation != engine.armedAt {
		engine.logger.Debug("stale tick dropped", "generation", generation, "armed_at", engine.armedAt)
		return
	}
	engine.tickLocked()
}

func (engine *Engine) tickLocked() {
	if engine.closed {
		return
	}

	switch engine.phase {
	case PhaseRunning:
		engine.advanceCountdownLocked()
	case PhasePaused:
		if engine.watchdog.advance() {
			engine.resetLocked()
			engine.logger.Info("paused focus session reset", "timeout", engine.durations.PauseTimeout)
			event := engine.eventLocked(EventAutoReset)
			event.Message = autoResetMessage(engine.durations.PauseTimeout)
			engine.emitLocked(event)
		}
	}
}

// Close disarms the clock and closes all observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.disarmLocked()
	if closer, ok := engine.clock.(interface{ Close() }); ok && engine.ownsClock {
		closer.Close()
	}
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) armLocked() {
	engine.armedAt = engine.clock.Arm()
}

func (engine *Engine) disarmLocked() {
	engine.clock.Disarm()
	engine.armedAt = 0
}

func (engine *Engine) startLocked() {
	engine.watchdog.stop()
	if engine.remaining <= 0 {
		engine.remaining = engine.total
	}
	engine.phase = PhaseRunning
	engine.armLocked()
	engine.logger.Debug("session started", "mode", engine.mode, "remaining", engine.remaining)
	engine.emitLocked(engine.eventLocked(EventPhaseChanged))
}

func (engine *Engine) resetLocked() {
	engine.disarmLocked()
	engine.watchdog.stop()
	engine.remaining = engine.total
	engine.phase = PhaseIdle
	engine.emitLocked(engine.eventLocked(EventPhaseChanged))
	engine.emitLocked(engine.eventLocked(EventDisplay))
}

func (engine *Engine) advanceCountdownLocked() {
	engine.remaining -= time.Second
	if engine.remaining < 0 {
		engine.remaining = 0
	}
	engine.emitLocked(engine.eventLocked(EventDisplay))
	if engine.remaining > 0 {
		return
	}

	engine.disarmLocked()
	engine.phase = PhaseIdle
	if engine.notifier != nil {
		engine.notifier.PlayAlertSound()
	}
	engine.completeLocked()
}

// completeLocked applies the counters for the mode that just finished and
// moves to the next mode.
func (engine *Engine) completeLocked() {
	finished := engine.mode
	next := ModeFocus

	switch finished {
	case ModeFocus:
		engine.counters.FocusStreak++
		engine.counters.FocusCompleted++
		engine.counters.LastSessionWasFocus = true
		if engine.counters.FocusStreak%focusSessionsPerLongBreak == 0 {
			engine.counters.UnusedLongBreakCredits++
			next = ModeLongBreak
		} else {
			next = ModeShortBreak
		}
	case ModeShortBreak:
		engine.counters.ShortBreakCompleted++
		engine.counters.LastSessionWasFocus = false
	case ModeLongBreak:
		engine.counters.LongBreakCompleted++
		engine.counters.LastSessionWasFocus = false
		if !engine.longBreakPaid {
			engine.counters.UnusedLongBreakCredits = max(0, engine.counters.UnusedLongBreakCredits-1)
		}
	}

	engine.logger.Info("session completed", "mode", finished, "next", next, "streak", engine.counters.FocusStreak)
	engine.emitLocked(engine.eventLocked(EventCountersChanged))
	engine.advanceLocked(next)
}

// advanceLocked enters mode in the idle phase without the idle-only guard.
func (engine *Engine) advanceLocked(mode Mode) {
	engine.disarmLocked()
	engine.watchdog.stop()
	engine.longBreakPaid = false
	engine.mode = mode
	engine.total = engine.durationLocked(mode)
	engine.remaining = engine.total
	engine.phase = PhaseIdle

	engine.emitLocked(engine.eventLocked(EventModeChanged))
	engine.emitLocked(engine.eventLocked(EventPhaseChanged))
	engine.emitLocked(engine.eventLocked(EventDisplay))
}

func (engine *Engine) durationLocked(mode Mode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return engine.durations.ShortBreak
	case ModeLongBreak:
		return engine.durations.LongBreak
	default:
		return engine.durations.Focus
	}
}

func (engine *Engine) canStartShortBreakLocked() bool {
	return engine.counters.LastSessionWasFocus
}

func (engine *Engine) canStartLongBreakLocked() bool {
	return engine.counters.LastSessionWasFocus &&
		(engine.counters.FocusStreak%focusSessionsPerLongBreak == 0 || engine.counters.UnusedLongBreakCredits > 0)
}

func (engine *Engine) rejectLocked(message string, err error) error {
	engine.logger.Debug("command rejected", "error", err)
	event := engine.eventLocked(EventRejected)
	event.Message = message
	engine.emitLocked(event)
	return err
}

func (engine *Engine) progressLocked() float64 {
	if engine.total <= 0 {
		return 0
	}
	progress := float64(engine.total-engine.remaining) / float64(engine.total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (engine *Engine) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Mode:      engine.mode,
		Phase:     engine.phase,
		Remaining: engine.remaining,
		Total:     engine.total,
		Progress:  engine.progressLocked(),
		Counters:  engine.counters,
		At:        time.Now(),
	}
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
			engine.logger.Debug("event dropped", "type", event.Type)
		}
	}
}
