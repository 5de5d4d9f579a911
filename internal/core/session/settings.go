package session

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplySettings replaces the focus, short break and long break durations,
// given in minutes. Either all three values are stored or none.
// An idle engine switches to focus with the new duration at once; a running
// or paused countdown keeps its current total until the next mode switch.
func (engine *Engine) ApplySettings(focusMinutes, shortMinutes, longMinutes int) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	durations, err := engine.durations.WithMinutes(focusMinutes, shortMinutes, longMinutes)
	if err != nil {
		return engine.rejectLocked(msgSettingsRange, fmt.Errorf("%w: %v", ErrInvalidSettings, err))
	}
	engine.durations = durations
	engine.logger.Info("settings applied", "focus", focusMinutes, "short_break", shortMinutes, "long_break", longMinutes)

	if engine.phase == PhaseIdle {
		engine.advanceLocked(ModeFocus)
	}
	return nil
}

// ApplySettingsText parses and applies durations typed into text fields.
func (engine *Engine) ApplySettingsText(focus, short, long string) error {
	focusMinutes, shortMinutes, longMinutes, err := ParseSettings(focus, short, long)
	if err != nil {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.rejectLocked(msgSettingsNotInt, err)
	}
	return engine.ApplySettings(focusMinutes, shortMinutes, longMinutes)
}

// ParseSettings converts three minute values from text. Range checks are
// left to ApplySettings.
func ParseSettings(focus, short, long string) (focusMinutes, shortMinutes, longMinutes int, err error) {
	values := make([]int, 0, 3)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"focus", focus},
		{"short break", short},
		{"long break", long},
	} {
		parsed, parseErr := strconv.Atoi(strings.TrimSpace(field.value))
		if parseErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %s minutes %q is not an integer", ErrInvalidSettings, field.name, field.value)
		}
		values = append(values, parsed)
	}
	return values[0], values[1], values[2], nil
}
