package session

import "errors"

var (
	// ErrInvalidTransition indicates a mode switch while the timer is running or paused.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrBreakNotAllowed indicates the break eligibility rules rejected a break.
	ErrBreakNotAllowed = errors.New("break not allowed")
	// ErrInvalidSettings indicates a settings value outside 1..99 minutes or not an integer.
	ErrInvalidSettings = errors.New("invalid settings")
)

// User-facing rejection texts.
const (
	msgSwitchWhileActive = "Cannot switch mode while timer is running or paused."
	msgShortBreakDenied  = "Short break not allowed now. Finish a focus session first."
	msgLongBreakDenied   = "Long break not allowed now. Finish four focus sessions or use unused long breaks."
	msgSettingsRange     = "All durations must be integers between 1 and 99."
	msgSettingsNotInt    = "Please enter valid integer values."
)
