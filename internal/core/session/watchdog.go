package session

import (
	"fmt"
	"time"
)

// pauseWatchdog counts seconds spent paused during a focus session.
type pauseWatchdog struct {
	active  bool
	seconds int
	limit   int
}

func newPauseWatchdog(timeout time.Duration) pauseWatchdog {
	limit := int(timeout / time.Second)
	if limit <= 0 {
		limit = 1
	}
	return pauseWatchdog{limit: limit}
}

func (watchdog *pauseWatchdog) start() {
	watchdog.active = true
	watchdog.seconds = 0
}

// stop is safe to call when the watchdog is not running.
func (watchdog *pauseWatchdog) stop() {
	watchdog.active = false
	watchdog.seconds = 0
}

// advance records one paused second and reports whether the limit was reached.
func (watchdog *pauseWatchdog) advance() bool {
	if !watchdog.active {
		return false
	}
	watchdog.seconds++
	return watchdog.seconds >= watchdog.limit
}

func autoResetMessage(timeout time.Duration) string {
	return fmt.Sprintf("Focus timer was paused for more than %s and has been reset automatically.", describeTimeout(timeout))
}

func describeTimeout(timeout time.Duration) string {
	if timeout >= time.Minute && timeout%time.Minute == 0 {
		minutes := int(timeout / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	seconds := int(timeout / time.Second)
	if seconds == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", seconds)
}
