package tray

import (
	"fmt"
	"time"

	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggle     func()
	OnReset      func()
	OnSwitchMode func(session.Mode)
	OnSettings   func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	modeItems  []*fyne.MenuItem
	mode       session.Mode
	phase      session.Phase
	remaining  time.Duration
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		mode:      session.ModeFocus,
		phase:     session.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.resetItem.Disabled = true

	for _, mode := range []session.Mode{session.ModeFocus, session.ModeShortBreak, session.ModeLongBreak} {
		manager.modeItems = append(manager.modeItems, fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		}))
	}

	manager.refreshMenu()
	return manager
}

// Apply updates the tray from an engine event.
func (manager *Manager) Apply(event session.Event) {
	switch event.Type {
	case session.EventDisplay, session.EventModeChanged, session.EventPhaseChanged:
	default:
		return
	}
	manager.mode = event.Mode
	manager.phase = event.Phase
	manager.remaining = event.Remaining

	manager.toggleItem.Label = toggleLabel(event.Phase)
	manager.resetItem.Disabled = event.Phase == session.PhaseIdle
	manager.statusItem.Label = statusLabel(manager.mode, manager.phase, manager.remaining)
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show Timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
	}
	items = append(items, manager.modeItems...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() {
			if manager.callbacks.OnSettings != nil {
				manager.callbacks.OnSettings()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodoro", items...))
}

func toggleLabel(phase session.Phase) string {
	switch phase {
	case session.PhaseRunning:
		return "Pause"
	case session.PhasePaused:
		return "Resume"
	default:
		return "Start"
	}
}

func statusLabel(mode session.Mode, phase session.Phase, remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	status := fmt.Sprintf("Status: %s %02d:%02d", mode.Label(), seconds/60, seconds%60)
	if phase == session.PhasePaused {
		status += " (paused)"
	}
	return status
}
