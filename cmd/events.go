package main

import (
	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// eventView fans engine events out to the timer window, the tray and desktop notifications.
type eventView struct {
	app      fyne.App
	window   *timer.Window
	tray     *tray.Manager
	desktop  desktop.App
	icons    trayIcons
	counters session.Counters
	icon     fyne.Resource
}

func pumpEvents(events <-chan session.Event, view *eventView) {
	for event := range events {
		fyne.Do(func() {
			view.apply(event)
		})
	}
}

func (view *eventView) apply(event session.Event) {
	if view.window != nil {
		view.window.Apply(event)
	}
	if view.tray != nil {
		view.tray.Apply(event)
	}

	switch event.Type {
	case session.EventCountersChanged:
		if notice, ok := timer.CompletionNotice(view.counters, event.Counters); ok {
			view.notify(notice)
		}
		view.counters = event.Counters
	case session.EventAutoReset:
		view.notify(event.Message)
	case session.EventModeChanged, session.EventPhaseChanged:
		view.updateTrayIcon(event)
	}
}

func (view *eventView) notify(message string) {
	if view.app == nil {
		return
	}
	view.app.SendNotification(fyne.NewNotification(appName, message))
}

func (view *eventView) updateTrayIcon(event session.Event) {
	icon := trayIconFor(view.icons, event.Mode, event.Phase)
	if view.desktop == nil || icon == view.icon {
		return
	}
	view.icon = icon
	view.desktop.SetSystemTrayIcon(icon)
}

func trayIconFor(icons trayIcons, mode session.Mode, phase session.Phase) fyne.Resource {
	switch {
	case phase == session.PhasePaused:
		return icons.paused
	case mode != session.ModeFocus:
		return icons.rest
	default:
		return icons.focus
	}
}
