package preferences

import (
	"strconv"
	"time"

	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// ApplyFunc receives the raw minute fields. A non-nil error keeps the window open.
type ApplyFunc func(focus, short, long string) error

// Window handles the settings UI.
type Window struct {
	window   fyne.Window
	onApply  ApplyFunc
	focus    *widget.Entry
	short    *widget.Entry
	long     *widget.Entry
	apply    *widget.Button
	cancel   *widget.Button
	settings Settings
}

// New creates a settings window.
func New(app fyne.App, settings Settings, onApply ApplyFunc) *Window {
	window := app.NewWindow("Settings")

	prefs := &Window{
		window:  window,
		onApply: onApply,
		focus:   widget.NewEntry(),
		short:   widget.NewEntry(),
		long:    widget.NewEntry(),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Customize durations (minutes)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2,
			widget.NewLabel("Focus Duration:"), prefs.focus,
			widget.NewLabel("Short Break Duration:"), prefs.short,
			widget.NewLabel("Long Break Duration:"), prefs.long,
		),
	)

	prefs.apply = widget.NewButton("Apply", prefs.handleApply)
	prefs.apply.Importance = widget.HighImportance
	prefs.cancel = widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(layout.NewSpacer(), prefs.cancel, prefs.apply)

	window.SetContent(container.NewPadded(container.NewBorder(nil, buttons, nil, nil, form)))
	window.Resize(fyne.NewSize(360, 200))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(minutesText(settings.Focus))
	prefs.short.SetText(minutesText(settings.ShortBreak))
	prefs.long.SetText(minutesText(settings.LongBreak))
}

func (prefs *Window) handleApply() {
	if prefs.onApply != nil {
		if err := prefs.onApply(prefs.focus.Text, prefs.short.Text, prefs.long.Text); err != nil {
			return
		}
	}

	focus, short, long, err := session.ParseSettings(prefs.focus.Text, prefs.short.Text, prefs.long.Text)
	if err != nil {
		return
	}
	settings := prefs.settings
	settings.Focus = time.Duration(focus) * time.Minute
	settings.ShortBreak = time.Duration(short) * time.Minute
	settings.LongBreak = time.Duration(long) * time.Minute
	prefs.settings = settings
	prefs.window.Hide()
}

func minutesText(value time.Duration) string {
	return strconv.Itoa(int(value / time.Minute))
}
