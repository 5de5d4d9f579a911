package timer

import (
	"image/color"
	"log/slog"

	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the command surface of the session engine used by the window.
type Controller interface {
	Toggle()
	Reset()
	SwitchMode(mode session.Mode) error
}

const messageTitle = "Pomodoro Timer"

var (
	focusColor = color.NRGBA{R: 229, G: 72, B: 59, A: 255}
	breakColor = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	pauseColor = color.NRGBA{R: 154, G: 143, B: 141, A: 255}
)

// Window is the main timer window.
type Window struct {
	window      fyne.Window
	controller  Controller
	logger      *slog.Logger
	modeLabel   *canvas.Text
	timerLabel  *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	resetButton *widget.Button
	settings    *widget.Button
	modeButtons map[session.Mode]*widget.Button
	counters    [3]*widget.Label
	mode        session.Mode
	phase       session.Phase
}

// New creates the timer window. onSettings is invoked by the settings button.
func New(app fyne.App, controller Controller, onSettings func(), logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := app.NewWindow(messageTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	modeLabel := canvas.NewText(session.ModeFocus.Label(), focusColor)
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	modeLabel.TextSize = 20

	timerLabel := canvas.NewText(FormatClock(0), focusColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	timerWindow := &Window{
		window:      window,
		controller:  controller,
		logger:      logger,
		modeLabel:   modeLabel,
		timerLabel:  timerLabel,
		progress:    widget.NewProgressBar(),
		modeButtons: make(map[session.Mode]*widget.Button),
		mode:        session.ModeFocus,
		phase:       session.PhaseIdle,
	}
	timerWindow.progress.TextFormatter = func() string { return "" }

	for _, mode := range []session.Mode{session.ModeFocus, session.ModeShortBreak, session.ModeLongBreak} {
		timerWindow.modeButtons[mode] = widget.NewButton(mode.Label(), func() {
			timerWindow.switchMode(mode)
		})
	}

	timerWindow.startButton = widget.NewButton(StartLabel(session.PhaseIdle), controller.Toggle)
	timerWindow.startButton.Importance = widget.HighImportance
	timerWindow.resetButton = widget.NewButton("Reset", controller.Reset)
	timerWindow.resetButton.Disable()

	for i, text := range CounterLabels(session.Counters{}) {
		timerWindow.counters[i] = widget.NewLabel(text)
	}

	timerWindow.settings = widget.NewButton("Settings", func() {
		if onSettings != nil {
			onSettings()
		}
	})

	modes := container.NewGridWithColumns(3,
		timerWindow.modeButtons[session.ModeFocus],
		timerWindow.modeButtons[session.ModeShortBreak],
		timerWindow.modeButtons[session.ModeLongBreak],
	)
	controls := container.NewGridWithColumns(2, timerWindow.startButton, timerWindow.resetButton)
	counters := container.NewVBox(timerWindow.counters[0], timerWindow.counters[1], timerWindow.counters[2])
	footer := container.NewHBox(layout.NewSpacer(), timerWindow.settings)

	content := container.NewVBox(
		modes,
		container.NewPadded(modeLabel),
		container.NewPadded(timerLabel),
		timerWindow.progress,
		controls,
		widget.NewSeparator(),
		counters,
		footer,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 420))

	return timerWindow
}

// Window returns the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Apply renders an engine event. It must run on the fyne goroutine.
func (timerWindow *Window) Apply(event session.Event) {
	timerWindow.mode = event.Mode
	timerWindow.phase = event.Phase

	switch event.Type {
	case session.EventDisplay:
		timerWindow.setRemaining(event)
	case session.EventModeChanged:
		timerWindow.modeLabel.Text = event.Mode.Label()
		timerWindow.setRemaining(event)
	case session.EventPhaseChanged:
		timerWindow.startButton.SetText(StartLabel(event.Phase))
		if event.Phase == session.PhaseIdle {
			timerWindow.resetButton.Disable()
		} else {
			timerWindow.resetButton.Enable()
		}
	case session.EventCountersChanged:
		for i, text := range CounterLabels(event.Counters) {
			timerWindow.counters[i].SetText(text)
		}
	case session.EventRejected, session.EventAutoReset:
		timerWindow.ShowMessage(event.Message)
	}
	timerWindow.applyColor()
}

// ShowMessage displays an informational dialog over the timer window.
func (timerWindow *Window) ShowMessage(message string) {
	dialog.ShowInformation(messageTitle, message, timerWindow.window)
}

func (timerWindow *Window) switchMode(mode session.Mode) {
	if err := timerWindow.controller.SwitchMode(mode); err != nil {
		timerWindow.logger.Debug("mode switch rejected", "mode", mode, "error", err)
	}
}

func (timerWindow *Window) setRemaining(event session.Event) {
	timerWindow.timerLabel.Text = FormatClock(event.Remaining)
	timerWindow.timerLabel.Refresh()
	timerWindow.progress.SetValue(event.Progress)
}

func (timerWindow *Window) applyColor() {
	textColor := focusColor
	switch {
	case timerWindow.phase == session.PhasePaused:
		textColor = pauseColor
	case timerWindow.mode != session.ModeFocus:
		textColor = breakColor
	}
	timerWindow.modeLabel.Color = textColor
	timerWindow.timerLabel.Color = textColor
	timerWindow.modeLabel.Refresh()
	timerWindow.timerLabel.Refresh()
}
