package preferences

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fyne.io/fyne/v2/test"
)

func TestWindowPrefillsMinutes(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), nil)

	assert.Equal(t, "25", prefs.focus.Text)
	assert.Equal(t, "5", prefs.short.Text)
	assert.Equal(t, "15", prefs.long.Text)
}

func TestWindowApplyPassesRawFields(t *testing.T) {
	app := test.NewTempApp(t)
	var got []string
	prefs := New(app, DefaultSettings(), func(focus, short, long string) error {
		got = []string{focus, short, long}
		return nil
	})

	prefs.focus.SetText("50")
	prefs.short.SetText("10")
	prefs.long.SetText(" 30 ")
	test.Tap(prefs.apply)

	assert.Equal(t, []string{"50", "10", " 30 "}, got)
	assert.Equal(t, 50*time.Minute, prefs.settings.Focus)
	assert.Equal(t, 10*time.Minute, prefs.settings.ShortBreak)
	assert.Equal(t, 30*time.Minute, prefs.settings.LongBreak)
}

func TestWindowIgnoresUnparsableFieldsAfterApply(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), func(string, string, string) error { return nil })

	prefs.focus.SetText("40")
	prefs.short.SetText("five")
	test.Tap(prefs.apply)

	assert.Equal(t, DefaultSettings(), prefs.settings, "all three fields are stored or none")
}

func TestWindowRejectedApplyKeepsSettings(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), func(string, string, string) error {
		return errors.New("rejected")
	})

	prefs.focus.SetText("0")
	test.Tap(prefs.apply)
	assert.Equal(t, 25*time.Minute, prefs.settings.Focus)

	test.Tap(prefs.cancel)
	assert.Equal(t, "25", prefs.focus.Text, "cancel restores the last applied values")
}

func TestSettingsDurations(t *testing.T) {
	settings := DefaultSettings()
	settings.PauseTimeout = time.Minute

	durations := settings.Durations()
	assert.Equal(t, 25*time.Minute, durations.Focus)
	assert.Equal(t, 5*time.Minute, durations.ShortBreak)
	assert.Equal(t, 15*time.Minute, durations.LongBreak)
	assert.Equal(t, time.Minute, durations.PauseTimeout)
}
