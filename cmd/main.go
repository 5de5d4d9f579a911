package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

const appName = "Pomodoro"

type options struct {
	configPath string
	focus      int
	short      int
	long       int
	mute       bool
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Desktop Pomodoro timer",
		Long:          "Alternate focus sessions with short and long breaks. Every fourth focus session earns a long break.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Settings file (default <user config dir>/Pomodoro/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.Flags().IntVar(&opts.focus, "focus", 0, "Focus duration in minutes (1-99)")
	root.Flags().IntVar(&opts.short, "short", 0, "Short break duration in minutes (1-99)")
	root.Flags().IntVar(&opts.long, "long", 0, "Long break duration in minutes (1-99)")
	root.Flags().BoolVar(&opts.mute, "mute", false, "Do not play the alert sound")

	root.AddCommand(newConfigCommand(opts))
	return root
}

func run(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if showErr := platform.RequestShow(appName); showErr != nil {
			logger.Warn("running instance did not answer", "error", showErr)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := resolveSettings(cmd, opts, logger)
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustIcon("tomato_active.svg"))

	player := audio.NewPlayer(resources.AlertSound(), audio.Options{
		Enabled: settings.SoundEnabled && !opts.mute,
		Volume:  settings.SoundVolume,
		Logger:  logger,
	})

	clock := session.NewTickerClock(time.Second)
	defer clock.Close()

	engine := session.New(settings.Durations(), session.Config{
		Clock:    clock,
		Notifier: player,
		Logger:   logger,
	})
	defer engine.Close()

	prefsWindow := preferences.New(fyneApp, settings, engine.ApplySettingsText)
	timerWindow := timer.New(fyneApp, engine, prefsWindow.Show, logger)
	timerWindow.Window().SetMaster()
	guard.Serve(func() {
		fyne.Do(timerWindow.Show)
	})

	view := &eventView{
		app:    fyneApp,
		window: timerWindow,
		icons:  loadTrayIcons(),
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		view.desktop = desktopApp
		view.tray = tray.New(desktopApp, tray.Callbacks{
			OnShow:   timerWindow.Show,
			OnToggle: engine.Toggle,
			OnReset:  engine.Reset,
			OnSwitchMode: func(mode session.Mode) {
				if err := engine.SwitchMode(mode); err != nil {
					logger.Debug("mode switch rejected", "mode", mode, "error", err)
				}
			},
			OnSettings: prefsWindow.Show,
			OnQuit:     fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(view.icons.focus)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	events := engine.Subscribe(64)
	go pumpEvents(events, view)
	engine.Refresh()

	durations := engine.Durations()
	focusMinutes, shortMinutes, longMinutes := durations.Minutes()
	logger.Info("pomodoro started",
		"focus_minutes", focusMinutes,
		"short_break_minutes", shortMinutes,
		"long_break_minutes", longMinutes,
		"pause_timeout", durations.PauseTimeout,
	)

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

// resolveSettings loads the settings file and applies command line overrides.
func resolveSettings(cmd *cobra.Command, opts *options, logger *slog.Logger) (preferences.Settings, error) {
	configPath, err := settingsPath(opts)
	if err != nil {
		return preferences.DefaultSettings(), err
	}

	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		logger.Warn("using default settings", "path", configPath, "error", err)
		settings = preferences.DefaultSettings()
	}

	overrides := []struct {
		flag   string
		value  int
		target *time.Duration
	}{
		{"focus", opts.focus, &settings.Focus},
		{"short", opts.short, &settings.ShortBreak},
		{"long", opts.long, &settings.LongBreak},
	}
	for _, override := range overrides {
		if !cmd.Flags().Changed(override.flag) {
			continue
		}
		if !model.ValidMinutes(override.value) {
			return settings, fmt.Errorf("--%s %d: %w", override.flag, override.value, session.ErrInvalidSettings)
		}
		*override.target = time.Duration(override.value) * time.Minute
	}
	return settings, nil
}

func settingsPath(opts *options) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return storage.DefaultPath(appName)
}

var errUnknownLogLevel = errors.New("unknown log level")

func newLogger(level string) (*slog.Logger, error) {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("%q: %w", level, errUnknownLogLevel)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	return slog.New(handler).With("app", appName), nil
}

type trayIcons struct {
	focus  fyne.Resource
	paused fyne.Resource
	rest   fyne.Resource
}

func loadTrayIcons() trayIcons {
	return trayIcons{
		focus:  resources.MustIcon("tomato_active.svg"),
		paused: resources.MustIcon("tomato_paused.svg"),
		rest:   resources.MustIcon("tomato_break.svg"),
	}
}
