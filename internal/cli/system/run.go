package system

import (
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"podcasttimer/internal/app"
	"podcasttimer/internal/cli"
	"podcasttimer/internal/core/session"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/ui/appearance"
	"podcasttimer/internal/ui/board"
	"podcasttimer/internal/ui/preferences"
	"podcasttimer/internal/ui/tray"
	"podcasttimer/resources"
)

const (
	appID       = "com.podcasttimer.app"
	eventBuffer = 16
)

type RunCmd struct{}

func (c *RunCmd) Run(ctx *cli.Context) error {
	guard, err := ctx.AcquireInstance()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	runtime := app.New(app.Options{ConfigDir: ctx.ConfigDir, TickInterval: time.Second})
	defer runtime.Close()
	controller := runtime.Controller()
	settings := runtime.Settings()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	boardWindow := board.New(fyneApp, controller, appearance.NewTheme(settings.Theme, settings.Zoom))
	defer boardWindow.Close()
	boardWindow.SetAlwaysOnTop(settings.AlwaysOnTop)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := runtime.ApplySettings(updated); err != nil {
			logger.Warn("settings rejected", "err", err)
			return
		}
		applied := runtime.Settings()
		boardWindow.ApplyTheme(appearance.NewTheme(applied.Theme, applied.Zoom))
		boardWindow.SetAlwaysOnTop(applied.AlwaysOnTop)
	})

	openSettings := func() {
		if !controller.SettingsAvailable() {
			logger.Debug("settings unavailable while a session is active")
			return
		}
		prefsWindow.UpdateSettings(runtime.Settings())
		prefsWindow.Show()
	}
	boardWindow.SetOnSettings(openSettings)
	boardWindow.Bind(controller.Subscribe(eventBuffer))

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		bindTray(desktopApp, fyneApp, boardWindow, controller, openSettings)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	logger.Info("desktop frontend started", "config_dir", ctx.ConfigDir)
	boardWindow.Show()
	fyneApp.Run()
	return nil
}

func bindTray(host desktop.App, fyneApp fyne.App, boardWindow *board.Window, controller *session.Controller, openSettings func()) {
	trayManager := tray.New(host, tray.Icons{
		Active: resources.MustIcon(resources.AppIcon),
		Paused: resources.MustIcon(resources.PausedIcon),
	}, tray.Callbacks{
		OnShow: boardWindow.Show,
		OnToggle: func() {
			var err error
			switch controller.State() {
			case session.StateIdle:
				err = controller.Start()
			case session.StateRunning:
				err = controller.Pause()
			case session.StatePaused:
				err = controller.Resume()
			}
			if err != nil {
				logger.Debug("tray toggle rejected", "err", err)
			}
		},
		OnReset: func() {
			if err := controller.Reset(); err != nil {
				logger.Debug("tray reset rejected", "err", err)
			}
		},
		OnNext: func() {
			if err := controller.Next(); err != nil {
				logger.Debug("tray next rejected", "err", err)
			}
		},
		OnPreferences: openSettings,
		OnQuit:        fyneApp.Quit,
	})

	boardWindow.Window().SetCloseIntercept(boardWindow.Window().Hide)

	events := controller.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			snapshot := event.Snapshot
			fyne.Do(func() {
				trayManager.SetState(snapshot.State, snapshot.State == session.StateIdle && !snapshot.EditPending)
				trayManager.SetStatus(tray.Describe(snapshot))
			})
		}
	}()
}
