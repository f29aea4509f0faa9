package settings

import (
	"errors"
	"fmt"
	"time"

	"podcasttimer/internal/cli"
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/storage"
	"podcasttimer/internal/ui/preferences"
)

var errInvalidValue = errors.New("invalid value")

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore default settings."`

	AlwaysOnTop *bool          `help:"Keep the timer window above other windows."`
	Theme       *string        `help:"Colour theme: dark, light or system."`
	Zoom        *float64       `help:"Interface scale between 0.85 and 2.0."`
	Audio       *bool          `help:"Play audio cues on stage changes."`
	Episode     *time.Duration `help:"Episode timer length, e.g. 20m or 45m30s."`
	Speaker     *time.Duration `help:"Speaker timer length, e.g. 2m or 90s."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.Reset {
		if err := storage.SaveSettings(ctx.ConfigDir, preferences.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings restored to defaults.")
		return nil
	}

	settings, err := storage.LoadSettings(ctx.ConfigDir)
	if err != nil {
		logger.Warn("load settings, using defaults", "err", err)
		fmt.Printf("Warning: %v. Using defaults.\n", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Settings File:   %s\n", storage.SettingsPath(ctx.ConfigDir))
		fmt.Printf("  Always On Top:   %v\n", settings.AlwaysOnTop)
		fmt.Printf("  Theme:           %s\n", settings.Theme)
		fmt.Printf("  Zoom:            %.2f\n", settings.Zoom)
		fmt.Printf("  Audio Cues:      %v\n", settings.AudioEnabled)
		fmt.Println("\nTimers:")
		fmt.Printf("  Episode:         %s\n", settings.Episode)
		fmt.Printf("  Speaker:         %s\n", settings.Speaker)
		return nil
	}

	updated, changed, err := c.apply(settings)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := storage.SaveSettings(ctx.ConfigDir, updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) apply(settings preferences.Settings) (preferences.Settings, bool, error) {
	changed := false
	if c.AlwaysOnTop != nil {
		settings.AlwaysOnTop = *c.AlwaysOnTop
		changed = true
	}
	if c.Theme != nil {
		theme := preferences.Theme(*c.Theme)
		if !theme.Valid() {
			return settings, false, fmt.Errorf("theme %q: %w", *c.Theme, errInvalidValue)
		}
		settings.Theme = theme
		changed = true
	}
	if c.Zoom != nil {
		if !preferences.ValidZoom(*c.Zoom) {
			return settings, false, fmt.Errorf("zoom %.2f: %w", *c.Zoom, errInvalidValue)
		}
		settings.Zoom = *c.Zoom
		changed = true
	}
	if c.Audio != nil {
		settings.AudioEnabled = *c.Audio
		changed = true
	}
	if c.Episode != nil {
		duration, err := timerDuration("episode", *c.Episode)
		if err != nil {
			return settings, false, err
		}
		settings.Episode = duration
		changed = true
	}
	if c.Speaker != nil {
		duration, err := timerDuration("speaker", *c.Speaker)
		if err != nil {
			return settings, false, err
		}
		settings.Speaker = duration
		changed = true
	}
	return settings, changed, nil
}

func timerDuration(name string, value time.Duration) (model.TimerDuration, error) {
	limit := time.Duration(timer.MaxMinutes)*time.Minute + time.Duration(timer.MaxSeconds)*time.Second
	if value < 0 || value > limit || value%time.Second != 0 {
		return model.TimerDuration{}, fmt.Errorf("%s length %s: %w", name, value, errInvalidValue)
	}
	return model.DurationFromSeconds(int(value / time.Second)), nil
}
