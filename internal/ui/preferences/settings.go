package preferences

import (
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/timer"
)

// Theme selects the colour variant of the presentations.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Zoom limits for the interface scale.
const (
	MinZoom = 0.85
	MaxZoom = 2.0
)

// ValidZoom reports whether zoom lies in [MinZoom, MaxZoom]. NaN is invalid.
func ValidZoom(zoom float64) bool {
	return zoom >= MinZoom && zoom <= MaxZoom
}

// Valid reports whether theme is one of the known variants.
func (theme Theme) Valid() bool {
	switch theme {
	case ThemeDark, ThemeLight, ThemeSystem:
		return true
	}
	return false
}

// Settings defines editable user preferences.
type Settings struct {
	AlwaysOnTop  bool
	Theme        Theme
	Zoom         float64
	AudioEnabled bool

	Episode model.TimerDuration
	Speaker model.TimerDuration
}

// DefaultSettings returns default settings for the podcast timer.
func DefaultSettings() Settings {
	return Settings{
		AlwaysOnTop:  false,
		Theme:        ThemeDark,
		Zoom:         1.0,
		AudioEnabled: true,
		Episode:      model.TimerDuration{Minutes: 20},
		Speaker:      model.TimerDuration{Minutes: 2},
	}
}

// Normalize replaces out-of-range values with defaults and clamps durations.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if !settings.Theme.Valid() {
		settings.Theme = defaults.Theme
	}
	if !ValidZoom(settings.Zoom) {
		settings.Zoom = defaults.Zoom
	}
	settings.Episode = clampDuration(settings.Episode)
	settings.Speaker = clampDuration(settings.Speaker)
	return settings
}

// SessionConfig converts settings to the session controller configuration.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		Episode:      settings.Episode,
		Speaker:      settings.Speaker,
		AudioEnabled: settings.AudioEnabled,
	}
}

// WithSessionConfig returns a copy with durations and audio taken from config.
func (settings Settings) WithSessionConfig(config model.SessionConfig) Settings {
	settings.Episode = clampDuration(config.Episode)
	settings.Speaker = clampDuration(config.Speaker)
	settings.AudioEnabled = config.AudioEnabled
	return settings
}

func clampDuration(duration model.TimerDuration) model.TimerDuration {
	return model.TimerDuration{
		Minutes: clamp(duration.Minutes, 0, timer.MaxMinutes),
		Seconds: clamp(duration.Seconds, 0, timer.MaxSeconds),
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
