package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"podcasttimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// Pointer fields distinguish a missing key from an explicit zero.
type yamlSettings struct {
	AlwaysOnTop  *bool    `yaml:"always_on_top"`
	Theme        *string  `yaml:"theme"`
	Zoom         *float64 `yaml:"zoom"`
	AudioEnabled *bool    `yaml:"audio_enabled"`
	TopMinutes   *int     `yaml:"top_minutes"`
	TopSeconds   *int     `yaml:"top_seconds"`
	BotMinutes   *int     `yaml:"bot_minutes"`
	BotSeconds   *int     `yaml:"bot_seconds"`
}

// SettingsPath returns the location of the settings file inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned. On any
// other error the defaults are returned together with the error.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(SettingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(configDir string, settings preferences.Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	theme := string(settings.Theme)
	fileData := yamlSettings{
		AlwaysOnTop:  &settings.AlwaysOnTop,
		Theme:        &theme,
		Zoom:         &settings.Zoom,
		AudioEnabled: &settings.AudioEnabled,
		TopMinutes:   &settings.Episode.Minutes,
		TopSeconds:   &settings.Episode.Seconds,
		BotMinutes:   &settings.Speaker.Minutes,
		BotSeconds:   &settings.Speaker.Seconds,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file behind.
	path := SettingsPath(configDir)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.AlwaysOnTop != nil {
		settings.AlwaysOnTop = *fileData.AlwaysOnTop
	}
	if fileData.Theme != nil {
		settings.Theme = preferences.Theme(*fileData.Theme)
	}
	if fileData.Zoom != nil {
		settings.Zoom = *fileData.Zoom
	}
	if fileData.AudioEnabled != nil {
		settings.AudioEnabled = *fileData.AudioEnabled
	}

	if fileData.TopMinutes != nil {
		settings.Episode.Minutes = *fileData.TopMinutes
	}
	if fileData.TopSeconds != nil {
		settings.Episode.Seconds = *fileData.TopSeconds
	}
	if fileData.BotMinutes != nil {
		settings.Speaker.Minutes = *fileData.BotMinutes
	}
	if fileData.BotSeconds != nil {
		settings.Speaker.Seconds = *fileData.BotSeconds
	}
}
