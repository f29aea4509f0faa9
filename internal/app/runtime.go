package app

import (
	"fmt"
	"sync"
	"time"

	"podcasttimer/internal/audio"
	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/session"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/storage"
	"podcasttimer/internal/ui/preferences"
)

// Options configures a Runtime.
type Options struct {
	ConfigDir    string
	TickInterval time.Duration
	// Player overrides the default audio output.
	Player feedback.Player
}

// Runtime owns the session controller, the audio dispatcher and the stored
// preferences shared by the frontends.
type Runtime struct {
	mu         sync.Mutex
	configDir  string
	settings   preferences.Settings
	controller *session.Controller
	dispatcher *feedback.Dispatcher
}

// New loads the stored settings and builds an idle session from them.
// Unreadable settings fall back to defaults.
func New(options Options) *Runtime {
	settings, err := storage.LoadSettings(options.ConfigDir)
	if err != nil {
		logger.Warn("load settings, using defaults", "err", err)
	}

	player := options.Player
	if player == nil {
		player = audio.NewTonePlayer()
	}
	dispatcher := feedback.NewDispatcher(player)
	controller := session.New(settings.SessionConfig(), session.Config{TickInterval: options.TickInterval}, dispatcher)

	runtime := &Runtime{
		configDir:  options.ConfigDir,
		settings:   settings,
		controller: controller,
		dispatcher: dispatcher,
	}
	controller.SetPersister(runtime)

	logger.Info("session ready", "session", controller.ID(), "config_dir", options.ConfigDir,
		"episode", settings.Episode, "speaker", settings.Speaker, "audio", settings.AudioEnabled)
	return runtime
}

// Controller returns the session controller.
func (runtime *Runtime) Controller() *session.Controller {
	return runtime.controller
}

// Settings returns a copy of the current preferences.
func (runtime *Runtime) Settings() preferences.Settings {
	runtime.mu.Lock()
	defer runtime.mu.Unlock()
	return runtime.settings
}

// Persist merges the session configuration into the preferences and saves them.
func (runtime *Runtime) Persist(config model.SessionConfig) {
	runtime.mu.Lock()
	runtime.settings = runtime.settings.WithSessionConfig(config)
	settings := runtime.settings
	runtime.mu.Unlock()

	if err := storage.SaveSettings(runtime.configDir, settings); err != nil {
		logger.Warn("save settings", "err", err)
	}
}

// ApplySettings applies edited preferences. It fails while a session is
// active or an edit is pending, leaving the preferences untouched.
func (runtime *Runtime) ApplySettings(updated preferences.Settings) error {
	updated = updated.Normalize()

	runtime.mu.Lock()
	previous := runtime.settings
	runtime.settings.AlwaysOnTop = updated.AlwaysOnTop
	runtime.settings.Theme = updated.Theme
	runtime.settings.Zoom = updated.Zoom
	runtime.mu.Unlock()

	if err := runtime.controller.ApplyConfig(updated.SessionConfig()); err != nil {
		runtime.mu.Lock()
		runtime.settings = previous
		runtime.mu.Unlock()
		return fmt.Errorf("apply settings: %w", err)
	}
	logger.Info("settings applied", "theme", updated.Theme, "zoom", updated.Zoom,
		"always_on_top", updated.AlwaysOnTop, "audio", updated.AudioEnabled)
	return nil
}

// Close stops the session and waits for queued audio cues.
func (runtime *Runtime) Close() {
	runtime.controller.Close()
	runtime.dispatcher.Wait()
}
