package settings

import (
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"podcasttimer/internal/cli"
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/storage"
	"podcasttimer/internal/ui/preferences"
)

func setupContext(t *testing.T) *cli.Context {
	t.Helper()
	return &cli.Context{ConfigDir: t.TempDir()}
}

func TestSettingsCmd_List(t *testing.T) {
	ctx := setupContext(t)
	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx := setupContext(t)

	onTop := true
	theme := "light"
	zoom := 1.5
	audio := false
	episode := 45*time.Minute + 30*time.Second
	speaker := 90 * time.Second
	cmd := &SettingsCmd{
		AlwaysOnTop: &onTop,
		Theme:       &theme,
		Zoom:        &zoom,
		Audio:       &audio,
		Episode:     &episode,
		Speaker:     &speaker,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	stored, err := storage.LoadSettings(ctx.ConfigDir)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	want := preferences.Settings{
		AlwaysOnTop:  true,
		Theme:        preferences.ThemeLight,
		Zoom:         1.5,
		AudioEnabled: false,
		Episode:      model.TimerDuration{Minutes: 45, Seconds: 30},
		Speaker:      model.TimerDuration{Minutes: 1, Seconds: 30},
	}
	if stored != want {
		t.Errorf("stored %+v, want %+v", stored, want)
	}
}

func TestSettingsCmd_InvalidValues(t *testing.T) {
	badTheme := "sepia"
	badZoom := 3.0
	nanZoom := math.NaN()
	posInfZoom := math.Inf(1)
	negInfZoom := math.Inf(-1)
	tooLong := 100 * time.Minute
	fractional := 1500 * time.Millisecond

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"theme", SettingsCmd{Theme: &badTheme}},
		{"zoom", SettingsCmd{Zoom: &badZoom}},
		{"NaN zoom", SettingsCmd{Zoom: &nanZoom}},
		{"infinite zoom", SettingsCmd{Zoom: &posInfZoom}},
		{"negative infinite zoom", SettingsCmd{Zoom: &negInfZoom}},
		{"episode too long", SettingsCmd{Episode: &tooLong}},
		{"fractional speaker", SettingsCmd{Speaker: &fractional}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupContext(t)
			err := tt.cmd.Run(ctx)
			if !errors.Is(err, errInvalidValue) {
				t.Fatalf("err = %v, want errInvalidValue", err)
			}
			stored, _ := storage.LoadSettings(ctx.ConfigDir)
			if stored != preferences.DefaultSettings() {
				t.Errorf("settings changed on error: %+v", stored)
			}
		})
	}
}

func TestSettingsCmd_Reset(t *testing.T) {
	ctx := setupContext(t)
	custom := preferences.DefaultSettings()
	custom.Theme = preferences.ThemeSystem
	custom.Episode = model.TimerDuration{Minutes: 60}
	if err := storage.SaveSettings(ctx.ConfigDir, custom); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cmd := &SettingsCmd{Reset: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings reset failed: %v", err)
	}
	stored, err := storage.LoadSettings(ctx.ConfigDir)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if stored != preferences.DefaultSettings() {
		t.Errorf("stored %+v, want defaults", stored)
	}
}

func TestSettingsCmd_CorruptFileStartsFromDefaults(t *testing.T) {
	ctx := setupContext(t)
	if err := os.WriteFile(storage.SettingsPath(ctx.ConfigDir), []byte("zoom: [broken\n"), 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	theme := "light"
	cmd := &SettingsCmd{Theme: &theme}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	stored, err := storage.LoadSettings(ctx.ConfigDir)
	if err != nil {
		t.Fatalf("file not repaired: %v", err)
	}
	want := preferences.DefaultSettings()
	want.Theme = preferences.ThemeLight
	if stored != want {
		t.Errorf("stored %+v, want %+v", stored, want)
	}
}

func TestSettingsCmd_ListCorruptFile(t *testing.T) {
	ctx := setupContext(t)
	if err := os.WriteFile(storage.SettingsPath(ctx.ConfigDir), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}
