package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"podcasttimer/internal/core/model"
)

func TestWindowApply(t *testing.T) {
	app := test.NewTempApp(t)
	settings := DefaultSettings()
	settings.Episode = model.TimerDuration{Minutes: 42}

	var applied []Settings
	prefs := New(app, settings, func(updated Settings) {
		applied = append(applied, updated)
	})

	if prefs.theme.Selected != "Dark" || prefs.zoomLabel.Text != "100%" || !prefs.audio.Checked {
		t.Fatalf("initial values: theme=%q zoom=%q audio=%v", prefs.theme.Selected, prefs.zoomLabel.Text, prefs.audio.Checked)
	}

	prefs.alwaysOnTop.SetChecked(true)
	prefs.theme.SetSelected("Light")
	prefs.zoom.SetValue(1.5)
	prefs.audio.SetChecked(false)
	prefs.handleApply()

	if len(applied) != 1 {
		t.Fatalf("apply called %d times", len(applied))
	}
	got := applied[0]
	want := Settings{
		AlwaysOnTop:  true,
		Theme:        ThemeLight,
		Zoom:         1.5,
		AudioEnabled: false,
		Episode:      model.TimerDuration{Minutes: 42},
		Speaker:      settings.Speaker,
	}
	if got != want {
		t.Errorf("applied %+v, want %+v", got, want)
	}
}

func TestFormatZoom(t *testing.T) {
	tests := map[float64]string{0.85: "85%", 1: "100%", 1.25: "125%", 2: "200%"}
	for value, want := range tests {
		if got := formatZoom(value); got != want {
			t.Errorf("formatZoom(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestWindowCancelRestores(t *testing.T) {
	app := test.NewTempApp(t)
	called := false
	prefs := New(app, DefaultSettings(), func(Settings) { called = true })

	prefs.theme.SetSelected("System")
	prefs.audio.SetChecked(false)
	prefs.Hide()

	if called {
		t.Error("cancel must not apply")
	}
	if prefs.theme.Selected != "Dark" || !prefs.audio.Checked {
		t.Errorf("values not restored: theme=%q audio=%v", prefs.theme.Selected, prefs.audio.Checked)
	}
}

func TestThemeLabels(t *testing.T) {
	for _, theme := range []Theme{ThemeDark, ThemeLight, ThemeSystem} {
		if got := themeFromLabel(themeLabel(theme)); got != theme {
			t.Errorf("round trip of %q = %q", theme, got)
		}
	}
}
