package preferences

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const zoomStep = 0.05

var themeOptions = []string{"Light", "Dark", "System"}

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onApply     func(Settings)
	alwaysOnTop *widget.Check
	theme       *widget.RadioGroup
	zoom        *widget.Slider
	zoomLabel   *widget.Label
	audio       *widget.Check
}

// New creates a preferences window. onApply receives the edited settings;
// timer durations are passed through unchanged.
func New(app fyne.App, settings Settings, onApply func(Settings)) *Window {
	window := app.NewWindow("Podcast Timer Settings")

	alwaysOnTop := widget.NewCheck("Always on top", nil)
	theme := widget.NewRadioGroup(themeOptions, nil)
	theme.Horizontal = true
	theme.Required = true

	zoomLabel := widget.NewLabel("")
	zoom := widget.NewSlider(MinZoom, MaxZoom)
	zoom.Step = zoomStep
	zoom.OnChanged = func(value float64) {
		zoomLabel.SetText(formatZoom(value))
	}

	audio := widget.NewCheck("Audio cues", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("SETTINGS", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		alwaysOnTop,
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel("Theme"), layout.NewSpacer(), theme),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Zoom"), zoomLabel, zoom),
		widget.NewSeparator(),
		audio,
	)

	applyButton := widget.NewButton("APPLY", nil)
	applyButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("CANCEL", nil)
	buttons := container.NewHBox(layout.NewSpacer(), applyButton, cancelButton, layout.NewSpacer())

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))

	prefs := &Window{
		window:      window,
		onApply:     onApply,
		alwaysOnTop: alwaysOnTop,
		theme:       theme,
		zoom:        zoom,
		zoomLabel:   zoomLabel,
		audio:       audio,
	}
	prefs.UpdateSettings(settings)

	applyButton.OnTapped = prefs.handleApply
	cancelButton.OnTapped = prefs.Hide
	window.SetCloseIntercept(prefs.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide closes the window without applying.
func (prefs *Window) Hide() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Hide()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Normalize()
	prefs.settings = settings
	prefs.alwaysOnTop.SetChecked(settings.AlwaysOnTop)
	prefs.theme.SetSelected(themeLabel(settings.Theme))
	prefs.zoom.SetValue(settings.Zoom)
	prefs.zoomLabel.SetText(formatZoom(settings.Zoom))
	prefs.audio.SetChecked(settings.AudioEnabled)
}

// Collect returns the settings currently shown in the window.
func (prefs *Window) Collect() Settings {
	settings := prefs.settings
	settings.AlwaysOnTop = prefs.alwaysOnTop.Checked
	settings.Theme = themeFromLabel(prefs.theme.Selected)
	settings.Zoom = math.Round(prefs.zoom.Value*100) / 100
	settings.AudioEnabled = prefs.audio.Checked
	return settings.Normalize()
}

func (prefs *Window) handleApply() {
	settings := prefs.Collect()
	prefs.settings = settings
	if prefs.onApply != nil {
		prefs.onApply(settings)
	}
	prefs.window.Hide()
}

func formatZoom(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value*100)))
}

func themeLabel(theme Theme) string {
	switch theme {
	case ThemeLight:
		return themeOptions[0]
	case ThemeSystem:
		return themeOptions[2]
	default:
		return themeOptions[1]
	}
}

func themeFromLabel(label string) Theme {
	switch label {
	case themeOptions[0]:
		return ThemeLight
	case themeOptions[2]:
		return ThemeSystem
	default:
		return ThemeDark
	}
}
