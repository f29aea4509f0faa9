package appearance

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"podcasttimer/internal/ui/preferences"
)

// Theme applies the selected variant and zoom on top of the default fyne theme.
type Theme struct {
	base     fyne.Theme
	selected preferences.Theme
	zoom     float32
}

var _ fyne.Theme = (*Theme)(nil)

// NewTheme creates a theme for the given preference values.
func NewTheme(selected preferences.Theme, zoom float64) *Theme {
	if !preferences.ValidZoom(zoom) {
		zoom = 1
	}
	return &Theme{base: theme.DefaultTheme(), selected: selected, zoom: float32(zoom)}
}

// Zoom returns the size scale.
func (custom *Theme) Zoom() float32 {
	return custom.zoom
}

// Palette returns the palette for the variant fyne is rendering with.
func (custom *Theme) Palette(system fyne.ThemeVariant) Palette {
	return PaletteFor(Variant(custom.selected, system))
}

// Color overrides the background and accent colours with the palette.
func (custom *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	resolved := Variant(custom.selected, variant)
	palette := PaletteFor(resolved)
	switch name {
	case theme.ColorNameBackground:
		return palette.Background
	case theme.ColorNameForeground:
		return palette.Text
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return palette.Blue
	case theme.ColorNameSuccess:
		return palette.Green
	case theme.ColorNameWarning:
		return palette.Yellow
	case theme.ColorNameError:
		return palette.Red
	case theme.ColorNameInputBackground:
		return palette.Zone
	case theme.ColorNameInputBorder:
		return palette.Edit
	}
	return custom.base.Color(name, resolved)
}

func (custom *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return custom.base.Font(style)
}

func (custom *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return custom.base.Icon(name)
}

// Size scales every theme size by the zoom factor.
func (custom *Theme) Size(name fyne.ThemeSizeName) float32 {
	return custom.base.Size(name) * custom.zoom
}
