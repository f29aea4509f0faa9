package appearance

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/ui/preferences"
)

// Palette holds the colours of one theme variant.
type Palette struct {
	Background       color.NRGBA
	BackgroundYellow color.NRGBA
	BackgroundRed    color.NRGBA
	Zone             color.NRGBA
	ZoneBorder       color.NRGBA
	Title            color.NRGBA
	Text             color.NRGBA
	TextSub          color.NRGBA
	Green            color.NRGBA
	Yellow           color.NRGBA
	Red              color.NRGBA
	Blue             color.NRGBA
	Orange           color.NRGBA
	Edit             color.NRGBA
	BarTrack         color.NRGBA
	White            color.NRGBA
}

var (
	darkPalette = Palette{
		Background:       rgb(0x0f, 0x0f, 0x1a),
		BackgroundYellow: rgb(0x2a, 0x22, 0x00),
		BackgroundRed:    rgb(0x2a, 0x0a, 0x00),
		Zone:             rgb(0x1a, 0x1a, 0x2e),
		ZoneBorder:       rgb(0x2a, 0x2a, 0x40),
		Title:            rgb(0x1c, 0x1c, 0x2e),
		Text:             rgb(0xf0, 0xf0, 0xf0),
		TextSub:          rgb(0x88, 0x88, 0x88),
		Green:            rgb(0x2e, 0xcc, 0x71),
		Yellow:           rgb(0xf1, 0xc4, 0x0f),
		Red:              rgb(0xe7, 0x4c, 0x3c),
		Blue:             rgb(0x34, 0x98, 0xdb),
		Orange:           rgb(0xe6, 0x7e, 0x22),
		Edit:             rgb(0x7e, 0xb3, 0xff),
		BarTrack:         rgb(0x2a, 0x2a, 0x3a),
		White:            rgb(0xff, 0xff, 0xff),
	}
	lightPalette = Palette{
		Background:       rgb(0xf4, 0xf4, 0xf8),
		BackgroundYellow: rgb(0xff, 0xfb, 0xe6),
		BackgroundRed:    rgb(0xff, 0xf0, 0xee),
		Zone:             rgb(0xff, 0xff, 0xff),
		ZoneBorder:       rgb(0xdd, 0xdd, 0xee),
		Title:            rgb(0xe8, 0xe8, 0xf0),
		Text:             rgb(0x1a, 0x1a, 0x2e),
		TextSub:          rgb(0x66, 0x66, 0x88),
		Green:            rgb(0x27, 0xae, 0x60),
		Yellow:           rgb(0xb8, 0x86, 0x0b),
		Red:              rgb(0xc0, 0x39, 0x2b),
		Blue:             rgb(0x29, 0x80, 0xb9),
		Orange:           rgb(0xe6, 0x7e, 0x22),
		Edit:             rgb(0x25, 0x63, 0xeb),
		BarTrack:         rgb(0xd0, 0xd0, 0xe0),
		White:            rgb(0xff, 0xff, 0xff),
	}
)

// Variant resolves the preference to a concrete fyne variant. System follows
// the variant reported by the platform.
func Variant(selected preferences.Theme, system fyne.ThemeVariant) fyne.ThemeVariant {
	switch selected {
	case preferences.ThemeLight:
		return theme.VariantLight
	case preferences.ThemeSystem:
		return system
	default:
		return theme.VariantDark
	}
}

// PaletteFor returns the palette of a resolved variant.
func PaletteFor(variant fyne.ThemeVariant) Palette {
	if variant == theme.VariantLight {
		return lightPalette
	}
	return darkPalette
}

// StageColor returns the accent colour of a stage.
func (palette Palette) StageColor(stage timer.Stage) color.NRGBA {
	switch stage {
	case timer.StageYellow:
		return palette.Yellow
	case timer.StageRed, timer.StageDone:
		return palette.Red
	default:
		return palette.Green
	}
}

// StageBackground returns the zone background of a stage.
func (palette Palette) StageBackground(stage timer.Stage) color.NRGBA {
	switch stage {
	case timer.StageYellow:
		return palette.BackgroundYellow
	case timer.StageRed, timer.StageDone:
		return palette.BackgroundRed
	default:
		return palette.Zone
	}
}

// TrackColor returns the progress bar track colour of a stage.
func (palette Palette) TrackColor(stage timer.Stage) color.NRGBA {
	switch stage {
	case timer.StageYellow:
		return Blend(palette.Yellow, palette.Zone, 0.85)
	case timer.StageRed:
		return Blend(palette.Red, palette.Zone, 0.85)
	case timer.StageDone:
		return Blend(palette.Red, palette.Zone, 0.80)
	default:
		return palette.BarTrack
	}
}

// Blend mixes from towards to by t in [0,1].
func Blend(from, to color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return color.NRGBA{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: mix(from.A, to.A),
	}
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
