package board

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/ui/appearance"
)

const (
	yellowMarker = float32(0.75)
	redMarker    = float32(0.90)

	barMinWidth  = float32(160)
	barMinHeight = float32(28)
)

// progressBar draws elapsed progress with markers at the stage thresholds.
type progressBar struct {
	track     *canvas.Rectangle
	fill      *canvas.Rectangle
	yellow    *canvas.Rectangle
	red       *canvas.Rectangle
	tip       *canvas.Rectangle
	container *fyne.Container

	fraction float32
	stage    timer.Stage
}

func newProgressBar() *progressBar {
	bar := &progressBar{
		track:  canvas.NewRectangle(color.Transparent),
		fill:   canvas.NewRectangle(color.Transparent),
		yellow: canvas.NewRectangle(color.Transparent),
		red:    canvas.NewRectangle(color.Transparent),
		tip:    canvas.NewRectangle(color.Transparent),
	}
	bar.container = container.New(&barLayout{bar: bar}, bar.track, bar.fill, bar.yellow, bar.red, bar.tip)
	return bar
}

func (bar *progressBar) update(snapshot timer.Snapshot, palette appearance.Palette) {
	bar.fraction = float32(snapshot.ElapsedFraction())
	bar.stage = snapshot.Stage

	bar.track.FillColor = palette.TrackColor(snapshot.Stage)
	bar.fill.FillColor = palette.StageColor(snapshot.Stage)
	bar.yellow.FillColor = palette.Yellow
	bar.red.FillColor = palette.Red
	bar.tip.FillColor = color.Transparent

	bar.yellow.Hidden = snapshot.Stage != timer.StageGreat
	bar.red.Hidden = snapshot.Stage != timer.StageGreat && snapshot.Stage != timer.StageYellow
	bar.tip.Hidden = snapshot.Stage != timer.StageRed

	bar.container.Refresh()
}

// pulse recolours the end marker while the timer is red.
func (bar *progressBar) pulse(value float64, palette appearance.Palette) {
	if bar.stage != timer.StageRed {
		return
	}
	bar.tip.FillColor = appearance.Blend(palette.Red, palette.Zone, 1-value*0.9)
	canvas.Refresh(bar.tip)
}

type barLayout struct {
	bar *progressBar
}

func (layout *barLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	scale := size.Height / barMinHeight
	barHeight := 12 * scale
	top := (size.Height - barHeight) / 2
	radius := barHeight / 2

	layout.bar.track.CornerRadius = radius
	layout.bar.fill.CornerRadius = radius
	layout.bar.track.Move(fyne.NewPos(0, top))
	layout.bar.track.Resize(fyne.NewSize(size.Width, barHeight))

	fraction := layout.bar.fraction
	if fraction > 1 {
		fraction = 1
	}
	fillWidth := size.Width * fraction
	if fillWidth <= 2 {
		fillWidth = 0
	}
	layout.bar.fill.Move(fyne.NewPos(0, top))
	layout.bar.fill.Resize(fyne.NewSize(fillWidth, barHeight))

	markerExtra := 5 * scale
	markerSize := fyne.NewSize(3*scale, barHeight+markerExtra*2)
	layout.bar.yellow.Move(fyne.NewPos(size.Width*yellowMarker, top-markerExtra))
	layout.bar.yellow.Resize(markerSize)
	layout.bar.red.Move(fyne.NewPos(size.Width*redMarker, top-markerExtra))
	layout.bar.red.Resize(markerSize)

	tipExtra := 7 * scale
	tipWidth := 5 * scale
	layout.bar.tip.Move(fyne.NewPos(size.Width-tipWidth, top-tipExtra))
	layout.bar.tip.Resize(fyne.NewSize(tipWidth, barHeight+tipExtra*2))
}

func (layout *barLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(barMinWidth, barMinHeight)
}
