package board

import (
	"errors"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/session"
	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/ui/appearance"
)

var errInvalidNumber = errors.New("enter a number")

// zone renders one timer: title, digits or edit inputs, progress and status.
type zone struct {
	role       timer.Role
	background *canvas.Rectangle
	border     *canvas.Rectangle
	title      *canvas.Text
	clock      *canvas.Text
	status     *canvas.Text
	bar        *progressBar
	minutes    *widget.Entry
	seconds    *widget.Entry
	display    *fyne.Container
	editor     *fyne.Container
	content    *fyne.Container

	view feedback.View
}

func newZone(role timer.Role, digitSize float32, extra ...fyne.CanvasObject) *zone {
	background := canvas.NewRectangle(color.Transparent)
	background.CornerRadius = 10
	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = 10
	border.StrokeWidth = 1

	title := canvas.NewText(role.Label(), color.White)
	title.Alignment = fyne.TextAlignCenter
	title.TextSize = 12

	clock := canvas.NewText("00:00", color.White)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = digitSize

	status := canvas.NewText("", color.White)
	status.Alignment = fyne.TextAlignCenter
	status.TextStyle = fyne.TextStyle{Monospace: true}
	status.TextSize = 12

	minutes := widget.NewEntry()
	minutes.SetPlaceHolder("MM")
	seconds := widget.NewEntry()
	seconds.SetPlaceHolder("SS")

	bar := newProgressBar()

	display := container.NewCenter(clock)
	editorRow := []fyne.CanvasObject{layout.NewSpacer(), minutes, widget.NewLabel(":"), seconds}
	editorRow = append(editorRow, extra...)
	editorRow = append(editorRow, layout.NewSpacer())
	editor := container.NewHBox(editorRow...)
	editor.Hide()

	body := container.NewVBox(
		title,
		display,
		editor,
		container.NewPadded(bar.container),
		status,
	)
	content := container.NewStack(background, border, container.NewPadded(body))

	return &zone{
		role:       role,
		background: background,
		border:     border,
		title:      title,
		clock:      clock,
		status:     status,
		bar:        bar,
		minutes:    minutes,
		seconds:    seconds,
		display:    display,
		editor:     editor,
		content:    content,
	}
}

func (zone *zone) render(view feedback.View, palette appearance.Palette, editing bool) {
	zone.view = view
	snapshot := view.Timer
	descriptor := view.Descriptor

	zone.border.StrokeColor = palette.ZoneBorder
	zone.background.FillColor = palette.Zone
	if snapshot.Running {
		zone.background.FillColor = palette.StageBackground(descriptor.Color)
	}

	zone.clock.Text = snapshot.Clock()
	zone.title.Text = zone.role.Label()
	zone.title.Color = palette.TextSub
	switch {
	case !snapshot.Running:
		zone.clock.Color = palette.Edit
	case snapshot.Stage == timer.StageDone:
		zone.clock.Color = palette.Red
		zone.title.Text = "TIME'S UP"
		zone.title.Color = palette.Red
	default:
		zone.clock.Color = palette.Text
	}

	zone.status.Text = descriptor.StatusText
	zone.status.Color = palette.StageColor(descriptor.Color)

	if editing {
		zone.display.Hide()
		zone.editor.Show()
	} else {
		zone.editor.Hide()
		zone.display.Show()
	}

	zone.bar.update(snapshot, palette)
	zone.content.Refresh()
}

// pulse animates the red end marker and the done digits and background.
func (zone *zone) pulse(value float64, palette appearance.Palette) {
	if !zone.view.Descriptor.Pulse {
		return
	}
	zone.bar.pulse(value, palette)
	if zone.view.Timer.Stage != timer.StageDone {
		return
	}
	zone.clock.Color = appearance.Blend(palette.Red, palette.White, value)
	zone.background.FillColor = appearance.Blend(palette.BackgroundRed, palette.Zone, 1-value*0.6)
	canvas.Refresh(zone.clock)
	canvas.Refresh(zone.background)
}

func (zone *zone) fillDraft(draft session.Draft) {
	zone.minutes.SetText(draft.Minutes)
	zone.seconds.SetText(draft.Seconds)
	zone.minutes.SetValidationError(nil)
	zone.seconds.SetValidationError(nil)
}

func (zone *zone) draft() session.Draft {
	return session.Draft{Minutes: zone.minutes.Text, Seconds: zone.seconds.Text}
}

func (zone *zone) flag(inputErr *session.InputError, minutesField, secondsField string) {
	if inputErr.Has(minutesField) {
		zone.minutes.SetValidationError(errInvalidNumber)
	} else {
		zone.minutes.SetValidationError(nil)
	}
	if inputErr.Has(secondsField) {
		zone.seconds.SetValidationError(errInvalidNumber)
	} else {
		zone.seconds.SetValidationError(nil)
	}
}
