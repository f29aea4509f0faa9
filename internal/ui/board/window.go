package board

import (
	"context"
	"errors"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"podcasttimer/internal/core/session"
	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/logger"
	"podcasttimer/internal/ui/animation"
	"podcasttimer/internal/ui/appearance"
)

// Commands is the subset of the session controller the board drives.
type Commands interface {
	Start() error
	Pause() error
	Resume() error
	Reset() error
	Next() error
	BeginEdit() (session.EditRequest, error)
	CommitEdit(request session.EditRequest) error
	CancelEdit() error
	Snapshot() session.Snapshot
}

const (
	baseWidth  = float32(560)
	baseHeight = float32(565)

	startLabel  = "▶  START"
	pauseLabel  = "⏸  PAUSE"
	resumeLabel = "▶  RESUME"
)

// Window is the main dual-timer window.
type Window struct {
	app      fyne.App
	window   fyne.Window
	commands Commands
	theme    *appearance.Theme
	palette  appearance.Palette
	pulse    *animation.Engine

	backdrop       *canvas.Rectangle
	header         *canvas.Text
	episode        *zone
	speaker        *zone
	startButton    *widget.Button
	resetButton    *widget.Button
	nextButton     *widget.Button
	editButton     *widget.Button
	saveButton     *widget.Button
	cancelButton   *widget.Button
	settingsButton *widget.Button

	snapshot    session.Snapshot
	editing     bool
	alwaysOnTop bool
	onSettings  func()
}

// New creates the board window for commands.
func New(app fyne.App, commands Commands, customTheme *appearance.Theme) *Window {
	window := app.NewWindow("Podcast Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetMaster()

	board := &Window{
		app:      app,
		window:   window,
		commands: commands,
		theme:    customTheme,
		backdrop: canvas.NewRectangle(color.Transparent),
	}
	board.pulse = animation.New(animation.DefaultConfig(), func(value float64) {
		fyne.Do(func() {
			board.applyPulse(value)
		})
	})

	board.header = canvas.NewText("PODCAST  TIMER", color.White)
	board.header.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	board.header.TextSize = 12

	board.saveButton = widget.NewButton("SAVE", board.handleSave)
	board.saveButton.Importance = widget.SuccessImportance
	board.cancelButton = widget.NewButton("CANCEL", board.handleCancelEdit)

	board.episode = newZone(timer.RoleEpisode, 64, board.saveButton, board.cancelButton)
	board.speaker = newZone(timer.RoleSpeaker, 44)
	for _, entry := range []*widget.Entry{board.episode.minutes, board.episode.seconds, board.speaker.minutes, board.speaker.seconds} {
		entry.OnSubmitted = func(string) { board.handleSave() }
	}

	board.startButton = widget.NewButton(startLabel, board.handleStart)
	board.startButton.Importance = widget.SuccessImportance
	board.resetButton = widget.NewButton("■  STOP / RESET", board.handleReset)
	board.resetButton.Importance = widget.DangerImportance
	board.nextButton = widget.NewButton("↺  NEXT / RESET", board.handleNext)
	board.nextButton.Importance = widget.HighImportance
	board.editButton = widget.NewButton("✎  EDIT", board.handleEdit)
	board.settingsButton = widget.NewButton("Settings", board.handleSettings)
	board.settingsButton.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, board.editButton, board.settingsButton, container.NewCenter(board.header))
	episodeControls := container.NewGridWithColumns(2, board.startButton, board.resetButton)
	speakerControls := container.NewGridWithColumns(1, board.nextButton)

	body := container.NewVBox(
		header,
		board.episode.content,
		episodeControls,
		widget.NewSeparator(),
		board.speaker.content,
		speakerControls,
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(board.backdrop, container.NewPadded(body)))
	window.Canvas().SetOnTypedKey(board.handleKey)

	board.applyPalette()
	board.render(commands.Snapshot())
	board.resize()
	return board
}

// Window returns the underlying fyne window.
func (board *Window) Window() fyne.Window {
	return board.window
}

// Show displays the board.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
	board.applyAlwaysOnTop(board.alwaysOnTop)
}

// SetOnSettings sets the handler of the Settings button.
func (board *Window) SetOnSettings(handler func()) {
	board.onSettings = handler
}

// SetAlwaysOnTop asks the window manager to keep the board above other windows.
func (board *Window) SetAlwaysOnTop(enabled bool) {
	board.alwaysOnTop = enabled
	board.applyAlwaysOnTop(enabled)
}

// ApplyTheme switches the palette and zoom.
func (board *Window) ApplyTheme(customTheme *appearance.Theme) {
	board.theme = customTheme
	board.applyPalette()
	board.render(board.snapshot)
	board.resize()
}

// Bind renders events from the session until the channel is closed.
func (board *Window) Bind(events <-chan session.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				board.apply(event)
			})
		}
		board.pulse.Stop()
	}()
}

// Close stops the pulse animation.
func (board *Window) Close() {
	board.pulse.Stop()
}

func (board *Window) apply(event session.Event) {
	if event.Type == session.EventEdit {
		switch event.Edit {
		case session.EditBegin:
			if !board.editing {
				board.showEditor(event.Drafts)
			}
		case session.EditCommit, session.EditCancel:
			board.editing = false
		case session.EditRejected:
			board.flagInput(event.Err)
		}
	}
	board.render(event.Snapshot)
}

func (board *Window) render(snapshot session.Snapshot) {
	board.snapshot = snapshot
	if !snapshot.EditPending {
		board.editing = false
	}
	frame := snapshot.Frame()
	board.episode.render(frame.Episode, board.palette, board.editing)
	board.speaker.render(frame.Speaker, board.palette, board.editing)

	board.backdrop.FillColor = board.palette.Background
	if frame.Episode.Descriptor.Backdrop && snapshot.Episode.Running && snapshot.Episode.Stage != timer.StageGreat {
		board.backdrop.FillColor = appearance.Blend(board.palette.Background, board.palette.StageBackground(snapshot.Episode.Stage), 0.5)
	}
	canvas.Refresh(board.backdrop)

	switch snapshot.State {
	case session.StateRunning:
		board.startButton.SetText(pauseLabel)
		board.startButton.Importance = widget.WarningImportance
	case session.StatePaused:
		board.startButton.SetText(resumeLabel)
		board.startButton.Importance = widget.SuccessImportance
	default:
		board.startButton.SetText(startLabel)
		board.startButton.Importance = widget.SuccessImportance
	}
	board.startButton.Refresh()

	idle := snapshot.State == session.StateIdle
	setEnabled(board.startButton, !snapshot.EditPending)
	setEnabled(board.resetButton, !idle)
	setEnabled(board.nextButton, snapshot.State == session.StateRunning)
	setEnabled(board.editButton, idle && !snapshot.EditPending)
	setEnabled(board.settingsButton, idle && !snapshot.EditPending)
	if board.editing {
		board.saveButton.Show()
		board.cancelButton.Show()
	} else {
		board.saveButton.Hide()
		board.cancelButton.Hide()
	}

	needsPulse := snapshot.State == session.StateRunning &&
		(frame.Episode.Descriptor.Pulse || frame.Speaker.Descriptor.Pulse)
	switch {
	case needsPulse && !board.pulse.Running():
		board.pulse.Start(context.Background())
	case !needsPulse && board.pulse.Running():
		board.pulse.Stop()
	}
}

func (board *Window) applyPulse(value float64) {
	if board.snapshot.State != session.StateRunning {
		return
	}
	board.episode.pulse(value, board.palette)
	board.speaker.pulse(value, board.palette)
}

func (board *Window) applyPalette() {
	board.app.Settings().SetTheme(board.theme)
	board.palette = board.theme.Palette(board.app.Settings().ThemeVariant())
	board.header.Color = board.palette.TextSub
	board.header.Refresh()
}

func (board *Window) resize() {
	zoom := board.theme.Zoom()
	board.window.Resize(fyne.NewSize(baseWidth*zoom, baseHeight*zoom))
}

func (board *Window) showEditor(drafts session.EditRequest) {
	board.editing = true
	board.episode.fillDraft(drafts.Episode)
	board.speaker.fillDraft(drafts.Speaker)
	board.render(board.snapshot)
	board.window.Canvas().Focus(board.episode.minutes)
}

func (board *Window) flagInput(err error) {
	var inputErr *session.InputError
	if !errors.As(err, &inputErr) {
		return
	}
	board.episode.flag(inputErr, session.FieldEpisodeMinutes, session.FieldEpisodeSeconds)
	board.speaker.flag(inputErr, session.FieldSpeakerMinutes, session.FieldSpeakerSeconds)
}

func (board *Window) handleStart() {
	var err error
	switch board.commands.Snapshot().State {
	case session.StateIdle:
		err = board.commands.Start()
	case session.StateRunning:
		err = board.commands.Pause()
	case session.StatePaused:
		err = board.commands.Resume()
	}
	board.report("start/pause", err)
}

func (board *Window) handleReset() {
	board.report("reset", board.commands.Reset())
}

func (board *Window) handleNext() {
	board.report("next speaker", board.commands.Next())
}

func (board *Window) handleEdit() {
	drafts, err := board.commands.BeginEdit()
	if err != nil {
		board.report("begin edit", err)
		return
	}
	board.snapshot = board.commands.Snapshot()
	board.showEditor(drafts)
}

func (board *Window) handleSave() {
	if !board.editing {
		return
	}
	err := board.commands.CommitEdit(session.EditRequest{
		Episode: board.episode.draft(),
		Speaker: board.speaker.draft(),
	})
	if err != nil {
		board.flagInput(err)
		board.report("commit edit", err)
		return
	}
	board.editing = false
	board.render(board.commands.Snapshot())
}

func (board *Window) handleCancelEdit() {
	if !board.editing {
		return
	}
	board.report("cancel edit", board.commands.CancelEdit())
	board.editing = false
	board.render(board.commands.Snapshot())
}

func (board *Window) handleSettings() {
	if board.onSettings != nil {
		board.onSettings()
	}
}

func (board *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		if !board.editing {
			board.handleStart()
		}
	case fyne.KeyN:
		if !board.editing {
			board.handleNext()
		}
	case fyne.KeyEscape:
		board.handleCancelEdit()
	case fyne.KeyReturn, fyne.KeyEnter:
		board.handleSave()
	}
}

func (board *Window) report(action string, err error) {
	if err != nil {
		logger.Debug("board action rejected", "action", action, "err", err)
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
