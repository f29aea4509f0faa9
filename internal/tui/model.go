package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"podcasttimer/internal/core/session"
)

const eventBuffer = 32

// Edit inputs in focus order.
var fieldOrder = []string{
	session.FieldEpisodeMinutes,
	session.FieldEpisodeSeconds,
	session.FieldSpeakerMinutes,
	session.FieldSpeakerSeconds,
}

type eventMsg session.Event

type eventsClosedMsg struct{}

// Model is the terminal frontend of a session.
type Model struct {
	controller *session.Controller
	events     <-chan session.Event
	snapshot   session.Snapshot
	keys       KeyMap
	help       help.Model

	editing bool
	inputs  []textinput.Model
	focus   int
	invalid map[string]bool

	notice   string
	err      error
	quitting bool
	width    int
}

// NewModel subscribes to the controller and renders its current snapshot.
func NewModel(controller *session.Controller) Model {
	inputs := make([]textinput.Model, len(fieldOrder))
	for i := range inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = "00"
		input.CharLimit = 3
		input.Width = 3
		inputs[i] = input
	}

	return Model{
		controller: controller,
		events:     controller.Subscribe(eventBuffer),
		snapshot:   controller.Snapshot(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputs:     inputs,
		invalid:    map[string]bool{},
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.NextField, m.keys.Save, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Toggle, m.keys.Reset, m.keys.Next, m.keys.Edit, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	if m.editing {
		return [][]key.Binding{{m.keys.NextField, m.keys.PrevField}, {m.keys.Save, m.keys.Cancel}}
	}
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Reset, m.keys.Next},
		{m.keys.Edit, m.keys.Audio},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) draft() session.EditRequest {
	return session.EditRequest{
		Episode: session.Draft{Minutes: m.inputs[0].Value(), Seconds: m.inputs[1].Value()},
		Speaker: session.Draft{Minutes: m.inputs[2].Value(), Seconds: m.inputs[3].Value()},
	}
}
