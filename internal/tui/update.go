package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"podcasttimer/internal/core/session"
	"podcasttimer/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.applyEvent(session.Event(msg))
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateSession(msg)
	}
	return m, nil
}

func (m *Model) applyEvent(event session.Event) {
	m.snapshot = m.controller.Snapshot()
	switch event.Type {
	case session.EventStage:
		if event.Cue != nil {
			m.notice = fmt.Sprintf("%s reached %s", event.Cue.Role.Label(), event.Cue.Stage)
		}
	case session.EventSpeakerNext:
		m.notice = "next speaker"
	case session.EventStateChange:
		if m.snapshot.State == session.StateIdle {
			m.notice = ""
		}
	}
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Toggle):
		switch m.controller.State() {
		case session.StateIdle:
			m.report("start", m.controller.Start())
		case session.StateRunning:
			m.report("pause", m.controller.Pause())
		case session.StatePaused:
			m.report("resume", m.controller.Resume())
		}

	case key.Matches(msg, m.keys.Reset):
		m.report("reset", m.controller.Reset())

	case key.Matches(msg, m.keys.Next):
		m.report("next speaker", m.controller.Next())

	case key.Matches(msg, m.keys.Audio):
		m.report("toggle audio", m.controller.SetAudioEnabled(!m.controller.Snapshot().AudioEnabled))

	case key.Matches(msg, m.keys.Edit):
		drafts, err := m.controller.BeginEdit()
		if err != nil {
			m.report("edit", err)
			break
		}
		m.snapshot = m.controller.Snapshot()
		cmd := m.openEditor(drafts)
		return m, cmd
	}

	m.snapshot = m.controller.Snapshot()
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.report("cancel edit", m.controller.CancelEdit())
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		err := m.controller.CommitEdit(m.draft())
		var inputErr *session.InputError
		if errors.As(err, &inputErr) {
			m.invalid = map[string]bool{}
			for _, field := range inputErr.Fields {
				m.invalid[field] = true
			}
			m.err = inputErr
			return m, nil
		}
		m.report("save edit", err)
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField((m.focus + 1) % len(m.inputs))
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) openEditor(drafts session.EditRequest) tea.Cmd {
	m.editing = true
	m.invalid = map[string]bool{}
	m.err = nil
	values := []string{drafts.Episode.Minutes, drafts.Episode.Seconds, drafts.Speaker.Minutes, drafts.Speaker.Seconds}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	return m.focusField(0)
}

func (m *Model) closeEditor() {
	m.editing = false
	m.invalid = map[string]bool{}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.snapshot = m.controller.Snapshot()
}

func (m *Model) focusField(index int) tea.Cmd {
	m.focus = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *Model) report(action string, err error) {
	if err == nil {
		return
	}
	m.err = err
	logger.Debug("action rejected", "action", action, "err", err)
}
