package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/session"
	"podcasttimer/internal/core/timer"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.snapshot.Frame()
	var body string
	if m.editing {
		body = m.viewEditor()
	} else {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewZone(frame.Episode),
			m.viewZone(frame.Speaker),
		)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("PODCAST TIMER"),
		m.viewStatusLine(),
		body,
		m.viewMessage(),
		m.help.View(m),
	))
}

func (m Model) viewStatusLine() string {
	audio := "audio on"
	if !m.snapshot.AudioEnabled {
		audio = "audio off"
	}
	return mutedStyle.Render(fmt.Sprintf("%s · %s", m.snapshot.State, audio))
}

func (m Model) viewZone(view feedback.View) string {
	snapshot := view.Timer
	title := snapshot.Role.Label()
	color := stageColor(snapshot.Stage)
	if !snapshot.Running && m.snapshot.State == session.StateIdle {
		color = editColor
	}
	if snapshot.Stage == timer.StageDone {
		title = "TIME'S UP"
	}

	clock := lipgloss.NewStyle().Foreground(color).Bold(true).Render(snapshot.Clock())
	lines := []string{
		titleStyle.Render(strings.ToUpper(title)),
		clock,
		renderBar(snapshot, color),
	}
	if view.Descriptor.StatusText != "" {
		lines = append(lines, statusStyle.Render(view.Descriptor.StatusText))
	}

	style := zoneStyle
	if view.Descriptor.Backdrop && snapshot.Running && snapshot.Stage != timer.StageGreat {
		style = style.BorderForeground(color)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderBar(snapshot timer.Snapshot, color lipgloss.Color) string {
	filled := int(math.Round(snapshot.ElapsedFraction() * barWidth))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) viewEditor() string {
	rows := []string{titleStyle.Render("EDIT TIMERS")}
	for _, role := range []timer.Role{timer.RoleEpisode, timer.RoleSpeaker} {
		offset := 0
		if role == timer.RoleSpeaker {
			offset = 2
		}
		row := lipgloss.JoinHorizontal(
			lipgloss.Center,
			lipgloss.NewStyle().Width(16).Render(role.Label()),
			m.viewInput(offset),
			" : ",
			m.viewInput(offset+1),
		)
		rows = append(rows, row)
	}
	return zoneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewInput(index int) string {
	style := inputStyle
	if m.invalid[fieldOrder[index]] {
		style = invalidInputStyle
	}
	return style.Render(m.inputs[index].View())
}

func (m Model) viewMessage() string {
	if m.err != nil {
		return dangerStyle.Render(m.err.Error())
	}
	if m.notice != "" {
		return statusStyle.Render(m.notice)
	}
	return ""
}
