package tui

import (
	"github.com/charmbracelet/lipgloss"

	"podcasttimer/internal/core/timer"
)

const barWidth = 40

var (
	greenColor  = lipgloss.Color("#2ecc71")
	yellowColor = lipgloss.Color("#f1c40f")
	redColor    = lipgloss.Color("#e74c3c")
	editColor   = lipgloss.Color("#5dade2")
	mutedColor  = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	zoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2).
			Width(barWidth + 6)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	dangerStyle = lipgloss.NewStyle().
			Foreground(redColor).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	invalidInputStyle = inputStyle.BorderForeground(redColor)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

func stageColor(stage timer.Stage) lipgloss.Color {
	switch stage {
	case timer.StageYellow:
		return yellowColor
	case timer.StageRed, timer.StageDone:
		return redColor
	default:
		return greenColor
	}
}
