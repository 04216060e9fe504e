// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorAccent  = lipgloss.Color("#06B6D4")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleQuestion = lipgloss.NewStyle().
			Bold(true)

	styleDescription = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleTrail = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleOption = lipgloss.NewStyle()

	styleSelected = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleDocument = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted)
)
