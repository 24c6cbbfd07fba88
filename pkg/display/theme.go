package display

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used for terminal output
var (
	ColorAccent    = lipgloss.Color("141")
	ColorText      = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("245")
	ColorError     = lipgloss.Color("196")
	ColorSuccess   = lipgloss.Color("42")
)

var (
	// TitleStyle for table headers
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for table rows
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for separators and hints
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// SuccessStyle for the completion line
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
