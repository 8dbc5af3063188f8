// Package styles holds the lipgloss styles shared by prompts and CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// ANSI palette.
var (
	Primary   = lipgloss.Color("4")
	Secondary = lipgloss.Color("245")
	Success   = lipgloss.Color("2")
	Warning   = lipgloss.Color("3")
	Error     = lipgloss.Color("1")
	Highlight = lipgloss.Color("12")
)

// Prompt styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Hint = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)

	Option = lipgloss.NewStyle().
		Foreground(Secondary)

	Cursor = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true)

	Frame = lipgloss.NewStyle().
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2)
)

// Report styles.
var (
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Warning)

	ErrorLine = lipgloss.NewStyle().
			Foreground(Error)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	Muted = lipgloss.NewStyle().
		Foreground(Secondary)
)

// CursorIndicator marks the highlighted choice.
const CursorIndicator = "▸"
