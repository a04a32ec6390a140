package tui

import "github.com/charmbracelet/lipgloss"

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

func (k StatusKind) style() lipgloss.Style {
	switch k {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	}
	return StatusInfoStyle
}
