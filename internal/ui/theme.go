// Package ui holds the terminal styles shared by the CLI and the TUI.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	// CheckMark marks a completed task.
	CheckMark = "✓"

	// Blank marks a pending task.
	Blank = " "
)

// Styles bundles the palette for one output stream. Colors collapse to
// plain text when the stream is not a terminal or NO_COLOR is set.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Pending lipgloss.Style
	Error   lipgloss.Style

	Selected lipgloss.Style
	Done     lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles builds styles whose color profile matches w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Faint(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("42")),
		Pending: r.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Selected: r.NewStyle().Bold(true).Reverse(true),
		Done:     r.NewStyle().Faint(true).Strikethrough(true),
		Border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

// Mark renders the status glyph of a task.
func (s Styles) Mark(completed bool) string {
	if completed {
		return s.Success.Render(CheckMark)
	}
	return Blank
}
