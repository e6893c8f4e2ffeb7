package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}

// Panel draws lines inside the rounded border.
func (s Styles) Panel(lines ...string) string {
	return s.Border.Render(strings.Join(lines, "\n"))
}
