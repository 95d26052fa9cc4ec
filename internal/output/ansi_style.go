package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSIFormatter implements Formatter with lipgloss styles:
// bold for emphasis, green for passes and red for failures.
type ANSIFormatter struct {
	bright lipgloss.Style
	passed lipgloss.Style
	failed lipgloss.Style
}

// NewANSIFormatter creates a formatter whose styles are bound to the given renderer.
func NewANSIFormatter(renderer *lipgloss.Renderer) *ANSIFormatter {
	return &ANSIFormatter{
		bright: renderer.NewStyle().Bold(true),
		passed: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failed: renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Bright implements Formatter.
func (a *ANSIFormatter) Bright(text string) string { return a.bright.Render(text) }

// Passed implements Formatter.
func (a *ANSIFormatter) Passed(text string) string { return a.passed.Render(text) }

// Failed implements Formatter.
func (a *ANSIFormatter) Failed(text string) string { return a.failed.Render(text) }

// Styled implements Formatter.
func (a *ANSIFormatter) Styled() bool { return true }

// NewFormatter selects a Formatter for w according to mode.
// In auto mode the writer's colour profile decides; writers that are not
// terminals (files, pipes, buffers) get plain text.
func NewFormatter(mode ColorMode, w io.Writer) Formatter {
	switch mode {
	case ColorNever:
		return NewPlainFormatter()
	case ColorAlways:
		renderer := lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.ANSI)
		return NewANSIFormatter(renderer)
	default:
		renderer := lipgloss.NewRenderer(w)
		if renderer.ColorProfile() == termenv.Ascii {
			return NewPlainFormatter()
		}
		return NewANSIFormatter(renderer)
	}
}
