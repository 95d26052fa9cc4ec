// Package output provides the console output layer for emutest reports.
// Styling is injected through a Formatter chosen once at startup, so the
// reporter never needs to know whether colours are in use.
package output

import (
	"fmt"
	"strings"
)

// Formatter decorates report text with a visual style.
// Implementations must return the text unchanged apart from styling, so
// that stripping the styling always recovers the plain report.
type Formatter interface {
	// Bright renders emphasized text such as the collected-tests header.
	Bright(text string) string

	// Passed renders text associated with a passing test.
	Passed(text string) string

	// Failed renders text associated with a failing test.
	Failed(text string) string

	// Styled reports whether the formatter emits escape sequences.
	Styled() bool
}

// ColorMode selects how a Formatter is chosen for a writer.
type ColorMode string

const (
	// ColorAuto styles output only when the writer supports colours.
	ColorAuto ColorMode = "auto"

	// ColorAlways forces ANSI styling.
	ColorAlways ColorMode = "always"

	// ColorNever forces plain text.
	ColorNever ColorMode = "never"
)

// ParseColorMode converts a flag value into a ColorMode.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", value)
	}
}
