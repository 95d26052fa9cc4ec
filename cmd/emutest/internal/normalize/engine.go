// Package normalize provides output normalization applied before comparing
// emulator output with the expected text.
package normalize

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Rule is a named text transformation.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Engine applies an ordered list of rules.
type Engine struct {
	rules []Rule
}

// Option configures an Engine.
type Option func(*Engine)

// WithANSIStripping removes ANSI escape sequences, for emulators that
// colour their diagnostics.
func WithANSIStripping() Option {
	return func(e *Engine) {
		e.rules = append(e.rules, Rule{Name: "ansi", Apply: ansi.Strip})
	}
}

// NewEngine creates an engine. Line-ending normalization (CRLF to LF) is
// always the first rule.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules: []Rule{{Name: "crlf", Apply: Newlines}},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize runs every rule over text in order.
func (e *Engine) Normalize(text string) string {
	for _, rule := range e.rules {
		text = rule.Apply(text)
	}
	return text
}

// RuleNames lists the active rules in application order.
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, rule := range e.rules {
		names[i] = rule.Name
	}
	return names
}

// Newlines converts platform line endings (CRLF) to LF.
func Newlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
