package output

// PlainFormatter implements Formatter without any styling.
// It is used when colours are disabled or the terminal cannot render them.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Bright implements Formatter.
func (p *PlainFormatter) Bright(text string) string { return text }

// Passed implements Formatter.
func (p *PlainFormatter) Passed(text string) string { return text }

// Failed implements Formatter.
func (p *PlainFormatter) Failed(text string) string { return text }

// Styled implements Formatter.
func (p *PlainFormatter) Styled() bool { return false }
