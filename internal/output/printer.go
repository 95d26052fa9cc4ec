package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Printer writes report text to a writer, styling it through a Formatter.
type Printer struct {
	formatter Formatter
	writer    io.Writer
	silent    bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes plain text to os.Stdout.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer:    os.Stdout,
		formatter: NewPlainFormatter(),
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without styling.
func (p *Printer) Print(text string) {
	p.write(text)
}

// Printf outputs formatted text without styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.write(fmt.Sprintf(format, args...))
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.write(text + "\n")
}

// Bright outputs emphasized text without a trailing newline.
func (p *Printer) Bright(text string) {
	p.write(p.formatter.Bright(text))
}

// Passed outputs pass-styled text without a trailing newline.
func (p *Printer) Passed(text string) {
	p.write(p.formatter.Passed(text))
}

// Failed outputs failure-styled text without a trailing newline.
func (p *Printer) Failed(text string) {
	p.write(p.formatter.Failed(text))
}

func (p *Printer) write(text string) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, text) // Ignore write errors for output operations
}
