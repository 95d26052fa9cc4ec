package output

import "io"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithFormatter configures the printer to style text with the given Formatter.
// A nil formatter leaves the plain default in place.
func WithFormatter(formatter Formatter) Option {
	return func(p *Printer) {
		if formatter != nil {
			p.formatter = formatter
		}
	}
}

// WithWriter configures the printer to write output to the specified writer.
// Default is os.Stdout if not specified.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// PlainText forces the printer to use plain text output, ignoring any Formatter.
func PlainText() Option {
	return func(p *Printer) {
		p.formatter = NewPlainFormatter()
	}
}

// Silent configures the printer to suppress all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}
