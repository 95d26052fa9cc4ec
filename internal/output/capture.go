package output

import (
	"bytes"
	"sync"
)

// CaptureBuffer is a thread-safe buffer for capturing output during tests.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureBuffer creates a new capture buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Write implements io.Writer for capturing output.
func (c *CaptureBuffer) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns the captured output as a string.
func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// MockFormatter wraps text in [kind]...[/kind] markers so tests can see
// which style was applied without dealing with escape sequences.
type MockFormatter struct{}

// Bright implements Formatter.
func (m MockFormatter) Bright(text string) string { return wrap("bright", text) }

// Passed implements Formatter.
func (m MockFormatter) Passed(text string) string { return wrap("passed", text) }

// Failed implements Formatter.
func (m MockFormatter) Failed(text string) string { return wrap("failed", text) }

// Styled implements Formatter.
func (m MockFormatter) Styled() bool { return true }

func wrap(kind, text string) string {
	return "[" + kind + "]" + text + "[/" + kind + "]"
}
