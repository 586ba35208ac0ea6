package display

import (
	"io"
	"strings"
	"sync"

	"vfsh/internal/logging"
)

var (
	displayLogger = logging.GetLogger().WithPrefix("display")
)

// Writer is a surface that copies text straight to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates a surface writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements the shell surface.
func (s *Writer) Write(text string) {
	if _, err := io.WriteString(s.w, text); err != nil {
		displayLogger.Error("Failed to write output: %v", err)
	}
}

// Transcript is a surface that accumulates text for the terminal view.
type Transcript struct {
	mu  sync.Mutex
	buf strings.Builder
}

// Write implements the shell surface.
func (t *Transcript) Write(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.WriteString(text)
}

// String returns everything written so far.
func (t *Transcript) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
