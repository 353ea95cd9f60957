// Package evidence appends run reports to the persistent results log.
// The log is append-only: every run adds one delimited block and existing
// content is never rewritten, so the file accumulates a run history.
package evidence

import (
	"fmt"
	"os"
)

// Separator delimits the start of each appended run block.
const Separator = "===== RUN ====="

// Writer appends report text to a results file. The file is created on
// first use and opened in append mode on every write.
type Writer struct {
	path string
}

// NewWriter creates a writer for the results log at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the results log location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes one run block: a blank line, the separator line, then the
// report text. A failure here must not change the run outcome; callers
// report it and move on.
func (w *Writer) Append(text string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open results log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s\n%s\n", Separator, text); err != nil {
		return fmt.Errorf("append results log: %w", err)
	}
	return nil
}
