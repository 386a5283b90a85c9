package rundir

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger tees run progress lines to a writer (normally stdout) and the run's
// log file, matching what readers of run.log expect line for line.
type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
}

// NewLogger opens (or creates) the log file at path for appending.
func NewLogger(path string, out io.Writer) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("rundir: open log %q: %w", path, err)
	}
	return &Logger{out: out, file: f}, nil
}

// Printf writes one formatted line to both sinks.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf(format, args...) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out != nil {
		_, _ = io.WriteString(l.out, line)
	}
	if l.file != nil {
		_, _ = l.file.WriteString(line)
	}
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
