// Package logging builds the application logger. The TUI owns the terminal,
// so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// New returns a leveled logger writing to w with timestamp and caller fields.
func New(w io.Writer, level string) log.Logger {
	logger := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	return log.NewFilter(logger, log.FilterLevel(log.ParseLevel(strings.ToUpper(level))))
}

// Open creates (or appends to) the log file at path. An empty path discards logs.
// The returned closer must be closed on exit.
func Open(path, level string) (log.Logger, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return New(io.Discard, level), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f, nil
}
