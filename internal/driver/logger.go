package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. A nil output
// logs to stdout.
func CreateLogger(debug, quiet bool, output io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	cfg.Output = output
	return log.NewWithConfig(cfg)
}

// LogOutput picks where log records go: the -log file when one is given,
// stderr in terminal mode where stdout belongs to the renderer, otherwise
// nil for stdout. The returned close function is never nil.
func LogOutput(opts Options, stderr io.Writer) (io.Writer, func() error, error) {
	nop := func() error { return nil }

	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nop, fmt.Errorf("opening log file: %w", err)
		}
		return f, f.Close, nil

	case opts.Term:
		return stderr, nop, nil
	}

	return nil, nop, nil
}
