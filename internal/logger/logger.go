// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Setup configures the default logger with the given level (debug, info,
// warn, error) and format (text, json, logfmt), writing to stderr.
func Setup(level, format string) error {
	return SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}

	formatter, err := parseFormat(format)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       formatter,
	})
	log.SetDefault(logger)
	return nil
}

// New returns a child of the default logger tagged with a component prefix.
func New(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

func parseFormat(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format '%s' (must be 'text', 'json' or 'logfmt')", format)
	}
}
