// Package logging builds the slog handlers used by the muxopts CLI. Log
// output always goes to stderr so it never mixes with printed options.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLogLevel names the environment variable holding the default log level.
const EnvLogLevel = "MUXOPTS_LOG_LEVEL"

// DefaultLevel is used when no level is configured. The CLI is quiet unless
// asked otherwise.
const DefaultLevel = "warn"

// SetupHandlerText returns a charmbracelet/log handler writing to writer.
// "trace" enables caller reporting on top of debug output.
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.WarnLevel
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		Prefix:          "muxopts",
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON returns a JSON slog handler writing to writer.
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	addSource := false
	level := slog.LevelWarn
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "trace":
		addSource = true
		level = slog.LevelDebug
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
}

// NewLogger builds a logger for format ("text" or "json") at logLevel.
func NewLogger(logLevel, format string, writer io.Writer) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(SetupHandlerJSON(logLevel, writer))
	}
	return slog.New(SetupHandlerText(logLevel, writer))
}
