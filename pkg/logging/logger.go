// Package logging provides structured logging for rigmap using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise.
//
// Engine packages never hold a logger of their own: they take it from the
// context, so a pass tags every event with its run id, operation and brand.
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithOperation(logging.WithBrand(ctx, "Baofeng"), "dedupe")
//	logging.FromContext(ctx).Debug().Int("records", 12).Msg("Merging group")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger. zerolog's global log.Logger
// follows it so third-party code using zerolog/log lands in the same sink.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
