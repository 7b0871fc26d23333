package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hamcat/rigmap/pkg/logging"
)

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// NewLogger builds the application logger and installs it as the default.
// Level precedence: --log-level, then LOG_LEVEL or log.level, then -q, then
// -v, then info.
func NewLogger(config *Config) zerolog.Logger {
	level, warning := determineLogLevel(config)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogOutput,
		TimeFormat: "kitchen",
		NoColor:    config.NoColor,
		AddCaller:  level == "debug" || level == "trace",
	})
	logging.SetDefault(logger)

	if warning != "" {
		logger.Warn().Str("level", level).Msg(warning)
	}
	return logger
}

// determineLogLevel resolves the level and, when the settings conflict or
// are invalid, a warning explaining the choice.
func determineLogLevel(config *Config) (level, warning string) {
	switch {
	case config.LogLevel != "" && !logLevels[config.LogLevel]:
		return "info", fmt.Sprintf("invalid log level %q, using info", config.LogLevel)
	case config.LogLevel != "":
		return config.LogLevel, ""
	case config.Verbose && config.Quiet:
		return "warn", "both --verbose and --quiet given, using --quiet"
	case config.Quiet:
		return "warn", ""
	case config.Verbose:
		return "debug", ""
	}
	return "info", ""
}
