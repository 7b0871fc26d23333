package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")

	assert.Contains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithBrand(ctx, "Baofeng")
	ctx = logging.WithSource(ctx, "fcc-grant")
	ctx = logging.WithOperation(ctx, "rename")
	ctx = logging.WithRunID(ctx, "run-1")

	logging.FromContext(ctx).Info().Msg("renamed")

	entries := testLogger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Baofeng", entries[0]["brand"])
	assert.Equal(t, "fcc-grant", entries[0]["source"])
	assert.Equal(t, "rename", entries[0]["operation"])
	assert.Equal(t, "run-1", entries[0]["run_id"])
	assert.Equal(t, "renamed", entries[0]["message"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestWithFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithFields(ctx, map[string]any{"records": 14, "dry_run": true})

	logging.FromContext(ctx).Info().Msg("done")

	testLogger.AssertContains(t, `"records":14`)
	testLogger.AssertContains(t, `"dry_run":true`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		logInfo bool
	}{
		{name: "debug level", level: "debug", logInfo: true},
		{name: "warning alias", level: "warning", logInfo: false},
		{name: "unknown falls back to info", level: "loud", logInfo: true},
		{name: "disabled", level: "off", logInfo: false},
	}

	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			})
			assert.Equal(t, tt.logInfo, logger.Info().Enabled())
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		level string
		form  string
	}{
		{name: "defaults", env: map[string]string{"LOG_LEVEL": "", "DEBUG": ""}, level: "info", form: "auto"},
		{name: "DEBUG enables debug", env: map[string]string{"LOG_LEVEL": "", "DEBUG": "1"}, level: "debug", form: "auto"},
		{name: "LOG_LEVEL wins over DEBUG", env: map[string]string{"LOG_LEVEL": "error", "DEBUG": "1"}, level: "error", form: "auto"},
		{name: "format", env: map[string]string{"LOG_LEVEL": "", "DEBUG": "", "LOG_FORMAT": "console"}, level: "info", form: "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_FORMAT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := logging.ConfigFromEnv()
			assert.Equal(t, tt.level, cfg.Level)
			assert.Equal(t, tt.form, cfg.Format)
		})
	}
}
