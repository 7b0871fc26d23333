// Package app provides the application context and dependency management
// for the rigmap CLI. It centralizes configuration, the store connection,
// the grantee table and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/metrics"
	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/pipeline"
)

// App represents the rigmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazy-initialized collaborators
	mu      sync.Mutex
	store   *store.Store
	table   *grantee.Table
	metrics *metrics.Metrics
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Store returns the catalog store, opening it on first use.
func (a *App) Store(ctx context.Context) (*store.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.storeLocked(ctx)
}

func (a *App) storeLocked(ctx context.Context) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	st, err := store.Open(logging.WithLogger(ctx, a.logger), a.config.StoreConfig())
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

// Table returns the grantee table: the curated seed (embedded, or
// grantees.file when configured) plus every brand code already stored.
func (a *App) Table(ctx context.Context) (*grantee.Table, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.table != nil {
		return a.table, nil
	}

	var (
		curated *grantee.Curated
		err     error
	)
	if a.config.GranteesFile != "" {
		curated, err = grantee.LoadFile(a.config.GranteesFile)
	} else {
		curated, err = grantee.DefaultCurated()
	}
	if err != nil {
		return nil, err
	}
	table := grantee.NewTable()
	table.Seed(curated)

	st, err := a.storeLocked(ctx)
	if err != nil {
		return nil, err
	}
	n, err := st.SeedTable(ctx, table)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Int("codes", table.Len()).
		Int("from_store", n).
		Msg("Grantee table ready")

	a.table = table
	return table, nil
}

// Metrics returns the pass metrics. They are only collected when a
// metrics file is configured.
func (a *App) Metrics() *metrics.Metrics {
	if a.config.MetricsFile == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.metrics == nil {
		m, err := metrics.New()
		if err != nil {
			a.logger.Warn().Err(err).Msg("Metrics disabled")
			return nil
		}
		a.metrics = m
	}
	return a.metrics
}

// PipelineOptions returns the import options from configuration.
func (a *App) PipelineOptions() []pipeline.Option {
	// Validated in LoadConfig.
	policy, _ := pipeline.ParseUnresolvedPolicy(a.config.Unresolved)
	return []pipeline.Option{
		pipeline.WithUnresolvedPolicy(policy),
		pipeline.WithFCCIDBackfill(a.config.BackfillFCCIDs),
		pipeline.WithMetrics(a.Metrics()),
	}
}

// Shutdown writes the metrics textfile and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	if a.metrics != nil && a.config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
			a.logger.Error().Err(err).Str("path", a.config.MetricsFile).Msg("Failed to write metrics")
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close store during shutdown")
			if firstErr == nil {
				firstErr = err
			}
		}
		a.store = nil
	}
	return firstErr
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets an already opened store (useful for testing).
func WithStore(st *store.Store) Option {
	return func(a *App) error {
		a.store = st
		return nil
	}
}
