// Package application provides the application interface for rigmap commands.
//
// Commands accept an Application rather than the concrete App, so they can be
// tested against a Mock backed by an in-memory store.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            st, err := app.Store(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use st
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hamcat/rigmap/internal/metrics"
	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/pipeline"
)

// Application provides what commands need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Store returns the catalog store, opening it on first use.
	Store(ctx context.Context) (*store.Store, error)

	// Table returns the grantee table: the curated seed plus every code the
	// store already knows.
	Table(ctx context.Context) (*grantee.Table, error)

	// PipelineOptions returns the import options taken from configuration.
	PipelineOptions() []pipeline.Option

	// Metrics returns the pass metrics, or nil when metrics are off.
	Metrics() *metrics.Metrics

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, ...).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
