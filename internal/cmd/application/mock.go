// Package application provides test doubles for the command application
// interface.
package application

import (
	"context"

	"github.com/rs/zerolog"

	app "github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/metrics"
	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/pipeline"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
//	mock := &application.Mock{
//	    StoreFunc: func(ctx context.Context) (*store.Store, error) {
//	        return testStore, nil
//	    },
//	}
//	cmd := maintain.NewDedupeCommand(mock)
type Mock struct {
	StoreFunc           func(ctx context.Context) (*store.Store, error)
	TableFunc           func(ctx context.Context) (*grantee.Table, error)
	PipelineOptionsFunc func() []pipeline.Option
	MetricsFunc         func() *metrics.Metrics
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

// Store returns a store using the mock function or nil.
func (m *Mock) Store(ctx context.Context) (*store.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx)
	}
	return nil, nil
}

// Table returns a table using the mock function or an empty table.
func (m *Mock) Table(ctx context.Context) (*grantee.Table, error) {
	if m.TableFunc != nil {
		return m.TableFunc(ctx)
	}
	return grantee.NewTable(), nil
}

// PipelineOptions returns options using the mock function or none.
func (m *Mock) PipelineOptions() []pipeline.Option {
	if m.PipelineOptionsFunc != nil {
		return m.PipelineOptionsFunc()
	}
	return nil
}

// Metrics returns metrics using the mock function or nil.
func (m *Mock) Metrics() *metrics.Metrics {
	if m.MetricsFunc != nil {
		return m.MetricsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ app.Application = (*Mock)(nil)
