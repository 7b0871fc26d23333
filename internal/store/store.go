// Package store persists the catalog in a SQL database through gorm.
//
// Every catalog-mutating operation runs inside one transaction: the catalog
// is loaded, the operation runs against the in-memory copy, and the result
// is written back before commit. A failed operation leaves no partial
// effect.
package store

import (
	"context"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/logging"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config selects and configures the database.
type Config struct {
	Driver string // sqlite, mysql or postgres
	DSN    string // file path for sqlite, connection string otherwise
	Debug  bool   // log every statement
}

// Store is the database-backed catalog.
type Store struct {
	db *gorm.DB
}

// Open connects to the database and migrates the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(level)})
	if err != nil {
		return nil, errors.WrapResource("open", "database", cfg.Driver, err)
	}

	if dialector.Name() == DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// ":memory:" databases from splitting across the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.WrapResource("open", "database", cfg.Driver, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	ctx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()
	if err := s.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("driver", cfg.Driver).Msg("Opened catalog store")
	return s, nil
}

// New wraps an existing gorm handle and migrates the schema.
func New(ctx context.Context, db *gorm.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		if dsn == "" {
			dsn = constants.DefaultDatabasePath
		}
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		if dsn == "" {
			return nil, &errors.ConfigError{Component: "database", Message: "mysql requires a dsn"}
		}
		return mysql.Open(dsn), nil
	case DriverPostgres, "postgresql":
		if dsn == "" {
			return nil, &errors.ConfigError{Component: "database", Message: "postgres requires a dsn"}
		}
		return postgres.Open(dsn), nil
	}
	return nil, &errors.ConfigError{Component: "database", Message: "unsupported driver " + cfg.Driver}
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&RadioModel{}, &BrandModel{}); err != nil {
		return errors.WrapResource("migrate", "database", "", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WrapResource("close", "database", "", err)
	}
	return sqlDB.Close()
}

// Stats counts the stored rows.
type Stats struct {
	Radios int64
	Brands int64
}

// Stats returns row counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	if err := db.Model(&RadioModel{}).Count(&st.Radios).Error; err != nil {
		return st, errors.WrapResource("count", "radios", "", err)
	}
	if err := db.Model(&BrandModel{}).Count(&st.Brands).Error; err != nil {
		return st, errors.WrapResource("count", "brands", "", err)
	}
	return st, nil
}
