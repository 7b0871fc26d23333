package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/pipeline"
)

// EnvPrefix prefixes every environment override, e.g. RIGMAP_DATABASE_DSN.
const EnvPrefix = "RIGMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Store
	DatabaseDriver string
	DatabaseDSN    string
	DatabaseDebug  bool

	// Import pass
	GranteesFile   string // curated YAML replacing the embedded table
	Unresolved     string // keep or drop
	BackfillFCCIDs bool
	MetricsFile    string // node_exporter textfile written on shutdown

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (RIGMAP_ prefix)
// 3. .env files
// 4. Config file (path, or ~/.rigmap.yaml and ./.rigmap.yaml)
// 5. Defaults
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "cannot read config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DatabaseDriver: v.GetString("database.driver"),
		DatabaseDSN:    v.GetString("database.dsn"),
		DatabaseDebug:  v.GetBool("database.debug"),

		GranteesFile:   v.GetString("grantees.file"),
		Unresolved:     v.GetString("unresolved"),
		BackfillFCCIDs: v.GetBool("backfill_fcc_ids"),
		MetricsFile:    v.GetString("metrics_file"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log.level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log.format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log.output")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", constants.DefaultDatabasePath)
	v.SetDefault("unresolved", "keep")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// Validate checks the values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case store.DriverSQLite, store.DriverMySQL, store.DriverPostgres, "postgresql":
	default:
		return errors.NewConfigError("database", "unknown driver "+c.DatabaseDriver, nil)
	}
	if _, err := pipeline.ParseUnresolvedPolicy(c.Unresolved); err != nil {
		return errors.NewConfigError("unresolved", err.Error(), err)
	}
	return nil
}

// StoreConfig returns the store settings.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver: c.DatabaseDriver,
		DSN:    c.DatabaseDSN,
		Debug:  c.DatabaseDebug,
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never overrides a
// variable that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
