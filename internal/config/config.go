package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/spf13/viper"
)

// Config is everything classdb reads from flags, environment and the config file.
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Directory holding one database file per exercise
	DataDir string `mapstructure:"data_dir"`

	// Report export settings
	ExportPath   string `mapstructure:"export_path"`
	ExportFormat string `mapstructure:"export_format"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	Verbose  bool   `mapstructure:"verbose"`
}

// DatabaseConfig describes how to reach one exercise database.
type DatabaseConfig struct {
	// Connection string (DSN). Empty means a SQLite file under DataDir.
	// SQLite: path/to/file.db
	// MySQL:  user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Driver (sqlite3 or mysql)
	Driver string `mapstructure:"driver"`

	// SQLite only: enforce FOREIGN KEY constraints on the connection
	ForeignKeys bool `mapstructure:"foreign_keys"`

	// SQLite only: wait for a locked file before failing
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DefaultConfig is the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DBDriver,
			BusyTimeout:     DBBusyTimeout,
			MaxOpenConns:    DBMaxOpenConns,
			MaxIdleConns:    DBMaxIdleConns,
			ConnMaxLifetime: DBConnMaxLifetime,
		},
		DataDir:      DataDir,
		ExportPath:   ExportPath,
		ExportFormat: ExportFormat,
		LogLevel:     LogLevel,
	}
}

// Load decodes the global viper instance over the defaults.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes v over the defaults, so keys v does not set keep them.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Annotate(err, "decoding configuration")
	}
	return cfg, nil
}

// ForDatabase returns the connection settings for a named database.
// With SQLite and no explicit DSN, every name maps to its own file in DataDir.
func (c *Config) ForDatabase(name string) DatabaseConfig {
	db := c.Database
	if db.Driver == "" {
		db.Driver = DBDriver
	}
	if db.DSN == "" && db.Driver == "sqlite3" {
		db.DSN = c.DatabasePath(name)
	}
	return db
}

func (c *Config) DatabasePath(name string) string {
	return filepath.Join(c.DataDir, name+DBFileExtension)
}

// LoggingConfig is the loggo spec implied by --verbose and log_level.
func (c *Config) LoggingConfig() string {
	switch {
	case c.Verbose:
		return VerboseLogLevel
	case c.LogLevel == "":
		return LogLevel
	}
	return c.LogLevel
}

// problems collects every validation failure so they are reported together.
type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return errors.NewNotValid(nil, "invalid configuration:\n  - "+strings.Join(p, "\n  - "))
}

// Validate reports every invalid setting at once as a NotValid error.
func (c *Config) Validate() error {
	var p problems
	db := c.Database

	p.check(db.Driver == "sqlite3" || db.Driver == "mysql",
		"database.driver must be sqlite3 or mysql (got %q)", db.Driver)
	p.check(db.Driver != "mysql" || db.DSN != "",
		"database.dsn is required for the mysql driver")
	p.check(db.MaxOpenConns >= 1, "database.max_open_conns must be >= 1")
	p.check(db.MaxIdleConns >= 0, "database.max_idle_conns must be >= 0")
	p.check(db.MaxIdleConns <= db.MaxOpenConns,
		"database.max_idle_conns should not exceed max_open_conns")
	p.check(db.BusyTimeout >= 0, "database.busy_timeout must be non-negative")

	p.check(strings.TrimSpace(c.DataDir) != "", "data_dir must not be empty")
	p.check(strings.TrimSpace(c.ExportPath) != "", "export_path must not be empty")
	p.check(c.ExportFormat == "text" || c.ExportFormat == "csv",
		"export_format must be text or csv (got %q)", c.ExportFormat)

	if _, err := loggo.ParseConfigString(c.LoggingConfig()); err != nil {
		p.check(false, "log_level is not a valid logging spec: %v", err)
	}
	return p.err()
}
