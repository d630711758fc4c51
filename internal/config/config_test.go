package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Expected driver sqlite3, got %s", cfg.Database.Driver)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "database.driver must be sqlite3 or mysql",
		},
		{
			name:    "mysql without dsn",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "database.dsn is required",
		},
		{
			name:    "idle exceeds open",
			mutate:  func(c *Config) { c.Database.MaxIdleConns = 5 },
			wantErr: "max_idle_conns should not exceed",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = " " },
			wantErr: "data_dir must not be empty",
		},
		{
			name:    "bad export format",
			mutate:  func(c *Config) { c.ExportFormat = "xml" },
			wantErr: "export_format must be text or csv",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "<root>=LOUD" },
			wantErr: "log_level is not a valid logging spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	cfg.ExportPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid, got %v", err)
	}
	if got := strings.Count(err.Error(), "\n  - "); got != 2 {
		t.Errorf("Expected 2 bullet points, got %d in %q", got, err.Error())
	}
}

func TestForDatabase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/classdb"

	db := cfg.ForDatabase("academy")
	if db.DSN != filepath.Join("/tmp/classdb", "academy.db") {
		t.Errorf("Expected DSN under data dir, got %s", db.DSN)
	}

	cfg.Database.Driver = "mysql"
	cfg.Database.DSN = "root@tcp(localhost:3306)/school"
	db = cfg.ForDatabase("academy")
	if db.DSN != "root@tcp(localhost:3306)/school" {
		t.Errorf("Expected explicit DSN to be kept, got %s", db.DSN)
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LoggingConfig() != LogLevel {
		t.Errorf("Expected %s, got %s", LogLevel, cfg.LoggingConfig())
	}
	cfg.Verbose = true
	if cfg.LoggingConfig() != VerboseLogLevel {
		t.Errorf("Expected %s, got %s", VerboseLogLevel, cfg.LoggingConfig())
	}
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classdb.yaml")
	content := "data_dir: " + dir + "\ndatabase:\n  busy_timeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("CLASSDB_EXPORT_PATH", "out.csv")
	t.Setenv("CLASSDB_EXPORT_FORMAT", "csv")

	v := viper.New()
	if err := ReadSources(v, path); err != nil {
		t.Fatalf("ReadSources failed: %v", err)
	}
	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.DataDir != dir {
		t.Errorf("Expected data_dir %s, got %s", dir, cfg.DataDir)
	}
	if cfg.Database.BusyTimeout != 2*time.Second {
		t.Errorf("Expected busy_timeout 2s, got %v", cfg.Database.BusyTimeout)
	}
	if cfg.ExportPath != "out.csv" || cfg.ExportFormat != "csv" {
		t.Errorf("Expected env overrides, got %s/%s", cfg.ExportPath, cfg.ExportFormat)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Expected default driver, got %s", cfg.Database.Driver)
	}
}
