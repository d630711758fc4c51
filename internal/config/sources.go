package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// SetDefaults registers every default with viper so environment variables
// for keys that never appear in a config file are still picked up.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.foreign_keys", d.Database.ForeignKeys)
	v.SetDefault("database.busy_timeout", d.Database.BusyTimeout)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", d.Database.ConnMaxIdleTime)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("export_path", d.ExportPath)
	v.SetDefault("export_format", d.ExportFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("verbose", d.Verbose)
}

// ReadSources wires the configuration sources into viper, in increasing priority:
// defaults, classdb.yaml (or the explicit file), .env, CLASSDB_* environment.
// A missing config file or .env is not an error; a malformed one is.
func ReadSources(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Annotate(err, "loading .env")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Annotate(err, "reading config file")
	}
	return nil
}
