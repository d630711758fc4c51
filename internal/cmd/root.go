package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willfong/classroom-sql/internal/config"
	"github.com/willfong/classroom-sql/internal/ui"
)

var logger = loggo.GetLogger("classdb.cmd")

var (
	configFile string
	verbose    bool
	noColor    bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classdb",
	Short: "Classroom relational database exercises",
	Long: `Classroom SQL exercises on local database files.

Every exercise owns one database: it creates tables, CHECK constraints,
foreign keys, views and triggers, loads fixed sample rows, then runs a
fixed battery of queries and modifications and prints each result.
Refused statements (constraint or trigger violations) are printed and
the run continues.

Two exercises also come with a data-management front end:
  classdb sales ...      salesmen, customers and sales
  classdb hospital ...   departments, doctors, sponsors and donations

Settings come from classdb.yaml, .env, CLASSDB_* variables and flags.

Example usage:
  classdb list
  classdb run academy
  classdb run --all
  classdb query sales-views "SELECT * FROM AllSales"
  classdb table show hospital doctors
  classdb browse music-views`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, newUI().Error(err.Error()))
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./classdb.yaml or ~/.config/classdb/classdb.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&noColor, "no-color", false, "disable colors and animations")
	flags.String("data-dir", config.DataDir, "directory for exercise database files")
	flags.String("driver", config.DBDriver, "database driver (sqlite3 or mysql)")
	flags.String("dsn", "", "database connection string (default: <data-dir>/<exercise>.db)")
	flags.Bool("export", false, "save printed result sets to the export file")
	flags.String("export-path", config.ExportPath, "export file; giving it implies --export")
	flags.String("export-format", config.ExportFormat, "export format (text or csv)")

	bindFlag("data_dir", "data-dir")
	bindFlag("database.driver", "driver")
	bindFlag("database.dsn", "dsn")
	bindFlag("export_path", "export-path")
	bindFlag("export_format", "export-format")
	bindFlag("verbose", "verbose")

	// Set version template
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// loadConfig reads every configuration source, validates the result and
// applies the logging configuration
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.ReadSources(viper.GetViper(), configFile); err != nil {
		return err
	}
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := setupLogging(loaded); err != nil {
		return err
	}
	cfg = loaded
	logger.Debugf("configuration loaded from %q", viper.ConfigFileUsed())
	return nil
}

func setupLogging(c *config.Config) error {
	if _, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(os.Stderr, logFormatter)); err != nil {
		return errors.Annotate(err, "set log writer")
	}
	return loggo.ConfigureLoggers(c.LoggingConfig())
}

func logFormatter(entry loggo.Entry) string {
	ts := entry.Timestamp.Format(time.TimeOnly)
	return fmt.Sprintf("%s %-7s %s %s", ts, entry.Level, entry.Module, entry.Message)
}

// newUI creates the terminal output honouring --no-color
func newUI() *ui.UI {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}
	return u
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}
