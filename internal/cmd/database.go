package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
	"github.com/willfong/classroom-sql/internal/export"
	"github.com/willfong/classroom-sql/internal/ui"
)

// sqliteSidecars are the files SQLite keeps next to a database
var sqliteSidecars = []string{"", "-wal", "-shm", "-journal"}

// openDatabase opens the database of a named exercise or application
func openDatabase(ctx context.Context, u *ui.UI, name string, foreignKeys bool) (*database.Pool, error) {
	dbCfg := cfg.ForDatabase(name)
	dbCfg.ForeignKeys = dbCfg.ForeignKeys || foreignKeys

	spinner := u.NewSpinner("Opening " + name)
	spinner.Start()

	pool, err := database.NewPool(dbCfg)
	if err != nil {
		spinner.Error("failed")
		return nil, err
	}
	if err := pool.Connect(ctx); err != nil {
		pool.Close()
		spinner.Error("failed")
		return nil, err
	}

	spinner.Success(describeDatabase(name, dbCfg.Driver))
	return pool, nil
}

// openExercise opens the database of a registered exercise
func openExercise(ctx context.Context, u *ui.UI, name string) (*exercise.Exercise, *database.Pool, error) {
	e, err := exercise.Get(name)
	if err != nil {
		return nil, nil, err
	}
	pool, err := openDatabase(ctx, u, e.Name, e.ForeignKeys)
	if err != nil {
		return nil, nil, err
	}
	return e, pool, nil
}

func describeDatabase(name, driver string) string {
	if driver != "sqlite3" || cfg.Database.DSN != "" {
		return driver
	}
	path := cfg.DatabasePath(name)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}
	return path + " (new)"
}

// removeDatabase deletes the SQLite file of a named database and its sidecars
func removeDatabase(name string) error {
	if cfg.Database.Driver != "sqlite3" || cfg.Database.DSN != "" {
		return errors.NotSupportedf("recreating %s on a configured DSN; use --keep", name)
	}
	path := cfg.DatabasePath(name)
	for _, suffix := range sqliteSidecars {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return errors.Annotatef(err, "remove %s", path+suffix)
		}
	}
	logger.Debugf("removed database file %s", path)
	return nil
}

// exportTarget returns the file result sets are saved to, or "" when
// neither --export nor --export-path was given.
func exportTarget(cmd *cobra.Command) string {
	if !flagChanged(cmd, "export-path") {
		if f := cmd.Flag("export"); f == nil || f.Value.String() != "true" {
			return ""
		}
	}
	return cfg.ExportPath
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// openExport creates the export file for a command that saves several
// result sets, or returns nil when results are not saved.
func openExport(cmd *cobra.Command) (*export.Writer, error) {
	path := exportTarget(cmd)
	if path == "" {
		return nil, nil
	}
	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return nil, err
	}
	return export.NewWriter(export.Config{Path: path, Format: format})
}

// printResult renders a result set and saves it when --export is given
func printResult(cmd *cobra.Command, u *ui.UI, title string, rs *database.ResultSet) error {
	if title != "" {
		u.Println(u.Bold(title))
	}
	u.Println(u.Table(rs))

	path := exportTarget(cmd)
	if path == "" {
		return nil
	}
	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}
	n, err := export.Result(path, format, rs)
	if err != nil {
		return errors.Annotate(err, "save results")
	}
	u.Println(u.Success(fmt.Sprintf("%s %s saved to %s", humanize.Comma(n), plural(n, "row", "rows"), path)))
	return nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
