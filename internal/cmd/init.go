package cmd

import (
	"fmt"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/config"
	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
)

var (
	initAll  bool
	initKeep bool
)

var initCmd = &cobra.Command{
	Use:   "init [exercise...]",
	Short: "Create exercise databases with their sample rows, without running steps",
	Long: `Create the schema and load the sample rows of one or more exercises so
they can be explored with "query", "table" and "browse".

Examples:
  classdb init hospital
  classdb init --all`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initAll, "all", false, "initialise every exercise")
	initCmd.Flags().BoolVar(&initKeep, "keep", false, "reuse existing database files")
}

func runInit(cmd *cobra.Command, args []string) error {
	u := newUI()
	exercises, err := selectExercises(args, initAll)
	if err != nil {
		return err
	}

	bar := u.NewProgressBar("Creating", int64(len(exercises)))
	for _, e := range exercises {
		if err := initOne(cmd, e); err != nil {
			bar.Fail(err)
			return errors.Annotate(err, e.Name)
		}
		bar.Increment(e.Name)
	}
	bar.Complete()

	u.Println(u.Success(fmt.Sprintf("%d %s ready in %s (%s)", len(exercises),
		plural(int64(len(exercises)), "database", "databases"), cfg.DataDir, bar.Elapsed().Round(time.Millisecond))))
	return nil
}

func initOne(cmd *cobra.Command, e *exercise.Exercise) error {
	if !initKeep {
		if err := removeDatabase(e.Name); err != nil {
			return err
		}
	}

	dbCfg := cfg.ForDatabase(e.Name)
	dbCfg.ForeignKeys = dbCfg.ForeignKeys || e.ForeignKeys
	pool, err := database.NewPool(dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return exercise.NewRunner(pool, nil, config.QueryTimeout).Setup(cmd.Context(), e)
}
