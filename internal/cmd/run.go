package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/config"
	"github.com/willfong/classroom-sql/internal/exercise"
	"github.com/willfong/classroom-sql/internal/ui"
)

var (
	runAll  bool
	runKeep bool
)

var runCmd = &cobra.Command{
	Use:   "run [exercise...]",
	Short: "Create an exercise database and run its statement battery",
	Long: `Create the schema, load the sample rows and run every step of one or
more exercises, printing each result set or rows-affected count.

Each run starts from a fresh database file unless --keep is given, in
which case the existing file is reused. Trigger and constraint batteries
are written for fresh sample rows, so a --keep run over a database that
already ran may see steps behave differently; those are reported as
warnings instead of failing the command.

With --export or --export-path every query result is saved to one file,
each preceded by a line naming the exercise and step.

Examples:
  classdb run academy
  classdb run sales-triggers music-triggers --keep
  classdb run --all --no-color > results.txt
  classdb run academy --export-path academy.csv --export-format csv`,
	RunE: runExercises,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runAll, "all", false, "run every exercise")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "reuse the existing database file")
}

// selectExercises resolves names or --all into exercises
func selectExercises(names []string, all bool) ([]*exercise.Exercise, error) {
	if all {
		if len(names) > 0 {
			return nil, errors.New("give exercise names or --all, not both")
		}
		return exercise.All(), nil
	}
	if len(names) == 0 {
		return nil, errors.New("no exercise given; see \"classdb list\"")
	}
	out := make([]*exercise.Exercise, 0, len(names))
	for _, name := range names {
		e, err := exercise.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func runExercises(cmd *cobra.Command, args []string) (err error) {
	u := newUI()
	exercises, err := selectExercises(args, runAll)
	if err != nil {
		return err
	}

	out, err := openExport(cmd)
	if err != nil {
		return err
	}
	reporter := &stepReporter{u: u, out: out}
	if out != nil {
		defer func() {
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err == nil {
				err = reporter.err
			}
			if err == nil {
				u.Println(u.Success(fmt.Sprintf("%s %s saved to %s",
					humanize.Comma(out.RowCount()), plural(out.RowCount(), "row", "rows"), out.Path())))
			}
		}()
	}

	var totals exercise.Summary
	for _, e := range exercises {
		sum, err := runOne(cmd, u, reporter, e)
		if err != nil {
			return errors.Annotate(err, e.Name)
		}
		totals.Steps += sum.Steps
		totals.Queries += sum.Queries
		totals.Statements += sum.Statements
		totals.Rows += sum.Rows
		totals.Rejected += sum.Rejected
		totals.Failed += sum.Failed
		totals.Unexpected += sum.Unexpected
		totals.Duration += sum.Duration
	}

	if len(exercises) > 1 {
		status := "Success"
		if totals.Unexpected > 0 {
			status = fmt.Sprintf("Failed (%d unexpected)", totals.Unexpected)
		}
		u.Println(u.SummaryBox(fmt.Sprintf("%d exercises", len(exercises)), summaryItems(totals, status)))
	}
	if totals.Unexpected > 0 && runKeep {
		u.Println(u.Warning(fmt.Sprintf("%d steps behaved differently on a reused database", totals.Unexpected)))
	}
	return unexpectedSteps(totals.Unexpected, runKeep)
}

// unexpectedSteps fails a run with unexpected outcomes unless the databases
// were reused, where earlier runs may have changed the rows.
func unexpectedSteps(n int, keep bool) error {
	if n == 0 || keep {
		return nil
	}
	return errors.Errorf("%d steps did not behave as expected", n)
}

func runOne(cmd *cobra.Command, u *ui.UI, reporter *stepReporter, e *exercise.Exercise) (exercise.Summary, error) {
	if !runKeep {
		if err := removeDatabase(e.Name); err != nil {
			return exercise.Summary{}, err
		}
	}

	pool, err := openDatabase(cmd.Context(), u, e.Name, e.ForeignKeys)
	if err != nil {
		return exercise.Summary{}, err
	}
	defer pool.Close()

	runner := exercise.NewRunner(pool, reporter, config.QueryTimeout)
	sum, err := runner.Run(cmd.Context(), e)
	if err != nil {
		return sum, err
	}
	stats := pool.Stats()
	logger.Debugf("%s: %d queries, %d failed, average %v", e.Name, stats.TotalQueries, stats.FailedQueries, stats.AvgLatency)
	return sum, nil
}
