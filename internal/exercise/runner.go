package exercise

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/willfong/classroom-sql/internal/database"
)

var logger = loggo.GetLogger("classdb.exercise")

// StepResult is what happened when a step ran
type StepResult struct {
	Rows     *database.ResultSet
	Affected int64
	Err      error
	Rejected bool
	Duration time.Duration
}

// Unexpected reports whether the result contradicts the step's expected outcome
func (r StepResult) Unexpected(s Step) bool {
	if s.Expect == ExpectRejected {
		return !r.Rejected
	}
	return r.Err != nil
}

// Summary totals a run
type Summary struct {
	Steps      int
	Queries    int
	Statements int
	Rows       int
	Rejected   int
	Failed     int
	Unexpected int
	Duration   time.Duration
}

// Reporter receives progress while an exercise runs
type Reporter interface {
	Start(e *Exercise)
	Step(index int, s Step, r StepResult)
	Finish(e *Exercise, s Summary)
}

// Runner executes exercises against one database pool
type Runner struct {
	db       *database.Pool
	reporter Reporter
	timeout  time.Duration
}

// NewRunner creates a runner; a nil reporter discards progress
func NewRunner(db *database.Pool, reporter Reporter, timeout time.Duration) *Runner {
	if reporter == nil {
		reporter = discard{}
	}
	return &Runner{db: db, reporter: reporter, timeout: timeout}
}

// Setup creates the schema and loads the sample rows
func (r *Runner) Setup(ctx context.Context, e *Exercise) error {
	schema, err := e.Schema()
	if err != nil {
		return err
	}
	if err := r.db.ExecScript(ctx, schema); err != nil {
		return errors.Annotatef(err, "create schema for %s", e.Name)
	}

	if e.Seed != nil {
		if err := e.Seed(ctx, r.db); err != nil {
			return errors.Annotatef(err, "seed %s", e.Name)
		}
		return nil
	}

	seed, err := e.SeedScript()
	if err != nil {
		return err
	}
	if err := r.db.ExecScript(ctx, seed); err != nil {
		return errors.Annotatef(err, "seed %s", e.Name)
	}
	logger.Debugf("schema and seed loaded for %s", e.Name)
	return nil
}

// Run sets the exercise up and executes every step in order. Step
// failures are reported and counted; only setup failures are returned.
func (r *Runner) Run(ctx context.Context, e *Exercise) (Summary, error) {
	start := time.Now()
	if err := r.Setup(ctx, e); err != nil {
		return Summary{}, err
	}

	r.reporter.Start(e)
	var sum Summary
	for i, step := range e.Steps {
		res := r.RunStep(ctx, step)

		sum.Steps++
		switch step.Kind {
		case StepQuery:
			sum.Queries++
			if res.Rows != nil {
				sum.Rows += res.Rows.Len()
			}
		case StepExec:
			sum.Statements += len(step.Statements)
		}
		switch {
		case res.Rejected:
			sum.Rejected++
		case res.Err != nil:
			sum.Failed++
		}
		if res.Unexpected(step) {
			sum.Unexpected++
			logger.Warningf("%s step %d (%s) did not behave as expected: %v", e.Name, i+1, step.Title, res.Err)
		}

		r.reporter.Step(i, step, res)
	}
	sum.Duration = time.Since(start)
	r.reporter.Finish(e, sum)
	return sum, nil
}

// RunStep executes a single step
func (r *Runner) RunStep(ctx context.Context, s Step) StepResult {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	var res StepResult
	switch s.Kind {
	case StepQuery:
		if len(s.Statements) != 1 {
			res.Err = errors.Errorf("query step %q needs exactly one statement", s.Title)
			break
		}
		st := s.Statements[0]
		res.Rows, res.Err = r.db.QueryResult(ctx, st.SQL, st.Args...)
	case StepExec:
		res.Affected, res.Err = r.execInTx(ctx, s.Statements)
	default:
		res.Err = errors.Errorf("unknown step kind %d", s.Kind)
	}
	res.Duration = time.Since(start)
	res.Rejected = res.Err != nil && database.IsConstraintViolation(res.Err)
	return res
}

// execInTx runs statements atomically and returns rows affected by the last one
func (r *Runner) execInTx(ctx context.Context, stmts []Statement) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Annotate(err, "begin transaction")
	}
	defer tx.Rollback()

	var affected int64
	for _, st := range stmts {
		result, err := tx.ExecContext(ctx, st.SQL, st.Args...)
		if err != nil {
			return 0, err
		}
		if affected, err = result.RowsAffected(); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Annotate(err, "commit")
	}
	return affected, nil
}

type discard struct{}

func (discard) Start(*Exercise) {}
func (discard) Step(int, Step, StepResult) {}
func (discard) Finish(*Exercise, Summary) {}
