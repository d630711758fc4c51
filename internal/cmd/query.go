package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
	"github.com/willfong/classroom-sql/internal/ui"
)

var queryCmd = &cobra.Command{
	Use:   "query <database> <sql>",
	Short: "Run one SQL statement against an exercise database",
	Long: `Run a SQL statement against the database of an exercise. Statements
that return rows are printed as a table (and saved with --export or --export-path);
other statements print the number of rows affected. A statement refused
by a constraint or trigger prints the engine's message.

Examples:
  classdb query music-views "SELECT * FROM Top3Artists"
  classdb query sports-triggers "INSERT INTO employees (full_name, position, salary, hire_date) VALUES ('Тест', 'Продавец', 100, DATE('now'))"
  classdb query hospital "SELECT * FROM doctors" --export-path doctors.csv --export-format csv`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// returnsRows reports whether a statement produces a result set
func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(strings.TrimLeft(fields[0], "(")) {
	case "SELECT", "WITH", "PRAGMA", "EXPLAIN", "VALUES", "SHOW", "DESCRIBE":
		return true
	}
	return false
}

// openNamed opens the database of an exercise, or of any other name with defaults
func openNamed(ctx context.Context, u *ui.UI, name string) (*database.Pool, error) {
	fk := false
	if e, err := exercise.Get(name); err == nil {
		fk = e.ForeignKeys
	}
	return openDatabase(ctx, u, name, fk)
}

func runQuery(cmd *cobra.Command, args []string) error {
	u := newUI()
	pool, err := openNamed(cmd.Context(), u, args[0])
	if err != nil {
		return err
	}
	defer pool.Close()

	return execStatement(cmd, u, pool, args[1])
}

func execStatement(cmd *cobra.Command, u *ui.UI, pool *database.Pool, stmt string) error {
	ctx := cmd.Context()
	if returnsRows(stmt) {
		rs, err := pool.QueryResult(ctx, stmt)
		if err != nil {
			return describeFailure(err)
		}
		return printResult(cmd, u, "", rs)
	}

	result, err := pool.ExecContext(ctx, stmt)
	if err != nil {
		return describeFailure(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	u.Println(u.Success(fmt.Sprintf("%s %s affected", humanize.Comma(n), plural(n, "row", "rows"))))
	return nil
}

// describeFailure turns a constraint or trigger violation into a readable error
func describeFailure(err error) error {
	if database.IsConstraintViolation(err) {
		return errors.Errorf("refused by the database: %s", database.ViolationMessage(err))
	}
	return err
}
