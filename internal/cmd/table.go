package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/ui"
)

// nullValue is the argument spelling of SQL NULL
const nullValue = "NULL"

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and edit the tables of a database",
	Long: `Generic create, read, update and delete operations on any table of an
exercise database. Values are given as column=value pairs; the word NULL
stores a SQL NULL.

Examples:
  classdb table list sales-app
  classdb table show sales-app Sales
  classdb table insert sales-app Customers name="ООО Дельта" email=info@delta.ru
  classdb table update sales-app Customers 4 phone=NULL
  classdb table create sales-app Notes "id INTEGER PRIMARY KEY, body TEXT NOT NULL"`,
}

var tableListCmd = &cobra.Command{
	Use:   "list <database>",
	Short: "List tables, views and triggers",
	Args:  cobra.ExactArgs(1),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		ctx := cmd.Context()
		rs := &database.ResultSet{Columns: []string{"kind", "name"}}
		add := func(kind string, names []string, err error) error {
			if err != nil {
				return err
			}
			for _, n := range names {
				rs.Rows = append(rs.Rows, []string{kind, n})
			}
			return nil
		}
		tables, err := pool.Tables(ctx)
		if err := add("table", tables, err); err != nil {
			return err
		}
		views, err := pool.Views(ctx)
		if err := add("view", views, err); err != nil {
			return err
		}
		triggers, err := pool.Triggers(ctx)
		if err := add("trigger", triggers, err); err != nil {
			return err
		}
		return printResult(cmd, u, "", rs)
	}),
}

var tableColumnsCmd = &cobra.Command{
	Use:   "columns <database> <table>",
	Short: "Show the columns of a table",
	Args:  cobra.ExactArgs(2),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		cols, err := pool.Columns(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		rs := &database.ResultSet{Columns: []string{"name", "type", "not null", "default", "primary key"}}
		for _, c := range cols {
			def := ""
			if c.Default.Valid {
				def = c.Default.String
			}
			rs.Rows = append(rs.Rows, []string{c.Name, c.Type, yesNo(c.NotNull), def, yesNo(c.PrimaryKey > 0)})
		}
		return printResult(cmd, u, args[1], rs)
	}),
}

var tableFKCmd = &cobra.Command{
	Use:   "fks <database> <table>",
	Short: "Show the foreign keys of a table",
	Args:  cobra.ExactArgs(2),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		fks, err := pool.ForeignKeys(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if len(fks) == 0 {
			u.Println(u.Muted(args[1] + " has no foreign keys"))
			return nil
		}
		for _, fk := range fks {
			u.Println("  " + fk.String())
		}
		return nil
	}),
}

var tableShowCmd = &cobra.Command{
	Use:   "show <database> <table>",
	Short: "Print every row of a table",
	Args:  cobra.ExactArgs(2),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		rs, err := pool.TableData(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printResult(cmd, u, args[1], rs)
	}),
}

var tableInsertCmd = &cobra.Command{
	Use:   "insert <database> <table> <column=value>...",
	Short: "Insert a row",
	Args:  cobra.MinimumNArgs(3),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		row, err := parseAssignments(args[2:])
		if err != nil {
			return err
		}
		id, err := pool.InsertRow(cmd.Context(), args[1], row)
		if err != nil {
			return describeFailure(err)
		}
		u.Println(u.Success(fmt.Sprintf("inserted row %d into %s", id, args[1])))
		return nil
	}),
}

var tableUpdateCmd = &cobra.Command{
	Use:   "update <database> <table> <key> <column=value>...",
	Short: "Update the row with the given primary key",
	Args:  cobra.MinimumNArgs(4),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		row, err := parseAssignments(args[3:])
		if err != nil {
			return err
		}
		n, err := pool.UpdateRow(cmd.Context(), args[1], args[2], row)
		if err != nil {
			return describeFailure(err)
		}
		return reportAffected(u, n, "updated", args[1])
	}),
}

var tableUpdateAllCmd = &cobra.Command{
	Use:   "update-all <database> <table> <column=value>...",
	Short: "Update every row of a table",
	Args:  cobra.MinimumNArgs(3),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		row, err := parseAssignments(args[2:])
		if err != nil {
			return err
		}
		n, err := pool.UpdateAll(cmd.Context(), args[1], row)
		if err != nil {
			return describeFailure(err)
		}
		return reportAffected(u, n, "updated", args[1])
	}),
}

var tableDeleteCmd = &cobra.Command{
	Use:   "delete <database> <table> <key>",
	Short: "Delete the row with the given primary key",
	Args:  cobra.ExactArgs(3),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		n, err := pool.DeleteRow(cmd.Context(), args[1], args[2])
		if err != nil {
			return describeFailure(err)
		}
		return reportAffected(u, n, "deleted", args[1])
	}),
}

var tableDeleteAllCmd = &cobra.Command{
	Use:   "delete-all <database> <table>",
	Short: "Delete every row of a table",
	Args:  cobra.ExactArgs(2),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		n, err := pool.DeleteAll(cmd.Context(), args[1])
		if err != nil {
			return describeFailure(err)
		}
		return reportAffected(u, n, "deleted", args[1])
	}),
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <database> <table> <columns>",
	Short: "Create a table from a column definition list",
	Args:  cobra.ExactArgs(3),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		if err := pool.CreateTable(cmd.Context(), args[1], args[2]); err != nil {
			return err
		}
		u.Println(u.Success("created table " + args[1]))
		return nil
	}),
}

var tableDropCmd = &cobra.Command{
	Use:   "drop <database> <table>",
	Short: "Drop a table",
	Args:  cobra.ExactArgs(2),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		if err := pool.DropTable(cmd.Context(), args[1]); err != nil {
			return describeFailure(err)
		}
		u.Println(u.Success("dropped table " + args[1]))
		return nil
	}),
}

var tableAddColumnCmd = &cobra.Command{
	Use:   "add-column <database> <table> <definition>",
	Short: "Add a column given as \"name TYPE [constraints]\"",
	Args:  cobra.ExactArgs(3),
	RunE: withPool(func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error {
		if err := pool.AddColumn(cmd.Context(), args[1], args[2]); err != nil {
			return err
		}
		u.Println(u.Success("added column to " + args[1]))
		return nil
	}),
}

func init() {
	tableCmd.AddCommand(tableListCmd, tableColumnsCmd, tableFKCmd, tableShowCmd,
		tableInsertCmd, tableUpdateCmd, tableUpdateAllCmd, tableDeleteCmd, tableDeleteAllCmd,
		tableCreateCmd, tableDropCmd, tableAddColumnCmd)
	rootCmd.AddCommand(tableCmd)
}

// withPool opens the database named by the first argument around fn
func withPool(fn func(cmd *cobra.Command, u *ui.UI, pool *database.Pool, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		u := newUI()
		pool, err := openNamed(cmd.Context(), u, args[0])
		if err != nil {
			return err
		}
		defer pool.Close()
		return fn(cmd, u, pool, args)
	}
}

// parseAssignments turns column=value arguments into a row
func parseAssignments(args []string) (database.Row, error) {
	row := database.Row{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.NotValidf("assignment %q, expected column=value", arg)
		}
		if _, dup := row[name]; dup {
			return nil, errors.NotValidf("column %q given twice", name)
		}
		if value == nullValue {
			row[name] = nil
			continue
		}
		row[name] = value
	}
	return row, nil
}

func reportAffected(u *ui.UI, n int64, verb, table string) error {
	u.Println(u.Success(fmt.Sprintf("%s %s %s in %s", verb, humanize.Comma(n), plural(n, "row", "rows"), table)))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
