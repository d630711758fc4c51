package database

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Row maps column names to values for insert and update
type Row map[string]interface{}

// TableData returns every row of a table
func (p *Pool) TableData(ctx context.Context, table string) (*ResultSet, error) {
	if err := p.requireTable(ctx, table); err != nil {
		return nil, err
	}
	return p.QueryResult(ctx, "SELECT * FROM "+p.dialect.Quote(table))
}

// InsertRow inserts one row and returns the new row id
func (p *Pool) InsertRow(ctx context.Context, table string, row Row) (int64, error) {
	names, err := p.checkColumns(ctx, table, row)
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, errors.NotValidf("insert into %q without values", table)
	}

	quoted := make([]string, len(names))
	marks := make([]string, len(names))
	args := make([]interface{}, len(names))
	for i, n := range names {
		quoted[i] = p.dialect.Quote(n)
		marks[i] = "?"
		args[i] = row[n]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		p.dialect.Quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	result, err := p.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Annotatef(err, "insert into %s", table)
	}
	return result.LastInsertId()
}

// UpdateRow updates the row whose primary key equals key
func (p *Pool) UpdateRow(ctx context.Context, table string, key interface{}, row Row) (int64, error) {
	pk, err := p.PrimaryKey(ctx, table)
	if err != nil {
		return 0, err
	}
	row = maps.Clone(row)
	delete(row, pk)

	set, args, err := p.assignments(ctx, table, row)
	if err != nil {
		return 0, err
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		p.dialect.Quote(table), set, p.dialect.Quote(pk))
	n, err := p.execAffected(ctx, query, args...)
	if err != nil {
		return 0, errors.Annotatef(err, "update %s", table)
	}
	if n == 0 {
		return 0, errors.NotFoundf("row %v in %q", key, table)
	}
	return n, nil
}

// UpdateAll applies the same values to every row of a table
func (p *Pool) UpdateAll(ctx context.Context, table string, row Row) (int64, error) {
	set, args, err := p.assignments(ctx, table, row)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s", p.dialect.Quote(table), set)
	n, err := p.execAffected(ctx, query, args...)
	if err != nil {
		return 0, errors.Annotatef(err, "update %s", table)
	}
	return n, nil
}

// DeleteRow deletes the row whose primary key equals key
func (p *Pool) DeleteRow(ctx context.Context, table string, key interface{}) (int64, error) {
	pk, err := p.PrimaryKey(ctx, table)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", p.dialect.Quote(table), p.dialect.Quote(pk))
	n, err := p.execAffected(ctx, query, key)
	if err != nil {
		return 0, errors.Annotatef(err, "delete from %s", table)
	}
	if n == 0 {
		return 0, errors.NotFoundf("row %v in %q", key, table)
	}
	return n, nil
}

// DeleteAll removes every row of a table
func (p *Pool) DeleteAll(ctx context.Context, table string) (int64, error) {
	if err := p.requireTable(ctx, table); err != nil {
		return 0, err
	}
	n, err := p.execAffected(ctx, "DELETE FROM "+p.dialect.Quote(table))
	if err != nil {
		return 0, errors.Annotatef(err, "delete from %s", table)
	}
	return n, nil
}

// CreateTable creates a table from a column definition list such as
// "id INTEGER PRIMARY KEY, name TEXT NOT NULL". The definition is passed to
// the engine as written, so it must be a single clause.
func (p *Pool) CreateTable(ctx context.Context, table, definition string) error {
	if err := ValidateIdentifier(table); err != nil {
		return err
	}
	if err := checkDefinition(definition); err != nil {
		return err
	}
	exists, err := p.HasTable(ctx, table)
	if err != nil {
		return err
	}
	if exists {
		return errors.AlreadyExistsf("table %q", table)
	}

	query := fmt.Sprintf("CREATE TABLE %s (%s)", p.dialect.Quote(table), definition)
	if _, err := p.ExecContext(ctx, query); err != nil {
		return errors.Annotatef(err, "create table %s", table)
	}
	return nil
}

// DropTable drops an existing table
func (p *Pool) DropTable(ctx context.Context, table string) error {
	if err := p.requireTable(ctx, table); err != nil {
		return err
	}
	if _, err := p.ExecContext(ctx, "DROP TABLE "+p.dialect.Quote(table)); err != nil {
		return errors.Annotatef(err, "drop table %s", table)
	}
	return nil
}

// AddColumn appends a column given as "name TYPE [constraints]"
func (p *Pool) AddColumn(ctx context.Context, table, definition string) error {
	if err := p.requireTable(ctx, table); err != nil {
		return err
	}
	if err := checkDefinition(definition); err != nil {
		return err
	}
	fields := strings.Fields(definition)
	if err := ValidateIdentifier(fields[0]); err != nil {
		return err
	}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(definition), fields[0]))
	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		p.dialect.Quote(table), p.dialect.Quote(fields[0]), rest)
	if _, err := p.ExecContext(ctx, strings.TrimSpace(query)); err != nil {
		return errors.Annotatef(err, "add column to %s", table)
	}
	return nil
}

// checkDefinition rejects empty column definitions and anything that
// would run as a second statement.
func checkDefinition(definition string) error {
	switch {
	case strings.TrimSpace(definition) == "":
		return errors.NotValidf("empty column definition")
	case strings.Contains(definition, ";"):
		return errors.NotValidf("column definition %q containing ';'", definition)
	}
	return nil
}

// assignments builds "a = ?, b = ?" for an update after validating columns
func (p *Pool) assignments(ctx context.Context, table string, row Row) (string, []interface{}, error) {
	names, err := p.checkColumns(ctx, table, row)
	if err != nil {
		return "", nil, err
	}
	if len(names) == 0 {
		return "", nil, errors.NotValidf("update of %q without values", table)
	}

	parts := make([]string, len(names))
	args := make([]interface{}, len(names))
	for i, n := range names {
		parts[i] = p.dialect.Quote(n) + " = ?"
		args[i] = row[n]
	}
	return strings.Join(parts, ", "), args, nil
}

// checkColumns validates every key of row against the table's columns and
// returns them in declaration order
func (p *Pool) checkColumns(ctx context.Context, table string, row Row) ([]string, error) {
	columns, err := p.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(columns))
	for _, c := range columns {
		position[c.Name] = c.Position
	}

	names := make([]string, 0, len(row))
	for name := range row {
		if _, ok := position[name]; !ok {
			return nil, errors.NotFoundf("column %q in table %q", name, table)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return position[names[i]] < position[names[j]] })
	return names, nil
}

func (p *Pool) execAffected(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := p.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
