package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/juju/errors"
)

// Column describes one column of a table
type Column struct {
	Position   int            `db:"cid"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	NotNull    bool           `db:"not_null"`
	Default    sql.NullString `db:"dflt_value"`
	PrimaryKey int            `db:"pk"`
}

// ForeignKey describes a reference from a column to another table
type ForeignKey struct {
	Column    string `db:"from_column"`
	RefTable  string `db:"ref_table"`
	RefColumn string `db:"to_column"`
}

// String renders the relation the way the structure view prints it
func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s -> %s.%s", fk.Column, fk.RefTable, fk.RefColumn)
}

// Tables lists user tables, excluding engine-internal ones
func (p *Pool) Tables(ctx context.Context) ([]string, error) {
	var query string
	switch p.dialect.Name {
	case "mysql":
		query = `SELECT table_name FROM information_schema.tables
			WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
			ORDER BY table_name`
	default:
		query = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name`
	}

	var tables []string
	if err := p.SelectContext(ctx, &tables, query); err != nil {
		return nil, errors.Annotate(err, "list tables")
	}
	return tables, nil
}

// Views lists views defined in the database
func (p *Pool) Views(ctx context.Context) ([]string, error) {
	var query string
	switch p.dialect.Name {
	case "mysql":
		query = `SELECT table_name FROM information_schema.views
			WHERE table_schema = DATABASE() ORDER BY table_name`
	default:
		query = `SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name`
	}

	var views []string
	if err := p.SelectContext(ctx, &views, query); err != nil {
		return nil, errors.Annotate(err, "list views")
	}
	return views, nil
}

// Triggers lists triggers defined in the database
func (p *Pool) Triggers(ctx context.Context) ([]string, error) {
	var query string
	switch p.dialect.Name {
	case "mysql":
		query = `SELECT trigger_name FROM information_schema.triggers
			WHERE trigger_schema = DATABASE() ORDER BY trigger_name`
	default:
		query = `SELECT name FROM sqlite_master WHERE type = 'trigger' ORDER BY name`
	}

	var triggers []string
	if err := p.SelectContext(ctx, &triggers, query); err != nil {
		return nil, errors.Annotate(err, "list triggers")
	}
	return triggers, nil
}

// HasTable reports whether a user table with this exact name exists
func (p *Pool) HasTable(ctx context.Context, table string) (bool, error) {
	tables, err := p.Tables(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t == table {
			return true, nil
		}
	}
	return false, nil
}

// Columns returns the column definitions of a table in declaration order
func (p *Pool) Columns(ctx context.Context, table string) ([]Column, error) {
	if err := p.requireTable(ctx, table); err != nil {
		return nil, err
	}

	var query string
	switch p.dialect.Name {
	case "mysql":
		query = `SELECT ordinal_position - 1 AS cid, column_name AS name, column_type AS type,
				is_nullable = 'NO' AS not_null, column_default AS dflt_value,
				IF(column_key = 'PRI', 1, 0) AS pk
			FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ?
			ORDER BY ordinal_position`
	default:
		query = `SELECT cid, name, type, "notnull" AS not_null, dflt_value, pk
			FROM pragma_table_info(?) ORDER BY cid`
	}

	var columns []Column
	if err := p.SelectContext(ctx, &columns, query, table); err != nil {
		return nil, errors.Annotatef(err, "read columns of %s", table)
	}
	return columns, nil
}

// PrimaryKey returns the first primary key column of a table, falling back
// to the first column when the table declares none
func (p *Pool) PrimaryKey(ctx context.Context, table string) (string, error) {
	columns, err := p.Columns(ctx, table)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", errors.NotFoundf("columns of table %q", table)
	}
	for _, c := range columns {
		if c.PrimaryKey == 1 {
			return c.Name, nil
		}
	}
	return columns[0].Name, nil
}

// ForeignKeys returns the outgoing references of a table
func (p *Pool) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	if err := p.requireTable(ctx, table); err != nil {
		return nil, err
	}

	var query string
	switch p.dialect.Name {
	case "mysql":
		query = `SELECT column_name AS from_column, referenced_table_name AS ref_table,
				referenced_column_name AS to_column
			FROM information_schema.key_column_usage
			WHERE table_schema = DATABASE() AND table_name = ?
				AND referenced_table_name IS NOT NULL
			ORDER BY ordinal_position`
	default:
		query = `SELECT "from" AS from_column, "table" AS ref_table, COALESCE("to", '') AS to_column
			FROM pragma_foreign_key_list(?) ORDER BY id, seq`
	}

	var fks []ForeignKey
	if err := p.SelectContext(ctx, &fks, query, table); err != nil {
		return nil, errors.Annotatef(err, "read foreign keys of %s", table)
	}
	return fks, nil
}

// requireTable validates a table name against the live catalogue
func (p *Pool) requireTable(ctx context.Context, table string) error {
	if err := ValidateIdentifier(table); err != nil {
		return err
	}
	ok, err := p.HasTable(ctx, table)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NotFoundf("table %q", table)
	}
	return nil
}
