package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/juju/errors"
)

// NullDisplay is how SQL NULL is rendered in a ResultSet
const NullDisplay = "NULL"

// ResultSet is a query result reduced to display strings
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

// Empty reports whether the result has no rows
func (rs *ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Column returns all values of the named column, or nil if it does not exist
func (rs *ResultSet) Column(name string) []string {
	idx := -1
	for i, c := range rs.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	values := make([]string, len(rs.Rows))
	for i, row := range rs.Rows {
		values[i] = row[idx]
	}
	return values
}

// QueryResult runs a query and collects every row as display strings
func (p *Pool) QueryResult(ctx context.Context, query string, args ...interface{}) (*ResultSet, error) {
	rows, err := p.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanResultSet(rows)
}

// ScanResultSet drains rows into a ResultSet
func ScanResultSet(rows *sql.Rows) (*ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Annotate(err, "read columns")
	}

	rs := &ResultSet{Columns: columns, Rows: [][]string{}}
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Annotate(err, "scan row")
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Annotate(err, "iterate rows")
	}
	return rs, nil
}

// FormatValue renders a driver value for display
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return NullDisplay
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
