package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/config"
)

const testSchema = `
CREATE TABLE departments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	budget REAL CHECK (budget >= 0)
);
CREATE TABLE wards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	department_id INTEGER REFERENCES departments(id)
);
CREATE TRIGGER no_closed_wards BEFORE INSERT ON wards
WHEN NEW.name = 'closed'
BEGIN
	SELECT RAISE(ABORT, 'Ward is closed');
END;
INSERT INTO departments (name, budget) VALUES ('Cardiology', 1000), ('Surgery', 2500.5);
INSERT INTO wards (name, department_id) VALUES ('A1', 1), ('B2', 2);
`

func openTestPool(t *testing.T, foreignKeys bool) *Pool {
	t.Helper()
	pool, err := NewPool(config.DatabaseConfig{
		Driver:      "sqlite3",
		DSN:         filepath.Join(t.TempDir(), "test.db"),
		ForeignKeys: foreignKeys,
	})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	ctx := context.Background()
	if err := pool.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := pool.ExecScript(ctx, testSchema); err != nil {
		t.Fatalf("ExecScript failed: %v", err)
	}
	return pool
}

func TestEnsureParseTime(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"no params", "root@tcp(localhost:3306)/school", "root@tcp(localhost:3306)/school?parseTime=true"},
		{"other params", "root@tcp(localhost:3306)/school?charset=utf8mb4", "root@tcp(localhost:3306)/school?charset=utf8mb4&parseTime=true"},
		{"already set", "root@tcp(localhost:3306)/school?parseTime=false", "root@tcp(localhost:3306)/school?parseTime=false"},
		{"case insensitive", "root@tcp(localhost:3306)/school?ParseTime=true", "root@tcp(localhost:3306)/school?ParseTime=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ensureParseTime(tt.dsn); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	t.Run("foreign keys on", func(t *testing.T) {
		dsn := sqliteDSN(config.DatabaseConfig{DSN: "data/academy.db", ForeignKeys: true})
		if !strings.HasPrefix(dsn, "file:data/academy.db?") {
			t.Errorf("Expected file URI, got %s", dsn)
		}
		if !strings.Contains(dsn, "_foreign_keys=on") {
			t.Errorf("Expected _foreign_keys=on, got %s", dsn)
		}
	})

	t.Run("explicit option wins", func(t *testing.T) {
		dsn := sqliteDSN(config.DatabaseConfig{DSN: "file:x.db?_fk=1", ForeignKeys: false})
		if strings.Contains(dsn, "_foreign_keys") {
			t.Errorf("Expected existing _fk option to be kept alone, got %s", dsn)
		}
	})

	t.Run("busy timeout", func(t *testing.T) {
		dsn := sqliteDSN(config.DatabaseConfig{DSN: "x.db", BusyTimeout: config.DBBusyTimeout})
		if !strings.Contains(dsn, "_busy_timeout=5000") {
			t.Errorf("Expected _busy_timeout=5000, got %s", dsn)
		}
	})
}

func TestNewPool(t *testing.T) {
	t.Run("requires dsn", func(t *testing.T) {
		if _, err := NewPool(config.DatabaseConfig{Driver: "sqlite3"}); err == nil {
			t.Error("Expected error for empty DSN")
		}
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		if _, err := NewPool(config.DatabaseConfig{Driver: "oracle", DSN: "x"}); err == nil {
			t.Error("Expected error for unknown driver")
		}
	})

	t.Run("sqlite single connection", func(t *testing.T) {
		pool := openTestPool(t, false)
		if pool.DB().Stats().MaxOpenConnections != 1 {
			t.Errorf("Expected 1 max open connection, got %d", pool.DB().Stats().MaxOpenConnections)
		}
		if pool.Dialect() != SQLite {
			t.Errorf("Expected sqlite dialect, got %s", pool.Dialect().Name)
		}
	})
}

func TestQueryResult(t *testing.T) {
	pool := openTestPool(t, false)
	ctx := context.Background()

	rs, err := pool.QueryResult(ctx, "SELECT name, budget, NULL AS note FROM departments ORDER BY id")
	if err != nil {
		t.Fatalf("QueryResult failed: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", rs.Len())
	}
	if got := strings.Join(rs.Columns, ","); got != "name,budget,note" {
		t.Errorf("Expected columns name,budget,note, got %s", got)
	}
	if rs.Rows[1][1] != "2500.5" {
		t.Errorf("Expected 2500.5, got %s", rs.Rows[1][1])
	}
	if rs.Rows[0][2] != NullDisplay {
		t.Errorf("Expected NULL, got %s", rs.Rows[0][2])
	}
	if names := rs.Column("name"); len(names) != 2 || names[0] != "Cardiology" {
		t.Errorf("Unexpected name column: %v", names)
	}

	stats := pool.Stats()
	if stats.TotalQueries == 0 {
		t.Error("Expected queries to be counted")
	}
}

func TestIntrospection(t *testing.T) {
	pool := openTestPool(t, false)
	ctx := context.Background()

	tables, err := pool.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if strings.Join(tables, ",") != "departments,wards" {
		t.Errorf("Expected departments,wards (no sqlite_sequence), got %v", tables)
	}

	columns, err := pool.Columns(ctx, "departments")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if len(columns) != 3 || columns[1].Name != "name" || !columns[1].NotNull {
		t.Errorf("Unexpected columns: %+v", columns)
	}

	pk, err := pool.PrimaryKey(ctx, "wards")
	if err != nil || pk != "id" {
		t.Errorf("Expected primary key id, got %q (%v)", pk, err)
	}

	fks, err := pool.ForeignKeys(ctx, "wards")
	if err != nil {
		t.Fatalf("ForeignKeys failed: %v", err)
	}
	if len(fks) != 1 || fks[0].String() != "department_id -> departments.id" {
		t.Errorf("Unexpected foreign keys: %v", fks)
	}

	triggers, err := pool.Triggers(ctx)
	if err != nil || len(triggers) != 1 {
		t.Errorf("Expected one trigger, got %v (%v)", triggers, err)
	}

	if _, err := pool.Columns(ctx, "patients"); !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound for missing table, got %v", err)
	}
	if _, err := pool.Columns(ctx, "wards; DROP TABLE wards"); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for bad identifier, got %v", err)
	}
}

func TestConstraintClassification(t *testing.T) {
	pool := openTestPool(t, false)
	ctx := context.Background()

	t.Run("check constraint", func(t *testing.T) {
		_, err := pool.ExecContext(ctx, "INSERT INTO departments (name, budget) VALUES ('Oncology', -1)")
		if !IsConstraintViolation(err) {
			t.Fatalf("Expected constraint violation, got %v", err)
		}
		if IsTriggerAbort(err) {
			t.Error("CHECK failure should not be reported as trigger abort")
		}
	})

	t.Run("trigger abort", func(t *testing.T) {
		_, err := pool.ExecContext(ctx, "INSERT INTO wards (name, department_id) VALUES ('closed', 1)")
		if !IsTriggerAbort(err) {
			t.Fatalf("Expected trigger abort, got %v", err)
		}
		if msg := ViolationMessage(err); msg != "Ward is closed" {
			t.Errorf("Expected 'Ward is closed', got %q", msg)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := pool.ExecContext(ctx, "INSERT INTO nowhere VALUES (1)")
		if err == nil || IsConstraintViolation(err) {
			t.Errorf("Expected non-constraint error, got %v", err)
		}
	})
}

func TestForeignKeysOption(t *testing.T) {
	ctx := context.Background()

	off := openTestPool(t, false)
	if _, err := off.ExecContext(ctx, "INSERT INTO wards (name, department_id) VALUES ('C3', 99)"); err != nil {
		t.Errorf("Expected dangling reference to be accepted with foreign keys off, got %v", err)
	}

	on := openTestPool(t, true)
	_, err := on.ExecContext(ctx, "INSERT INTO wards (name, department_id) VALUES ('C3', 99)")
	if !IsConstraintViolation(err) {
		t.Errorf("Expected foreign key violation, got %v", err)
	}
}
