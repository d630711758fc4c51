package database

import (
	"context"
	"testing"

	"github.com/juju/errors"
)

func TestEditorRows(t *testing.T) {
	pool := openTestPool(t, false)
	ctx := context.Background()

	t.Run("insert", func(t *testing.T) {
		id, err := pool.InsertRow(ctx, "departments", Row{"name": "Neurology", "budget": 300})
		if err != nil {
			t.Fatalf("InsertRow failed: %v", err)
		}
		if id != 3 {
			t.Errorf("Expected id 3, got %d", id)
		}
	})

	t.Run("insert unknown column", func(t *testing.T) {
		_, err := pool.InsertRow(ctx, "departments", Row{"title": "x"})
		if !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		values := Row{"id": 3, "budget": 400}
		n, err := pool.UpdateRow(ctx, "departments", 3, values)
		if err != nil || n != 1 {
			t.Fatalf("UpdateRow returned %d, %v", n, err)
		}
		if len(values) != 2 || values["id"] != 3 {
			t.Errorf("Expected caller's row to be left alone, got %v", values)
		}
		var budget float64
		if err := pool.QueryRowContext(ctx, "SELECT budget FROM departments WHERE id = 3").Scan(&budget); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if budget != 400 {
			t.Errorf("Expected budget 400, got %v", budget)
		}
	})

	t.Run("update missing row", func(t *testing.T) {
		_, err := pool.UpdateRow(ctx, "departments", 42, Row{"budget": 1})
		if !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound, got %v", err)
		}
	})

	t.Run("update violating check", func(t *testing.T) {
		_, err := pool.UpdateRow(ctx, "departments", 1, Row{"budget": -5})
		if !IsConstraintViolation(err) {
			t.Errorf("Expected constraint violation, got %v", err)
		}
	})

	t.Run("update all", func(t *testing.T) {
		n, err := pool.UpdateAll(ctx, "wards", Row{"department_id": 1})
		if err != nil || n != 2 {
			t.Errorf("UpdateAll returned %d, %v", n, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if _, err := pool.DeleteRow(ctx, "departments", 3); err != nil {
			t.Fatalf("DeleteRow failed: %v", err)
		}
		if _, err := pool.DeleteRow(ctx, "departments", 3); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound on second delete, got %v", err)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		n, err := pool.DeleteAll(ctx, "wards")
		if err != nil || n != 2 {
			t.Errorf("DeleteAll returned %d, %v", n, err)
		}
		rs, err := pool.TableData(ctx, "wards")
		if err != nil || !rs.Empty() {
			t.Errorf("Expected empty wards, got %v (%v)", rs, err)
		}
		if len(rs.Columns) != 3 {
			t.Errorf("Expected column names even without rows, got %v", rs.Columns)
		}
	})
}

func TestEditorStructure(t *testing.T) {
	pool := openTestPool(t, false)
	ctx := context.Background()

	if err := pool.CreateTable(ctx, "sponsors", "id INTEGER PRIMARY KEY, name TEXT NOT NULL"); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if err := pool.CreateTable(ctx, "sponsors", "id INTEGER"); !errors.Is(err, errors.AlreadyExists) {
		t.Errorf("Expected AlreadyExists, got %v", err)
	}
	if err := pool.CreateTable(ctx, "bad name", "id INTEGER"); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid, got %v", err)
	}
	if err := pool.CreateTable(ctx, "notes", "id INTEGER); DROP TABLE wards; --"); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for a second statement, got %v", err)
	}
	if ok, err := pool.HasTable(ctx, "wards"); err != nil || !ok {
		t.Errorf("Expected wards to survive, got %v (%v)", ok, err)
	}
	if err := pool.AddColumn(ctx, "sponsors", "note TEXT; DROP TABLE wards"); !errors.Is(err, errors.NotValid) {
		t.Errorf("Expected NotValid for a second statement, got %v", err)
	}

	if err := pool.AddColumn(ctx, "sponsors", "phone TEXT DEFAULT ''"); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	columns, err := pool.Columns(ctx, "sponsors")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if len(columns) != 3 || columns[2].Name != "phone" || columns[2].Type != "TEXT" {
		t.Errorf("Unexpected columns after AddColumn: %+v", columns)
	}

	if err := pool.DropTable(ctx, "sponsors"); err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if err := pool.DropTable(ctx, "sponsors"); !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}
