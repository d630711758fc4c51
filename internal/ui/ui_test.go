package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willfong/classroom-sql/internal/database"
)

func TestPlainMessages(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"success", u.Success("done"), "[OK] done"},
		{"error", u.Error("boom"), "[FAILED] boom"},
		{"warning", u.Warning("careful"), "[WARN] careful"},
		{"rejected", u.Rejected("CHECK constraint failed"), "[REJECTED] CHECK constraint failed"},
		{"header", u.Header("academy"), "=== academy ==="},
		{"muted", u.Muted("quiet"), "quiet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestSummaryBoxPlain(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})
	out := u.SummaryBox("Run", []KV{{Key: "Queries", Value: "15"}, {Key: "Rejected", Value: "2"}})
	if !strings.Contains(out, "=== Run ===") || !strings.Contains(out, "Queries:") || !strings.Contains(out, "15") {
		t.Errorf("Unexpected summary: %q", out)
	}
}

func TestTablePlain(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})
	rs := &database.ResultSet{
		Columns: []string{"name", "financing"},
		Rows: [][]string{
			{"Математика", "12000"},
			{"Физика", "NULL"},
		},
	}

	out := u.Table(rs)
	for _, want := range []string{"name", "financing", "Математика", "12000", "NULL", "+", "|"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}

	t.Run("Empty result keeps headers", func(t *testing.T) {
		out := u.Table(&database.ResultSet{Columns: []string{"id"}, Rows: [][]string{}})
		if !strings.Contains(out, "id") || !strings.Contains(out, NoRows) {
			t.Errorf("Expected header and %q, got:\n%s", NoRows, out)
		}
	})

	t.Run("Nil result", func(t *testing.T) {
		if out := u.Table(nil); out != NoRows {
			t.Errorf("Expected %q, got %q", NoRows, out)
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"Травматологическое", 6, "Травм…"},
		{"two\nlines", 20, "two lines"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d): expected %q, got %q", tt.in, tt.width, tt.want, got)
		}
	}
}

func TestSpinnerPlain(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)
	s := u.NewSpinner("Opening academy.db")
	s.Start()
	s.Success("ready")
	if got := buf.String(); got != "Opening academy.db... ready\n" {
		t.Errorf("Unexpected spinner output %q", got)
	}
}

func TestProgressPlain(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)
	p := u.NewProgressBar("Creating", 2)
	p.Increment("academy")
	p.Increment("hospital")
	p.Complete()

	want := "  [1/2] academy\n  [2/2] hospital\n2/2 done\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func loaderFor(data map[string]*database.ResultSet) TableLoader {
	return func(_ context.Context, name string) (*database.ResultSet, error) {
		rs, ok := data[name]
		if !ok {
			return nil, errors.New("no such table: " + name)
		}
		return rs, nil
	}
}

func runCmd(t *testing.T, b *Browser, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	b.Update(cmd())
}

func TestBrowser(t *testing.T) {
	data := map[string]*database.ResultSet{
		"doctors": {Columns: []string{"id", "last_name"}, Rows: [][]string{{"1", "Мельников"}, {"2", "Белова"}}},
		"wards":   {Columns: []string{"id", "name", "capacity"}, Rows: [][]string{}},
	}
	b := NewBrowser(context.Background(), []string{"doctors", "wards", "missing"}, loaderFor(data))

	var copied string
	b.copy = func(s string) error {
		copied = s
		return nil
	}

	runCmd(t, b, b.Init())
	if !strings.Contains(b.View(), "Мельников") {
		t.Errorf("Expected doctors on screen, got:\n%s", b.View())
	}
	if !strings.Contains(b.View(), "2 rows") {
		t.Error("Expected row count in footer")
	}

	t.Run("Copy selected row", func(t *testing.T) {
		b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		if copied != "1\tМельников" {
			t.Errorf("Expected first row copied, got %q", copied)
		}
	})

	t.Run("Switch to an empty table", func(t *testing.T) {
		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyTab})
		runCmd(t, b, cmd)
		if b.Current() != "wards" {
			t.Fatalf("Expected wards, got %s", b.Current())
		}
		view := b.View()
		if !strings.Contains(view, "capacity") || !strings.Contains(view, NoRows) {
			t.Errorf("Expected empty wards grid, got:\n%s", view)
		}
	})

	t.Run("Load errors are shown", func(t *testing.T) {
		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRight})
		runCmd(t, b, cmd)
		if !strings.Contains(b.View(), "no such table: missing") {
			t.Errorf("Expected load error, got:\n%s", b.View())
		}
	})

	t.Run("Wraps around", func(t *testing.T) {
		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyTab})
		runCmd(t, b, cmd)
		if b.Current() != "doctors" {
			t.Errorf("Expected doctors after wrapping, got %s", b.Current())
		}
		_, cmd = b.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		runCmd(t, b, cmd)
		if b.Current() != "missing" {
			t.Errorf("Expected missing after going back, got %s", b.Current())
		}
	})

	t.Run("Stale loads are ignored", func(t *testing.T) {
		b.Update(tableLoadedMsg{name: "doctors", rows: data["doctors"]})
		if !strings.Contains(b.View(), "no such table") {
			t.Error("Expected a load for another table to be ignored")
		}
	})

	t.Run("Quit", func(t *testing.T) {
		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("Expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("Expected tea.QuitMsg")
		}
	})
}
