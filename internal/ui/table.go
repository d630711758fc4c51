package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/willfong/classroom-sql/internal/database"
)

// MaxCellWidth truncates long values in rendered tables
const MaxCellWidth = 48

// NoRows is printed for an empty result set
const NoRows = "(no rows)"

// Table renders a result set as a bordered table. Plain mode uses ASCII borders.
func (u *UI) Table(rs *database.ResultSet) string {
	if rs == nil || len(rs.Columns) == 0 {
		return u.Muted(NoRows)
	}

	rows := make([][]string, len(rs.Rows))
	for i, r := range rs.Rows {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = truncate(v, MaxCellWidth)
		}
		rows[i] = cells
	}

	t := table.New().
		Headers(rs.Columns...).
		Rows(rows...)

	if !u.shouldStyle() {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().Padding(0, 1)
			})
	} else {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(StyleBorder).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return StyleHeader.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	}

	out := t.String()
	if rs.Empty() {
		out += "\n" + u.Muted(NoRows)
	}
	return out
}

// truncate shortens s to at most width runes, marking the cut with "…"
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
