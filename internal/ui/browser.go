package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
)

// TableLoader fetches the rows of one table
type TableLoader func(ctx context.Context, name string) (*database.ResultSet, error)

// tableLoadedMsg carries the result of a load
type tableLoadedMsg struct {
	name string
	rows *database.ResultSet
	err  error
}

// Browser is an interactive viewer over the tables of one database
type Browser struct {
	ctx     context.Context
	tables  []string
	current int
	load    TableLoader
	copy    func(string) error

	grid   table.Model
	rows   *database.ResultSet
	err    error
	status string
	width  int
	height int
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorPrimary).Underline(true)
	helpText       = "tab/→ next • shift+tab/← previous • r refresh • y copy row • q quit"
)

// NewBrowser creates a browser over the given tables
func NewBrowser(ctx context.Context, tables []string, load TableLoader) *Browser {
	grid := table.New(table.WithFocused(true), table.WithHeight(15))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(ColorSelection)
	grid.SetStyles(styles)

	return &Browser{
		ctx:    ctx,
		tables: tables,
		load:   load,
		copy:   clipboard.WriteAll,
		grid:   grid,
		width:  80,
		height: 24,
	}
}

// RunBrowser shows the browser full screen until the user quits
func RunBrowser(ctx context.Context, tables []string, load TableLoader) error {
	if len(tables) == 0 {
		return errors.New("database has no tables to browse")
	}
	_, err := tea.NewProgram(NewBrowser(ctx, tables, load), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Current returns the name of the table on screen
func (b *Browser) Current() string {
	if len(b.tables) == 0 {
		return ""
	}
	return b.tables[b.current]
}

func (b *Browser) loadCurrent() tea.Cmd {
	name := b.Current()
	ctx, load := b.ctx, b.load
	return func() tea.Msg {
		rs, err := load(ctx, name)
		return tableLoadedMsg{name: name, rows: rs, err: err}
	}
}

// Init loads the first table
func (b *Browser) Init() tea.Cmd {
	if len(b.tables) == 0 {
		return nil
	}
	return b.loadCurrent()
}

// Update handles keys, resizes and finished loads
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.grid.SetHeight(max(3, msg.Height-6))
		b.grid.SetWidth(msg.Width)
		return b, nil

	case tableLoadedMsg:
		if msg.name != b.Current() {
			return b, nil
		}
		b.err = msg.err
		b.status = ""
		if msg.err == nil {
			b.show(msg.rows)
		}
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "tab", "right":
			return b, b.switchTo(b.current + 1)
		case "shift+tab", "left":
			return b, b.switchTo(b.current - 1)
		case "r":
			b.status = "refreshing"
			return b, b.loadCurrent()
		case "y":
			b.copyRow()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.grid, cmd = b.grid.Update(msg)
	return b, cmd
}

func (b *Browser) switchTo(i int) tea.Cmd {
	if len(b.tables) == 0 {
		return nil
	}
	n := len(b.tables)
	b.current = ((i % n) + n) % n
	b.status = "loading"
	return b.loadCurrent()
}

// show replaces the grid contents. Rows are cleared before the columns
// change because the grid renders existing rows against the new columns.
func (b *Browser) show(rs *database.ResultSet) {
	b.rows = rs
	b.grid.SetRows(nil)

	cols := make([]table.Column, len(rs.Columns))
	for i, name := range rs.Columns {
		w := lipgloss.Width(name)
		for _, r := range rs.Rows {
			if cw := lipgloss.Width(r[i]); cw > w {
				w = cw
			}
		}
		cols[i] = table.Column{Title: name, Width: min(w, MaxCellWidth/2)}
	}
	b.grid.SetColumns(cols)

	rows := make([]table.Row, len(rs.Rows))
	for i, r := range rs.Rows {
		rows[i] = table.Row(r)
	}
	b.grid.SetRows(rows)
	b.grid.GotoTop()
}

func (b *Browser) copyRow() {
	row := b.grid.SelectedRow()
	if row == nil {
		b.status = "nothing to copy"
		return
	}
	if err := b.copy(strings.Join(row, "\t")); err != nil {
		b.status = "copy failed: " + err.Error()
		return
	}
	b.status = "row copied"
}

// View renders the tab bar, the grid and the help line
func (b *Browser) View() string {
	var sb strings.Builder

	tabs := make([]string, len(b.tables))
	for i, name := range b.tables {
		if i == b.current {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	switch {
	case b.err != nil:
		sb.WriteString(StyleError.Render(SymbolError + " " + b.err.Error()))
	case b.rows == nil:
		sb.WriteString(StyleMuted.Render("loading " + b.Current() + "..."))
	case b.rows.Empty():
		sb.WriteString(b.grid.View())
		sb.WriteString("\n" + StyleMuted.Render(NoRows))
	default:
		sb.WriteString(b.grid.View())
	}

	sb.WriteString("\n")
	footer := helpText
	if b.rows != nil && b.err == nil {
		footer = fmt.Sprintf("%d rows • %s", b.rows.Len(), helpText)
	}
	if b.status != "" {
		footer = b.status + " • " + footer
	}
	sb.WriteString(StyleMuted.Render(footer))
	return sb.String()
}
