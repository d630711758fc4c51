// Package ui renders classdb output: messages, result tables, summary
// boxes, spinners and the table browser. Styled output needs a terminal;
// pipes, --no-color and NO_COLOR get plain text that diffs cleanly.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI writes results to one output and knows whether it may style them.
type UI struct {
	IsTTY   bool
	Width   int
	NoColor bool

	out io.Writer
}

// KV is one line of a summary box.
type KV struct {
	Key   string
	Value string
}

// noColorEnv follows the NO_COLOR convention.
var noColorEnv = os.Getenv("NO_COLOR") != ""

const defaultWidth = 80

// New inspects stdout and returns a UI writing to it.
func New() *UI {
	fd := int(os.Stdout.Fd())
	u := &UI{
		IsTTY:   term.IsTerminal(fd),
		Width:   defaultWidth,
		NoColor: noColorEnv,
		out:     os.Stdout,
	}
	if u.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			u.Width = w
		}
	}
	return u
}

// NewPlain returns a UI that writes unstyled text to w.
func NewPlain(w io.Writer) *UI {
	return &UI{Width: defaultWidth, NoColor: true, out: w}
}

// Out is where results go.
func (u *UI) Out() io.Writer {
	return u.out
}

func (u *UI) Println(a ...interface{}) {
	fmt.Fprintln(u.out, a...)
}

func (u *UI) Printf(format string, a ...interface{}) {
	fmt.Fprintf(u.out, format, a...)
}

// SetNoColor turns styling and animation off or back on.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// messageKind pairs the plain tag of a message with its styled symbol.
type messageKind struct {
	tag    string
	symbol string
	style  lipgloss.Style
	// whole styles the message text too, not just the symbol
	whole bool
}

var (
	kindSuccess  = messageKind{tag: "[OK]", symbol: SymbolSuccess, style: StyleSuccess}
	kindError    = messageKind{tag: "[FAILED]", symbol: SymbolError, style: StyleError, whole: true}
	kindWarning  = messageKind{tag: "[WARN]", symbol: SymbolWarning, style: StyleWarning, whole: true}
	kindRejected = messageKind{tag: "[REJECTED]", symbol: SymbolRejected, style: StyleWarning, whole: true}
)

func (u *UI) message(k messageKind, msg string) string {
	if !u.shouldStyle() {
		return k.tag + " " + msg
	}
	if k.whole {
		return k.style.Render(k.symbol + " " + msg)
	}
	return k.style.Render(k.symbol+" ") + msg
}

// Success marks a completed operation.
func (u *UI) Success(msg string) string { return u.message(kindSuccess, msg) }

// Error marks a failure.
func (u *UI) Error(msg string) string { return u.message(kindError, msg) }

func (u *UI) Warning(msg string) string { return u.message(kindWarning, msg) }

// Rejected marks a statement the database refused, which in an exercise
// is often the expected outcome.
func (u *UI) Rejected(msg string) string { return u.message(kindRejected, msg) }

func (u *UI) Muted(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return StyleMuted.Render(msg)
}

func (u *UI) Bold(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return lipgloss.NewStyle().Bold(true).Render(msg)
}

// Header renders the title of an exercise or command.
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return "=== " + title + " ==="
	}
	return StyleHeader.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2).
		Render(title)
}

// KeyValue renders one labelled value.
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("%-10s %s", key+":", value)
	}
	return "  " + StyleMuted.Width(12).Render(key) + " " + lipgloss.NewStyle().Bold(true).Render(value)
}

// SummaryBox renders the totals of a run. A "Status" item is coloured by
// outcome and so is the box border.
func (u *UI) SummaryBox(title string, items []KV) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n=== %s ===\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "%-14s %s\n", item.Key+":", item.Value)
		}
		return sb.String()
	}

	keyWidth := 0
	for _, item := range items {
		keyWidth = max(keyWidth, lipgloss.Width(item.Key))
	}
	keyStyle := StyleMuted.Width(keyWidth + 2)
	valueStyle := lipgloss.NewStyle().Bold(true)

	accent := ColorSuccess
	lines := make([]string, 0, len(items))
	for _, item := range items {
		value := valueStyle.Render(item.Value)
		if item.Key == "Status" {
			if failed(item.Value) {
				accent = ColorError
				value = StyleError.Render(SymbolError + " " + item.Value)
			} else {
				value = StyleSuccess.Render(SymbolSuccess + " " + item.Value)
			}
		}
		lines = append(lines, "  "+keyStyle.Render(item.Key)+" "+value)
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("  " + title)
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return "\n" + heading + "\n" + box
}

func failed(status string) bool {
	return strings.Contains(strings.ToLower(status), "fail")
}
