package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const progressLabelWidth = 18

// ProgressBar counts finished items of a known total, one item at a time.
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int64
	current int64
	start   time.Time
}

func (u *UI) NewProgressBar(label string, total int64) *ProgressBar {
	return &ProgressBar{
		ui:    u,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		label: label,
		total: total,
		start: time.Now(),
	}
}

// Increment counts one more finished item, named by label.
func (p *ProgressBar) Increment(label string) {
	p.current++
	if label != "" {
		p.label = label
	}

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.out, "  [%d/%d] %s\n", p.current, p.total, p.label)
		return
	}
	fmt.Fprintf(p.ui.out, "\r\033[K  %s %s %s",
		lipgloss.NewStyle().Width(progressLabelWidth).Render(p.label),
		p.bar.ViewAs(p.fraction()),
		StyleMuted.Render(p.count()),
	)
}

// Elapsed is the time since the bar was created.
func (p *ProgressBar) Elapsed() time.Duration {
	return time.Since(p.start)
}

func (p *ProgressBar) fraction() float64 {
	if p.total <= 0 || p.current >= p.total {
		return 1
	}
	return float64(p.current) / float64(p.total)
}

func (p *ProgressBar) count() string {
	return fmt.Sprintf("%d/%d", p.current, p.total)
}

// Complete ends the bar.
func (p *ProgressBar) Complete() {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.out, "%s done\n", p.count())
		return
	}
	p.ui.statusLine(kindSuccess, "done", p.count()+" complete")
}

// Fail ends the bar at the item that failed.
func (p *ProgressBar) Fail(err error) {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.out, "FAILED: %v\n", err)
		return
	}
	p.ui.statusLine(kindError, p.label, err.Error())
}

// statusLine overwrites the current terminal line with a final status.
func (u *UI) statusLine(k messageKind, label, detail string) {
	if k.whole {
		detail = k.style.Render(detail)
	}
	fmt.Fprintf(u.out, "\r\033[K  %s %s %s\n",
		k.style.Render(k.symbol),
		lipgloss.NewStyle().Width(progressLabelWidth).Render(label),
		detail,
	)
}
