package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner shows that a single step, such as opening a database, is in
// progress. In plain mode it prints its label once and the outcome after it.
type Spinner struct {
	ui    *UI
	label string
	kind  spinner.Spinner

	once    sync.Once
	started bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		kind:  spinner.Dot,
		done:  make(chan struct{}),
	}
}

// Start begins the animation; a second call does nothing.
func (s *Spinner) Start() {
	if s.started {
		return
	}
	s.started = true

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go s.animate()
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.kind.FPS)
	defer ticker.Stop()

	frames := s.kind.Frames
	for i := 0; ; i = (i + 1) % len(frames) {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprintf(s.ui.out, "\r%s %s...", StyleHeader.Render(frames[i]), s.label)
		}
	}
}

// halt stops the animation and reports whether the spinner had started.
func (s *Spinner) halt() bool {
	if !s.started {
		return false
	}
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	return true
}

// Stop clears the spinner without a final status.
func (s *Spinner) Stop() {
	if s.halt() && s.ui.shouldStyle() {
		fmt.Fprint(s.ui.out, "\r\033[K")
	}
}

// Success ends the spinner with msg after its label.
func (s *Spinner) Success(msg string) { s.finish(kindSuccess, msg) }

// Error ends the spinner with msg marked as a failure.
func (s *Spinner) Error(msg string) { s.finish(kindError, msg) }

func (s *Spinner) finish(k messageKind, msg string) {
	if !s.halt() {
		return
	}
	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.out, " %s\n", msg)
		return
	}
	if k.whole {
		msg = k.style.Render(msg)
	}
	fmt.Fprintf(s.ui.out, "\r\033[K%s %s... %s\n", k.style.Render(k.symbol), s.label, msg)
}
