package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates one status line on w while a slow render runs. It also
// stops on its own when ctx ends.
type spinner struct {
	w    io.Writer
	msg  string
	ctx  context.Context
	quit chan struct{}
	done chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

func newSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	return &spinner{
		w:    w,
		msg:  msg,
		ctx:  ctx,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the animation. Later calls do nothing.
func (s *spinner) Start() {
	s.startOnce.Do(func() { go s.loop() })
}

func (s *spinner) loop() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
		case <-s.ctx.Done():
		case <-tick.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(glyph), styleDim.Render(s.msg))
			continue
		}
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
		return
	}
}

// Stop ends the animation and blanks the line. It may be called more than
// once, and without Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		// Consume startOnce so a late Start cannot launch the loop.
		started := true
		s.startOnce.Do(func() { started = false })
		if started {
			<-s.done
		}
	})
}

// StopWithSuccess stops and prints msg with a check mark.
func (s *spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess(s.w, "%s", msg)
}

// StopWithError stops and prints msg with a cross.
func (s *spinner) StopWithError(msg string) {
	s.Stop()
	printError(s.w, "%s", msg)
}

// Cancelled reports whether ctx ended, as opposed to a plain Stop.
func (s *spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// withSpinner runs fn with a spinner on w. A nil w runs fn silently.
func withSpinner(ctx context.Context, w io.Writer, msg string, fn func() ([]byte, error)) ([]byte, error) {
	if w == nil {
		return fn()
	}
	s := newSpinner(ctx, w, msg)
	s.Start()
	defer s.Stop()
	return fn()
}
