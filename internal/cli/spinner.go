package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on stderr while a pipeline stage runs.
// It draws nothing when stderr is not a terminal, so piped output and logs
// stay free of control characters.
type Spinner struct {
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	w       io.Writer
	animate bool

	mu      sync.Mutex
	message string
	width   int

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, isTerminal(os.Stderr), message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, animate bool, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		w:       w,
		animate: animate,
		message: message,
		stopped: make(chan struct{}),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the animation. Calling Start more than once has no effect.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

func (s *Spinner) run() {
	defer close(s.stopped)
	if !s.animate {
		<-s.ctx.Done()
		return
	}

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	s.width = max(s.width, len(s.message)+2)
	fmt.Fprintf(s.w, "\r%s", line)
}

// Stop halts the animation and clears the line. It is safe to call Stop
// several times and before Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.startOnce.Do(func() { close(s.stopped) })
		<-s.stopped
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the command context ended, as opposed to the
// caller stopping the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
