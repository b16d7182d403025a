package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerAnimates(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, true, "Computing layout...")
	s.Start()
	time.Sleep(4 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("output %q does not contain message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared after Stop: %q", out)
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, false, "Rendering diagram...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("wrote %q, want nothing", buf.String())
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, true, "idle")

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		s.Start()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &bytes.Buffer{}, false, "waiting")
	s.Start()
	if s.Cancelled() {
		t.Fatal("Cancelled() = true before cancel")
	}

	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context ended")
	}
}

func TestSpinnerStopByCaller(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, false, "waiting")
	s.Start()
	s.Stop()
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerStopWithStatus(t *testing.T) {
	out := captureUI(t)

	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, false, "")
	s.Start()
	s.StopWithError("Layout failed")

	if got := plain(out.String()); !strings.Contains(got, "✗ Layout failed") {
		t.Errorf("output = %q", got)
	}
}
