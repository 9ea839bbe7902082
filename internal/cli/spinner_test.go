package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(context.Background(), "Connecting...")
	s.w = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop() // second call is a no-op

	s.mu.Lock()
	out := buf.String()
	s.mu.Unlock()
	if !strings.Contains(out, "Connecting...") {
		t.Errorf("spinner output missing message: %q", out)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Connecting...")
	s.w = &bytes.Buffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() should report true")
	}
}
