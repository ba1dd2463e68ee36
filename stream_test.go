package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func serveAsync(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, <-chan struct{}) {
	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()
	return w, done
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish")
	}
}

func TestCounterStreamRunsToCompletion(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		advance time.Duration
	}{
		{"desktop", "/about/counters", 2100 * time.Millisecond},
		{"mobile", "/about/counters?mobile=1", 1100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, clk := newTestRouter(t, testConfig())
			w, done := serveAsync(r, httptest.NewRequest(http.MethodGet, tt.target, nil))

			// One pending frame per achievement once the gates are open.
			clk.BlockUntil(3)
			clk.Advance(tt.advance)
			wait(t, done)

			body := w.Body.String()
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
				t.Errorf("content type = %q", ct)
			}
			for _, want := range []string{
				"event:counter", `{"index":0,"value":0}`,
				`{"index":0,"value":12}`, `{"index":1,"value":3}`, `{"index":2,"value":300}`,
				"event:done", "[12,3,300]",
			} {
				if !strings.Contains(body, want) {
					t.Errorf("stream missing %q", want)
				}
			}
			if clk.Pending() != 0 {
				t.Errorf("%d frames still pending", clk.Pending())
			}
		})
	}
}

func TestCounterStreamDesktopDuration(t *testing.T) {
	r, clk := newTestRouter(t, testConfig())
	w, done := serveAsync(r, httptest.NewRequest(http.MethodGet, "/about/counters", nil))

	clk.BlockUntil(3)
	// Past the mobile duration but short of the desktop one.
	clk.Advance(1100 * time.Millisecond)
	select {
	case <-done:
		t.Fatalf("desktop stream finished early: %q", w.Body.String())
	case <-time.After(20 * time.Millisecond):
	}
	clk.Advance(time.Second)
	wait(t, done)
}

func TestCounterStreamClientGoneStopsCounters(t *testing.T) {
	r, clk := newTestRouter(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/about/counters", nil).WithContext(ctx)
	w, done := serveAsync(r, req)

	clk.BlockUntil(3)
	clk.Advance(500 * time.Millisecond)
	cancel()
	wait(t, done)

	if clk.Pending() != 0 {
		t.Errorf("%d frames pending after disconnect", clk.Pending())
	}
	if strings.Contains(w.Body.String(), "event:done") {
		t.Error("done sent for an abandoned stream")
	}
}

func TestHeroStreamLifecycle(t *testing.T) {
	r, clk := newTestRouter(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/hero/roles", nil).WithContext(ctx)
	w, done := serveAsync(r, req)

	clk.BlockUntil(1)
	for i := 0; i < 5; i++ {
		clk.Advance(100 * time.Millisecond)
		if clk.Pending() != 1 {
			t.Fatalf("tick %d: %d timers pending, want 1", i, clk.Pending())
		}
	}
	cancel()
	wait(t, done)

	if !strings.Contains(w.Body.String(), "event:role") {
		t.Errorf("no role events in %q", w.Body.String())
	}
	if clk.Pending() != 0 {
		t.Errorf("%d timers pending after disconnect, want 0", clk.Pending())
	}
}
