package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func contactRequest(ctx context.Context, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(ctx)
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"I'd like to work with you."},
	}
}

func TestContactValidation(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	tests := []struct {
		name string
		edit func(url.Values)
		want string
	}{
		{"valid", func(url.Values) {}, "Thank you for your message!"},
		{"missing name", func(v url.Values) { v.Del("name") }, "Please fill in your name."},
		{"missing email", func(v url.Values) { v.Del("email") }, "Please fill in your email."},
		{"bad email", func(v url.Values) { v.Set("email", "not-an-email") }, "Please enter a valid email address."},
		{"missing message", func(v url.Values) { v.Set("message", "") }, "Please fill in your message."},
		{"long message", func(v url.Values) { v.Set("message", strings.Repeat("x", 5001)) }, "Your message is too long (max 5000 characters)."},
		{"missing subject", func(v url.Values) { v.Del("subject") }, "Please fill in your subject."},
		{"long subject", func(v url.Values) { v.Set("subject", strings.Repeat("s", 201)) }, "Your subject is too long (max 200 characters)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(form)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, contactRequest(context.Background(), form))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestContactSimulatedDelay(t *testing.T) {
	cfg := testConfig()
	cfg.ContactDelay = 2 * time.Second
	r, clk := newTestRouter(t, cfg)

	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, contactRequest(context.Background(), validForm()))
		close(done)
	}()

	clk.BlockUntil(1)
	clk.Advance(time.Second)
	select {
	case <-done:
		t.Fatal("responded before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	clk.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no response after the delay")
	}
	if !strings.Contains(w.Body.String(), "Thank you for your message!") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestContactClientGone(t *testing.T) {
	cfg := testConfig()
	cfg.ContactDelay = 2 * time.Second
	r, clk := newTestRouter(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, contactRequest(ctx, validForm()))
		close(done)
	}()

	clk.BlockUntil(1)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not return after cancellation")
	}
	if clk.Pending() != 0 {
		t.Errorf("delay timer still pending")
	}
	if strings.Contains(w.Body.String(), "Thank you") {
		t.Errorf("abandoned submission rendered success")
	}
}
