package motiontest

import (
	"strings"
	"testing"
	"time"
)

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := NewClock()
	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		c.AfterFunc(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b2") })
	start := c.Now()

	c.Advance(25 * time.Millisecond)
	if got := strings.Join(order, ","); got != "a,a2,b,b2" {
		t.Errorf("order = %s, want a,a2,b,b2", got)
	}
	if c.Pending() != 1 {
		t.Errorf("pending = %d, want 1", c.Pending())
	}
	if got := c.Now().Sub(start); got != 25*time.Millisecond {
		t.Errorf("now advanced by %v, want 25ms", got)
	}
}

func TestNowInsideCallbackIsDeadline(t *testing.T) {
	c := NewClock()
	start := c.Now()
	var at time.Duration
	c.AfterFunc(7*time.Millisecond, func() { at = c.Now().Sub(start) })
	c.Advance(time.Second)
	if at != 7*time.Millisecond {
		t.Errorf("callback saw %v, want 7ms", at)
	}
}

func TestStop(t *testing.T) {
	c := NewClock()
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })
	if !tm.Stop() {
		t.Error("Stop on a pending timer returned false")
	}
	if tm.Stop() {
		t.Error("second Stop returned true")
	}
	c.Advance(time.Second)
	if fired || c.Pending() != 0 {
		t.Errorf("fired=%v pending=%d after Stop", fired, c.Pending())
	}
}

func TestBlockUntil(t *testing.T) {
	c := NewClock()
	done := make(chan struct{})
	go func() {
		c.BlockUntil(2)
		close(done)
	}()
	c.AfterFunc(time.Second, func() {})
	select {
	case <-done:
		t.Fatal("BlockUntil returned with one timer")
	case <-time.After(20 * time.Millisecond):
	}
	c.AfterFunc(time.Second, func() {})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("BlockUntil did not return")
	}
}
