package motion

import (
	"math"
	"sync"
	"time"
)

// CounterOptions configures a Counter run.
type CounterOptions struct {
	Duration time.Duration // negative is treated as 0, which completes on the first frame
	Easing   EaseFunc      // nil uses EaseOutQuart

	// OnUpdate is called on the first frame of every run (reporting the reset
	// to 0), whenever the value changes, and once more when the run completes.
	// Calls for one run are sequential: the next frame is requested only once
	// OnUpdate returns. A call from a cancelled run may still be in flight
	// when the next run begins.
	OnUpdate func(value int, done bool)
}

// DefaultCounterOptions returns a 2s ease-out-quartic run.
func DefaultCounterOptions() CounterOptions {
	return CounterOptions{
		Duration: 2 * time.Second,
		Easing:   EaseOutQuart,
	}
}

// Counter animates an integer from 0 up to a target once its gate opens.
//
// Every gate opening starts a fresh run at 0. Changing the target while the
// gate is open restarts the run. A Counter owns at most one pending frame.
type Counter struct {
	mu     sync.Mutex
	frames FrameSource
	end    int
	opts   CounterOptions

	gate    bool
	value   int
	running bool
	stopped bool
	started bool
	start   time.Time

	gen   uint64
	frame Timer
}

// NewCounter creates a Counter with a closed gate. A nil frames source
// draws frames from SystemClock at DefaultFrameInterval.
func NewCounter(end int, opts CounterOptions, frames FrameSource) *Counter {
	if frames == nil {
		frames = ClockFrames{Clock: SystemClock, Interval: DefaultFrameInterval}
	}
	if opts.Easing == nil {
		opts.Easing = EaseOutQuart
	}
	opts.Duration = clampDuration(opts.Duration)
	return &Counter{
		frames: frames,
		end:    clampEnd(end),
		opts:   opts,
	}
}

// SetGate opens or closes the start signal. Opening starts a run from 0;
// closing cancels the run and holds the current value.
func (c *Counter) SetGate(open bool) {
	c.mu.Lock()
	if c.stopped || open == c.gate {
		c.mu.Unlock()
		return
	}
	c.gate = open
	c.cancelLocked()
	if !open {
		c.mu.Unlock()
		return
	}
	c.beginLocked()
	c.mu.Unlock()
}

// SetTarget changes the end value and duration. When either differs and the
// gate is open, the run restarts from 0 under the new parameters.
func (c *Counter) SetTarget(end int, duration time.Duration) {
	end, duration = clampEnd(end), clampDuration(duration)
	c.mu.Lock()
	if c.stopped || (end == c.end && duration == c.opts.Duration) {
		c.mu.Unlock()
		return
	}
	c.end = end
	c.opts.Duration = duration
	c.cancelLocked()
	if !c.gate {
		c.mu.Unlock()
		return
	}
	c.beginLocked()
	c.mu.Unlock()
}

// Stop cancels any pending frame. A stopped Counter ignores further input.
func (c *Counter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelLocked()
}

// Value returns the current interpolated value.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// End returns the target value.
func (c *Counter) End() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.end
}

// Running reports whether a run is in progress.
func (c *Counter) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Pending reports the number of requested frames, either 0 or 1.
func (c *Counter) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame != nil {
		return 1
	}
	return 0
}

// beginLocked starts a run from 0. The reset is reported by the run's first
// frame so that it reaches OnUpdate in order with the values that follow.
func (c *Counter) beginLocked() {
	c.value = 0
	c.started = false
	c.running = true
	c.requestLocked()
}

func (c *Counter) requestLocked() {
	gen := c.gen
	c.frame = c.frames.RequestFrame(func(now time.Time) {
		c.step(gen, now)
	})
}

func (c *Counter) cancelLocked() {
	if c.frame != nil {
		c.frame.Stop()
		c.frame = nil
	}
	c.running = false
	c.gen++
}

func (c *Counter) step(gen uint64, now time.Time) {
	c.mu.Lock()
	if gen != c.gen || !c.running {
		c.mu.Unlock()
		return
	}
	c.frame = nil
	first := !c.started
	if first {
		c.start = now
		c.started = true
	}

	progress := 1.0
	if c.opts.Duration > 0 {
		elapsed := now.Sub(c.start)
		if elapsed < 0 {
			elapsed = 0
		}
		progress = math.Min(float64(elapsed)/float64(c.opts.Duration), 1)
	}

	next := c.scale(c.opts.Easing(progress))
	done := progress >= 1
	if done {
		next = c.end
	}
	// Values never regress within a run, whatever the easing.
	next = min(max(next, c.value), c.end)

	changed := next != c.value
	c.value = next
	if done {
		c.running = false
	}
	hook := c.opts.OnUpdate
	c.mu.Unlock()

	if hook != nil && (first || changed || done) {
		hook(next, done)
	}
	if done {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen && c.running && c.frame == nil {
		c.requestLocked()
	}
}

// scale maps eased progress onto [0, end]. The float is clamped before the
// integer conversion, which is undefined outside the int range.
func (c *Counter) scale(eased float64) int {
	v := math.Floor(eased * float64(c.end))
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= float64(c.end):
		return c.end
	}
	return int(v)
}

func clampEnd(end int) int {
	if end < 0 {
		return 0
	}
	return end
}
