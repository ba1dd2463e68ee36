// Package motion drives time-based presentation effects: a typewriter that
// cycles through words and a counter that eases up to a target value.
package motion

import "time"

// Timer is a pending one-shot callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock provides the time source and one-shot scheduling used by the
// animators. Tests inject motiontest.Clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// FrameSource delivers animation-frame callbacks carrying the frame timestamp.
type FrameSource interface {
	RequestFrame(cb func(now time.Time)) Timer
}

// ClockFrames produces frames at a fixed Interval off a Clock.
type ClockFrames struct {
	Clock    Clock
	Interval time.Duration
}

// NewClockFrames returns a frame source ticking at rate frames per second.
// A non-positive rate falls back to DefaultFrameInterval.
func NewClockFrames(clock Clock, rate int) ClockFrames {
	interval := DefaultFrameInterval
	if rate > 0 {
		interval = time.Second / time.Duration(rate)
	}
	return ClockFrames{Clock: clock, Interval: interval}
}

func (f ClockFrames) RequestFrame(cb func(now time.Time)) Timer {
	clock := f.Clock
	if clock == nil {
		clock = SystemClock
	}
	interval := f.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return clock.AfterFunc(interval, func() {
		cb(clock.Now())
	})
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
