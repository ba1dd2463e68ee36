package motion

import (
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// Phase is the sub-state of a Typewriter cycle.
type Phase int

const (
	Typing Phase = iota
	Waiting
	Deleting
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case Waiting:
		return "waiting"
	case Deleting:
		return "deleting"
	}
	return "unknown"
}

// TypewriterOptions configures the cadence of a Typewriter.
// Negative durations are treated as 0.
type TypewriterOptions struct {
	TypeSpeed   time.Duration // delay per typed character
	DeleteSpeed time.Duration // delay per deleted character
	Pause       time.Duration // hold at the full word before deleting

	// OnUpdate is called after every tick with the visible text. The next
	// tick is scheduled only once OnUpdate returns.
	OnUpdate func(text string)
}

// DefaultTypewriterOptions returns 100ms typing, 50ms deleting and a 2s pause.
func DefaultTypewriterOptions() TypewriterOptions {
	return TypewriterOptions{
		TypeSpeed:   100 * time.Millisecond,
		DeleteSpeed: 50 * time.Millisecond,
		Pause:       2 * time.Second,
	}
}

// Typewriter cycles through words forever: type a word one character at a
// time, hold it, delete it, then move on to the next word.
//
// Characters are grapheme clusters, so "👍🏽" is typed in one step.
// A Typewriter owns at most one pending timer at any time.
type Typewriter struct {
	mu    sync.Mutex
	clock Clock
	opts  TypewriterOptions

	words [][]string
	index int
	shown int
	phase Phase

	running bool
	gen     uint64
	timer   Timer
}

// NewTypewriter creates an idle Typewriter. Call Start to begin cycling.
// A nil clock uses SystemClock.
func NewTypewriter(words []string, opts TypewriterOptions, clock Clock) *Typewriter {
	if clock == nil {
		clock = SystemClock
	}
	tw := &Typewriter{clock: clock}
	tw.opts = opts
	tw.setTimingLocked(opts.TypeSpeed, opts.DeleteSpeed, opts.Pause)
	tw.words = splitWords(words)
	return tw
}

// Start mounts the Typewriter at the first word with nothing visible.
// It does nothing when already running. With no words nothing is scheduled.
func (tw *Typewriter) Start() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.running {
		return
	}
	tw.running = true
	tw.resetLocked()
	if len(tw.words) > 0 {
		tw.scheduleLocked()
	}
}

// Stop cancels the pending tick. The visible text is kept.
func (tw *Typewriter) Stop() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.running = false
	tw.cancelLocked()
}

// SetWords replaces the word list and restarts the cycle from the first word.
func (tw *Typewriter) SetWords(words []string) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.cancelLocked()
	tw.words = splitWords(words)
	tw.resetLocked()
	if tw.running && len(tw.words) > 0 {
		tw.scheduleLocked()
	}
}

// SetTiming changes the cadence. The pending tick is rescheduled with the
// new delay for the current phase.
func (tw *Typewriter) SetTiming(typeSpeed, deleteSpeed, pause time.Duration) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.setTimingLocked(typeSpeed, deleteSpeed, pause)
	if tw.timer == nil {
		return
	}
	tw.cancelLocked()
	tw.scheduleLocked()
}

// Text returns the currently visible text.
func (tw *Typewriter) Text() string {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.textLocked()
}

// Phase returns the current phase.
func (tw *Typewriter) Phase() Phase {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.phase
}

// WordIndex returns the index of the word being typed or deleted.
func (tw *Typewriter) WordIndex() int {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.index
}

// Pending reports the number of scheduled ticks, either 0 or 1.
func (tw *Typewriter) Pending() int {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timer != nil {
		return 1
	}
	return 0
}

func (tw *Typewriter) tick(gen uint64) {
	tw.mu.Lock()
	if gen != tw.gen || !tw.running {
		tw.mu.Unlock()
		return
	}
	tw.timer = nil

	word := tw.words[tw.index]
	switch tw.phase {
	case Waiting:
		tw.phase = Deleting
	case Deleting:
		if tw.shown == 0 {
			tw.index = (tw.index + 1) % len(tw.words)
			tw.phase = Typing
		} else {
			tw.shown--
		}
	default:
		if tw.shown >= len(word) {
			tw.phase = Waiting
		} else {
			tw.shown++
		}
	}
	text := tw.textLocked()
	hook := tw.opts.OnUpdate
	tw.mu.Unlock()

	if hook != nil {
		hook(text)
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()
	// Stop, SetWords or SetTiming during the hook already took over scheduling.
	if gen == tw.gen && tw.running && tw.timer == nil {
		tw.scheduleLocked()
	}
}

func (tw *Typewriter) scheduleLocked() {
	gen := tw.gen
	tw.timer = tw.clock.AfterFunc(tw.delayLocked(), func() {
		tw.tick(gen)
	})
}

func (tw *Typewriter) cancelLocked() {
	if tw.timer != nil {
		tw.timer.Stop()
		tw.timer = nil
	}
	tw.gen++
}

func (tw *Typewriter) delayLocked() time.Duration {
	switch tw.phase {
	case Waiting:
		return tw.opts.Pause
	case Deleting:
		return tw.opts.DeleteSpeed
	}
	return tw.opts.TypeSpeed
}

func (tw *Typewriter) setTimingLocked(typeSpeed, deleteSpeed, pause time.Duration) {
	tw.opts.TypeSpeed = clampDuration(typeSpeed)
	tw.opts.DeleteSpeed = clampDuration(deleteSpeed)
	tw.opts.Pause = clampDuration(pause)
}

func (tw *Typewriter) resetLocked() {
	tw.index = 0
	tw.shown = 0
	tw.phase = Typing
}

func (tw *Typewriter) textLocked() string {
	if len(tw.words) == 0 {
		return ""
	}
	return strings.Join(tw.words[tw.index][:tw.shown], "")
}

func splitWords(words []string) [][]string {
	out := make([][]string, 0, len(words))
	for _, w := range words {
		var clusters []string
		g := uniseg.NewGraphemes(w)
		for g.Next() {
			clusters = append(clusters, g.Str())
		}
		out = append(out, clusters)
	}
	return out
}
