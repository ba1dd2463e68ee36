package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/motion"
)

type counterEvent struct {
	Index int `json:"index"`
	Value int `json:"value"`
}

func setupStreamRoutes(r *gin.Engine, s *site) {
	r.GET("/hero/roles", s.streamHeroRoles)
	r.GET("/about/counters", s.streamCounters)
}

func prepareStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// signal wakes the stream loop without blocking the animator. Pending
// wake-ups coalesce, the loop always renders the latest state.
func signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// streamHeroRoles pushes the hero typewriter text as "role" events. The
// typewriter lives exactly as long as the connection.
func (s *site) streamHeroRoles(c *gin.Context) {
	wake := make(chan struct{}, 1)
	opts := s.cfg.Typewriter
	opts.OnUpdate = func(string) { signal(wake) }

	tw := motion.NewTypewriter(s.content.Hero.Roles, opts, s.clock)
	tw.Start()
	defer tw.Stop()

	log.Printf("Hero stream opened from %s", c.ClientIP())
	prepareStream(c)
	c.SSEvent("role", tw.Text())
	c.Writer.Flush()

	ctx := c.Request.Context()
	last := tw.Text()
	for {
		select {
		case <-ctx.Done():
			log.Printf("Hero stream closed from %s", c.ClientIP())
			return
		case <-wake:
			text := tw.Text()
			if text == last {
				continue
			}
			last = text
			c.SSEvent("role", text)
			c.Writer.Flush()
		}
	}
}

// streamCounters runs one counter per achievement and pushes "counter"
// events until every counter has completed. Clients open the stream once the
// about section scrolls into view, so the gate opens on connect.
func (s *site) streamCounters(c *gin.Context) {
	duration := s.cfg.CounterDuration
	if c.Query("mobile") == "1" {
		duration = s.cfg.CounterMobileDuration
	}
	frames := motion.NewClockFrames(s.clock, s.cfg.FrameRate)

	wake := make(chan struct{}, 1)
	achievements := s.content.About.Counters
	counters := make([]*motion.Counter, len(achievements))
	for i, a := range achievements {
		counters[i] = motion.NewCounter(a.Value, motion.CounterOptions{
			Duration: duration,
			OnUpdate: func(int, bool) { signal(wake) },
		}, frames)
	}
	defer func() {
		for _, ctr := range counters {
			ctr.Stop()
		}
	}()

	prepareStream(c)
	sent := make([]int, len(counters))
	for i := range counters {
		c.SSEvent("counter", counterEvent{Index: i, Value: 0})
	}
	c.Writer.Flush()

	for _, ctr := range counters {
		ctr.SetGate(true)
	}

	ctx := c.Request.Context()
	for {
		running := false
		for i, ctr := range counters {
			// Running before Value: a finished counter's value is final.
			running = ctr.Running() || running
			if v := ctr.Value(); v != sent[i] {
				sent[i] = v
				c.SSEvent("counter", counterEvent{Index: i, Value: v})
			}
		}
		c.Writer.Flush()
		if !running {
			c.SSEvent("done", sent)
			c.Writer.Flush()
			return
		}

		select {
		case <-ctx.Done():
			log.Printf("Counter stream closed early from %s", c.ClientIP())
			return
		case <-wake:
		}
	}
}
