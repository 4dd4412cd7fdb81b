// Package debounce coalesces bursts of search input into a single trigger.
package debounce

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultDelay is the quiet period before the latest text is fired.
const DefaultDelay = 500 * time.Millisecond

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the clock used for scheduling.
func WithClock(c clock.WithDelayedExecution) Option {
	return func(g *Gate) {
		if c != nil {
			g.clock = c
		}
	}
}

// Gate fires the most recent text once no new text arrived for the delay.
type Gate struct {
	delay time.Duration
	fire  func(string)
	clock clock.WithDelayedExecution

	mu      sync.Mutex
	timer   clock.Timer
	pending string
	gen     uint64
	armed   bool
	stopped bool
}

// New creates a gate calling fire with the latest text after delay.
// A non-positive delay uses DefaultDelay.
func New(delay time.Duration, fire func(string), opts ...Option) *Gate {
	if delay <= 0 {
		delay = DefaultDelay
	}
	g := &Gate{
		delay: delay,
		fire:  fire,
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Delay returns the configured quiet period.
func (g *Gate) Delay() time.Duration {
	return g.delay
}

// Trigger records text and restarts the timer.
func (g *Gate) Trigger(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}

	if g.timer != nil {
		g.timer.Stop()
	}
	g.gen++
	gen := g.gen
	g.pending = text
	g.armed = true
	g.timer = g.clock.AfterFunc(g.delay, func() {
		g.expire(gen)
	})
}

func (g *Gate) expire(gen uint64) {
	g.mu.Lock()
	// A timer whose Stop lost the race still runs; only the latest may fire.
	if g.stopped || !g.armed || gen != g.gen {
		g.mu.Unlock()
		return
	}
	text := g.pending
	g.armed = false
	g.timer = nil
	g.mu.Unlock()

	g.fire(text)
}

// Flush fires the pending text immediately, if any.
func (g *Gate) Flush() bool {
	g.mu.Lock()
	if g.stopped || !g.armed {
		g.mu.Unlock()
		return false
	}
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
	text := g.pending
	g.armed = false
	g.mu.Unlock()

	g.fire(text)
	return true
}

// Pending reports whether a trigger is waiting to fire.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed
}

// Stop cancels any pending trigger and disables the gate.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.armed = false
	g.stopped = true
}
