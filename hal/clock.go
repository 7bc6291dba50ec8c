package hal

import (
	"context"
	"time"
)

const (
	// clockTick is how often a wallClock steps the board.
	clockTick = time.Millisecond

	// mainLoopPause is how long Yield sleeps between main-loop passes. Each
	// pass ends by writing the hundreds pattern to the segment port, which
	// stays on the selected digit until the next multiplexer tick; pacing the
	// loop keeps that ghost faint.
	mainLoopPause = 5 * time.Millisecond
)

// wallClock converts elapsed wall time into instruction cycles of a Sim.
type wallClock struct {
	sim *Sim

	last time.Time
	acc  time.Duration
	now  func() time.Time
}

func newWallClock(sim *Sim, now func() time.Time) *wallClock {
	if now == nil {
		now = time.Now
	}
	return &wallClock{sim: sim, now: now}
}

// cyclesFor returns how many whole instruction cycles fit in d, and the
// remainder.
func cyclesFor(d time.Duration, clockHz uint32) (uint64, time.Duration) {
	if d <= 0 || clockHz == 0 {
		return 0, d
	}
	perCycle := 4 * time.Second / time.Duration(clockHz)
	if perCycle <= 0 {
		perCycle = 1
	}
	return uint64(d / perCycle), d % perCycle
}

// advance steps the board by the time elapsed since the previous call. Long
// stalls (debugger, suspended laptop) are clipped to maxCatchUp.
func (c *wallClock) advance() {
	const maxCatchUp = 250 * time.Millisecond

	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return
	}
	c.acc += now.Sub(c.last)
	c.last = now
	if c.acc > maxCatchUp {
		c.acc = maxCatchUp
	}

	n, rest := cyclesFor(c.acc, c.sim.ClockHz())
	c.acc = rest
	if n > 0 {
		c.sim.Step(n)
	}
}

// run advances the board every tick until ctx is done. The interrupt handler
// therefore runs on the clock goroutine, like an ISR preempting the main loop.
func (c *wallClock) run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.advance()
		}
	}
}

// start runs the clock on its own goroutine. stop cancels it and returns once
// the goroutine has exited, so no interrupt handler runs after stop.
func (c *wallClock) start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx, clockTick)
	}()
	return func() {
		cancel()
		<-done
	}
}
