package firmware

import (
	"context"
	"fmt"

	"segcount/hal"
)

// Firmware is the main loop of the counter board.
type Firmware struct {
	state   *State
	sampler *Sampler
	mux     *Multiplexer

	leds     hal.Port
	segments hal.Port

	log   hal.Logger
	yield func()
}

// New wires the firmware to a board. It does not touch the hardware; the
// caller configures pins and the timer and registers Interrupt.
func New(h hal.HAL) *Firmware {
	st := &State{}
	gpio := h.GPIO()
	var down, up hal.GPIOPin
	if gpio != nil {
		down = gpio.Pin(hal.ButtonDown)
		up = gpio.Pin(hal.ButtonUp)
	}
	segments := h.Port(hal.PortSegments)
	f := &Firmware{
		state:    st,
		sampler:  NewSampler(st, down, up, h.Yield),
		mux:      NewMultiplexer(st, h.Timer(), h.Port(hal.PortDigits), segments),
		leds:     h.Port(hal.PortLEDs),
		segments: segments,
		log:      h.Logger(),
		yield:    h.Yield,
	}
	return f
}

// State returns the shared state. Reading it while Run and the interrupt are
// active races with both.
func (f *Firmware) State() *State { return f.state }

// Interrupt is the handler to register on the board timer.
func (f *Firmware) Interrupt() func() { return f.mux.HandleInterrupt }

// Step runs one main-loop iteration.
func (f *Firmware) Step() {
	before := f.state.Counter
	if f.sampler.Poll() && f.log != nil {
		h, t, u := Split(f.state.Counter)
		f.log.WriteLineString(fmt.Sprintf("counter: %d -> %d (%d %d %d)", before, f.state.Counter, h, t, u))
	}

	f.leds.Set(f.state.Counter)
	f.state.Publish()

	// The segment port is rewritten with the hundreds pattern at the end of
	// every pass while whichever digit the interrupt lit last is still
	// energized. It shows up as a faint hundreds ghost on the tens and units
	// positions.
	f.segments.Set(f.state.Encoded(Hundreds))
}

// Run repeats Step until ctx is done. The board itself never stops; ctx only
// exists for the host simulator and tests.
func (f *Firmware) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		f.Step()
		f.yield()
	}
}
