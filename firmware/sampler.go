package firmware

import "segcount/hal"

// Sampler polls the two active-low push-buttons and moves the counter.
//
// A press is only counted once the button is released again: while a line
// reads low the sampler spins on it. That wait is the whole debounce; there
// is no filtering of contact bounce.
type Sampler struct {
	state *State
	down  hal.GPIOPin
	up    hal.GPIOPin
	yield func()
}

// NewSampler returns a sampler for the given button pins. yield runs between
// two samples of a held button; it may be nil.
func NewSampler(state *State, down, up hal.GPIOPin, yield func()) *Sampler {
	if yield == nil {
		yield = func() {}
	}
	return &Sampler{state: state, down: down, up: up, yield: yield}
}

// Poll runs one sampling pass and reports whether the counter changed.
// The counter wraps in both directions.
func (s *Sampler) Poll() bool {
	before := s.state.Counter

	if pressed(s.down) {
		s.waitRelease(s.down)
		s.state.Counter--
	}
	if pressed(s.up) {
		s.waitRelease(s.up)
		s.state.Counter++
	}
	return s.state.Counter != before
}

func (s *Sampler) waitRelease(pin hal.GPIOPin) {
	for pressed(pin) {
		s.yield()
	}
}

// pressed reports an active (low) line. A missing pin or a read error counts
// as released.
func pressed(pin hal.GPIOPin) bool {
	if pin == nil {
		return false
	}
	level, err := pin.Read()
	return err == nil && !level
}
