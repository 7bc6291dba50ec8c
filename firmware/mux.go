package firmware

import "segcount/hal"

// Phase selects the digit the multiplexer lights on its next tick.
type Phase uint8

const (
	ShowHundreds Phase = iota
	ShowTens
	ShowUnits
)

func (p Phase) String() string {
	switch p {
	case ShowHundreds:
		return "hundreds"
	case ShowTens:
		return "tens"
	case ShowUnits:
		return "units"
	default:
		return "reset"
	}
}

// Digit line values, one transistor per position.
const (
	lineNone     uint8 = 0b000
	lineHundreds uint8 = 0b001
	lineTens     uint8 = 0b010
	lineUnits    uint8 = 0b100
)

// Multiplexer lights one digit per timer tick, round robin.
type Multiplexer struct {
	state    *State
	timer    hal.Timer
	digits   hal.Port
	segments hal.Port
}

func NewMultiplexer(state *State, timer hal.Timer, digits, segments hal.Port) *Multiplexer {
	return &Multiplexer{state: state, timer: timer, digits: digits, segments: segments}
}

// HandleInterrupt is the timer interrupt handler. All lines go dark before
// the next one is energized, so at most one digit is ever driven.
func (m *Multiplexer) HandleInterrupt() {
	if !m.timer.Pending() {
		return
	}
	m.timer.ClearPending()
	m.digits.Set(lineNone)

	switch m.state.Phase {
	case ShowHundreds:
		m.state.Phase = ShowTens
		m.light(lineHundreds, Hundreds)
	case ShowTens:
		m.state.Phase = ShowUnits
		m.light(lineTens, Tens)
	case ShowUnits:
		m.state.Phase = ShowHundreds
		m.light(lineUnits, Units)
	default:
		m.state.Phase = ShowHundreds
		m.timer.Reload()
	}
}

func (m *Multiplexer) light(line uint8, pos Position) {
	m.digits.Set(line)
	m.segments.Set(m.state.Encoded(pos))
	m.timer.Reload()
}
