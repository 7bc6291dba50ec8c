package firmware

import "sync/atomic"

// Position is a digit position on the display, left to right.
type Position uint8

const (
	Hundreds Position = iota
	Tens
	Units
)

// State is the memory shared by the main loop and the timer interrupt.
//
// Ownership:
//   - Counter and Digits belong to the main loop.
//   - Phase belongs to the interrupt handler.
//   - the encoded cells are written by the main loop and read by the
//     interrupt handler.
//
// Each encoded cell is a single atomic word, the equivalent of a single-byte
// register access on an 8-bit part. The three cells are not
// published as a group: an interrupt that lands between two stores shows
// digits from two different counter values for one refresh. That glitch is
// part of the design and is not locked away.
type State struct {
	Counter uint8
	Digits  [3]uint8
	Phase   Phase

	encoded [3]atomic.Uint32
}

// Encoded returns the published segment pattern for a position.
func (s *State) Encoded(pos Position) uint8 {
	if pos > Units {
		return 0
	}
	return uint8(s.encoded[pos].Load())
}

// Publish splits the counter, encodes each digit and stores the patterns
// units first, tens, then hundreds.
func (s *State) Publish() { s.publish(s.store) }

func (s *State) publish(store func(Position, uint8)) {
	h, t, u := Split(s.Counter)
	s.Digits = [3]uint8{h, t, u}

	store(Units, Encode(u))
	store(Tens, Encode(t))
	store(Hundreds, Encode(h))
}

func (s *State) store(pos Position, pattern uint8) {
	s.encoded[pos].Store(uint32(pattern))
}
