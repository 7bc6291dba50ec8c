package hal

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// resetClockHz is the internal oscillator frequency out of reset.
const resetClockHz = 4_000_000

// maxFireCycles bounds Fire: one full 8-bit wrap at the largest prescaler.
const maxFireCycles = 256*256 + 1

// Sim is a cycle-stepped model of the PIC16 counter board: three output
// ports, two pull-up button inputs and Timer0 with its interrupt.
//
// The interrupt handler runs synchronously inside Step and Fire, so it is
// never nested and never runs on two goroutines at once. The code that calls
// Step plays the role of the interrupt context; any other goroutine is the
// main loop.
type Sim struct {
	stepMu sync.Mutex

	log     Logger
	gpio    GPIO
	buttons [2]*virtualPin
	ports   [portCount]*virtualPort
	timer   *timer0
	shown   *persistence
	cycles  atomic.Uint64
}

// NewSim returns a powered-up board. log may be nil.
func NewSim(log Logger) *Sim {
	if log == nil {
		log = discardLogger{}
	}
	s := &Sim{log: log, timer: newTimer0()}
	s.shown = newPersistence(s.now)
	s.ports[PortLEDs] = newVirtualPort(PortLEDs.String(), nil)
	s.ports[PortSegments] = newVirtualPort(PortSegments.String(), s.shown.setSegments)
	s.ports[PortDigits] = newVirtualPort(PortDigits.String(), s.shown.setLines)

	caps := GPIOCapInput | GPIOCapPullUp
	s.buttons[ButtonDown] = newVirtualPin("RB0", caps)
	s.buttons[ButtonUp] = newVirtualPin("RB1", caps)
	s.gpio = newVirtualGPIO([]GPIOPin{s.buttons[ButtonDown], s.buttons[ButtonUp]})
	return s
}

func (s *Sim) Logger() Logger         { return s.log }
func (s *Sim) GPIO() GPIO             { return s.gpio }
func (s *Sim) Timer() Timer           { return s.timer }
func (s *Sim) Interrupts() Interrupts { return timerInterrupts{t: s.timer} }
func (s *Sim) Display() Display       { return nil }
func (s *Sim) Yield()                 { runtime.Gosched() }

func (s *Sim) Port(id PortID) Port {
	if id >= portCount {
		return nil
	}
	return s.ports[id]
}

// SetButton presses (true) or releases (false) a button.
func (s *Sim) SetButton(id int, pressed bool) {
	if id < 0 || id >= len(s.buttons) {
		return
	}
	s.buttons[id].ground(pressed)
}

// Glow returns what a viewer saw on the display since the previous call,
// measured in simulated time.
func (s *Sim) Glow() Glow { return s.shown.glow() }

// simEpoch anchors simulated time for the persistence model.
var simEpoch = time.Unix(0, 0)

func (s *Sim) now() time.Time { return simEpoch.Add(s.Elapsed()) }

// ClockHz returns the oscillator frequency.
func (s *Sim) ClockHz() uint32 {
	if hz := s.timer.clockHz(); hz != 0 {
		return hz
	}
	return resetClockHz
}

// Elapsed returns the simulated time since power-up.
func (s *Sim) Elapsed() time.Duration {
	perCycle := 4 * time.Second / time.Duration(s.ClockHz())
	return time.Duration(s.cycles.Load()) * perCycle
}

// Dispatches returns how many times the interrupt handler has run.
func (s *Sim) Dispatches() uint64 { return s.timer.count() }

// Step advances the board by n instruction cycles.
func (s *Sim) Step(n uint64) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	for ; n > 0; n-- {
		s.cycle()
	}
}

// Fire advances the board until the interrupt handler has run once. It
// reports false if no interrupt could be raised (timer not configured or
// interrupts disabled).
func (s *Sim) Fire() bool {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	for i := 0; i < maxFireCycles; i++ {
		if s.cycle() {
			return true
		}
	}
	return false
}

func (s *Sim) cycle() bool {
	s.cycles.Add(1)
	isr := s.timer.cycle()
	if isr == nil {
		return false
	}
	isr()
	return true
}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
