package hal

import (
	"errors"
	"sync"
	"time"
)

// timer0 models the PIC16 Timer0 block together with the bits of INTCON that
// gate its interrupt (GIE, T0IE, T0IF).
//
// Until Configure is called the timer does not count, matching the reset
// state where TMR0 is clocked from the unconnected T0CKI pin.
type timer0 struct {
	mu sync.Mutex

	cfg        TimerConfig
	configured bool

	tmr      uint8
	prescale uint16

	t0if bool
	t0ie bool
	gie  bool

	handler    func()
	dispatches uint64
}

func newTimer0() *timer0 {
	return &timer0{cfg: DefaultTimerConfig}
}

func (t *timer0) Configure(cfg TimerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = cfg
	t.configured = true
	t.tmr = cfg.Preload
	t.prescale = 0
	return nil
}

func (t *timer0) Period() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.Period()
}

// Reload writes the preload into TMR0. Writing TMR0 also clears the
// prescaler count.
func (t *timer0) Reload() {
	t.mu.Lock()
	t.tmr = t.cfg.Preload
	t.prescale = 0
	t.mu.Unlock()
}

func (t *timer0) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.t0if
}

func (t *timer0) ClearPending() {
	t.mu.Lock()
	t.t0if = false
	t.mu.Unlock()
}

func (t *timer0) SetInterrupt(handler func()) error {
	if handler == nil {
		return errors.New("timer0: nil interrupt handler")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handler != nil {
		return ErrInterruptRegistered
	}
	t.handler = handler
	t.t0ie = true
	t.t0if = false
	return nil
}

func (t *timer0) enableGlobal() {
	t.mu.Lock()
	t.gie = true
	t.mu.Unlock()
}

func (t *timer0) clockHz() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.ClockHz
}

func (t *timer0) count() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dispatches
}

// cycle advances the timer by one instruction cycle. It returns the handler
// when the interrupt must be serviced; the caller runs it without holding the
// timer lock so the handler can touch the timer registers.
func (t *timer0) cycle() func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.configured {
		t.prescale++
		if t.prescale >= t.cfg.Prescaler {
			t.prescale = 0
			t.tmr++
			if t.tmr == 0 {
				t.t0if = true
			}
		}
	}

	if !t.gie || !t.t0ie || !t.t0if || t.handler == nil {
		return nil
	}
	t.dispatches++
	return t.handler
}

type timerInterrupts struct {
	t *timer0
}

func (i timerInterrupts) Enable() { i.t.enableGlobal() }
