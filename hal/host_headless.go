//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/term"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Script is a sequence of button taps: '-' presses the down button,
	// '+' the up button, any other byte waits one slot.
	Script   string
	TapEvery time.Duration

	// Keys reads taps and 'q' (quit) from the controlling terminal.
	Keys bool
}

// RunHeadless runs the board without opening a window. The board clock runs
// on its own goroutine and has stopped when RunHeadless returns; the ticker
// only drives button taps and the app step.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.TapEvery <= 0 {
		cfg.TapEvery = 200 * time.Millisecond
	}

	h := newHost()
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	stopClock := h.clock.start(ctx)
	defer stopClock()

	taps := newTapScript(h.Sim, cfg.Script, cfg.TapEvery)

	var keys <-chan byte
	if cfg.Keys {
		ch, restore, err := openTerminalKeys()
		if err != nil {
			h.logger.WriteLineString(fmt.Sprintf("keys: %v", err))
		} else {
			defer restore()
			keys = ch
			h.logger.WriteLineString("keys: '-' down, '+' up, 'q' quit")
		}
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if b == 'q' {
				return nil
			}
			taps.push(b)
		case now := <-t.C:
			taps.update(now)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// tapScript presses and releases buttons on a fixed cadence. A tap holds the
// button for half a slot.
type tapScript struct {
	sim   *Sim
	seq   []byte
	every time.Duration

	next    time.Time
	held    int
	release time.Time
}

func newTapScript(sim *Sim, script string, every time.Duration) *tapScript {
	return &tapScript{sim: sim, seq: []byte(script), every: every, held: -1}
}

func (s *tapScript) push(b byte) { s.seq = append(s.seq, b) }

func (s *tapScript) done() bool { return len(s.seq) == 0 && s.held < 0 }

func (s *tapScript) update(now time.Time) {
	if s.held >= 0 && !now.Before(s.release) {
		s.sim.SetButton(s.held, false)
		s.held = -1
	}
	if s.held >= 0 || len(s.seq) == 0 || now.Before(s.next) {
		return
	}

	c := s.seq[0]
	s.seq = s.seq[1:]
	s.next = now.Add(s.every)

	id, ok := tapButton(c)
	if !ok {
		return
	}
	s.sim.SetButton(id, true)
	s.held = id
	s.release = now.Add(s.every / 2)
}

func tapButton(c byte) (int, bool) {
	switch c {
	case '-', '_', 'j':
		return ButtonDown, true
	case '+', '=', 'k':
		return ButtonUp, true
	default:
		return 0, false
	}
}

func openTerminalKeys() (<-chan byte, func(), error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open terminal: %w", err)
	}

	ch := make(chan byte, 16)
	go func() {
		defer close(ch)
		buf := make([]byte, 1)
		for {
			n, err := t.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case ch <- buf[0]:
			default:
			}
		}
	}()

	restore := func() {
		_ = t.Restore()
		_ = t.Close()
	}
	return ch, restore, nil
}
