package app

import (
	"context"
	"errors"
	"fmt"

	"segcount/firmware"
	"segcount/hal"
	"segcount/internal/buildinfo"
)

// Config holds the board settings chosen at start-up.
type Config struct {
	// Timer is the multiplexer tick. The zero value selects
	// hal.DefaultTimerConfig (2 ms).
	Timer hal.TimerConfig
}

// System is a configured board running the counter firmware.
type System struct {
	h     hal.HAL
	fw    *firmware.Firmware
	log   hal.Logger
	panel *panel

	glow   func() hal.Glow
	shown  string
	done   chan struct{}
	runErr error
}

// glowSource is implemented by HALs that model what a viewer sees on the
// multiplexed display.
type glowSource interface {
	Glow() hal.Glow
}

// New configures the board and starts the main loop on its own goroutine.
// The loop stops when ctx is done; Wait blocks until it has.
func New(ctx context.Context, h hal.HAL, cfg Config) (*System, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	go func() {
		defer close(s.done)
		defer func() {
			if r := recover(); r != nil {
				s.runErr = fmt.Errorf("main loop: panic: %v", r)
				showFault(h, s.runErr)
			}
		}()
		s.runErr = s.fw.Run(ctx)
	}()
	return s, nil
}

// Run configures the board and runs the main loop on the calling goroutine.
// It never returns (TinyGo entrypoint).
func Run(h hal.HAL) {
	s, err := newSystem(h, Config{})
	if err != nil {
		showFault(h, err)
		select {}
	}
	_ = s.fw.Run(context.Background())
	select {}
}

// newSystem runs the one-time start-up in the order the board needs it:
// I/O, timer, interrupts, then the button pull-ups.
func newSystem(h hal.HAL, cfg Config) (*System, error) {
	if cfg.Timer == (hal.TimerConfig{}) {
		cfg.Timer = hal.DefaultTimerConfig
	}

	fw := firmware.New(h)
	s := &System{
		h:    h,
		fw:   fw,
		log:  h.Logger(),
		done: make(chan struct{}),
	}

	if err := configureIO(h); err != nil {
		return nil, fmt.Errorf("io: %w", err)
	}

	timer := h.Timer()
	if timer == nil {
		return nil, fmt.Errorf("timer: %w", hal.ErrNotImplemented)
	}
	if err := timer.Configure(cfg.Timer); err != nil {
		return nil, fmt.Errorf("timer: %w", err)
	}

	irq := h.Interrupts()
	if irq == nil {
		return nil, fmt.Errorf("interrupts: %w", hal.ErrNotImplemented)
	}
	if err := timer.SetInterrupt(fw.Interrupt()); err != nil {
		return nil, fmt.Errorf("interrupts: %w", err)
	}
	irq.Enable()

	if err := configureButtons(h, hal.GPIOPullUp); err != nil {
		return nil, fmt.Errorf("pull-ups: %w", err)
	}

	if d := h.Display(); d != nil {
		s.panel = newPanel(d.Framebuffer())
	}
	if src, ok := h.(glowSource); ok {
		s.glow = src.Glow
	} else {
		s.glow = func() hal.Glow {
			return portGlow(h.Port(hal.PortDigits).Get(), h.Port(hal.PortSegments).Get())
		}
	}

	s.logf("segcount %s: refresh every %s per digit", buildinfo.Long(), timer.Period())
	return s, nil
}

// configureIO clears every output port and makes the buttons plain inputs.
func configureIO(h hal.HAL) error {
	for _, id := range []hal.PortID{hal.PortLEDs, hal.PortSegments, hal.PortDigits} {
		p := h.Port(id)
		if p == nil {
			return fmt.Errorf("port %s: %w", id, hal.ErrNotImplemented)
		}
		p.Set(0)
	}
	return configureButtons(h, hal.GPIOPullNone)
}

func configureButtons(h hal.HAL, pull hal.GPIOPull) error {
	gpio := h.GPIO()
	if gpio == nil {
		return fmt.Errorf("gpio: %w", hal.ErrNotImplemented)
	}
	for _, id := range []int{hal.ButtonDown, hal.ButtonUp} {
		pin := gpio.Pin(id)
		if pin == nil {
			return fmt.Errorf("gpio: button %d: %w", id, hal.ErrNotImplemented)
		}
		if err := pin.Configure(hal.GPIOModeInput, pull); err != nil {
			return err
		}
	}
	return nil
}

// Step is the per-frame hook of the host runners: it samples what the display
// showed since the previous frame, logs changes and redraws the panel.
func (s *System) Step() error {
	select {
	case <-s.done:
		if err := s.Wait(); err != nil {
			return err
		}
	default:
	}

	g := s.glow()
	if r := readout(g); r != s.shown {
		s.shown = r
		s.logf("display: %s", r)
	}

	if s.panel == nil {
		return nil
	}
	lines := s.h.Port(hal.PortDigits).Get()
	leds := s.h.Port(hal.PortLEDs).Get()
	return s.panel.render(g, lines, leds)
}

// Shown returns the digits logged by the last Step, e.g. "0 4 2".
func (s *System) Shown() string { return s.shown }

// Wait blocks until the main loop has stopped. A cancelled context is a
// normal stop.
func (s *System) Wait() error {
	<-s.done
	if errors.Is(s.runErr, context.Canceled) || errors.Is(s.runErr, context.DeadlineExceeded) {
		return nil
	}
	return s.runErr
}

func (s *System) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
