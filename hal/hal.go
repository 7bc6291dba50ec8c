package hal

import (
	"errors"
	"fmt"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented      = errors.New("not implemented")
	ErrInterruptRegistered = errors.New("interrupt handler already registered")
	ErrBadTimerConfig      = errors.New("invalid timer config")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// PortID names one of the board's 8-bit output ports.
type PortID uint8

const (
	// PortLEDs mirrors the counter on eight LEDs (PORTA on the PIC16 board).
	PortLEDs PortID = iota
	// PortSegments drives segments a..g and dp of every digit (PORTC).
	PortSegments
	// PortDigits drives the three digit transistors, bit 0 = hundreds (PORTD).
	PortDigits

	portCount
)

func (id PortID) String() string {
	switch id {
	case PortLEDs:
		return "LEDS"
	case PortSegments:
		return "SEGMENTS"
	case PortDigits:
		return "DIGITS"
	default:
		return fmt.Sprintf("PORT%d", uint8(id))
	}
}

// Port is an 8-bit output port. Set replaces all eight lines at once.
type Port interface {
	Name() string
	Set(v uint8)
	Get() uint8
}

// Pin ids of the two push-buttons. Both are active-low.
const (
	ButtonDown = 0 // RB0, decrements the counter
	ButtonUp   = 1 // RB1, increments the counter
)

// TimerConfig describes a Timer0-style countdown: the timer counts
// instruction cycles (ClockHz/4) through the prescaler from Preload up to the
// 8-bit overflow.
type TimerConfig struct {
	ClockHz   uint32
	Prescaler uint16
	Preload   uint8
}

// DefaultTimerConfig is the board setup: 1 MHz internal clock, 1:4 prescaler,
// preload 131, which overflows every 2 ms.
var DefaultTimerConfig = TimerConfig{
	ClockHz:   1_000_000,
	Prescaler: 4,
	Preload:   131,
}

// Validate reports whether the config can be programmed.
func (c TimerConfig) Validate() error {
	if c.ClockHz == 0 {
		return fmt.Errorf("%w: zero clock", ErrBadTimerConfig)
	}
	p := c.Prescaler
	if p == 0 || p > 256 || p&(p-1) != 0 {
		return fmt.Errorf("%w: prescaler 1:%d", ErrBadTimerConfig, p)
	}
	return nil
}

// Period returns the time between two overflows when the timer is reloaded
// with Preload on every overflow.
func (c TimerConfig) Period() time.Duration {
	if c.ClockHz == 0 {
		return 0
	}
	cycles := uint64(256-int(c.Preload)) * uint64(c.Prescaler)
	return time.Duration(cycles * 4 * uint64(time.Second) / uint64(c.ClockHz))
}

// Timer is a periodic countdown timer with an expiry flag and one interrupt
// handler.
type Timer interface {
	Configure(cfg TimerConfig) error
	Period() time.Duration
	// Reload restarts the countdown from the configured preload.
	Reload()
	// Pending reports the expiry flag.
	Pending() bool
	// ClearPending clears the expiry flag. A handler that does not clear it
	// is invoked again immediately.
	ClearPending()
	// SetInterrupt registers the expiry handler and enables the source.
	// Only one handler can ever be registered.
	SetInterrupt(handler func()) error
}

// Interrupts is the global interrupt enable.
type Interrupts interface {
	Enable()
}

// HAL provides the only contact point between the firmware and the board.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Port(id PortID) Port
	Timer() Timer
	Interrupts() Interrupts
	Display() Display
	// Yield gives other execution contexts a chance to run while the
	// caller spins.
	Yield()
}
