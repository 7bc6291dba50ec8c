//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts a machine.Pin to GPIOPin.
type machinePin struct {
	pin  machine.Pin
	name string
	caps GPIOCaps
}

func newMachinePin(name string, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{pin: pin, name: name, caps: caps}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	if p.caps&GPIOCapInput == 0 {
		return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
	}
	var cfg machine.PinConfig
	switch pull {
	case GPIOPullNone:
		cfg.Mode = machine.PinInput
	case GPIOPullUp:
		cfg.Mode = machine.PinInputPullup
	case GPIOPullDown:
		cfg.Mode = machine.PinInputPulldown
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}
	p.pin.Configure(cfg)
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func machineGPIO(pins ...*machinePin) GPIO {
	out := make([]GPIOPin, len(pins))
	for i, p := range pins {
		out[i] = p
	}
	return newVirtualGPIO(out)
}
