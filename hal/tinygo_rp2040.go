//go:build tinygo && rp2040

package hal

import (
	"device/rp"
	"machine"
	"runtime/interrupt"
	"sync/atomic"
	"time"
)

// Raspberry Pi Pico wiring. Each port occupies consecutive GPIOs so it can be
// written through the SIO set/clear registers in two stores.
const (
	ledBase     = 2  // GP2..GP9
	segmentBase = 10 // GP10..GP17
	digitBase   = 18 // GP18..GP20
)

type rp2040HAL struct {
	logger *uartLogger
	gpio   GPIO
	ports  [portCount]*sioPort
}

// New returns a Raspberry Pi Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Buttons: GP21 (down), GP22 (up), to ground.
// Timer: TIMER alarm 1 on TIMER_IRQ_1; alarm 0 belongs to the runtime.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	caps := GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown
	return &rp2040HAL{
		logger: &uartLogger{uart: uart},
		gpio: machineGPIO(
			newMachinePin("GP21", machine.GP21, caps),
			newMachinePin("GP22", machine.GP22, caps),
		),
		ports: [portCount]*sioPort{
			PortLEDs:     newSIOPort(PortLEDs.String(), ledBase, 8),
			PortSegments: newSIOPort(PortSegments.String(), segmentBase, 8),
			PortDigits:   newSIOPort(PortDigits.String(), digitBase, 3),
		},
	}
}

func (h *rp2040HAL) Logger() Logger         { return h.logger }
func (h *rp2040HAL) GPIO() GPIO             { return h.gpio }
func (h *rp2040HAL) Timer() Timer           { return &alarm1 }
func (h *rp2040HAL) Interrupts() Interrupts { return &alarm1 }
func (h *rp2040HAL) Display() Display       { return nil }
func (h *rp2040HAL) Yield()                 { time.Sleep(mainLoopPause) }

func (h *rp2040HAL) Port(id PortID) Port {
	if id >= portCount {
		return nil
	}
	return h.ports[id]
}

type sioPort struct {
	name  string
	shift uint32
	mask  uint32
	v     atomic.Uint32
}

func newSIOPort(name string, base, width uint8) *sioPort {
	p := &sioPort{
		name:  name,
		shift: uint32(base),
		mask:  (uint32(1)<<width - 1) << base,
	}
	for i := uint8(0); i < width; i++ {
		pin := machine.Pin(base + i)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
	return p
}

func (p *sioPort) Name() string { return p.name }
func (p *sioPort) Get() uint8   { return uint8(p.v.Load()) }

func (p *sioPort) Set(v uint8) {
	bits := (uint32(v) << p.shift) & p.mask
	p.v.Store(bits >> p.shift)
	rp.SIO.GPIO_OUT_CLR.Set(p.mask &^ bits)
	rp.SIO.GPIO_OUT_SET.Set(bits)
}

// alarmTimer is a Timer on one RP2040 TIMER alarm. The alarm fires once per
// arming. It is first armed when the handler is attached; Reload re-arms it
// one period after the previous target.
type alarmTimer struct {
	cfg     TimerConfig
	sched   alarmSchedule
	handler func()
	irq     interrupt.Interrupt
}

var alarm1 alarmTimer

func init() {
	alarm1.irq = interrupt.New(rp.IRQ_TIMER_IRQ_1, handleAlarm1)
}

func handleAlarm1(interrupt.Interrupt) {
	if h := alarm1.handler; h != nil {
		h()
	}
}

func (t *alarmTimer) Configure(cfg TimerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	us := uint32(cfg.Period() / time.Microsecond)
	if us == 0 {
		us = 1
	}
	t.cfg = cfg
	t.sched.period = us
	if t.handler != nil {
		t.arm()
	}
	return nil
}

func (t *alarmTimer) Period() time.Duration { return t.cfg.Period() }

func (t *alarmTimer) Reload() {
	rp.TIMER.ALARM1.Set(t.sched.next(rp.TIMER.TIMERAWL.Get()))
}

// arm drops any stale alarm and starts the cadence from the current count.
func (t *alarmTimer) arm() {
	t.ClearPending()
	rp.TIMER.ALARM1.Set(t.sched.arm(rp.TIMER.TIMERAWL.Get()))
}

func (t *alarmTimer) Pending() bool {
	return rp.TIMER.INTR.HasBits(rp.TIMER_INTR_ALARM_1)
}

// ClearPending acknowledges the alarm; INTR is write-1-to-clear.
func (t *alarmTimer) ClearPending() {
	rp.TIMER.INTR.Set(rp.TIMER_INTR_ALARM_1)
}

func (t *alarmTimer) SetInterrupt(handler func()) error {
	if handler == nil {
		return ErrNotImplemented
	}
	if t.handler != nil {
		return ErrInterruptRegistered
	}
	t.handler = handler
	t.arm()
	rp.TIMER.INTE.SetBits(rp.TIMER_INTE_ALARM_1)
	t.irq.SetPriority(0xC0)
	return nil
}

// Enable unmasks the alarm interrupt in the NVIC.
func (t *alarmTimer) Enable() {
	t.irq.Enable()
}
