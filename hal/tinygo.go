//go:build tinygo && baremetal && !rp2040

package hal

import (
	"context"
	"machine"
	"time"
)

type tinyGoHAL struct {
	*Sim
	logger *uartLogger
}

// New returns a HAL for boards without a pin mapping: the simulated board runs
// on the MCU, stepped from a 1ms ticker, and logs to the default UART at
// 115200 8N1.
func New() HAL {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	l := &uartLogger{uart: uart}
	h := &tinyGoHAL{Sim: NewSim(l), logger: l}
	go newWallClock(h.Sim, nil).run(context.Background(), clockTick)
	return h
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) Yield()         { time.Sleep(mainLoopPause) }
