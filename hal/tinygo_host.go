//go:build tinygo && !baremetal

package hal

import (
	"context"
	"time"
)

type tinyGoHostHAL struct {
	*Sim
	logger *tinyGoHostLogger
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the simulated board is stepped from a 1ms ticker.
func New() HAL {
	l := &tinyGoHostLogger{}
	h := &tinyGoHostHAL{Sim: NewSim(l), logger: l}

	go newWallClock(h.Sim, nil).run(context.Background(), clockTick)
	return h
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) Yield()         { time.Sleep(mainLoopPause) }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
