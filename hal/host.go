//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type hostHAL struct {
	*Sim
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	clock  *wallClock
}

// New returns a host HAL implementation: the simulated board plus a panel
// framebuffer and a wall-clock driver.
func New() HAL {
	return newHost()
}

func newHost() *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	sim := NewSim(logger)
	return &hostHAL{
		Sim:    sim,
		logger: logger,
		fb:     newHostFramebuffer(240, 160),
		kbd:    newHostKeyboard(sim),
		clock:  newWallClock(sim, nil),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Yield()           { time.Sleep(mainLoopPause) }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
