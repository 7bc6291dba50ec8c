package firmware

import (
	"time"

	"segcount/hal"
)

// scriptPin returns the scripted levels in order, then idles high (released).
type scriptPin struct {
	name   string
	levels []bool
	err    error
	reads  int
}

func (p *scriptPin) Name() string       { return p.name }
func (p *scriptPin) Caps() hal.GPIOCaps { return hal.GPIOCapInput | hal.GPIOCapPullUp }

func (p *scriptPin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error { return nil }

func (p *scriptPin) Read() (bool, error) {
	p.reads++
	if p.err != nil {
		return false, p.err
	}
	if len(p.levels) == 0 {
		return true, nil
	}
	v := p.levels[0]
	p.levels = p.levels[1:]
	return v, nil
}

// recordPort keeps every value written to it.
type recordPort struct {
	name   string
	v      uint8
	writes []uint8
}

func (p *recordPort) Name() string { return p.name }
func (p *recordPort) Get() uint8   { return p.v }

func (p *recordPort) Set(v uint8) {
	p.v = v
	p.writes = append(p.writes, v)
}

// fakeTimer records reloads and exposes the pending flag.
type fakeTimer struct {
	pending bool
	reloads int
	clears  int
}

func (t *fakeTimer) Configure(hal.TimerConfig) error { return nil }
func (t *fakeTimer) Period() time.Duration           { return 2 * time.Millisecond }
func (t *fakeTimer) Reload()                         { t.reloads++ }
func (t *fakeTimer) Pending() bool                   { return t.pending }

func (t *fakeTimer) ClearPending() {
	t.pending = false
	t.clears++
}

func (t *fakeTimer) SetInterrupt(func()) error { return nil }
