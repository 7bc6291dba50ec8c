package hal

import (
	"sync"
	"sync/atomic"
	"time"
)

// virtualPort is a latched 8-bit output register. Reads and writes are single
// word accesses, so the main loop and the interrupt handler may both use it.
type virtualPort struct {
	name    string
	v       atomic.Uint32
	onWrite func(v uint8)
}

func newVirtualPort(name string, onWrite func(v uint8)) *virtualPort {
	return &virtualPort{name: name, onWrite: onWrite}
}

func (p *virtualPort) Name() string { return p.name }

func (p *virtualPort) Get() uint8 { return uint8(p.v.Load()) }

func (p *virtualPort) Set(v uint8) {
	p.v.Store(uint32(v))
	if p.onWrite != nil {
		p.onWrite(v)
	}
}

// Glow is the perceived brightness of every segment (bit order of the
// segment port) at each digit position, relative to the time that position's
// line was energized: 0 = dark, 255 = lit whenever the digit was selected.
type Glow [3][8]uint8

// Pattern returns the segments of a position that were lit at least half of
// the time.
func (g Glow) Pattern(pos int) uint8 {
	if pos < 0 || pos >= len(g) {
		return 0
	}
	var p uint8
	for seg, b := range g[pos] {
		if b >= 128 {
			p |= 1 << seg
		}
	}
	return p
}

// persistence integrates, in wall time, how long every segment of every
// position has been driven. That is what a viewer of a multiplexed display
// sees.
type persistence struct {
	mu  sync.Mutex
	now func() time.Time

	lines    uint8
	segments uint8

	since time.Time
	lit   [3]time.Duration
	on    [3][8]time.Duration
}

func newPersistence(now func() time.Time) *persistence {
	if now == nil {
		now = time.Now
	}
	return &persistence{now: now}
}

func (d *persistence) setLines(v uint8) {
	d.mu.Lock()
	d.account()
	d.lines = v
	d.mu.Unlock()
}

func (d *persistence) setSegments(v uint8) {
	d.mu.Lock()
	d.account()
	d.segments = v
	d.mu.Unlock()
}

// account credits the time since the last change to the current state.
func (d *persistence) account() {
	t := d.now()
	if !d.since.IsZero() {
		if pos, ok := activeLine(d.lines); ok {
			dt := t.Sub(d.since)
			d.lit[pos] += dt
			for seg := 0; seg < 8; seg++ {
				if d.segments&(1<<seg) != 0 {
					d.on[pos][seg] += dt
				}
			}
		}
	}
	d.since = t
}

// glow returns the brightness since the previous call and starts a new
// window.
func (d *persistence) glow() Glow {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.account()

	var g Glow
	for pos, lit := range d.lit {
		if lit <= 0 {
			continue
		}
		for seg, on := range d.on[pos] {
			g[pos][seg] = uint8(int64(on) * 255 / int64(lit))
		}
	}
	d.lit = [3]time.Duration{}
	d.on = [3][8]time.Duration{}
	return g
}

// activeLine returns the digit position energized by a one-hot line value.
func activeLine(v uint8) (int, bool) {
	switch v & 0b111 {
	case 0b001:
		return 0, true
	case 0b010:
		return 1, true
	case 0b100:
		return 2, true
	default:
		return 0, false
	}
}
