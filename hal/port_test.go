package hal

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPersistenceFullyLitDigits(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := newPersistence(clk.now)

	patterns := [3]uint8{0x3F, 0x06, 0x5B}
	for round := 0; round < 4; round++ {
		for pos, pat := range patterns {
			p.setLines(0)
			p.setLines(1 << pos)
			p.setSegments(pat)
			clk.advance(2 * time.Millisecond)
		}
	}

	g := p.glow()
	for pos, pat := range patterns {
		if got := g.Pattern(pos); got != pat {
			t.Fatalf("Pattern(%d) = %#02x, want %#02x", pos, got, pat)
		}
	}
	if g[0][0] != 255 {
		t.Fatalf("segment a of hundreds = %d, want 255", g[0][0])
	}
	if g[1][0] != 0 {
		t.Fatalf("segment a of tens = %d, want 0", g[1][0])
	}
}

func TestPersistenceFaintGhostIsBelowThreshold(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := newPersistence(clk.now)

	// Units lit with 7 for 1.6ms, then rewritten with 0 for 0.4ms.
	p.setLines(0b100)
	p.setSegments(0x07)
	clk.advance(1600 * time.Microsecond)
	p.setSegments(0x3F)
	clk.advance(400 * time.Microsecond)

	g := p.glow()
	if got := g.Pattern(2); got != 0x07 {
		t.Fatalf("Pattern(2) = %#02x, want 0x07", got)
	}
	if g[2][3] == 0 {
		t.Fatalf("ghost segment d = 0, want a faint glow")
	}
}

func TestPersistenceWindowResets(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	p := newPersistence(clk.now)

	p.setLines(0b001)
	p.setSegments(0x06)
	clk.advance(time.Millisecond)
	if got := p.glow().Pattern(0); got != 0x06 {
		t.Fatalf("first window Pattern(0) = %#02x, want 0x06", got)
	}

	p.setLines(0)
	clk.advance(time.Millisecond)
	if got := p.glow(); got != (Glow{}) {
		t.Fatalf("dark window glow = %v, want all zero", got)
	}
}

func TestGlowPatternBounds(t *testing.T) {
	var g Glow
	g[1][0] = 200
	g[1][1] = 127
	if got := g.Pattern(1); got != 0x01 {
		t.Fatalf("Pattern(1) = %#02x, want 0x01", got)
	}
	if g.Pattern(-1) != 0 || g.Pattern(3) != 0 {
		t.Fatalf("out of range Pattern != 0")
	}
}

func TestActiveLine(t *testing.T) {
	tests := []struct {
		v    uint8
		pos  int
		want bool
	}{
		{0b000, 0, false},
		{0b001, 0, true},
		{0b010, 1, true},
		{0b100, 2, true},
		{0b011, 0, false},
		{0b111, 0, false},
	}
	for _, tt := range tests {
		pos, ok := activeLine(tt.v)
		if ok != tt.want || (ok && pos != tt.pos) {
			t.Fatalf("activeLine(%03b) = (%d, %v), want (%d, %v)", tt.v, pos, ok, tt.pos, tt.want)
		}
	}
}

func TestVirtualPortNotifies(t *testing.T) {
	var seen []uint8
	p := newVirtualPort("SEGMENTS", func(v uint8) { seen = append(seen, v) })
	p.Set(0x3F)
	p.Set(0x06)
	if p.Get() != 0x06 {
		t.Fatalf("Get() = %#02x, want 0x06", p.Get())
	}
	if len(seen) != 2 || seen[0] != 0x3F || seen[1] != 0x06 {
		t.Fatalf("onWrite saw %v", seen)
	}
}
