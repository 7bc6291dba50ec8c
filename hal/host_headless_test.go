//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func pinLevel(t *testing.T, s *Sim, id int) bool {
	t.Helper()
	level, err := s.GPIO().Pin(id).Read()
	if err != nil {
		t.Fatalf("Read(%d): %v", id, err)
	}
	return level
}

func TestTapScript(t *testing.T) {
	s := NewSim(nil)
	for _, id := range []int{ButtonDown, ButtonUp} {
		if err := s.GPIO().Pin(id).Configure(GPIOModeInput, GPIOPullUp); err != nil {
			t.Fatalf("Configure: %v", err)
		}
	}

	start := time.Unix(100, 0)
	every := 200 * time.Millisecond
	taps := newTapScript(s, "+.-", every)

	taps.update(start)
	if pinLevel(t, s, ButtonUp) {
		t.Fatalf("up not pressed at the first slot")
	}

	taps.update(start.Add(50 * time.Millisecond))
	if pinLevel(t, s, ButtonUp) {
		t.Fatalf("up released before half a slot")
	}

	taps.update(start.Add(100 * time.Millisecond))
	if !pinLevel(t, s, ButtonUp) {
		t.Fatalf("up still pressed after half a slot")
	}

	// '.' is a pause.
	taps.update(start.Add(every))
	if !pinLevel(t, s, ButtonUp) || !pinLevel(t, s, ButtonDown) {
		t.Fatalf("a button is pressed during a pause slot")
	}

	taps.update(start.Add(2 * every))
	if pinLevel(t, s, ButtonDown) {
		t.Fatalf("down not pressed at the third slot")
	}
	if taps.done() {
		t.Fatalf("done() = true while a tap is held")
	}

	taps.update(start.Add(2*every + every/2))
	if !pinLevel(t, s, ButtonDown) {
		t.Fatalf("down still pressed")
	}
	if !taps.done() {
		t.Fatalf("done() = false after the last tap")
	}

	taps.push('k')
	taps.update(start.Add(3 * every))
	if pinLevel(t, s, ButtonUp) {
		t.Fatalf("pushed 'k' did not press up")
	}
}

func TestTapButton(t *testing.T) {
	tests := []struct {
		c    byte
		id   int
		want bool
	}{
		{'-', ButtonDown, true},
		{'j', ButtonDown, true},
		{'+', ButtonUp, true},
		{'=', ButtonUp, true},
		{'k', ButtonUp, true},
		{'.', 0, false},
		{'q', 0, false},
	}
	for _, tt := range tests {
		id, ok := tapButton(tt.c)
		if ok != tt.want || (ok && id != tt.id) {
			t.Fatalf("tapButton(%q) = (%d, %v), want (%d, %v)", tt.c, id, ok, tt.id, tt.want)
		}
	}
}
