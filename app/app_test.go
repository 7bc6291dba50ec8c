package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"segcount/hal"
)

// settle runs the board for 60ms of simulated time and samples the display.
func settle(t *testing.T, s *System, b *board) {
	t.Helper()
	b.Step(15_000)
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestNewSystemStartUp(t *testing.T) {
	log := &lineLog{}
	b := newBoard(log)
	s, err := newSystem(b, Config{})
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}

	if got := b.Timer().Period(); got != 2*time.Millisecond {
		t.Fatalf("Period() = %s, want 2ms", got)
	}
	for _, id := range []int{hal.ButtonDown, hal.ButtonUp} {
		if level, _ := b.GPIO().Pin(id).Read(); !level {
			t.Fatalf("button %d reads pressed after start-up", id)
		}
	}
	if len(log.lines) == 0 || !strings.Contains(log.lines[0], "refresh every 2ms per digit") {
		t.Fatalf("start-up log = %q", log.lines)
	}
	if s.panel == nil {
		t.Fatalf("panel = nil on a board with a screen")
	}

	// Nothing published yet: the display is blank.
	settle(t, s, b)
	if got := s.Shown(); got != "_ _ _" {
		t.Fatalf("Shown() = %q before the main loop ran, want blank", got)
	}
}

func TestCountingUpAndDown(t *testing.T) {
	log := &lineLog{}
	b := newBoard(log)
	s, err := newSystem(b, Config{})
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}

	s.fw.Step()
	settle(t, s, b)
	if got := s.Shown(); got != "0 0 0" {
		t.Fatalf("Shown() = %q, want %q", got, "0 0 0")
	}

	tap := func(id int) {
		b.SetButton(id, true)
		b.onYield = func() { b.SetButton(id, false) }
		s.fw.Step()
		b.onYield = nil
	}

	tap(hal.ButtonDown)
	settle(t, s, b)
	if got := s.Shown(); got != "2 5 5" {
		t.Fatalf("Shown() after wrap = %q, want %q", got, "2 5 5")
	}
	if got := b.Port(hal.PortLEDs).Get(); got != 255 {
		t.Fatalf("LEDs = %d, want 255", got)
	}

	tap(hal.ButtonUp)
	tap(hal.ButtonUp)
	settle(t, s, b)
	if got := s.Shown(); got != "0 0 1" {
		t.Fatalf("Shown() = %q, want %q", got, "0 0 1")
	}

	var display []string
	for _, l := range log.lines {
		if strings.HasPrefix(l, "display: ") {
			display = append(display, strings.TrimPrefix(l, "display: "))
		}
	}
	want := []string{"0 0 0", "2 5 5", "0 0 1"}
	if strings.Join(display, "|") != strings.Join(want, "|") {
		t.Fatalf("display log = %q, want %q", display, want)
	}
}

func TestNewSystemErrors(t *testing.T) {
	b := newBoard(nil)
	_, err := newSystem(b, Config{Timer: hal.TimerConfig{ClockHz: 1_000_000, Prescaler: 3}})
	if !errors.Is(err, hal.ErrBadTimerConfig) {
		t.Fatalf("newSystem(bad timer) = %v, want ErrBadTimerConfig", err)
	}

	b = newBoard(nil)
	if _, err := newSystem(b, Config{}); err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	if _, err := newSystem(b, Config{}); !errors.Is(err, hal.ErrInterruptRegistered) {
		t.Fatalf("second newSystem = %v, want ErrInterruptRegistered", err)
	}
}

func TestNewRunsUntilCancelled(t *testing.T) {
	b := newBoard(nil)
	b.fb = nil
	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(ctx, b, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.panel != nil {
		t.Fatalf("panel != nil on a board without a screen")
	}
	cancel()
	if err := s.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}

	var buf bytes.Buffer
	s.DumpState(&buf)
	if !strings.Contains(buf.String(), "digraph") {
		t.Fatalf("DumpState wrote %q, want a dot graph", buf.String())
	}
}
