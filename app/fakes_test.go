package app

import (
	"segcount/hal"
)

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

// memFB is an in-memory RGB565 framebuffer.
type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }

func (f *memFB) ClearRGB(r, g, b uint8) {
	p := rgb565From888(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFB) Present() error {
	f.presents++
	return nil
}

func (f *memFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type memDisplay struct{ fb *memFB }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

// board is a Sim with a screen whose Yield stands in for the outside world
// while the main loop waits on a held button.
type board struct {
	*hal.Sim
	fb      *memFB
	onYield func()
}

func newBoard(log hal.Logger) *board {
	return &board{Sim: hal.NewSim(log), fb: newMemFB(240, 160)}
}

func (b *board) Display() hal.Display {
	if b.fb == nil {
		return nil
	}
	return memDisplay{fb: b.fb}
}

func (b *board) Yield() {
	if b.onYield != nil {
		b.onYield()
	}
}
