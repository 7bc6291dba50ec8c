package app

import (
	"fmt"
	"image/color"

	"segcount/firmware"
	"segcount/hal"
	"segcount/internal/buildinfo"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBG     = color.RGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff}
	colorFG     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim    = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorSegOff = color.RGBA{R: 0x2a, G: 0x0a, B: 0x0a, A: 0xff}
	colorSegOn  = color.RGBA{R: 0xff, G: 0x30, B: 0x20, A: 0xff}
	colorLEDOff = color.RGBA{R: 0x0a, G: 0x24, B: 0x0a, A: 0xff}
	colorLEDOn  = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
	colorLineOn = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
)

// Digit geometry, in pixels.
const (
	digitW   = 40
	digitH   = 70
	segT     = 6
	digitGap = 20
	digitTop = 24

	lineTop  = digitTop + digitH + 8
	lineSize = 6

	ledTop  = lineTop + lineSize + 12
	ledSize = 10
	ledGap  = 8

	textLine1 = 14
	textLine2 = 156
)

type rect struct{ x, y, w, h int16 }

const (
	barW   = digitW - 2*segT
	sideH  = digitH/2 - segT - segT/2
	rightX = digitW - segT
	midY   = digitH/2 - segT/2
	lowY   = digitH/2 + segT/2
)

// segRects places segments a..g and dp (bit 0..7 of the segment port) inside
// one digit cell.
var segRects = [8]rect{
	{segT, 0, barW, segT},
	{rightX, segT, segT, sideH},
	{rightX, lowY, segT, sideH},
	{segT, digitH - segT, barW, segT},
	{0, lowY, segT, sideH},
	{0, segT, segT, sideH},
	{segT, midY, barW, segT},
	{digitW + 3, digitH - segT, segT, segT},
}

// panel draws the board front: the multiplexed display as a viewer would see
// it, the digit-line drivers and the LED bank.
type panel struct {
	fb   hal.Framebuffer
	d    *fbDisplay
	font tinyfont.Fonter
	left int16
}

func newPanel(fb hal.Framebuffer) *panel {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	width := int16(3*digitW + 2*digitGap)
	return &panel{
		fb:   fb,
		d:    newFBDisplay(fb),
		font: &proggy.TinySZ8pt7b,
		left: (int16(fb.Width()) - width) / 2,
	}
}

// digitX returns the left edge of a digit position.
func (p *panel) digitX(pos int) int16 {
	return p.left + int16(pos)*(digitW+digitGap)
}

func (p *panel) render(g hal.Glow, lines, leds uint8) error {
	w, h := p.d.Size()
	_ = p.d.FillRectangle(0, 0, w, h, colorBG)

	tinyfont.WriteLine(p.d, p.font, 4, textLine1, "segcount "+buildinfo.Short(), colorDim)
	tinyfont.WriteLine(p.d, p.font, w-64, textLine1, fmt.Sprintf("count %3d", leds), colorFG)

	for pos := 0; pos < 3; pos++ {
		x := p.digitX(pos)
		for seg, r := range segRects {
			c := blend(colorSegOff, colorSegOn, g[pos][seg])
			_ = p.d.FillRectangle(x+r.x, digitTop+r.y, r.w, r.h, c)
		}

		c := colorLEDOff
		if lines&(1<<pos) != 0 {
			c = colorLineOn
		}
		_ = p.d.FillRectangle(x+(digitW-lineSize)/2, lineTop, lineSize, lineSize, c)
	}

	ledsW := int16(8*ledSize + 7*ledGap)
	x0 := (w - ledsW) / 2
	for i := 0; i < 8; i++ {
		// Bit 7 on the left, like reading the number.
		c := colorLEDOff
		if leds&(1<<(7-i)) != 0 {
			c = colorLEDOn
		}
		_ = p.d.FillRectangle(x0+int16(i)*(ledSize+ledGap), ledTop, ledSize, ledSize, c)
	}

	tinyfont.WriteLine(p.d, p.font, 4, textLine2, "- down   + up", colorDim)
	return p.d.Display()
}

// blend mixes off and on by level/255.
func blend(off, on color.RGBA, level uint8) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8((int(a)*(255-int(level)) + int(b)*int(level)) / 255)
	}
	return color.RGBA{R: mix(off.R, on.R), G: mix(off.G, on.G), B: mix(off.B, on.B), A: 0xff}
}

// portGlow builds a Glow from the live ports for boards without a
// persistence model: only the currently selected digit is lit.
func portGlow(lines, segments uint8) hal.Glow {
	var g hal.Glow
	for pos := 0; pos < 3; pos++ {
		if lines&(1<<pos) == 0 {
			continue
		}
		for seg := 0; seg < 8; seg++ {
			if segments&(1<<seg) != 0 {
				g[pos][seg] = 0xff
			}
		}
	}
	return g
}

// readout renders the three patterns as decoded digits for the log.
func readout(g hal.Glow) string {
	var b [5]byte
	for pos := 0; pos < 3; pos++ {
		b[pos*2] = glyph(g.Pattern(pos))
		if pos < 2 {
			b[pos*2+1] = ' '
		}
	}
	return string(b[:])
}

func glyph(pattern uint8) byte {
	if pattern == 0 {
		return '_'
	}
	d, ok := firmware.Decode(pattern)
	if !ok {
		return '?'
	}
	return '0' + d
}
