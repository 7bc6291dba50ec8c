package app

import (
	"fmt"
	"strings"

	"segcount/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// showFault reports a start-up error or a crashed main loop on the log and,
// if the board has a screen, on the panel. There is no other way for the
// board to signal a fault.
func showFault(h hal.HAL, err error) {
	msg := err.Error()
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("segcount fault: %s", msg))
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(0x40, 0, 0)

	d := newFBDisplay(fb)
	font := &proggy.TinySZ8pt7b
	const lineHeight = 12

	_, outboxWidth := tinyfont.LineWidth(font, "0")
	cols := 1
	if outboxWidth > 0 {
		cols = fb.Width() / int(outboxWidth)
	}

	y := int16(lineHeight)
	tinyfont.WriteLine(d, font, 0, y, "segcount fault:", colorFG)
	for _, line := range wrapLine(msg, cols) {
		y += lineHeight
		if int(y) > fb.Height() {
			break
		}
		tinyfont.WriteLine(d, font, 0, y, line, colorFG)
	}
	_ = d.Display()
}

func wrapLine(s string, width int) []string {
	if width <= 0 || s == "" {
		return nil
	}
	var out []string
	for len(s) > width {
		out = append(out, strings.TrimRight(s[:width], " "))
		s = strings.TrimLeft(s[width:], " ")
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
