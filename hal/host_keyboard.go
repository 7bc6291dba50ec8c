//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard holds the board buttons down while their keys are held.
type hostKeyboard struct {
	sim *Sim
}

func newHostKeyboard(sim *Sim) *hostKeyboard {
	return &hostKeyboard{sim: sim}
}

var buttonKeys = [2][]ebiten.Key{
	ButtonDown: {ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyMinus},
	ButtonUp:   {ebiten.KeyArrowUp, ebiten.KeyArrowRight, ebiten.KeyEqual},
}

func (k *hostKeyboard) poll() {
	for id, keys := range buttonKeys {
		held := false
		changed := false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				held = true
			}
			if inpututil.IsKeyJustPressed(key) || inpututil.IsKeyJustReleased(key) {
				changed = true
			}
		}
		if changed {
			k.sim.SetButton(id, held)
		}
	}
}
