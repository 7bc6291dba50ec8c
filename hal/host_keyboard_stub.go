//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	sim *Sim
}

func newHostKeyboard(sim *Sim) *hostKeyboard {
	return &hostKeyboard{sim: sim}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
