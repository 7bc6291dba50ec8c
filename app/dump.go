//go:build !tinygo

package app

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpState writes a Graphviz dot graph of the shared firmware state. Call it
// after Wait and after the host runner has returned; until then the interrupt
// handler touches the same memory.
func (s *System) DumpState(w io.Writer) {
	memviz.Map(w, s.fw.State())
}
