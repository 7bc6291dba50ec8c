//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = "localhost:12600"

// sampleMillis is how often the graphs pull new samples.
const sampleMillis = 500

// Launch serves the graphs on addr for the rest of the process. Listen
// errors are reported on out.
func Launch(addr string, out io.Writer) {
	if addr == "" {
		addr = DefaultAddr
	}
	viewer.SetConfiguration(viewer.WithAddr(addr), viewer.WithInterval(sampleMillis))
	mgr := statsview.New()
	go func() {
		if err := mgr.Start(); err != nil {
			fmt.Fprintf(out, "statsview: %v\n", err)
		}
	}()
	fmt.Fprintf(out, "statsview: graphs at http://%s/debug/statsview, pprof at http://%s/debug/pprof/\n", addr, addr)
}

func Available() bool { return true }
