//go:build !statsview

package statsview

import "io"

func Launch(string, io.Writer) {}

// Available reports whether the binary was built with the statsview tag.
func Available() bool { return false }
