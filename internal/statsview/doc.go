// Package statsview serves live runtime graphs (heap, goroutines, GC pauses)
// of the running simulator, which is where the board clock and the display
// refresh spend their allocations. The server is compiled in only with
//
//	go build -tags statsview
//
// and is started with the -statsview flag. Without the tag Launch does
// nothing and Available reports false.
package statsview
