//go:build tinygo

package main

import (
	"segcount/app"
	"segcount/hal"
)

func main() {
	app.Run(hal.New())
}
