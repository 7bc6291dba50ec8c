//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"segcount/app"
	"segcount/hal"
	"segcount/internal/statsview"
)

func main() {
	var cfg hal.HeadlessConfig
	var stats bool
	var statsAddr string
	var memvizPath string
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Script, "press", "", "Button taps in headless mode: '-' down, '+' up, '.' pause.")
	flag.DurationVar(&cfg.TapEvery, "tap", 200*time.Millisecond, "Time slot of one scripted tap.")
	flag.BoolVar(&cfg.Keys, "keys", false, "Read '-', '+' and 'q' from the terminal in headless mode.")
	flag.BoolVar(&stats, "statsview", false, "Serve runtime statistics (needs the statsview build tag).")
	flag.StringVar(&statsAddr, "statsview-addr", "localhost:12600", "Listen address of the statsview server.")
	flag.StringVar(&memvizPath, "memviz", "", "Write a Graphviz dump of the shared state to this file on exit.")
	flag.Parse()

	if stats {
		if statsview.Available() {
			statsview.Launch(statsAddr, os.Stdout)
		} else {
			fmt.Fprintln(os.Stderr, "statsview: not built in (go build -tags statsview)")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)

	var sys *app.System
	newApp := func(h hal.HAL) (func() error, error) {
		s, err := app.New(ctx, h, app.Config{})
		if err != nil {
			return nil, err
		}
		sys = s
		return s.Step, nil
	}

	var err error
	if cfg.Enabled {
		err = hal.RunHeadless(ctx, newApp, cfg)
	} else {
		err = hal.RunWindow(ctx, newApp)
	}
	cancel()
	if err == context.Canceled {
		err = nil
	}

	if sys != nil {
		if werr := sys.Wait(); werr != nil && err == nil {
			err = werr
		}
		if memvizPath != "" {
			if derr := dumpState(sys, memvizPath); derr != nil && err == nil {
				err = derr
			}
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpState(sys *app.System, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	sys.DumpState(f)
	if err := f.Close(); err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	return nil
}
