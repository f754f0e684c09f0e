package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"celestial-sim/internal/app"
	"celestial-sim/internal/env"
)

func main() {
	var opts app.Options
	flag.StringVar(&opts.PrefsPath, "config", "", "engine preferences file (default config/engine.json)")
	flag.StringVar(&opts.SystemPath, "system", "", "system definition YAML (default from preferences or assets/systems/demo.yaml)")
	flag.StringVar(&opts.LogPath, "log", "", "log file (default logs/orbits.txt)")
	flag.StringVar(&opts.Listen, "listen", "", "address for /ws and /metrics, e.g. :8080")
	flag.Parse()

	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	if opts.Listen == "" {
		opts.Listen = os.Getenv("ORBITS_LISTEN")
	}
	if opts.SystemPath == "" {
		opts.SystemPath = os.Getenv("ORBITS_SYSTEM")
	}

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a.Serve()
	a.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = a.Close(ctx)
}
