// Command porch-sim runs the porch scene without a window, either for a fixed
// stretch of scene time or live behind the inspector API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"porch/internal/config"
	"porch/internal/inspect"
	"porch/internal/scene"
	"porch/internal/state"
	"porch/internal/ui"
)

func main() {
	duration := flag.Float64("duration", 300, "seconds of scene time to simulate")
	dt := flag.Float64("dt", 1.0/60, "seconds per step")
	report := flag.Float64("report", 30, "seconds of scene time between status lines (0 disables)")
	serve := flag.Bool("serve", false, "run in real time and serve the inspector API")
	asJSON := flag.Bool("json", false, "print the final snapshot as JSON")
	quiet := flag.Bool("quiet", false, "suppress component logs")
	loader := config.NewLoader(flag.CommandLine)
	flag.Parse()

	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	sceneLog := logger
	if *quiet {
		sceneLog = nil
	}

	app := state.New()
	if err := app.SetAvatar(cfg.Avatar); err != nil {
		log.Fatalf("avatar: %v", err)
	}
	app.SetIdleMode(cfg.Idle)
	sc := scene.New(cfg, app, scene.WithLogger(sceneLog))

	if *serve {
		if err := runServer(sc, cfg, logger); err != nil {
			log.Fatal(err)
		}
		return
	}

	snap := runFixed(sc, *duration, *dt, *report)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			log.Fatal(err)
		}
		return
	}
	fmt.Println(ui.StatusLine(snap))
	fmt.Printf("visitors %d, evicted %d, frames %d\n", sc.Wildlife().Spawned(), sc.Wildlife().Evicted(), snap.Frames)
}

func runFixed(sc *scene.Scene, duration, dt, report float64) scene.Snapshot {
	if !(dt > 0) {
		dt = 1.0 / 60
	}
	nextReport := report
	for sc.Now() < duration {
		sc.Step(dt)
		if report > 0 && sc.Now() >= nextReport {
			fmt.Printf("[%6.1fs] %s\n", sc.Now(), ui.StatusLine(sc.Snapshot()))
			nextReport += report
		}
	}
	snap := sc.Snapshot()
	sc.Close()
	return snap
}

func runServer(sc *scene.Scene, cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := scene.NewRunner(sc, cfg.TPS, cfg.Inspect.BroadcastHz, logger)
	go runner.Run(ctx)

	err := inspect.NewServer(runner, logger).ListenAndServe(ctx, cfg.Inspect.Addr)
	stop()
	<-runner.Done()
	return err
}
