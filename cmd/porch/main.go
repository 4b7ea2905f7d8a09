//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"porch/internal/app"
	"porch/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	loader := config.NewLoader(flag.CommandLine)
	flag.Parse()

	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	game := app.New(cfg, logger)
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("porch")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
