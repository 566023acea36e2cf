//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"blockfall/internal/app"
	"blockfall/internal/config"
	"blockfall/internal/core"
	"blockfall/internal/logging"
	_ "blockfall/internal/sims/blockfall"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogMode())

	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		logger.Error("unknown sim", "sim", cfg.Sim)
		os.Exit(2)
	}

	sim := factory(cfg.SimMap())
	game := app.New(sim, cfg.BlockSize, logger)
	size := sim.Size()
	logger.Info("starting", "sim", sim.Name(), "w", size.W, "h", size.H, "seed", cfg.Seed, "tps", cfg.TPS)

	ebiten.SetWindowTitle("Block Game")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(app.WindowSize(size, cfg.BlockSize))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "err", err)
		os.Exit(1)
	}
}
