package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"blockfall/internal/config"
	"blockfall/internal/core"
	"blockfall/internal/logging"
	_ "blockfall/internal/sims/blockfall"
	"blockfall/internal/term"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	// tcell owns the terminal, so dev logs are dropped; prod JSON can go to a redirected stderr.
	logger := logging.New(cfg.LogMode())
	if cfg.LogMode() == logging.ModeDev {
		logger = logging.New(logging.ModeSilence)
	}

	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sim := factory(cfg.SimMap())

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.Run(ctx, screen, sim, cfg.TPS, logger)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
