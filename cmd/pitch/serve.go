package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cardforge/pitch/internal/config"
	"github.com/cardforge/pitch/internal/game"
	"github.com/cardforge/pitch/internal/server"
)

// ServeCmd plays a bot game paced for spectators and broadcasts every event
// over websockets.
type ServeCmd struct {
	Config     string `short:"c" default:"pitch.hcl" help:"Path to HCL configuration file"`
	Addr       string `short:"a" help:"Listen address (overrides config)"`
	IntervalMs int    `help:"Delay between actions in milliseconds (overrides config)"`
	Seed       int64  `help:"Deterministic shuffle seed (0 for random)"`
	Debug      bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.IntervalMs > 0 {
		cfg.Server.StepIntervalMS = c.IntervalMs
	}
	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	// The broadcast surface is spectator-only; human seats cannot be driven
	// over it.
	for _, p := range cfg.Players {
		if p.Human {
			return fmt.Errorf("seat %s is configured human; serve only runs bot games", p.Seat)
		}
	}

	rng := tableRand(cfg.Game.Seed)
	table := game.NewTable(cfg.TableConfig(), logger, game.WithRand(rng))
	agents, err := buildAgents(cfg, logger, rng, nil)
	if err != nil {
		return err
	}
	engine, err := game.NewEngine(table, agents, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(addr, logger)
	runner := server.NewRunner(engine, srv, logger, cfg.Server.StepInterval(), nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		// Let early spectators connect before the first deal.
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := runner.Run(ctx); err != nil {
			return err
		}
		logger.Info("game over; serving final state until interrupted")
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
