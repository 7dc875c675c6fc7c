package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardforge/pitch/internal/game"
)

// Broadcaster receives the wire messages the runner produces. The Server
// satisfies it; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(msg *Message)
}

// Runner drives the engine one decision at a time, broadcasting every game
// event and pausing between steps so spectators can follow along.
type Runner struct {
	engine      *game.Engine
	broadcaster Broadcaster
	logger      *log.Logger
	clock       quartz.Clock
	interval    time.Duration
}

// NewRunner creates a runner. A nil clock uses the real one; tests inject a
// mock to control pacing.
func NewRunner(engine *game.Engine, b Broadcaster, logger *log.Logger, interval time.Duration, clock quartz.Clock) *Runner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Runner{
		engine:      engine,
		broadcaster: b,
		logger:      logger.WithPrefix("runner"),
		clock:       clock,
		interval:    interval,
	}
}

// Run plays the game to completion. Every event emitted by the table is
// translated and broadcast in order.
func (r *Runner) Run(ctx context.Context) error {
	table := r.engine.Table()
	table.Events().Subscribe(game.SubscriberFunc(r.broadcastEvent))

	if table.Phase() == game.PhaseSetup {
		if err := table.StartGame(); err != nil {
			return err
		}
	}

	for !table.IsGameOver() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.engine.Step(); err != nil {
			return err
		}
		if err := r.pause(ctx); err != nil {
			return err
		}
	}

	r.logger.Info("game finished")
	return nil
}

func (r *Runner) pause(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	fired := make(chan struct{})
	timer := r.clock.AfterFunc(r.interval, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) broadcastEvent(event game.GameEvent) {
	msg, err := MessageFor(event)
	if err != nil {
		r.logger.Error("unmappable event", "type", event.EventType(), "error", err)
		return
	}
	r.broadcaster.Broadcast(msg)
}
