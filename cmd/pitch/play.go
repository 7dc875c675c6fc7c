package main

import (
	"fmt"
	"os"

	"github.com/cardforge/pitch/internal/config"
	"github.com/cardforge/pitch/internal/game"
)

// PlayCmd runs a single game at the terminal. Human seats are prompted for
// every decision; bot seats play themselves.
type PlayCmd struct {
	Config string `short:"c" default:"pitch.hcl" help:"Path to HCL configuration file"`
	Seed   int64  `help:"Deterministic shuffle seed (0 for random)"`
	Target int    `help:"Target score (overrides config)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Target > 0 {
		cfg.Game.TargetScore = c.Target
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}

	rng := tableRand(cfg.Game.Seed)
	table := game.NewTable(cfg.TableConfig(), logger, game.WithRand(rng))
	agents, err := buildAgents(cfg, logger, rng, func(seat game.Seat, settings config.PlayerSettings) game.Agent {
		name := settings.Name
		if name == "" {
			name = seat.String()
		}
		return newPromptAgent(name, os.Stdin, os.Stdout)
	})
	if err != nil {
		return err
	}

	table.Events().Subscribe(game.SubscriberFunc(narrator(table)))

	engine, err := game.NewEngine(table, agents, logger)
	if err != nil {
		return err
	}
	return engine.Run()
}

// narrator prints the human-readable game commentary.
func narrator(table *game.Table) func(game.GameEvent) {
	playerName := func(id string) string {
		if p, ok := table.GetPlayer(id); ok {
			if p.Name != "" {
				return p.Name
			}
			return p.Seat.String()
		}
		return id
	}

	return func(event game.GameEvent) {
		switch e := event.(type) {
		case game.BidPlacedEvent:
			if e.Bid.Pass {
				fmt.Printf("%s passes\n", e.Bid.Seat)
			} else if e.Bid.Forced {
				fmt.Printf("%s is stuck with a forced bid of %d\n", e.Bid.Seat, e.Bid.Amount)
			} else {
				fmt.Printf("%s bids %d\n", e.Bid.Seat, e.Bid.Amount)
			}
		case game.BiddingEndedEvent:
			fmt.Printf("%s holds the contract at %d\n", e.FinalBid.Seat, e.FinalBid.Amount)
		case game.TrumpEstablishedEvent:
			fmt.Printf("trump is %s\n", e.Suit)
		case game.TrickCompleteEvent:
			fmt.Printf("trick to %s\n", playerName(e.Trick.WinnerID))
		case game.HandCompleteEvent:
			r := e.Result
			made := "made"
			if !r.BidMade {
				made = "went set on"
			}
			bidder := e.State.Partnerships[r.BidderTeam].ID
			fmt.Printf("hand %d: %s %s their bid of %d; score %s %d, %s %d\n",
				e.HandNumber, bidder, made, r.BidAmount,
				e.State.Partnerships[0].ID, e.State.Partnerships[0].Score,
				e.State.Partnerships[1].ID, e.State.Partnerships[1].Score)
		case game.GameEndedEvent:
			fmt.Printf("\n%s win with %d points\n", e.Winner.ID, e.Winner.Score)
		}
	}
}
