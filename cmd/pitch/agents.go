package main

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardforge/pitch/internal/bot"
	"github.com/cardforge/pitch/internal/config"
	"github.com/cardforge/pitch/internal/game"
	"github.com/cardforge/pitch/internal/randutil"
)

// humanFactory builds an agent for a human-configured seat. Commands without
// an interactive surface pass nil and get an error for human seats.
type humanFactory func(seat game.Seat, settings config.PlayerSettings) game.Agent

// buildAgents assembles the per-seat agents from configuration. Bot seats
// draw their seeds from rng so a fixed game seed reproduces every decision.
func buildAgents(cfg *config.Config, logger *log.Logger, rng *rand.Rand, humans humanFactory) (map[game.Seat]game.Agent, error) {
	agents := make(map[game.Seat]game.Agent, 4)
	for _, seat := range game.AllSeats() {
		settings := cfg.SeatSettings(seat)
		if settings.Human {
			if humans == nil {
				return nil, fmt.Errorf("seat %s is configured human, which this command does not support", seat)
			}
			agents[seat] = humans(seat, settings)
			continue
		}

		profile, err := bot.ParseProfile(settings.Profile)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat, err)
		}
		agents[seat] = bot.New(profile, randutil.New(rng.Int64()), logger)
	}
	return agents, nil
}

// tableRand builds the shuffle source: seeded when the configuration or flag
// asks for determinism, time-seeded otherwise.
func tableRand(seed int64) *rand.Rand {
	if seed != 0 {
		return randutil.New(seed)
	}
	return randutil.NewTimeSeeded()
}
