// Package config loads game and server configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardforge/pitch/internal/bot"
	"github.com/cardforge/pitch/internal/game"
)

// Config is the top-level configuration document.
type Config struct {
	Game    *GameSettings    `hcl:"game,block"`
	Players []PlayerSettings `hcl:"player,block"`
	Server  *ServerSettings  `hcl:"server,block"`
}

// GameSettings configures the table.
type GameSettings struct {
	TargetScore int   `hcl:"target_score,optional"`
	Seed        int64 `hcl:"seed,optional"` // 0 means time-seeded
}

// PlayerSettings configures one seat, labeled by seat name.
type PlayerSettings struct {
	Seat    string `hcl:"seat,label"`
	Name    string `hcl:"name,optional"`
	Human   bool   `hcl:"human,optional"`
	Profile string `hcl:"profile,optional"`
}

// ServerSettings configures the spectator broadcast server.
type ServerSettings struct {
	Address        string `hcl:"address,optional"`
	Port           int    `hcl:"port,optional"`
	StepIntervalMS int    `hcl:"step_interval_ms,optional"`
}

// StepInterval returns the pacing delay between auto-played actions.
func (s *ServerSettings) StepInterval() time.Duration {
	return time.Duration(s.StepIntervalMS) * time.Millisecond
}

// Default returns the configuration used when no file is given: four bot
// seats with mixed temperaments.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerSettings{
			{Seat: "north", Profile: "balanced"},
			{Seat: "east", Profile: "aggressive"},
			{Seat: "south", Profile: "conservative"},
			{Seat: "west", Profile: "adaptive"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from a byte slice.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding configuration: %s", diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.TargetScore == 0 {
		c.Game.TargetScore = game.DefaultTargetScore
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.StepIntervalMS == 0 {
		c.Server.StepIntervalMS = 750
	}

	// Unconfigured seats get a balanced bot.
	configured := map[string]bool{}
	for _, p := range c.Players {
		configured[p.Seat] = true
	}
	for _, seat := range game.AllSeats() {
		if !configured[seat.String()] {
			c.Players = append(c.Players, PlayerSettings{
				Seat:    seat.String(),
				Profile: "balanced",
			})
		}
	}
}

// Validate checks seat names, duplicates, profiles and the target score.
func (c *Config) Validate() error {
	if c.Game.TargetScore < 1 {
		return fmt.Errorf("target_score must be positive, got %d", c.Game.TargetScore)
	}

	seen := map[game.Seat]bool{}
	for _, p := range c.Players {
		seat, err := game.ParseSeat(p.Seat)
		if err != nil {
			return fmt.Errorf("player block: %w", err)
		}
		if seen[seat] {
			return fmt.Errorf("seat %s configured twice", seat)
		}
		seen[seat] = true

		if !p.Human {
			if _, err := bot.ParseProfile(p.Profile); err != nil {
				return fmt.Errorf("seat %s: %w", seat, err)
			}
		}
	}
	return nil
}

// SeatSettings returns the player block for a seat. applyDefaults guarantees
// every seat has one.
func (c *Config) SeatSettings(seat game.Seat) PlayerSettings {
	for _, p := range c.Players {
		if p.Seat == seat.String() {
			return p
		}
	}
	return PlayerSettings{Seat: seat.String(), Profile: "balanced"}
}

// TableConfig translates the document into the game package's table config.
func (c *Config) TableConfig() game.Config {
	var out game.Config
	out.TargetScore = c.Game.TargetScore
	for _, seat := range game.AllSeats() {
		p := c.SeatSettings(seat)
		out.Players[seat] = game.PlayerConfig{Name: p.Name, IsHuman: p.Human}
	}
	return out
}
