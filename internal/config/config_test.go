package config

import (
	"testing"
	"time"

	"github.com/cardforge/pitch/internal/game"
)

func TestParseFullDocument(t *testing.T) {
	src := []byte(`
game {
  target_score = 11
  seed         = 42
}

player "south" {
  name  = "carol"
  human = true
}

player "east" {
  profile = "aggressive"
}

server {
  address          = "0.0.0.0"
  port             = 9000
  step_interval_ms = 100
}
`)

	cfg, err := Parse(src, "test.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Game.TargetScore != 11 || cfg.Game.Seed != 42 {
		t.Errorf("game block: %+v", cfg.Game)
	}
	if cfg.Server.Address != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("server block: %+v", cfg.Server)
	}
	if got := cfg.Server.StepInterval(); got != 100*time.Millisecond {
		t.Errorf("step interval: %v", got)
	}

	south := cfg.SeatSettings(game.South)
	if !south.Human || south.Name != "carol" {
		t.Errorf("south: %+v", south)
	}
	if east := cfg.SeatSettings(game.East); east.Profile != "aggressive" {
		t.Errorf("east: %+v", east)
	}
	// Unconfigured seats are filled in with balanced bots.
	if north := cfg.SeatSettings(game.North); north.Human || north.Profile != "balanced" {
		t.Errorf("north default: %+v", north)
	}
	if len(cfg.Players) != 4 {
		t.Errorf("expected all four seats configured, got %d", len(cfg.Players))
	}
}

func TestParseEmptyDocumentGetsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Game.TargetScore != game.DefaultTargetScore {
		t.Errorf("target score: %d", cfg.Game.TargetScore)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Address != "localhost" {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if len(cfg.Players) != 4 {
		t.Errorf("expected four seats, got %d", len(cfg.Players))
	}
}

func TestLoadMissingFileGetsDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.hcl")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.TargetScore != game.DefaultTargetScore {
		t.Errorf("target score: %d", cfg.Game.TargetScore)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unknown seat", `player "center" {}`},
		{"duplicate seat", "player \"north\" {}\nplayer \"north\" {}"},
		{"unknown profile", `player "north" { profile = "reckless" }`},
		{"negative target", `game { target_score = -3 }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.src), "bad.hcl"); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestTableConfig(t *testing.T) {
	src := []byte(`
player "west" {
  name  = "dave"
  human = true
}
`)
	cfg, err := Parse(src, "test.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tc := cfg.TableConfig()
	if tc.TargetScore != game.DefaultTargetScore {
		t.Errorf("target score: %d", tc.TargetScore)
	}
	if !tc.Players[game.West].IsHuman || tc.Players[game.West].Name != "dave" {
		t.Errorf("west: %+v", tc.Players[game.West])
	}
	if tc.Players[game.North].IsHuman {
		t.Error("north should default to a bot")
	}
}
