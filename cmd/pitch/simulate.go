package main

import (
	"context"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardforge/pitch/internal/bot"
	"github.com/cardforge/pitch/internal/game"
	"github.com/cardforge/pitch/internal/randutil"
)

// SimulateCmd plays bot-vs-bot games in parallel and reports aggregate
// statistics.
type SimulateCmd struct {
	Games    int    `default:"1000" help:"Number of games to simulate"`
	Workers  int    `default:"0" help:"Worker goroutines (0 for NumCPU)"`
	Seed     int64  `help:"Deterministic seed (0 for random)"`
	Target   int    `default:"21" help:"Target score"`
	Profiles string `default:"balanced,aggressive,conservative,adaptive" help:"Seat profiles (north,east,south,west; one value applies to all)"`
	Debug    bool   `help:"Enable debug logging"`
}

type gameResult struct {
	winner      int // partnership index
	hands       int
	winnerScore int
	loserScore  int
}

type simStats struct {
	games    int
	wins     [2]int
	sumHands float64
	sumSqH   float64
	sumWin   float64
	sumLose  float64
}

func (s *simStats) add(r gameResult) {
	s.games++
	s.wins[r.winner]++
	h := float64(r.hands)
	s.sumHands += h
	s.sumSqH += h * h
	s.sumWin += float64(r.winnerScore)
	s.sumLose += float64(r.loserScore)
}

func (s *simStats) meanHands() float64 {
	if s.games == 0 {
		return 0
	}
	return s.sumHands / float64(s.games)
}

func (s *simStats) stdDevHands() float64 {
	if s.games < 2 {
		return 0
	}
	mean := s.meanHands()
	return math.Sqrt((s.sumSqH - float64(s.games)*mean*mean) / float64(s.games-1))
}

// nsWinRate returns the north-south win rate with a 95% confidence margin.
func (s *simStats) nsWinRate() (rate, margin float64) {
	if s.games == 0 {
		return 0, 0
	}
	rate = float64(s.wins[0]) / float64(s.games)
	margin = 1.96 * math.Sqrt(rate*(1-rate)/float64(s.games))
	return rate, margin
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	profiles, err := parseSeatProfiles(c.Profiles)
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > c.Games {
		workers = c.Games
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Info("starting simulation",
		"games", c.Games,
		"workers", workers,
		"seed", seed,
		"profiles", c.Profiles)

	// Game internals log through a discarded logger so workers stay quiet.
	quiet := log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan gameResult, workers)

	perWorker := c.Games / workers
	remainder := c.Games % workers
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		workerSeed := rng.Int64()

		g.Go(func() error {
			workerRng := randutil.New(workerSeed)
			for i := 0; i < n; i++ {
				result, err := playOneGame(workerRng, profiles, c.Target, quiet)
				if err != nil {
					return err
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	started := time.Now()
	var stats simStats
	for result := range results {
		stats.add(result)
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(started)

	printSimSummary(&stats, elapsed)
	return nil
}

func playOneGame(rng *rand.Rand, profiles [4]bot.Profile, target int, logger *log.Logger) (gameResult, error) {
	table := game.NewTable(game.Config{TargetScore: target}, logger,
		game.WithRand(randutil.New(rng.Int64())))

	hands := 0
	table.Events().Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if e.EventType() == game.EventHandComplete {
			hands++
		}
	}))

	agents := make(map[game.Seat]game.Agent, 4)
	for _, seat := range game.AllSeats() {
		agents[seat] = bot.New(profiles[seat], randutil.New(rng.Int64()), logger)
	}
	engine, err := game.NewEngine(table, agents, logger)
	if err != nil {
		return gameResult{}, err
	}
	if err := engine.Run(); err != nil {
		return gameResult{}, err
	}

	snap := table.Snapshot()
	if snap.Winner == nil {
		return gameResult{}, fmt.Errorf("game finished without a winner")
	}
	result := gameResult{hands: hands, winnerScore: snap.Winner.Score}
	for i, p := range snap.Partnerships {
		if p.ID == snap.Winner.ID {
			result.winner = i
		} else {
			result.loserScore = p.Score
		}
	}
	return result, nil
}

func parseSeatProfiles(value string) ([4]bot.Profile, error) {
	var out [4]bot.Profile
	parts := strings.Split(value, ",")
	switch len(parts) {
	case 1:
		p, err := bot.ParseProfile(strings.TrimSpace(parts[0]))
		if err != nil {
			return out, err
		}
		for i := range out {
			out[i] = p
		}
	case 4:
		for i, raw := range parts {
			p, err := bot.ParseProfile(strings.TrimSpace(raw))
			if err != nil {
				return out, err
			}
			out[i] = p
		}
	default:
		return out, fmt.Errorf("profiles must name one or four temperaments, got %d", len(parts))
	}
	return out, nil
}

func printSimSummary(stats *simStats, elapsed time.Duration) {
	rate, margin := stats.nsWinRate()
	fmt.Printf("\nsimulated %d games in %s (%.0f games/sec)\n",
		stats.games, elapsed.Round(time.Millisecond), float64(stats.games)/elapsed.Seconds())
	fmt.Printf("  north/south wins: %d (%.1f%% ± %.1f%%)\n", stats.wins[0], rate*100, margin*100)
	fmt.Printf("  east/west wins:   %d (%.1f%%)\n", stats.wins[1], 100-rate*100)
	fmt.Printf("  hands per game:   %.1f ± %.1f\n", stats.meanHands(), stats.stdDevHands())
	if stats.games > 0 {
		fmt.Printf("  avg final score:  winner %.1f, loser %.1f\n",
			stats.sumWin/float64(stats.games), stats.sumLose/float64(stats.games))
	}
}
