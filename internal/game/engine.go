package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Engine drives a table to completion by asking the per-seat agents for
// decisions. The engine applies decisions through the table's public
// operations; an agent returning an illegal action is retried once with a
// safe fallback (pass, or the first legal card).
type Engine struct {
	table  *Table
	agents map[Seat]Agent
	logger *log.Logger
}

// NewEngine creates an engine. Every seat must have an agent.
func NewEngine(table *Table, agents map[Seat]Agent, logger *log.Logger) (*Engine, error) {
	for _, seat := range AllSeats() {
		if agents[seat] == nil {
			return nil, fmt.Errorf("no agent for seat %s", seat)
		}
	}
	return &Engine{
		table:  table,
		agents: agents,
		logger: logger.WithPrefix("engine"),
	}, nil
}

// Table returns the engine's table.
func (e *Engine) Table() *Table {
	return e.table
}

// Run starts the game if needed and plays it to completion.
func (e *Engine) Run() error {
	if e.table.Phase() == PhaseSetup {
		if err := e.table.StartGame(); err != nil {
			return err
		}
	}

	for !e.table.IsGameOver() {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step resolves a single decision for the seat whose turn it is. Callers that
// pace the game (a server revealing one action at a time) drive Step
// directly instead of Run.
func (e *Engine) Step() error {
	seat := e.table.Turn()
	agent := e.agents[seat]

	switch e.table.Phase() {
	case PhaseBidding:
		return e.stepBid(seat, agent)
	case PhasePlaying:
		return e.stepCard(seat, agent)
	case PhaseGameOver:
		return nil
	default:
		return fmt.Errorf("engine stepped in unexpected phase %s", e.table.Phase())
	}
}

func (e *Engine) stepBid(seat Seat, agent Agent) error {
	view := e.table.BidViewFor(seat)
	decision := agent.DecideBid(view)
	playerID := e.table.playerAt(seat).ID

	e.logger.Debug("bid decision",
		"seat", seat,
		"amount", decision.Amount,
		"pass", decision.Pass,
		"reasoning", decision.Reasoning)

	err := e.table.PlaceBid(playerID, decision.Amount, decision.Pass)
	if err == nil {
		return nil
	}

	var rule *RuleError
	if !errors.As(err, &rule) {
		return err
	}

	// Passing is always legal during bidding; fall back rather than stall.
	e.logger.Warn("agent bid rejected, falling back to pass",
		"seat", seat, "code", rule.Code)
	return e.table.PlaceBid(playerID, 0, true)
}

func (e *Engine) stepCard(seat Seat, agent Agent) error {
	view := e.table.PlayViewFor(seat)
	if len(view.Legal) == 0 {
		panic("game: seat to act has no legal plays")
	}

	cardID := agent.DecideCard(view)
	playerID := e.table.playerAt(seat).ID

	err := e.table.PlayCard(playerID, cardID)
	if err == nil {
		return nil
	}

	var rule *RuleError
	if !errors.As(err, &rule) {
		return err
	}

	fallback := view.Legal[0].ID
	e.logger.Warn("agent play rejected, falling back to first legal card",
		"seat", seat, "card", cardID, "fallback", fallback, "code", rule.Code)
	return e.table.PlayCard(playerID, fallback)
}
