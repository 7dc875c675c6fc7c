// Package game owns the authoritative state of a four-player partnership
// Pitch game: seats, partnerships, the shoe, the bid history and the trick in
// flight. The Table is the sole mutator; everything observable leaves the
// package as a snapshot or an event.
package game

import (
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/randutil"
)

// PlayerConfig describes one seat when creating a table.
type PlayerConfig struct {
	Name    string
	IsHuman bool
}

// Config describes a game to be created.
type Config struct {
	TargetScore int
	Players     [4]PlayerConfig // seat order: North, East, South, West
}

// DefaultTargetScore is used when the config leaves the target unset.
const DefaultTargetScore = 21

// handState is the per-hand context, reset wholesale at every deal.
type handState struct {
	trump        deck.Suit
	trumpSet     bool
	currentBid   *Bid
	bidHistory   []Bid
	turn         Seat
	openTrick    *Trick
	sealedTricks []Trick
	passStreak   int // consecutive passes since the last live bid
}

// Table is the orchestrator: it sequences dealing, bidding, playing and
// scoring, validates every action, and emits notifications after each
// transition. It is single-threaded; operations either fully apply or fully
// reject.
type Table struct {
	logger *log.Logger
	rng    *rand.Rand
	bus    EventBus

	shoe         *deck.Shoe
	players      [4]*Player // indexed by seat
	partnerships [2]*Partnership

	phase       Phase
	targetScore int
	handNumber  int
	hand        handState
	winner      int // partnership index, -1 until the game ends
}

// Option configures a Table.
type Option func(*Table)

// WithRand injects the random source used for shuffling. Tests pass a seeded
// rng for reproducible deals.
func WithRand(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithEventBus replaces the default event bus.
func WithEventBus(bus EventBus) Option {
	return func(t *Table) { t.bus = bus }
}

// NewTable creates a table in the setup phase. The dealer button starts at
// North and rotates clockwise after every completed hand.
func NewTable(cfg Config, logger *log.Logger, opts ...Option) *Table {
	t := &Table{
		logger:      logger.WithPrefix("table"),
		phase:       PhaseSetup,
		targetScore: cfg.TargetScore,
		winner:      -1,
	}
	if t.targetScore <= 0 {
		t.targetScore = DefaultTargetScore
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.NewTimeSeeded()
	}
	if t.bus == nil {
		t.bus = NewEventBus()
	}
	t.shoe = deck.NewShoe(t.rng)

	for _, seat := range AllSeats() {
		pc := cfg.Players[seat]
		name := pc.Name
		if name == "" {
			name = seat.String()
		}
		t.players[seat] = &Player{
			ID:      uuid.NewString(),
			Name:    name,
			Seat:    seat,
			IsHuman: pc.IsHuman,
		}
	}
	for _, seat := range AllSeats() {
		t.players[seat].PartnerID = t.players[seat.Partner()].ID
	}
	t.players[North].IsDealer = true

	t.partnerships[0] = &Partnership{
		ID:        "north_south",
		PlayerIDs: [2]string{t.players[North].ID, t.players[South].ID},
	}
	t.partnerships[1] = &Partnership{
		ID:        "east_west",
		PlayerIDs: [2]string{t.players[East].ID, t.players[West].ID},
	}

	return t
}

// Events returns the bus carrying the table's notification stream.
func (t *Table) Events() EventBus {
	return t.bus
}

// Phase returns the current state machine phase.
func (t *Table) Phase() Phase {
	return t.phase
}

// Turn returns the seat whose action is awaited.
func (t *Table) Turn() Seat {
	return t.hand.turn
}

// IsGameOver reports whether a partnership has reached the target score.
func (t *Table) IsGameOver() bool {
	return t.phase == PhaseGameOver
}

// GetPlayer returns a snapshot of the player with the given id.
func (t *Table) GetPlayer(id string) (PlayerSnapshot, bool) {
	for _, p := range t.players {
		if p.ID == id {
			return snapshotPlayer(p), true
		}
	}
	return PlayerSnapshot{}, false
}

// GetPartnership returns a snapshot of the partnership a player belongs to.
func (t *Table) GetPartnership(playerID string) (PartnershipSnapshot, bool) {
	for _, ps := range t.partnerships {
		if ps.PlayerIDs[0] == playerID || ps.PlayerIDs[1] == playerID {
			return snapshotPartnership(ps), true
		}
	}
	return PartnershipSnapshot{}, false
}

// StartGame deals the first hand and opens bidding. Legal only from setup.
func (t *Table) StartGame() error {
	if t.phase != PhaseSetup {
		return ruleErr(CodeWrongPhase, "", "", "cannot start game in %s phase", t.phase)
	}

	t.handNumber = 1
	t.dealHand()

	t.logger.Info("game started",
		"target", t.targetScore,
		"dealer", t.dealerSeat())
	t.bus.Publish(StateEvent{newBase(EventGameStarted), t.Snapshot()})
	t.bus.Publish(StateEvent{newBase(EventBiddingStarted), t.Snapshot()})
	return nil
}

// dealHand resets the per-hand context, deals six cards to each seat and
// opens bidding at the seat left of the dealer.
func (t *Table) dealHand() {
	t.phase = PhaseDealing
	t.hand = handState{}

	if t.shoe.Remaining() < cardsPerDeal {
		remaining := t.shoe.Remaining()
		t.shoe.Reset()
		t.logger.Debug("shoe reshuffled", "had", remaining, "needed", cardsPerDeal)
		t.bus.Publish(DeckReshuffledEvent{
			baseEvent: newBase(EventDeckReshuffled),
			Remaining: remaining,
			Needed:    cardsPerDeal,
		})
	}

	dealer := t.dealerSeat()
	seat := dealer.Next()
	for i := 0; i < 4; i++ {
		p := t.players[seat]
		p.Hand = t.shoe.DealMany(HandSize)
		sortHand(p.Hand)
		seat = seat.Next()
	}

	t.phase = PhaseBidding
	t.hand.turn = dealer.Next()
}

// dealerSeat returns the seat holding the dealer button. Exactly one seat
// must hold it; anything else is a programming defect in the orchestrator.
func (t *Table) dealerSeat() Seat {
	dealer := Seat(-1)
	for _, seat := range AllSeats() {
		if t.players[seat].IsDealer {
			if dealer >= 0 {
				panic("game: multiple seats marked dealer")
			}
			dealer = seat
		}
	}
	if dealer < 0 {
		panic("game: no seat marked dealer")
	}
	return dealer
}

// rotateDealer moves the button exactly one seat clockwise.
func (t *Table) rotateDealer() {
	old := t.dealerSeat()
	t.players[old].IsDealer = false
	next := old.Next()
	t.players[next].IsDealer = true

	t.logger.Debug("dealer rotated", "from", old, "to", next)
	t.bus.Publish(DealerRotatedEvent{
		baseEvent: newBase(EventDealerRotated),
		Dealer:    snapshotPlayer(t.players[next]),
	})
}

// playerAt returns the mutable player for a seat.
func (t *Table) playerAt(seat Seat) *Player {
	return t.players[seat]
}

// seatOf resolves a player id to its seat.
func (t *Table) seatOf(playerID string) (Seat, bool) {
	for _, seat := range AllSeats() {
		if t.players[seat].ID == playerID {
			return seat, true
		}
	}
	return 0, false
}

// reject publishes the structured rejection notification and returns the
// error. Every expected rule violation funnels through here.
func (t *Table) reject(err *RuleError) error {
	t.logger.Warn("action rejected",
		"code", err.Code,
		"reason", err.Reason,
		"player", err.PlayerID)
	t.bus.Publish(InvalidPlayEvent{
		baseEvent: newBase(EventInvalidPlay),
		Reason:    err.Reason,
		Code:      err.Code,
		PlayerID:  err.PlayerID,
		CardID:    err.CardID,
	})
	return err
}

// sortHand orders a hand deterministically: wild first, then by suit, then
// by rank descending.
func sortHand(hand []deck.Card) {
	sort.Slice(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]
		if a.IsWild() != b.IsWild() {
			return a.IsWild()
		}
		if a.Suit != b.Suit {
			return a.Suit < b.Suit
		}
		return a.Rank > b.Rank
	})
}

func newTrickID() string {
	return uuid.NewString()
}
