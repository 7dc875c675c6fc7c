package game

import (
	"fmt"
	"strings"

	"github.com/cardforge/pitch/internal/deck"
)

// Seat identifies one of the four table positions, clockwise.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// String returns the string representation of a seat
func (s Seat) String() string {
	switch s {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "?"
	}
}

// ParseSeat resolves a seat name from configuration.
func ParseSeat(name string) (Seat, error) {
	switch strings.ToLower(name) {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	default:
		return 0, fmt.Errorf("unknown seat %q", name)
	}
}

// Next returns the seat one position clockwise
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Partner returns the opposite seat
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// Team returns the partnership index for a seat: North-South are partnership
// 0, East-West partnership 1.
func (s Seat) Team() int {
	return int(s) % 2
}

// AllSeats returns the seats in clockwise order
func AllSeats() []Seat {
	return []Seat{North, East, South, West}
}

// Phase represents the table state machine phase
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDealing
	PhaseBidding
	PhasePlaying
	PhaseScoring
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseDealing:
		return "dealing"
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	case PhaseGameOver:
		return "game_over"
	default:
		return "?"
	}
}

// Player represents a seat at the table. The table owns and mutates players;
// external consumers only ever see snapshots.
type Player struct {
	ID        string
	Name      string
	Seat      Seat
	PartnerID string
	Hand      []deck.Card
	IsHuman   bool
	IsDealer  bool
}

// Partnership pairs the two opposite seats and carries their shared score.
// Scores are signed; a set-back bid can push a partnership negative.
type Partnership struct {
	ID        string
	PlayerIDs [2]string
	Score     int
}

// Bid is one entry in a hand's bid history. Amount is meaningful only when
// Pass is false. Bids are append-only once recorded.
type Bid struct {
	PlayerID string
	Seat     Seat
	Amount   int
	Pass     bool
	Forced   bool // dealer forced to the minimum after four passes
}

// Play is a single card played into a trick
type Play struct {
	PlayerID string
	Seat     Seat
	Card     deck.Card
}

// Trick grows to exactly four plays, then is sealed with a winner and never
// changes again.
type Trick struct {
	ID       string
	Plays    []Play
	WinnerID string
	LeadSuit deck.Suit
	sealed   bool
}

// Sealed reports whether the trick has its four plays and a winner
func (t *Trick) Sealed() bool {
	return t.sealed
}

// Bid limits and hand geometry for the variant.
const (
	MinBid       = 2
	MaxBid       = 6
	HandSize     = 6
	TricksInHand = 6
	cardsPerDeal = HandSize * 4
)

// Rule violation codes carried by RuleError.
const (
	CodeWrongPhase  = "wrong_phase"
	CodeOutOfTurn   = "out_of_turn"
	CodeUnknownCard = "unknown_card"
	CodeInvalidBid  = "invalid_bid"
	CodeWildLead    = "wild_lead"
	CodeFollowSuit  = "follow_suit"
)

// RuleError reports an expected, recoverable rule violation: wrong phase,
// acting out of turn, illegal bid or illegal card. The caller retries with a
// legal action. Internal invariant breaks panic instead.
type RuleError struct {
	Code     string
	Reason   string
	PlayerID string
	CardID   string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func ruleErr(code, playerID, cardID, format string, args ...any) *RuleError {
	return &RuleError{
		Code:     code,
		Reason:   fmt.Sprintf(format, args...),
		PlayerID: playerID,
		CardID:   cardID,
	}
}
