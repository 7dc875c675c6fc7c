package deck

import "fmt"

// Suit represents a card suit. The wild card carries NoSuit.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
	NoSuit
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case NoSuit:
		return "none"
	default:
		return "?"
	}
}

// Symbol returns the one-rune suit symbol used in logs and summaries
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "★"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// OffSuit returns the other suit of the same color:
// Spades <-> Clubs (black), Hearts <-> Diamonds (red)
func (s Suit) OffSuit() Suit {
	switch s {
	case Spades:
		return Clubs
	case Clubs:
		return Spades
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	default:
		return s
	}
}

// AllSuits returns the four real suits in order
func AllSuits() []Suit {
	return []Suit{Spades, Hearts, Diamonds, Clubs}
}

// Rank represents a card rank (2-14, where 11=J, 12=Q, 13=K, 14=A).
// WildRank is reserved for the single wild card.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14

	WildRank Rank = 15
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace:
		return "ace"
	case WildRank:
		return "wild"
	default:
		return fmt.Sprintf("%d", r)
	}
}

// AllRanks returns the thirteen suited ranks in order (2-A)
func AllRanks() []Rank {
	return []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// GamePoints returns the game point value used when scoring captured cards.
// A=4, K=3, Q=2, J=1, 10=10, everything else (the wild card included) is 0.
func (r Rank) GamePoints() int {
	switch r {
	case Ace:
		return 4
	case King:
		return 3
	case Queen:
		return 2
	case Jack:
		return 1
	case Ten:
		return 10
	default:
		return 0
	}
}

// Card represents a playing card. Cards are immutable value objects.
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard creates a suited card with a stable identity
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:   fmt.Sprintf("%s_%s", rank.String(), suit.String()),
		Suit: suit,
		Rank: rank,
	}
}

// NewWild creates the single wild card
func NewWild() Card {
	return Card{ID: "wild", Suit: NoSuit, Rank: WildRank}
}

// String returns a short representation like "J♠" or "★"
func (c Card) String() string {
	if c.IsWild() {
		return "★"
	}
	var r string
	switch c.Rank {
	case Ten:
		r = "T"
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	case Ace:
		r = "A"
	default:
		r = fmt.Sprintf("%d", c.Rank)
	}
	return r + c.Suit.Symbol()
}

// IsWild returns true for the wild card
func (c Card) IsWild() bool {
	return c.Rank == WildRank
}

// IsOffJack returns true if this card is the off-jack for the given trump:
// the Jack of the same-color, different suit. The trump suit's own Jack is
// the trump jack, never an off-jack.
func (c Card) IsOffJack(trump Suit) bool {
	return c.Rank == Jack && c.Suit == trump.OffSuit()
}

// IsTrump returns true if the card counts as trump: its own suit matches,
// it is the wild card, or it is the off-jack.
func (c Card) IsTrump(trump Suit) bool {
	if c.IsWild() {
		return true
	}
	if c.Suit == trump {
		return true
	}
	return c.IsOffJack(trump)
}

// trumpOrder returns the comparison key among trump cards:
// wild > trump jack > off-jack > remaining trump by rank.
// Suited ranks occupy 2..14, so 15..17 slot the specials above them.
func (c Card) trumpOrder(trump Suit) int {
	switch {
	case c.IsWild():
		return 17
	case c.Suit == trump && c.Rank == Jack:
		return 16
	case c.IsOffJack(trump):
		return 15
	default:
		return int(c.Rank)
	}
}

// Beats returns true if this card beats other given the trump and lead suits.
// Trump beats non-trump; among trumps the trump order applies; among
// non-trumps only lead-suit cards can win, highest rank first.
func (c Card) Beats(other Card, trump Suit, leadSuit Suit) bool {
	cTrump := c.IsTrump(trump)
	oTrump := other.IsTrump(trump)

	if cTrump != oTrump {
		return cTrump
	}
	if cTrump {
		return c.trumpOrder(trump) > other.trumpOrder(trump)
	}
	if c.Suit == other.Suit {
		return c.Rank > other.Rank
	}
	return c.Suit == leadSuit
}

// EffectiveLeadSuit returns the suit a lead card demands followers match.
// A trump lead (including the wild card and the off-jack) demands trump.
func EffectiveLeadSuit(lead Card, trump Suit, trumpSet bool) Suit {
	if trumpSet && lead.IsTrump(trump) {
		return trump
	}
	return lead.Suit
}

// CanPlay reports whether card may legally be played from hand.
// lead is nil when the player is leading the trick. trumpSet is false only
// before the first lead of a hand establishes trump.
//
// Leading: any non-wild card may lead; the wild card may lead only once trump
// is set (it then counts as a trump lead). Following: if trump was led, every
// trump card (wild and off-jack included) follows and a hand holding trump
// must play it. If a plain suit was led, only cards of that suit follow - the
// off-jack belongs to trump, not to its printed suit - and a hand holding the
// lead suit must follow. A hand void in the demanded suit may play anything.
func CanPlay(card Card, hand []Card, lead *Card, trump Suit, trumpSet bool) bool {
	if lead == nil {
		if card.IsWild() {
			return trumpSet
		}
		return true
	}

	leadIsTrump := trumpSet && lead.IsTrump(trump)

	follows := func(c Card) bool {
		if leadIsTrump {
			return c.IsTrump(trump)
		}
		// Plain-suit lead: trump-converted cards do not count as the suit.
		return c.Suit == lead.Suit && !(trumpSet && c.IsTrump(trump))
	}

	if follows(card) {
		return true
	}
	for _, c := range hand {
		if follows(c) {
			return false // must follow suit
		}
	}
	return true
}

// LegalPlays returns the subset of hand that may legally be played
func LegalPlays(hand []Card, lead *Card, trump Suit, trumpSet bool) []Card {
	legal := make([]Card, 0, len(hand))
	for _, c := range hand {
		if CanPlay(c, hand, lead, trump, trumpSet) {
			legal = append(legal, c)
		}
	}
	return legal
}
