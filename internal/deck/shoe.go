package deck

import (
	rand "math/rand/v2"

	"github.com/cardforge/pitch/internal/randutil"
)

// ShoeSize is the full shoe: 52 suited cards plus the single wild card.
const ShoeSize = 53

// Shoe holds the cards remaining to be dealt. The table owns the shoe
// exclusively; it is mutated only through Deal and Reset.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates a full, shuffled shoe drawing from the provided rng.
// A nil rng falls back to a time-seeded source.
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		rng = randutil.NewTimeSeeded()
	}
	s := &Shoe{
		cards: make([]Card, 0, ShoeSize),
		rng:   rng,
	}
	s.Reset()
	return s
}

// Reset rebuilds all 53 cards and shuffles them
func (s *Shoe) Reset() {
	s.cards = s.cards[:0]
	for _, suit := range AllSuits() {
		for _, rank := range AllRanks() {
			s.cards = append(s.cards, NewCard(suit, rank))
		}
	}
	s.cards = append(s.cards, NewWild())

	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Deal removes and returns the top card. The second return value is false
// when the shoe is empty.
func (s *Shoe) Deal() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, true
}

// DealMany deals up to n cards, returning fewer if the shoe runs out
func (s *Shoe) DealMany(n int) []Card {
	if n > len(s.cards) {
		n = len(s.cards)
	}
	dealt := make([]Card, n)
	copy(dealt, s.cards[:n])
	s.cards = s.cards[n:]
	return dealt
}

// Remaining returns how many cards are left
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
