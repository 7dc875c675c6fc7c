// Package evaluator scores a dealt hand's strength ahead of bidding.
// Evaluation is a pure function of the six cards; it feeds the bidding
// engine and is a heuristic, not a guarantee of tricks.
package evaluator

import (
	"github.com/cardforge/pitch/internal/deck"
)

// Profile describes the strength of a hand across candidate trump suits.
type Profile struct {
	// TrumpStrength scores each candidate trump suit 0..100.
	TrumpStrength map[deck.Suit]int

	// PointCardTotal sums the game points held (J=1 Q=2 K=3 A=4 T=10).
	PointCardTotal int

	// HasWild reports whether the hand holds the wild card.
	HasWild bool

	// JackSuits lists the suits whose jack the hand holds.
	JackSuits []deck.Suit

	// TrickPotential estimates tricks won per candidate trump suit.
	TrickPotential map[deck.Suit]float64

	// OverallStrength blends the best trump suit, point cards and special
	// cards into a single 0..100 score.
	OverallStrength int
}

// BestSuit returns the candidate trump suit with the highest strength.
func (p Profile) BestSuit() deck.Suit {
	best := deck.Spades
	for _, suit := range deck.AllSuits() {
		if p.TrumpStrength[suit] > p.TrumpStrength[best] {
			best = suit
		}
	}
	return best
}

// Weights for the overall blend. Point totals are capped: beyond 30 game
// points extra paint stops adding bidding confidence.
const (
	trumpWeight   = 0.60
	pointsWeight  = 0.25
	specialWeight = 0.15
	pointsCeiling = 30

	wildSpecialBonus = 20
	jackSpecialBonus = 8
)

// Evaluate computes the strength profile for a hand.
func Evaluate(hand []deck.Card) Profile {
	p := Profile{
		TrumpStrength:  make(map[deck.Suit]int, 4),
		TrickPotential: make(map[deck.Suit]float64, 4),
	}

	for _, c := range hand {
		p.PointCardTotal += c.Rank.GamePoints()
		if c.IsWild() {
			p.HasWild = true
		}
		if c.Rank == deck.Jack {
			p.JackSuits = append(p.JackSuits, c.Suit)
		}
	}

	for _, suit := range deck.AllSuits() {
		p.TrumpStrength[suit] = trumpStrength(hand, suit)
		p.TrickPotential[suit] = trickPotential(hand, suit)
	}

	best := p.TrumpStrength[p.BestSuit()]

	pointScore := p.PointCardTotal
	if pointScore > pointsCeiling {
		pointScore = pointsCeiling
	}
	normPoints := float64(pointScore) * 100 / pointsCeiling

	special := 0
	if p.HasWild {
		special += wildSpecialBonus
	}
	special += jackSpecialBonus * len(p.JackSuits)

	overall := trumpWeight*float64(best) + pointsWeight*normPoints + specialWeight*float64(special)
	p.OverallStrength = clamp(int(overall))

	return p
}

// trumpStrength scores one candidate trump suit: 10 per trump-counting card,
// fixed bonuses for the wild card, the suit's own jack and the off-jack, and
// a graded per-card bonus for high trump.
func trumpStrength(hand []deck.Card, trump deck.Suit) int {
	score := 0
	for _, c := range hand {
		if !c.IsTrump(trump) {
			continue
		}
		score += 10
		switch {
		case c.IsWild():
			score += 15 + 10
		case c.Suit == trump && c.Rank == deck.Jack:
			score += 10 + 8
		case c.IsOffJack(trump):
			score += 8 + 6
		case c.Rank == deck.Ace:
			score += 5
		case c.Rank == deck.King:
			score += 4
		case c.Rank == deck.Queen:
			score += 3
		case c.Rank == deck.Ten:
			score += 2
		}
	}
	return clamp(score)
}

// trickPotential estimates tricks under a candidate trump: the top of the
// trump hierarchy is a near-certain trick, lower trump roughly half.
func trickPotential(hand []deck.Card, trump deck.Suit) float64 {
	potential := 0.0
	for _, c := range hand {
		switch {
		case c.IsWild():
			potential += 1.0
		case c.Suit == trump && c.Rank == deck.Jack:
			potential += 0.9
		case c.IsOffJack(trump):
			potential += 0.8
		case c.IsTrump(trump) && c.Rank >= deck.King:
			potential += 0.7
		case c.IsTrump(trump):
			potential += 0.4
		case c.Rank == deck.Ace:
			potential += 0.3 // off-suit ace wins a trick if not trumped
		}
	}
	return potential
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
