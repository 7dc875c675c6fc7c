package bot

import (
	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/evaluator"
	"github.com/cardforge/pitch/internal/game"
)

// DecideCard implements game.Agent. The heuristic: open the hand in the
// suit the evaluator likes best (that lead sets trump), cash big trump when
// leading later, win tricks as cheaply as possible, and throw the least
// valuable card at tricks that are already lost or already the partner's.
func (b *Bot) DecideCard(view game.PlayView) string {
	legal := view.Legal
	if len(legal) == 0 {
		// The engine never asks a seat with no legal play.
		panic("bot: no legal plays")
	}
	if len(legal) == 1 {
		return legal[0].ID
	}

	var chosen deck.Card
	switch {
	case len(view.TrickPlays) == 0 && !view.TrumpSet:
		chosen = b.openingLead(view)
	case len(view.TrickPlays) == 0:
		chosen = b.lead(view)
	default:
		chosen = b.follow(view)
	}

	b.logger.Debug("card decision",
		"seat", view.Seat,
		"card", chosen.String(),
		"leading", len(view.TrickPlays) == 0)
	return chosen.ID
}

// openingLead picks the first lead of the hand, which fixes trump: the
// highest card of the suit the evaluator rates strongest.
func (b *Bot) openingLead(view game.PlayView) deck.Card {
	profile := evaluator.Evaluate(view.Hand)
	best := profile.BestSuit()

	var pick *deck.Card
	for i, c := range view.Legal {
		if c.Suit != best {
			continue
		}
		if pick == nil || c.Rank > pick.Rank {
			pick = &view.Legal[i]
		}
	}
	if pick != nil {
		return *pick
	}
	// Best suit is carried only by the wild card; fall back to the highest
	// legal card (the wild cannot lead yet).
	return highestByRank(view.Legal)
}

// lead picks a lead after trump is set: cash a boss trump if held, otherwise
// exit with the cheapest non-point card.
func (b *Bot) lead(view game.PlayView) deck.Card {
	for i, c := range view.Legal {
		if c.IsWild() {
			return view.Legal[i]
		}
	}
	for i, c := range view.Legal {
		if c.Suit == view.Trump && c.Rank == deck.Jack {
			return view.Legal[i]
		}
	}
	return cheapestThrow(view.Legal, view.Trump)
}

// follow picks a card when a trick is already underway.
func (b *Bot) follow(view game.PlayView) deck.Card {
	if view.PartnerWinning && len(view.TrickPlays) >= 2 {
		// Partner holds the trick; do not waste a winner over them.
		return cheapestThrow(view.Legal, view.Trump)
	}

	if winner := cheapestWinner(view); winner != nil {
		return *winner
	}
	return cheapestThrow(view.Legal, view.Trump)
}

// cheapestWinner returns the lowest legal card that takes the trick as it
// stands, or nil when the trick cannot be won.
func cheapestWinner(view game.PlayView) *deck.Card {
	if view.WinningPlay == nil {
		return nil
	}
	var pick *deck.Card
	for i, c := range view.Legal {
		if !c.Beats(view.WinningPlay.Card, view.Trump, view.LeadSuit) {
			continue
		}
		if pick == nil || pick.Beats(c, view.Trump, view.LeadSuit) {
			pick = &view.Legal[i]
		}
	}
	return pick
}

// cheapestThrow returns the least valuable card: fewest game points first,
// non-trump before trump, then lowest rank.
func cheapestThrow(legal []deck.Card, trump deck.Suit) deck.Card {
	pick := legal[0]
	for _, c := range legal[1:] {
		if throwCost(c, trump) < throwCost(pick, trump) {
			pick = c
		}
	}
	return pick
}

// throwCost orders cards by how much discarding them hurts.
func throwCost(c deck.Card, trump deck.Suit) int {
	cost := c.Rank.GamePoints()*10 + int(c.Rank)
	if c.IsTrump(trump) {
		cost += 200
	}
	if c.IsWild() {
		cost += 500
	}
	return cost
}

func highestByRank(cards []deck.Card) deck.Card {
	pick := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > pick.Rank && !c.IsWild() {
			pick = c
		}
	}
	return pick
}
