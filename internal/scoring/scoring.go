// Package scoring computes the six-point Setback result of a completed hand:
// High, Low, Jack, Off-Jack, Joker and Game. The bidding partnership is set
// back by its bid when it fails to make it.
package scoring

import (
	"github.com/cardforge/pitch/internal/deck"
)

// Play is one card played during the hand, tagged with the partnership that
// played it.
type Play struct {
	Team int
	Card deck.Card
}

// Trick is a sealed trick: its plays and the partnership that captured it.
type Trick struct {
	Plays      []Play
	WinnerTeam int
}

// Result is the scoring breakdown for one hand. Category fields hold the
// winning partnership index, or -1 when the category was not awarded.
type Result struct {
	HighTeam    int    `json:"highTeam"` // played the highest natural trump
	HighCard    string `json:"highCard"`
	LowTeam     int    `json:"lowTeam"` // played the lowest natural trump
	LowCard     string `json:"lowCard"`
	JackTeam    int    `json:"jackTeam"`    // captured the trump jack
	OffJackTeam int    `json:"offJackTeam"` // captured the off-jack
	JokerTeam   int    `json:"jokerTeam"`   // captured the wild card
	GameTeam    int    `json:"gameTeam"`    // majority of game points (tie: nobody)

	GamePoints [2]int `json:"gamePoints"` // raw game point totals
	Points     [2]int `json:"points"`     // category points per partnership

	BidderTeam int  `json:"bidderTeam"`
	BidAmount  int  `json:"bidAmount"`
	BidMade    bool `json:"bidMade"`

	// Delta is the score change applied to each partnership: earned points,
	// or minus the bid for a set-back bidder.
	Delta [2]int `json:"delta"`
}

// Score computes the result of a hand from its sealed tricks.
// High and Low go to the partnership that played the card; Jack, Off-Jack and
// Joker go to the partnership that captured it. Only natural trump-suit cards
// count for High/Low - the wild card and the off-jack sit above the suit but
// are scored through their own categories.
func Score(tricks []Trick, trump deck.Suit, bidderTeam, bid int) Result {
	r := Result{
		HighTeam:    -1,
		LowTeam:     -1,
		JackTeam:    -1,
		OffJackTeam: -1,
		JokerTeam:   -1,
		GameTeam:    -1,
		BidderTeam:  bidderTeam,
		BidAmount:   bid,
	}

	var high, low *deck.Card
	var highTeam, lowTeam int

	for _, trick := range tricks {
		for _, play := range trick.Plays {
			c := play.Card

			if c.Suit == trump && !c.IsWild() {
				if high == nil || c.Rank > high.Rank {
					card := c
					high = &card
					highTeam = play.Team
				}
				if low == nil || c.Rank < low.Rank {
					card := c
					low = &card
					lowTeam = play.Team
				}
				if c.Rank == deck.Jack {
					r.JackTeam = trick.WinnerTeam
				}
			}
			if c.IsOffJack(trump) {
				r.OffJackTeam = trick.WinnerTeam
			}
			if c.IsWild() {
				r.JokerTeam = trick.WinnerTeam
			}

			r.GamePoints[trick.WinnerTeam] += c.Rank.GamePoints()
		}
	}

	if high != nil {
		r.HighTeam = highTeam
		r.HighCard = high.ID
	}
	if low != nil {
		r.LowTeam = lowTeam
		r.LowCard = low.ID
	}

	if r.GamePoints[0] > r.GamePoints[1] {
		r.GameTeam = 0
	} else if r.GamePoints[1] > r.GamePoints[0] {
		r.GameTeam = 1
	}

	for _, team := range []int{r.HighTeam, r.LowTeam, r.JackTeam, r.OffJackTeam, r.JokerTeam, r.GameTeam} {
		if team >= 0 {
			r.Points[team]++
		}
	}

	r.BidMade = r.Points[bidderTeam] >= bid
	for team := 0; team < 2; team++ {
		if team == bidderTeam && !r.BidMade {
			r.Delta[team] = -bid
		} else {
			r.Delta[team] = r.Points[team]
		}
	}

	return r
}
