package game

import (
	"github.com/cardforge/pitch/internal/deck"
)

// BidDecision is an agent's answer to a bid request.
type BidDecision struct {
	Amount    int
	Pass      bool
	Reasoning string
}

// BidView is the read-only context an agent sees when deciding a bid.
type BidView struct {
	Hand []deck.Card
	Seat Seat

	IsDealer    bool
	StandingBid int // 0 when nobody has bid
	MinLegalBid int
	BidHistory  []Bid

	// LastToAct is true when the three other seats have already acted.
	LastToAct bool
	// StuckDealer is true when this seat is the dealer, everyone else has
	// passed, and no live bid stands: passing now forces the minimum bid.
	StuckDealer bool

	// PartnerBid is the partner's entry in this hand's history, if any.
	PartnerBid *Bid
	// PartnerIsDealer combined with a standing bid of zero means the partner
	// risks being stuck.
	PartnerIsDealer bool

	OwnScore      int
	OpponentScore int
	TargetScore   int
}

// PlayView is the read-only context an agent sees when deciding a card.
type PlayView struct {
	Hand  []deck.Card
	Legal []deck.Card
	Seat  Seat

	Trump    deck.Suit
	TrumpSet bool

	// TrickPlays are the plays already in the open trick; empty means this
	// seat leads.
	TrickPlays []Play
	LeadSuit   deck.Suit
	// WinningPlay is the play currently taking the trick, nil when leading.
	WinningPlay *Play
	// PartnerWinning is true when the winning play belongs to the partner.
	PartnerWinning bool

	SealedTricks int
	BidAmount    int
	OwnTeamBid   bool
}

// Agent decides bids and card plays for one seat. Agents receive read-only
// views and return decisions; they never mutate game state. Human seats are
// driven by an Agent supplied by the presentation layer, AI seats by the bot
// package.
type Agent interface {
	DecideBid(view BidView) BidDecision
	DecideCard(view PlayView) string // returns the chosen card's id
}

// BidViewFor builds the bid context for a seat.
func (t *Table) BidViewFor(seat Seat) BidView {
	player := t.players[seat]
	view := BidView{
		Hand:          append([]deck.Card(nil), player.Hand...),
		Seat:          seat,
		IsDealer:      player.IsDealer,
		StandingBid:   t.standingBid(),
		MinLegalBid:   t.MinLegalBid(),
		BidHistory:    append([]Bid(nil), t.hand.bidHistory...),
		LastToAct:     len(t.hand.bidHistory) == 3,
		OwnScore:      t.partnerships[seat.Team()].Score,
		OpponentScore: t.partnerships[1-seat.Team()].Score,
		TargetScore:   t.targetScore,
	}
	view.StuckDealer = view.IsDealer && view.LastToAct && view.StandingBid == 0

	partnerSeat := seat.Partner()
	view.PartnerIsDealer = t.players[partnerSeat].IsDealer
	for i := range t.hand.bidHistory {
		if t.hand.bidHistory[i].Seat == partnerSeat {
			bid := t.hand.bidHistory[i]
			view.PartnerBid = &bid
		}
	}

	return view
}

// PlayViewFor builds the card-play context for a seat.
func (t *Table) PlayViewFor(seat Seat) PlayView {
	player := t.players[seat]
	view := PlayView{
		Hand:         append([]deck.Card(nil), player.Hand...),
		Legal:        deck.LegalPlays(player.Hand, t.leadCard(), t.hand.trump, t.hand.trumpSet),
		Seat:         seat,
		Trump:        t.hand.trump,
		TrumpSet:     t.hand.trumpSet,
		LeadSuit:     deck.NoSuit,
		SealedTricks: len(t.hand.sealedTricks),
	}
	if t.hand.currentBid != nil {
		view.BidAmount = t.hand.currentBid.Amount
		view.OwnTeamBid = t.hand.currentBid.Seat.Team() == seat.Team()
	}

	if t.hand.openTrick != nil && len(t.hand.openTrick.Plays) > 0 {
		trick := t.hand.openTrick
		view.TrickPlays = append([]Play(nil), trick.Plays...)
		view.LeadSuit = trick.LeadSuit

		best := trick.Plays[0]
		for _, play := range trick.Plays[1:] {
			if play.Card.Beats(best.Card, t.hand.trump, trick.LeadSuit) {
				best = play
			}
		}
		winning := best
		view.WinningPlay = &winning
		view.PartnerWinning = best.Seat == seat.Partner()
	}

	return view
}
