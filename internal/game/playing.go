package game

import (
	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/scoring"
)

// PlayCard plays the identified card for the seat whose turn it is. The card
// must be in the seat's hand and legal under the suit-following rules; the
// wild card may not open a trick before trump is set. An accepted play may
// seal the trick, complete the hand, and end the game.
func (t *Table) PlayCard(playerID, cardID string) error {
	if t.phase != PhasePlaying {
		return t.reject(ruleErr(CodeWrongPhase, playerID, cardID,
			"cannot play a card in %s phase", t.phase))
	}
	seat, ok := t.seatOf(playerID)
	if !ok {
		return t.reject(ruleErr(CodeOutOfTurn, playerID, cardID, "unknown player"))
	}
	if seat != t.hand.turn {
		return t.reject(ruleErr(CodeOutOfTurn, playerID, cardID,
			"it is %s's turn to play", t.hand.turn))
	}

	player := t.playerAt(seat)
	cardIdx := -1
	for i, c := range player.Hand {
		if c.ID == cardID {
			cardIdx = i
			break
		}
	}
	if cardIdx < 0 {
		return t.reject(ruleErr(CodeUnknownCard, playerID, cardID,
			"card not in hand"))
	}
	card := player.Hand[cardIdx]

	lead := t.leadCard()
	if lead == nil && card.IsWild() && !t.hand.trumpSet {
		return t.reject(ruleErr(CodeWildLead, playerID, cardID,
			"the wild card cannot lead before trump is set"))
	}
	if !deck.CanPlay(card, player.Hand, lead, t.hand.trump, t.hand.trumpSet) {
		return t.reject(ruleErr(CodeFollowSuit, playerID, cardID,
			"must follow the %s lead", t.demandedSuit(lead)))
	}

	// Accepted: from here on the mutation must fully apply.
	player.Hand = append(player.Hand[:cardIdx], player.Hand[cardIdx+1:]...)

	if t.hand.openTrick == nil {
		t.hand.openTrick = &Trick{ID: newTrickID()}
	}
	trick := t.hand.openTrick

	if len(trick.Plays) == 0 {
		if !t.hand.trumpSet {
			// First lead of the hand fixes trump irrevocably. The wild card
			// cannot reach here before trump is set.
			t.hand.trump = card.Suit
			t.hand.trumpSet = true
			t.logger.Info("trump established", "suit", card.Suit)
			t.bus.Publish(TrumpEstablishedEvent{
				baseEvent: newBase(EventTrumpEstablished),
				Suit:      card.Suit,
			})
		}
		trick.LeadSuit = deck.EffectiveLeadSuit(card, t.hand.trump, t.hand.trumpSet)
	}

	trick.Plays = append(trick.Plays, Play{PlayerID: playerID, Seat: seat, Card: card})

	t.logger.Debug("card played",
		"player", player.Name,
		"card", card.String(),
		"trickPlays", len(trick.Plays))
	t.bus.Publish(CardPlayedEvent{
		baseEvent: newBase(EventCardPlayed),
		PlayerID:  playerID,
		Card:      card,
		Trick:     copyTrick(trick),
	})

	if len(trick.Plays) == 4 {
		t.sealTrick()
		if len(t.hand.sealedTricks) == TricksInHand {
			t.completeHand()
		}
		return nil
	}

	t.hand.turn = seat.Next()
	return nil
}

// leadCard returns the card that opened the current trick, or nil when the
// next play leads.
func (t *Table) leadCard() *deck.Card {
	if t.hand.openTrick == nil || len(t.hand.openTrick.Plays) == 0 {
		return nil
	}
	return &t.hand.openTrick.Plays[0].Card
}

func (t *Table) demandedSuit(lead *deck.Card) deck.Suit {
	if lead == nil {
		return deck.NoSuit
	}
	return deck.EffectiveLeadSuit(*lead, t.hand.trump, t.hand.trumpSet)
}

// sealTrick assigns the trick winner and hands them the lead. Sealing with
// anything but four plays is an orchestrator defect.
func (t *Table) sealTrick() {
	trick := t.hand.openTrick
	if trick == nil || len(trick.Plays) != 4 {
		panic("game: sealing a trick without exactly 4 plays")
	}

	best := trick.Plays[0]
	for _, play := range trick.Plays[1:] {
		if play.Card.Beats(best.Card, t.hand.trump, trick.LeadSuit) {
			best = play
		}
	}
	trick.WinnerID = best.PlayerID
	trick.sealed = true

	t.hand.sealedTricks = append(t.hand.sealedTricks, *trick)
	t.hand.openTrick = nil
	t.hand.turn = best.Seat

	t.logger.Info("trick complete",
		"winner", t.players[best.Seat].Name,
		"card", best.Card.String(),
		"tricks", len(t.hand.sealedTricks))
	t.bus.Publish(TrickCompleteEvent{
		baseEvent: newBase(EventTrickComplete),
		Trick:     t.hand.sealedTricks[len(t.hand.sealedTricks)-1],
	})
}

// completeHand scores the six sealed tricks, applies the score deltas, and
// either ends the game or rotates the dealer into the next hand.
func (t *Table) completeHand() {
	t.phase = PhaseScoring

	bid := t.hand.currentBid
	if bid == nil {
		panic("game: hand completed without a winning bid")
	}

	tricks := make([]scoring.Trick, 0, len(t.hand.sealedTricks))
	for _, trick := range t.hand.sealedTricks {
		st := scoring.Trick{Plays: make([]scoring.Play, 0, len(trick.Plays))}
		for _, play := range trick.Plays {
			st.Plays = append(st.Plays, scoring.Play{Team: play.Seat.Team(), Card: play.Card})
		}
		winnerSeat, _ := t.seatOf(trick.WinnerID)
		st.WinnerTeam = winnerSeat.Team()
		tricks = append(tricks, st)
	}

	result := scoring.Score(tricks, t.hand.trump, bid.Seat.Team(), bid.Amount)
	for team := 0; team < 2; team++ {
		t.partnerships[team].Score += result.Delta[team]
	}

	t.logger.Info("hand complete",
		"hand", t.handNumber,
		"bidMade", result.BidMade,
		"delta0", result.Delta[0],
		"delta1", result.Delta[1],
		"score0", t.partnerships[0].Score,
		"score1", t.partnerships[1].Score)
	t.bus.Publish(HandCompleteEvent{
		baseEvent:  newBase(EventHandComplete),
		HandNumber: t.handNumber,
		Result:     result,
		State:      t.Snapshot(),
	})

	if winner := t.gameWinner(bid.Seat.Team()); winner >= 0 {
		t.winner = winner
		t.phase = PhaseGameOver
		t.logger.Info("game ended",
			"winner", t.partnerships[winner].ID,
			"score", t.partnerships[winner].Score)
		t.bus.Publish(GameEndedEvent{
			baseEvent: newBase(EventGameEnded),
			Winner:    snapshotPartnership(t.partnerships[winner]),
		})
		return
	}

	t.rotateDealer()
	t.handNumber++
	t.dealHand()
	t.bus.Publish(StateEvent{newBase(EventNextHandStarted), t.Snapshot()})
	t.bus.Publish(StateEvent{newBase(EventBiddingStarted), t.Snapshot()})
}

// gameWinner returns the winning partnership index, or -1 if the game goes
// on. When both partnerships cross the target in the same hand the bidding
// side goes out first.
func (t *Table) gameWinner(bidderTeam int) int {
	over := [2]bool{
		t.partnerships[0].Score >= t.targetScore,
		t.partnerships[1].Score >= t.targetScore,
	}
	switch {
	case over[0] && over[1]:
		return bidderTeam
	case over[0]:
		return 0
	case over[1]:
		return 1
	default:
		return -1
	}
}

func copyTrick(t *Trick) Trick {
	out := *t
	out.Plays = make([]Play, len(t.Plays))
	copy(out.Plays, t.Plays)
	return out
}
