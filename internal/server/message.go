package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/game"
	"github.com/cardforge/pitch/internal/scoring"
)

// Message is the wire envelope sent to spectators. Type carries the game
// event name; Data the event-specific payload.
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType string, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

type bidPayload struct {
	Seat   string `json:"seat"`
	Amount int    `json:"amount"`
	Pass   bool   `json:"pass"`
	Forced bool   `json:"forced,omitempty"`
}

type playPayload struct {
	PlayerID string    `json:"playerId"`
	Seat     string    `json:"seat"`
	Card     deck.Card `json:"card"`
}

type trickPayload struct {
	ID       string        `json:"id"`
	Plays    []playPayload `json:"plays"`
	WinnerID string        `json:"winnerId,omitempty"`
	LeadSuit string        `json:"leadSuit"`
}

type statePayload struct {
	State game.Snapshot `json:"state"`
}

type bidPlacedPayload struct {
	Bid   bidPayload    `json:"bid"`
	State game.Snapshot `json:"state"`
}

type biddingEndedPayload struct {
	FinalBid bidPayload    `json:"finalBid"`
	State    game.Snapshot `json:"state"`
}

type trumpPayload struct {
	Suit string `json:"suit"`
}

type cardPlayedPayload struct {
	PlayerID string       `json:"playerId"`
	Card     deck.Card    `json:"card"`
	Trick    trickPayload `json:"trick"`
}

type invalidPlayPayload struct {
	Reason   string `json:"reason"`
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId,omitempty"`
}

type trickCompletePayload struct {
	Trick trickPayload `json:"trick"`
}

type handCompletePayload struct {
	HandNumber int            `json:"handNumber"`
	Result     scoring.Result `json:"result"`
	State      game.Snapshot  `json:"state"`
}

type dealerRotatedPayload struct {
	Dealer game.PlayerSnapshot `json:"dealer"`
}

type gameEndedPayload struct {
	Winner game.PartnershipSnapshot `json:"winner"`
}

type deckReshuffledPayload struct {
	Remaining int `json:"remaining"`
	Needed    int `json:"needed"`
}

func wireBid(b game.Bid) bidPayload {
	return bidPayload{
		Seat:   b.Seat.String(),
		Amount: b.Amount,
		Pass:   b.Pass,
		Forced: b.Forced,
	}
}

func wireTrick(t game.Trick) trickPayload {
	out := trickPayload{
		ID:       t.ID,
		WinnerID: t.WinnerID,
		LeadSuit: t.LeadSuit.String(),
		Plays:    make([]playPayload, 0, len(t.Plays)),
	}
	for _, p := range t.Plays {
		out.Plays = append(out.Plays, playPayload{
			PlayerID: p.PlayerID,
			Seat:     p.Seat.String(),
			Card:     p.Card,
		})
	}
	return out
}

// MessageFor translates a game event into its spectator wire message.
func MessageFor(event game.GameEvent) (*Message, error) {
	kind := event.EventType().String()

	switch e := event.(type) {
	case game.StateEvent:
		return NewMessage(kind, statePayload{State: e.State})
	case game.BidPlacedEvent:
		return NewMessage(kind, bidPlacedPayload{Bid: wireBid(e.Bid), State: e.State})
	case game.BiddingEndedEvent:
		return NewMessage(kind, biddingEndedPayload{FinalBid: wireBid(e.FinalBid), State: e.State})
	case game.TrumpEstablishedEvent:
		return NewMessage(kind, trumpPayload{Suit: e.Suit.String()})
	case game.CardPlayedEvent:
		return NewMessage(kind, cardPlayedPayload{
			PlayerID: e.PlayerID,
			Card:     e.Card,
			Trick:    wireTrick(e.Trick),
		})
	case game.InvalidPlayEvent:
		return NewMessage(kind, invalidPlayPayload{
			Reason:   e.Reason,
			Code:     e.Code,
			PlayerID: e.PlayerID,
			CardID:   e.CardID,
		})
	case game.TrickCompleteEvent:
		return NewMessage(kind, trickCompletePayload{Trick: wireTrick(e.Trick)})
	case game.HandCompleteEvent:
		return NewMessage(kind, handCompletePayload{
			HandNumber: e.HandNumber,
			Result:     e.Result,
			State:      e.State,
		})
	case game.DealerRotatedEvent:
		return NewMessage(kind, dealerRotatedPayload{Dealer: e.Dealer})
	case game.GameEndedEvent:
		return NewMessage(kind, gameEndedPayload{Winner: e.Winner})
	case game.DeckReshuffledEvent:
		return NewMessage(kind, deckReshuffledPayload{Remaining: e.Remaining, Needed: e.Needed})
	default:
		return nil, fmt.Errorf("no wire mapping for event %s", kind)
	}
}
