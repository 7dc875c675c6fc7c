package game

import (
	"time"

	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/scoring"
)

// EventType names a state-change notification. The names are the engine's
// public contract with presentation layers.
type EventType string

const (
	EventGameStarted      EventType = "gameStarted"
	EventBiddingStarted   EventType = "biddingStarted"
	EventBidPlaced        EventType = "bidPlaced"
	EventBiddingEnded     EventType = "biddingEnded"
	EventPlayStarted      EventType = "playStarted"
	EventTrumpEstablished EventType = "trumpEstablished"
	EventCardPlayed       EventType = "cardPlayed"
	EventInvalidPlay      EventType = "invalidPlay"
	EventTrickComplete    EventType = "trickComplete"
	EventHandComplete     EventType = "handComplete"
	EventNextHandStarted  EventType = "nextHandStarted"
	EventDealerRotated    EventType = "dealerRotated"
	EventGameEnded        EventType = "gameEnded"
	EventDeckReshuffled   EventType = "deckReshuffled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is any notification emitted after a state transition. Events are
// emitted synchronously, in order, after the triggering operation completes.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type baseEvent struct {
	kind EventType
	ts   time.Time
}

func (e baseEvent) EventType() EventType { return e.kind }
func (e baseEvent) Timestamp() time.Time { return e.ts }

func newBase(kind EventType) baseEvent {
	return baseEvent{kind: kind, ts: time.Now()}
}

// StateEvent carries a full read-only snapshot. It backs the notifications
// whose payload is the game state: gameStarted, biddingStarted, playStarted
// and nextHandStarted.
type StateEvent struct {
	baseEvent
	State Snapshot
}

// BidPlacedEvent is emitted after an accepted bid
type BidPlacedEvent struct {
	baseEvent
	Bid   Bid
	State Snapshot
}

// BiddingEndedEvent is emitted when bidding closes
type BiddingEndedEvent struct {
	baseEvent
	FinalBid Bid
	State    Snapshot
}

// TrumpEstablishedEvent is emitted when the first lead fixes the trump suit
type TrumpEstablishedEvent struct {
	baseEvent
	Suit deck.Suit
}

// CardPlayedEvent is emitted after each accepted card play
type CardPlayedEvent struct {
	baseEvent
	PlayerID string
	Card     deck.Card
	Trick    Trick
}

// InvalidPlayEvent is the structured rejection notification for rule
// violations. CardID is empty for bid rejections.
type InvalidPlayEvent struct {
	baseEvent
	Reason   string
	Code     string
	PlayerID string
	CardID   string
}

// TrickCompleteEvent is emitted when a trick seals
type TrickCompleteEvent struct {
	baseEvent
	Trick Trick
}

// HandCompleteEvent carries the scoring breakdown of a finished hand
type HandCompleteEvent struct {
	baseEvent
	HandNumber int
	Result     scoring.Result
	State      Snapshot
}

// DealerRotatedEvent is emitted after the dealer button moves one seat
type DealerRotatedEvent struct {
	baseEvent
	Dealer PlayerSnapshot
}

// GameEndedEvent is emitted once a partnership reaches the target score
type GameEndedEvent struct {
	baseEvent
	Winner PartnershipSnapshot
}

// DeckReshuffledEvent is emitted when the shoe is rebuilt before a deal
type DeckReshuffledEvent struct {
	baseEvent
	Remaining int
	Needed    int
}

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

// OnEvent calls the wrapped function
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous and in subscription order; the engine is single-threaded so no
// locking is needed.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
