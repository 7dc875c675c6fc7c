package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/randutil"
)

// eventRecorder captures the notification stream for assertions.
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *eventRecorder) count(kind EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == kind {
			n++
		}
	}
	return n
}

func (r *eventRecorder) last(kind EventType) GameEvent {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].EventType() == kind {
			return r.events[i]
		}
	}
	return nil
}

func quietLogger() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func newTestTable(t *testing.T) (*Table, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	tbl := NewTable(Config{}, quietLogger(), WithRand(randutil.New(42)))
	tbl.Events().Subscribe(rec)
	return tbl, rec
}

func requireRuleError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var rule *RuleError
	require.True(t, errors.As(err, &rule), "expected a rule error, got %v", err)
	require.Equal(t, code, rule.Code)
}

func TestStartGameDealsAndOpensBidding(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	assert.Equal(t, PhaseBidding, tbl.Phase())
	assert.Equal(t, East, tbl.Turn(), "bidding opens left of the dealer")
	for _, seat := range AllSeats() {
		assert.Len(t, tbl.playerAt(seat).Hand, HandSize)
	}
	assert.Equal(t, []EventType{EventGameStarted, EventBiddingStarted}, rec.types())
}

func TestStartGameOnlyFromSetup(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	err := tbl.StartGame()
	requireRuleError(t, err, CodeWrongPhase)
	assert.Equal(t, 1, rec.count(EventInvalidPlay))
}

func TestDefaultTargetScore(t *testing.T) {
	tbl, _ := newTestTable(t)
	assert.Equal(t, DefaultTargetScore, tbl.targetScore)

	tbl2 := NewTable(Config{TargetScore: 11}, quietLogger())
	assert.Equal(t, 11, tbl2.targetScore)
}

func TestBidRejections(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	east := tbl.playerAt(East).ID
	south := tbl.playerAt(South).ID

	requireRuleError(t, tbl.PlaceBid(south, 3, false), CodeOutOfTurn)
	requireRuleError(t, tbl.PlaceBid("nobody", 3, false), CodeOutOfTurn)
	requireRuleError(t, tbl.PlaceBid(east, 1, false), CodeInvalidBid)
	requireRuleError(t, tbl.PlaceBid(east, 7, false), CodeInvalidBid)

	require.NoError(t, tbl.PlaceBid(east, 3, false))
	requireRuleError(t, tbl.PlaceBid(south, 3, false), CodeInvalidBid)
	requireRuleError(t, tbl.PlaceBid(south, 2, false), CodeInvalidBid)

	assert.Equal(t, 6, rec.count(EventInvalidPlay))
	assert.Equal(t, East, tbl.playerAt(East).Seat)
	assert.Equal(t, South, tbl.Turn(), "rejections must not advance the turn")
}

func TestMaxBidClosesBidding(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	require.NoError(t, tbl.PlaceBid(tbl.playerAt(East).ID, MaxBid, false))

	assert.Equal(t, PhasePlaying, tbl.Phase())
	assert.Equal(t, East, tbl.Turn(), "the bid winner leads")
	assert.Equal(t, 1, rec.count(EventBiddingEnded))
	assert.Equal(t, 1, rec.count(EventPlayStarted))

	ended := rec.last(EventBiddingEnded).(BiddingEndedEvent)
	assert.Equal(t, MaxBid, ended.FinalBid.Amount)
	assert.Equal(t, East, ended.FinalBid.Seat)
}

func TestThreePassesAfterLiveBidCloseBidding(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	require.NoError(t, tbl.PlaceBid(tbl.playerAt(East).ID, 3, false))
	require.NoError(t, tbl.PlaceBid(tbl.playerAt(South).ID, 0, true))
	require.NoError(t, tbl.PlaceBid(tbl.playerAt(West).ID, 0, true))
	assert.Equal(t, PhaseBidding, tbl.Phase(), "two passes keep the auction open")

	require.NoError(t, tbl.PlaceBid(tbl.playerAt(North).ID, 0, true))
	assert.Equal(t, PhasePlaying, tbl.Phase())
	assert.Equal(t, East, tbl.Turn())
	assert.Equal(t, 3, tbl.standingBid())
}

func TestAllPassForcesDealerMinimumBid(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	for _, seat := range []Seat{East, South, West, North} {
		require.NoError(t, tbl.PlaceBid(tbl.playerAt(seat).ID, 0, true))
	}

	assert.Equal(t, PhasePlaying, tbl.Phase())
	assert.Equal(t, North, tbl.Turn(), "the stuck dealer leads")

	require.NotNil(t, tbl.hand.currentBid)
	assert.Equal(t, MinBid, tbl.hand.currentBid.Amount)
	assert.True(t, tbl.hand.currentBid.Forced)
	assert.Equal(t, North, tbl.hand.currentBid.Seat)

	// Four passes plus the forced bid.
	assert.Len(t, tbl.hand.bidHistory, 5)
	ended := rec.last(EventBiddingEnded).(BiddingEndedEvent)
	assert.True(t, ended.FinalBid.Forced)
}

// setupScriptedHand drives the table into the playing phase with East holding
// the contract at 3, then replaces the dealt hands with a fixed deal so card
// play is fully deterministic.
func setupScriptedHand(t *testing.T) (*Table, *eventRecorder) {
	t.Helper()
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	require.NoError(t, tbl.PlaceBid(tbl.playerAt(East).ID, 3, false))
	for _, seat := range []Seat{South, West, North} {
		require.NoError(t, tbl.PlaceBid(tbl.playerAt(seat).ID, 0, true))
	}
	require.Equal(t, PhasePlaying, tbl.Phase())
	require.Equal(t, East, tbl.Turn())

	tbl.playerAt(East).Hand = []deck.Card{
		deck.NewWild(),
		deck.NewCard(deck.Spades, deck.Jack),
		deck.NewCard(deck.Spades, deck.Ace),
		deck.NewCard(deck.Spades, deck.King),
		deck.NewCard(deck.Hearts, deck.Nine),
		deck.NewCard(deck.Hearts, deck.Eight),
	}
	tbl.playerAt(South).Hand = []deck.Card{
		deck.NewCard(deck.Clubs, deck.Jack), // off-jack once spades are trump
		deck.NewCard(deck.Spades, deck.Queen),
		deck.NewCard(deck.Spades, deck.Ten),
		deck.NewCard(deck.Spades, deck.Five),
		deck.NewCard(deck.Hearts, deck.Seven),
		deck.NewCard(deck.Hearts, deck.Six),
	}
	tbl.playerAt(West).Hand = []deck.Card{
		deck.NewCard(deck.Spades, deck.Four),
		deck.NewCard(deck.Spades, deck.Three),
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.Ace),
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Hearts, deck.Queen),
	}
	tbl.playerAt(North).Hand = []deck.Card{
		deck.NewCard(deck.Spades, deck.Eight),
		deck.NewCard(deck.Spades, deck.Seven),
		deck.NewCard(deck.Spades, deck.Six),
		deck.NewCard(deck.Hearts, deck.Ten),
		deck.NewCard(deck.Hearts, deck.Five),
		deck.NewCard(deck.Hearts, deck.Four),
	}
	return tbl, rec
}

// playScriptedHand runs the fixed six-trick hand. With spades as trump East's
// side takes High, Low, Jack, Joker and Game; South captures the off-jack.
func playScriptedHand(t *testing.T, tbl *Table) {
	t.Helper()
	script := []struct {
		seat Seat
		card deck.Card
	}{
		{East, deck.NewCard(deck.Spades, deck.Ace)},
		{South, deck.NewCard(deck.Spades, deck.Five)},
		{West, deck.NewCard(deck.Spades, deck.Two)},
		{North, deck.NewCard(deck.Spades, deck.Six)},

		{East, deck.NewWild()},
		{South, deck.NewCard(deck.Spades, deck.Ten)},
		{West, deck.NewCard(deck.Spades, deck.Three)},
		{North, deck.NewCard(deck.Spades, deck.Seven)},

		{East, deck.NewCard(deck.Spades, deck.Jack)},
		{South, deck.NewCard(deck.Spades, deck.Queen)},
		{West, deck.NewCard(deck.Spades, deck.Four)},
		{North, deck.NewCard(deck.Spades, deck.Eight)},

		// South's off-jack outranks East's king and takes the trick.
		{East, deck.NewCard(deck.Spades, deck.King)},
		{South, deck.NewCard(deck.Clubs, deck.Jack)},
		{West, deck.NewCard(deck.Hearts, deck.Ace)},
		{North, deck.NewCard(deck.Hearts, deck.Four)},

		{South, deck.NewCard(deck.Hearts, deck.Seven)},
		{West, deck.NewCard(deck.Hearts, deck.King)},
		{North, deck.NewCard(deck.Hearts, deck.Five)},
		{East, deck.NewCard(deck.Hearts, deck.Nine)},

		{West, deck.NewCard(deck.Hearts, deck.Queen)},
		{North, deck.NewCard(deck.Hearts, deck.Ten)},
		{East, deck.NewCard(deck.Hearts, deck.Eight)},
		{South, deck.NewCard(deck.Hearts, deck.Six)},
	}
	for i, step := range script {
		require.Equal(t, step.seat, tbl.Turn(), "script step %d", i)
		err := tbl.PlayCard(tbl.playerAt(step.seat).ID, step.card.ID)
		require.NoError(t, err, "script step %d: %s plays %s", i, step.seat, step.card)
	}
}

func TestWildCannotLeadBeforeTrumpIsSet(t *testing.T) {
	tbl, rec := setupScriptedHand(t)

	east := tbl.playerAt(East).ID
	requireRuleError(t, tbl.PlayCard(east, deck.NewWild().ID), CodeWildLead)
	assert.False(t, tbl.hand.trumpSet)
	assert.Len(t, tbl.playerAt(East).Hand, HandSize, "rejected play must not leave the hand")

	require.NoError(t, tbl.PlayCard(east, deck.NewCard(deck.Spades, deck.Ace).ID))
	assert.True(t, tbl.hand.trumpSet)
	assert.Equal(t, deck.Spades, tbl.hand.trump)
	assert.Equal(t, 1, rec.count(EventTrumpEstablished))
}

func TestMustFollowSuit(t *testing.T) {
	tbl, rec := setupScriptedHand(t)

	require.NoError(t, tbl.PlayCard(tbl.playerAt(East).ID, deck.NewCard(deck.Spades, deck.Ace).ID))

	// South holds trump and may not slough a heart on a trump lead.
	south := tbl.playerAt(South).ID
	requireRuleError(t, tbl.PlayCard(south, deck.NewCard(deck.Hearts, deck.Seven).ID), CodeFollowSuit)

	invalid := rec.last(EventInvalidPlay).(InvalidPlayEvent)
	assert.Equal(t, CodeFollowSuit, invalid.Code)
	assert.Equal(t, south, invalid.PlayerID)
	assert.Equal(t, deck.NewCard(deck.Hearts, deck.Seven).ID, invalid.CardID)

	require.NoError(t, tbl.PlayCard(south, deck.NewCard(deck.Spades, deck.Five).ID))
}

func TestPlayRejections(t *testing.T) {
	tbl, _ := setupScriptedHand(t)

	requireRuleError(t, tbl.PlayCard(tbl.playerAt(South).ID,
		deck.NewCard(deck.Spades, deck.Queen).ID), CodeOutOfTurn)
	requireRuleError(t, tbl.PlayCard(tbl.playerAt(East).ID,
		deck.NewCard(deck.Diamonds, deck.Ace).ID), CodeUnknownCard)

	tbl2, _ := newTestTable(t)
	require.NoError(t, tbl2.StartGame())
	requireRuleError(t, tbl2.PlayCard(tbl2.playerAt(East).ID, "anything"), CodeWrongPhase)
}

func TestTrickSealsWithWinnerLeading(t *testing.T) {
	tbl, rec := setupScriptedHand(t)

	plays := []struct {
		seat Seat
		card deck.Card
	}{
		{East, deck.NewCard(deck.Spades, deck.King)},
		{South, deck.NewCard(deck.Spades, deck.Five)},
		{West, deck.NewCard(deck.Spades, deck.Two)},
		{North, deck.NewCard(deck.Spades, deck.Six)},
	}
	for _, p := range plays {
		require.NoError(t, tbl.PlayCard(tbl.playerAt(p.seat).ID, p.card.ID))
	}

	require.Len(t, tbl.hand.sealedTricks, 1)
	trick := tbl.hand.sealedTricks[0]
	assert.True(t, trick.Sealed())
	assert.Equal(t, tbl.playerAt(East).ID, trick.WinnerID, "the king takes the trick")
	assert.Nil(t, tbl.hand.openTrick)
	assert.Equal(t, East, tbl.Turn(), "the trick winner leads next")
	assert.Equal(t, 1, rec.count(EventTrickComplete))
	assert.Equal(t, 4, rec.count(EventCardPlayed))
}

func TestScriptedHandScoresAndRotatesDealer(t *testing.T) {
	tbl, rec := setupScriptedHand(t)
	playScriptedHand(t, tbl)

	complete := rec.last(EventHandComplete).(HandCompleteEvent)
	result := complete.Result
	assert.Equal(t, 1, result.HighTeam, "East played the ace of trump")
	assert.Equal(t, 1, result.LowTeam, "West played the two of trump")
	assert.Equal(t, 1, result.JackTeam)
	assert.Equal(t, 0, result.OffJackTeam, "South's off-jack won its own trick")
	assert.Equal(t, 1, result.JokerTeam)
	assert.Equal(t, 1, result.GameTeam)
	assert.True(t, result.BidMade, "five points covers a bid of three")
	assert.Equal(t, [2]int{1, 5}, result.Delta)

	assert.Equal(t, 1, tbl.partnerships[0].Score)
	assert.Equal(t, 5, tbl.partnerships[1].Score)

	// The next hand is already dealt.
	assert.Equal(t, PhaseBidding, tbl.Phase())
	assert.Equal(t, 2, tbl.handNumber)
	assert.Equal(t, East, tbl.dealerSeat(), "button moves one seat clockwise")
	assert.Equal(t, South, tbl.Turn(), "bidding opens left of the new dealer")
	assert.Equal(t, 1, rec.count(EventDealerRotated))
	assert.Equal(t, 1, rec.count(EventNextHandStarted))
	assert.Equal(t, 2, rec.count(EventBiddingStarted))
	assert.Equal(t, 6, rec.count(EventTrickComplete))
}

func TestScriptedHandSetsBackFailedBidder(t *testing.T) {
	tbl, rec := setupScriptedHand(t)
	// Raise East's contract beyond the five points the script yields.
	tbl.hand.currentBid.Amount = MaxBid
	playScriptedHand(t, tbl)

	complete := rec.last(EventHandComplete).(HandCompleteEvent)
	assert.False(t, complete.Result.BidMade)
	assert.Equal(t, [2]int{1, -MaxBid}, complete.Result.Delta)
	assert.Equal(t, -MaxBid, tbl.partnerships[1].Score)
}

func TestGameEndsAtTargetScore(t *testing.T) {
	tbl, rec := setupScriptedHand(t)
	tbl.partnerships[1].Score = 16 // five more points ends it
	playScriptedHand(t, tbl)

	assert.Equal(t, PhaseGameOver, tbl.Phase())
	assert.True(t, tbl.IsGameOver())
	assert.Equal(t, 21, tbl.partnerships[1].Score)

	ended := rec.last(EventGameEnded).(GameEndedEvent)
	assert.Equal(t, "east_west", ended.Winner.ID)
	assert.Equal(t, 0, rec.count(EventDealerRotated), "no next hand after the game ends")

	snap := tbl.Snapshot()
	require.NotNil(t, snap.Winner)
	assert.Equal(t, "east_west", snap.Winner.ID)
}

func TestBidderGoesOutFirstWhenBothSidesCross(t *testing.T) {
	tbl, rec := setupScriptedHand(t)
	tbl.partnerships[0].Score = 20
	tbl.partnerships[1].Score = 16
	playScriptedHand(t, tbl)

	// Both partnerships cross 21 on the same hand; the contract holder wins.
	assert.Equal(t, 21, tbl.partnerships[0].Score)
	assert.Equal(t, 21, tbl.partnerships[1].Score)
	ended := rec.last(EventGameEnded).(GameEndedEvent)
	assert.Equal(t, "east_west", ended.Winner.ID)
}

func TestSnapshotSharesNoMutableState(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.StartGame())

	snap := tbl.Snapshot()
	require.NotEmpty(t, snap.Players[East].Hand)

	// Mutating the snapshot must not reach the table.
	original := tbl.playerAt(East).Hand[0]
	snap.Players[East].Hand[0] = deck.NewWild()
	assert.Equal(t, original, tbl.playerAt(East).Hand[0])

	// Mutating the table must not reach the snapshot.
	before := len(snap.BidHistory)
	require.NoError(t, tbl.PlaceBid(tbl.playerAt(East).ID, 3, false))
	assert.Len(t, snap.BidHistory, before)
	assert.Nil(t, snap.CurrentBid)
}

func TestShoeReshufflesWhenShortOfADeal(t *testing.T) {
	tbl, rec := newTestTable(t)
	require.NoError(t, tbl.StartGame())
	require.Equal(t, 0, rec.count(EventDeckReshuffled), "a fresh shoe covers the first deal")

	// Two deals leave 5 cards; the third must rebuild the shoe.
	assert.Equal(t, deck.ShoeSize-cardsPerDeal, tbl.shoe.Remaining())
	tbl.dealHand()
	tbl.dealHand()

	assert.Equal(t, 1, rec.count(EventDeckReshuffled))
	event := rec.last(EventDeckReshuffled).(DeckReshuffledEvent)
	assert.Equal(t, deck.ShoeSize-2*cardsPerDeal, event.Remaining)
	assert.Equal(t, cardsPerDeal, event.Needed)
	assert.Equal(t, deck.ShoeSize-cardsPerDeal, tbl.shoe.Remaining())
}
