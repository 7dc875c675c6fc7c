package game

import (
	"github.com/cardforge/pitch/internal/deck"
)

// PlayerSnapshot is a read-only copy of a player.
type PlayerSnapshot struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Seat      Seat        `json:"seat"`
	PartnerID string      `json:"partnerId"`
	Hand      []deck.Card `json:"hand"`
	IsHuman   bool        `json:"isHuman"`
	IsDealer  bool        `json:"isDealer"`
}

// PartnershipSnapshot is a read-only copy of a partnership.
type PartnershipSnapshot struct {
	ID        string    `json:"id"`
	PlayerIDs [2]string `json:"playerIds"`
	Score     int       `json:"score"`
}

// TrickSnapshot is a read-only copy of a trick.
type TrickSnapshot struct {
	ID       string    `json:"id"`
	Plays    []Play    `json:"plays"`
	WinnerID string    `json:"winnerId,omitempty"`
	LeadSuit deck.Suit `json:"leadSuit"`
	Sealed   bool      `json:"sealed"`
}

// Snapshot is a read-only copy of the whole game state. Snapshots share no
// mutable memory with the table; consumers may hold them indefinitely.
type Snapshot struct {
	Phase        Phase                  `json:"phase"`
	Players      [4]PlayerSnapshot      `json:"players"`
	Partnerships [2]PartnershipSnapshot `json:"partnerships"`
	HandNumber   int                    `json:"handNumber"`
	TargetScore  int                    `json:"targetScore"`

	Trump        *deck.Suit      `json:"trump,omitempty"`
	CurrentBid   *Bid            `json:"currentBid,omitempty"`
	BidHistory   []Bid           `json:"bidHistory"`
	Turn         Seat            `json:"turn"`
	OpenTrick    *TrickSnapshot  `json:"openTrick,omitempty"`
	SealedTricks []TrickSnapshot `json:"sealedTricks"`

	Winner *PartnershipSnapshot `json:"winner,omitempty"`
}

// Snapshot returns a read-only copy of the current game state.
func (t *Table) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       t.phase,
		HandNumber:  t.handNumber,
		TargetScore: t.targetScore,
		Turn:        t.hand.turn,
	}

	for _, seat := range AllSeats() {
		s.Players[seat] = snapshotPlayer(t.players[seat])
	}
	for i, ps := range t.partnerships {
		s.Partnerships[i] = snapshotPartnership(ps)
	}

	if t.hand.trumpSet {
		trump := t.hand.trump
		s.Trump = &trump
	}
	if t.hand.currentBid != nil {
		bid := *t.hand.currentBid
		s.CurrentBid = &bid
	}
	s.BidHistory = append([]Bid(nil), t.hand.bidHistory...)

	if t.hand.openTrick != nil {
		open := snapshotTrick(t.hand.openTrick)
		s.OpenTrick = &open
	}
	s.SealedTricks = make([]TrickSnapshot, 0, len(t.hand.sealedTricks))
	for i := range t.hand.sealedTricks {
		s.SealedTricks = append(s.SealedTricks, snapshotTrick(&t.hand.sealedTricks[i]))
	}

	if t.winner >= 0 {
		w := snapshotPartnership(t.partnerships[t.winner])
		s.Winner = &w
	}

	return s
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		Seat:      p.Seat,
		PartnerID: p.PartnerID,
		Hand:      append([]deck.Card(nil), p.Hand...),
		IsHuman:   p.IsHuman,
		IsDealer:  p.IsDealer,
	}
}

func snapshotPartnership(p *Partnership) PartnershipSnapshot {
	return PartnershipSnapshot{
		ID:        p.ID,
		PlayerIDs: p.PlayerIDs,
		Score:     p.Score,
	}
}

func snapshotTrick(t *Trick) TrickSnapshot {
	return TrickSnapshot{
		ID:       t.ID,
		Plays:    append([]Play(nil), t.Plays...),
		WinnerID: t.WinnerID,
		LeadSuit: t.LeadSuit,
		Sealed:   t.sealed,
	}
}
