package game

// PlaceBid records a bid or pass for the seat whose turn it is. Bids must be
// within [MinBid, MaxBid] and strictly above the standing bid. Bidding closes
// on a bid of MaxBid, on three consecutive passes after a live bid, or when
// all four seats pass - in which case the dealer is forced to the minimum
// bid.
func (t *Table) PlaceBid(playerID string, amount int, pass bool) error {
	if t.phase != PhaseBidding {
		return t.reject(ruleErr(CodeWrongPhase, playerID, "",
			"cannot bid in %s phase", t.phase))
	}
	seat, ok := t.seatOf(playerID)
	if !ok {
		return t.reject(ruleErr(CodeOutOfTurn, playerID, "", "unknown player"))
	}
	if seat != t.hand.turn {
		return t.reject(ruleErr(CodeOutOfTurn, playerID, "",
			"it is %s's turn to bid", t.hand.turn))
	}

	if !pass {
		if amount < MinBid || amount > MaxBid {
			return t.reject(ruleErr(CodeInvalidBid, playerID, "",
				"bid %d outside [%d,%d]", amount, MinBid, MaxBid))
		}
		if standing := t.standingBid(); amount <= standing {
			return t.reject(ruleErr(CodeInvalidBid, playerID, "",
				"bid %d does not beat standing bid %d", amount, standing))
		}
	}

	bid := Bid{PlayerID: playerID, Seat: seat, Amount: amount, Pass: pass}
	t.recordBid(bid)

	if t.biddingClosed() {
		t.closeBidding()
		return nil
	}

	t.hand.turn = seat.Next()
	return nil
}

// standingBid returns the current high bid, or 0 when nobody has bid.
func (t *Table) standingBid() int {
	if t.hand.currentBid == nil {
		return 0
	}
	return t.hand.currentBid.Amount
}

// MinLegalBid returns the smallest amount a live bid must reach.
func (t *Table) MinLegalBid() int {
	if standing := t.standingBid(); standing > 0 {
		return standing + 1
	}
	return MinBid
}

func (t *Table) recordBid(bid Bid) {
	t.hand.bidHistory = append(t.hand.bidHistory, bid)
	if bid.Pass {
		t.hand.passStreak++
	} else {
		b := bid
		t.hand.currentBid = &b
		t.hand.passStreak = 0
	}

	t.logger.Info("bid placed",
		"player", t.players[bid.Seat].Name,
		"seat", bid.Seat,
		"amount", bid.Amount,
		"pass", bid.Pass,
		"forced", bid.Forced)
	t.bus.Publish(BidPlacedEvent{
		baseEvent: newBase(EventBidPlaced),
		Bid:       bid,
		State:     t.Snapshot(),
	})
}

// biddingClosed reports whether the bid history ends the auction.
func (t *Table) biddingClosed() bool {
	if t.hand.currentBid != nil && t.hand.currentBid.Amount == MaxBid {
		return true
	}
	if t.hand.currentBid != nil && t.hand.passStreak >= 3 {
		return true
	}
	// All four passed: the dealer gets stuck with the minimum bid.
	return t.hand.currentBid == nil && len(t.hand.bidHistory) >= 4
}

// closeBidding seals the auction and hands the turn to the bid winner. When
// every seat passed, the dealer is forced to the minimum bid first.
func (t *Table) closeBidding() {
	if t.hand.currentBid == nil {
		dealer := t.dealerSeat()
		forced := Bid{
			PlayerID: t.players[dealer].ID,
			Seat:     dealer,
			Amount:   MinBid,
			Forced:   true,
		}
		t.logger.Info("all seats passed, dealer forced to minimum bid",
			"dealer", dealer, "amount", MinBid)
		t.recordBid(forced)
	}

	winner := *t.hand.currentBid
	t.phase = PhasePlaying
	t.hand.turn = winner.Seat

	t.logger.Info("bidding ended",
		"winner", t.players[winner.Seat].Name,
		"amount", winner.Amount)
	t.bus.Publish(BiddingEndedEvent{
		baseEvent: newBase(EventBiddingEnded),
		FinalBid:  winner,
		State:     t.Snapshot(),
	})
	t.bus.Publish(StateEvent{newBase(EventPlayStarted), t.Snapshot()})
}
