// Package bot implements the AI seats: a bidding engine built on the hand
// evaluator and a card-selection heuristic. Decisions are pure, synchronous
// computations over read-only views; randomness comes from an injected,
// seedable source.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardforge/pitch/internal/evaluator"
	"github.com/cardforge/pitch/internal/game"
	"github.com/cardforge/pitch/internal/randutil"
)

// Bot decides bids and plays for one seat. It satisfies game.Agent.
type Bot struct {
	profile Profile
	rng     *rand.Rand
	logger  *log.Logger
}

// New creates a bot with the given temperament. A nil rng falls back to a
// time-seeded source; tests inject a seeded one.
func New(profile Profile, rng *rand.Rand, logger *log.Logger) *Bot {
	if rng == nil {
		rng = randutil.NewTimeSeeded()
	}
	return &Bot{
		profile: profile,
		rng:     rng,
		logger:  logger.WithPrefix("bot").With("profile", profile),
	}
}

// strengthBand buckets overall strength into the five bidding bands.
type strengthBand int

const (
	veryWeak strengthBand = iota
	weak
	medium
	strong
	veryStrong
)

func (b strengthBand) String() string {
	switch b {
	case veryWeak:
		return "very weak"
	case weak:
		return "weak"
	case medium:
		return "medium"
	case strong:
		return "strong"
	case veryStrong:
		return "very strong"
	default:
		return "?"
	}
}

func bandFor(strength int) strengthBand {
	switch {
	case strength >= 80:
		return veryStrong
	case strength >= 60:
		return strong
	case strength >= 40:
		return medium
	case strength >= 20:
		return weak
	default:
		return veryWeak
	}
}

// baseThreshold maps a band to its pass threshold: the lower the threshold,
// the more willing the seat is to bid. A threshold above passCutoff passes.
func (b strengthBand) baseThreshold() float64 {
	switch b {
	case veryStrong:
		return 0.35
	case strong:
		return 0.55
	case medium:
		return 0.85
	case weak:
		return 0.95
	default:
		return 1.20
	}
}

// bidAmount maps a band to the bid it justifies on its own.
func (b strengthBand) bidAmount() int {
	switch b {
	case veryStrong:
		return game.MaxBid
	case strong:
		return 5
	case medium:
		return 4
	case weak:
		return 3
	default:
		return game.MinBid
	}
}

const (
	// passCutoff: an adjusted threshold above this passes outright.
	passCutoff = 0.90
	// stretchCutoff: above this the bot refuses to stretch more than one
	// step beyond what its band justifies.
	stretchCutoff = 0.70
)

// adjustProfile applies the behavior temperament. jitter is the ±10% random
// factor, passed in so the adjustment itself stays deterministic for tests.
func adjustProfile(threshold float64, profile Profile, strength int, jitter float64) float64 {
	switch profile {
	case Conservative:
		threshold *= 1.3
	case Aggressive:
		threshold *= 0.7
	case Adaptive:
		if strength >= 60 {
			threshold *= 0.8
		} else {
			threshold *= 1.2
		}
	}
	return threshold * jitter
}

// adjustPosition applies the seat adjustment: a stuck dealer all but must
// bid, an ordinary dealer leans in slightly, and the last seat to act leans
// toward contesting a standing bid.
func adjustPosition(threshold float64, view game.BidView) float64 {
	if view.StuckDealer {
		return threshold * 0.3
	}
	if view.IsDealer {
		threshold *= 0.9
	}
	if view.LastToAct && view.StandingBid > 0 {
		threshold *= 0.9
	}
	return threshold
}

// adjustScore applies the score-delta adjustment: press when behind or when
// the opponents threaten to go out, protect a big lead.
func adjustScore(threshold float64, view game.BidView) float64 {
	delta := view.OwnScore - view.OpponentScore
	switch {
	case delta < -5:
		threshold *= 0.7
	case delta <= -2:
		threshold *= 0.85
	}
	if delta > 0 && view.OwnScore >= 18 {
		threshold *= 1.3
	}
	switch {
	case view.OpponentScore >= 18:
		threshold *= 0.5
	case view.OpponentScore >= 15:
		threshold *= 0.75
	}
	return threshold
}

// adjustPartnership applies the partner adjustment: avoid overbidding a
// partner who already holds the contract, and help a dealer partner who
// risks being stuck.
func adjustPartnership(threshold float64, view game.BidView) float64 {
	if view.PartnerBid != nil {
		if !view.PartnerBid.Pass {
			threshold *= 1.2
		} else {
			threshold *= 0.95
		}
	}
	if view.PartnerIsDealer && view.StandingBid == 0 {
		threshold *= 0.9
	}
	return threshold
}

// DecideBid implements game.Agent.
func (b *Bot) DecideBid(view game.BidView) game.BidDecision {
	profile := evaluator.Evaluate(view.Hand)
	strength := profile.OverallStrength
	band := bandFor(strength)

	jitter := 0.9 + 0.2*b.rng.Float64()
	threshold := band.baseThreshold()
	threshold = adjustProfile(threshold, b.profile, strength, jitter)
	threshold = adjustPosition(threshold, view)
	threshold = adjustScore(threshold, view)
	threshold = adjustPartnership(threshold, view)

	b.logger.Debug("bid analysis",
		"seat", view.Seat,
		"strength", strength,
		"band", band,
		"threshold", threshold,
		"standing", view.StandingBid,
		"minLegal", view.MinLegalBid)

	if view.MinLegalBid > game.MaxBid {
		return pass("standing bid cannot be beaten")
	}
	if threshold > passCutoff {
		return pass(fmt.Sprintf("%s hand, threshold %.2f", band, threshold))
	}

	amount := band.bidAmount()
	if view.MinLegalBid > amount+1 && threshold > stretchCutoff {
		return pass(fmt.Sprintf("%s hand cannot stretch to %d", band, view.MinLegalBid))
	}
	if amount < view.MinLegalBid {
		amount = view.MinLegalBid
	}
	if amount > game.MaxBid {
		amount = game.MaxBid
	}

	return game.BidDecision{
		Amount:    amount,
		Reasoning: fmt.Sprintf("%s hand (strength %d), threshold %.2f", band, strength, threshold),
	}
}

func pass(reason string) game.BidDecision {
	return game.BidDecision{Pass: true, Reasoning: reason}
}
