package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cardforge/pitch/internal/deck"
	"github.com/cardforge/pitch/internal/game"
)

// promptAgent drives a human seat from a line-based terminal prompt.
type promptAgent struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func newPromptAgent(name string, in io.Reader, out io.Writer) *promptAgent {
	return &promptAgent{
		name: name,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (a *promptAgent) DecideBid(view game.BidView) game.BidDecision {
	fmt.Fprintf(a.out, "\n%s, your hand: %s\n", a.name, handString(view.Hand))
	if view.StandingBid > 0 {
		fmt.Fprintf(a.out, "standing bid is %d; bid %d-%d or pass\n",
			view.StandingBid, view.MinLegalBid, game.MaxBid)
	} else {
		fmt.Fprintf(a.out, "no bids yet; bid %d-%d or pass\n", game.MinBid, game.MaxBid)
	}
	if view.StuckDealer {
		fmt.Fprintf(a.out, "everyone passed: passing sticks you with a bid of %d\n", game.MinBid)
	}

	for {
		fmt.Fprintf(a.out, "bid> ")
		line, ok := a.readLine()
		if !ok {
			return game.BidDecision{Pass: true, Reasoning: "input closed"}
		}
		if line == "pass" || line == "p" || line == "" {
			return game.BidDecision{Pass: true, Reasoning: "player passed"}
		}
		amount, err := strconv.Atoi(line)
		if err != nil || amount < view.MinLegalBid || amount > game.MaxBid {
			fmt.Fprintf(a.out, "enter a number from %d to %d, or pass\n",
				view.MinLegalBid, game.MaxBid)
			continue
		}
		return game.BidDecision{Amount: amount, Reasoning: "player bid"}
	}
}

func (a *promptAgent) DecideCard(view game.PlayView) string {
	fmt.Fprintf(a.out, "\n%s, your hand: %s\n", a.name, handString(view.Hand))
	if view.TrumpSet {
		fmt.Fprintf(a.out, "trump is %s\n", view.Trump)
	} else {
		fmt.Fprintf(a.out, "trump is not set; your lead fixes it\n")
	}
	if len(view.TrickPlays) > 0 {
		parts := make([]string, 0, len(view.TrickPlays))
		for _, p := range view.TrickPlays {
			parts = append(parts, fmt.Sprintf("%s:%s", p.Seat, p.Card))
		}
		fmt.Fprintf(a.out, "trick so far: %s\n", strings.Join(parts, " "))
	}
	for i, c := range view.Legal {
		fmt.Fprintf(a.out, "  [%d] %s\n", i+1, c)
	}

	for {
		fmt.Fprintf(a.out, "card> ")
		line, ok := a.readLine()
		if !ok {
			return view.Legal[0].ID
		}
		if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(view.Legal) {
			return view.Legal[idx-1].ID
		}
		for _, c := range view.Legal {
			if strings.EqualFold(line, c.ID) {
				return c.ID
			}
		}
		fmt.Fprintf(a.out, "pick a number from 1 to %d\n", len(view.Legal))
	}
}

func (a *promptAgent) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(strings.ToLower(a.in.Text())), true
}

func handString(hand []deck.Card) string {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
