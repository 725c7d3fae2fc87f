package engine

import (
	"fmt"
	"strings"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/durak"
)

// HandStrength is a non-core, human-facing heuristic summary of a hand — it
// never feeds the D-MCTS search itself (that rollout is uniformly random
// per spec.md §4.G), but it gives an Oracle something to show a human
// alongside the engine's candidates. Adapted from BigInteger28-Azen's
// pkg/engine/heuristics.go EvaluateHand, regrounded on trump count instead
// of that teacher's wildcard/ace-of-a-different-game concepts.
type HandStrength struct {
	CardCount   int
	TrumpCount  int
	AceCount    int
	PairCount   int // ranks held with 2+ cards (easy throws)
	OverallScore float64
}

// EvaluateHand scores hand from the viewer's own point of view: smaller
// hands, more trumps, and more throw-pair ranks all score better.
func EvaluateHand(hand cards.Hand, trump cards.Suit) HandStrength {
	hs := HandStrength{CardCount: hand.Count()}
	rankCounts := make(map[cards.Rank]int)
	for _, c := range hand.ConcreteCards() {
		if c.Suit == trump {
			hs.TrumpCount++
		}
		if c.Rank == cards.Ace {
			hs.AceCount++
		}
		rankCounts[c.Rank]++
	}
	for _, n := range rankCounts {
		if n >= 2 {
			hs.PairCount++
		}
	}
	hs.OverallScore = 100.0 - float64(hs.CardCount)*5.0 +
		float64(hs.TrumpCount)*8.0 +
		float64(hs.AceCount)*4.0 +
		float64(hs.PairCount)*3.0
	return hs
}

// DisplayState renders a short human-facing summary of gs from player's
// point of view — used only by Oracle implementations, never by the core.
func DisplayState(gs *durak.State, player int) string {
	hand := gs.Hands[player]
	hs := EvaluateHand(hand, gs.TrumpSuit)
	var b strings.Builder
	fmt.Fprintf(&b, "trump=%s phase=%v seat=%d hand=%d cards (trumps=%d aces=%d score=%.1f)",
		gs.TrumpSuit, gs.Trick.Phase, player, hs.CardCount, hs.TrumpCount, hs.AceCount, hs.OverallScore)
	return b.String()
}

// DisplayCandidates renders the ranked D-MCTS candidate list for a
// confirm-before-commit prompt (see SPEC_FULL.md's supplemented
// "Confirm-then-fallback-to-human" behavior).
func DisplayCandidates(eval Eval) string {
	var b strings.Builder
	fmt.Fprintf(&b, "proposed: %s\n", eval.Best)
	for _, c := range eval.Candidates {
		fmt.Fprintf(&b, "  %s  w=%.1f n=%d rate=%.3f\n", c.Action, c.Wins, c.Visits, c.WinRate)
	}
	return b.String()
}
