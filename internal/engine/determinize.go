// Package engine implements the D-MCTS search of spec.md §4.G: masking,
// repeated determinization, UCT tree search, uniform-random rollout, and
// multi-worker aggregation — plus the Policy interface of §4.E.
//
// Grounded on BigInteger28-Azen's pkg/engine/engine.go (Engine/mctsNode/
// determinize/selectExpand/simulate/backprop/BestMove shape), corrected
// against original_source/rust_version/src/main.rs's MCTree/MCNode/
// backpropagate for the exact win-accounting convention and the
// win-rate-based (not visit-count-based) final action selection that
// spec.md §4.G.4 specifies.
package engine

import (
	"math/rand"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/durak"
)

// Determinize samples a concrete identity, uniformly at random and without
// replacement from the non-public pool, for every unknown deck slot and
// every unknown hand slot across all players — spec.md §4.G step 2. The
// input state should already be masked for the deciding player via
// durak.State.CloneMaskedFor. The result has no unknown slots left: it is a
// fully observable position suitable for tree search and rollout.
func Determinize(masked *durak.State, rng *rand.Rand) *durak.State {
	det := masked.Clone()

	assign := func(slot *cards.Slot) {
		if slot.Resolved() {
			return
		}
		c := det.Store.SampleRandom(rng)
		*slot = cards.Slot{Card: c, Visibility: cards.Private}
	}

	for i := range det.Deck {
		assign(&det.Deck[i])
	}
	for p := range det.Hands {
		hand := det.Hands[p]
		for i := range hand {
			assign(&hand[i])
		}
	}
	return det
}
