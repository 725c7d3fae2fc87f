// Package knowledge implements the card-collection / knowledge store of
// spec.md §4.B: the global set of non-public identities and the pool of
// identities still floating in unknown slots, plus the per-viewer
// possible-identities query that grounds hidden-card reasoning.
//
// Grounded on BigInteger28-Azen's pkg/game/knowledge.go (KnowledgeTracker),
// generalized from that teacher's suspicion-list bookkeeping to the exact
// non_public/unknown split of original_source/rust_version/src/tools.rs's
// CardCollection.
package knowledge

import (
	"math/rand"

	"github.com/azen-engine/internal/cards"
)

// Store tracks, across the whole game, which card identities have been
// revealed to everyone (removed from NonPublic) and which identities are
// still unassigned to any concrete slot (the UnknownPool).
type Store struct {
	NonPublic   map[cards.Card]struct{}
	UnknownPool []cards.Card
}

// New seeds a store with all 36 identities marked non-public and floating in
// the unknown pool — the state of the world before any card is dealt.
func New() *Store {
	all := cards.AllCards()
	s := &Store{
		NonPublic:   make(map[cards.Card]struct{}, len(all)),
		UnknownPool: append([]cards.Card(nil), all...),
	}
	for _, c := range all {
		s.NonPublic[c] = struct{}{}
	}
	return s
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{
		NonPublic:   make(map[cards.Card]struct{}, len(s.NonPublic)),
		UnknownPool: append([]cards.Card(nil), s.UnknownPool...),
	}
	for c := range s.NonPublic {
		out.NonPublic[c] = struct{}{}
	}
	return out
}

// Reveal moves a concrete identity from non-public to public. Idempotent.
func (s *Store) Reveal(c cards.Card) {
	delete(s.NonPublic, c)
}

// DrawPrivate removes a specific identity from the unknown pool — called
// once that identity has been assigned to a concrete private slot (whether
// chosen by SampleRandom below or supplied by an external oracle). The
// identity remains in NonPublic: knowing your own private card does not
// reveal it to anyone else.
func (s *Store) DrawPrivate(c cards.Card) {
	for i, pc := range s.UnknownPool {
		if pc == c {
			s.UnknownPool = append(s.UnknownPool[:i], s.UnknownPool[i+1:]...)
			return
		}
	}
}

// SampleRandom draws a uniformly random identity out of the unknown pool,
// removing it, for computer-shuffle dealing and determinization. Panics if
// the pool is empty — callers must check via len(UnknownPool) first; an
// empty pool at a draw site is the "determinization pool sized wrong" engine
// invariant named in spec §7.
func (s *Store) SampleRandom(rng *rand.Rand) cards.Card {
	idx := rng.Intn(len(s.UnknownPool))
	c := s.UnknownPool[idx]
	s.UnknownPool[idx] = s.UnknownPool[len(s.UnknownPool)-1]
	s.UnknownPool = s.UnknownPool[:len(s.UnknownPool)-1]
	return c
}

// PossibleIdentities returns the non-public identities not already held as a
// concrete slot in viewerHand — the candidate identities for any of that
// viewer's own unknown slots, or for another player's unknown slots as seen
// by this viewer.
func (s *Store) PossibleIdentities(viewerHand cards.Hand) []cards.Card {
	known := make(map[cards.Card]struct{}, len(viewerHand))
	for _, c := range viewerHand.ConcreteCards() {
		known[c] = struct{}{}
	}
	out := make([]cards.Card, 0, len(s.NonPublic))
	for c := range s.NonPublic {
		if _, seen := known[c]; !seen {
			out = append(out, c)
		}
	}
	return out
}
