package durak

import (
	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/knowledge"
)

// Phase is the current phase of the in-progress trick.
type Phase int8

const (
	PhaseAttack Phase = iota
	PhaseDefend
	PhaseThrowCards
)

// Pair is a successfully defended (attack, defense) card pair on the table.
type Pair struct {
	Attack  cards.Card
	Defense cards.Card
}

// Trick holds everything scoped to the trick currently in progress, per
// spec.md §3 "Turn state".
type Trick struct {
	Attackers                []int // seat indices, excludes the defender
	Defender                 int
	CurrentAttacker          int // index into Attackers
	LastPlayedAttacker       int // seat index
	AttackerToStartThrowing  int // index into Attackers
	PairsFinished            []Pair
	CardsToDefend            []cards.Card
	ReflectedTrumps          []cards.Card
	Phase                    Phase
	DrawOrder                []int // seat indices: attackers in order, then defender
}

func (t Trick) reflectedTrumpUsed(c cards.Card) bool {
	for _, rc := range t.ReflectedTrumps {
		if rc == c {
			return true
		}
	}
	return false
}

func (t Trick) clone() Trick {
	out := t
	out.Attackers = append([]int(nil), t.Attackers...)
	out.PairsFinished = append([]Pair(nil), t.PairsFinished...)
	out.CardsToDefend = append([]cards.Card(nil), t.CardsToDefend...)
	out.ReflectedTrumps = append([]cards.Card(nil), t.ReflectedTrumps...)
	out.DrawOrder = append([]int(nil), t.DrawOrder...)
	return out
}

// State is the full Durak position: deck, hands, trick progress, turn
// order, and end-of-game flag, per spec.md §3.
type State struct {
	NumPlayers   int
	Hands        []cards.Hand
	Deck         cards.Deck
	TrumpSuit    cards.Suit
	Store        *knowledge.Store
	Trick        Trick
	Discard      []cards.Card // permanently burnt pairs (see DESIGN.md)
	CurrentSeat  int
	Terminal     bool
	Loser        int
}

// Clone returns a deep, independent copy of the state, safe to mutate
// without affecting the original — used on every tree-search expansion and
// every rollout step per spec.md §5.
func (s *State) Clone() *State {
	hands := make([]cards.Hand, len(s.Hands))
	for i, h := range s.Hands {
		hands[i] = h.Clone()
	}
	return &State{
		NumPlayers:  s.NumPlayers,
		Hands:       hands,
		Deck:        s.Deck.Clone(),
		TrumpSuit:   s.TrumpSuit,
		Store:       s.Store.Clone(),
		Trick:       s.Trick.clone(),
		Discard:     append([]cards.Card(nil), s.Discard...),
		CurrentSeat: s.CurrentSeat,
		Terminal:    s.Terminal,
		Loser:       s.Loser,
	}
}

// CloneMaskedFor returns a clone with every other player's concrete private
// slots reset to unknown-identity sentinels — step 1 ("Masking") of the
// D-MCTS decision procedure in spec.md §4.G. Public cards are left as-is.
// Each masked identity goes back into the clone's unknown pool, so that
// Determinize can sample it again.
func (s *State) CloneMaskedFor(viewer int) *State {
	clone := s.Clone()
	for p, hand := range clone.Hands {
		if p == viewer {
			continue
		}
		for i, slot := range hand {
			if slot.Visibility == cards.Private {
				clone.Store.UnknownPool = append(clone.Store.UnknownPool, slot.Card)
				hand[i] = cards.Slot{Visibility: cards.Unknown}
			}
		}
	}
	return clone
}

// drawBlind pops the deck's top slot and appends it to a player's hand: the
// bottom card (the sole Public deck slot) arrives concrete, everything else
// arrives as an unknown-identity sentinel per knowledge.Store's "draw_blind"
// operation (spec.md §4.B) — identity resolution, if any, happens later via
// the knowledge store.
func (s *State) drawBlind(player int) {
	slot, ok := s.Deck.Draw()
	if !ok {
		return
	}
	s.Hands[player] = append(s.Hands[player], slot)
}

// aliveSeats reports, walking clockwise from start, every seat that still
// holds cards or can still draw from the deck.
func (s *State) aliveSeats(start int) []int {
	var out []int
	for i := 0; i < s.NumPlayers; i++ {
		seat := (start + i) % s.NumPlayers
		if s.Hands[seat].Count() > 0 || s.Deck.Len() > 0 {
			out = append(out, seat)
		}
	}
	return out
}

// rebuildTrick re-initializes Trick starting from mainAttacker's seat,
// per spec.md §4.C "Trick initialization", or marks the state terminal.
func (s *State) rebuildTrick(mainAttacker int) {
	attackers := s.aliveSeats(mainAttacker)
	switch len(attackers) {
	case 0:
		s.Terminal = true
		s.Loser = s.Trick.Defender
		return
	case 1:
		s.Terminal = true
		s.Loser = attackers[0]
		return
	}
	defender := attackers[1]
	attackers = append(append([]int(nil), attackers[:1]...), attackers[2:]...)
	drawOrder := append(append([]int(nil), attackers...), defender)
	s.Trick = Trick{
		Attackers:               attackers,
		Defender:                defender,
		CurrentAttacker:         0,
		LastPlayedAttacker:      attackers[0],
		AttackerToStartThrowing: 0,
		Phase:                   PhaseAttack,
		DrawOrder:               drawOrder,
	}
	s.CurrentSeat = attackers[0]
}
