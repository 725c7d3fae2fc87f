package durak

import (
	"github.com/pkg/errors"

	"github.com/azen-engine/internal/cards"
)

// ErrInvariant flags an engine-invariant violation per spec.md §7: these are
// bugs, not runtime conditions, and the core aborts with a precise message
// naming the violated invariant.
var ErrInvariant = errors.New("durak: engine invariant violated")

// Apply executes action against s, mutating it in place and advancing
// turn/trick state per spec.md §4.C. It returns an error wrapping
// ErrInvariant on an engine invariant violation (a card the executor expects
// to find but cannot).
func (s *State) Apply(action Action) error {
	switch action.Tag {
	case Attack:
		return s.applyAttack(action.Card)
	case Defend:
		return s.applyDefend(action.Card)
	case Reflect:
		return s.applyReflect(action.Card, false)
	case ReflectTrump:
		return s.applyReflect(action.Card, true)
	case Take:
		return s.applyTake()
	case PassAttack:
		return s.applyPassAttack()
	case ThrowCards:
		return s.applyThrowCards(action.Throw)
	default:
		return errors.Wrapf(ErrInvariant, "unknown action tag %v", action.Tag)
	}
}

func (s *State) applyAttack(c cards.Card) error {
	attacker := s.Trick.Attackers[s.Trick.CurrentAttacker]
	hand := s.Hands[attacker]
	if !hand.RemoveEither(c) {
		return errors.Wrapf(ErrInvariant, "attack: card %s not found in seat %d's hand", c, attacker)
	}
	s.Hands[attacker] = hand
	s.Store.Reveal(c)
	s.Trick.CardsToDefend = append(s.Trick.CardsToDefend, c)
	s.Trick.LastPlayedAttacker = attacker
	s.Trick.Phase = PhaseDefend
	s.CurrentSeat = s.Trick.Defender
	return nil
}

func (s *State) applyDefend(c cards.Card) error {
	defender := s.Trick.Defender
	hand := s.Hands[defender]
	if !hand.RemoveEither(c) {
		return errors.Wrapf(ErrInvariant, "defend: card %s not found in seat %d's hand", c, defender)
	}
	s.Hands[defender] = hand
	s.Store.Reveal(c)

	if len(s.Trick.CardsToDefend) == 0 {
		return errors.Wrap(ErrInvariant, "defend: no undefended card to answer")
	}
	front := s.Trick.CardsToDefend[0]
	s.Trick.CardsToDefend = s.Trick.CardsToDefend[1:]
	s.Trick.PairsFinished = append(s.Trick.PairsFinished, Pair{Attack: front, Defense: c})

	if len(s.Trick.CardsToDefend) == 0 {
		s.Trick.Phase = PhaseAttack
		s.CurrentSeat = s.Trick.Attackers[s.Trick.CurrentAttacker]
	} else {
		s.CurrentSeat = defender
	}
	return nil
}

// applyReflect rotates the defender role to the next seat, per spec.md
// §4.C: plain reflect adds c to cards_to_defend; trump reflect keeps c in
// the defender's own hand but makes it public and records it in
// ReflectedTrumps, per the Open Question resolution recorded in DESIGN.md
// ("rotate defender without changing table contents").
func (s *State) applyReflect(c cards.Card, trump bool) error {
	oldDefender := s.Trick.Defender
	hand := s.Hands[oldDefender]

	if trump {
		found := false
		for i, slot := range hand {
			if slot.Resolved() && slot.Card == c {
				hand[i] = cards.Slot{Card: c, Visibility: cards.Public}
				found = true
				break
			}
		}
		if !found {
			if !hand.RemoveOneUnknown() {
				return errors.Wrapf(ErrInvariant, "reflecttrump: card %s not found in seat %d's hand", c, oldDefender)
			}
			hand = append(hand, cards.Slot{Card: c, Visibility: cards.Public})
		}
		s.Trick.ReflectedTrumps = append(s.Trick.ReflectedTrumps, c)
	} else {
		if !hand.RemoveEither(c) {
			return errors.Wrapf(ErrInvariant, "reflect: card %s not found in seat %d's hand", c, oldDefender)
		}
		s.Trick.CardsToDefend = append(s.Trick.CardsToDefend, c)
	}
	s.Hands[oldDefender] = hand
	s.Store.Reveal(c)
	s.Trick.LastPlayedAttacker = oldDefender

	attackers := s.Trick.Attackers
	n := len(attackers)
	if n == 0 {
		return errors.Wrap(ErrInvariant, "reflect: no attackers to rotate into")
	}
	idx := 1 % n
	newDefender := attackers[idx]
	attackers = append(append(attackers[:idx:idx], oldDefender), attackers[idx+1:]...)
	s.Trick.Defender = newDefender
	s.Trick.DrawOrder = append(append([]int(nil), attackers...), newDefender)
	// rotate_left(1): every seat moves one slot earlier and the seat that
	// used to lead attacking wraps to the end, matching
	// original_source/rust_version/src/main.rs.
	if len(attackers) > 0 {
		rotated := append(append([]int(nil), attackers[1:]...), attackers[0])
		attackers = rotated
	}
	s.Trick.Attackers = attackers
	s.CurrentSeat = newDefender
	return nil
}

func (s *State) applyTake() error {
	s.Trick.Phase = PhaseThrowCards
	s.Trick.AttackerToStartThrowing = s.Trick.CurrentAttacker
	s.CurrentSeat = s.Trick.Attackers[s.Trick.CurrentAttacker]
	return nil
}

func (s *State) applyThrowCards(throw []cards.Card) error {
	attacker := s.Trick.Attackers[s.Trick.CurrentAttacker]
	hand := s.Hands[attacker]
	for _, c := range throw {
		if !hand.RemoveEither(c) {
			return errors.Wrapf(ErrInvariant, "throwcards: card %s not found in seat %d's hand", c, attacker)
		}
		s.Store.Reveal(c)
		s.Trick.CardsToDefend = append(s.Trick.CardsToDefend, c)
	}
	s.Hands[attacker] = hand

	n := len(s.Trick.Attackers)
	s.Trick.CurrentAttacker = (s.Trick.CurrentAttacker + 1) % n
	next := s.Trick.Attackers[s.Trick.CurrentAttacker]
	s.CurrentSeat = next

	if next == s.Trick.Attackers[s.Trick.AttackerToStartThrowing] {
		s.defenderPicksUp()
		s.refillAll()
		newMainAttacker := s.Trick.Attackers[1%len(s.Trick.Attackers)]
		s.rebuildTrick(newMainAttacker)
	}
	return nil
}

func (s *State) applyPassAttack() error {
	n := len(s.Trick.Attackers)
	s.Trick.CurrentAttacker = (s.Trick.CurrentAttacker + 1) % n
	next := s.Trick.Attackers[s.Trick.CurrentAttacker]
	s.CurrentSeat = next

	if next == s.Trick.LastPlayedAttacker {
		s.Discard = append(s.Discard, flattenPairs(s.Trick.PairsFinished)...)
		s.Trick.PairsFinished = nil
		s.refillAll()
		newMainAttacker := s.Trick.Defender
		s.rebuildTrick(newMainAttacker)
	}
	return nil
}

// defenderPicksUp moves all undefended and completed-pair cards to the
// defender's hand, as public slots — spec.md §8 invariant 8 "Round-trip
// pickup".
func (s *State) defenderPicksUp() {
	defender := s.Trick.Defender
	hand := s.Hands[defender]
	for _, c := range s.Trick.CardsToDefend {
		hand = append(hand, cards.Slot{Card: c, Visibility: cards.Public})
	}
	for _, pr := range s.Trick.PairsFinished {
		hand = append(hand, cards.Slot{Card: pr.Attack, Visibility: cards.Public})
		hand = append(hand, cards.Slot{Card: pr.Defense, Visibility: cards.Public})
	}
	s.Hands[defender] = hand
	s.Trick.CardsToDefend = nil
	s.Trick.PairsFinished = nil
}

func (s *State) refillAll() {
	for _, p := range s.Trick.DrawOrder {
		for s.Hands[p].Count() < 6 && s.Deck.Len() > 0 {
			s.drawBlind(p)
		}
	}
}

func flattenPairs(pairs []Pair) []cards.Card {
	out := make([]cards.Card, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out, p.Attack, p.Defense)
	}
	return out
}
