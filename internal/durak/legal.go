package durak

import (
	"sort"

	"github.com/azen-engine/internal/cards"
)

// PossibleCardPlays is the union of spec.md §4.D: every concrete slot's
// identity in player's hand, plus — if the hand holds any unknown slot —
// every identity in the fallback set (possible_identities(viewer=player,
// player=player)).
func (s *State) PossibleCardPlays(player int) []cards.Card {
	hand := s.Hands[player]
	concrete := hand.ConcreteCards()
	if hand.CountUnknown() == 0 {
		return concrete
	}
	fallback := s.Store.PossibleIdentities(hand)
	seen := make(map[cards.Card]struct{}, len(concrete)+len(fallback))
	out := make([]cards.Card, 0, len(concrete)+len(fallback))
	for _, c := range concrete {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, c := range fallback {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func ranksOnTable(t Trick) map[cards.Rank]struct{} {
	ranks := make(map[cards.Rank]struct{})
	for _, pr := range t.PairsFinished {
		ranks[pr.Attack.Rank] = struct{}{}
		ranks[pr.Defense.Rank] = struct{}{}
	}
	for _, c := range t.CardsToDefend {
		ranks[c.Rank] = struct{}{}
	}
	return ranks
}

// LegalActions enumerates the finite, non-empty set of actions consistent
// with spec.md §4.C for the player-to-move, honoring hidden-card
// feasibility (spec.md §4.D).
func (s *State) LegalActions() []Action {
	switch s.Trick.Phase {
	case PhaseAttack:
		return s.legalAttack()
	case PhaseDefend:
		return s.legalDefend()
	case PhaseThrowCards:
		return s.legalThrowCards()
	default:
		return nil
	}
}

func (s *State) legalAttack() []Action {
	var actions []Action
	hasPairs := len(s.Trick.PairsFinished) > 0
	if hasPairs {
		actions = append(actions, Action{Tag: PassAttack})
	}
	attacker := s.Trick.Attackers[s.Trick.CurrentAttacker]
	if s.Hands[s.Trick.Defender].Count() > 0 {
		poss := s.PossibleCardPlays(attacker)
		if hasPairs {
			ranks := ranksOnTable(s.Trick)
			filtered := poss[:0:0]
			for _, c := range poss {
				if _, ok := ranks[c.Rank]; ok {
					filtered = append(filtered, c)
				}
			}
			poss = filtered
		}
		dedup := make(map[cards.Card]struct{}, len(poss))
		for _, c := range poss {
			if _, ok := dedup[c]; ok {
				continue
			}
			dedup[c] = struct{}{}
			actions = append(actions, Action{Tag: Attack, Card: c})
		}
	}
	return actions
}

func (s *State) legalDefend() []Action {
	front := s.Trick.CardsToDefend[0]
	defender := s.Trick.Defender
	hand := s.Hands[defender]

	attackers := s.Trick.Attackers
	var newDefenderCapacity, newDefenderCapacityTrump int
	var haveReflectTarget bool
	if len(attackers) > 0 {
		newDefenderIdx := 1 % len(attackers)
		newDefender := attackers[newDefenderIdx]
		capacity := s.Hands[newDefender].Count() - len(s.Trick.CardsToDefend)
		newDefenderCapacity = capacity
		newDefenderCapacityTrump = capacity
		haveReflectTarget = true
	}

	noPairsYet := len(s.Trick.PairsFinished) == 0

	seenFallback := false
	dedup := make(map[string]struct{})
	var actions []Action

	consider := func(c cards.Card) {
		if noPairsYet && haveReflectTarget {
			if c.Rank == front.Rank {
				if newDefenderCapacity >= 1 {
					a := Action{Tag: Reflect, Card: c}
					if _, ok := dedup[a.Key()]; !ok {
						dedup[a.Key()] = struct{}{}
						actions = append(actions, a)
					}
				}
				if c.Suit == s.TrumpSuit && newDefenderCapacityTrump >= 0 && !s.Trick.reflectedTrumpUsed(c) {
					a := Action{Tag: ReflectTrump, Card: c}
					if _, ok := dedup[a.Key()]; !ok {
						dedup[a.Key()] = struct{}{}
						actions = append(actions, a)
					}
				}
			}
		}
		if c.Beats(front, s.TrumpSuit) {
			a := Action{Tag: Defend, Card: c}
			if _, ok := dedup[a.Key()]; !ok {
				dedup[a.Key()] = struct{}{}
				actions = append(actions, a)
			}
		}
	}

	for _, slot := range hand {
		if slot.Resolved() {
			consider(slot.Card)
			continue
		}
		if seenFallback {
			continue
		}
		seenFallback = true
		for _, c := range s.Store.PossibleIdentities(hand) {
			consider(c)
		}
	}

	actions = append(actions, Action{Tag: Take})
	return actions
}

func (s *State) legalThrowCards() []Action {
	attacker := s.Trick.Attackers[s.Trick.CurrentAttacker]
	hand := s.Hands[attacker]
	poss := s.PossibleCardPlays(attacker)

	ranks := ranksOnTable(s.Trick)
	filtered := poss[:0:0]
	for _, c := range poss {
		if _, ok := ranks[c.Rank]; ok {
			filtered = append(filtered, c)
		}
	}
	poss = filtered

	sort.Slice(poss, func(i, j int) bool {
		if poss[i].Suit != poss[j].Suit {
			return poss[i].Suit < poss[j].Suit
		}
		return poss[i].Rank < poss[j].Rank
	})

	availableCapacity := s.Hands[s.Trick.Defender].Count() - len(s.Trick.CardsToDefend)
	maxThrows := min3(availableCapacity, len(poss), hand.Count())

	actions := []Action{NewThrow(nil)}
	if maxThrows <= 0 {
		return actions
	}

	fallback := s.Store.PossibleIdentities(hand)
	seen := make(map[string]struct{})
	var subset []cards.Card
	var walk func(start int)
	walk = func(start int) {
		if len(subset) > 0 && len(subset) <= maxThrows && feasible(subset, hand, fallback) {
			a := NewThrow(subset)
			if _, ok := seen[a.Key()]; !ok {
				seen[a.Key()] = struct{}{}
				actions = append(actions, a)
			}
		}
		if len(subset) == maxThrows {
			return
		}
		for i := start; i < len(poss); i++ {
			subset = append(subset, poss[i])
			walk(i + 1)
			subset = subset[:len(subset)-1]
		}
	}
	walk(0)
	return actions
}

// feasible implements spec.md §4.D's exact greedy Hall-matching algorithm:
// build |K| concrete singleton bags for throw cards the hand holds
// concretely, append min(u, |throw|) copies of the fallback bag, then match
// each throw card against the first remaining bag that contains it.
func feasible(throw []cards.Card, hand cards.Hand, fallback []cards.Card) bool {
	var bags [][]cards.Card
	for _, c := range throw {
		if hand.HasConcrete(c) {
			bags = append(bags, []cards.Card{c})
		}
	}
	u := hand.CountUnknown()
	n := u
	if n > len(throw) {
		n = len(throw)
	}
	for i := 0; i < n; i++ {
		bags = append(bags, fallback)
	}

	for _, c := range throw {
		found := -1
		for i, bag := range bags {
			if containsCard(bag, c) {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		bags = append(bags[:found], bags[found+1:]...)
	}
	return true
}

func containsCard(bag []cards.Card, c cards.Card) bool {
	for _, b := range bag {
		if b == c {
			return true
		}
	}
	return false
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
