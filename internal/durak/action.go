// Package durak implements the Durak ("podkidnoy with trump-reflect") game
// state machine: the game state, the action executor, and the legal-move
// generator with hidden-card reasoning, per spec.md §3-4 (C and D).
//
// Grounded on BigInteger28-Azen's pkg/game/game.go (Move/GameState/executor
// shape) generalized to Durak's rules using
// original_source/rust_version/src/main.rs's GameTree trait as the semantic
// authority for every transition and edge case.
package durak

import (
	"fmt"
	"sort"

	"github.com/azen-engine/internal/cards"
)

// Tag identifies one of the seven action variants.
type Tag int8

const (
	Attack Tag = iota
	Defend
	Reflect
	ReflectTrump
	Take
	PassAttack
	ThrowCards
)

func (t Tag) String() string {
	switch t {
	case Attack:
		return "attack"
	case Defend:
		return "defend"
	case Reflect:
		return "reflect"
	case ReflectTrump:
		return "reflecttrump"
	case Take:
		return "take"
	case PassAttack:
		return "passattack"
	case ThrowCards:
		return "throwcards"
	default:
		return "?"
	}
}

// Action is the tagged sum type of spec.md §4.A: a tag plus a payload — a
// single card for the first four tags, none for Take/PassAttack, an ordered
// (canonicalized) list of cards for ThrowCards.
type Action struct {
	Tag   Tag
	Card  cards.Card
	Throw []cards.Card
}

// NewThrow builds a ThrowCards action, canonicalizing the throw list by
// (suit, rank) so equivalent throws are structurally and key-equal.
func NewThrow(cc []cards.Card) Action {
	sorted := append([]cards.Card(nil), cc...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Suit != sorted[j].Suit {
			return sorted[i].Suit < sorted[j].Suit
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	return Action{Tag: ThrowCards, Throw: sorted}
}

// Key returns a canonical, comparable string identifying this action —
// used as the child-map key during tree search and for legal-action
// deduplication.
func (a Action) Key() string {
	switch a.Tag {
	case Take, PassAttack:
		return a.Tag.String()
	case ThrowCards:
		s := a.Tag.String() + ":"
		for _, c := range a.Throw {
			s += c.String() + ","
		}
		return s
	default:
		return fmt.Sprintf("%s:%s", a.Tag, a.Card)
	}
}

func (a Action) String() string {
	switch a.Tag {
	case Take, PassAttack:
		return a.Tag.String()
	case ThrowCards:
		return fmt.Sprintf("%s%v", a.Tag, a.Throw)
	default:
		return fmt.Sprintf("%s(%s)", a.Tag, a.Card)
	}
}
