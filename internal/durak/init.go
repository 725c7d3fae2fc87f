package durak

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/knowledge"
)

// ShuffleMode selects how hidden identities are resolved. Dealing is blind in
// both modes; RevealHand resolves a hand's slots later.
type ShuffleMode int8

const (
	// ComputerShuffle: the engine draws real identities itself, using rng.
	ComputerShuffle ShuffleMode = iota
	// ExternalShuffle: deal slots are blind and resolved later by an
	// oracle, just before the holder must act.
	ExternalShuffle
)

// BottomCardSource supplies the bottom (trump-defining) card in
// ExternalShuffle mode — the one place initialization needs an external
// identity before any player has a turn.
type BottomCardSource interface {
	InputCard(possible []cards.Card) (cards.Card, error)
}

// ErrConfiguration flags a configuration error per spec.md §7: wrong player
// count, unknown policy kind, etc. The core aborts setup with a clear cause.
var ErrConfiguration = errors.New("durak: configuration error")

// NewGame implements the "new_game" driver-contract entry point of spec.md
// §6, plus the full initialization sequence of §4.C: sample (or receive) the
// bottom card, redeal on the ace rule, deal 6 to each player, and build the
// first trick.
func NewGame(numPlayers, startingMainAttacker int, mode ShuffleMode, rng *rand.Rand, bottomSource BottomCardSource) (*State, error) {
	if numPlayers < 2 || numPlayers > 6 {
		return nil, errors.Wrapf(ErrConfiguration, "numPlayers must be 2-6, got %d", numPlayers)
	}
	if startingMainAttacker < 0 || startingMainAttacker >= numPlayers {
		return nil, errors.Wrapf(ErrConfiguration, "startingMainAttacker %d out of range", startingMainAttacker)
	}

	for {
		store := knowledge.New()

		var bottom cards.Card
		var err error
		if mode == ComputerShuffle {
			bottom = store.SampleRandom(rng)
		} else {
			bottom, err = bottomSource.InputCard(store.PossibleIdentities(nil))
			if err != nil {
				return nil, err
			}
			store.DrawPrivate(bottom)
		}
		store.Reveal(bottom) // the bottom card is public from the first instant

		if bottom.Rank == cards.Ace {
			// Ace rule: discard the partial deal and restart initialization.
			continue
		}

		s := &State{
			NumPlayers: numPlayers,
			Hands:      make([]cards.Hand, numPlayers),
			TrumpSuit:  bottom.Suit,
			Store:      store,
		}
		s.Deck = make(cards.Deck, 0, cards.NumSuits*cards.NumRanks)
		s.Deck = append(s.Deck, cards.Slot{Card: bottom, Visibility: cards.Public})
		for i := 1; i < cards.NumSuits*cards.NumRanks; i++ {
			s.Deck = append(s.Deck, cards.Slot{Visibility: cards.Unknown})
		}

		for p := 0; p < numPlayers; p++ {
			for c := 0; c < 6; c++ {
				s.drawBlind(p)
			}
		}

		s.rebuildTrick(startingMainAttacker)
		return s, nil
	}
}

// RevealHand resolves every unknown slot in player's hand to a concrete
// private identity, per spec.md §4.E: "the engine consults an oracle to
// reveal the player's private cards." In ComputerShuffle mode the identity
// is sampled by the engine itself (rng); in ExternalShuffle mode it is
// requested from source, the general card-input oracle. Called by the
// driver before a seat decides (every seat in ComputerShuffle mode, non-human
// seats in ExternalShuffle mode), covering both the initial deal and
// mid-game refills, so both modes resolve lazily in the same place.
func (s *State) RevealHand(player int, mode ShuffleMode, rng *rand.Rand, source BottomCardSource) error {
	hand := s.Hands[player]
	for i, slot := range hand {
		if slot.Resolved() {
			continue
		}
		var c cards.Card
		if mode == ComputerShuffle {
			c = s.Store.SampleRandom(rng)
		} else {
			possible := s.Store.PossibleIdentities(hand)
			var err error
			c, err = source.InputCard(possible)
			if err != nil {
				return errors.Wrapf(err, "revealing hand for seat %d", player)
			}
			s.Store.DrawPrivate(c)
		}
		hand[i] = cards.Slot{Card: c, Visibility: cards.Private}
	}
	return nil
}
