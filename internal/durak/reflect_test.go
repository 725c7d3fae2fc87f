package durak

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/knowledge"
)

// newReflectFixture builds a known three-seat defend-phase position: seat 0
// and seat 2 attack, seat 1 defends a single undefended card, and seat 2 has
// enough capacity to become the next defender.
func newReflectFixture(t *testing.T, defenderCard cards.Slot, newDefenderHandSize int) *State {
	t.Helper()
	front := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	store := knowledge.New()
	store.Reveal(front)

	newDefenderHand := make(cards.Hand, newDefenderHandSize)
	for i := range newDefenderHand {
		newDefenderHand[i] = cards.Slot{Card: cards.Card{Suit: cards.Spades, Rank: cards.Rank(i + 2)}, Visibility: cards.Private}
	}

	s := &State{
		NumPlayers: 3,
		Hands: []cards.Hand{
			{{Card: cards.Card{Suit: cards.Spades, Rank: cards.Seven}, Visibility: cards.Private}},
			{defenderCard},
			newDefenderHand,
		},
		TrumpSuit: cards.Diamonds,
		Store:     store,
		Trick: Trick{
			Attackers:          []int{0, 2},
			Defender:           1,
			CurrentAttacker:    0,
			LastPlayedAttacker: 0,
			CardsToDefend:      []cards.Card{front},
			Phase:              PhaseDefend,
			DrawOrder:          []int{0, 2, 1},
		},
		CurrentSeat: 1,
	}
	return s
}

func TestReflectRotatesDefenderAttackersAndDrawOrder(t *testing.T) {
	reflectCard := cards.Card{Suit: cards.Hearts, Rank: cards.Six}
	s := newReflectFixture(t, cards.Slot{Card: reflectCard, Visibility: cards.Private}, 2)

	require.NoError(t, s.Apply(Action{Tag: Reflect, Card: reflectCard}))

	require.Equal(t, 2, s.Trick.Defender)
	require.Equal(t, []int{1, 0}, s.Trick.Attackers)
	require.Equal(t, []int{0, 1, 2}, s.Trick.DrawOrder)
	require.Equal(t, 2, s.CurrentSeat)
	require.Contains(t, s.Trick.CardsToDefend, reflectCard)
	require.False(t, s.Hands[1].HasConcrete(reflectCard), "reflected card must leave the old defender's hand")
}

func TestReflectTrumpKeepsCardPublicInHandAndRotates(t *testing.T) {
	trumpCard := cards.Card{Suit: cards.Diamonds, Rank: cards.Six}
	s := newReflectFixture(t, cards.Slot{Card: trumpCard, Visibility: cards.Private}, 1)

	require.NoError(t, s.Apply(Action{Tag: ReflectTrump, Card: trumpCard}))

	require.Equal(t, 2, s.Trick.Defender)
	require.Equal(t, []int{1, 0}, s.Trick.Attackers)
	require.Equal(t, []int{0, 1, 2}, s.Trick.DrawOrder)
	require.Equal(t, 2, s.CurrentSeat)
	require.Contains(t, s.Trick.ReflectedTrumps, trumpCard)
	require.NotContains(t, s.Trick.CardsToDefend, trumpCard, "trump reflect must not add the card to the table")

	require.True(t, s.Hands[1].HasConcrete(trumpCard), "trump reflect keeps the card in the reflecting seat's hand")
	for _, slot := range s.Hands[1] {
		if slot.Card == trumpCard {
			require.Equal(t, cards.Public, slot.Visibility)
		}
	}
}

func TestLegalDefendRejectsRepeatedReflectTrumpOnSameCard(t *testing.T) {
	front := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	trumpCard := cards.Card{Suit: cards.Diamonds, Rank: cards.Six}
	store := knowledge.New()
	store.Reveal(front)
	store.Reveal(trumpCard)

	s := &State{
		NumPlayers: 3,
		Hands: []cards.Hand{
			{{Card: cards.Card{Suit: cards.Spades, Rank: cards.Seven}, Visibility: cards.Private}},
			{{Card: trumpCard, Visibility: cards.Public}},
			{{Card: cards.Card{Suit: cards.Spades, Rank: cards.Eight}, Visibility: cards.Private}},
		},
		TrumpSuit: cards.Diamonds,
		Store:     store,
		Trick: Trick{
			Attackers:       []int{0, 2},
			Defender:        1,
			CurrentAttacker: 0,
			CardsToDefend:   []cards.Card{front},
			ReflectedTrumps: []cards.Card{trumpCard},
			Phase:           PhaseDefend,
			DrawOrder:       []int{0, 2, 1},
		},
		CurrentSeat: 1,
	}

	for _, a := range s.legalDefend() {
		if a.Tag == ReflectTrump {
			require.NotEqual(t, trumpCard, a.Card, "a trump already reflected this trick must not be offered again")
		}
	}
	// The trump card itself is still a legal plain defend (it still beats
	// front) — only its use as a *second* reflect is forbidden.
	foundDefend := false
	for _, a := range s.legalDefend() {
		if a.Tag == Defend && a.Card == trumpCard {
			foundDefend = true
		}
	}
	require.True(t, foundDefend)
}
