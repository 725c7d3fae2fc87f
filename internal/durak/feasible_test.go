package durak

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/knowledge"
)

func TestFeasibleAcceptsConcretePlusFallbackMatch(t *testing.T) {
	cardA := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	cardB := cards.Card{Suit: cards.Hearts, Rank: cards.Six}
	hand := cards.Hand{
		{Card: cardA, Visibility: cards.Private},
		{Visibility: cards.Unknown},
	}
	fallback := []cards.Card{cardB, {Suit: cards.Spades, Rank: cards.King}}

	require.True(t, feasible([]cards.Card{cardA, cardB}, hand, fallback))
}

func TestFeasibleRejectsWhenFallbackLacksCard(t *testing.T) {
	cardA := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	cardC := cards.Card{Suit: cards.Diamonds, Rank: cards.King}
	hand := cards.Hand{
		{Card: cardA, Visibility: cards.Private},
		{Visibility: cards.Unknown},
	}
	fallback := []cards.Card{{Suit: cards.Spades, Rank: cards.Queen}}

	require.False(t, feasible([]cards.Card{cardA, cardC}, hand, fallback))
}

func TestFeasibleRejectsWhenNotEnoughUnknownSlots(t *testing.T) {
	cardB := cards.Card{Suit: cards.Hearts, Rank: cards.Six}
	cardC := cards.Card{Suit: cards.Diamonds, Rank: cards.Six}
	hand := cards.Hand{
		{Card: cards.Card{Suit: cards.Clubs, Rank: cards.Nine}, Visibility: cards.Private},
		{Visibility: cards.Unknown},
	}
	fallback := []cards.Card{cardB, cardC}

	// Neither throw card is held concretely, and only one unknown slot
	// exists to cover two needed identities — Hall's condition fails.
	require.False(t, feasible([]cards.Card{cardB, cardC}, hand, fallback))
}

func TestLegalThrowCardsHonorsUnknownSlotFeasibility(t *testing.T) {
	front := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	sameRank := cards.Card{Suit: cards.Diamonds, Rank: cards.Six} // matches the table's front rank
	altSix := cards.Card{Suit: cards.Hearts, Rank: cards.Six}     // never revealed — the fallback identity

	store := knowledge.New()
	store.Reveal(front)

	s := &State{
		NumPlayers: 2,
		Hands: []cards.Hand{
			{
				{Card: sameRank, Visibility: cards.Private},
				{Visibility: cards.Unknown},
			},
			make(cards.Hand, 4), // plenty of capacity for the defender to receive a two-card throw
		},
		TrumpSuit: cards.Spades,
		Store:     store,
		Trick: Trick{
			Attackers:               []int{0},
			Defender:                1,
			CurrentAttacker:         0,
			AttackerToStartThrowing: 0,
			CardsToDefend:           []cards.Card{front},
			Phase:                   PhaseThrowCards,
			DrawOrder:               []int{0, 1},
		},
		CurrentSeat: 0,
	}
	for i := range s.Hands[1] {
		s.Hands[1][i] = cards.Slot{Card: cards.Card{Suit: cards.Clubs, Rank: cards.Rank(i + 1)}, Visibility: cards.Private}
	}

	actions := s.legalThrowCards()
	keys := actionKeys(actions)

	require.Contains(t, keys, NewThrow(nil).Key(), "the empty throw is always legal")
	require.Contains(t, keys, NewThrow([]cards.Card{sameRank}).Key())

	// A two-card throw needs the concrete card plus one identity drawn from
	// the single unknown slot; altSix is unrevealed and not held
	// concretely, so it is a valid fallback match and the throw is feasible.
	require.Contains(t, keys, NewThrow([]cards.Card{sameRank, altSix}).Key())

	// A throw needing two *different* unknown-slot identities cannot be
	// satisfied by a single unknown slot.
	otherSix := cards.Card{Suit: cards.Spades, Rank: cards.Six}
	require.NotContains(t, keys, NewThrow([]cards.Card{altSix, otherSix}).Key())
}

func actionKeys(actions []Action) []string {
	keys := make([]string, len(actions))
	for i, a := range actions {
		keys[i] = a.Key()
	}
	return keys
}
