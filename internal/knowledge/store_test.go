package knowledge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azen-engine/internal/cards"
)

func TestNewStoreSeedsAll36(t *testing.T) {
	s := New()
	require.Len(t, s.NonPublic, 36)
	require.Len(t, s.UnknownPool, 36)
}

func TestRevealRemovesFromNonPublic(t *testing.T) {
	s := New()
	c := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	s.Reveal(c)
	_, present := s.NonPublic[c]
	require.False(t, present)
	s.Reveal(c)
	_, present = s.NonPublic[c]
	require.False(t, present)
}

func TestDrawPrivateRemovesFromPoolOnly(t *testing.T) {
	s := New()
	c := cards.Card{Suit: cards.Hearts, Rank: cards.Ace}
	s.DrawPrivate(c)
	require.Len(t, s.UnknownPool, 35)
	_, stillNonPublic := s.NonPublic[c]
	require.True(t, stillNonPublic)
}

func TestSampleRandomWithoutReplacement(t *testing.T) {
	s := New()
	rng := rand.New(rand.NewSource(1))
	seen := make(map[cards.Card]struct{})
	for i := 0; i < 36; i++ {
		c := s.SampleRandom(rng)
		_, dup := seen[c]
		require.False(t, dup, "card %s drawn twice", c)
		seen[c] = struct{}{}
	}
	require.Empty(t, s.UnknownPool)
}

func TestPossibleIdentitiesExcludesViewerConcreteCards(t *testing.T) {
	s := New()
	mine := cards.Card{Suit: cards.Clubs, Rank: cards.Six}
	hand := cards.Hand{{Card: mine, Visibility: cards.Private}}
	poss := s.PossibleIdentities(hand)
	for _, c := range poss {
		require.NotEqual(t, mine, c)
	}
	require.Len(t, poss, 35)
}

func TestCloneIndependence(t *testing.T) {
	s := New()
	clone := s.Clone()
	clone.Reveal(cards.Card{Suit: cards.Clubs, Rank: cards.Six})
	require.Len(t, s.NonPublic, 36)
	require.Len(t, clone.NonPublic, 35)
}
