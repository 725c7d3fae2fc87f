package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandRemoveConcrete(t *testing.T) {
	c := Card{Suit: Clubs, Rank: Six}
	h := Hand{{Card: c, Visibility: Private}, {Visibility: Unknown}}
	require.True(t, h.HasConcrete(c))
	require.True(t, h.RemoveConcrete(c))
	require.False(t, h.HasConcrete(c))
	require.Equal(t, 1, h.Count())
}

func TestHandRemoveEitherPrefersConcrete(t *testing.T) {
	c := Card{Suit: Hearts, Rank: King}
	h := Hand{{Visibility: Unknown}, {Card: c, Visibility: Private}}
	require.True(t, h.RemoveEither(c))
	require.Equal(t, 1, h.Count())
	require.Equal(t, Unknown, h[0].Visibility)
}

func TestHandRemoveEitherFallsBackToUnknown(t *testing.T) {
	c := Card{Suit: Hearts, Rank: King}
	h := Hand{{Visibility: Unknown}, {Card: Card{Suit: Spades, Rank: Ace}, Visibility: Private}}
	require.True(t, h.RemoveEither(c))
	require.Equal(t, 1, h.Count())
	require.True(t, h[0].Resolved())
}

func TestHandCloneIndependence(t *testing.T) {
	h := Hand{{Card: Card{Suit: Clubs, Rank: Six}, Visibility: Private}}
	clone := h.Clone()
	clone.RemoveConcrete(Card{Suit: Clubs, Rank: Six})
	require.Equal(t, 1, h.Count())
	require.Equal(t, 0, clone.Count())
}

func TestCountUnknown(t *testing.T) {
	h := Hand{{Visibility: Unknown}, {Visibility: Unknown}, {Card: Card{Suit: Clubs, Rank: Six}, Visibility: Public}}
	require.Equal(t, 2, h.CountUnknown())
	require.Len(t, h.ConcreteCards(), 1)
}
