package stdio

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/durak"
)

func newOracleWithInput(input string) *Oracle {
	return &Oracle{scanner: bufio.NewScanner(strings.NewReader(input))}
}

func TestInputCardParsesValidNotation(t *testing.T) {
	o := newOracleWithInput("6c\n")
	c, err := o.InputCard(nil)
	require.NoError(t, err)
	require.Equal(t, cards.Card{Suit: cards.Clubs, Rank: cards.Six}, c)
}

func TestInputCardRejectsCardOutsidePossibleSet(t *testing.T) {
	possible := []cards.Card{{Suit: cards.Hearts, Rank: cards.Ace}}
	o := newOracleWithInput("6c\nAh\n")
	c, err := o.InputCard(possible)
	require.NoError(t, err)
	require.Equal(t, possible[0], c)
}

func TestChooseActionParsesOneBasedIndex(t *testing.T) {
	legal := []durak.Action{{Tag: durak.Take}, {Tag: durak.PassAttack}}
	o := newOracleWithInput("2\n")
	idx, err := o.ChooseAction(legal, "state")
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestConfirmAcceptsYes(t *testing.T) {
	o := newOracleWithInput("y\n")
	ok, err := o.Confirm("proceed?")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConfirmRejectsOther(t *testing.T) {
	o := newOracleWithInput("n\n")
	ok, err := o.Confirm("proceed?")
	require.NoError(t, err)
	require.False(t, ok)
}
