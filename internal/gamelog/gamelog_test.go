package gamelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/azen-engine/internal/durak"
)

func TestRecordAppendsEntry(t *testing.T) {
	g := &GameLog{ID: uuid.New(), NumPlayers: 2, PlayerNames: []string{"a", "b"}}
	g.Record(0, durak.Action{Tag: durak.Attack})
	require.Len(t, g.Entries, 1)
	require.Equal(t, 0, g.Entries[0].Seat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := &GameLog{
		ID:          uuid.New(),
		NumPlayers:  2,
		PlayerNames: []string{"alice", "bob"},
		TrumpSuit:   "♥",
		LoserSeat:   1,
		Finished:    true,
	}
	g.Record(0, durak.Action{Tag: durak.Take})
	g.Record(1, durak.Action{Tag: durak.PassAttack})

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, g.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, g.ID, loaded.ID)
	require.Equal(t, g.PlayerNames, loaded.PlayerNames)
	require.Equal(t, g.Entries, loaded.Entries)
	require.True(t, loaded.Finished)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err) || err != nil)
}
