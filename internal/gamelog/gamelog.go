// Package gamelog persists a finished or in-progress game for later replay
// or inspection — a supplement beyond spec.md's "Persisted state: None"
// (see SPEC_FULL.md §4.I), replacing the teacher's plain-text
// pkg/io/io.go format with JSON, adapted to the Durak action/seat model.
package gamelog

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"

	"github.com/azen-engine/internal/durak"
)

// Entry is one applied action, attributed to the seat that played it.
type Entry struct {
	Seat   int    `json:"seat"`
	Action string `json:"action"`
}

// GameLog records a game's starting configuration and the ordered actions
// applied to it.
type GameLog struct {
	ID          uuid.UUID `json:"id"`
	NumPlayers  int       `json:"num_players"`
	PlayerNames []string  `json:"player_names"`
	TrumpSuit   string    `json:"trump_suit"`
	Entries     []Entry   `json:"entries"`
	LoserSeat   int       `json:"loser_seat"`
	Finished    bool      `json:"finished"`
}

// Record appends one applied action to the log.
func (g *GameLog) Record(seat int, action durak.Action) {
	g.Entries = append(g.Entries, Entry{Seat: seat, Action: action.String()})
}

// Save writes the log to path as JSON.
func (g *GameLog) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a GameLog previously written by Save.
func Load(path string) (*GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g GameLog
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
