// Package driver wires policies, an oracle, and the durak executor into the
// driver contract of spec.md §6 (new_game/is_terminal/loser/step), and adds
// the thin orchestration a real repository needs around that contract:
// structured logging of applied actions, engine-invariant error wrapping,
// and an in-memory internal/gamelog transcript callers may persist.
// Nothing in this package is consulted by internal/durak or
// internal/engine — the rules core stays a loggerless library.
package driver

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/azen-engine/internal/durak"
	"github.com/azen-engine/internal/engine"
	"github.com/azen-engine/internal/gamelog"
)

// PlayerConfig is one seat's configuration, per spec.md §6 "Player
// configuration" and the original's per-player Player struct (see
// SPEC_FULL.md "Supplemented features" #2: parameters are per seat, not
// global).
type PlayerConfig struct {
	Name   string
	Policy engine.Policy
}

// Session owns a game in progress: the state, the roster, the shuffle mode,
// the oracle, the shared rng, and a correlation ID for logging.
type Session struct {
	ID      uuid.UUID
	State   *durak.State
	Players []PlayerConfig
	Mode    durak.ShuffleMode
	Oracle  engine.Oracle
	Rng     *rand.Rand
	Log     zerolog.Logger
	GameLog *gamelog.GameLog
}

// NewSession implements the "new_game" driver-contract entry point of
// spec.md §6. It always starts a GameLog alongside the state — recording is
// cheap and in-memory; callers decide whether to persist it via SaveLog.
func NewSession(players []PlayerConfig, startingMainAttacker int, mode durak.ShuffleMode, oracle engine.Oracle, rng *rand.Rand, logger zerolog.Logger) (*Session, error) {
	state, err := durak.NewGame(len(players), startingMainAttacker, mode, rng, oracle)
	if err != nil {
		return nil, errors.Wrap(err, "driver: new_game")
	}
	id := uuid.New()

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	return &Session{
		ID:      id,
		State:   state,
		Players: players,
		Mode:    mode,
		Oracle:  oracle,
		Rng:     rng,
		Log:     logger.With().Str("session", id.String()).Logger(),
		GameLog: &gamelog.GameLog{
			ID:          id,
			NumPlayers:  len(players),
			PlayerNames: names,
			TrumpSuit:   state.TrumpSuit.String(),
		},
	}, nil
}

// IsTerminal implements the "is_terminal" driver-contract entry point.
func (s *Session) IsTerminal() bool { return s.State.Terminal }

// Loser implements the "loser" driver-contract entry point. The second
// return value is false until the game is terminal.
func (s *Session) Loser() (string, bool) {
	if !s.State.Terminal {
		return "", false
	}
	return s.Players[s.State.Loser].Name, true
}

// Step implements the "step" driver-contract entry point of spec.md §6:
// resolves hidden identities for the acting seat when needed (always in
// ComputerShuffle mode, for non-human seats otherwise), asks its policy
// for an action, applies it, and logs the transition.
func (s *Session) Step() error {
	if s.State.Terminal {
		return errors.New("driver: step called on a terminal state")
	}
	seat := s.State.CurrentSeat
	player := s.Players[seat]

	needsReveal := s.Mode == durak.ComputerShuffle || player.Policy.Kind() != engine.Human
	if needsReveal {
		if err := s.State.RevealHand(seat, s.Mode, s.Rng, s.Oracle); err != nil {
			return errors.Wrapf(err, "driver: revealing hand for seat %d", seat)
		}
	}

	action, err := player.Policy.SelectAction(s.State, seat, s.Oracle)
	if err != nil {
		return errors.Wrapf(err, "driver: policy error for seat %d", seat)
	}

	phaseBefore := s.State.Trick.Phase
	if err := s.State.Apply(action); err != nil {
		return errors.Wrapf(err, "driver: applying %s for seat %d", action, seat)
	}
	s.GameLog.Record(seat, action)

	event := s.Log.Debug()
	if phaseBefore != s.State.Trick.Phase || s.State.Terminal {
		event = s.Log.Info()
	}
	event.
		Int("seat", seat).
		Str("action", action.String()).
		Int("phase", int(s.State.Trick.Phase)).
		Bool("terminal", s.State.Terminal).
		Msg("applied action")

	if s.State.Terminal {
		s.GameLog.LoserSeat = s.State.Loser
		s.GameLog.Finished = true
		s.Log.Info().Int("loser_seat", s.State.Loser).Str("loser_name", s.Players[s.State.Loser].Name).Msg("game over")
	}
	return nil
}

// SaveLog persists the session's GameLog to path, per SPEC_FULL.md §4.I.
func (s *Session) SaveLog(path string) error {
	return errors.Wrap(s.GameLog.Save(path), "driver: saving game log")
}

// Run steps the session to completion, returning the loser's name.
func (s *Session) Run() (string, error) {
	for !s.IsTerminal() {
		if err := s.Step(); err != nil {
			return "", err
		}
	}
	name, _ := s.Loser()
	return name, nil
}
