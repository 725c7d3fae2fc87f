package engine

import (
	"math/rand"

	"github.com/azen-engine/internal/durak"
)

// Kind identifies one of the three policy variants of spec.md §4.E.
type Kind int8

const (
	Random Kind = iota
	Human
	DMCTS
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "random"
	case Human:
		return "human"
	case DMCTS:
		return "dmcts"
	default:
		return "?"
	}
}

// Oracle is the minimal set of human-facing operations the core consults,
// per spec.md §6. Concrete implementations (terminal prompts, GUIs) are
// explicitly out of scope for the core.
type Oracle interface {
	durak.BottomCardSource
	ChooseAction(legal []durak.Action, displayState string) (int, error)
	Confirm(text string) (bool, error)
}

// Policy maps (state, player) to an action.
type Policy interface {
	Kind() Kind
	SelectAction(gs *durak.State, player int, oracle Oracle) (durak.Action, error)
}

// RandomPolicy picks uniformly among the legal actions.
type RandomPolicy struct {
	Rng *rand.Rand
}

func (RandomPolicy) Kind() Kind { return Random }

func (p RandomPolicy) SelectAction(gs *durak.State, player int, _ Oracle) (durak.Action, error) {
	legal := gs.LegalActions()
	return legal[p.Rng.Intn(len(legal))], nil
}

// HumanPolicy defers entirely to the oracle.
type HumanPolicy struct{}

func (HumanPolicy) Kind() Kind { return Human }

func (HumanPolicy) SelectAction(gs *durak.State, player int, oracle Oracle) (durak.Action, error) {
	legal := gs.LegalActions()
	idx, err := oracle.ChooseAction(legal, DisplayState(gs, player))
	if err != nil {
		return durak.Action{}, err
	}
	return legal[idx], nil
}

// DMCTSPolicy runs the D-MCTS search of spec.md §4.G, optionally confirming
// with the oracle before committing (spec.md §6's Confirm field; behavior
// supplemented in SPEC_FULL.md from the Rust original's choose_action).
type DMCTSPolicy struct {
	Config  Config
	Rng     *rand.Rand
	Confirm bool
}

func (DMCTSPolicy) Kind() Kind { return DMCTS }

func (p DMCTSPolicy) SelectAction(gs *durak.State, player int, oracle Oracle) (durak.Action, error) {
	eval := BestAction(gs, player, p.Config, p.Rng)
	if !p.Confirm || oracle == nil {
		return eval.Best, nil
	}
	ok, err := oracle.Confirm(DisplayCandidates(eval))
	if err != nil {
		return durak.Action{}, err
	}
	if ok {
		return eval.Best, nil
	}
	legal := gs.LegalActions()
	idx, err := oracle.ChooseAction(legal, DisplayState(gs, player))
	if err != nil {
		return durak.Action{}, err
	}
	return legal[idx], nil
}
