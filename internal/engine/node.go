package engine

import (
	"math"
	"math/rand"

	"github.com/azen-engine/internal/durak"
)

// node is one position in the search tree, per spec.md §4.G.3: w (wins,
// accounted per the convention below), n (visit count), whether it is
// terminal, the action that led here from its parent, the mover at the
// parent (used for backprop credit), and its children/unexplored actions.
type node struct {
	parent     *node
	action     durak.Action
	moverAtParent int
	state      *durak.State
	terminal   bool
	explored   bool
	unexplored []durak.Action
	children   map[string]*node
	w          float64
	n          int
}

func newRoot(state *durak.State) *node {
	return &node{state: state, terminal: state.Terminal, moverAtParent: -1}
}

// selectExpandSimulate descends the tree via UCT until it finds a node that
// is unexpanded, has an unexplored child, or is terminal; expands one action
// if applicable; rolls out uniformly at random to a terminal state; and
// returns the resulting loser, plus the leaf node backpropagation should
// start from.
func selectExpandSimulate(root *node, rng *rand.Rand, explorationConstant float64) (*node, int) {
	cur := root
	for {
		if cur.terminal {
			return cur, cur.state.Loser
		}
		if !cur.explored {
			cur.unexplored = cur.state.LegalActions()
			cur.explored = true
		}
		if len(cur.unexplored) > 0 {
			action := cur.unexplored[0]
			cur.unexplored = cur.unexplored[1:]

			childState := cur.state.Clone()
			_ = childState.Apply(action) // error discarded: action comes from LegalActions on this same state

			child := &node{
				parent:        cur,
				action:        action,
				moverAtParent: cur.state.CurrentSeat,
				state:         childState,
				terminal:      childState.Terminal,
			}
			if cur.children == nil {
				cur.children = make(map[string]*node)
			}
			cur.children[action.Key()] = child

			loser := simulate(childState, rng)
			return child, loser
		}
		next := uctSelect(cur, explorationConstant)
		if next == nil {
			return cur, cur.state.Loser
		}
		cur = next
	}
}

// uctSelect picks the already-visited child maximizing the UCT score of
// spec.md §4.G.3. Unvisited children are handled by the expansion step
// above and are never selected here.
func uctSelect(cur *node, c float64) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, ch := range cur.children {
		if ch.n == 0 {
			continue
		}
		score := ch.w/float64(ch.n) + c*math.Sqrt(math.Log(float64(cur.n)))/math.Sqrt(float64(ch.n))
		if score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}

// simulate rolls out uniformly random legal actions from state until
// terminal, per spec.md §4.G.3 "Simulation", and returns the loser.
func simulate(state *durak.State, rng *rand.Rand) int {
	s := state.Clone()
	for !s.Terminal {
		actions := s.LegalActions()
		a := actions[rng.Intn(len(actions))]
		_ = s.Apply(a)
	}
	return s.Loser
}

// backpropagate walks from leaf to root, incrementing n on every node and
// crediting w per spec.md's "Win accounting convention": a node's w is
// incremented only if the player-to-move *at its parent* (the actor whose
// decision led into this node) is not the loser. The root's n is
// incremented but its w is left untouched, matching spec.md §4.G.4.
func backpropagate(leaf *node, loser int) {
	cur := leaf
	for cur != nil {
		cur.n++
		if cur.parent != nil && cur.moverAtParent != loser {
			cur.w++
		}
		cur = cur.parent
	}
}
