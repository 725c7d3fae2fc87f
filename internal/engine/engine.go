package engine

import (
	"math/rand"
	"sync"

	"github.com/azen-engine/internal/durak"
)

// Config parameterizes one D-MCTS decision, per spec.md §4.E / §6.
type Config struct {
	Rollouts            int
	Deals               int
	Threads             int
	ExplorationConstant float64
}

// DefaultExplorationConstant is spec.md §6's documented default.
const DefaultExplorationConstant = 0.8

// DefaultConfig returns reasonable defaults grounded in
// original_source/rust_version/src/tools.rs's Player::default()
// (rollouts=1000, deals=10, threads=2, expl_const=0.8).
func DefaultConfig() Config {
	return Config{Rollouts: 1000, Deals: 10, Threads: 2, ExplorationConstant: DefaultExplorationConstant}
}

// rootStat is one root action's aggregated (w, n) tally.
type rootStat struct {
	action durak.Action
	w      float64
	n      int
}

// Eval is the result of a D-MCTS decision: the chosen action plus the full
// ranked candidate list, useful for a confirm-before-commit prompt (see
// SPEC_FULL.md's "Confirm-then-fallback-to-human" supplement).
type Eval struct {
	Best       durak.Action
	Candidates []Candidate
}

// Candidate is one root action's aggregated statistics, exposed for
// display/confirmation purposes.
type Candidate struct {
	Action  durak.Action
	Wins    float64
	Visits  int
	WinRate float64
}

// BestAction runs the full D-MCTS decision procedure of spec.md §4.G for
// viewer's turn in gs, and returns the action with the largest aggregated
// w/n ratio (per §4.G.4 — not the most-visited action).
func BestAction(gs *durak.State, viewer int, cfg Config, rng *rand.Rand) Eval {
	legal := gs.LegalActions()
	if len(legal) == 1 {
		// Supplemented behavior (see SPEC_FULL.md): a single legal action
		// never needs a search budget spent on it.
		return Eval{Best: legal[0], Candidates: []Candidate{{Action: legal[0]}}}
	}

	masked := gs.CloneMaskedFor(viewer)
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	perWorker := cfg.Deals / threads
	extra := cfg.Deals % threads

	seeds := make([]int64, threads)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make([]map[string]rootStat, threads)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		deals := perWorker
		if w < extra {
			deals++
		}
		wg.Add(1)
		go func(idx, deals int, seed int64) {
			defer wg.Done()
			results[idx] = runWorker(masked, deals, cfg.Rollouts, cfg.ExplorationConstant, rand.New(rand.NewSource(seed)))
		}(w, deals, seeds[w])
	}
	wg.Wait()

	total := make(map[string]rootStat)
	for _, r := range results {
		mergeStats(total, r)
	}

	return pickBest(total, legal)
}

// runWorker runs its share of deals sequentially: for each deal, a fresh
// determinization and a fresh tree of rollouts iterations, per spec.md
// §4.G.2-3. Root (w, n) per action across this worker's deals are summed.
func runWorker(masked *durak.State, deals, rollouts int, explorationConstant float64, rng *rand.Rand) map[string]rootStat {
	agg := make(map[string]rootStat)
	for d := 0; d < deals; d++ {
		det := Determinize(masked, rng)
		root := newRoot(det)
		for i := 0; i < rollouts; i++ {
			leaf, loser := selectExpandSimulate(root, rng, explorationConstant)
			backpropagate(leaf, loser)
		}
		for key, ch := range root.children {
			agg[key] = rootStat{action: ch.action, w: agg[key].w + ch.w, n: agg[key].n + ch.n}
		}
	}
	return agg
}

func mergeStats(into map[string]rootStat, from map[string]rootStat) {
	for key, st := range from {
		cur := into[key]
		cur.action = st.action
		cur.w += st.w
		cur.n += st.n
		into[key] = cur
	}
}

// pickBest selects the action with the largest w/n ratio, per spec.md
// §4.G.4. Falls back to the first legal action if, pathologically, no root
// child was ever explored (deals*rollouts too small) — this never changes a
// well-resourced decision, it only prevents a zero-budget search from
// returning an empty Eval.
func pickBest(total map[string]rootStat, legal []durak.Action) Eval {
	candidates := make([]Candidate, 0, len(total))
	var best Candidate
	haveBest := false
	for _, st := range total {
		ratio := 0.0
		if st.n > 0 {
			ratio = st.w / float64(st.n)
		}
		c := Candidate{Action: st.action, Wins: st.w, Visits: st.n, WinRate: ratio}
		candidates = append(candidates, c)
		if !haveBest || ratio > best.WinRate {
			best = c
			haveBest = true
		}
	}
	if !haveBest {
		return Eval{Best: legal[0], Candidates: []Candidate{{Action: legal[0]}}}
	}
	return Eval{Best: best.Action, Candidates: candidates}
}
