package study

import (
	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
)

// color tracks DFS visitation state, mirroring the white/gray/black
// cycle-detection marking in `dfs.DetectCycles`.
type color int

const (
	white color = iota
	gray
	black
)

// pathStep is one edge on the current DFS path: the rule that produced it
// and its cost, kept alongside the hash it lands on so a detected cycle's
// segment can be sliced out directly.
type pathStep struct {
	hash     codex.Hash
	ruleName string
	cost     float64
}

// DetectCycle runs a three-color depth-first search from initialState and
// returns the first cycle encountered: the sequence of rule names forming
// a closed walk back to a state already on the current path, and its
// summed cost (spec §4.J). Returns (zero, false) if the reachable
// component from initialState is acyclic.
func DetectCycle(gen *neighbor.Generator, codec codex.Codec, initialState interface{}) (CycleResult, bool, error) {
	h0, err := codec.Encode(initialState)
	if err != nil {
		return CycleResult{}, false, err
	}

	state := make(map[codex.Hash]color)
	var path []pathStep
	var outErr error

	res, found := dfsCycle(gen, initialState, h0, state, &path, &outErr)
	if outErr != nil {
		return CycleResult{}, false, outErr
	}
	return res, found, nil
}

func dfsCycle(
	gen *neighbor.Generator,
	s interface{},
	hash codex.Hash,
	state map[codex.Hash]color,
	path *[]pathStep,
	outErr *error,
) (CycleResult, bool) {
	state[hash] = gray

	successors, err := gen.Generate(s)
	if err != nil {
		*outErr = err
		return CycleResult{}, false
	}

	for _, succ := range successors {
		switch state[succ.Hash] {
		case white:
			*path = append(*path, pathStep{hash: succ.Hash, ruleName: succ.RuleName, cost: succ.Cost})
			if res, found := dfsCycle(gen, succ.State, succ.Hash, state, path, outErr); found || *outErr != nil {
				return res, found
			}
			*path = (*path)[:len(*path)-1]
		case gray:
			if succ.Hash == hash {
				// direct self-loop: the cycle is just this one edge.
				return CycleResult{Cycle: []string{succ.RuleName}, Cost: succ.Cost}, true
			}
			return closeCycle(succ.Hash, succ.RuleName, succ.Cost, *path), true
		case black:
			// already fully explored, cannot lead back to an ancestor
		}
	}

	state[hash] = black
	return CycleResult{}, false
}

// closeCycle builds the cycle from the edge leaving closingHash through to
// the current node, plus the closing edge itself. Path entries record the
// hash each edge lands on, so the cycle starts at the entry after the one
// that landed on closingHash, or at the first entry when closingHash is the
// initial state (which no entry lands on).
func closeCycle(closingHash codex.Hash, closingRule string, closingCost float64, path []pathStep) CycleResult {
	start := 0
	for i, step := range path {
		if step.hash == closingHash {
			start = i + 1
			break
		}
	}
	var rules []string
	cost := 0.0
	for _, step := range path[start:] {
		rules = append(rules, step.ruleName)
		cost += step.cost
	}
	rules = append(rules, closingRule)
	cost += closingCost
	return CycleResult{Cycle: rules, Cost: cost}
}
