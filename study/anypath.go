package study

import (
	"sort"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
)

// SiblingPriorityFunc orders the successors considered at each DFS step,
// lower value first. Nil means declaration order (rule-list order).
type SiblingPriorityFunc func(succ neighbor.Successor) float64

// AnyPathOption configures AnyPath.
type AnyPathOption func(*anyPathConfig)

type anyPathConfig struct {
	maxDepth int // 0 = unbounded
	priority SiblingPriorityFunc
}

// WithMaxDepth bounds the DFS recursion depth.
func WithMaxDepth(d int) AnyPathOption { return func(c *anyPathConfig) { c.maxDepth = d } }

// WithSiblingPriority orders siblings at each DFS step.
func WithSiblingPriority(fn SiblingPriorityFunc) AnyPathOption {
	return func(c *anyPathConfig) { c.priority = fn }
}

// AnyPath performs a recursive depth-first search from initialState,
// suppressing cycles via a visited-in-path set (spec §4.J: "backtracks on
// return"), and returns the first path found to a state satisfying target.
func AnyPath(gen *neighbor.Generator, codec codex.Codec, initialState interface{}, target TargetFunc, opts ...AnyPathOption) (PathResult, bool, error) {
	cfg := anyPathConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	h0, err := codec.Encode(initialState)
	if err != nil {
		return PathResult{}, false, err
	}

	inPath := map[codex.Hash]bool{h0: true}
	var outErr error
	path, cost, found := dfsAnyPath(gen, initialState, h0, target, &cfg, inPath, 0, &outErr)
	if outErr != nil {
		return PathResult{}, false, outErr
	}
	if !found {
		return PathResult{}, false, nil
	}
	return PathResult{Path: path, Cost: cost}, true, nil
}

func dfsAnyPath(
	gen *neighbor.Generator,
	state interface{},
	hash codex.Hash,
	target TargetFunc,
	cfg *anyPathConfig,
	inPath map[codex.Hash]bool,
	depth int,
	outErr *error,
) ([]string, float64, bool) {
	if target(state) {
		return nil, 0, true
	}
	if cfg.maxDepth > 0 && depth >= cfg.maxDepth {
		return nil, 0, false
	}

	successors, err := gen.Generate(state)
	if err != nil {
		*outErr = err
		return nil, 0, false
	}
	if cfg.priority != nil {
		sort.SliceStable(successors, func(i, j int) bool {
			return cfg.priority(successors[i]) < cfg.priority(successors[j])
		})
	}

	for _, succ := range successors {
		if inPath[succ.Hash] {
			continue // cycle suppression
		}
		inPath[succ.Hash] = true
		rest, restCost, found := dfsAnyPath(gen, succ.State, succ.Hash, target, cfg, inPath, depth+1, outErr)
		delete(inPath, succ.Hash) // backtrack
		if *outErr != nil {
			return nil, 0, false
		}
		if found {
			return append([]string{succ.RuleName}, rest...), succ.Cost + restCost, true
		}
	}
	return nil, 0, false
}
