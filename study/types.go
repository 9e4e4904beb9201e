// Package study implements search plug-ins over a compiled system: optimal
// path (priority-queue search, Dijkstra-style with a user-overridable
// priority and replace rule), any path (depth-first with cycle
// suppression), cycle detection (three-color DFS generalized from
// `dfs.DetectCycles` to Markov-graph hashes), and bounded expansion
// (exhaustive BFS within limits). Every study shares the same neighbor
// generator and evaluator; they differ only in frontier discipline and
// termination.
package study

import (
	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/markov"
)

// TargetFunc reports whether state satisfies a study's stopping condition.
type TargetFunc func(state interface{}) bool

// PathResult is returned by OptimalPath and AnyPath: the sequence of rule
// names applied from the initial state to the target, and its total cost.
// When no path is found, both return ok=false with a zero PathResult.
type PathResult struct {
	Path []string
	Cost float64
}

// CycleResult is returned by DetectCycle: the sequence of rule names
// forming a closed walk back to its own start state, and the summed cost
// of that walk.
type CycleResult struct {
	Cycle []string
	Cost  float64
}

// Profile summarizes a BoundedExpansion run.
type Profile struct {
	TotalStates            int
	TotalTransitions       int
	ElapsedRuleEvaluations int
	AvgBranching           float64
	MaxBranching           int
	MinBranching           int
	Iterations             int
	LimitReached           bool
}

// BoundedResult is returned by BoundedExpansion.
type BoundedResult struct {
	Graph   *markov.Graph
	Profile Profile
}

// Limits bounds a bounded-expansion run, mirroring explore.Limits.
type Limits struct {
	MaxIterations int
	MaxStates     int
}

// node is one entry of BoundedExpansion's FIFO frontier: a state and its
// hash.
type node struct {
	hash  codex.Hash
	state interface{}
}
