package study

import (
	"container/heap"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
)

// PriorityFunc overrides the default accumulated-cost ordering, enabling
// A* when it folds in a user heuristic. Receives the accumulated cost and
// the candidate state.
type PriorityFunc func(accumulatedCost float64, state interface{}) float64

// ShouldReplaceFunc decides whether a newly discovered cost for an
// already-queued node replaces the previous best (default: strictly
// lower).
type ShouldReplaceFunc func(oldCost, newCost float64) bool

// OptimalPathOption configures OptimalPath.
type OptimalPathOption func(*optimalPathConfig)

type optimalPathConfig struct {
	priority      PriorityFunc
	shouldReplace ShouldReplaceFunc
}

func defaultOptimalPathConfig() optimalPathConfig {
	return optimalPathConfig{
		priority:      func(cost float64, _ interface{}) float64 { return cost },
		shouldReplace: func(oldCost, newCost float64) bool { return newCost < oldCost },
	}
}

// WithPriority overrides the priority function used to order the frontier.
func WithPriority(fn PriorityFunc) OptimalPathOption {
	return func(c *optimalPathConfig) {
		if fn != nil {
			c.priority = fn
		}
	}
}

// WithShouldReplace overrides the edge-relaxation replace rule.
func WithShouldReplace(fn ShouldReplaceFunc) OptimalPathOption {
	return func(c *optimalPathConfig) {
		if fn != nil {
			c.shouldReplace = fn
		}
	}
}

// pqItem is one entry in the optimal-path priority queue: the state's
// identity, its accumulated cost, and the rule-name path taken to reach
// it. Like `dijkstra`'s nodeItem, stale entries are pushed
// rather than updated in place ("lazy decrease-key"); they are ignored
// when popped if a better cost has since been recorded.
type pqItem struct {
	hash     codex.Hash
	state    interface{}
	cost     float64
	priority float64
	path     []string
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// OptimalPath runs a priority-queue search from initialState until it
// dequeues a state satisfying target, relaxing edges per cfg.shouldReplace
// (spec §4.J). Returns (result, true) on success, (zero, false) if the
// frontier empties with no target reached.
func OptimalPath(gen *neighbor.Generator, codec codex.Codec, initialState interface{}, target TargetFunc, opts ...OptimalPathOption) (PathResult, bool, error) {
	cfg := defaultOptimalPathConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h0, err := codec.Encode(initialState)
	if err != nil {
		return PathResult{}, false, err
	}

	best := map[codex.Hash]float64{h0: 0}
	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{hash: h0, state: initialState, cost: 0, priority: cfg.priority(0, initialState), path: nil})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if c, ok := best[item.hash]; ok && item.cost > c {
			continue // stale lazy-decrease-key entry
		}
		if target(item.state) {
			return PathResult{Path: item.path, Cost: item.cost}, true, nil
		}

		successors, err := gen.Generate(item.state)
		if err != nil {
			return PathResult{}, false, err
		}
		for _, succ := range successors {
			newCost := item.cost + succ.Cost
			oldCost, seen := best[succ.Hash]
			if !seen || cfg.shouldReplace(oldCost, newCost) {
				best[succ.Hash] = newCost
				path := append(append([]string{}, item.path...), succ.RuleName)
				heap.Push(pq, &pqItem{
					hash:     succ.Hash,
					state:    succ.State,
					cost:     newCost,
					priority: cfg.priority(newCost, succ.State),
					path:     path,
				})
			}
		}
	}
	return PathResult{}, false, nil
}
