// Package markov implements the transition graph a study builds while
// exploring a state space: nodes keyed by codex hashes, edges carrying the
// rule name, cost, and metadata that produced them. It uses a single
// sync.RWMutex guarding both the node and edge maps, the same locking
// granularity `core.Graph` applies to its adjacency structures.
package markov

import (
	"sync"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
)

// Edge is one recorded transition. Edges are keyed by (from, to): there is
// at most one edge per pair, whichever rule produced it.
type Edge struct {
	RuleName string
	Cost     float64
	Metadata map[string]interface{}
}

// Graph is the Markov graph a study owns for the lifetime of one
// exploration. Safe for concurrent use, though the default single-threaded
// driver never needs the concurrency.
type Graph struct {
	mu    sync.RWMutex
	nodes map[codex.Hash]interface{} // hash -> state, state may be nil if not retained
	adj   map[codex.Hash]map[codex.Hash]Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[codex.Hash]interface{}),
		adj:   make(map[codex.Hash]map[codex.Hash]Edge),
	}
}

// AddNode registers hash, optionally retaining its state. Re-adding an
// existing hash is a no-op (spec §4.H: "idempotent add").
func (g *Graph) AddNode(hash codex.Hash, state interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[hash]; exists {
		return
	}
	g.nodes[hash] = state
	g.adj[hash] = make(map[codex.Hash]Edge)
}

// HasNode reports whether hash has been registered.
func (g *Graph) HasNode(hash codex.Hash) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[hash]
	return ok
}

// StateOf returns the state retained for hash, if any.
func (g *Graph) StateOf(hash codex.Hash) (interface{}, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.nodes[hash]
	return s, ok
}

// AddEdge records a transition from -> to. Both endpoints must already be
// registered via AddNode; spec §4.H forbids orphan edges, so this is the
// caller's responsibility, not something AddEdge silently repairs.
// The edge is stored under its destination, so recording a second edge for
// the same (from, to) pair replaces the first: re-adding an identical edge
// is a no-op, and an edge from a different rule (or with different cost or
// metadata) to the same destination overwrites the earlier one.
func (g *Graph) AddEdge(from, to codex.Hash, edge Edge) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out, ok := g.adj[from]
	if !ok {
		out = make(map[codex.Hash]Edge)
		g.adj[from] = out
	}
	out[to] = edge
}

// HasEdge reports whether an edge from -> to exists, regardless of rule.
func (g *Graph) HasEdge(from, to codex.Hash) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, ok := g.adj[from]
	if !ok {
		return false
	}
	_, ok = out[to]
	return ok
}

// EdgesOf returns a snapshot of the outgoing edges from hash, keyed by
// destination. The returned map is a copy; mutating it does not affect g.
func (g *Graph) EdgesOf(hash codex.Hash) map[codex.Hash]Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := g.adj[hash]
	cp := make(map[codex.Hash]Edge, len(out))
	for k, v := range out {
		cp[k] = v
	}
	return cp
}

// Size returns the number of nodes currently registered.
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// TransitionCount returns the total number of recorded edges across all
// nodes.
func (g *Graph) TransitionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	total := 0
	for _, out := range g.adj {
		total += len(out)
	}
	return total
}

// Nodes returns a snapshot slice of every registered hash. Order is
// unspecified; callers that need determinism should sort it themselves.
func (g *Graph) Nodes() []codex.Hash {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]codex.Hash, 0, len(g.nodes))
	for h := range g.nodes {
		out = append(out, h)
	}
	return out
}
