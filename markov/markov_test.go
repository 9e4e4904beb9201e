package markov_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/markov"
)

func TestGraph_AddNodeIdempotent(t *testing.T) {
	g := markov.New()
	g.AddNode(codex.Hash("a"), map[string]interface{}{"x": 1.0})
	g.AddNode(codex.Hash("a"), map[string]interface{}{"x": 999.0})

	assert.Equal(t, 1, g.Size())
	s, ok := g.StateOf(codex.Hash("a"))
	assert.True(t, ok)
	assert.Equal(t, map[string]interface{}{"x": 1.0}, s)
}

func TestGraph_AddEdgeAndQuery(t *testing.T) {
	g := markov.New()
	a, b := codex.Hash("a"), codex.Hash("b")
	g.AddNode(a, nil)
	g.AddNode(b, nil)
	g.AddEdge(a, b, markov.Edge{RuleName: "r1", Cost: 2})

	assert.True(t, g.HasEdge(a, b))
	assert.False(t, g.HasEdge(b, a))
	edges := g.EdgesOf(a)
	assert.Equal(t, markov.Edge{RuleName: "r1", Cost: 2}, edges[b])
	assert.Equal(t, 1, g.TransitionCount())
}

func TestGraph_EdgesOfIsSnapshot(t *testing.T) {
	g := markov.New()
	a, b := codex.Hash("a"), codex.Hash("b")
	g.AddNode(a, nil)
	g.AddNode(b, nil)
	g.AddEdge(a, b, markov.Edge{RuleName: "r"})

	snap := g.EdgesOf(a)
	snap[codex.Hash("c")] = markov.Edge{RuleName: "forged"}
	assert.Equal(t, 1, g.TransitionCount())
}

func TestGraph_HasNodeAndNodes(t *testing.T) {
	g := markov.New()
	assert.False(t, g.HasNode(codex.Hash("x")))
	g.AddNode(codex.Hash("x"), nil)
	assert.True(t, g.HasNode(codex.Hash("x")))
	assert.Len(t, g.Nodes(), 1)
}
