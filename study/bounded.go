package study

import (
	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/markov"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
)

// BoundedExpansion runs a breadth-first search to exhaustion within limits,
// returning the resulting Markov graph and a branching-factor profile
// (spec §4.J: "BFS to exhaustion within limits. Returns counts and the
// Markov graph"). Unlike explore.Explore, it has no hooks — it exists
// purely to characterize the reachable state space, and tracks the
// supplemented ElapsedRuleEvaluations counter (every apply attempt,
// success or failure) alongside the successes-only TotalTransitions.
func BoundedExpansion(gen *neighbor.Generator, codec codex.Codec, initialState interface{}, limits Limits) (BoundedResult, error) {
	h0, err := codec.Encode(initialState)
	if err != nil {
		return BoundedResult{}, err
	}

	graph := markov.New()
	graph.AddNode(h0, initialState)

	queue := []node{{hash: h0, state: initialState}}
	visited := map[codex.Hash]bool{h0: true}

	profile := Profile{}
	var branchFactors []int

	for len(queue) > 0 {
		if limits.MaxIterations > 0 && profile.Iterations >= limits.MaxIterations {
			profile.LimitReached = true
			break
		}

		current := queue[0]
		queue = queue[1:]
		profile.Iterations++

		successors, err := gen.Generate(current.state)
		if err != nil {
			return BoundedResult{}, err
		}
		profile.ElapsedRuleEvaluations += len(gen.Rules)
		branchFactors = append(branchFactors, len(successors))

		limitHit := false
		for _, succ := range successors {
			if limits.MaxStates > 0 && len(visited) >= limits.MaxStates && !visited[succ.Hash] {
				limitHit = true
				break
			}
			isNew := !visited[succ.Hash]
			if isNew {
				graph.AddNode(succ.Hash, succ.State)
				visited[succ.Hash] = true
				queue = append(queue, node{hash: succ.Hash, state: succ.State})
			}
			graph.AddEdge(current.hash, succ.Hash, markov.Edge{RuleName: succ.RuleName, Cost: succ.Cost, Metadata: succ.Metadata})
		}
		if limitHit {
			profile.LimitReached = true
			break
		}
	}

	profile.TotalStates = graph.Size()
	profile.TotalTransitions = graph.TransitionCount()
	profile.MinBranching, profile.MaxBranching, profile.AvgBranching = branchingStats(branchFactors)
	return BoundedResult{Graph: graph, Profile: profile}, nil
}

func branchingStats(factors []int) (min, max int, avg float64) {
	if len(factors) == 0 {
		return 0, 0, 0
	}
	min, max = factors[0], factors[0]
	sum := 0
	for _, f := range factors {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
		sum += f
	}
	return min, max, float64(sum) / float64(len(factors))
}
