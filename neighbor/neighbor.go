// Package neighbor generates the successors of a state: for each compiled
// transition rule, in rule-list order, invoke the evaluator and yield every
// Success enriched with the destination's codex hash. Iteration order is
// fixed by rule-list order (spec §4.G), and Generate can be called
// repeatedly on the same state — it holds no cross-call state of its own,
// so each call is an independent, restartable pass.
package neighbor

import (
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/transition"
)

// Successor is one successful transition out of a state.
type Successor struct {
	State    interface{}
	Hash     codex.Hash
	RuleName string
	Cost     float64
	Metadata map[string]interface{}
}

// Generator produces the neighbors of a state against a fixed rule list,
// schema validator, and codec.
type Generator struct {
	Validator schema.Validator
	Rules     []transition.Rule
	Codec     codex.Codec
}

// New returns a Generator over the given validator, rule list, and codec.
func New(validator schema.Validator, rules []transition.Rule, codec codex.Codec) *Generator {
	return &Generator{Validator: validator, Rules: rules, Codec: codec}
}

// Generate runs every rule against state in list order and returns the
// successors of those that succeed. It never mutates state or retains it
// beyond the call.
func (g *Generator) Generate(state interface{}) ([]Successor, error) {
	out := make([]Successor, 0, len(g.Rules))
	for _, rule := range g.Rules {
		res := transition.Apply(g.Validator, state, rule)
		if !res.OK {
			continue
		}
		hash, err := g.Codec.Encode(res.SystemState)
		if err != nil {
			return nil, fmt.Errorf("neighbor: encode successor of rule %q: %w", rule.Name, err)
		}
		out = append(out, Successor{
			State:    res.SystemState,
			Hash:     hash,
			RuleName: rule.Name,
			Cost:     res.Cost,
			Metadata: res.Metadata,
		})
	}
	return out, nil
}
