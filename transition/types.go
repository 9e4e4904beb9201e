// Package transition implements the evaluator that orchestrates
// constraint gating, effect application, and schema revalidation for one
// rule applied to one state (spec §4.F's apply algorithm).
package transition

import (
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
)

// Reason classifies why a transition attempt did not succeed.
type Reason int

const (
	ReasonConstraint Reason = iota
	ReasonEffect
	ReasonValidation
)

func (r Reason) String() string {
	switch r {
	case ReasonEffect:
		return "effect"
	case ReasonValidation:
		return "validation"
	default:
		return "constraint"
	}
}

// Rule is the compiled form of one declarative transition rule: a
// before-phase predicate, an after-phase predicate, a mutator, and a cost
// function, all produced once at system-compile time and reused across
// every state the study visits.
type Rule struct {
	Name     string
	Before   constraint.Predicate
	After    constraint.Predicate
	Mutate   effect.Mutator
	CostFn   func(state interface{}) float64
	Metadata map[string]interface{}
}

// Result is the Success/Failure union spec §3 describes.
type Result struct {
	RuleName    string
	OK          bool
	SystemState interface{}
	Cost        float64
	Metadata    map[string]interface{}

	Reason Reason
	Errors []string
}
