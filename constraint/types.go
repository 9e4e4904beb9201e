// Package constraint compiles the constraint vocabulary of spec §3.4D into
// a single conjunctive predicate over a transition event. The three
// constraint kinds — path, cost, and custom — are compiled independently
// and combined with explicit short-circuit: the first failing constraint
// reports its message and the rest are never evaluated, mirroring the
// validate-edges-before-running-the-algorithm ordering the `flow` package
// uses.
package constraint

import (
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/schema"
)

// Phase selects whether a constraint is evaluated against the pending event
// before effects are applied, or against the settled event afterward.
type Phase int

const (
	BeforeTransition Phase = iota
	AfterTransition
)

func (p Phase) String() string {
	if p == AfterTransition {
		return "after_transition"
	}
	return "before_transition"
}

// Event is the value constraint predicates and custom functions observe.
// Before-phase evaluation presents NextState == CurrentState (spec §3:
// "Before-phase evaluations see nextState == currentState").
type Event struct {
	CurrentState interface{}
	NextState    interface{}
	RuleName     string
	Cost         float64
	Metadata     map[string]interface{}
}

// CustomFunc is a user-supplied predicate for the "custom" constraint kind.
// A panic inside fn is recovered by Compile and converted into a failing
// result (spec §4.F: "exceptions ... are captured and converted to
// Failure{reason=constraint}").
type CustomFunc func(Event) (allowed bool, errs []string)

// Constraint is one declarative constraint attached to a transition rule.
// Exactly one of Path, IsCost, Custom should be set; Compile dispatches on
// which fields are set, checking Custom first, then IsCost, then Path.
type Constraint struct {
	Phase Phase

	// Path constraint: read Path from the event's current/next state
	// (per Phase) and validate it against Require.
	Path    string
	Require *schema.Clause

	// Cost constraint: validate Event.Cost against Require (number clause).
	IsCost bool

	// Custom constraint: invoke Custom directly on the event.
	Custom CustomFunc
}

// Predicate is a compiled constraint (or conjunction of constraints): given
// an event, report whether it is allowed and, if not, why.
type Predicate func(Event) (bool, []string)

// Error is returned by Compile when a Constraint is structurally malformed
// (e.g. a path constraint with a nil Require, or a kind with no operand
// set at all).
type Error struct {
	Index   int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("constraint: constraint %d: %s", e.Index, e.Message)
}
