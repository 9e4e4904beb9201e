package transition

import (
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
)

// Apply runs the eight-step evaluation protocol of spec §4.F: compute cost,
// gate on before-phase constraints, apply effects, revalidate against the
// whole-state schema, gate on after-phase constraints, and produce a
// Success or a typed Failure. A rule that fails at a particular state never
// aborts the caller's study; it simply contributes no successor.
func Apply(validate schema.Validator, currentState interface{}, rule Rule) Result {
	cost := 0.0
	if rule.CostFn != nil {
		cost = rule.CostFn(currentState)
	}

	pending := constraint.Event{
		CurrentState: currentState,
		NextState:    currentState,
		RuleName:     rule.Name,
		Cost:         cost,
		Metadata:     rule.Metadata,
	}
	if rule.Before != nil {
		if ok, errs := rule.Before(pending); !ok {
			return failure(rule.Name, ReasonConstraint, errs)
		}
	}

	var nextState interface{}
	if rule.Mutate != nil {
		next, err := rule.Mutate(currentState)
		if err != nil {
			return failure(rule.Name, ReasonEffect, []string{err.Error()})
		}
		nextState = next
	} else {
		nextState = currentState
	}

	if validate != nil {
		res := validate(nextState)
		if !res.OK {
			return failure(rule.Name, ReasonValidation, issueMessages(res))
		}
	}

	settled := constraint.Event{
		CurrentState: currentState,
		NextState:    nextState,
		RuleName:     rule.Name,
		Cost:         cost,
		Metadata:     rule.Metadata,
	}
	if rule.After != nil {
		if ok, errs := rule.After(settled); !ok {
			return failure(rule.Name, ReasonConstraint, errs)
		}
	}

	return Result{
		RuleName:    rule.Name,
		OK:          true,
		SystemState: nextState,
		Cost:        cost,
		Metadata:    rule.Metadata,
	}
}

func failure(ruleName string, reason Reason, errs []string) Result {
	return Result{RuleName: ruleName, OK: false, Reason: reason, Errors: errs}
}

func issueMessages(res schema.Result) []string {
	out := make([]string, len(res.Errors))
	for i, iss := range res.Errors {
		out[i] = iss.String()
	}
	return out
}
