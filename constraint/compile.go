package constraint

import (
	"errors"
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/pathway"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
)

// compiled is one constraint reduced to a closure over its phase and a
// check that reports (allowed, message).
type compiled struct {
	phase Phase
	check func(Event) (bool, string)
}

// Compile reduces constraints into a single Predicate per phase-ordered
// conjunction: every before_transition constraint runs first (in
// declaration order), then every after_transition one. The caller
// (transition.apply) invokes the returned predicates at the appropriate
// point in the evaluation protocol rather than all at once — Compile
// exposes that split directly via CompilePhase.
func Compile(constraints []Constraint) (Predicate, error) {
	all, err := compileAll(constraints)
	if err != nil {
		return nil, err
	}
	ordered := make([]compiled, 0, len(all))
	for _, phase := range []Phase{BeforeTransition, AfterTransition} {
		for _, c := range all {
			if c.phase == phase {
				ordered = append(ordered, c)
			}
		}
	}
	return predicateFor(ordered), nil
}

// CompilePhase compiles only the constraints declared for phase p, in
// declaration order, discarding the rest. Used by the evaluator to run
// before-phase and after-phase gating as two separate steps (spec §4.F).
func CompilePhase(constraints []Constraint, phase Phase) (Predicate, error) {
	all, err := compileAll(constraints)
	if err != nil {
		return nil, err
	}
	var subset []compiled
	for _, c := range all {
		if c.phase == phase {
			subset = append(subset, c)
		}
	}
	return predicateFor(subset), nil
}

func predicateFor(cs []compiled) Predicate {
	return func(e Event) (bool, []string) {
		for _, c := range cs {
			ok, msg := invoke(c, e)
			if !ok {
				return false, []string{msg}
			}
		}
		return true, nil
	}
}

// invoke runs one compiled check, recovering from a panic inside a custom
// predicate and turning it into a failing result (spec §4.F).
func invoke(c compiled, e Event) (ok bool, msg string) {
	defer func() {
		if r := recover(); r != nil {
			ok, msg = false, fmt.Sprintf("panic: %v", r)
		}
	}()
	return c.check(e)
}

func compileAll(constraints []Constraint) ([]compiled, error) {
	out := make([]compiled, 0, len(constraints))
	for i, c := range constraints {
		cc, err := compileOne(c)
		if err != nil {
			return nil, &Error{Index: i, Message: err.Error()}
		}
		out = append(out, cc)
	}
	return out, nil
}

func compileOne(c Constraint) (compiled, error) {
	switch {
	case c.Custom != nil:
		fn := c.Custom
		return compiled{phase: c.Phase, check: func(e Event) (bool, string) {
			allowed, errs := fn(e)
			if allowed {
				return true, ""
			}
			if len(errs) > 0 {
				return false, errs[0]
			}
			return false, "custom constraint rejected the event"
		}}, nil

	case c.IsCost:
		if c.Require == nil {
			return compiled{}, errors.New("cost constraint requires a validation clause")
		}
		validate := schema.Compile(*c.Require)
		return compiled{phase: c.Phase, check: func(e Event) (bool, string) {
			res := validate(e.Cost)
			if res.OK {
				return true, ""
			}
			return false, firstIssue(res)
		}}, nil

	case c.Path != "":
		if c.Require == nil {
			return compiled{}, errors.New("path constraint requires a validation clause")
		}
		p, err := pathway.Parse(c.Path)
		if err != nil {
			return compiled{}, fmt.Errorf("path constraint: %w", err)
		}
		validate := schema.CompileSub(*c.Require)
		path := c.Path
		return compiled{phase: c.Phase, check: func(e Event) (bool, string) {
			target := e.CurrentState
			if c.Phase == AfterTransition {
				target = e.NextState
			}
			v, err := pathway.ValueAt(target, p)
			if err != nil {
				return false, fmt.Sprintf("%s: %v", path, err)
			}
			res := validate(v)
			if res.OK {
				return true, ""
			}
			return false, fmt.Sprintf("%s: %s", path, firstIssue(res))
		}}, nil

	default:
		return compiled{}, errors.New("constraint has no path, cost, or custom operand set")
	}
}

func firstIssue(res schema.Result) string {
	if len(res.Errors) == 0 {
		return "validation failed"
	}
	return res.Errors[0].String()
}
