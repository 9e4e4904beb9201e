package system

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/transition"
)

// Compile turns a DeclarativeSystem into an ExecutableSystem: compiles the
// schema once, compiles every transition's constraints (split into before/
// after predicates) and effects, and rejects structurally invalid or
// duplicate-named input with a CompileError (spec §6, Open Question 3).
func Compile(decl DeclarativeSystem, opts ...Option) (*ExecutableSystem, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	validator := schema.Compile(decl.Schema)

	seen := make(map[string]bool, len(decl.Transitions))
	rules := make([]transition.Rule, 0, len(decl.Transitions))

	for i, def := range decl.Transitions {
		if def.Name == "" {
			return nil, &CompileError{Path: indexPath(i), Message: "transition name must not be empty"}
		}
		if seen[def.Name] {
			return nil, &CompileError{Path: def.Name, Message: "duplicate transition name"}
		}
		seen[def.Name] = true

		before, err := constraint.CompilePhase(def.Constraints, constraint.BeforeTransition)
		if err != nil {
			return nil, &CompileError{Path: def.Name, Message: "before constraints: " + err.Error()}
		}
		after, err := constraint.CompilePhase(def.Constraints, constraint.AfterTransition)
		if err != nil {
			return nil, &CompileError{Path: def.Name, Message: "after constraints: " + err.Error()}
		}
		mutate, err := effect.Compile(def.Effects)
		if err != nil {
			return nil, &CompileError{Path: def.Name, Message: "effects: " + err.Error()}
		}

		rules = append(rules, transition.Rule{
			Name:     def.Name,
			Before:   before,
			After:    after,
			Mutate:   mutate,
			CostFn:   def.CostFn,
			Metadata: def.Metadata,
		})
		cfg.logger.Debug("compiled transition", zap.String("name", def.Name))
	}

	return &ExecutableSystem{Validator: validator, Rules: rules, Codec: cfg.codec}, nil
}

// Generator builds a fresh neighbor.Generator over the compiled system,
// the entry point every exploration/study operation is built on.
func (s *ExecutableSystem) Generator() *neighbor.Generator {
	return neighbor.New(s.Validator, s.Rules, s.Codec)
}

func indexPath(i int) string {
	return "transitions[" + strconv.Itoa(i) + "]"
}
