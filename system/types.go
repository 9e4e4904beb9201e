// Package system is the single compile entry-point: it takes a
// DeclarativeSystem (a schema plus a list of transition definitions) and
// produces an ExecutableSystem (a compiled validator plus compiled
// transition.Rules) ready to drive exploration and study. One orchestrator,
// BuildGraph-style: Compile(decl, opts...) resolves options, validates the
// declaration against the closed grammar of schema/constraint/effect, and
// wires a neighbor.Generator over the result.
package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/transition"
)

// TransitionDef is one declarative transition rule, the unit Compile turns
// into a transition.Rule: its name, the constraints gating it (split by
// phase at compile time), the effects it applies on success, an optional
// cost function, and opaque metadata carried onto every Result/Successor.
type TransitionDef struct {
	Name        string
	Constraints []constraint.Constraint
	Effects     []effect.Effect
	CostFn      func(state interface{}) float64
	Metadata    map[string]interface{}
}

// DeclarativeSystem is the whole-system input to Compile: a schema the
// working state must always satisfy, plus the transition rules that move
// between states (spec §6: "declarativeSystem = { schema, transitions:
// [...] }").
type DeclarativeSystem struct {
	Schema      schema.Clause
	Transitions []TransitionDef
}

// ExecutableSystem is the compiled, immutable result of Compile: a schema
// validator and a rule list, safe to share across concurrent studies each
// owning its own driver/graph (spec §5: "immutable after compilation and
// may be shared by concurrent studies").
type ExecutableSystem struct {
	Validator schema.Validator
	Rules     []transition.Rule
	Codec     codex.Codec
}

// CompileError reports a malformed declarative input: which transition (by
// name, or index if the name itself is the problem) and why (spec §6:
// "emits CompileError{path, message} on malformed clauses").
type CompileError struct {
	Path    string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("system: compile: %s: %s", e.Path, e.Message)
}

// Option configures Compile.
type Option func(*config)

type config struct {
	logger *zap.Logger
	codec  codex.Codec
}

func defaultConfig() config {
	return config{logger: zap.NewNop(), codec: codex.NewDefault()}
}

// WithLogger installs a *zap.Logger for debug-level compile diagnostics. Logging never participates in control flow (spec §1.2).
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCodec overrides the codec an ExecutableSystem uses for Neighbors/
// Explore/study helpers. Defaults to codex.NewDefault().
func WithCodec(codec codex.Codec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}
