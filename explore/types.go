// Package explore drives the exploration of a state space: starting from
// one initial state, it repeatedly consumes the neighbor generator,
// records transitions into a Markov graph, and stops on exhaustion or a
// configured limit. Its walker/loop structure mirrors the `bfs` package's,
// generalized from graph vertices to codex-hashed states.
package explore

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
)

// ExitReason reports why explore stopped.
type ExitReason int

const (
	ExitCompleted ExitReason = iota
	ExitMaxIterations
	ExitMaxStates
	ExitUserCancelled
)

func (r ExitReason) String() string {
	switch r {
	case ExitMaxIterations:
		return "maxIterations"
	case ExitMaxStates:
		return "maxStates"
	case ExitUserCancelled:
		return "userExit"
	default:
		return "completed"
	}
}

// Limits bounds a single exploration run (spec §4.I).
type Limits struct {
	MaxIterations int // 0 = unlimited
	MaxStates     int // 0 = unlimited
}

// TransitionEvent is passed to OnTransition for every edge the driver
// records, whether or not its destination was already visited.
type TransitionEvent struct {
	FromHash codex.Hash
	ToHash   codex.Hash
	RuleName string
	Cost     float64
	Metadata map[string]interface{}
	IsNew    bool
}

// Cancel, returned from a hook, cooperatively stops the driver (spec §5:
// "A running study can be cooperatively stopped by returning from a hook
// with a cancellation marker").
var Cancel = errors.New("explore: cancel")

// Hooks are invoked synchronously before the driver commits a new node to
// its visited set; they must not mutate the graph (spec §5).
type Hooks struct {
	// OnTransition fires for every edge, new destination or not. Returning
	// Cancel stops the study with ExitUserCancelled.
	OnTransition func(TransitionEvent) error

	// OnCycleDetected fires when a neighbor re-encounters an already
	// visited hash (spec: "cycle = a re-encounter").
	OnCycleDetected func(from, to codex.Hash, ruleName string)
}

// Option configures a Driver.
type Option func(*config)

type config struct {
	limits Limits
	hooks  Hooks
	ctx    context.Context
	logger *zap.Logger
}

// DefaultOptions returns the zero-value-safe defaults: unlimited (limits
// both 0), no-op hooks, background context, no-op logger.
func DefaultOptions() config {
	return config{
		limits: Limits{},
		hooks: Hooks{
			OnTransition:    func(TransitionEvent) error { return nil },
			OnCycleDetected: func(codex.Hash, codex.Hash, string) {},
		},
		ctx:    context.Background(),
		logger: zap.NewNop(),
	}
}

// WithLimits sets the iteration/state bounds.
func WithLimits(l Limits) Option { return func(c *config) { c.limits = l } }

// WithHooks installs the transition/cycle hooks.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		if h.OnTransition != nil {
			c.hooks.OnTransition = h.OnTransition
		}
		if h.OnCycleDetected != nil {
			c.hooks.OnCycleDetected = h.OnCycleDetected
		}
	}
}

// WithContext sets a cancellation context for the driver's loop.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithLogger installs a structured logger; defaults to zap.NewNop(). The
// logger is kept in the driver's configuration; Explore writes no log
// entries through it.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Profile summarizes one completed or truncated exploration.
type Profile struct {
	TotalStates      int
	TotalTransitions int
	Iterations       int
	ExitReason       ExitReason
}
