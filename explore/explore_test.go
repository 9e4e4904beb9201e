package explore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/explore"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/transition"
)

func ptrFloat(f float64) *float64 { return &f }

// counterRules returns two rules over {"n": number}: "inc" adds 1 (gated to
// stop at 3), "dec" subtracts 1 (gated to stop at 0) — enough structure to
// exercise branching, revisits, and limits without a worked-example package.
func counterRules(t *testing.T) []transition.Rule {
	t.Helper()
	inc, err := effect.Compile([]effect.Effect{effect.Increment("n", 1)})
	require.NoError(t, err)
	dec, err := effect.Compile([]effect.Effect{effect.Decrement("n", 1)})
	require.NoError(t, err)

	incGuard, err := constraint.CompilePhase([]constraint.Constraint{{
		Phase: constraint.BeforeTransition, Path: "n",
		Require: &schema.Clause{Kind: schema.KindNumber, Number: schema.NumberOps{Lt: ptrFloat(3)}},
	}}, constraint.BeforeTransition)
	require.NoError(t, err)
	decGuard, err := constraint.CompilePhase([]constraint.Constraint{{
		Phase: constraint.BeforeTransition, Path: "n",
		Require: &schema.Clause{Kind: schema.KindNumber, Number: schema.NumberOps{Gt: ptrFloat(0)}},
	}}, constraint.BeforeTransition)
	require.NoError(t, err)

	return []transition.Rule{
		{Name: "inc", Before: incGuard, Mutate: inc},
		{Name: "dec", Before: decGuard, Mutate: dec},
	}
}

func TestDriver_Neighbors(t *testing.T) {
	gen := neighbor.New(nil, counterRules(t), codex.NewRawText())
	d := explore.NewDriver(gen, codex.NewRawText())

	out, err := d.Neighbors(map[string]interface{}{"n": 1.0})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "inc", out[0].RuleName)
	assert.Equal(t, "dec", out[1].RuleName)
}

func TestDriver_Explore_CompletesAndDetectsCycles(t *testing.T) {
	gen := neighbor.New(nil, counterRules(t), codex.NewRawText())
	d := explore.NewDriver(gen, codex.NewRawText())

	var cycles int
	graph, profile, err := d.Explore(map[string]interface{}{"n": 1.0}, explore.WithHooks(explore.Hooks{
		OnCycleDetected: func(from, to codex.Hash, rule string) { cycles++ },
	}))
	require.NoError(t, err)
	assert.Equal(t, explore.ExitCompleted, profile.ExitReason)
	assert.Equal(t, 4, graph.Size()) // n ranges over 0,1,2,3
	assert.Greater(t, cycles, 0)     // inc then dec (or vice versa) revisits a state
}

func TestDriver_Explore_HonorsMaxIterations(t *testing.T) {
	gen := neighbor.New(nil, counterRules(t), codex.NewRawText())
	d := explore.NewDriver(gen, codex.NewRawText())

	_, profile, err := d.Explore(map[string]interface{}{"n": 1.0},
		explore.WithLimits(explore.Limits{MaxIterations: 1}))
	require.NoError(t, err)
	assert.Equal(t, explore.ExitMaxIterations, profile.ExitReason)
	assert.LessOrEqual(t, profile.Iterations, 1)
}

func TestDriver_Explore_UserCancelViaHook(t *testing.T) {
	gen := neighbor.New(nil, counterRules(t), codex.NewRawText())
	d := explore.NewDriver(gen, codex.NewRawText())

	_, profile, err := d.Explore(map[string]interface{}{"n": 1.0}, explore.WithHooks(explore.Hooks{
		OnTransition: func(explore.TransitionEvent) error { return explore.Cancel },
	}))
	require.NoError(t, err)
	assert.Equal(t, explore.ExitUserCancelled, profile.ExitReason)
}
