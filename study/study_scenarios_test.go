package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/study"
	"github.com/coffee-fueled-dev/statespace-sub000/transition"
)

// hanoiMove builds a move rule from peg `from` to peg `to`: legal when the
// source peg is non-empty and the destination is either empty or its top
// disk is larger than the source's. The move itself is expressed directly
// against pathway-shaped state rather than the declarative effect
// catalogue, since "pop the top of one array onto another" is a single
// cross-path operation the catalogue's per-path instructions don't name.
func hanoiMove(from, to string) transition.Rule {
	legal := func(e constraint.Event) (bool, []string) {
		pegs := e.CurrentState.(map[string]interface{})
		src := pegs[from].([]interface{})
		if len(src) == 0 {
			return false, []string{from + " is empty"}
		}
		dst := pegs[to].([]interface{})
		if len(dst) > 0 {
			top := src[len(src)-1].(float64)
			dstTop := dst[len(dst)-1].(float64)
			if dstTop < top {
				return false, []string{"destination top is smaller"}
			}
		}
		return true, nil
	}
	mutate := func(s interface{}) (interface{}, error) {
		pegs := s.(map[string]interface{})
		src := append([]interface{}{}, pegs[from].([]interface{})...)
		dst := append([]interface{}{}, pegs[to].([]interface{})...)
		disk := src[len(src)-1]
		src = src[:len(src)-1]
		dst = append(dst, disk)
		next := make(map[string]interface{}, len(pegs))
		for k, v := range pegs {
			next[k] = v
		}
		next[from] = src
		next[to] = dst
		return next, nil
	}
	before, err := constraint.CompilePhase(
		[]constraint.Constraint{{Phase: constraint.BeforeTransition, Custom: legal}},
		constraint.BeforeTransition,
	)
	if err != nil {
		panic(err)
	}
	return transition.Rule{
		Name:   from + "->" + to,
		Before: before,
		Mutate: mutate,
		CostFn: func(interface{}) float64 { return 1 },
	}
}

func hanoiRules() []transition.Rule {
	pegs := []string{"A", "B", "C"}
	var rules []transition.Rule
	for _, from := range pegs {
		for _, to := range pegs {
			if from != to {
				rules = append(rules, hanoiMove(from, to))
			}
		}
	}
	return rules
}

// TestScenario_S1_TowerOfHanoiThreeDisks reproduces spec scenario S1: three
// disks move from peg A to peg C in the minimum 7 moves.
func TestScenario_S1_TowerOfHanoiThreeDisks(t *testing.T) {
	gen := neighbor.New(nil, hanoiRules(), codex.NewRawText())
	initial := map[string]interface{}{
		"A": []interface{}{3.0, 2.0, 1.0},
		"B": []interface{}{},
		"C": []interface{}{},
	}
	target := func(s interface{}) bool {
		m := s.(map[string]interface{})
		return len(m["A"].([]interface{})) == 0 &&
			len(m["B"].([]interface{})) == 0 &&
			len(m["C"].([]interface{})) == 3
	}

	res, ok, err := study.OptimalPath(gen, codex.NewRawText(), initial, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7.0, res.Cost)
	assert.Len(t, res.Path, 7)
}

// shoppingCartRules reproduces spec scenario S2: a three-step checkout
// flow, with addItem capped at 3 items.
func shoppingCartRules(t *testing.T) []transition.Rule {
	t.Helper()

	addItem, err := effect.Compile([]effect.Effect{
		effect.Append("cart.items", "widget"),
		effect.Increment("cart.total", 10),
	})
	require.NoError(t, err)
	addItemGuard, err := constraint.CompilePhase([]constraint.Constraint{{
		Phase: constraint.BeforeTransition, Path: "cart.items",
		Require: &schema.Clause{Kind: schema.KindArray, Array: schema.ArrayOps{
			Length: &schema.ArrayLength{Method: schema.LenLt, Value: 3},
		}},
	}}, constraint.BeforeTransition)
	require.NoError(t, err)

	goToCheckout, err := effect.Compile([]effect.Effect{effect.Set("ui.page", "checkout")})
	require.NoError(t, err)
	goToCheckoutGuard, err := constraint.CompilePhase([]constraint.Constraint{
		{Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
			m := e.CurrentState.(map[string]interface{})
			page := m["ui"].(map[string]interface{})["page"].(string)
			items := m["cart"].(map[string]interface{})["items"].([]interface{})
			if page != "product-list" || len(items) == 0 {
				return false, []string{"checkout not reachable yet"}
			}
			return true, nil
		}},
	}, constraint.BeforeTransition)
	require.NoError(t, err)

	completeCheckout, err := effect.Compile([]effect.Effect{effect.Set("ui.page", "confirmation")})
	require.NoError(t, err)
	completeCheckoutGuard, err := constraint.CompilePhase([]constraint.Constraint{
		{Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
			m := e.CurrentState.(map[string]interface{})
			page := m["ui"].(map[string]interface{})["page"].(string)
			if page != "checkout" {
				return false, []string{"not at checkout"}
			}
			return true, nil
		}},
	}, constraint.BeforeTransition)
	require.NoError(t, err)

	unitCost := func(interface{}) float64 { return 1 }
	return []transition.Rule{
		{Name: "addItem", Before: addItemGuard, Mutate: addItem, CostFn: unitCost},
		{Name: "goToCheckout", Before: goToCheckoutGuard, Mutate: goToCheckout, CostFn: unitCost},
		{Name: "completeCheckout", Before: completeCheckoutGuard, Mutate: completeCheckout, CostFn: unitCost},
	}
}

func TestScenario_S2_ShoppingCart(t *testing.T) {
	gen := neighbor.New(nil, shoppingCartRules(t), codex.NewRawText())
	initial := map[string]interface{}{
		"ui":   map[string]interface{}{"page": "product-list"},
		"cart": map[string]interface{}{"items": []interface{}{}, "total": 0.0},
	}
	target := func(s interface{}) bool {
		m := s.(map[string]interface{})
		return m["ui"].(map[string]interface{})["page"] == "confirmation"
	}

	res, ok, err := study.OptimalPath(gen, codex.NewRawText(), initial, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"addItem", "goToCheckout", "completeCheckout"}, res.Path)
	assert.Equal(t, 3.0, res.Cost)
}

// apiPostsRules reproduces spec scenario S3: a loading flag gates a
// fetch-then-settle round trip, modeling the two network-bound rule
// applications a real fetch would need without an actual network call.
func apiPostsRules(t *testing.T) []transition.Rule {
	t.Helper()

	startFetch, err := effect.Compile([]effect.Effect{effect.Set("frontend.loading", true)})
	require.NoError(t, err)
	startGuard, err := constraint.CompilePhase([]constraint.Constraint{
		{Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
			m := e.CurrentState.(map[string]interface{})["frontend"].(map[string]interface{})
			if m["loading"].(bool) || len(m["posts"].([]interface{})) > 0 {
				return false, []string{"fetch already in flight or done"}
			}
			return true, nil
		}},
	}, constraint.BeforeTransition)
	require.NoError(t, err)

	settleFetch, err := effect.Compile([]effect.Effect{
		effect.Append("frontend.posts", "post-1"),
		effect.Set("frontend.loading", false),
	})
	require.NoError(t, err)
	settleGuard, err := constraint.CompilePhase([]constraint.Constraint{
		{Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
			m := e.CurrentState.(map[string]interface{})["frontend"].(map[string]interface{})
			if !m["loading"].(bool) {
				return false, []string{"no fetch in flight"}
			}
			return true, nil
		}},
	}, constraint.BeforeTransition)
	require.NoError(t, err)

	unitCost := func(interface{}) float64 { return 1 }
	return []transition.Rule{
		{Name: "startFetch", Before: startGuard, Mutate: startFetch, CostFn: unitCost},
		{Name: "settleFetch", Before: settleGuard, Mutate: settleFetch, CostFn: unitCost},
	}
}

func TestScenario_S3_APIPostsWorkflow(t *testing.T) {
	gen := neighbor.New(nil, apiPostsRules(t), codex.NewRawText())
	initial := map[string]interface{}{
		"frontend": map[string]interface{}{"posts": []interface{}{}, "loading": false},
	}
	target := func(s interface{}) bool {
		m := s.(map[string]interface{})["frontend"].(map[string]interface{})
		return len(m["posts"].([]interface{})) > 0 && !m["loading"].(bool)
	}

	res, ok, err := study.OptimalPath(gen, codex.NewRawText(), initial, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"startFetch", "settleFetch"}, res.Path)
	assert.Equal(t, 2.0, res.Cost)
}

// TestScenario_S4_BoundedHanoiFour reproduces spec scenario S4: Hanoi with
// 4 disks has exactly 3^4 = 81 reachable states, with average branching
// bounded by 3 (every state has at most 3 legal moves).
func TestScenario_S4_BoundedHanoiFour(t *testing.T) {
	gen := neighbor.New(nil, hanoiRules(), codex.NewRawText())
	initial := map[string]interface{}{
		"A": []interface{}{4.0, 3.0, 2.0, 1.0},
		"B": []interface{}{},
		"C": []interface{}{},
	}

	res, err := study.BoundedExpansion(gen, codex.NewRawText(), initial, study.Limits{})
	require.NoError(t, err)
	assert.Equal(t, 81, res.Profile.TotalStates)
	assert.LessOrEqual(t, res.Profile.AvgBranching, 3.0)
}

// TestScenario_S5_CycleDetectionOnFlip reproduces spec scenario S5: a
// two-state system toggled by a single "flip" rule detects a cycle
// ["flip", "flip"] from the initial state.
func TestScenario_S5_CycleDetectionOnFlip(t *testing.T) {
	flip, err := effect.Compile([]effect.Effect{
		effect.TransformFn("on", func(cur, _ interface{}) (interface{}, error) { return !cur.(bool), nil }),
	})
	require.NoError(t, err)
	rules := []transition.Rule{{Name: "flip", Mutate: flip}}
	gen := neighbor.New(nil, rules, codex.NewRawText())

	res, ok, err := study.DetectCycle(gen, codex.NewRawText(), map[string]interface{}{"on": false})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"flip", "flip"}, res.Cycle)
}
