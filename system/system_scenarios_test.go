package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/constraint"
	"github.com/coffee-fueled-dev/statespace-sub000/effect"
	"github.com/coffee-fueled-dev/statespace-sub000/schema"
	"github.com/coffee-fueled-dev/statespace-sub000/study"
	"github.com/coffee-fueled-dev/statespace-sub000/system"
)

// hanoiTransitionDef mirrors the study package's hanoiMove scenario rule,
// but expressed as a declarative system.TransitionDef compiled through
// system.Compile rather than assembled from raw transition.Rule values.
func hanoiTransitionDef(from, to string) system.TransitionDef {
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
	moveTransform := effect.TransformFn(from, func(cur, curState interface{}) (interface{}, error) {
		// Only truncates the source peg; the destination append is the first
		// effect in the list below, which reads the top disk from the source
		// peg of the state it is handed, before this truncation runs.
		src := cur.([]interface{})
		return src[:len(src)-1], nil
	})
	return system.TransitionDef{
		Name:        from + "->" + to,
		Constraints: []constraint.Constraint{{Phase: constraint.BeforeTransition, Custom: legal}},
		Effects: []effect.Effect{
			effect.TransformFn(to, func(cur, curState interface{}) (interface{}, error) {
				pegs := curState.(map[string]interface{})
				src := pegs[from].([]interface{})
				disk := src[len(src)-1]
				dst := append(append([]interface{}{}, cur.([]interface{})...), disk)
				return dst, nil
			}),
			moveTransform,
		},
		CostFn: func(interface{}) float64 { return 1 },
	}
}

func hanoiDecl() system.DeclarativeSystem {
	pegs := []string{"A", "B", "C"}
	var defs []system.TransitionDef
	for _, from := range pegs {
		for _, to := range pegs {
			if from != to {
				defs = append(defs, hanoiTransitionDef(from, to))
			}
		}
	}
	return system.DeclarativeSystem{Schema: permissiveSchema(), Transitions: defs}
}

// TestScenario_S1_TowerOfHanoiViaSystemCompile reproduces spec scenario S1
// through the full system.Compile orchestration entrypoint: three disks
// move from peg A to peg C in the minimum 7 moves.
func TestScenario_S1_TowerOfHanoiViaSystemCompile(t *testing.T) {
	sys, err := system.Compile(hanoiDecl(), system.WithCodec(codex.NewRawText()))
	require.NoError(t, err)

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

	res, ok, err := study.OptimalPath(sys.Generator(), sys.Codec, initial, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7.0, res.Cost)
}

// TestScenario_S2_ShoppingCartViaSystemCompile reproduces spec scenario S2
// through system.Compile: addItem (capped at 3) / goToCheckout /
// completeCheckout, optimal path cost 3.
func TestScenario_S2_ShoppingCartViaSystemCompile(t *testing.T) {
	decl := system.DeclarativeSystem{
		Schema: permissiveSchema(),
		Transitions: []system.TransitionDef{
			{
				Name: "addItem",
				Constraints: []constraint.Constraint{{
					Phase: constraint.BeforeTransition, Path: "cart.items",
					Require: &schema.Clause{Kind: schema.KindArray, Array: schema.ArrayOps{
						Length: &schema.ArrayLength{Method: schema.LenLt, Value: 3},
					}},
				}},
				Effects: []effect.Effect{
					effect.Append("cart.items", "widget"),
					effect.Increment("cart.total", 10),
				},
				CostFn: func(interface{}) float64 { return 1 },
			},
			{
				Name: "goToCheckout",
				Constraints: []constraint.Constraint{{
					Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
						m := e.CurrentState.(map[string]interface{})
						page := m["ui"].(map[string]interface{})["page"].(string)
						items := m["cart"].(map[string]interface{})["items"].([]interface{})
						if page != "product-list" || len(items) == 0 {
							return false, []string{"checkout not reachable yet"}
						}
						return true, nil
					},
				}},
				Effects: []effect.Effect{effect.Set("ui.page", "checkout")},
				CostFn:  func(interface{}) float64 { return 1 },
			},
			{
				Name: "completeCheckout",
				Constraints: []constraint.Constraint{{
					Phase: constraint.BeforeTransition, Custom: func(e constraint.Event) (bool, []string) {
						m := e.CurrentState.(map[string]interface{})
						if m["ui"].(map[string]interface{})["page"].(string) != "checkout" {
							return false, []string{"not at checkout"}
						}
						return true, nil
					},
				}},
				Effects: []effect.Effect{effect.Set("ui.page", "confirmation")},
				CostFn:  func(interface{}) float64 { return 1 },
			},
		},
	}

	sys, err := system.Compile(decl, system.WithCodec(codex.NewRawText()))
	require.NoError(t, err)

	initial := map[string]interface{}{
		"ui":   map[string]interface{}{"page": "product-list"},
		"cart": map[string]interface{}{"items": []interface{}{}, "total": 0.0},
	}
	target := func(s interface{}) bool {
		m := s.(map[string]interface{})
		return m["ui"].(map[string]interface{})["page"] == "confirmation"
	}

	res, ok, err := study.OptimalPath(sys.Generator(), sys.Codec, initial, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"addItem", "goToCheckout", "completeCheckout"}, res.Path)
	assert.Equal(t, 3.0, res.Cost)
}

// TestScenario_S4_BoundedHanoiFourViaSystemCompile reproduces spec scenario
// S4 through system.Compile: Hanoi(4) has exactly 3^4 = 81 reachable
// states.
func TestScenario_S4_BoundedHanoiFourViaSystemCompile(t *testing.T) {
	sys, err := system.Compile(hanoiDecl(), system.WithCodec(codex.NewRawText()))
	require.NoError(t, err)

	initial := map[string]interface{}{
		"A": []interface{}{4.0, 3.0, 2.0, 1.0},
		"B": []interface{}{},
		"C": []interface{}{},
	}

	res, err := study.BoundedExpansion(sys.Generator(), sys.Codec, initial, study.Limits{})
	require.NoError(t, err)
	assert.Equal(t, 81, res.Profile.TotalStates)
}
