package effect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coffee-fueled-dev/statespace-sub000/pathway"
	"github.com/coffee-fueled-dev/statespace-sub000/state"
)

// Compile reduces an ordered effect bundle into a single Mutator. Each
// instruction sees the state produced by the previous one; the first
// instruction to fail short-circuits the whole bundle (spec §4.E: "a failed
// effect short-circuits the rule").
func Compile(effects []Effect) (Mutator, error) {
	for i, e := range effects {
		if e.Path == "" {
			return nil, fmt.Errorf("effect %d: empty path", i)
		}
		if _, err := pathway.Parse(e.Path); err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		if e.Op == OpCopy {
			if _, err := pathway.Parse(e.SourcePath); err != nil {
				return nil, fmt.Errorf("effect %d: sourcePath: %w", i, err)
			}
		}
	}
	return func(initial interface{}) (interface{}, error) {
		cur := initial
		for i, e := range effects {
			next, err := applyOne(initial, cur, e)
			if err != nil {
				return nil, &Error{Index: i, Path: e.Path, Message: err.Error()}
			}
			cur = next
		}
		return cur, nil
	}, nil
}

// applyOne applies a single effect to cur (the state as of the previous
// instruction), using preRuleState as the source for OpCopy, and enforces
// the mutation-typing invariant at e.Path.
func applyOne(preRuleState, cur interface{}, e Effect) (interface{}, error) {
	path := pathway.MustParse(e.Path)
	preKind, preOK := kindAt(cur, path)

	next, err := dispatch(preRuleState, cur, path, e)
	if err != nil {
		return nil, err
	}

	postKind, postOK := kindAt(next, path)
	if e.Op == OpUnset {
		if postOK {
			return nil, errors.New("unset left the leaf present")
		}
		return next, nil
	}
	// transform is exempt: named transforms like toNumber/toString/length
	// exist precisely to change a leaf's type category, so the invariant
	// below would reject the very thing they're declared to do.
	if e.Op != OpTransform && preOK && (!postOK || postKind != preKind) {
		return nil, fmt.Errorf("mutation changed type category at %q: %s -> %s", e.Path, preKind, postKind)
	}
	return next, nil
}

func kindAt(s interface{}, p pathway.Path) (state.Kind, bool) {
	v, err := pathway.ValueAt(s, p)
	if err != nil {
		return state.KindNull, false
	}
	return state.KindOf(v), true
}

func dispatch(preRuleState, cur interface{}, path pathway.Path, e Effect) (interface{}, error) {
	switch e.Op {
	case OpSet:
		return pathway.WithValueAt(cur, path, e.Value)

	case OpUnset:
		return unsetAt(cur, path)

	case OpCopy:
		srcPath := pathway.MustParse(e.SourcePath)
		v, err := pathway.ValueAt(preRuleState, srcPath)
		if err != nil {
			return nil, fmt.Errorf("copy source %q: %w", e.SourcePath, err)
		}
		return pathway.WithValueAt(cur, path, v)

	case OpIncrement, OpDecrement:
		return applyDelta(cur, path, e)

	case OpAppend:
		return applySplice(cur, path, e.Value, true)

	case OpPrepend:
		return applySplice(cur, path, e.Value, false)

	case OpRemove:
		return applyRemove(cur, path, e.Value)

	case OpClear:
		return pathway.WithValueAt(cur, path, []interface{}{})

	case OpMerge:
		return applyMerge(cur, path, e.Value)

	case OpTransform:
		return applyTransform(cur, path, e)

	default:
		return nil, fmt.Errorf("unknown effect op %d", e.Op)
	}
}

func applyDelta(cur interface{}, path pathway.Path, e Effect) (interface{}, error) {
	v, err := pathway.ValueAt(cur, path)
	if err != nil {
		return nil, err
	}
	n, ok := v.(float64)
	if !ok {
		return nil, fmt.Errorf("leaf is not numeric")
	}
	delta := e.Delta
	if !e.HasDelta {
		delta = 1
	}
	if e.Op == OpDecrement {
		delta = -delta
	}
	return pathway.WithValueAt(cur, path, n+delta)
}

func applySplice(cur interface{}, path pathway.Path, item interface{}, tail bool) (interface{}, error) {
	v, err := pathway.ValueAt(cur, path)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("leaf is not an array")
	}
	var addition []interface{}
	if list, ok := item.([]interface{}); ok {
		addition = list
	} else {
		addition = []interface{}{item}
	}
	var out []interface{}
	if tail {
		out = append(append(out, arr...), addition...)
	} else {
		out = append(append(out, addition...), arr...)
	}
	return pathway.WithValueAt(cur, path, out)
}

func applyRemove(cur interface{}, path pathway.Path, needle interface{}) (interface{}, error) {
	v, err := pathway.ValueAt(cur, path)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("leaf is not an array")
	}
	out := make([]interface{}, 0, len(arr))
	for _, elem := range arr {
		if !state.Equal(elem, needle) {
			out = append(out, elem)
		}
	}
	return pathway.WithValueAt(cur, path, out)
}

func applyMerge(cur interface{}, path pathway.Path, obj interface{}) (interface{}, error) {
	incoming, ok := obj.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("merge value is not an object")
	}
	v, err := pathway.ValueAt(cur, path)
	if err != nil {
		return nil, err
	}
	existing, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("leaf is not an object")
	}
	merged := make(map[string]interface{}, len(existing)+len(incoming))
	for k, val := range existing {
		merged[k] = val
	}
	for k, val := range incoming {
		merged[k] = val
	}
	return pathway.WithValueAt(cur, path, merged)
}

func applyTransform(cur interface{}, path pathway.Path, e Effect) (interface{}, error) {
	v, err := pathway.ValueAt(cur, path)
	if err != nil {
		return nil, err
	}
	if e.Func != nil {
		out, err := e.Func(v, cur)
		if err != nil {
			return nil, err
		}
		return pathway.WithValueAt(cur, path, out)
	}
	out, err := namedTransform(e.Named, v)
	if err != nil {
		return nil, err
	}
	return pathway.WithValueAt(cur, path, out)
}

func namedTransform(name Transform, v interface{}) (interface{}, error) {
	switch name {
	case ToString:
		switch t := v.(type) {
		case string:
			return t, nil
		case float64:
			return strconv.FormatFloat(t, 'g', -1, 64), nil
		case bool:
			return strconv.FormatBool(t), nil
		default:
			return nil, fmt.Errorf("toString: unsupported leaf type")
		}
	case ToNumber:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("toNumber: leaf is not a string")
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("toNumber: %w", err)
		}
		return n, nil
	case ToLowerCase:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("toLowerCase: leaf is not a string")
		}
		return strings.ToLower(s), nil
	case ToUpperCase:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("toUpperCase: leaf is not a string")
		}
		return strings.ToUpper(s), nil
	case Reverse:
		switch t := v.(type) {
		case string:
			r := []rune(t)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return string(r), nil
		case []interface{}:
			out := make([]interface{}, len(t))
			for i, elem := range t {
				out[len(t)-1-i] = elem
			}
			return out, nil
		default:
			return nil, fmt.Errorf("reverse: unsupported leaf type")
		}
	case Sort:
		arr, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("sort: leaf is not an array")
		}
		out := append([]interface{}{}, arr...)
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			less, err := lessValue(out[i], out[j])
			if err != nil {
				sortErr = err
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return out, nil
	case Unique:
		arr, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unique: leaf is not an array")
		}
		var out []interface{}
		for _, elem := range arr {
			dup := false
			for _, seen := range out {
				if state.Equal(elem, seen) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, elem)
			}
		}
		if out == nil {
			out = []interface{}{}
		}
		return out, nil
	case Length:
		switch t := v.(type) {
		case string:
			return float64(len(t)), nil
		case []interface{}:
			return float64(len(t)), nil
		default:
			return nil, fmt.Errorf("length: unsupported leaf type")
		}
	default:
		return nil, fmt.Errorf("unknown named transform %q", name)
	}
}

func lessValue(a, b interface{}) (bool, error) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false, fmt.Errorf("sort: mixed element types")
		}
		return av < bv, nil
	case string:
		bv, ok := b.(string)
		if !ok {
			return false, fmt.Errorf("sort: mixed element types")
		}
		return av < bv, nil
	default:
		return false, fmt.Errorf("sort: unsupported element type")
	}
}
