// Package state defines the value type that flows through the engine: an
// immutable, JSON-shaped record with scalar leaves, homogeneous arrays, and
// nested objects. A State never mutates in place; every transformation
// (pathway.WithValueAt, a compiled effect.Mutator) returns a new State,
// copying only the branch being changed.
package state

import "sort"

// State is the working representation of a system's value: scalars
// (bool, float64, string, nil), []interface{} sequences, and
// map[string]interface{} objects, nested arbitrarily deep.
//
// States are value types. Callers must never mutate a map or slice obtained
// from a State in place; use pathway.WithValueAt to derive a new one.
type State = interface{}

// Kind classifies the runtime shape of a leaf or subtree, used to enforce
// the mutation-typing invariant (spec §4.E) and to drive schema validation.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String renders a Kind for error messages and test diffs.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KindOf classifies a value into its Kind. A nil interface, and untyped nil
// stored behind an interface, both classify as KindNull.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, int, int64:
		return KindNumber
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindNull
	}
}

// SameKind reports whether a and b classify to the same Kind, the predicate
// the mutation-typing invariant is built on: every leaf present in both the
// current and the next state must keep its Kind across a transition.
func SameKind(a, b interface{}) bool {
	return KindOf(a) == KindOf(b)
}

// Clone performs a deep copy of v. It is the only primitive in the package
// that allocates proportional to the whole value; pathway.WithValueAt does
// not use it, and shallow-copies only the nodes along the path it replaces.
func Clone(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, vv := range t {
			out[i] = Clone(vv)
		}
		return out
	default:
		return v
	}
}

// Equal reports deep structural equality between a and b: same Kind,
// recursively equal objects/arrays (key order irrelevant for objects, order
// significant for arrays), and == equality for scalars.
func Equal(a, b interface{}) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindObject:
		am, bm := a.(map[string]interface{}), b.(map[string]interface{})
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindArray:
		aa, ba := a.([]interface{}), b.([]interface{})
		if len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ba[i]) {
				return false
			}
		}
		return true
	case KindNull:
		return true
	default:
		return a == b
	}
}

// SortedKeys returns the keys of an object in lexicographic order, the
// traversal order every canonical operation in this module (codex encoding,
// PathsOf enumeration, schema object validation) relies on for determinism.
func SortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
