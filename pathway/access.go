package pathway

import (
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/state"
)

// ValueAt walks p's segments against s and returns the value found. Returns
// ErrPathNotFound (wrapped in *InvalidPath) if any segment fails to resolve:
// a missing object key, an out-of-range array index, or a segment that
// expects an object/array but finds a scalar.
func ValueAt(s state.State, p Path) (interface{}, error) {
	cur := s
	for _, seg := range p.segments {
		next, ok := step(cur, seg)
		if !ok {
			return nil, &InvalidPath{Path: p.raw, Err: ErrPathNotFound}
		}
		cur = next
	}
	return cur, nil
}

// step resolves a single segment against cur, reporting ok=false on any
// traversal failure (missing key, out-of-range index, wrong container kind).
func step(cur interface{}, seg Segment) (interface{}, bool) {
	switch seg.Kind {
	case Property:
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := obj[seg.Key]
		return v, ok
	case Index:
		arr, ok := cur.([]interface{})
		if !ok || seg.Idx < 0 || seg.Idx >= len(arr) {
			return nil, false
		}
		return arr[seg.Idx], true
	default:
		return nil, false
	}
}

// WithValueAt returns a new state equal to s except that the value at p is
// newValue. Only the branch along p is copied (a shallow copy of each node
// being replaced); sibling subtrees are shared with the original s.
//
// Tie-break (spec §4.A): intermediate containers are created on demand only
// for the final segment of a set-family operation targeting a currently
// absent object key; a missing intermediate segment (i.e. anywhere but the
// last) is always ErrPathNotFound — WithValueAt never guesses whether a gap
// should become an object or an array.
func WithValueAt(s state.State, p Path, newValue interface{}) (state.State, error) {
	if p.Empty() {
		return newValue, nil
	}
	return withValueAt(s, p.segments, newValue, p.raw)
}

func withValueAt(cur interface{}, segs []Segment, newValue interface{}, rawPath string) (interface{}, error) {
	seg := segs[0]
	rest := segs[1:]

	switch seg.Kind {
	case Property:
		obj, ok := cur.(map[string]interface{})
		if !ok {
			if cur == nil {
				obj = map[string]interface{}{}
			} else {
				return nil, &InvalidPath{Path: rawPath, Err: ErrPathNotFound}
			}
		} else {
			cp := make(map[string]interface{}, len(obj)+1)
			for k, v := range obj {
				cp[k] = v
			}
			obj = cp
		}
		existing, present := obj[seg.Key]
		if len(rest) == 0 {
			// A missing leaf key is created here; set-family effects rely on
			// this to materialize a new key. Non-final missing segments are
			// always an error (below), so gaps are never silently deepened.
			obj[seg.Key] = newValue
			return obj, nil
		}
		if !present {
			return nil, &InvalidPath{Path: rawPath, Err: fmt.Errorf("%w: missing intermediate key %q", ErrPathNotFound, seg.Key)}
		}
		updated, err := withValueAt(existing, rest, newValue, rawPath)
		if err != nil {
			return nil, err
		}
		obj[seg.Key] = updated
		return obj, nil

	case Index:
		arr, ok := cur.([]interface{})
		if !ok {
			return nil, &InvalidPath{Path: rawPath, Err: ErrPathNotFound}
		}
		if seg.Idx < 0 || seg.Idx >= len(arr) {
			return nil, &InvalidPath{Path: rawPath, Err: fmt.Errorf("%w: index %d out of range (len %d)", ErrPathNotFound, seg.Idx, len(arr))}
		}
		arr = append([]interface{}(nil), arr...)
		if len(rest) == 0 {
			arr[seg.Idx] = newValue
			return arr, nil
		}
		updated, err := withValueAt(arr[seg.Idx], rest, newValue, rawPath)
		if err != nil {
			return nil, err
		}
		arr[seg.Idx] = updated
		return arr, nil

	default:
		return nil, &InvalidPath{Path: rawPath, Err: ErrPathNotFound}
	}
}
