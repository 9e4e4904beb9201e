package effect

import (
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/pathway"
)

// unsetAt clones the path from the root down to the final segment's parent
// and deletes the final key there, mirroring pathway.WithValueAt's
// clone-as-you-descend structural sharing but removing rather than writing
// a leaf. Only object keys can be unset; an array index has no "absent"
// slot to fall back to.
func unsetAt(s interface{}, p pathway.Path) (interface{}, error) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, fmt.Errorf("cannot unset the root")
	}
	return unsetRec(s, segs, p.String())
}

func unsetRec(cur interface{}, segs []pathway.Segment, rawPath string) (interface{}, error) {
	seg := segs[0]
	rest := segs[1:]

	if seg.Kind == pathway.Index {
		return nil, fmt.Errorf("unset: array indices cannot be unset at %q", rawPath)
	}

	obj, ok := cur.(map[string]interface{})
	if !ok {
		return nil, &pathway.InvalidPath{Path: rawPath, Err: pathway.ErrPathNotFound}
	}
	cp := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		cp[k] = v
	}
	obj = cp

	if len(rest) == 0 {
		delete(obj, seg.Key)
		return obj, nil
	}

	child, present := obj[seg.Key]
	if !present {
		return nil, &pathway.InvalidPath{Path: rawPath, Err: pathway.ErrPathNotFound}
	}
	newChild, err := unsetRec(child, rest, rawPath)
	if err != nil {
		return nil, err
	}
	obj[seg.Key] = newChild
	return obj, nil
}
