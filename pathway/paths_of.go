package pathway

import (
	"fmt"

	"github.com/coffee-fueled-dev/statespace-sub000/state"
)

// PathsOf enumerates every path reachable in s: every object key at every
// depth, and every array index, including the containers themselves. Object
// keys are visited in sorted order so the result is deterministic across
// runs for structurally identical states (spec Testable Property 2).
func PathsOf(s state.State) []string {
	var out []string
	walk("", s, &out)
	return out
}

func walk(prefix string, v interface{}, out *[]string) {
	switch t := v.(type) {
	case map[string]interface{}:
		for _, k := range state.SortedKeys(t) {
			p := joinProperty(prefix, k)
			*out = append(*out, p)
			walk(p, t[k], out)
		}
	case []interface{}:
		for i, elem := range t {
			p := fmt.Sprintf("%s[%d]", prefix, i)
			*out = append(*out, p)
			walk(p, elem, out)
		}
	}
}

func joinProperty(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
