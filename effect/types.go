// Package effect compiles the declarative mutation vocabulary of spec §4.E
// into an ordered state-mutator. Effects run left to right, each seeing the
// state produced by the one before it, and the mutation-typing invariant
// (every touched leaf keeps the type category it had before the effect) is
// enforced after every single effect rather than only at the end, so a rule
// fails at the exact instruction that broke typing. Unset and transform
// effects are exempt: unset removes the leaf, and transform may change its
// type category.
package effect

import "fmt"

// Op identifies one of the operation catalogue's entries.
type Op int

const (
	OpSet Op = iota
	OpUnset
	OpCopy
	OpIncrement
	OpDecrement
	OpAppend
	OpPrepend
	OpRemove
	OpClear
	OpMerge
	OpTransform
)

// Transform names one of the built-in named transforms usable with
// OpTransform when no custom TransformFunc is supplied.
type Transform string

const (
	ToString    Transform = "toString"
	ToNumber    Transform = "toNumber"
	ToLowerCase Transform = "toLowerCase"
	ToUpperCase Transform = "toUpperCase"
	Reverse     Transform = "reverse"
	Sort        Transform = "sort"
	Unique      Transform = "unique"
	Length      Transform = "length"
)

// TransformFunc is a user-supplied transform: given the current leaf value
// and the full current state, produce the new leaf value.
type TransformFunc func(currentLeaf interface{}, currentState interface{}) (interface{}, error)

// Effect is one declarative mutation instruction targeting Path.
type Effect struct {
	Op   Op
	Path string

	// OpSet, OpAppend/OpPrepend (item form), OpRemove (needle), OpMerge (object).
	Value interface{}

	// OpCopy: the path read from the *current* (pre-rule) state.
	SourcePath string

	// OpIncrement/OpDecrement: defaults to 1 when zero-valued and Delta
	// was not explicitly supplied — see Effect builders in ops.go.
	Delta    float64
	HasDelta bool

	// OpTransform: exactly one of Named or Func should be set.
	Named Transform
	Func  TransformFunc
}

// Mutator applies a compiled effect bundle to a state, producing the next
// state or an error identifying which instruction failed.
type Mutator func(state interface{}) (interface{}, error)

// Error is a structured effect failure: the index of the instruction that
// failed and why.
type Error struct {
	Index   int
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("effect: instruction %d (%s): %s", e.Index, e.Path, e.Message)
}
