// Package schema compiles the declarative validation vocabulary of spec §3
// into reusable, side-effect-free Validator functions. A Clause is compiled
// once via Compile and the resulting Validator is reused across every state
// the engine produces; CompileSub additionally memoizes on-demand subschema
// compilation behind a bounded LRU cache, for validation clauses that target
// a single path rather than the whole state (a constraint.Constraint with a
// Path set).
package schema

import "fmt"

// Kind identifies which branch of the closed validation vocabulary a Clause
// occupies (spec §3's table of clause kinds).
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindArray
	KindObject
)

func (k Kind) String() string {
	names := [...]string{"null", "undefined", "boolean", "number", "string", "date", "array", "object"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Clause is a tagged-union AST node for one validation clause. Exactly the
// fields matching Kind are populated; Compile ignores the rest.
type Clause struct {
	Kind Kind

	// KindBoolean: if non-nil, the value must equal *BoolEquals.
	BoolEquals *bool

	Number NumberOps
	String StringOps
	Date   DateOps
	Array  ArrayOps
	Object ObjectOps
}

// NumberOps holds the operators of the "number" clause kind.
type NumberOps struct {
	Lt, Lte, Gt, Gte, MultipleOf          *float64
	Positive, Negative                    bool
	Nonpositive, Nonnegative              bool
}

// StringOps holds the operators of the "string" clause kind.
type StringOps struct {
	MaxLength, MinLength, Length      *int
	Includes, StartsWith, EndsWith    *string
	Lowercase, Uppercase              bool
}

// DateRange is the operand of DateOps.Between (inclusive).
type DateRange struct {
	Start, End string // ISO-8601
}

// DateOps holds the operators of the "date" clause kind. Dates are carried
// as ISO-8601 strings in State (spec has no first-class date leaf type);
// the clause parses them at validation time.
type DateOps struct {
	Before, After *string // ISO-8601
	Between       *DateRange
}

// ArrayLengthMethod is the comparison method of ArrayOps.Length.
type ArrayLengthMethod int

const (
	LenEq ArrayLengthMethod = iota
	LenLt
	LenLte
	LenGt
	LenGte
)

// ArrayLength is the operand of the array "length" operator.
type ArrayLength struct {
	Method ArrayLengthMethod
	Value  int
}

// ArrayOps holds the operators of the "array" clause kind.
type ArrayOps struct {
	Length *ArrayLength
	Shape  *Clause // validates every element
}

// ObjectOps holds the operators of the "object" clause kind. A key absent
// from the map is only legal if its Clause.Kind is KindNull or
// KindUndefined (spec §3: "keys absent of type null/undefined are
// required" reads as: every other key is required).
type ObjectOps struct {
	Require map[string]Clause
}

// Issue is one validation failure: the instance path it occurred at and a
// human-readable message.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Result is the outcome of running a Validator over a value.
type Result struct {
	OK     bool
	Errors []Issue
}

// Validator is a compiled, pure, side-effect-free check over a value.
type Validator func(value interface{}) Result
