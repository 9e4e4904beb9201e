package schema

import "errors"

// ErrCompile is the sentinel for a Clause that fails structural compilation.
// Compile and CompileSub perform no structural checks and never return it:
// a date bound that does not parse is skipped at validation time, and an
// object clause with a nil Require map requires no keys.
var ErrCompile = errors.New("schema: compile error")

// ValidationError is the structured error surfaced at the system boundary
// (spec §7) when a state fails whole-state schema revalidation.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "schema: validation failed"
	}
	return "schema: validation failed: " + e.Issues[0].String()
}
