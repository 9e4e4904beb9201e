package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/coffee-fueled-dev/statespace-sub000/state"
)

// Compile turns a Clause into a reusable Validator. Compilation is pure:
// the same Clause always yields behaviorally identical Validators, and the
// returned Validator never mutates its input.
func Compile(c Clause) Validator {
	return func(v interface{}) Result {
		var issues []Issue
		validate("", c, v, &issues)
		return Result{OK: len(issues) == 0, Errors: issues}
	}
}

// validate appends to issues every failure found checking v against c at
// instance path p; p is the dotted/bracketed address used in Issue.Path.
func validate(p string, c Clause, v interface{}, issues *[]Issue) {
	switch c.Kind {
	case KindNull:
		if state.KindOf(v) != state.KindNull {
			fail(issues, p, "expected null, got %s", state.KindOf(v))
		}
	case KindUndefined:
		if v != nil {
			fail(issues, p, "expected undefined/absent, got %s", state.KindOf(v))
		}
	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			fail(issues, p, "expected boolean, got %s", state.KindOf(v))
			return
		}
		if c.BoolEquals != nil && b != *c.BoolEquals {
			fail(issues, p, "expected boolean %v, got %v", *c.BoolEquals, b)
		}
	case KindNumber:
		validateNumber(p, c.Number, v, issues)
	case KindString:
		validateString(p, c.String, v, issues)
	case KindDate:
		validateDate(p, c.Date, v, issues)
	case KindArray:
		validateArray(p, c.Array, v, issues)
	case KindObject:
		validateObject(p, c.Object, v, issues)
	default:
		fail(issues, p, "unknown clause kind %d", c.Kind)
	}
}

func fail(issues *[]Issue, path, format string, args ...interface{}) {
	*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func validateNumber(p string, ops NumberOps, v interface{}, issues *[]Issue) {
	n, ok := asFloat(v)
	if !ok {
		fail(issues, p, "expected number, got %s", state.KindOf(v))
		return
	}
	switch {
	case ops.Lt != nil && !(n < *ops.Lt):
		fail(issues, p, "expected < %v, got %v", *ops.Lt, n)
	case ops.Lte != nil && !(n <= *ops.Lte):
		fail(issues, p, "expected <= %v, got %v", *ops.Lte, n)
	case ops.Gt != nil && !(n > *ops.Gt):
		fail(issues, p, "expected > %v, got %v", *ops.Gt, n)
	case ops.Gte != nil && !(n >= *ops.Gte):
		fail(issues, p, "expected >= %v, got %v", *ops.Gte, n)
	}
	if ops.MultipleOf != nil && *ops.MultipleOf != 0 {
		q := n / *ops.MultipleOf
		if q != float64(int64(q)) {
			fail(issues, p, "expected multiple of %v, got %v", *ops.MultipleOf, n)
		}
	}
	if ops.Positive && !(n > 0) {
		fail(issues, p, "expected positive, got %v", n)
	}
	if ops.Negative && !(n < 0) {
		fail(issues, p, "expected negative, got %v", n)
	}
	if ops.Nonpositive && !(n <= 0) {
		fail(issues, p, "expected nonpositive, got %v", n)
	}
	if ops.Nonnegative && !(n >= 0) {
		fail(issues, p, "expected nonnegative, got %v", n)
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func validateString(p string, ops StringOps, v interface{}, issues *[]Issue) {
	s, ok := v.(string)
	if !ok {
		fail(issues, p, "expected string, got %s", state.KindOf(v))
		return
	}
	if ops.Length != nil && len(s) != *ops.Length {
		fail(issues, p, "expected length %d, got %d", *ops.Length, len(s))
	}
	if ops.MaxLength != nil && len(s) > *ops.MaxLength {
		fail(issues, p, "expected maxLength %d, got %d", *ops.MaxLength, len(s))
	}
	if ops.MinLength != nil && len(s) < *ops.MinLength {
		fail(issues, p, "expected minLength %d, got %d", *ops.MinLength, len(s))
	}
	if ops.Includes != nil && !strings.Contains(s, *ops.Includes) {
		fail(issues, p, "expected to include %q", *ops.Includes)
	}
	if ops.StartsWith != nil && !strings.HasPrefix(s, *ops.StartsWith) {
		fail(issues, p, "expected to start with %q", *ops.StartsWith)
	}
	if ops.EndsWith != nil && !strings.HasSuffix(s, *ops.EndsWith) {
		fail(issues, p, "expected to end with %q", *ops.EndsWith)
	}
	if ops.Lowercase && s != strings.ToLower(s) {
		fail(issues, p, "expected lowercase")
	}
	if ops.Uppercase && s != strings.ToUpper(s) {
		fail(issues, p, "expected uppercase")
	}
}

func validateDate(p string, ops DateOps, v interface{}, issues *[]Issue) {
	s, ok := v.(string)
	if !ok {
		fail(issues, p, "expected ISO-8601 date string, got %s", state.KindOf(v))
		return
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		fail(issues, p, "invalid ISO-8601 date %q: %v", s, err)
		return
	}
	if ops.Before != nil {
		if b, err := time.Parse(time.RFC3339, *ops.Before); err == nil && !t.Before(b) {
			fail(issues, p, "expected before %s", *ops.Before)
		}
	}
	if ops.After != nil {
		if a, err := time.Parse(time.RFC3339, *ops.After); err == nil && !t.After(a) {
			fail(issues, p, "expected after %s", *ops.After)
		}
	}
	if ops.Between != nil {
		start, errS := time.Parse(time.RFC3339, ops.Between.Start)
		end, errE := time.Parse(time.RFC3339, ops.Between.End)
		if errS == nil && errE == nil && (t.Before(start) || t.After(end)) {
			fail(issues, p, "expected between %s and %s", ops.Between.Start, ops.Between.End)
		}
	}
}

func validateArray(p string, ops ArrayOps, v interface{}, issues *[]Issue) {
	arr, ok := v.([]interface{})
	if !ok {
		fail(issues, p, "expected array, got %s", state.KindOf(v))
		return
	}
	if ops.Length != nil {
		n := len(arr)
		want := ops.Length.Value
		methodOK := false
		switch ops.Length.Method {
		case LenEq:
			methodOK = n == want
		case LenLt:
			methodOK = n < want
		case LenLte:
			methodOK = n <= want
		case LenGt:
			methodOK = n > want
		case LenGte:
			methodOK = n >= want
		}
		if !methodOK {
			fail(issues, p, "array length %d fails constraint against %d", n, want)
		}
	}
	if ops.Shape != nil {
		for i, elem := range arr {
			validate(fmt.Sprintf("%s[%d]", p, i), *ops.Shape, elem, issues)
		}
	}
}

func validateObject(p string, ops ObjectOps, v interface{}, issues *[]Issue) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		fail(issues, p, "expected object, got %s", state.KindOf(v))
		return
	}
	for _, key := range sortedKeys(ops.Require) {
		sub := ops.Require[key]
		child, present := obj[key]
		path := joinPath(p, key)
		if !present {
			if sub.Kind == KindNull || sub.Kind == KindUndefined {
				continue
			}
			fail(issues, path, "required key %q is missing", key)
			continue
		}
		validate(path, sub, child, issues)
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func sortedKeys(m map[string]Clause) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort is fine; Require maps are small (schema-sized, not
	// state-sized), and determinism matters more than micro-speed here.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
