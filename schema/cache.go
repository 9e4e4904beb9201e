package schema

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// subCache memoizes CompileSub by a canonical string form of the Clause, so
// that two structurally identical subschemas (as produced, for example, by
// constraint compilation visiting the same path clause repeatedly across a
// large declarative system) compile exactly once. Bounded at subCacheSize
// entries; eviction is plain LRU.
const subCacheSize = 256

var (
	subCacheOnce sync.Once
	subCache     *lru.Cache[string, Validator]
)

func getSubCache() *lru.Cache[string, Validator] {
	subCacheOnce.Do(func() {
		c, err := lru.New[string, Validator](subCacheSize)
		if err != nil {
			// Only returns an error for a non-positive size, which subCacheSize
			// never is; a panic here would indicate a broken build constant.
			panic(fmt.Sprintf("schema: lru.New: %v", err))
		}
		subCache = c
	})
	return subCache
}

// CompileSub compiles c the same way Compile does, but memoizes the result
// behind a bounded LRU cache keyed on a canonical string form of c. Intended
// for callers (constraint.Compile in particular) that may compile the same
// subschema many times while assembling a larger declarative system.
func CompileSub(c Clause) Validator {
	cache := getSubCache()
	key := canonicalKey(c)
	if v, ok := cache.Get(key); ok {
		return v
	}
	v := Compile(c)
	cache.Add(key, v)
	return v
}

// canonicalKey renders c into a stable string: equal clauses always render
// identically, regardless of map iteration order in any nested ObjectOps.
func canonicalKey(c Clause) string {
	var b strings.Builder
	writeClause(&b, c)
	return b.String()
}

func writeClause(b *strings.Builder, c Clause) {
	fmt.Fprintf(b, "{k:%d", c.Kind)
	if c.BoolEquals != nil {
		fmt.Fprintf(b, ",eq:%v", *c.BoolEquals)
	}
	writeNumberOps(b, c.Number)
	writeStringOps(b, c.String)
	writeDateOps(b, c.Date)
	writeArrayOps(b, c.Array)
	writeObjectOps(b, c.Object)
	b.WriteByte('}')
}

func writeNumberOps(b *strings.Builder, ops NumberOps) {
	writeFloatPtr(b, "lt", ops.Lt)
	writeFloatPtr(b, "lte", ops.Lte)
	writeFloatPtr(b, "gt", ops.Gt)
	writeFloatPtr(b, "gte", ops.Gte)
	writeFloatPtr(b, "mul", ops.MultipleOf)
	if ops.Positive {
		b.WriteString(",pos")
	}
	if ops.Negative {
		b.WriteString(",neg")
	}
	if ops.Nonpositive {
		b.WriteString(",nonpos")
	}
	if ops.Nonnegative {
		b.WriteString(",nonneg")
	}
}

func writeStringOps(b *strings.Builder, ops StringOps) {
	writeIntPtr(b, "maxlen", ops.MaxLength)
	writeIntPtr(b, "minlen", ops.MinLength)
	writeIntPtr(b, "len", ops.Length)
	writeStrPtr(b, "inc", ops.Includes)
	writeStrPtr(b, "sw", ops.StartsWith)
	writeStrPtr(b, "ew", ops.EndsWith)
	if ops.Lowercase {
		b.WriteString(",lower")
	}
	if ops.Uppercase {
		b.WriteString(",upper")
	}
}

func writeDateOps(b *strings.Builder, ops DateOps) {
	writeStrPtr(b, "before", ops.Before)
	writeStrPtr(b, "after", ops.After)
	if ops.Between != nil {
		fmt.Fprintf(b, ",between:%s..%s", ops.Between.Start, ops.Between.End)
	}
}

func writeArrayOps(b *strings.Builder, ops ArrayOps) {
	if ops.Length != nil {
		fmt.Fprintf(b, ",len:%d:%d", ops.Length.Method, ops.Length.Value)
	}
	if ops.Shape != nil {
		b.WriteString(",shape:")
		writeClause(b, *ops.Shape)
	}
}

func writeObjectOps(b *strings.Builder, ops ObjectOps) {
	if len(ops.Require) == 0 {
		return
	}
	b.WriteString(",require:{")
	for i, k := range sortedKeys(ops.Require) {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%q:", k)
		sub := ops.Require[k]
		writeClause(b, sub)
	}
	b.WriteByte('}')
}

func writeFloatPtr(b *strings.Builder, name string, v *float64) {
	if v != nil {
		fmt.Fprintf(b, ",%s:%v", name, *v)
	}
}

func writeIntPtr(b *strings.Builder, name string, v *int) {
	if v != nil {
		fmt.Fprintf(b, ",%s:%d", name, *v)
	}
}

func writeStrPtr(b *strings.Builder, name string, v *string) {
	if v != nil {
		fmt.Fprintf(b, ",%s:%q", name, *v)
	}
}
