package pathway

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse compiles a path string into a Path once. Fails with ErrInvalidPath
// wrapped in an *InvalidPath on unbalanced brackets, a non-numeric index,
// an empty property segment, or a property segment directly after ']'
// (e.g. "foo..bar", "foo[", "foo[x]", "foo[0]bar").
//
// An empty string parses to the root Path (Empty() == true).
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{raw: raw}, nil
	}

	var segs []Segment
	i := 0
	n := len(raw)
	// first reports whether the scanner is at the start of raw: a leading
	// '.' is rejected there, and anywhere after it a property segment must
	// be introduced by '.' rather than start bare.
	first := true

	for i < n {
		switch {
		case raw[i] == '.':
			if first {
				return Path{}, &InvalidPath{Path: raw, Err: errLeadingDot}
			}
			i++
			start := i
			for i < n && raw[i] != '.' && raw[i] != '[' {
				i++
			}
			key := raw[start:i]
			if key == "" {
				return Path{}, &InvalidPath{Path: raw, Err: errEmptySegment}
			}
			segs = append(segs, Segment{Kind: Property, Key: key})
		case raw[i] == '[':
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return Path{}, &InvalidPath{Path: raw, Err: errUnbalancedBracket}
			}
			end += i
			idxText := raw[i+1 : end]
			idx, err := strconv.Atoi(idxText)
			if err != nil || idx < 0 {
				return Path{}, &InvalidPath{Path: raw, Err: errNonNumericIndex}
			}
			segs = append(segs, Segment{Kind: Index, Idx: idx})
			i = end + 1
		default:
			if !first {
				return Path{}, &InvalidPath{Path: raw, Err: fmt.Errorf("%w: expected '.' or '[' after ']'", ErrInvalidPath)}
			}
			start := i
			for i < n && raw[i] != '.' && raw[i] != '[' {
				i++
			}
			key := raw[start:i]
			if key == "" {
				return Path{}, &InvalidPath{Path: raw, Err: errEmptySegment}
			}
			segs = append(segs, Segment{Kind: Property, Key: key})
		}
		first = false
	}

	return Path{raw: raw, segments: segs}, nil
}

// MustParse parses raw and panics on error. Intended for package-level
// fixtures and tests, never for input the engine has not already validated
// at compile time.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}
