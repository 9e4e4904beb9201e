// Package codex gives every state a stable, canonical string identity.
// encode is a deterministic function of value equivalence — two
// structurally identical states always encode to the same Hash — and
// decode is its inverse, so Hash can stand in for a state wherever only
// identity (not content) is needed, as the Markov graph's node keys do.
package codex

import "github.com/coffee-fueled-dev/statespace-sub000/state"

// Hash is an opaque content identity. Callers must not parse it; only
// equality comparison is meaningful.
type Hash string

// Codec is the encode/decode pair a study relies on. Implementations must
// satisfy two invariants: round-trip (decode(encode(s)) is equal to s for
// any legal state) and canonicality (structurally equal states encode to
// the same Hash).
type Codec interface {
	Encode(s state.State) (Hash, error)
	Decode(h Hash) (state.State, error)
}
