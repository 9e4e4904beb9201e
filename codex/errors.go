package codex

import "errors"

// ErrCodex is wrapped by any failure to encode or decode a state. Per spec
// §7 this aborts the current study; it is never recovered from locally the
// way a transition Failure is.
var ErrCodex = errors.New("codex: encode/decode failed")
