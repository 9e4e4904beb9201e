package codex

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coffee-fueled-dev/statespace-sub000/state"
)

// jsonCodec canonicalizes a state via encoding/json — which already sorts
// map[string]interface{} keys lexicographically at every level and leaves
// array order untouched, exactly the canonical form spec §4.C requires —
// then optionally gzips and base64-encodes the result.
//
// No third-party canonical-JSON library is used here: encoding/json's own
// key-sorting behavior already satisfies the canonicality invariant, so
// reaching for one would add a dependency with nothing left for it to do.
type jsonCodec struct {
	compress bool
}

// NewDefault returns the default Codec: canonical JSON, gzip-compressed and
// base64-encoded. This is the cheap, general-purpose codex spec §4.C calls
// for.
func NewDefault() Codec {
	return jsonCodec{compress: true}
}

// NewRawText returns a Codec that skips compression, emitting the canonical
// JSON text directly (still base64-free). Useful for tests and callers that
// want a human-inspectable Hash.
func NewRawText() Codec {
	return jsonCodec{compress: false}
}

func (c jsonCodec) Encode(s state.State) (Hash, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %v", ErrCodex, err)
	}
	if !c.compress {
		return Hash(raw), nil
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return "", fmt.Errorf("%w: gzip write: %v", ErrCodex, err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("%w: gzip close: %v", ErrCodex, err)
	}
	return Hash(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func (c jsonCodec) Decode(h Hash) (state.State, error) {
	raw := []byte(h)
	if c.compress {
		decoded, err := base64.StdEncoding.DecodeString(string(h))
		if err != nil {
			return nil, fmt.Errorf("%w: base64: %v", ErrCodex, err)
		}
		gz, err := gzip.NewReader(bytes.NewReader(decoded))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip reader: %v", ErrCodex, err)
		}
		defer gz.Close()
		raw, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip read: %v", ErrCodex, err)
		}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrCodex, err)
	}
	return v, nil
}
