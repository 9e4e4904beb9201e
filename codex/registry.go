package codex

import "sync"

// Registry is a small named lookup of Codec implementations, so an
// alternative codex (a domain-specific tuple codec, say) can be found by
// name. system.Compile does not consult a Registry; it takes the chosen
// Codec through system.WithCodec. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns a Registry pre-populated with "default" (gzip+base64
// canonical JSON) and "raw" (uncompressed canonical JSON text).
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register("default", NewDefault())
	r.Register("raw", NewRawText())
	return r
}

// Register installs codec under name, replacing any existing entry.
func (r *Registry) Register(name string, codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[name] = codec
}

// Get looks up a previously registered Codec by name.
func (r *Registry) Get(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}
