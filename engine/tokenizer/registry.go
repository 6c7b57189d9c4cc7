package tokenizer

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry is a process-wide, read-mostly lookup of Tokenizer instances
// keyed by encoding_model (a model name such as "gpt-4" or a raw encoding
// name such as "cl100k_base"). It is safe for concurrent use: Get may be
// called from independent Chunk invocations without additional locking by
// the caller.
//
// Construction of a tiktoken encoder is not free (it loads a BPE rank
// table), so a singleflight.Group collapses concurrent first-time lookups
// of the same key into a single construction.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]Tokenizer
	group singleflight.Group
}

// NewRegistry returns an empty registry. The zero value is not usable;
// always construct via NewRegistry.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]Tokenizer)}
}

// defaultRegistry backs the package-level Get convenience function.
var defaultRegistry = NewRegistry()

// Get returns the default process-wide registry's lookup for
// encodingModel. Most callers should use this rather than constructing
// their own Registry.
func Get(encodingModel string) (Tokenizer, error) {
	return defaultRegistry.Get(encodingModel)
}

// Get returns the Tokenizer for encodingModel, constructing and caching it
// on first use. An empty or unrecognized encodingModel resolves to the
// default encoding (cl100k_base) rather than erroring, per the tokenizer
// selection contract: the chunker never fails because of an unknown model
// name.
func (r *Registry) Get(encodingModel string) (Tokenizer, error) {
	r.mu.RLock()
	tok, ok := r.cache[encodingModel]
	r.mu.RUnlock()
	if ok {
		return tok, nil
	}

	result, err, _ := r.group.Do(encodingModel, func() (any, error) {
		r.mu.RLock()
		if existing, ok := r.cache[encodingModel]; ok {
			r.mu.RUnlock()
			return existing, nil
		}
		r.mu.RUnlock()

		built, err := newTiktokenTokenizerForTest(encodingModel)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[encodingModel] = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Tokenizer), nil
}

// Register installs an explicit Tokenizer for a key, overriding whatever
// construction Get would otherwise perform. Intended for tests that need a
// deterministic or instrumented Tokenizer.
func (r *Registry) Register(encodingModel string, tok Tokenizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[encodingModel] = tok
}

// List returns the encoding_model keys currently cached.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.cache))
	for k := range r.cache {
		keys = append(keys, k)
	}
	return keys
}
