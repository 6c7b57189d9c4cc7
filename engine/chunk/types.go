// Package chunk implements the token-budgeted Markdown chunker: it
// segments one or more labeled text slices into a sequence of chunks whose
// token count (under a caller-selected tokenizer) fits a target size,
// breaking at the strongest available Markdown structural boundary rather
// than at an arbitrary character offset.
package chunk

import "fmt"

// Slice is a single labeled piece of input text. Callers own the slice;
// Chunk never mutates it.
type Slice struct {
	DocumentID string
	Text       string
}

// Config configures a single chunking run. It is a value parameter,
// immutable for the duration of the call.
type Config struct {
	// Size is the target token count per chunk. Must be >= 1.
	Size uint32
	// Overlap is the number of trailing tokens of a chunk carried forward
	// as the prefix of the next chunk. Must satisfy 0 <= Overlap < Size.
	Overlap uint32
	// EncodingModel selects the tokenizer via the tokenizer registry
	// (e.g. "gpt-4", or a raw encoding name like "cl100k_base"). Unknown
	// values fall back to a default encoding rather than erroring.
	EncodingModel string
}

// Chunk is a contiguous, packed region of the normalized input, optionally
// prefixed by an overlap tail from the previous chunk.
type Chunk struct {
	Text        string
	TokenCount  int
	DocumentIDs []string
}

// ConfigError reports an invalid Config. It is returned before any
// chunking work is performed; Chunk never partially produces chunks.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chunk: invalid config: %s", e.cause)
}

func (e *ConfigError) Unwrap() error {
	return e.cause
}
