// Package tokenizer provides the token-counting capability consumed by the
// chunk package. It is the only place in this module that knows about a
// concrete tokenizer implementation (tiktoken); the rest of the module
// depends only on the Tokenizer interface.
package tokenizer

// Tokenizer is the capability the chunker consumes: encode text to token
// ids, decode ids back to text, and count tokens. Implementations must be
// deterministic and total — they never error on well-formed UTF-8 input.
type Tokenizer interface {
	// EncodeToIDs returns the token ids for text, in order.
	EncodeToIDs(text string) []int
	// Decode returns the text represented by ids. It is a left-inverse of
	// EncodeToIDs up to the tokenizer's own normalization.
	Decode(ids []int) string
	// CountTokens returns len(EncodeToIDs(text)).
	CountTokens(text string) int
	// Encoding returns the name of the encoding actually in use (after any
	// model-name-to-encoding resolution and fallback).
	Encoding() string
}
