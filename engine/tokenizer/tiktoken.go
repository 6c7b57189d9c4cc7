package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// defaultEncoding is used whenever the caller's model or encoding name is
// empty or unrecognized, so tokenizer selection never fails outright.
const defaultEncoding = "cl100k_base"

// tiktokenTokenizer implements Tokenizer using github.com/pkoukk/tiktoken-go.
type tiktokenTokenizer struct {
	encodingName string
	tke          *tiktoken.Tiktoken
	mu           sync.RWMutex
}

// newTiktokenTokenizerForTest is a seam allowing tests to observe or
// instrument tokenizer construction (e.g. counting calls to verify
// singleflight dedupes concurrent cold starts). Production code always
// goes through this indirection too, so the seam carries no overhead
// beyond an extra function pointer call.
var newTiktokenTokenizerForTest = newTiktokenTokenizer

// newTiktokenTokenizer builds a tokenizer for the given model or encoding
// name. If modelOrEncoding is a known encoding name it is used directly; if
// it is a known model name it is resolved to the model's encoding; anything
// else falls back to defaultEncoding.
func newTiktokenTokenizer(modelOrEncoding string) (*tiktokenTokenizer, error) {
	if modelOrEncoding == "" {
		modelOrEncoding = defaultEncoding
	}

	var encodingName string
	tke, err := tiktoken.GetEncoding(modelOrEncoding)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(modelOrEncoding)
		if err != nil {
			tke, err = tiktoken.GetEncoding(defaultEncoding)
			if err != nil {
				return nil, fmt.Errorf("tokenizer: default encoding %q unavailable: %w", defaultEncoding, err)
			}
			encodingName = defaultEncoding
		} else {
			encodingName = encodingNameForModel(modelOrEncoding)
		}
	} else {
		encodingName = modelOrEncoding
	}

	return &tiktokenTokenizer{encodingName: encodingName, tke: tke}, nil
}

func (t *tiktokenTokenizer) EncodeToIDs(text string) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tke.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(ids []int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tke.Decode(ids)
}

func (t *tiktokenTokenizer) CountTokens(text string) int {
	return len(t.EncodeToIDs(text))
}

func (t *tiktokenTokenizer) Encoding() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.encodingName
}

// modelToEncoding maps common model names to their tiktoken encoding.
var modelToEncoding = map[string]string{
	"gpt-4":               "cl100k_base",
	"gpt-4-0314":          "cl100k_base",
	"gpt-4-0613":          "cl100k_base",
	"gpt-4-32k":           "cl100k_base",
	"gpt-4-32k-0314":      "cl100k_base",
	"gpt-4-32k-0613":      "cl100k_base",
	"gpt-4-turbo":         "cl100k_base",
	"gpt-4-turbo-preview": "cl100k_base",
	"gpt-4o":              "o200k_base",
	"gpt-4o-mini":         "o200k_base",

	"gpt-3.5-turbo":          "cl100k_base",
	"gpt-3.5-turbo-0301":     "cl100k_base",
	"gpt-3.5-turbo-0613":     "cl100k_base",
	"gpt-3.5-turbo-16k":      "cl100k_base",
	"gpt-3.5-turbo-16k-0613": "cl100k_base",

	"text-davinci-003": "p50k_base",
	"text-davinci-002": "p50k_base",
	"text-davinci-001": "p50k_base",
	"text-curie-001":   "p50k_base",
	"text-babbage-001": "p50k_base",
	"text-ada-001":     "p50k_base",
	"davinci":          "p50k_base",
	"curie":            "p50k_base",
	"babbage":          "p50k_base",
	"ada":              "p50k_base",

	"code-davinci-002": "p50k_base",
	"code-davinci-001": "p50k_base",
	"code-cushman-002": "p50k_base",
	"code-cushman-001": "p50k_base",
}

// encodingNameForModel resolves a model name to its encoding name for
// display purposes; tiktoken-go resolves the encoder itself internally via
// EncodingForModel, this only recovers a human-readable name for it.
func encodingNameForModel(model string) string {
	if encoding, ok := modelToEncoding[model]; ok {
		return encoding
	}
	return defaultEncoding
}
