package chunk

import "strings"

// stubTokenizer is a deterministic, allocation-light Tokenizer used by
// packer/postprocess unit tests so they don't depend on tiktoken's BPE
// tables: one token per run of non-whitespace and one per whitespace
// character (see splitWords). Each encoded piece gets the next index in a
// vocabulary the stub appends to on every EncodeToIDs call, so Decode is an
// exact inverse of any earlier encode on the same stub. Good enough for the structural invariants these tests check (budget
// respected, overlap prefix format, ordering) without pulling in a real
// BPE vocabulary.
type stubTokenizer struct {
	words []string
}

func newStubTokenizer() *stubTokenizer {
	return &stubTokenizer{}
}

func (s *stubTokenizer) EncodeToIDs(text string) []int {
	words := splitWords(text)
	ids := make([]int, len(words))
	base := len(s.words)
	for i, w := range words {
		ids[i] = base + i
		s.words = append(s.words, w)
	}
	return ids
}

func (s *stubTokenizer) Decode(ids []int) string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(s.words) {
			words = append(words, s.words[id])
		}
	}
	return strings.Join(words, "")
}

func (s *stubTokenizer) CountTokens(text string) int {
	return len(splitWords(text))
}

func (s *stubTokenizer) Encoding() string { return "stub" }

// splitWords breaks text into the smallest meaningful units for counting:
// runs of non-whitespace, and each whitespace character individually, so
// that concatenating the pieces reproduces the original text exactly.
func splitWords(text string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			flush()
			words = append(words, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return words
}
