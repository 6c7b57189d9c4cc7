package chunk

import (
	"strings"

	"github.com/gmanvel/graphrag/engine/tokenizer"
)

// assembleChunks converts packer output into Chunk values, attaching
// provenance document ids for each chunk's byte range in the stream.
func assembleChunks(pending []pendingChunk, prov *provenanceTable) []Chunk {
	chunks := make([]Chunk, 0, len(pending))
	for _, p := range pending {
		chunks = append(chunks, Chunk{
			Text:        p.Text,
			DocumentIDs: prov.DocumentIDsFor(p.Start, p.End),
		})
	}
	return chunks
}

// mergeImageChunks merges any chunk whose left-trimmed text begins with
// "![" into the immediately preceding chunk, repeating until a pass makes
// no change. A chunk at position 0 has no preceding chunk to merge into,
// so it is left untouched even if it starts with an image reference.
func mergeImageChunks(chunks []Chunk) []Chunk {
	for {
		merged, changed := mergeImagePass(chunks)
		chunks = merged
		if !changed {
			return chunks
		}
	}
}

func mergeImagePass(chunks []Chunk) ([]Chunk, bool) {
	if len(chunks) == 0 {
		return chunks, false
	}
	out := make([]Chunk, 0, len(chunks))
	changed := false
	for i, c := range chunks {
		if i > 0 && isImageOnly(c.Text) {
			prev := &out[len(out)-1]
			prev.Text = joinChunkText(prev.Text, c.Text)
			prev.DocumentIDs = unionDocumentIDs(prev.DocumentIDs, c.DocumentIDs)
			changed = true
			continue
		}
		out = append(out, c)
	}
	return out, changed
}

func isImageOnly(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\n\r"), "![")
}

// joinChunkText joins a merged image chunk's text onto the end of the
// preceding chunk, inserting a blank line unless one side already
// supplies the separating whitespace.
func joinChunkText(prev, next string) string {
	if prev == "" {
		return next
	}
	if next == "" {
		return prev
	}
	if strings.HasSuffix(prev, "\n\n") || strings.HasPrefix(next, "\n\n") {
		return prev + next
	}
	return strings.TrimRight(prev, " \t\n") + "\n\n" + strings.TrimLeft(next, " \t\n")
}

func unionDocumentIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// applyOverlap prepends, to every chunk but the first, a decoded tail of
// up to overlap tokens taken from the end of the previous chunk's final
// text. It runs after image merging, so a merged chunk's tail (including
// any image reference it absorbed) feeds the overlap for the chunk that
// follows it.
func applyOverlap(chunks []Chunk, tok tokenizer.Tokenizer, overlap int) []Chunk {
	if overlap <= 0 {
		return chunks
	}
	for i := 1; i < len(chunks); i++ {
		prevIDs := tok.EncodeToIDs(chunks[i-1].Text)
		n := overlap
		if n > len(prevIDs) {
			n = len(prevIDs)
		}
		if n == 0 {
			continue
		}
		prefix := tok.Decode(prevIDs[len(prevIDs)-n:])
		chunks[i].Text = joinOverlap(prefix, chunks[i].Text)
	}
	return chunks
}

func joinOverlap(prefix, text string) string {
	if prefix == "" {
		return text
	}
	if boundaryHasWhitespace(prefix, text) {
		return prefix + text
	}
	return prefix + " " + text
}

func boundaryHasWhitespace(prefix, text string) bool {
	if prefix == "" || text == "" {
		return true
	}
	return isSpaceByte(prefix[len(prefix)-1]) || isSpaceByte(text[0])
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// finalize recomputes each chunk's token count against its final text,
// after both image merging and overlap prefixing have been applied.
func finalize(chunks []Chunk, tok tokenizer.Tokenizer) {
	for i := range chunks {
		chunks[i].TokenCount = tok.CountTokens(chunks[i].Text)
	}
}
