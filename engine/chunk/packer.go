package chunk

import (
	"strings"

	"github.com/gmanvel/graphrag/engine/tokenizer"
)

// terminalLevel is the ladder depth at which ladderSeparatorsForLevel
// returns nil, triggering the absent-separators per-character fallback.
// Recursion never proceeds past this level: a fragment that is still over
// budget here is emitted as its own chunk regardless, so packing always
// converges even on text with no usable separator at any level.
var terminalLevel = len(ladder)

// pendingChunk is the packer's internal output: chunk text plus the byte
// range it spans in the normalized, concatenated stream, used afterward to
// look up provenance document ids.
type pendingChunk struct {
	Text       string
	Start, End int
}

// packOptions threads the tokenizer, target size, and the optimized/naive
// materialization strategy through recursive pack calls.
type packOptions struct {
	tok       tokenizer.Tokenizer
	size      int
	optimized bool
	// stream is the full normalized, concatenated input; used by the
	// optimized strategy to materialize a chunk's text via a single slice
	// of stream at flush time instead of accumulating it incrementally.
	stream string
}

// pack greedily accumulates fragments of text (split at the given ladder
// level) into a growing buffer, flushing it as a chunk whenever the next
// fragment would overflow size, and recursing into the next ladder level
// whenever a single fragment itself exceeds size. baseOffset is the
// absolute byte offset of text within opt.stream, letting provenance and
// the optimized path reason about byte ranges without fragments
// themselves carrying offsets.
func pack(text string, baseOffset int, level int, opt *packOptions) []pendingChunk {
	fragments := splitToFragments(text, ladderSeparatorsForLevel(level))

	var out []pendingChunk
	buf := newPackBuffer(opt.optimized)

	flush := func() {
		if !buf.nonEmpty() {
			return
		}
		out = append(out, buf.materialize(opt))
		buf.reset()
	}

	cursor := baseOffset
	for _, f := range fragments {
		fStart, fEnd := cursor, cursor+len(f.Content)
		cursor = fEnd
		if f.Content == "" {
			continue
		}
		fTokens := opt.tok.CountTokens(f.Content)

		switch {
		case buf.tokens+fTokens <= opt.size:
			buf.append(f.Content, fStart, fEnd, fTokens)
		case fTokens > opt.size && level < terminalLevel:
			flush()
			out = append(out, pack(f.Content, fStart, level+1, opt)...)
		default:
			flush()
			buf.append(f.Content, fStart, fEnd, fTokens)
		}
	}
	flush()
	return out
}

// ladderSeparatorsForLevel returns the ladder's separator set for level,
// or nil (the splitter's absent-separators fallback) once level reaches
// terminalLevel.
func ladderSeparatorsForLevel(level int) []string {
	if level < len(ladder) {
		return ladder[level]
	}
	return nil
}

// packBuffer accumulates fragment content for the chunk currently being
// built. It tracks the covered byte range unconditionally (cheap) and
// additionally builds the text incrementally unless the optimized strategy
// is in use, in which case the text is sliced from opt.stream at flush
// time instead.
type packBuffer struct {
	builder    strings.Builder
	start, end int
	tokens     int
	started    bool
	rangeOnly  bool
}

func newPackBuffer(rangeOnly bool) *packBuffer {
	return &packBuffer{start: -1, rangeOnly: rangeOnly}
}

func (b *packBuffer) nonEmpty() bool {
	return b.started
}

func (b *packBuffer) append(content string, start, end, tokens int) {
	if !b.started {
		b.start = start
		b.started = true
	}
	b.end = end
	b.tokens += tokens
	if !b.rangeOnly {
		b.builder.WriteString(content)
	}
}

func (b *packBuffer) materialize(opt *packOptions) pendingChunk {
	if opt.optimized {
		return pendingChunk{Text: opt.stream[b.start:b.end], Start: b.start, End: b.end}
	}
	return pendingChunk{Text: b.builder.String(), Start: b.start, End: b.end}
}

func (b *packBuffer) reset() {
	b.builder.Reset()
	b.start = -1
	b.end = 0
	b.tokens = 0
	b.started = false
}
