package chunk

import (
	"context"

	"github.com/gmanvel/graphrag/engine/tokenizer"
	"github.com/gmanvel/graphrag/pkg/chunkconfig"
	"github.com/gmanvel/graphrag/pkg/logger"
)

// Chunk segments slices into a sequence of chunks under config, using the
// naive (string-builder) packing strategy. See ChunkOptimized for a
// behaviorally identical, allocation-lighter variant.
func Chunk(slices []Slice, config Config) ([]Chunk, error) {
	return ChunkWithContext(context.Background(), slices, config)
}

// ChunkWithContext is Chunk with an explicit context, used only so callers
// that want correlated diagnostic logging can supply one; the chunker
// itself performs no blocking operation and needs no cancellation.
func ChunkWithContext(ctx context.Context, slices []Slice, config Config) ([]Chunk, error) {
	return runChunk(ctx, slices, config, false)
}

// ChunkOptimized is behaviorally indistinguishable from Chunk: same
// pipeline, same separator ladder, same packing decisions. It avoids
// incremental string-builder copies during packing by tracking byte
// ranges into the normalized stream and materializing each chunk's text
// with a single slice at flush time.
func ChunkOptimized(slices []Slice, config Config) ([]Chunk, error) {
	return runChunk(context.Background(), slices, config, true)
}

func runChunk(ctx context.Context, slices []Slice, config Config, optimized bool) ([]Chunk, error) {
	if err := chunkconfig.Validate(config.Size, config.Overlap, config.EncodingModel); err != nil {
		return nil, &ConfigError{cause: err}
	}

	normalized := make([]Slice, len(slices))
	for i, s := range slices {
		normalized[i] = Slice{DocumentID: s.DocumentID, Text: normalizeNewlines(s.Text)}
	}

	stream, prov := buildProvenanceTable(normalized)
	if stream == "" {
		return nil, nil
	}

	tok, err := tokenizer.Get(config.EncodingModel)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Debug("chunk: packing normalized stream",
		"bytes", len(stream), "size", config.Size, "overlap", config.Overlap,
		"encoding", tok.Encoding(), "optimized", optimized)

	opt := &packOptions{tok: tok, size: int(config.Size), optimized: optimized, stream: stream}
	pending := pack(stream, 0, 0, opt)

	chunks := assembleChunks(pending, prov)
	chunks = mergeImageChunks(chunks)
	chunks = applyOverlap(chunks, tok, int(config.Overlap))
	finalize(chunks, tok)

	log.Debug("chunk: packing complete", "chunks", len(chunks))
	return chunks, nil
}
