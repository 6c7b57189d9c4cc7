package chunk

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncoding = "cl100k_base"

func TestChunk(t *testing.T) {
	t.Run("Should return a single chunk for text within budget", func(t *testing.T) {
		slices := []Slice{{DocumentID: "doc1", Text: "A short sentence that easily fits."}}
		chunks, err := Chunk(slices, Config{Size: 200, Overlap: 0, EncodingModel: testEncoding})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "A short sentence that easily fits.", chunks[0].Text)
		assert.Equal(t, []string{"doc1"}, chunks[0].DocumentIDs)
		assert.Greater(t, chunks[0].TokenCount, 0)
	})

	t.Run("Should return nil for slices with no content", func(t *testing.T) {
		chunks, err := Chunk([]Slice{{DocumentID: "doc1", Text: ""}}, Config{Size: 10, EncodingModel: testEncoding})
		require.NoError(t, err)
		assert.Nil(t, chunks)
	})

	t.Run("Should return nil for an empty slice list", func(t *testing.T) {
		chunks, err := Chunk(nil, Config{Size: 10, EncodingModel: testEncoding})
		require.NoError(t, err)
		assert.Nil(t, chunks)
	})

	t.Run("Should reject a zero size", func(t *testing.T) {
		_, err := Chunk([]Slice{{DocumentID: "doc1", Text: "text"}}, Config{Size: 0, EncodingModel: testEncoding})
		require.Error(t, err)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("Should reject an overlap equal to or greater than size", func(t *testing.T) {
		_, err := Chunk([]Slice{{DocumentID: "doc1", Text: "text"}}, Config{Size: 10, Overlap: 10, EncodingModel: testEncoding})
		require.Error(t, err)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("Should reject a missing encoding model", func(t *testing.T) {
		_, err := Chunk([]Slice{{DocumentID: "doc1", Text: "text"}}, Config{Size: 10})
		require.Error(t, err)
	})

	t.Run("Should split long prose across multiple chunks within budget", func(t *testing.T) {
		paragraph := strings.Repeat("word ", 400) + "\n\n" + strings.Repeat("more ", 400)
		chunks, err := Chunk([]Slice{{DocumentID: "doc1", Text: paragraph}}, Config{Size: 50, EncodingModel: testEncoding})
		require.NoError(t, err)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, c.TokenCount, 50)
		}
	})

	t.Run("Should normalize CRLF and lone CR before chunking", func(t *testing.T) {
		chunks, err := Chunk([]Slice{{DocumentID: "doc1", Text: "line one\r\nline two\rline three"}},
			Config{Size: 200, EncodingModel: testEncoding})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.NotContains(t, chunks[0].Text, "\r")
		assert.Equal(t, "line one\nline two\nline three", chunks[0].Text)
	})

	t.Run("Should merge a trailing image reference into the previous chunk", func(t *testing.T) {
		text := strings.Repeat("word ", 60) + "\n\n![diagram](diagram.png)"
		chunks, err := Chunk([]Slice{{DocumentID: "doc1", Text: text}}, Config{Size: 50, EncodingModel: testEncoding})
		require.NoError(t, err)
		last := chunks[len(chunks)-1]
		assert.Contains(t, last.Text, "![diagram](diagram.png)")
		for _, c := range chunks[:len(chunks)-1] {
			assert.NotContains(t, c.Text, "![diagram](diagram.png)")
		}
	})

	t.Run("Should carry an overlap prefix from the previous chunk", func(t *testing.T) {
		text := strings.Repeat("alpha bravo charlie delta echo foxtrot golf hotel. ", 30)
		withOverlap, err := Chunk([]Slice{{DocumentID: "doc1", Text: text}}, Config{Size: 40, Overlap: 10, EncodingModel: testEncoding})
		require.NoError(t, err)
		withoutOverlap, err := Chunk([]Slice{{DocumentID: "doc1", Text: text}}, Config{Size: 40, Overlap: 0, EncodingModel: testEncoding})
		require.NoError(t, err)
		require.Greater(t, len(withOverlap), 1)
		require.Equal(t, len(withOverlap), len(withoutOverlap))
		for i := 1; i < len(withOverlap); i++ {
			assert.Greater(t, len(withOverlap[i].Text), len(withoutOverlap[i].Text))
		}
		assert.Equal(t, withOverlap[0].Text, withoutOverlap[0].Text)
	})

	t.Run("Should track provenance across multiple slices", func(t *testing.T) {
		slices := []Slice{
			{DocumentID: "doc1", Text: strings.Repeat("alpha ", 60)},
			{DocumentID: "doc2", Text: strings.Repeat("beta ", 60)},
		}
		chunks, err := Chunk(slices, Config{Size: 30, EncodingModel: testEncoding})
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		var sawDoc1, sawDoc2 bool
		for _, c := range chunks {
			for _, id := range c.DocumentIDs {
				switch id {
				case "doc1":
					sawDoc1 = true
				case "doc2":
					sawDoc2 = true
				}
			}
		}
		assert.True(t, sawDoc1)
		assert.True(t, sawDoc2)
	})

	t.Run("Should fall back to a default encoding for an unknown model name", func(t *testing.T) {
		chunks, err := Chunk([]Slice{{DocumentID: "doc1", Text: "hello there"}}, Config{Size: 20, EncodingModel: "not-a-real-model"})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
	})
}

func TestChunkWithContext(t *testing.T) {
	t.Run("Should accept a caller context without altering the result", func(t *testing.T) {
		slices := []Slice{{DocumentID: "doc1", Text: "hello world"}}
		cfg := Config{Size: 20, EncodingModel: testEncoding}
		withCtx, err := ChunkWithContext(context.Background(), slices, cfg)
		require.NoError(t, err)
		plain, err := Chunk(slices, cfg)
		require.NoError(t, err)
		assert.Equal(t, plain, withCtx)
	})
}

func TestChunkOptimized(t *testing.T) {
	t.Run("Should be bit-identical to Chunk across varied inputs", func(t *testing.T) {
		inputs := []struct {
			name  string
			text  string
			size  uint32
			ovrlp uint32
		}{
			{"short", "A short sentence.", 200, 0},
			{"headings", "# Title\n\nParagraph one.\n\n## Subheading\n\nParagraph two.", 20, 0},
			{"list", strings.Repeat("- item\n", 50), 15, 3},
			{"image", strings.Repeat("word ", 40) + "\n\n![x](x.png)", 30, 5},
			{"dense", "supercalifragilisticexpialidocious" + strings.Repeat("x", 80), 5, 0},
		}
		for _, in := range inputs {
			in := in
			t.Run(in.name, func(t *testing.T) {
				slices := []Slice{{DocumentID: "doc1", Text: in.text}}
				cfg := Config{Size: in.size, Overlap: in.ovrlp, EncodingModel: testEncoding}
				naive, err := Chunk(slices, cfg)
				require.NoError(t, err)
				optimized, err := ChunkOptimized(slices, cfg)
				require.NoError(t, err)
				require.Equal(t, len(naive), len(optimized))
				for i := range naive {
					assert.Equal(t, naive[i].Text, optimized[i].Text)
					assert.Equal(t, naive[i].TokenCount, optimized[i].TokenCount)
					assert.Equal(t, naive[i].DocumentIDs, optimized[i].DocumentIDs)
				}
			})
		}
	})
}
