package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/advisor/pkg/advisor/store"
)

// wordEmbedder maps known words to fixed vectors so similarity is
// predictable.
type wordEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e wordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	for word, vec := range e.vectors {
		if strings.Contains(strings.ToLower(text), word) {
			return vec, nil
		}
	}
	return []float32{0, 0, 1}, nil
}

type memVectors struct {
	docs []store.VectorDoc
}

func (m *memVectors) UpsertVector(ctx context.Context, doc store.VectorDoc) error {
	for i, d := range m.docs {
		if d.ID == doc.ID {
			m.docs[i] = doc
			return nil
		}
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memVectors) AllVectors(ctx context.Context) ([]store.VectorDoc, error) {
	return m.docs, nil
}

type echoAnswerer struct{}

func (echoAnswerer) GroundedAnswer(ctx context.Context, question string, contexts []string) (string, error) {
	if len(contexts) == 0 {
		return "", nil
	}
	return contexts[0], nil
}

func TestIngestAndRetrieve(t *testing.T) {
	ctx := context.Background()
	embedder := wordEmbedder{vectors: map[string][]float32{
		"registration": {1, 0, 0},
		"library":      {0, 1, 0},
	}}
	vecs := &memVectors{}
	kb := New(Options{Store: vecs, Embedder: embedder, Answerer: echoAnswerer{}, TopK: 1})

	require.NoError(t, kb.Ingest(ctx, "registration opens four weeks early"))
	require.NoError(t, kb.Ingest(ctx, "library hours run until midnight"))
	require.Len(t, vecs.docs, 2)

	contexts, err := kb.Retrieve(ctx, "when does registration open")
	require.NoError(t, err)
	require.Len(t, contexts, 1)
	assert.Contains(t, contexts[0], "registration")
}

func TestAnswerUsesBestChunk(t *testing.T) {
	ctx := context.Background()
	embedder := wordEmbedder{vectors: map[string][]float32{
		"registration": {1, 0, 0},
		"library":      {0, 1, 0},
	}}
	vecs := &memVectors{}
	kb := New(Options{Store: vecs, Embedder: embedder, Answerer: echoAnswerer{}, TopK: 1})

	require.NoError(t, kb.Ingest(ctx, "library hours run until midnight"))
	require.NoError(t, kb.Ingest(ctx, "registration opens four weeks early"))

	answer, err := kb.Answer(ctx, "library schedule")
	require.NoError(t, err)
	assert.Contains(t, answer, "library")
}

func TestRetrieveEmptyStore(t *testing.T) {
	kb := New(Options{Store: &memVectors{}, Embedder: wordEmbedder{}, Answerer: echoAnswerer{}})

	contexts, err := kb.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, contexts)
}

func TestIngestEmbedFailure(t *testing.T) {
	kb := New(Options{
		Store:    &memVectors{},
		Embedder: wordEmbedder{err: errors.New("model offline")},
		Answerer: echoAnswerer{},
	})

	err := kb.Ingest(context.Background(), "some document")
	assert.ErrorContains(t, err, "embed chunk")
}

func TestChunk(t *testing.T) {
	chunks := Chunk("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)

	assert.Empty(t, Chunk("", 4))
	assert.Empty(t, Chunk("    ", 4), "whitespace-only chunks are dropped")

	// rune windows, not byte windows
	chunks = Chunk("héllo wörld", 6)
	assert.Equal(t, []string{"héllo", "wörld"}, chunks)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	assert.Zero(t, Cosine([]float32{1, 2}, []float32{1, 2, 3}), "mismatched lengths")
	assert.Zero(t, Cosine(nil, nil))
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 1}), "zero vector")
}
