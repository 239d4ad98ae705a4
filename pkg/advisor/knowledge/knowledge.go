// Package knowledge is the retrieval fallback for questions the
// structured lookups cannot answer: free-text documents are chunked,
// embedded, stored, and searched by cosine similarity, and the best
// chunks ground an LLM answer.
package knowledge

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/campuscore/advisor/pkg/advisor/store"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Answerer produces a grounded answer from retrieved context chunks.
type Answerer interface {
	GroundedAnswer(ctx context.Context, question string, contexts []string) (string, error)
}

// Base is the embedded knowledge base.
type Base struct {
	store     store.VectorStore
	embedder  Embedder
	answerer  Answerer
	chunkSize int
	topK      int
	entropy   *ulid.MonotonicEntropy
}

// Options configures a Base.
type Options struct {
	Store     store.VectorStore
	Embedder  Embedder
	Answerer  Answerer
	ChunkSize int // runes per chunk, default 500
	TopK      int // chunks retrieved per question, default 3
}

// New creates a knowledge base.
func New(opts Options) *Base {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 500
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	return &Base{
		store:     opts.Store,
		embedder:  opts.Embedder,
		answerer:  opts.Answerer,
		chunkSize: opts.ChunkSize,
		topK:      opts.TopK,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Ingest chunks a document, embeds each chunk, and stores it.
func (b *Base) Ingest(ctx context.Context, content string) error {
	for _, chunk := range Chunk(content, b.chunkSize) {
		vec, err := b.embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("embed chunk: %w", err)
		}
		doc := store.VectorDoc{
			ID:        ulid.MustNew(ulid.Now(), b.entropy).String(),
			Content:   chunk,
			Embedding: vec,
		}
		if err := b.store.UpsertVector(ctx, doc); err != nil {
			return fmt.Errorf("store chunk: %w", err)
		}
	}
	return nil
}

// Answer retrieves the chunks most similar to the question and asks
// the answerer to respond from them.
func (b *Base) Answer(ctx context.Context, question string) (string, error) {
	contexts, err := b.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}
	return b.answerer.GroundedAnswer(ctx, question, contexts)
}

// Retrieve returns the topK stored chunks ranked by cosine similarity
// to the question.
func (b *Base) Retrieve(ctx context.Context, question string) ([]string, error) {
	queryVec, err := b.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	docs, err := b.store.AllVectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	type scored struct {
		content string
		sim     float64
	}
	ranked := make([]scored, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, scored{content: doc.Content, sim: Cosine(queryVec, doc.Embedding)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].sim > ranked[j].sim })

	k := b.topK
	if k > len(ranked) {
		k = len(ranked)
	}
	contexts := make([]string, k)
	for i := 0; i < k; i++ {
		contexts[i] = ranked[i].content
	}
	return contexts, nil
}

// Chunk splits text into fixed-size rune windows, trimming whitespace
// and dropping empty chunks.
func Chunk(text string, size int) []string {
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// Cosine computes cosine similarity; mismatched or zero vectors score
// zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
