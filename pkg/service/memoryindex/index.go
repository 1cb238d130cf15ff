// Package memoryindex provides an in-process semantic memory index:
// embeddings are computed through an LLM client, L2-normalized, and
// searched by inner product with metadata post-filtering.
package memoryindex

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// EmbeddingClient is the subset of gollem.LLMClient the index needs.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

// Index holds memory records in process and serves filtered similarity
// search over them. All methods are safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	records   map[types.MemoryID]*model.MemoryRecord
	embedder  EmbeddingClient
	dimension int
	overfetch int
}

// Option configures an Index.
type Option func(*Index)

// WithDimension overrides the embedding dimension (default
// model.EmbeddingDimension).
func WithDimension(d int) Option {
	return func(x *Index) {
		x.dimension = d
	}
}

// WithOverfetchFactor sets how many raw candidates are fetched per
// requested result before metadata filtering (default 5).
func WithOverfetchFactor(f int) Option {
	return func(x *Index) {
		if f >= 1 {
			x.overfetch = f
		}
	}
}

// New creates an empty index backed by the given embedding client.
func New(embedder EmbeddingClient, opts ...Option) *Index {
	x := &Index{
		records:   make(map[types.MemoryID]*model.MemoryRecord),
		embedder:  embedder,
		dimension: model.EmbeddingDimension,
		overfetch: 5,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Size returns the number of records currently held.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// Embed computes the L2-normalized embedding of the given text.
func (x *Index) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(model.ErrEmptyEmbeddingText, "failed to embed text")
	}

	vectors, err := x.embedder.GenerateEmbedding(ctx, x.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, goerr.New("embedding client returned no vector")
	}

	vec := make([]float32, len(vectors[0]))
	for i, v := range vectors[0] {
		vec[i] = float32(v)
	}
	normalize(vec)
	return vec, nil
}

// Insert embeds the text and adds a record to the index. If a record with
// the same ID already exists the call is a silent no-op.
func (x *Index) Insert(ctx context.Context, rec *model.MemoryRecord) error {
	x.mu.RLock()
	_, exists := x.records[rec.ID]
	x.mu.RUnlock()
	if exists {
		return nil
	}
	return x.put(ctx, rec, false)
}

// Upsert embeds the text and adds or replaces the record.
func (x *Index) Upsert(ctx context.Context, rec *model.MemoryRecord) error {
	return x.put(ctx, rec, true)
}

func (x *Index) put(ctx context.Context, rec *model.MemoryRecord, overwrite bool) error {
	if rec.ID == "" {
		return goerr.New("memory record ID is required")
	}

	embedding := rec.Embedding
	if len(embedding) == 0 {
		vec, err := x.Embed(ctx, rec.Text)
		if err != nil {
			return err
		}
		embedding = vec
	} else {
		embedding = append([]float32(nil), embedding...)
		normalize(embedding)
	}

	stored := *rec
	stored.Embedding = embedding
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if _, exists := x.records[stored.ID]; exists && !overwrite {
		return nil
	}
	x.records[stored.ID] = &stored
	return nil
}

// BulkLoad atomically replaces the index contents with the given records.
// Records must already carry embeddings; they are re-normalized on load.
// Used to rebuild the index from durable storage on cold start.
func (x *Index) BulkLoad(records []*model.MemoryRecord) error {
	next := make(map[types.MemoryID]*model.MemoryRecord, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return goerr.New("memory record ID is required")
		}
		if len(rec.Embedding) == 0 {
			return goerr.New("memory record has no embedding", goerr.V("id", rec.ID))
		}
		stored := *rec
		stored.Embedding = append([]float32(nil), rec.Embedding...)
		normalize(stored.Embedding)
		next[stored.ID] = &stored
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.records = next
	return nil
}

// Search embeds the query and returns up to topK records matching the
// filter, ordered by descending cosine similarity. The scan gathers
// topK * overfetch raw candidates before filtering so that metadata
// filters do not starve the result set.
func (x *Index) Search(ctx context.Context, query string, topK int, filter model.SearchFilter) ([]*model.ScoredMemory, error) {
	if topK <= 0 {
		return nil, goerr.New("topK must be positive", goerr.V("topK", topK))
	}

	x.mu.RLock()
	empty := len(x.records) == 0
	x.mu.RUnlock()
	if empty {
		return nil, nil
	}

	queryVec, err := x.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	x.mu.RLock()
	scored := make([]*model.ScoredMemory, 0, len(x.records))
	for _, rec := range x.records {
		scored = append(scored, &model.ScoredMemory{
			Record: rec,
			Score:  dot(queryVec, rec.Embedding),
		})
	}
	x.mu.RUnlock()

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.ID < scored[j].Record.ID
	})

	fetch := topK * x.overfetch
	if fetch > len(scored) {
		fetch = len(scored)
	}

	results := make([]*model.ScoredMemory, 0, topK)
	for _, sm := range scored[:fetch] {
		if !filter.Match(sm.Record) {
			continue
		}
		results = append(results, sm)
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
