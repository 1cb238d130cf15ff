package model

import (
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// EmbeddingDimension is the dimension of the embedding vector
// (Gemini text-embedding output size)
const EmbeddingDimension = 768

// MemoryMetadata carries the optional filterable attributes of a memory
// record. Zero values mean "not set".
type MemoryMetadata struct {
	UserID    types.UserID
	DeptID    types.DeptID
	TaskType  string
	Timestamp time.Time
}

// MemoryRecord is an immutable entry in the semantic memory index: the
// source text, its L2-normalized embedding, and filterable metadata.
// Records are never updated in place; re-insertion with an existing ID is
// a silent no-op (use Upsert for overwrite semantics).
type MemoryRecord struct {
	ID        types.MemoryID
	Text      string
	Embedding []float32
	Metadata  MemoryMetadata
	CreatedAt time.Time
}

// SearchFilter restricts memory search results by metadata equality.
// Empty fields do not filter.
type SearchFilter struct {
	UserID types.UserID
	DeptID types.DeptID
}

// Match reports whether the record passes the filter.
func (f SearchFilter) Match(r *MemoryRecord) bool {
	if f.UserID != "" && r.Metadata.UserID != f.UserID {
		return false
	}
	if f.DeptID != "" && r.Metadata.DeptID != f.DeptID {
		return false
	}
	return true
}

// ScoredMemory is a search result: a record with its cosine similarity to
// the query.
type ScoredMemory struct {
	Record *MemoryRecord
	Score  float64
}
