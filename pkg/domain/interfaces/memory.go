package interfaces

import (
	"context"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
)

// MemoryRepository defines the interface for durable storage of memory
// records. The in-process index owns similarity search; this repository
// only persists records so the index can be rebuilt on cold start.
type MemoryRepository interface {
	// Put persists a memory record keyed by its ID
	Put(ctx context.Context, rec *model.MemoryRecord) error

	// List retrieves all persisted memory records
	List(ctx context.Context) ([]*model.MemoryRecord, error)

	// Clear removes all persisted memory records
	Clear(ctx context.Context) error
}
