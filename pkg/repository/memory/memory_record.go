package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type memoryRecordRepository struct {
	mu      sync.RWMutex
	records map[types.MemoryID]*model.MemoryRecord
}

func newMemoryRecordRepository() *memoryRecordRepository {
	return &memoryRecordRepository{
		records: make(map[types.MemoryID]*model.MemoryRecord),
	}
}

func copyMemoryRecord(m *model.MemoryRecord) *model.MemoryRecord {
	copied := *m
	if m.Embedding != nil {
		copied.Embedding = make([]float32, len(m.Embedding))
		copy(copied.Embedding, m.Embedding)
	}
	return &copied
}

func (r *memoryRecordRepository) Put(ctx context.Context, rec *model.MemoryRecord) error {
	if rec.ID == "" {
		return goerr.New("memory record ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyMemoryRecord(rec)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.records[stored.ID] = stored
	return nil
}

func (r *memoryRecordRepository) List(ctx context.Context) ([]*model.MemoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.MemoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		result = append(result, copyMemoryRecord(rec))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *memoryRecordRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[types.MemoryID]*model.MemoryRecord)
	return nil
}
