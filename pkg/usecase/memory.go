package usecase

import (
	"context"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AddMemoryInput is an externally supplied memory entry.
type AddMemoryInput struct {
	ID       types.MemoryID
	Text     string
	Metadata model.MemoryMetadata
}

// AddMemory embeds and stores one memory record in both the index and the
// durable store. An existing id is a silent no-op in the index.
func (uc *UseCases) AddMemory(ctx context.Context, input AddMemoryInput) (*model.MemoryRecord, error) {
	if uc.index == nil {
		return nil, ErrMemoryDisabled
	}

	rec := &model.MemoryRecord{
		ID:       input.ID,
		Text:     input.Text,
		Metadata: input.Metadata,
	}
	if rec.ID == "" {
		rec.ID = types.NewMemoryID()
	}
	if rec.Metadata.Timestamp.IsZero() {
		rec.Metadata.Timestamp = time.Now()
	}

	vec, err := uc.index.Embed(ctx, rec.Text)
	if err != nil {
		return nil, err
	}
	rec.Embedding = vec

	if err := uc.index.Insert(ctx, rec); err != nil {
		return nil, err
	}
	if err := uc.repo.Memory().Put(ctx, rec); err != nil {
		return nil, goerr.Wrap(err, "failed to persist memory record", goerr.V("memoryID", rec.ID))
	}
	return rec, nil
}

// InitMemories atomically replaces all memories with the given set, in
// both the index and the durable store.
func (uc *UseCases) InitMemories(ctx context.Context, inputs []AddMemoryInput) (int, error) {
	if uc.index == nil {
		return 0, ErrMemoryDisabled
	}

	records := make([]*model.MemoryRecord, 0, len(inputs))
	for _, input := range inputs {
		rec := &model.MemoryRecord{
			ID:       input.ID,
			Text:     input.Text,
			Metadata: input.Metadata,
		}
		if rec.ID == "" {
			rec.ID = types.NewMemoryID()
		}
		vec, err := uc.index.Embed(ctx, rec.Text)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to embed memory", goerr.V("memoryID", rec.ID))
		}
		rec.Embedding = vec
		records = append(records, rec)
	}

	if err := uc.index.BulkLoad(records); err != nil {
		return 0, err
	}

	if err := uc.repo.Memory().Clear(ctx); err != nil {
		return 0, goerr.Wrap(err, "failed to clear memory store")
	}
	for _, rec := range records {
		if err := uc.repo.Memory().Put(ctx, rec); err != nil {
			return 0, goerr.Wrap(err, "failed to persist memory record", goerr.V("memoryID", rec.ID))
		}
	}
	return len(records), nil
}

// SearchMemories runs a filtered similarity search over the index.
func (uc *UseCases) SearchMemories(ctx context.Context, query string, topK int, filter model.SearchFilter) ([]*model.ScoredMemory, error) {
	if uc.index == nil {
		return nil, ErrMemoryDisabled
	}
	if topK <= 0 {
		topK = 3
	}
	return uc.index.Search(ctx, query, topK, filter)
}

// ReloadMemories rebuilds the index from the durable store. Called on
// cold start before the server accepts traffic.
func (uc *UseCases) ReloadMemories(ctx context.Context) (int, error) {
	if uc.index == nil {
		return 0, nil
	}

	records, err := uc.repo.Memory().List(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list persisted memories")
	}
	if err := uc.index.BulkLoad(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
