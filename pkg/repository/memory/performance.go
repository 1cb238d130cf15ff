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

type performanceRepository struct {
	mu           sync.RWMutex
	observations map[types.ObservationID]*model.PerformanceObservation
}

func newPerformanceRepository() *performanceRepository {
	return &performanceRepository{
		observations: make(map[types.ObservationID]*model.PerformanceObservation),
	}
}

func copyObservation(o *model.PerformanceObservation) *model.PerformanceObservation {
	copied := *o
	copied.SkillsUsed = append([]string(nil), o.SkillsUsed...)
	return &copied
}

func (r *performanceRepository) Create(ctx context.Context, obs *model.PerformanceObservation) (*model.PerformanceObservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyObservation(obs)
	if created.ID == "" {
		created.ID = types.NewObservationID()
	}
	if _, exists := r.observations[created.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "observation already exists", goerr.V("observationID", created.ID))
	}
	if created.CompletedAt.IsZero() {
		created.CompletedAt = time.Now().UTC()
	}

	r.observations[created.ID] = created
	return copyObservation(created), nil
}

func (r *performanceRepository) ListByUserSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.PerformanceObservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.PerformanceObservation
	for _, obs := range r.observations {
		if obs.UserID != userID {
			continue
		}
		if obs.CompletedAt.Before(since) {
			continue
		}
		result = append(result, copyObservation(obs))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})

	return result, nil
}
