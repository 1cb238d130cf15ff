package interfaces

import (
	"context"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// PerformanceRepository defines the interface for append-only performance
// observation persistence. Observations are never updated or deleted in
// normal operation.
type PerformanceRepository interface {
	// Create appends a new observation
	Create(ctx context.Context, obs *model.PerformanceObservation) (*model.PerformanceObservation, error)

	// ListByUserSince retrieves the user's observations completed at or
	// after the given time, newest first.
	ListByUserSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.PerformanceObservation, error)
}
