package model

import (
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// PerformanceObservation is an append-only record of a single task
// completion outcome. Observations are created exactly once per
// completion and never mutated; the reliability estimator consumes them
// as decay-weighted input.
type PerformanceObservation struct {
	ID          types.ObservationID
	UserID      types.UserID
	TaskID      types.TaskID
	CompletedAt time.Time
	WasOnTime   bool
	Quality     float64
	HoursSpent  float64
	Priority    types.Priority
	SkillsUsed  []string
}

// Validate checks invariants on the observation
func (o *PerformanceObservation) Validate() error {
	if o.UserID == "" {
		return goerr.New("observation user ID is required")
	}
	if o.TaskID == "" {
		return goerr.New("observation task ID is required")
	}
	if o.Quality < 0 || o.Quality > 1 {
		return goerr.Wrap(ErrScoreOutOfRange, "observation quality out of range",
			goerr.V("taskID", o.TaskID),
			goerr.V("quality", o.Quality))
	}
	if o.HoursSpent < 0 {
		return goerr.Wrap(ErrNegativeDuration, "observation hours out of range",
			goerr.V("taskID", o.TaskID),
			goerr.V("hours", o.HoursSpent))
	}
	return nil
}
