package model

import (
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Task represents a unit of work tracked by the engine
type Task struct {
	ID                types.TaskID
	Title             string
	Description       string
	Status            types.TaskStatus
	Priority          types.Priority
	Deadline          *time.Time
	AssigneeID        types.UserID
	TeamID            types.TeamID
	DeptID            types.DeptID
	ProjectID         types.ProjectID
	RequiredSkills    []string
	EstimatedDuration int // minutes
	Dependencies      []types.TaskID
	RiskScore         float64
	LastAction        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ActualStartAt     *time.Time

	// Completion fields, populated by the completion flow
	CompletedAt       *time.Time
	CompletionQuality *float64
	ActualHours       *float64
	WasOnTime         *bool
}

// Validate checks invariants on the task record. A task that lists itself
// as a dependency or carries a negative duration is a contract breach.
func (t *Task) Validate() error {
	if t.Title == "" {
		return goerr.New("task title is required", goerr.V("taskID", t.ID))
	}
	if !t.Status.Normalize().IsValid() {
		return goerr.New("invalid task status", goerr.V("taskID", t.ID), goerr.V("status", t.Status))
	}
	if !t.Priority.Normalize().IsValid() {
		return goerr.New("invalid task priority", goerr.V("taskID", t.ID), goerr.V("priority", t.Priority))
	}
	if t.EstimatedDuration < 0 {
		return goerr.Wrap(ErrNegativeDuration, "invalid task duration",
			goerr.V("taskID", t.ID),
			goerr.V("duration", t.EstimatedDuration))
	}
	for _, dep := range t.Dependencies {
		if dep == t.ID {
			return goerr.Wrap(ErrSelfDependency, "invalid task dependency",
				goerr.V("taskID", t.ID))
		}
	}
	return nil
}

// StartedAt returns the effective start time for elapsed-time signals:
// the actual start when recorded, otherwise the creation time.
func (t *Task) StartedAt() time.Time {
	if t.ActualStartAt != nil {
		return *t.ActualStartAt
	}
	return t.CreatedAt
}

// DeadlineStatusAt classifies the given moment against the task deadline.
// A task without a deadline is always On Time; a deadline more than 24
// hours away counts as Early.
func (t *Task) DeadlineStatusAt(now time.Time) types.DeadlineStatus {
	if t.Deadline == nil {
		return types.DeadlineOnTime
	}
	if now.After(*t.Deadline) {
		return types.DeadlineOverdue
	}
	if t.Deadline.Sub(now) > 24*time.Hour {
		return types.DeadlineEarly
	}
	return types.DeadlineOnTime
}
