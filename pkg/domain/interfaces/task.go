package interfaces

import (
	"context"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// TaskListOption filters task listings
type TaskListOption struct {
	AssigneeID types.UserID
	ProjectID  types.ProjectID
}

// TaskRepository defines the interface for Task persistence
type TaskRepository interface {
	// Create persists a new task
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Get retrieves a task by ID
	Get(ctx context.Context, id types.TaskID) (*model.Task, error)

	// List retrieves tasks matching the option; a zero option lists all
	List(ctx context.Context, opt TaskListOption) ([]*model.Task, error)

	// Update replaces a stored task
	Update(ctx context.Context, task *model.Task) (*model.Task, error)

	// Delete removes a task by ID
	Delete(ctx context.Context, id types.TaskID) error

	// CountActiveByAssignee returns the number of CREATED/IN_PROGRESS
	// tasks currently assigned to the user. Scoring callers must fetch
	// this fresh per call.
	CountActiveByAssignee(ctx context.Context, userID types.UserID) (int, error)

	// CountAssignedSince returns the number of tasks assigned to the user
	// that were created at or after the given time.
	CountAssignedSince(ctx context.Context, userID types.UserID, since time.Time) (int, error)
}
