package usecase

import (
	"context"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/schedule"
	"github.com/m-mizutani/goerr/v2"
)

// CriticalPathResult is the duration-weighted longest dependency chain of
// a task set.
type CriticalPathResult struct {
	Path         []types.TaskID
	TotalMinutes int
}

// CriticalPath analyzes the dependency graph of the project's tasks (all
// tasks when projectID is empty). A cyclic graph yields an empty path.
func (uc *UseCases) CriticalPath(ctx context.Context, projectID types.ProjectID) (*CriticalPathResult, error) {
	tasks, err := uc.repo.Task().List(ctx, interfaces.TaskListOption{ProjectID: projectID})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V("projectID", projectID))
	}

	g := schedule.NewGraph(tasks)
	path := g.CriticalPath()
	return &CriticalPathResult{
		Path:         path,
		TotalMinutes: g.TotalDuration(path),
	}, nil
}

// SimulateDelay propagates a delay from the given task across its
// dependents within the project's task set.
func (uc *UseCases) SimulateDelay(ctx context.Context, projectID types.ProjectID, taskID types.TaskID, delayMinutes int) (map[types.TaskID]int, error) {
	if delayMinutes < 0 {
		return nil, goerr.New("delay must not be negative", goerr.V("delayMinutes", delayMinutes))
	}

	tasks, err := uc.repo.Task().List(ctx, interfaces.TaskListOption{ProjectID: projectID})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V("projectID", projectID))
	}

	return schedule.NewGraph(tasks).SimulateDelay(taskID, delayMinutes), nil
}
