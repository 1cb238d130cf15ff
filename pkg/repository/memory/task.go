package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[types.TaskID]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.TaskID]*model.Task),
	}
}

func copyTask(t *model.Task) *model.Task {
	copied := *t
	copied.RequiredSkills = append([]string(nil), t.RequiredSkills...)
	copied.Dependencies = append([]types.TaskID(nil), t.Dependencies...)
	if t.Deadline != nil {
		d := *t.Deadline
		copied.Deadline = &d
	}
	if t.ActualStartAt != nil {
		s := *t.ActualStartAt
		copied.ActualStartAt = &s
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		copied.CompletedAt = &c
	}
	if t.CompletionQuality != nil {
		q := *t.CompletionQuality
		copied.CompletionQuality = &q
	}
	if t.ActualHours != nil {
		h := *t.ActualHours
		copied.ActualHours = &h
	}
	if t.WasOnTime != nil {
		w := *t.WasOnTime
		copied.WasOnTime = &w
	}
	return &copied
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTask(task)
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	if _, exists := r.tasks[created.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "task already exists", goerr.V("taskID", created.ID))
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Status = created.Status.Normalize()

	r.tasks[created.ID] = created
	return copyTask(created), nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", id))
	}
	return copyTask(task), nil
}

func (r *taskRepository) List(ctx context.Context, opt interfaces.TaskListOption) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if opt.AssigneeID != "" && task.AssigneeID != opt.AssigneeID {
			continue
		}
		if opt.ProjectID != "" && task.ProjectID != opt.ProjectID {
			continue
		}
		result = append(result, copyTask(task))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.tasks[task.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", task.ID))
	}

	updated := copyTask(task)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.tasks[updated.ID] = updated
	return copyTask(updated), nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", id))
	}
	delete(r.tasks, id)
	return nil
}

func (r *taskRepository) CountActiveByAssignee(ctx context.Context, userID types.UserID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, task := range r.tasks {
		if task.AssigneeID == userID && task.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *taskRepository) CountAssignedSince(ctx context.Context, userID types.UserID, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, task := range r.tasks {
		if task.AssigneeID == userID && !task.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
