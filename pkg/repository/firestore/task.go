package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// taskDoc is the Firestore document representation of model.Task
type taskDoc struct {
	ID                string     `firestore:"id"`
	Title             string     `firestore:"title"`
	Description       string     `firestore:"description"`
	Status            string     `firestore:"status"`
	Priority          string     `firestore:"priority"`
	Deadline          *time.Time `firestore:"deadline,omitempty"`
	AssigneeID        string     `firestore:"assignee_id"`
	TeamID            string     `firestore:"team_id"`
	DeptID            string     `firestore:"dept_id"`
	ProjectID         string     `firestore:"project_id"`
	RequiredSkills    []string   `firestore:"required_skills"`
	EstimatedDuration int        `firestore:"estimated_duration"`
	Dependencies      []string   `firestore:"dependencies"`
	RiskScore         float64    `firestore:"risk_score"`
	LastAction        string     `firestore:"last_action"`
	CreatedAt         time.Time  `firestore:"created_at"`
	UpdatedAt         time.Time  `firestore:"updated_at"`
	ActualStartAt     *time.Time `firestore:"actual_start_at,omitempty"`
	CompletedAt       *time.Time `firestore:"completed_at,omitempty"`
	CompletionQuality *float64   `firestore:"completion_quality,omitempty"`
	ActualHours       *float64   `firestore:"actual_hours,omitempty"`
	WasOnTime         *bool      `firestore:"was_on_time,omitempty"`
}

func toTaskDoc(t *model.Task) *taskDoc {
	deps := make([]string, len(t.Dependencies))
	for i, dep := range t.Dependencies {
		deps[i] = string(dep)
	}
	return &taskDoc{
		ID:                string(t.ID),
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		Deadline:          t.Deadline,
		AssigneeID:        string(t.AssigneeID),
		TeamID:            string(t.TeamID),
		DeptID:            string(t.DeptID),
		ProjectID:         string(t.ProjectID),
		RequiredSkills:    t.RequiredSkills,
		EstimatedDuration: t.EstimatedDuration,
		Dependencies:      deps,
		RiskScore:         t.RiskScore,
		LastAction:        t.LastAction,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		ActualStartAt:     t.ActualStartAt,
		CompletedAt:       t.CompletedAt,
		CompletionQuality: t.CompletionQuality,
		ActualHours:       t.ActualHours,
		WasOnTime:         t.WasOnTime,
	}
}

func fromTaskDoc(d *taskDoc) *model.Task {
	deps := make([]types.TaskID, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		deps[i] = types.TaskID(dep)
	}
	return &model.Task{
		ID:                types.TaskID(d.ID),
		Title:             d.Title,
		Description:       d.Description,
		Status:            types.TaskStatus(d.Status),
		Priority:          types.Priority(d.Priority),
		Deadline:          d.Deadline,
		AssigneeID:        types.UserID(d.AssigneeID),
		TeamID:            types.TeamID(d.TeamID),
		DeptID:            types.DeptID(d.DeptID),
		ProjectID:         types.ProjectID(d.ProjectID),
		RequiredSkills:    d.RequiredSkills,
		EstimatedDuration: d.EstimatedDuration,
		Dependencies:      deps,
		RiskScore:         d.RiskScore,
		LastAction:        d.LastAction,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		ActualStartAt:     d.ActualStartAt,
		CompletedAt:       d.CompletedAt,
		CompletionQuality: d.CompletionQuality,
		ActualHours:       d.ActualHours,
		WasOnTime:         d.WasOnTime,
	}
}

type taskRepository struct {
	client *firestore.Client
}

func (r *taskRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionTasks)
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	created := *task
	if created.ID == "" {
		created.ID = types.NewTaskID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Status = created.Status.Normalize()

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toTaskDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "task already exists", goerr.V("taskID", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("taskID", created.ID))
	}

	return &created, nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("taskID", id))
	}

	var d taskDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("taskID", id))
	}
	return fromTaskDoc(&d), nil
}

func (r *taskRepository) List(ctx context.Context, opt interfaces.TaskListOption) ([]*model.Task, error) {
	q := r.collection().Query
	if opt.AssigneeID != "" {
		q = q.Where("assignee_id", "==", string(opt.AssigneeID))
	}
	if opt.ProjectID != "" {
		q = q.Where("project_id", "==", string(opt.ProjectID))
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []*model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list tasks")
		}

		var d taskDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, fromTaskDoc(&d))
	}

	return result, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	docRef := r.collection().Doc(string(task.ID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", task.ID))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("taskID", task.ID))
	}

	var stored taskDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("taskID", task.ID))
	}

	updated := *task
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toTaskDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("taskID", task.ID))
	}
	return &updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	docRef := r.collection().Doc(string(id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "task not found", goerr.V("taskID", id))
		}
		return goerr.Wrap(err, "failed to get task", goerr.V("taskID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("taskID", id))
	}
	return nil
}

func (r *taskRepository) CountActiveByAssignee(ctx context.Context, userID types.UserID) (int, error) {
	q := r.collection().
		Where("assignee_id", "==", string(userID)).
		Where("status", "in", []string{
			string(types.TaskStatusCreated),
			string(types.TaskStatusInProgress),
		}).
		Select() // key-only, no document data transfer

	iter := q.Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count active tasks", goerr.V("userID", userID))
		}
		count++
	}
	return count, nil
}

func (r *taskRepository) CountAssignedSince(ctx context.Context, userID types.UserID, since time.Time) (int, error) {
	q := r.collection().
		Where("assignee_id", "==", string(userID)).
		Where("created_at", ">=", since).
		Select()

	iter := q.Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count assigned tasks", goerr.V("userID", userID))
		}
		count++
	}
	return count, nil
}
