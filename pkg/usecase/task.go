package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AssignmentDecision records how a task got its assignee.
type AssignmentDecision struct {
	AssigneeID types.UserID
	Score      float64
	Reasoning  string
	ByAdvisory bool
}

// CreateTask validates and persists a task. When no assignee is given the
// task is auto-assigned: the scorer ranks the candidate pool with fresh
// active task counts, and the advisory proposal, when configured and its
// pick is eligible, overrides the deterministic winner. The decision is
// nil when the caller supplied an assignee.
func (uc *UseCases) CreateTask(ctx context.Context, task *model.Task) (*model.Task, *AssignmentDecision, error) {
	task.Status = task.Status.Normalize()
	task.Priority = task.Priority.Normalize()
	if err := task.Validate(); err != nil {
		return nil, nil, err
	}

	var decision *AssignmentDecision
	if task.AssigneeID == "" {
		if len(task.RequiredSkills) == 0 {
			return nil, nil, goerr.Wrap(ErrNoEligibleCandidate, "cannot auto-assign without required skills")
		}
		d, err := uc.autoAssign(ctx, task)
		if err != nil {
			return nil, nil, err
		}
		decision = d
		task.AssigneeID = d.AssigneeID
		task.LastAction = fmt.Sprintf("AUTO_ASSIGN: %s", d.AssigneeID)
	}

	created, err := uc.repo.Task().Create(ctx, task)
	if err != nil {
		return nil, nil, err
	}
	return created, decision, nil
}

// autoAssign builds a candidate snapshot per user and picks the winner.
func (uc *UseCases) autoAssign(ctx context.Context, task *model.Task) (*AssignmentDecision, error) {
	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list candidates")
	}

	pool := make([]model.Candidate, 0, len(users))
	for _, user := range users {
		count, err := uc.repo.Task().CountActiveByAssignee(ctx, user.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count active tasks", goerr.V("userID", user.ID))
		}
		pool = append(pool, model.NewCandidate(user, count))
	}

	result := uc.scorer.Score(task, pool)
	if result.Best == nil {
		return nil, goerr.Wrap(ErrNoEligibleCandidate, "auto-assignment failed",
			goerr.V("taskID", task.ID),
			goerr.V("requiredSkills", task.RequiredSkills))
	}

	decision := &AssignmentDecision{
		AssigneeID: result.Best.Candidate.ID,
		Score:      result.Best.Score,
	}

	// The advisory proposal overrides the score, but only for an id that
	// passed the eligibility rules. Advisory failure is never fatal.
	if uc.advisory != nil {
		proposal, err := uc.advisory.ProposeAssignment(ctx, task, pool)
		switch {
		case err != nil:
			logging.From(ctx).Warn("assignment advisory failed, using deterministic score",
				"error", err.Error(), "taskID", string(task.ID))
		case result.Eligible(proposal.SelectedID):
			decision.AssigneeID = proposal.SelectedID
			decision.Reasoning = proposal.Reasoning
			decision.ByAdvisory = true
			for _, sc := range result.Ranked {
				if sc.Candidate.ID == proposal.SelectedID {
					decision.Score = sc.Score
					break
				}
			}
		default:
			logging.From(ctx).Warn("assignment advisory proposed ineligible candidate, ignoring",
				"proposedID", string(proposal.SelectedID), "taskID", string(task.ID))
		}
	}

	return decision, nil
}

func (uc *UseCases) GetTask(ctx context.Context, id types.TaskID) (*model.Task, error) {
	return uc.repo.Task().Get(ctx, id)
}

func (uc *UseCases) ListTasks(ctx context.Context, opt interfaces.TaskListOption) ([]*model.Task, error) {
	return uc.repo.Task().List(ctx, opt)
}

func (uc *UseCases) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.Task().Update(ctx, task)
}

func (uc *UseCases) DeleteTask(ctx context.Context, id types.TaskID) error {
	return uc.repo.Task().Delete(ctx, id)
}

// UpdateTaskStatus moves a task to the given status. Entering
// IN_PROGRESS records the actual start time once; terminal tasks reject
// further transitions. Completion must go through CompleteTask.
func (uc *UseCases) UpdateTaskStatus(ctx context.Context, id types.TaskID, status types.TaskStatus) (*model.Task, error) {
	if !status.IsValid() {
		return nil, goerr.New("invalid task status", goerr.V("status", status))
	}

	task, err := uc.repo.Task().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return nil, goerr.Wrap(ErrTaskAlreadyFinished, "cannot change status",
			goerr.V("taskID", id),
			goerr.V("status", task.Status))
	}

	now := time.Now()
	if status == types.TaskStatusInProgress && task.ActualStartAt == nil {
		task.ActualStartAt = &now
	}
	task.Status = status
	task.UpdatedAt = now
	return uc.repo.Task().Update(ctx, task)
}
