package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository/memory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/advisory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func createUser(t *testing.T, repo interfaces.Repository, name string, reliability float64, skills ...string) *model.User {
	t.Helper()
	user, err := repo.User().Create(context.Background(), &model.User{
		Name:             name,
		Email:            name + "@example.com",
		Role:             types.RoleAssignee,
		ReliabilityScore: reliability,
		Skills:           skills,
	})
	gt.NoError(t, err).Required()
	return user
}

func TestCreateTaskAutoAssign(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	python := createUser(t, repo, "py", 0.9, "python")
	createUser(t, repo, "java", 0.99, "java")

	task, decision, err := uc.CreateTask(ctx, &model.Task{
		Title:          "Build ETL job",
		RequiredSkills: []string{"python"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, decision).NotNil()
	gt.Value(t, task.AssigneeID).Equal(python.ID)
	gt.Value(t, decision.AssigneeID).Equal(python.ID)
	gt.Bool(t, decision.ByAdvisory).False()
	gt.Value(t, task.LastAction).Equal("AUTO_ASSIGN: " + string(python.ID))
}

func TestCreateTaskNoEligibleCandidate(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	createUser(t, repo, "java", 1.0, "java")

	_, _, err := uc.CreateTask(ctx, &model.Task{
		Title:          "Build ETL job",
		RequiredSkills: []string{"python"},
	})
	gt.Bool(t, errors.Is(err, usecase.ErrNoEligibleCandidate)).True()
}

func TestCreateTaskWithoutSkillsNeedsManualAssignee(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	createUser(t, repo, "dev", 0.8, "go")

	_, _, err := uc.CreateTask(ctx, &model.Task{Title: "Untagged chore"})
	gt.Bool(t, errors.Is(err, usecase.ErrNoEligibleCandidate)).True()

	// an explicit assignee skips auto-assignment entirely
	task, decision, err := uc.CreateTask(ctx, &model.Task{
		Title:      "Untagged chore",
		AssigneeID: "USER-manual",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, decision == nil).True()
	gt.Value(t, task.AssigneeID).Equal(types.UserID("USER-manual"))
}

func TestCreateTaskAdvisoryOverride(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	strong := createUser(t, repo, "strong", 0.95, "go")
	weak := createUser(t, repo, "weak", 0.2, "go")

	client, err := advisory.New(clientReplying(`{"selected_user_id": "` + string(weak.ID) + `", "reasoning": "growth opportunity"}`))
	gt.NoError(t, err).Required()
	uc := usecase.New(repo, usecase.WithAdvisory(client))

	task, decision, err := uc.CreateTask(ctx, &model.Task{
		Title:          "Refactor service",
		RequiredSkills: []string{"go"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, task.AssigneeID).Equal(weak.ID)
	gt.Bool(t, decision.ByAdvisory).True()
	gt.Value(t, decision.Reasoning).Equal("growth opportunity")

	// sanity: the deterministic winner would have been the strong user
	ucPlain := usecase.New(repo)
	_, plainDecision, err := ucPlain.CreateTask(ctx, &model.Task{
		Title:          "Refactor service again",
		RequiredSkills: []string{"go"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, plainDecision.AssigneeID).Equal(strong.ID)
}

func TestCreateTaskAdvisoryIneligibleIgnored(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	eligible := createUser(t, repo, "dev", 0.5, "go")
	outsider := createUser(t, repo, "outsider", 1.0, "java")

	client, err := advisory.New(clientReplying(`{"selected_user_id": "` + string(outsider.ID) + `", "reasoning": "favorite"}`))
	gt.NoError(t, err).Required()
	uc := usecase.New(repo, usecase.WithAdvisory(client))

	task, decision, err := uc.CreateTask(ctx, &model.Task{
		Title:          "Ship feature",
		RequiredSkills: []string{"go"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, task.AssigneeID).Equal(eligible.ID)
	gt.Bool(t, decision.ByAdvisory).False()
}

func TestUpdateTaskStatus(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	task, _, err := uc.CreateTask(ctx, &model.Task{
		Title:      "Chore",
		AssigneeID: "USER-1",
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, task.ActualStartAt == nil).True()

	started, err := uc.UpdateTaskStatus(ctx, task.ID, types.TaskStatusInProgress)
	gt.NoError(t, err).Required()
	gt.Value(t, started.ActualStartAt).NotNil()
	firstStart := *started.ActualStartAt

	// re-entering IN_PROGRESS keeps the original start time
	blocked, err := uc.UpdateTaskStatus(ctx, task.ID, types.TaskStatusBlocked)
	gt.NoError(t, err).Required()
	restarted, err := uc.UpdateTaskStatus(ctx, blocked.ID, types.TaskStatusInProgress)
	gt.NoError(t, err).Required()
	gt.Value(t, *restarted.ActualStartAt).Equal(firstStart)

	_, err = uc.UpdateTaskStatus(ctx, task.ID, types.TaskStatusCancelled)
	gt.NoError(t, err).Required()

	_, err = uc.UpdateTaskStatus(ctx, task.ID, types.TaskStatusInProgress)
	gt.Bool(t, errors.Is(err, usecase.ErrTaskAlreadyFinished)).True()
}
