package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model/config"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository/memory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/reliability"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/worker"
	"github.com/m-mizutani/gt"
)

func TestReliabilityRefresh(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	estimator := reliability.New(config.DefaultEngineConfig())

	user, err := repo.User().Create(ctx, &model.User{
		Name:             "Ada",
		Email:            "ada@example.com",
		Role:             types.RoleAssignee,
		ReliabilityScore: 0.5,
		Skills:           []string{"go"},
	})
	gt.NoError(t, err).Required()

	task, err := repo.Task().Create(ctx, &model.Task{
		Title:      "Build API",
		Status:     types.TaskStatusCompleted,
		AssigneeID: user.ID,
	})
	gt.NoError(t, err).Required()

	_, err = repo.Performance().Create(ctx, &model.PerformanceObservation{
		UserID:      user.ID,
		TaskID:      task.ID,
		CompletedAt: time.Now().Add(-24 * time.Hour),
		WasOnTime:   true,
		Quality:     1.0,
		HoursSpent:  2,
	})
	gt.NoError(t, err).Required()

	w := worker.NewReliabilityRefreshWorker(repo, estimator, time.Hour, 4)
	gt.NoError(t, w.Refresh(ctx)).Required()

	updated, err := repo.User().Get(ctx, user.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, updated.ReliabilityScore > 0.5).True()
}

func TestReliabilityRefreshNoObservations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	estimator := reliability.New(config.DefaultEngineConfig())

	user, err := repo.User().Create(ctx, &model.User{
		Name:             "Bob",
		Email:            "bob@example.com",
		Role:             types.RoleAssignee,
		ReliabilityScore: 0.7,
		Skills:           []string{"go"},
	})
	gt.NoError(t, err).Required()

	w := worker.NewReliabilityRefreshWorker(repo, estimator, time.Hour, 4)
	gt.NoError(t, w.Refresh(ctx)).Required()

	// no tasks assigned in the window: score returns to the default
	updated, err := repo.User().Get(ctx, user.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.ReliabilityScore).Equal(0.5)
}

func TestReliabilityRefreshStartStop(t *testing.T) {
	repo := memory.New()
	estimator := reliability.New(config.DefaultEngineConfig())

	w := worker.NewReliabilityRefreshWorker(repo, estimator, 10*time.Millisecond, 2)
	gt.NoError(t, w.Start(context.Background())).Required()
	time.Sleep(30 * time.Millisecond)
	w.Stop()
}
