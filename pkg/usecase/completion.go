package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/advisory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/async"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// CompletionStage is the state of the completion flow. The flow always
// reaches StageCommitted or fails with an error; the advisory branch only
// decides which stage precedes quality resolution.
type CompletionStage string

const (
	StagePendingSignals    CompletionStage = "PENDING_SIGNALS"
	StageSignalsDerived    CompletionStage = "SIGNALS_DERIVED"
	StageAdvisoryConsulted CompletionStage = "ADVISORY_CONSULTED"
	StageAdvisorySkipped   CompletionStage = "ADVISORY_SKIPPED"
	StageQualityResolved   CompletionStage = "QUALITY_RESOLVED"
	StageCommitted         CompletionStage = "COMMITTED"
)

// CompletionResult is the committed outcome of a task completion.
type CompletionResult struct {
	Task        *model.Task
	Observation *model.PerformanceObservation
	Quality     float64
	Label       types.QualityLabel
	Confidence  float64
	EffortHours float64
	Narrative   string
	MemoryText  string
	Reliability float64
	Stages      []CompletionStage
}

// CompleteTask runs the autonomous completion flow: derive signals,
// consult the advisory (degrading to the deterministic fallback on any
// failure), commit the task fields, append a performance observation,
// nudge the assignee's reliability, and schedule the outcome memory for
// insertion. Collaborator failures never abort the flow; only repository
// errors do.
func (uc *UseCases) CompleteTask(ctx context.Context, taskID types.TaskID) (*CompletionResult, error) {
	stages := []CompletionStage{StagePendingSignals}

	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return nil, goerr.Wrap(ErrTaskAlreadyFinished, "cannot complete task",
			goerr.V("taskID", taskID),
			goerr.V("status", task.Status))
	}
	if task.AssigneeID == "" {
		return nil, goerr.Wrap(ErrNoAssignee, "cannot complete task", goerr.V("taskID", taskID))
	}
	user, err := uc.repo.User().Get(ctx, task.AssigneeID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load assignee", goerr.V("taskID", taskID))
	}

	// Derive deterministic signals
	now := time.Now()
	signals := advisory.Signals{
		WallClockMinutes: now.Sub(task.StartedAt()).Minutes(),
		DeadlineStatus:   task.DeadlineStatusAt(now),
	}
	if signals.WallClockMinutes < 0 {
		signals.WallClockMinutes = 0
	}
	stages = append(stages, StageSignalsDerived)

	// Retrieve similar memories; failure means "no similar memories"
	var memories []*model.ScoredMemory
	if uc.index != nil {
		query := task.Title
		if task.Description != "" {
			query += " " + task.Description
		}
		memories, err = uc.index.Search(ctx, query, 3, model.SearchFilter{})
		if err != nil {
			logging.From(ctx).Warn("memory retrieval failed, continuing without context",
				"error", err.Error(), "taskID", string(taskID))
			memories = nil
		}
	}

	result := &CompletionResult{}
	advisoryUsed := false
	if uc.advisory != nil {
		inference, err := uc.advisory.InferCompletion(ctx, task, user, memories, signals)
		if err == nil {
			advisoryUsed = true
			stages = append(stages, StageAdvisoryConsulted)
			result.Quality = inference.Quality
			result.Label = inference.Label
			result.Confidence = inference.Confidence
			result.EffortHours = inference.EffortHours
			result.Narrative = inference.Narrative
		} else {
			logging.From(ctx).Warn("completion advisory failed, using fallback",
				"error", err.Error(), "taskID", string(taskID))
		}
	}
	if !advisoryUsed {
		stages = append(stages, StageAdvisorySkipped)
		result.Quality = uc.cfg.Fallback.Quality
		result.Label = types.QualityUncertain
		result.Confidence = uc.cfg.Fallback.Confidence
		result.EffortHours = signals.WallClockMinutes / 60 * uc.cfg.Fallback.FocusRatio
		result.Narrative = uc.cfg.Fallback.Narrative
	}
	stages = append(stages, StageQualityResolved)

	// Commit task fields
	wasOnTime := signals.DeadlineStatus.OnTime()
	task.Status = types.TaskStatusCompleted
	task.CompletedAt = &now
	task.CompletionQuality = &result.Quality
	task.ActualHours = &result.EffortHours
	task.WasOnTime = &wasOnTime
	task.LastAction = fmt.Sprintf("AUTO_COMPLETE: %s", result.Label)
	task.UpdatedAt = now
	committed, err := uc.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to commit completion", goerr.V("taskID", taskID))
	}
	result.Task = committed

	// Append the observation
	obs, err := uc.repo.Performance().Create(ctx, &model.PerformanceObservation{
		UserID:      user.ID,
		TaskID:      task.ID,
		CompletedAt: now,
		WasOnTime:   wasOnTime,
		Quality:     result.Quality,
		HoursSpent:  result.EffortHours,
		Priority:    task.Priority.Normalize(),
		SkillsUsed:  task.RequiredSkills,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record observation", goerr.V("taskID", taskID))
	}
	result.Observation = obs

	// Fast-feedback reliability nudge
	user.ReliabilityScore = uc.estimator.Nudge(user.ReliabilityScore, result.Quality, result.Confidence)
	user.UpdatedAt = now
	if _, err := uc.repo.User().Update(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to update reliability", goerr.V("userID", user.ID))
	}
	result.Reliability = user.ReliabilityScore

	result.MemoryText = fmt.Sprintf("Task '%s' completed by %s. Result: %s (%.2f). %s",
		task.Title, user.Name, result.Label, result.Quality, result.Narrative)
	uc.scheduleMemoryInsert(ctx, result.MemoryText, model.MemoryMetadata{
		UserID:    user.ID,
		DeptID:    user.DeptID,
		TaskType:  "completion",
		Timestamp: now,
	})

	result.Stages = append(stages, StageCommitted)
	return result, nil
}

// scheduleMemoryInsert embeds and stores the outcome memory off the
// request path. Failures are logged, not surfaced: the completion is
// already committed.
func (uc *UseCases) scheduleMemoryInsert(ctx context.Context, text string, meta model.MemoryMetadata) {
	if uc.index == nil {
		return
	}

	rec := &model.MemoryRecord{
		ID:       types.NewMemoryID(),
		Text:     text,
		Metadata: meta,
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		vec, err := uc.index.Embed(ctx, rec.Text)
		if err != nil {
			return goerr.Wrap(err, "failed to embed outcome memory", goerr.V("memoryID", rec.ID))
		}
		rec.Embedding = vec
		if err := uc.index.Insert(ctx, rec); err != nil {
			return goerr.Wrap(err, "failed to index outcome memory", goerr.V("memoryID", rec.ID))
		}
		if err := uc.repo.Memory().Put(ctx, rec); err != nil {
			return goerr.Wrap(err, "failed to persist memory record", goerr.V("memoryID", rec.ID))
		}
		return nil
	})
}
