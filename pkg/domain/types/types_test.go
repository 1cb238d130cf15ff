package types_test

import (
	"strings"
	"testing"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRole(t *testing.T) {
	t.Run("valid roles parse", func(t *testing.T) {
		for _, r := range types.AllRoles() {
			parsed, err := types.ParseRole(r.String())
			gt.NoError(t, err)
			gt.Value(t, parsed).Equal(r)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := types.ParseRole("INTERN")
		gt.Value(t, err).NotNil()
	})

	t.Run("admin is never assignable", func(t *testing.T) {
		gt.Bool(t, types.RoleAdmin.Assignable()).False()
		gt.Bool(t, types.RoleAssignee.Assignable()).True()
		gt.Bool(t, types.RoleTeamLead.Assignable()).True()
		gt.Bool(t, types.RoleManager.Assignable()).True()
	})

	t.Run("unknown role is not assignable", func(t *testing.T) {
		gt.Bool(t, types.Role("GHOST").Assignable()).False()
	})
}

func TestPriority(t *testing.T) {
	t.Run("empty normalizes to medium", func(t *testing.T) {
		gt.Value(t, types.Priority("").Normalize()).Equal(types.PriorityMedium)
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		_, err := types.ParsePriority("URGENT")
		gt.Value(t, err).NotNil()
	})
}

func TestTaskStatus(t *testing.T) {
	t.Run("active statuses", func(t *testing.T) {
		gt.Bool(t, types.TaskStatusCreated.Active()).True()
		gt.Bool(t, types.TaskStatusInProgress.Active()).True()
		gt.Bool(t, types.TaskStatusCompleted.Active()).False()
		gt.Bool(t, types.TaskStatusBlocked.Active()).False()
	})

	t.Run("terminal statuses", func(t *testing.T) {
		gt.Bool(t, types.TaskStatusCompleted.Terminal()).True()
		gt.Bool(t, types.TaskStatusCancelled.Terminal()).True()
		gt.Bool(t, types.TaskStatusInProgress.Terminal()).False()
	})

	t.Run("empty normalizes to created", func(t *testing.T) {
		gt.Value(t, types.TaskStatus("").Normalize()).Equal(types.TaskStatusCreated)
	})
}

func TestQualityLabel(t *testing.T) {
	t.Run("bands", func(t *testing.T) {
		gt.Value(t, types.LabelForQuality(0.9)).Equal(types.QualityStrong)
		gt.Value(t, types.LabelForQuality(0.7)).Equal(types.QualityAcceptable)
		gt.Value(t, types.LabelForQuality(0.3)).Equal(types.QualityRisky)
	})
}

func TestDeadlineStatus(t *testing.T) {
	gt.Bool(t, types.DeadlineEarly.OnTime()).True()
	gt.Bool(t, types.DeadlineOnTime.OnTime()).True()
	gt.Bool(t, types.DeadlineOverdue.OnTime()).False()
}

func TestIDs(t *testing.T) {
	t.Run("prefixed ids", func(t *testing.T) {
		gt.Bool(t, strings.HasPrefix(types.NewUserID().String(), "USER-")).True()
		gt.Bool(t, strings.HasPrefix(types.NewTaskID().String(), "TASK-")).True()
		gt.Bool(t, strings.HasPrefix(types.NewObservationID().String(), "PERF-")).True()
	})

	t.Run("ids are unique", func(t *testing.T) {
		gt.Value(t, types.NewTaskID()).NotEqual(types.NewTaskID())
	})
}
