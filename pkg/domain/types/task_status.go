package types

import "fmt"

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusCreated,
		TaskStatusInProgress,
		TaskStatusBlocked,
		TaskStatusCompleted,
		TaskStatusCancelled,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusCreated,
		TaskStatusInProgress,
		TaskStatusBlocked,
		TaskStatusCompleted,
		TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as TaskStatusCreated.
func (s TaskStatus) Normalize() TaskStatus {
	if s == "" {
		return TaskStatusCreated
	}
	return s
}

// Active reports whether a task in this status counts toward a user's
// current workload.
func (s TaskStatus) Active() bool {
	return s == TaskStatusCreated || s == TaskStatusInProgress
}

// Terminal reports whether the status is a final state.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
