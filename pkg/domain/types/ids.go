package types

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID identifies a registered user
type UserID string

// NewUserID generates a new prefixed UserID
func NewUserID() UserID {
	return UserID(fmt.Sprintf("USER-%s", uuid.Must(uuid.NewV7()).String()))
}

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// TaskID identifies a task
type TaskID string

// NewTaskID generates a new prefixed TaskID
func NewTaskID() TaskID {
	return TaskID(fmt.Sprintf("TASK-%s", uuid.Must(uuid.NewV7()).String()))
}

// String returns the string representation of the task ID
func (id TaskID) String() string {
	return string(id)
}

// ObservationID identifies a performance observation record
type ObservationID string

// NewObservationID generates a new prefixed ObservationID
func NewObservationID() ObservationID {
	return ObservationID(fmt.Sprintf("PERF-%s", uuid.Must(uuid.NewV7()).String()))
}

// String returns the string representation of the observation ID
func (id ObservationID) String() string {
	return string(id)
}

// MemoryID identifies a memory record in the semantic index
type MemoryID string

// NewMemoryID generates a new UUID-based MemoryID
func NewMemoryID() MemoryID {
	return MemoryID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the memory ID
func (id MemoryID) String() string {
	return string(id)
}

// DeptID identifies a department
type DeptID string

// ProjectID identifies a project grouping of tasks
type ProjectID string

// TeamID identifies a team
type TeamID string
