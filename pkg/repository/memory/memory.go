package memory

import (
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository"
)

// Sentinel errors shared across repository backends
var (
	ErrNotFound       = repository.ErrNotFound
	ErrAlreadyExists  = repository.ErrAlreadyExists
	ErrDuplicateEmail = repository.ErrDuplicateEmail
)

// Memory is an in-memory Repository implementation for development and
// tests. All data is lost on process exit.
type Memory struct {
	user        *userRepository
	task        *taskRepository
	performance *performanceRepository
	memory      *memoryRecordRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		user:        newUserRepository(),
		task:        newTaskRepository(),
		performance: newPerformanceRepository(),
		memory:      newMemoryRecordRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Performance() interfaces.PerformanceRepository {
	return m.performance
}

func (m *Memory) Memory() interfaces.MemoryRepository {
	return m.memory
}

// Close is a no-op for the in-memory repository
func (m *Memory) Close() error {
	return nil
}
