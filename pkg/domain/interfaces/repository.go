package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	User() UserRepository
	Task() TaskRepository
	Performance() PerformanceRepository
	Memory() MemoryRepository

	Close() error
}
