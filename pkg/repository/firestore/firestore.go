package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors shared across repository backends
var (
	ErrNotFound       = repository.ErrNotFound
	ErrAlreadyExists  = repository.ErrAlreadyExists
	ErrDuplicateEmail = repository.ErrDuplicateEmail
)

// Collection names
const (
	collectionUsers        = "users"
	collectionTasks        = "tasks"
	collectionObservations = "performance_observations"
	collectionMemories     = "memories"
)

// Firestore is the production Repository backend
type Firestore struct {
	client      *firestore.Client
	user        *userRepository
	task        *taskRepository
	performance *performanceRepository
	memory      *memoryRecordRepository
}

var _ interfaces.Repository = &Firestore{}

// New creates a new Firestore repository. An empty databaseID selects the
// default database.
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	return &Firestore{
		client:      client,
		user:        &userRepository{client: client},
		task:        &taskRepository{client: client},
		performance: &performanceRepository{client: client},
		memory:      &memoryRecordRepository{client: client},
	}, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Performance() interfaces.PerformanceRepository {
	return f.performance
}

func (f *Firestore) Memory() interfaces.MemoryRepository {
	return f.memory
}

// Close closes the underlying Firestore client
func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
