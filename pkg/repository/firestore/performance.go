package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// observationDoc is the Firestore document representation of
// model.PerformanceObservation
type observationDoc struct {
	ID          string    `firestore:"id"`
	UserID      string    `firestore:"user_id"`
	TaskID      string    `firestore:"task_id"`
	CompletedAt time.Time `firestore:"completed_at"`
	WasOnTime   bool      `firestore:"was_on_time"`
	Quality     float64   `firestore:"quality"`
	HoursSpent  float64   `firestore:"hours_spent"`
	Priority    string    `firestore:"priority"`
	SkillsUsed  []string  `firestore:"skills_used"`
}

func toObservationDoc(o *model.PerformanceObservation) *observationDoc {
	return &observationDoc{
		ID:          string(o.ID),
		UserID:      string(o.UserID),
		TaskID:      string(o.TaskID),
		CompletedAt: o.CompletedAt,
		WasOnTime:   o.WasOnTime,
		Quality:     o.Quality,
		HoursSpent:  o.HoursSpent,
		Priority:    string(o.Priority),
		SkillsUsed:  o.SkillsUsed,
	}
}

func fromObservationDoc(d *observationDoc) *model.PerformanceObservation {
	return &model.PerformanceObservation{
		ID:          types.ObservationID(d.ID),
		UserID:      types.UserID(d.UserID),
		TaskID:      types.TaskID(d.TaskID),
		CompletedAt: d.CompletedAt,
		WasOnTime:   d.WasOnTime,
		Quality:     d.Quality,
		HoursSpent:  d.HoursSpent,
		Priority:    types.Priority(d.Priority),
		SkillsUsed:  d.SkillsUsed,
	}
}

type performanceRepository struct {
	client *firestore.Client
}

func (r *performanceRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionObservations)
}

func (r *performanceRepository) Create(ctx context.Context, obs *model.PerformanceObservation) (*model.PerformanceObservation, error) {
	created := *obs
	if created.ID == "" {
		created.ID = types.NewObservationID()
	}
	if created.CompletedAt.IsZero() {
		created.CompletedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toObservationDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "observation already exists", goerr.V("observationID", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create observation", goerr.V("observationID", created.ID))
	}

	return &created, nil
}

func (r *performanceRepository) ListByUserSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.PerformanceObservation, error) {
	iter := r.collection().
		Where("user_id", "==", string(userID)).
		Where("completed_at", ">=", since).
		OrderBy("completed_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.PerformanceObservation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list observations", goerr.V("userID", userID))
		}

		var d observationDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal observation", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, fromObservationDoc(&d))
	}

	return result, nil
}
