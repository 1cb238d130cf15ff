package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// memoryRecordDoc is the Firestore document representation of
// model.MemoryRecord. Embedding is stored as firestore.Vector32 so the
// collection can carry a vector index.
type memoryRecordDoc struct {
	ID        string             `firestore:"id"`
	Text      string             `firestore:"text"`
	Embedding firestore.Vector32 `firestore:"embedding,omitempty"`
	UserID    string             `firestore:"user_id,omitempty"`
	DeptID    string             `firestore:"dept_id,omitempty"`
	TaskType  string             `firestore:"task_type,omitempty"`
	Timestamp time.Time          `firestore:"timestamp,omitempty"`
	CreatedAt time.Time          `firestore:"created_at"`
}

func toMemoryRecordDoc(m *model.MemoryRecord) *memoryRecordDoc {
	doc := &memoryRecordDoc{
		ID:        string(m.ID),
		Text:      m.Text,
		UserID:    string(m.Metadata.UserID),
		DeptID:    string(m.Metadata.DeptID),
		TaskType:  m.Metadata.TaskType,
		Timestamp: m.Metadata.Timestamp,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(m.Embedding)
	}
	return doc
}

func fromMemoryRecordDoc(d *memoryRecordDoc) *model.MemoryRecord {
	m := &model.MemoryRecord{
		ID:   types.MemoryID(d.ID),
		Text: d.Text,
		Metadata: model.MemoryMetadata{
			UserID:    types.UserID(d.UserID),
			DeptID:    types.DeptID(d.DeptID),
			TaskType:  d.TaskType,
			Timestamp: d.Timestamp,
		},
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		m.Embedding = []float32(d.Embedding)
	}
	return m
}

type memoryRecordRepository struct {
	client *firestore.Client
}

func (r *memoryRecordRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionMemories)
}

func (r *memoryRecordRepository) Put(ctx context.Context, rec *model.MemoryRecord) error {
	if rec.ID == "" {
		return goerr.New("memory record ID is required")
	}

	stored := *rec
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(stored.ID))
	if _, err := docRef.Set(ctx, toMemoryRecordDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to put memory record", goerr.V("memoryID", stored.ID))
	}
	return nil
}

func (r *memoryRecordRepository) List(ctx context.Context) ([]*model.MemoryRecord, error) {
	iter := r.collection().OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []*model.MemoryRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list memory records")
		}

		var d memoryRecordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal memory record", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, fromMemoryRecordDoc(&d))
	}

	return result, nil
}

func (r *memoryRecordRepository) Clear(ctx context.Context) error {
	iter := r.collection().Select().Documents(ctx)
	defer iter.Stop()

	bulk := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate memory records")
		}
		if _, err := bulk.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue memory record delete", goerr.V("doc", doc.Ref.ID))
		}
	}
	bulk.End()

	return nil
}
