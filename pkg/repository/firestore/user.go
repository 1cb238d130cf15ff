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

// userDoc is the Firestore document representation of model.User
type userDoc struct {
	ID               string    `firestore:"id"`
	Name             string    `firestore:"name"`
	Email            string    `firestore:"email"`
	PasswordHash     string    `firestore:"password_hash"`
	Role             string    `firestore:"role"`
	TeamID           string    `firestore:"team_id"`
	DeptID           string    `firestore:"dept_id"`
	ReliabilityScore float64   `firestore:"reliability_score"`
	Skills           []string  `firestore:"skills"`
	CreatedAt        time.Time `firestore:"created_at"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

func toUserDoc(u *model.User) *userDoc {
	return &userDoc{
		ID:               string(u.ID),
		Name:             u.Name,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.Role),
		TeamID:           string(u.TeamID),
		DeptID:           string(u.DeptID),
		ReliabilityScore: u.ReliabilityScore,
		Skills:           u.Skills,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func fromUserDoc(d *userDoc) *model.User {
	return &model.User{
		ID:               types.UserID(d.ID),
		Name:             d.Name,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		Role:             types.Role(d.Role),
		TeamID:           types.TeamID(d.TeamID),
		DeptID:           types.DeptID(d.DeptID),
		ReliabilityScore: d.ReliabilityScore,
		Skills:           d.Skills,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type userRepository struct {
	client *firestore.Client
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionUsers)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = types.NewUserID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	// Duplicate email check is best-effort; Firestore has no unique
	// constraint on non-key fields.
	iter := r.collection().Where("email", "==", created.Email).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err == nil {
		return nil, goerr.Wrap(ErrDuplicateEmail, "duplicate email", goerr.V("email", created.Email))
	} else if err != iterator.Done {
		return nil, goerr.Wrap(err, "failed to check email uniqueness")
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toUserDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "user already exists", goerr.V("userID", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("userID", created.ID))
	}

	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("userID", id))
	}
	return fromUserDoc(&d), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email", goerr.V("email", email))
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("email", email))
	}
	return fromUserDoc(&d), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	iter := r.collection().OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []*model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list users")
		}

		var d userDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, fromUserDoc(&d))
	}

	return result, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	docRef := r.collection().Doc(string(user.ID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", user.ID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", user.ID))
	}

	var stored userDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("userID", user.ID))
	}

	updated := *user
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toUserDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("userID", user.ID))
	}
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	docRef := r.collection().Doc(string(id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("userID", id))
	}
	return nil
}
