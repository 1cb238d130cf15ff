package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/reliability"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUserInput is the self-service registration payload.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     types.Role
	TeamID   types.TeamID
	DeptID   types.DeptID
	Skills   []string
}

// RegisterUser creates a user with hashed credentials and registration
// defaults: reliability 0.5, skills ["General"], unassigned team and
// department.
func (uc *UseCases) RegisterUser(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	if input.Password == "" {
		return nil, goerr.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Name:             input.Name,
		Email:            input.Email,
		PasswordHash:     string(hash),
		Role:             input.Role,
		TeamID:           input.TeamID,
		DeptID:           input.DeptID,
		ReliabilityScore: reliability.DefaultScore,
		Skills:           input.Skills,
	}
	if user.Role == "" {
		user.Role = types.RoleAssignee
	}
	if user.TeamID == "" {
		user.TeamID = "UNASSIGNED"
	}
	if user.DeptID == "" {
		user.DeptID = "UNASSIGNED"
	}
	if len(user.Skills) == 0 {
		user.Skills = []string{"General"}
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.User().Create(ctx, user)
}

// Login verifies credentials and returns the user. A missing account and
// a wrong password are indistinguishable to the caller.
func (uc *UseCases) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}
	return user, nil
}

// CreateUser creates a user directly (administrative path, no
// credentials). Defaults mirror registration.
func (uc *UseCases) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Role == "" {
		user.Role = types.RoleAssignee
	}
	if user.ReliabilityScore == 0 {
		user.ReliabilityScore = reliability.DefaultScore
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.User().Create(ctx, user)
}

func (uc *UseCases) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	return uc.repo.User().Get(ctx, id)
}

func (uc *UseCases) ListUsers(ctx context.Context) ([]*model.User, error) {
	return uc.repo.User().List(ctx)
}

func (uc *UseCases) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.User().Update(ctx, user)
}

func (uc *UseCases) DeleteUser(ctx context.Context, id types.UserID) error {
	return uc.repo.User().Delete(ctx, id)
}

// UpdateSkills replaces the user's skill set.
func (uc *UseCases) UpdateSkills(ctx context.Context, id types.UserID, skills []string) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Skills = skills
	user.UpdatedAt = time.Now()
	return uc.repo.User().Update(ctx, user)
}
