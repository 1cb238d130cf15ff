package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository/memory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestRegisterUserDefaults(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, user.Role).Equal(types.RoleAssignee)
	gt.Value(t, user.ReliabilityScore).Equal(0.5)
	gt.Value(t, user.TeamID).Equal(types.TeamID("UNASSIGNED"))
	gt.Value(t, user.DeptID).Equal(types.DeptID("UNASSIGNED"))
	gt.Array(t, user.Skills).Length(1)
	gt.Value(t, user.Skills[0]).Equal("General")
	gt.Value(t, user.PasswordHash).NotEqual("s3cret")
}

func TestRegisterUserRequiresPassword(t *testing.T) {
	uc := usecase.New(memory.New())

	_, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	gt.Value(t, err).NotNil()
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	input := usecase.RegisterUserInput{Name: "Ada", Email: "ada@example.com", Password: "pw"}
	_, err := uc.RegisterUser(ctx, input)
	gt.NoError(t, err).Required()

	input.Name = "Other Ada"
	_, err = uc.RegisterUser(ctx, input)
	gt.Value(t, err).NotNil()
}

func TestLogin(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	gt.NoError(t, err).Required()

	user, err := uc.Login(ctx, "ada@example.com", "s3cret")
	gt.NoError(t, err).Required()
	gt.Value(t, user.ID).Equal(registered.ID)

	_, err = uc.Login(ctx, "ada@example.com", "wrong")
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()

	_, err = uc.Login(ctx, "nobody@example.com", "s3cret")
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidCredentials)).True()
}

func TestUpdateSkills(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, usecase.RegisterUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "pw",
	})
	gt.NoError(t, err).Required()

	updated, err := uc.UpdateSkills(ctx, user.ID, []string{"go", "sql"})
	gt.NoError(t, err).Required()
	gt.Array(t, updated.Skills).Length(2)
	gt.Value(t, updated.Skills[0]).Equal("go")
}
