package model

import (
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// User represents a member of the workforce
type User struct {
	ID               types.UserID
	Name             string
	Email            string
	PasswordHash     string `masq:"secret"`
	Role             types.Role
	TeamID           types.TeamID
	DeptID           types.DeptID
	ReliabilityScore float64
	Skills           []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks invariants on the user record
func (u *User) Validate() error {
	if u.Name == "" {
		return goerr.New("user name is required")
	}
	if u.Email == "" {
		return goerr.New("user email is required")
	}
	if !u.Role.IsValid() {
		return goerr.New("invalid user role", goerr.V("role", u.Role))
	}
	if u.ReliabilityScore < 0 || u.ReliabilityScore > 1 {
		return goerr.Wrap(ErrScoreOutOfRange, "reliability score out of range",
			goerr.V("userID", u.ID),
			goerr.V("score", u.ReliabilityScore))
	}
	return nil
}

// HasSkill reports whether the user lists the given skill.
func (u *User) HasSkill(skill string) bool {
	for _, s := range u.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Candidate is the assignment-time view of a user: the profile fields the
// scorer reads plus the current workload, which must be computed fresh by
// the caller for every scoring call.
type Candidate struct {
	ID               types.UserID
	Name             string
	Role             types.Role
	ReliabilityScore float64
	Skills           []string
	DeptID           types.DeptID
	ActiveTaskCount  int
}

// NewCandidate builds a Candidate snapshot from a user and their current
// active task count.
func NewCandidate(u *User, activeTaskCount int) Candidate {
	return Candidate{
		ID:               u.ID,
		Name:             u.Name,
		Role:             u.Role,
		ReliabilityScore: u.ReliabilityScore,
		Skills:           append([]string(nil), u.Skills...),
		DeptID:           u.DeptID,
		ActiveTaskCount:  activeTaskCount,
	}
}
