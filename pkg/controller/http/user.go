package http

import (
	"net/http"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

// userResponse is the wire shape of a user. Credentials never leave the
// server.
type userResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	TeamID           string    `json:"teamId"`
	DeptID           string    `json:"deptId"`
	ReliabilityScore float64   `json:"reliabilityScore"`
	Skills           []string  `json:"skills"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:               string(u.ID),
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role.String(),
		TeamID:           string(u.TeamID),
		DeptID:           string(u.DeptID),
		ReliabilityScore: u.ReliabilityScore,
		Skills:           u.Skills,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

type userRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Password         string   `json:"password,omitempty"`
	Role             string   `json:"role"`
	TeamID           string   `json:"teamId"`
	DeptID           string   `json:"deptId"`
	ReliabilityScore float64  `json:"reliabilityScore"`
	Skills           []string `json:"skills"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.uc.CreateUser(r.Context(), &model.User{
		Name:             req.Name,
		Email:            req.Email,
		Role:             types.Role(req.Role),
		TeamID:           types.TeamID(req.TeamID),
		DeptID:           types.DeptID(req.DeptID),
		ReliabilityScore: req.ReliabilityScore,
		Skills:           req.Skills,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.uc.RegisterUser(r.Context(), usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     types.Role(req.Role),
		TeamID:   types.TeamID(req.TeamID),
		DeptID:   types.DeptID(req.DeptID),
		Skills:   req.Skills,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := s.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.uc.GetUser(r.Context(), types.UserID(chi.URLParam(r, "userID")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.uc.GetUser(r.Context(), types.UserID(chi.URLParam(r, "userID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = types.Role(req.Role)
	user.TeamID = types.TeamID(req.TeamID)
	user.DeptID = types.DeptID(req.DeptID)
	user.ReliabilityScore = req.ReliabilityScore
	user.Skills = req.Skills

	updated, err := s.uc.UpdateUser(r.Context(), user)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserResponse(updated))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.DeleteUser(r.Context(), types.UserID(chi.URLParam(r, "userID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skills []string `json:"skills"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := s.uc.UpdateSkills(r.Context(), types.UserID(chi.URLParam(r, "userID")), req.Skills)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserResponse(user))
}
