package http

import (
	"net/http"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

type taskResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	AssigneeID        string     `json:"assigneeId,omitempty"`
	TeamID            string     `json:"teamId,omitempty"`
	DeptID            string     `json:"deptId,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
	RequiredSkills    []string   `json:"requiredSkills,omitempty"`
	EstimatedDuration int        `json:"estimatedDuration"`
	Dependencies      []string   `json:"dependencies,omitempty"`
	RiskScore         float64    `json:"riskScore"`
	LastAction        string     `json:"lastAction,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	ActualStartAt     *time.Time `json:"actualStartAt,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CompletionQuality *float64   `json:"completionQuality,omitempty"`
	ActualHours       *float64   `json:"actualHours,omitempty"`
	WasOnTime         *bool      `json:"wasOnTime,omitempty"`
}

func toTaskResponse(t *model.Task) taskResponse {
	deps := make([]string, len(t.Dependencies))
	for i, d := range t.Dependencies {
		deps[i] = string(d)
	}
	return taskResponse{
		ID:                string(t.ID),
		Title:             t.Title,
		Description:       t.Description,
		Status:            t.Status.String(),
		Priority:          t.Priority.String(),
		Deadline:          t.Deadline,
		AssigneeID:        string(t.AssigneeID),
		TeamID:            string(t.TeamID),
		DeptID:            string(t.DeptID),
		ProjectID:         string(t.ProjectID),
		RequiredSkills:    t.RequiredSkills,
		EstimatedDuration: t.EstimatedDuration,
		Dependencies:      deps,
		RiskScore:         t.RiskScore,
		LastAction:        t.LastAction,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		ActualStartAt:     t.ActualStartAt,
		CompletedAt:       t.CompletedAt,
		CompletionQuality: t.CompletionQuality,
		ActualHours:       t.ActualHours,
		WasOnTime:         t.WasOnTime,
	}
}

type taskRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	Deadline          *time.Time `json:"deadline"`
	AssigneeID        string     `json:"assigneeId"`
	TeamID            string     `json:"teamId"`
	DeptID            string     `json:"deptId"`
	ProjectID         string     `json:"projectId"`
	RequiredSkills    []string   `json:"requiredSkills"`
	EstimatedDuration int        `json:"estimatedDuration"`
	Dependencies      []string   `json:"dependencies"`
	RiskScore         float64    `json:"riskScore"`
}

func (req taskRequest) toModel() *model.Task {
	deps := make([]types.TaskID, len(req.Dependencies))
	for i, d := range req.Dependencies {
		deps[i] = types.TaskID(d)
	}
	return &model.Task{
		Title:             req.Title,
		Description:       req.Description,
		Status:            types.TaskStatus(req.Status),
		Priority:          types.Priority(req.Priority),
		Deadline:          req.Deadline,
		AssigneeID:        types.UserID(req.AssigneeID),
		TeamID:            types.TeamID(req.TeamID),
		DeptID:            types.DeptID(req.DeptID),
		ProjectID:         types.ProjectID(req.ProjectID),
		RequiredSkills:    req.RequiredSkills,
		EstimatedDuration: req.EstimatedDuration,
		Dependencies:      deps,
		RiskScore:         req.RiskScore,
	}
}

type assignmentResponse struct {
	AssigneeID string  `json:"assigneeId"`
	Score      float64 `json:"score"`
	Reasoning  string  `json:"reasoning,omitempty"`
	ByAdvisory bool    `json:"byAdvisory"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	opt := interfaces.TaskListOption{
		AssigneeID: types.UserID(r.URL.Query().Get("user_id")),
		ProjectID:  types.ProjectID(r.URL.Query().Get("project_id")),
	}

	tasks, err := s.uc.ListTasks(r.Context(), opt)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decode(w, r, &req) {
		return
	}

	task, decision, err := s.uc.CreateTask(r.Context(), req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := struct {
		Task       taskResponse        `json:"task"`
		Assignment *assignmentResponse `json:"assignment,omitempty"`
	}{Task: toTaskResponse(task)}
	if decision != nil {
		resp.Assignment = &assignmentResponse{
			AssigneeID: string(decision.AssigneeID),
			Score:      decision.Score,
			Reasoning:  decision.Reasoning,
			ByAdvisory: decision.ByAdvisory,
		}
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.uc.GetTask(r.Context(), types.TaskID(chi.URLParam(r, "taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decode(w, r, &req) {
		return
	}

	task, err := s.uc.GetTask(r.Context(), types.TaskID(chi.URLParam(r, "taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	updated := req.toModel()
	updated.ID = task.ID
	updated.CreatedAt = task.CreatedAt
	updated.ActualStartAt = task.ActualStartAt
	updated.CompletedAt = task.CompletedAt
	updated.CompletionQuality = task.CompletionQuality
	updated.ActualHours = task.ActualHours
	updated.WasOnTime = task.WasOnTime
	updated.LastAction = task.LastAction
	updated.Status = updated.Status.Normalize()
	updated.Priority = updated.Priority.Normalize()

	saved, err := s.uc.UpdateTask(r.Context(), updated)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTaskResponse(saved))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.DeleteTask(r.Context(), types.TaskID(chi.URLParam(r, "taskID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}

	task, err := s.uc.UpdateTaskStatus(r.Context(),
		types.TaskID(chi.URLParam(r, "taskID")), types.TaskStatus(req.Status))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.CompleteTask(r.Context(), types.TaskID(chi.URLParam(r, "taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Task        taskResponse `json:"task"`
		Quality     float64      `json:"quality"`
		Label       string       `json:"qualityLabel"`
		Confidence  float64      `json:"confidence"`
		EffortHours float64      `json:"effortHours"`
		Narrative   string       `json:"narrative"`
		Reliability float64      `json:"reliabilityScore"`
		Stages      []string     `json:"stages"`
	}{
		Task:        toTaskResponse(result.Task),
		Quality:     result.Quality,
		Label:       result.Label.String(),
		Confidence:  result.Confidence,
		EffortHours: result.EffortHours,
		Narrative:   result.Narrative,
		Reliability: result.Reliability,
		Stages:      stageStrings(result.Stages),
	})
}

func stageStrings(stages []usecase.CompletionStage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}
