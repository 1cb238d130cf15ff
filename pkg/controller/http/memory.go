package http

import (
	"net/http"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
)

type memoryMetadataPayload struct {
	UserID    string `json:"userId,omitempty"`
	DeptID    string `json:"deptId,omitempty"`
	TaskType  string `json:"taskType,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type memoryPayload struct {
	ID       string                `json:"id,omitempty"`
	Text     string                `json:"text"`
	Metadata memoryMetadataPayload `json:"metadata"`
}

func (p memoryPayload) toInput() usecase.AddMemoryInput {
	meta := model.MemoryMetadata{
		UserID:   types.UserID(p.Metadata.UserID),
		DeptID:   types.DeptID(p.Metadata.DeptID),
		TaskType: p.Metadata.TaskType,
	}
	if p.Metadata.Timestamp > 0 {
		meta.Timestamp = time.UnixMilli(p.Metadata.Timestamp)
	}
	return usecase.AddMemoryInput{
		ID:       types.MemoryID(p.ID),
		Text:     p.Text,
		Metadata: meta,
	}
}

func (s *Server) handleAddMemory(w http.ResponseWriter, r *http.Request) {
	var req memoryPayload
	if !decode(w, r, &req) {
		return
	}

	rec, err := s.uc.AddMemory(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"status": "added",
		"id":     string(rec.ID),
	})
}

func (s *Server) handleInitMemories(w http.ResponseWriter, r *http.Request) {
	var req []memoryPayload
	if !decode(w, r, &req) {
		return
	}

	inputs := make([]usecase.AddMemoryInput, len(req))
	for i, p := range req {
		inputs[i] = p.toInput()
	}

	count, err := s.uc.InitMemories(r.Context(), inputs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "initialized",
		"count":  count,
	})
}

func (s *Server) handleSearchMemories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text         string `json:"text"`
		TopK         int    `json:"top_k"`
		FilterUserID string `json:"filter_user_id"`
		FilterDeptID string `json:"filter_dept_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	results, err := s.uc.SearchMemories(r.Context(), req.Text, req.TopK, model.SearchFilter{
		UserID: types.UserID(req.FilterUserID),
		DeptID: types.DeptID(req.FilterDeptID),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	type searchResult struct {
		ID       string                `json:"id"`
		Text     string                `json:"text"`
		Score    float64               `json:"score"`
		Metadata memoryMetadataPayload `json:"metadata"`
	}
	resp := make([]searchResult, len(results))
	for i, sm := range results {
		meta := memoryMetadataPayload{
			UserID:   string(sm.Record.Metadata.UserID),
			DeptID:   string(sm.Record.Metadata.DeptID),
			TaskType: sm.Record.Metadata.TaskType,
		}
		if !sm.Record.Metadata.Timestamp.IsZero() {
			meta.Timestamp = sm.Record.Metadata.Timestamp.UnixMilli()
		}
		resp[i] = searchResult{
			ID:       string(sm.Record.ID),
			Text:     sm.Record.Text,
			Score:    sm.Score,
			Metadata: meta,
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
