package http

import (
	"net/http"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) handleCriticalPath(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"projectId"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := s.uc.CriticalPath(r.Context(), types.ProjectID(req.ProjectID))
	if err != nil {
		handleError(w, r, err)
		return
	}

	path := make([]string, len(result.Path))
	for i, id := range result.Path {
		path[i] = string(id)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"path":         path,
		"totalMinutes": result.TotalMinutes,
	})
}

func (s *Server) handleSimulateDelay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID    string `json:"projectId"`
		TaskID       string `json:"taskId"`
		DelayMinutes int    `json:"delayMinutes"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.DelayMinutes < 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New("delayMinutes must not be negative"), http.StatusBadRequest)
		return
	}

	impact, err := s.uc.SimulateDelay(r.Context(), types.ProjectID(req.ProjectID), types.TaskID(req.TaskID), req.DelayMinutes)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make(map[string]int, len(impact))
	for id, delay := range impact {
		resp[string(id)] = delay
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"origin":  req.TaskID,
		"impact":  resp,
		"updated": len(resp),
	})
}
