package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/errutil"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}
	return true
}

// handleError maps domain and repository sentinels onto HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, usecase.ErrTaskAlreadyFinished):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNoEligibleCandidate),
		errors.Is(err, usecase.ErrNoAssignee),
		errors.Is(err, model.ErrSelfDependency),
		errors.Is(err, model.ErrNegativeDuration),
		errors.Is(err, model.ErrScoreOutOfRange),
		errors.Is(err, model.ErrEmptyEmbeddingText):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrMemoryDisabled):
		status = http.StatusServiceUnavailable
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}
