package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Assignment errors
	ErrNoEligibleCandidate = errors.New("no eligible candidate: specify required skills or assign manually")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Task lifecycle errors
	ErrTaskAlreadyFinished = errors.New("task is already in a terminal state")
	ErrNoAssignee          = errors.New("task has no assignee")

	// Memory errors
	ErrMemoryDisabled = errors.New("memory index is not configured")
)
