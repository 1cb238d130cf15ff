package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for caller contract breaches. These indicate malformed
// input, not expected operating conditions, and are never converted to
// degraded results.
var (
	ErrSelfDependency     = goerr.New("task depends on itself")
	ErrNegativeDuration   = goerr.New("estimated duration must not be negative")
	ErrScoreOutOfRange    = goerr.New("score must be within [0,1]")
	ErrEmptyEmbeddingText = goerr.New("memory text is required")
)
