package usecase

import (
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/interfaces"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model/config"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/advisory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/assign"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/memoryindex"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/reliability"
)

// UseCases binds the engine services to the repository. The advisory
// client and memory index are optional: without them the deterministic
// paths are authoritative and memory features are disabled.
type UseCases struct {
	repo      interfaces.Repository
	cfg       *config.EngineConfig
	index     *memoryindex.Index
	advisory  *advisory.Client
	scorer    *assign.Scorer
	estimator *reliability.Estimator
}

type Option func(*UseCases)

// WithEngineConfig overrides the default engine tuning.
func WithEngineConfig(cfg *config.EngineConfig) Option {
	return func(uc *UseCases) {
		uc.cfg = cfg
	}
}

// WithMemoryIndex enables semantic memory features.
func WithMemoryIndex(index *memoryindex.Index) Option {
	return func(uc *UseCases) {
		uc.index = index
	}
}

// WithAdvisory enables LLM advisory for assignment and completion.
func WithAdvisory(client *advisory.Client) Option {
	return func(uc *UseCases) {
		uc.advisory = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		cfg:  config.DefaultEngineConfig(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.scorer = assign.New(uc.cfg)
	uc.estimator = reliability.New(uc.cfg)

	return uc
}

// Estimator exposes the reliability estimator for the refresh worker.
func (uc *UseCases) Estimator() *reliability.Estimator {
	return uc.estimator
}

// MemoryIndex returns the configured index, or nil when memory features
// are disabled.
func (uc *UseCases) MemoryIndex() *memoryindex.Index {
	return uc.index
}
