package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ScoringWeights are the coefficients of the assignment score formula.
type ScoringWeights struct {
	Skill       float64
	Reliability float64
	Workload    float64
	RoleBonus   float64
	DeptBonus   float64
}

// ReliabilityWindow tunes the windowed reliability recompute.
type ReliabilityWindow struct {
	ObservationWindow time.Duration // trailing window of observations
	DecayHalfInterval time.Duration // divisor of the exponential decay
	OnTimeWeight      float64
	QualityWeight     float64
	CompletionWeight  float64
	NudgeAlphaBase    float64 // alpha = NudgeAlphaBase * confidence
}

// CompletionFallback holds the deterministic defaults applied when the
// advisory collaborator is unavailable.
type CompletionFallback struct {
	Quality    float64
	Confidence float64
	FocusRatio float64 // share of wall-clock time assumed to be focused work
	Narrative  string
}

// EngineConfig is the tuning surface of the task intelligence engine.
// All values have working defaults; a TOML file may override them.
type EngineConfig struct {
	Weights          ScoringWeights
	WorkloadCapacity int // active task count at which workload score reaches zero
	Reliability      ReliabilityWindow
	Fallback         CompletionFallback
	AdvisoryTimeout  time.Duration
	OverfetchFactor  int // raw search candidates = topK * OverfetchFactor
}

// DefaultEngineConfig returns the built-in engine defaults.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Weights: ScoringWeights{
			Skill:       0.4,
			Reliability: 0.4,
			Workload:    0.2,
			RoleBonus:   0.1,
			DeptBonus:   0.1,
		},
		WorkloadCapacity: 5,
		Reliability: ReliabilityWindow{
			ObservationWindow: 90 * 24 * time.Hour,
			DecayHalfInterval: 30 * 24 * time.Hour,
			OnTimeWeight:      0.4,
			QualityWeight:     0.4,
			CompletionWeight:  0.2,
			NudgeAlphaBase:    0.1,
		},
		Fallback: CompletionFallback{
			Quality:    0.8,
			Confidence: 0.1,
			FocusRatio: 0.5,
			Narrative:  "AI reasoning unavailable, using fallback estimates.",
		},
		AdvisoryTimeout: 5 * time.Second,
		OverfetchFactor: 5,
	}
}

// Validate checks that the configuration values are usable.
func (c *EngineConfig) Validate() error {
	for name, w := range map[string]float64{
		"skill":       c.Weights.Skill,
		"reliability": c.Weights.Reliability,
		"workload":    c.Weights.Workload,
		"role_bonus":  c.Weights.RoleBonus,
		"dept_bonus":  c.Weights.DeptBonus,
	} {
		if w < 0 || w > 1 {
			return goerr.New("scoring weight out of range", goerr.V("weight", name), goerr.V("value", w))
		}
	}
	if c.WorkloadCapacity <= 0 {
		return goerr.New("workload capacity must be positive", goerr.V("value", c.WorkloadCapacity))
	}
	if c.Reliability.ObservationWindow <= 0 || c.Reliability.DecayHalfInterval <= 0 {
		return goerr.New("reliability windows must be positive")
	}
	if sum := c.Reliability.OnTimeWeight + c.Reliability.QualityWeight + c.Reliability.CompletionWeight; sum <= 0 || sum > 1.0001 {
		return goerr.New("reliability weights must sum to at most 1", goerr.V("sum", sum))
	}
	if c.Reliability.NudgeAlphaBase < 0 || c.Reliability.NudgeAlphaBase > 1 {
		return goerr.New("nudge alpha base out of range", goerr.V("value", c.Reliability.NudgeAlphaBase))
	}
	if c.Fallback.Quality < 0 || c.Fallback.Quality > 1 {
		return goerr.New("fallback quality out of range", goerr.V("value", c.Fallback.Quality))
	}
	if c.Fallback.Confidence < 0 || c.Fallback.Confidence > 1 {
		return goerr.New("fallback confidence out of range", goerr.V("value", c.Fallback.Confidence))
	}
	if c.Fallback.FocusRatio <= 0 || c.Fallback.FocusRatio > 1 {
		return goerr.New("fallback focus ratio out of range", goerr.V("value", c.Fallback.FocusRatio))
	}
	if c.AdvisoryTimeout <= 0 {
		return goerr.New("advisory timeout must be positive", goerr.V("value", c.AdvisoryTimeout))
	}
	if c.OverfetchFactor < 1 {
		return goerr.New("overfetch factor must be at least 1", goerr.V("value", c.OverfetchFactor))
	}
	return nil
}
