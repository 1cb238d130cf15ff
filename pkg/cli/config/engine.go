package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model/config"
)

// Engine holds the CLI flag for the engine tuning file
type Engine struct {
	path string
}

// Flags returns CLI flags for engine configuration
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "engine-config",
			Usage:       "Path to engine tuning TOML file (defaults apply when empty)",
			Sources:     cli.EnvVars("AEIP_ENGINE_CONFIG"),
			Destination: &e.path,
		},
	}
}

// Path returns the configured file path
func (e *Engine) Path() string {
	return e.path
}

// engineFile is the TOML shape of the tuning file. Every field is
// optional; absent fields keep their defaults.
type engineFile struct {
	Scoring struct {
		Skill       *float64 `toml:"skill"`
		Reliability *float64 `toml:"reliability"`
		Workload    *float64 `toml:"workload"`
		RoleBonus   *float64 `toml:"role_bonus"`
		DeptBonus   *float64 `toml:"dept_bonus"`
	} `toml:"scoring"`

	WorkloadCapacity *int `toml:"workload_capacity"`

	Reliability struct {
		ObservationWindowDays *int     `toml:"observation_window_days"`
		DecayHalfIntervalDays *int     `toml:"decay_half_interval_days"`
		OnTimeWeight          *float64 `toml:"on_time_weight"`
		QualityWeight         *float64 `toml:"quality_weight"`
		CompletionWeight      *float64 `toml:"completion_weight"`
		NudgeAlphaBase        *float64 `toml:"nudge_alpha_base"`
	} `toml:"reliability"`

	Fallback struct {
		Quality    *float64 `toml:"quality"`
		Confidence *float64 `toml:"confidence"`
		FocusRatio *float64 `toml:"focus_ratio"`
		Narrative  *string  `toml:"narrative"`
	} `toml:"fallback"`

	AdvisoryTimeoutSeconds *int `toml:"advisory_timeout_seconds"`
	OverfetchFactor        *int `toml:"overfetch_factor"`
}

// Configure loads the engine configuration, applying the TOML file on
// top of the defaults when a path is set.
func (e *Engine) Configure() (*domainConfig.EngineConfig, error) {
	cfg := domainConfig.DefaultEngineConfig()
	if e.path == "" {
		return cfg, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read engine config file", goerr.V("path", e.path))
	}

	var file engineFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML engine config", goerr.V("path", e.path))
	}

	applyFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	applyFloat(&cfg.Weights.Skill, file.Scoring.Skill)
	applyFloat(&cfg.Weights.Reliability, file.Scoring.Reliability)
	applyFloat(&cfg.Weights.Workload, file.Scoring.Workload)
	applyFloat(&cfg.Weights.RoleBonus, file.Scoring.RoleBonus)
	applyFloat(&cfg.Weights.DeptBonus, file.Scoring.DeptBonus)

	if file.WorkloadCapacity != nil {
		cfg.WorkloadCapacity = *file.WorkloadCapacity
	}

	if file.Reliability.ObservationWindowDays != nil {
		cfg.Reliability.ObservationWindow = time.Duration(*file.Reliability.ObservationWindowDays) * 24 * time.Hour
	}
	if file.Reliability.DecayHalfIntervalDays != nil {
		cfg.Reliability.DecayHalfInterval = time.Duration(*file.Reliability.DecayHalfIntervalDays) * 24 * time.Hour
	}
	applyFloat(&cfg.Reliability.OnTimeWeight, file.Reliability.OnTimeWeight)
	applyFloat(&cfg.Reliability.QualityWeight, file.Reliability.QualityWeight)
	applyFloat(&cfg.Reliability.CompletionWeight, file.Reliability.CompletionWeight)
	applyFloat(&cfg.Reliability.NudgeAlphaBase, file.Reliability.NudgeAlphaBase)

	applyFloat(&cfg.Fallback.Quality, file.Fallback.Quality)
	applyFloat(&cfg.Fallback.Confidence, file.Fallback.Confidence)
	applyFloat(&cfg.Fallback.FocusRatio, file.Fallback.FocusRatio)
	if file.Fallback.Narrative != nil {
		cfg.Fallback.Narrative = *file.Fallback.Narrative
	}

	if file.AdvisoryTimeoutSeconds != nil {
		cfg.AdvisoryTimeout = time.Duration(*file.AdvisoryTimeoutSeconds) * time.Second
	}
	if file.OverfetchFactor != nil {
		cfg.OverfetchFactor = *file.OverfetchFactor
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "engine config validation failed", goerr.V("path", e.path))
	}

	return cfg, nil
}
