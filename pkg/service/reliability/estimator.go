// Package reliability computes time-decayed reliability scores from
// performance observations. Both entry points are pure functions over
// caller-supplied snapshots.
package reliability

import (
	"math"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model/config"
)

// DefaultScore is the reliability assigned when no observations exist.
const DefaultScore = 0.5

// Estimator computes windowed reliability scores.
type Estimator struct {
	cfg config.ReliabilityWindow
}

// New creates an estimator with the given window configuration.
func New(cfg *config.EngineConfig) *Estimator {
	return &Estimator{cfg: cfg.Reliability}
}

// Window returns the trailing observation window.
func (e *Estimator) Window() time.Duration {
	return e.cfg.ObservationWindow
}

// Compute recomputes the reliability score from scratch over the
// observation window. It is a full recomputation, not a running update,
// so the result always reflects exactly the trailing window and repeated
// calls with the same inputs are idempotent.
//
// Observations outside the window are ignored. A user with no in-window
// observations keeps the default score, even with assigned tasks still
// open. totalAssigned is the number of tasks assigned to the user within
// the same window. Only the final blend is clamped.
func (e *Estimator) Compute(observations []*model.PerformanceObservation, totalAssigned int, now time.Time) float64 {
	cutoff := now.Add(-e.cfg.ObservationWindow)
	decayDays := e.cfg.DecayHalfInterval.Hours() / 24

	var weightSum, onTimeSum, qualitySum float64
	observed := 0
	for _, obs := range observations {
		if obs.CompletedAt.Before(cutoff) || obs.CompletedAt.After(now) {
			continue
		}
		observed++
		daysAgo := now.Sub(obs.CompletedAt).Hours() / 24
		w := math.Exp(-daysAgo / decayDays)
		weightSum += w
		qualitySum += obs.Quality * w
		if obs.WasOnTime {
			onTimeSum += w
		}
	}

	if observed == 0 || totalAssigned == 0 {
		return DefaultScore
	}

	onTimeRate := onTimeSum / weightSum
	avgQuality := qualitySum / weightSum
	completionRate := float64(observed) / float64(totalAssigned)

	score := onTimeRate*e.cfg.OnTimeWeight +
		avgQuality*e.cfg.QualityWeight +
		completionRate*e.cfg.CompletionWeight
	return clamp(score)
}

// Nudge applies the fast-feedback online update used immediately after a
// completion, before the next windowed recompute. Low-confidence
// inferences barely move the score.
func (e *Estimator) Nudge(oldScore, quality, confidence float64) float64 {
	alpha := e.cfg.NudgeAlphaBase * clamp(confidence)
	return clamp(oldScore*(1-alpha) + quality*alpha)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
