// Package assign scores candidates against a task and picks the best
// eligible assignee. The scorer is a pure function over a caller-supplied
// snapshot of the candidate pool.
package assign

import (
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model/config"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// ScoredCandidate is a candidate with its assignment score.
type ScoredCandidate struct {
	Candidate model.Candidate
	Score     float64
}

// Result is the outcome of a scoring pass. Best is nil when no candidate
// was eligible; that is an expected outcome, not an error.
type Result struct {
	Best   *ScoredCandidate
	Ranked []ScoredCandidate
}

// Scorer ranks candidates for task assignment.
type Scorer struct {
	weights  config.ScoringWeights
	capacity int
}

// New creates a scorer with the given engine configuration.
func New(cfg *config.EngineConfig) *Scorer {
	return &Scorer{
		weights:  cfg.Weights,
		capacity: cfg.WorkloadCapacity,
	}
}

// Score ranks the candidate pool against the task. Candidates with role
// ADMIN or an empty skill intersection are excluded entirely, not merely
// penalized. Ties break by pool order: the first-seen candidate wins, so
// identical inputs always produce the identical winner. ActiveTaskCount
// on each candidate must be computed fresh by the caller.
func (s *Scorer) Score(task *model.Task, pool []model.Candidate) Result {
	required := make(map[string]struct{}, len(task.RequiredSkills))
	for _, skill := range task.RequiredSkills {
		required[skill] = struct{}{}
	}

	var result Result
	for _, c := range pool {
		if !c.Role.Assignable() {
			continue
		}
		matched := 0
		for _, skill := range c.Skills {
			if _, ok := required[skill]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		skillScore := float64(matched) / float64(len(required))
		workloadScore := 1 - float64(c.ActiveTaskCount)/float64(s.capacity)
		if workloadScore < 0 {
			workloadScore = 0
		}

		score := skillScore*s.weights.Skill +
			c.ReliabilityScore*s.weights.Reliability +
			workloadScore*s.weights.Workload
		if c.Role == types.RoleAssignee {
			score += s.weights.RoleBonus
		}
		if task.DeptID != "" && c.DeptID == task.DeptID {
			score += s.weights.DeptBonus
		}

		sc := ScoredCandidate{Candidate: c, Score: score}
		result.Ranked = append(result.Ranked, sc)
		if result.Best == nil || sc.Score > result.Best.Score {
			best := sc
			result.Best = &best
		}
	}
	return result
}

// Eligible reports whether the candidate with the given id is in the
// eligible pool of the result. Used to validate advisory proposals.
func (r Result) Eligible(id types.UserID) bool {
	for _, sc := range r.Ranked {
		if sc.Candidate.ID == id {
			return true
		}
	}
	return false
}
