// Package schedule analyzes task dependency graphs: critical path
// computation and delay propagation over a caller-supplied task set.
package schedule

import (
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// Graph is a dependency graph over a fixed task set. Dependency ids that
// reference tasks outside the set are dropped when the graph is built.
// The graph is immutable after construction and safe for concurrent use.
type Graph struct {
	// order preserves insertion order for deterministic iteration
	order []types.TaskID
	// durations are estimated minutes per task
	durations map[types.TaskID]int
	// successors maps each dependency to its dependents
	successors map[types.TaskID][]types.TaskID
	indegree   map[types.TaskID]int
	compound   bool
}

// Option configures graph construction.
type Option func(*Graph)

// WithCompounding makes SimulateDelay scale the delay by hop distance so
// slippage cascades additively along dependency chains. The default is a
// flat delay: every downstream task shifts by the same amount.
func WithCompounding() Option {
	return func(g *Graph) {
		g.compound = true
	}
}

// NewGraph builds a dependency graph from the task set.
func NewGraph(tasks []*model.Task, opts ...Option) *Graph {
	g := &Graph{
		durations:  make(map[types.TaskID]int, len(tasks)),
		successors: make(map[types.TaskID][]types.TaskID, len(tasks)),
		indegree:   make(map[types.TaskID]int, len(tasks)),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, t := range tasks {
		if _, exists := g.durations[t.ID]; exists {
			continue
		}
		g.order = append(g.order, t.ID)
		g.durations[t.ID] = t.EstimatedDuration
		g.indegree[t.ID] = 0
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, known := g.durations[dep]; !known {
				continue // dangling dependency, outside the supplied set
			}
			g.successors[dep] = append(g.successors[dep], t.ID)
			g.indegree[t.ID]++
		}
	}
	return g
}

// Size returns the number of tasks in the graph.
func (g *Graph) Size() int {
	return len(g.order)
}

// topoSort returns the task ids in topological order. The second return
// is false when the graph contains a cycle.
func (g *Graph) topoSort() ([]types.TaskID, bool) {
	indegree := make(map[types.TaskID]int, len(g.indegree))
	for id, d := range g.indegree {
		indegree[id] = d
	}

	queue := make([]types.TaskID, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]types.TaskID, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)
		for _, next := range g.successors[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return sorted, len(sorted) == len(g.order)
}

// CriticalPath returns the ordered task ids of the path with the maximum
// summed duration from any source to any sink. A cyclic graph yields an
// empty path rather than looping forever; so does an empty task set.
func (g *Graph) CriticalPath() []types.TaskID {
	sorted, acyclic := g.topoSort()
	if !acyclic || len(sorted) == 0 {
		return nil
	}

	// longest-path DP over the topological order
	dist := make(map[types.TaskID]int, len(sorted))
	prev := make(map[types.TaskID]types.TaskID, len(sorted))
	for _, id := range sorted {
		if _, ok := dist[id]; !ok {
			dist[id] = g.durations[id]
		}
		for _, next := range g.successors[id] {
			if d := dist[id] + g.durations[next]; d > dist[next] {
				dist[next] = d
				prev[next] = id
			}
		}
	}

	var end types.TaskID
	best := -1
	for _, id := range sorted {
		if dist[id] > best {
			best = dist[id]
			end = id
		}
	}

	var path []types.TaskID
	for id := end; ; {
		path = append(path, id)
		p, ok := prev[id]
		if !ok {
			break
		}
		id = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// TotalDuration returns the summed duration in minutes of the critical
// path.
func (g *Graph) TotalDuration(path []types.TaskID) int {
	total := 0
	for _, id := range path {
		total += g.durations[id]
	}
	return total
}

// SimulateDelay propagates a delay from the given task to every reachable
// descendant by breadth-first traversal. The default is a flat shift:
// each descendant receives exactly delayMinutes regardless of hop
// distance. With compounding enabled the delay scales by hop depth. The
// origin task is excluded from the result; an unknown task id yields an
// empty map.
func (g *Graph) SimulateDelay(taskID types.TaskID, delayMinutes int) map[types.TaskID]int {
	impact := make(map[types.TaskID]int)
	if _, known := g.durations[taskID]; !known {
		return impact
	}

	type hop struct {
		id    types.TaskID
		depth int
	}
	visited := map[types.TaskID]bool{taskID: true}
	queue := []hop{{id: taskID, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.successors[cur.id] {
			if visited[next] {
				continue
			}
			visited[next] = true
			delay := delayMinutes
			if g.compound {
				delay = delayMinutes * (cur.depth + 1)
			}
			impact[next] = delay
			queue = append(queue, hop{id: next, depth: cur.depth + 1})
		}
	}
	return impact
}
