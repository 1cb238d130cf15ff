package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/controller/http"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/repository/memory"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/service/memoryindex"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/usecase"
)

// testEmbedder returns a fixed unit vector for every input, which is
// enough to exercise the index plumbing deterministically.
type testEmbedder struct{}

func (testEmbedder) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	vectors := make([][]float64, len(input))
	for i := range input {
		v := make([]float64, dimension)
		v[0] = 1
		vectors[i] = v
	}
	return vectors, nil
}

func setupServer(t *testing.T, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()
	return httpctrl.New(usecase.New(memory.New(), opts...))
}

func setupServerWithMemory(t *testing.T) *httpctrl.Server {
	t.Helper()
	idx := memoryindex.New(testEmbedder{}, memoryindex.WithDimension(3))
	return setupServer(t, usecase.WithMemoryIndex(idx))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst)).Required()
}

func TestHealth(t *testing.T) {
	srv := setupServerWithMemory(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Status        string `json:"status"`
		MemoriesCount int    `json:"memories_count"`
	}
	decodeBody(t, rec, &resp)
	gt.Value(t, resp.Status).Equal("ok")
	gt.Value(t, resp.MemoriesCount).Equal(0)
}

func TestUserEndpoints(t *testing.T) {
	srv := setupServerWithMemory(t)

	register := map[string]any{
		"name":     "ada",
		"email":    "ada@example.com",
		"password": "s3cret",
		"skills":   []string{"python"},
	}
	rec := doJSON(t, srv, http.MethodPost, "/api/users/register", register)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID               string  `json:"id"`
		Role             string  `json:"role"`
		ReliabilityScore float64 `json:"reliabilityScore"`
	}
	decodeBody(t, rec, &created)
	gt.Value(t, created.ID).NotEqual("")
	gt.Value(t, created.Role).Equal("ASSIGNEE")
	gt.Value(t, created.ReliabilityScore).Equal(0.5)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/users/register", register)
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("login", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/users/login", map[string]any{
			"email":    "ada@example.com",
			"password": "s3cret",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodPost, "/api/users/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/users/no-such-user", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("update skills", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/users/"+created.ID+"/skills", map[string]any{
			"skills": []string{"python", "terraform"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var updated struct {
			Skills []string `json:"skills"`
		}
		decodeBody(t, rec, &updated)
		gt.Array(t, updated.Skills).Length(2)
	})
}

func createTestUser(t *testing.T, srv http.Handler, name string, skills []string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/users", map[string]any{
		"name":             name,
		"email":            fmt.Sprintf("%s@example.com", name),
		"reliabilityScore": 0.8,
		"skills":           skills,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &resp)
	return resp.ID
}

func TestTaskEndpoints(t *testing.T) {
	srv := setupServerWithMemory(t)
	pythonista := createTestUser(t, srv, "pythonista", []string{"python"})
	createTestUser(t, srv, "javaist", []string{"java"})

	t.Run("create auto-assigns by skill", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
			"title":             "Build API",
			"requiredSkills":    []string{"python"},
			"estimatedDuration": 60,
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			Task struct {
				ID         string `json:"id"`
				AssigneeID string `json:"assigneeId"`
				LastAction string `json:"lastAction"`
			} `json:"task"`
			Assignment *struct {
				AssigneeID string  `json:"assigneeId"`
				Score      float64 `json:"score"`
			} `json:"assignment"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Task.AssigneeID).Equal(pythonista)
		gt.Value(t, resp.Assignment).NotNil()
		gt.Value(t, resp.Assignment.AssigneeID).Equal(pythonista)
		gt.Bool(t, resp.Assignment.Score > 0).True()
		gt.Value(t, resp.Task.LastAction).Equal("AUTO_ASSIGN: " + pythonista)
	})

	t.Run("create without skills or assignee is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
			"title":             "Orphan",
			"estimatedDuration": 30,
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("status transition after cancel conflicts", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
			"title":             "Doomed",
			"assigneeId":        pythonista,
			"estimatedDuration": 30,
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
		var resp struct {
			Task struct {
				ID string `json:"id"`
			} `json:"task"`
		}
		decodeBody(t, rec, &resp)

		rec = doJSON(t, srv, http.MethodPut, "/api/tasks/"+resp.Task.ID+"/status", map[string]any{
			"status": "CANCELLED",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodPut, "/api/tasks/"+resp.Task.ID+"/status", map[string]any{
			"status": "IN_PROGRESS",
		})
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("unknown task is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/tasks/no-such-task", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestCompleteTaskEndpoint(t *testing.T) {
	srv := setupServerWithMemory(t)
	worker := createTestUser(t, srv, "worker", []string{"go"})

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"title":             "Ship feature",
		"assigneeId":        worker,
		"estimatedDuration": 60,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
	}
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks/"+created.Task.ID+"/complete", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Task struct {
			Status            string   `json:"status"`
			CompletionQuality *float64 `json:"completionQuality"`
		} `json:"task"`
		QualityLabel     string   `json:"qualityLabel"`
		ReliabilityScore float64  `json:"reliabilityScore"`
		Stages           []string `json:"stages"`
	}
	decodeBody(t, rec, &resp)
	gt.Value(t, resp.Task.Status).Equal("COMPLETED")
	gt.Value(t, resp.Task.CompletionQuality).NotNil()
	gt.Value(t, resp.QualityLabel).NotEqual("")
	gt.Bool(t, len(resp.Stages) > 0).True()

	t.Run("second completion conflicts", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks/"+created.Task.ID+"/complete", nil)
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})
}

func TestMemoryEndpoints(t *testing.T) {
	srv := setupServerWithMemory(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/memories", map[string]any{
		"id":   "mem-1",
		"text": "Task 'Build API' completed by ada. Result: Strong (0.92).",
		"metadata": map[string]any{
			"userId": "user-1",
			"deptId": "ENG",
		},
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	t.Run("search finds the record", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/memories/search", map[string]any{
			"text":  "completed build",
			"top_k": 3,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var results []struct {
			ID    string  `json:"id"`
			Score float64 `json:"score"`
		}
		decodeBody(t, rec, &results)
		gt.Array(t, results).Length(1)
		gt.Value(t, results[0].ID).Equal("mem-1")
		gt.Bool(t, results[0].Score > 0.99).True()
	})

	t.Run("user filter excludes mismatches", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/memories/search", map[string]any{
			"text":           "completed build",
			"top_k":          3,
			"filter_user_id": "someone-else",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var results []struct {
			ID string `json:"id"`
		}
		decodeBody(t, rec, &results)
		gt.Array(t, results).Length(0)
	})

	t.Run("init replaces the index", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/memories/init", []map[string]any{
			{"id": "mem-a", "text": "alpha", "metadata": map[string]any{}},
			{"id": "mem-b", "text": "beta", "metadata": map[string]any{}},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Count int `json:"count"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Count).Equal(2)

		health := doJSON(t, srv, http.MethodGet, "/health", nil)
		var status struct {
			MemoriesCount int `json:"memories_count"`
		}
		decodeBody(t, health, &status)
		gt.Value(t, status.MemoriesCount).Equal(2)
	})
}

func TestMemoryDisabled(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/memories", map[string]any{
		"text":     "orphan memory",
		"metadata": map[string]any{},
	})
	gt.Value(t, rec.Code).Equal(http.StatusServiceUnavailable)
}

func TestScheduleEndpoints(t *testing.T) {
	srv := setupServerWithMemory(t)
	worker := createTestUser(t, srv, "planner", []string{"go"})

	createTask := func(title string, minutes int, deps ...string) string {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]any{
			"title":             title,
			"assigneeId":        worker,
			"projectId":         "PROJ-1",
			"estimatedDuration": minutes,
			"dependencies":      deps,
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
		var resp struct {
			Task struct {
				ID string `json:"id"`
			} `json:"task"`
		}
		decodeBody(t, rec, &resp)
		return resp.Task.ID
	}

	a := createTask("design", 10)
	b := createTask("build", 20, a)
	c := createTask("verify", 30, b)

	t.Run("critical path", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/schedule/critical-path", map[string]any{
			"projectId": "PROJ-1",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Path         []string `json:"path"`
			TotalMinutes int      `json:"totalMinutes"`
		}
		decodeBody(t, rec, &resp)
		gt.Array(t, resp.Path).Length(3)
		gt.Value(t, resp.Path[0]).Equal(a)
		gt.Value(t, resp.Path[2]).Equal(c)
		gt.Value(t, resp.TotalMinutes).Equal(60)
	})

	t.Run("simulate delay", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/schedule/simulate-delay", map[string]any{
			"projectId":    "PROJ-1",
			"taskId":       a,
			"delayMinutes": 15,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Origin  string         `json:"origin"`
			Impact  map[string]int `json:"impact"`
			Updated int            `json:"updated"`
		}
		decodeBody(t, rec, &resp)
		gt.Value(t, resp.Origin).Equal(a)
		gt.Value(t, resp.Updated).Equal(2)
		gt.Value(t, resp.Impact[b]).Equal(15)
		gt.Value(t, resp.Impact[c]).Equal(15)
	})

	t.Run("negative delay is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/schedule/simulate-delay", map[string]any{
			"projectId":    "PROJ-1",
			"taskId":       a,
			"delayMinutes": -1,
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
