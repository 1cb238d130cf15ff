// Package advisory consults an LLM for assignment proposals and
// completion inference. The advisory is strictly optional: every call is
// time-bounded and its failure is reported as an error for the caller to
// degrade on, never as a fatal condition.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Signals are the deterministic completion signals derived before the
// advisory is consulted.
type Signals struct {
	WallClockMinutes float64
	DeadlineStatus   types.DeadlineStatus
}

// AssignmentProposal is the advisory's pick for a task assignment.
type AssignmentProposal struct {
	SelectedID types.UserID
	Reasoning  string
}

// CompletionInference is the advisory's judgment of a completed task.
type CompletionInference struct {
	Quality     float64
	Label       types.QualityLabel
	Confidence  float64
	EffortHours float64
	Narrative   string
}

// Client wraps an LLM client with the advisory prompts.
type Client struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// Option is a functional option for Client configuration.
type Option func(*Client)

// WithTimeout bounds each advisory call (default 5s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates an advisory client with the provided LLM client.
func New(llmClient gollem.LLMClient, opts ...Option) (*Client, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &Client{
		llmClient: llmClient,
		timeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

const systemPrompt = "You are an autonomous execution intelligence for a project management engine. You make assignment and completion judgments from the provided context only, without asking the human for input."

// ProposeAssignment asks the advisory to pick an assignee from the
// candidate pool. The caller must verify the returned id against its own
// eligibility rules before acting on it.
func (c *Client) ProposeAssignment(ctx context.Context, task *model.Task, candidates []model.Candidate) (*AssignmentProposal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(assignmentSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildAssignmentPrompt(task, candidates)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate assignment proposal")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty assignment proposal response")
	}

	var raw struct {
		SelectedUserID string `json:"selected_user_id"`
		Reasoning      string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(resp.Texts[0]), &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse assignment proposal", goerr.V("response", resp.Texts[0]))
	}
	if raw.SelectedUserID == "" {
		return nil, goerr.New("assignment proposal has no selected user")
	}

	return &AssignmentProposal{
		SelectedID: types.UserID(raw.SelectedUserID),
		Reasoning:  raw.Reasoning,
	}, nil
}

// InferCompletion asks the advisory to judge the quality, effort, and
// narrative of a completed task from its signals and similar memories.
func (c *Client) InferCompletion(ctx context.Context, task *model.Task, user *model.User, memories []*model.ScoredMemory, signals Signals) (*CompletionInference, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(completionSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildCompletionPrompt(task, user, memories, signals)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate completion inference")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty completion inference response")
	}

	var raw struct {
		Quality     float64 `json:"inferred_quality_score"`
		Label       string  `json:"quality_label"`
		Confidence  float64 `json:"confidence_score"`
		EffortHours float64 `json:"implied_effort_hours"`
		Narrative   string  `json:"narrative"`
	}
	if err := json.Unmarshal([]byte(resp.Texts[0]), &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse completion inference", goerr.V("response", resp.Texts[0]))
	}
	if raw.Quality < 0 || raw.Quality > 1 {
		return nil, goerr.New("inferred quality out of range", goerr.V("quality", raw.Quality))
	}
	if raw.Confidence < 0 || raw.Confidence > 1 {
		return nil, goerr.New("inferred confidence out of range", goerr.V("confidence", raw.Confidence))
	}
	if raw.EffortHours < 0 {
		return nil, goerr.New("inferred effort is negative", goerr.V("effortHours", raw.EffortHours))
	}

	label := types.QualityLabel(raw.Label)
	if !label.IsValid() {
		label = types.LabelForQuality(raw.Quality)
	}

	return &CompletionInference{
		Quality:     raw.Quality,
		Label:       label,
		Confidence:  raw.Confidence,
		EffortHours: raw.EffortHours,
		Narrative:   raw.Narrative,
	}, nil
}

func buildAssignmentPrompt(task *model.Task, candidates []model.Candidate) string {
	var sb strings.Builder

	sb.WriteString("Assign the task below to the best available employee based on skills, reliability, and workload.\n\n")
	sb.WriteString("## Task to assign\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(&sb, "Priority: %s\n", task.Priority.Normalize())
	fmt.Fprintf(&sb, "Required skills: %s\n", strings.Join(task.RequiredSkills, ", "))

	sb.WriteString("\n## Candidate pool\n\n")
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- ID: %s, Name: %s, Role: %s, Reliability: %.2f, Active tasks: %d, Skills: %s\n",
			c.ID, c.Name, c.Role, c.ReliabilityScore, c.ActiveTaskCount, strings.Join(c.Skills, ", "))
	}

	sb.WriteString("\n## Rules\n\n")
	sb.WriteString("1. Prioritize matching skills first.\n")
	sb.WriteString("2. For high priority tasks, favor high reliability.\n")
	sb.WriteString("3. Avoid overloading candidates with many active tasks.\n")
	sb.WriteString("4. Select exactly one user id from the pool and explain your reason.\n")

	return sb.String()
}

func buildCompletionPrompt(task *model.Task, user *model.User, memories []*model.ScoredMemory, signals Signals) string {
	var sb strings.Builder

	sb.WriteString("Infer the outcome of the completed task below.\n\n")
	sb.WriteString("## Completed task\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(&sb, "Priority: %s\n", task.Priority.Normalize())
	fmt.Fprintf(&sb, "Estimated duration: %d minutes\n", task.EstimatedDuration)
	fmt.Fprintf(&sb, "Actual wall-clock duration: %.0f minutes\n", signals.WallClockMinutes)
	fmt.Fprintf(&sb, "Deadline status: %s\n", signals.DeadlineStatus)

	sb.WriteString("\n## Employee profile\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", user.Name)
	fmt.Fprintf(&sb, "Role: %s\n", user.Role)
	fmt.Fprintf(&sb, "Current reliability score: %.2f\n", user.ReliabilityScore)
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(user.Skills, ", "))

	sb.WriteString("\n## Similar past tasks\n\n")
	if len(memories) == 0 {
		sb.WriteString("No similar past tasks found.\n")
	} else {
		for _, m := range memories {
			fmt.Fprintf(&sb, "- %s (similarity %.2f)\n", m.Record.Text, m.Score)
		}
	}

	sb.WriteString("\n## Instructions\n\n")
	sb.WriteString("1. Infer quality in [0,1] with a confidence. On time or early completions similar to past successes are strong; late but complex work is acceptable; unusually fast work with a history of skimping is risky.\n")
	sb.WriteString("2. Infer effective effort hours. Wall-clock time includes breaks; estimate focused work from task complexity and the employee's skill.\n")
	sb.WriteString("3. Write a short narrative explaining the judgment.\n")

	return sb.String()
}

func assignmentSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "AssignmentProposal",
		Description: "The selected assignee for the task",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"selected_user_id": {
				Type:        gollem.TypeString,
				Description: "The ID of the selected user, exactly as listed in the candidate pool",
				Required:    true,
			},
			"reasoning": {
				Type:        gollem.TypeString,
				Description: "Why this candidate was selected",
				Required:    true,
			},
		},
	}
}

func completionSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CompletionInference",
		Description: "The inferred outcome of a completed task",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"inferred_quality_score": {
				Type:        gollem.TypeNumber,
				Description: "Inferred quality of the work, 0.0 to 1.0",
				Required:    true,
			},
			"quality_label": {
				Type:        gollem.TypeString,
				Description: "One of Strong, Acceptable, Risky, Uncertain",
				Required:    true,
			},
			"confidence_score": {
				Type:        gollem.TypeNumber,
				Description: "Confidence in the inference, 0.0 to 1.0",
				Required:    true,
			},
			"implied_effort_hours": {
				Type:        gollem.TypeNumber,
				Description: "Estimated focused work hours",
				Required:    true,
			},
			"narrative": {
				Type:        gollem.TypeString,
				Description: "Short explanation of the judgment",
				Required:    true,
			},
		},
	}
}
