// Package crew runs the workshop tasks one after another, handing every
// finished output to the stages that follow.
//
// Context passing: before stage n runs, the outputs of stages 1..n-1 are
// added in order to its system prompt as extra context titled
// "Output of <task>". Nothing else is shared between agents.
package crew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/systemprompt"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tasks"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

// ErrEmptyTopic is returned by Kickoff for a blank topic
var ErrEmptyTopic = errors.New("topic is empty")

// Crew is the sequential executor of the four workshop tasks
type Crew struct {
	tasks        []*tasks.Task
	stageHook    func(context.Context, string, Stage)
	logger       *slog.Logger
	timeout      time.Duration
	llmFactory   components.LLMFactory
	agentOptions []agents.Option
	toolkit      *tools.Toolkit
	embedder     embedder.Embedder
}

// New returns a Crew running list. The list must hold one task per stage in
// the order Planning, Research, Writing, Reviewing, each assigned to an agent
// of the matching kind.
func New(list []*tasks.Task, opts ...Option) (*Crew, error) {
	ret := newCrew(opts...)
	ret.tasks = list
	if err := validate(list); err != nil {
		return nil, err
	}
	return ret, nil
}

func newCrew(opts ...Option) *Crew {
	ret := new(Crew)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

func validate(list []*tasks.Task) error {
	if len(list) != len(stages) {
		return fmt.Errorf("crew needs %d tasks, got %d", len(stages), len(list))
	}
	for idx, task := range list {
		want := stages[idx]
		if task == nil || task.Agent == nil {
			return fmt.Errorf("stage %s: task has no agent", want.stage)
		}
		if kind := task.Agent.Kind(); kind != want.kind {
			return fmt.Errorf("stage %s: task %s is assigned to a %s, want a %s", want.stage, task.Name, kind, want.kind)
		}
		if task.Agent.AllowDelegation() {
			return fmt.Errorf("stage %s: agent %s allows delegation", want.stage, task.Agent.Name())
		}
	}
	return nil
}

// Tasks returns the tasks in execution order
func (c *Crew) Tasks() []*tasks.Task {
	return slices.Clone(c.tasks)
}

// Run executes the pipeline and returns the output of the final stage
func (c *Crew) Run(ctx context.Context, topic string) (string, error) {
	result, err := c.Kickoff(ctx, topic)
	if err != nil {
		return "", err
	}
	return result.Raw, nil
}

// Kickoff executes the four stages in order for topic. The first failure
// aborts the run; the error names the stage it happened in.
func (c *Crew) Kickoff(ctx context.Context, topic string) (*Result, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	result := &Result{
		ID:    xid.New().String(),
		Topic: topic,
		Tasks: make([]TaskOutput, 0, len(c.tasks)),
	}
	logger := c.logger.With(slog.String("run", result.ID))
	logger.InfoContext(ctx, "pipeline started", slog.String("topic", topic))
	startedAt := time.Now()

	var previous []systemprompt.ContextProvider
	for idx, task := range c.tasks {
		stage := stages[idx].stage
		c.transition(ctx, logger, result.ID, stage, slog.String("task", task.Name), slog.String("agent", task.Agent.Name()))

		input := task.Input(topic)
		input.Context = slices.Clone(previous)
		var (
			out  schema.String
			resp components.LLMResponse
		)
		if err := task.Agent.Run(ctx, input, &out, &resp); err != nil {
			logger.ErrorContext(ctx, "stage failed", slog.String("stage", stage.String()), slog.Any("error", err))
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		output := TaskOutput{
			Task:  task.Name,
			Agent: task.Agent.Name(),
			Stage: stage,
			Raw:   out.String(),
		}
		if resp.Usage != nil {
			output.Usage = *resp.Usage
		}
		result.Tasks = append(result.Tasks, output)
		result.Usage.Merge(&output.Usage)
		previous = append(previous, systemprompt.NewContext("Output of "+task.Name, output.Raw))
	}
	result.Raw = result.Tasks[len(result.Tasks)-1].Raw
	c.transition(ctx, logger, result.ID, Done,
		slog.Duration("elapsed", time.Since(startedAt)),
		slog.Int64("tokens", result.Usage.Total()),
	)
	return result, nil
}

func (c *Crew) transition(ctx context.Context, logger *slog.Logger, runID string, stage Stage, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("stage", stage.String()))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	logger.InfoContext(ctx, "stage", args...)
	if fn := c.stageHook; fn != nil {
		fn(ctx, runID, stage)
	}
}
