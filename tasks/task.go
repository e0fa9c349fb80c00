// Package tasks defines the four workshop tasks and their fixed order.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

// TopicPlaceholder is replaced by the workshop topic
const TopicPlaceholder = "{topic}"

// Task names
const (
	Planning  = "Planning"
	Research  = "Research"
	Writing   = "Writing"
	Reviewing = "Reviewing"
)

// Task is a unit of work assigned to exactly one agent
type Task struct {
	Name string
	// Description is a template, see TopicPlaceholder
	Description string
	// ExpectedOutput is advisory and also a template
	ExpectedOutput string
	Agent          *agents.Agent
	// Toolkit replaces the agent's tools for this task when not nil
	Toolkit *tools.Toolkit
}

// Describe returns the description for topic
func (t *Task) Describe(topic string) string {
	return strings.ReplaceAll(t.Description, TopicPlaceholder, topic)
}

// Expect returns the expected output for topic
func (t *Task) Expect(topic string) string {
	return strings.ReplaceAll(t.ExpectedOutput, TopicPlaceholder, topic)
}

// Input returns the agent input of the task for topic
func (t *Task) Input(topic string) *agents.Input {
	return &agents.Input{
		Description:    t.Describe(topic),
		ExpectedOutput: t.Expect(topic),
		Toolkit:        t.Toolkit,
	}
}

func NewPlanningTask(agent *agents.Agent) *Task {
	return &Task{
		Name: Planning,
		Description: "Analyze the workshop topic '{topic}' and craft a milestone-based execution plan. " +
			"List required assets, responsible roles, tooling, and a realistic timeline.",
		ExpectedOutput: "A structured plan including objectives, three to five milestones, resource requirements, " +
			"risk mitigation ideas, and success metrics.",
		Agent: agent,
	}
}

// NewResearchTask returns the research task. A nil toolkit falls back to the
// agent's own tools, which crew.NewWorkshopCrew sets to crew.DefaultToolkit.
func NewResearchTask(agent *agents.Agent, toolkit *tools.Toolkit) *Task {
	if toolkit == nil && agent != nil {
		toolkit = agent.Toolkit()
	}
	return &Task{
		Name: Research,
		Description: "Use the local knowledge base and live web results to validate the plan for '{topic}'. " +
			"Cite at least three trustworthy sources and capture data points that justify each milestone.",
		ExpectedOutput: "A bullet list of insights with inline citations, key statistics, and references to the RAG documents.",
		Agent:          agent,
		Toolkit:        toolkit,
	}
}

func NewWritingTask(agent *agents.Agent) *Task {
	return &Task{
		Name: Writing,
		Description: "Draft the workshop narrative for '{topic}', including an overview, prerequisites, step-by-step labs, " +
			"and deployment notes. Incorporate the research insights and calculator results where helpful.",
		ExpectedOutput: "A Markdown-formatted workshop guide with sections for Goals, Agenda, Hands-on Labs, Deployment, and Resources.",
		Agent:          agent,
	}
}

func NewReviewTask(agent *agents.Agent) *Task {
	return &Task{
		Name: Reviewing,
		Description: "Review the draft content for '{topic}' for accuracy, completeness, and pedagogy. " +
			"Provide an executive summary of strengths, list gaps or issues, and suggest concrete improvements.",
		ExpectedOutput: "A review report with sections for Summary, Major Findings, Minor Suggestions, and Final Recommendation.",
		Agent:          agent,
	}
}

// Build returns the four tasks in pipeline order. Only the research task
// receives toolkit.
func Build(planner, researcher, writer, reviewer *agents.Agent, toolkit *tools.Toolkit) ([]*Task, error) {
	for kind, agent := range map[agents.Kind]*agents.Agent{
		agents.Planner:    planner,
		agents.Researcher: researcher,
		agents.Writer:     writer,
		agents.Reviewer:   reviewer,
	} {
		if agent == nil {
			return nil, fmt.Errorf("%s agent is nil", kind)
		}
		if agent.Kind() != kind {
			return nil, fmt.Errorf("expected a %s agent, got %s", kind, agent.Kind())
		}
	}
	if toolkit.Len() == 0 {
		return nil, errors.New("research toolkit is empty")
	}
	return []*Task{
		NewPlanningTask(planner),
		NewResearchTask(researcher, toolkit),
		NewWritingTask(writer),
		NewReviewTask(reviewer),
	}, nil
}
