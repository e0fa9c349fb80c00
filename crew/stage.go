package crew

import "github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"

// Stage is the state of a pipeline run
type Stage int

const (
	Idle Stage = iota
	Planning
	Researching
	Writing
	Reviewing
	Done
)

var stageNames = [...]string{"Idle", "Planning", "Researching", "Writing", "Reviewing", "Done"}

func (s Stage) String() string {
	if s < Idle || s > Done {
		return "Unknown"
	}
	return stageNames[s]
}

// stages lists the working stages in order with the agent kind each requires
var stages = []struct {
	stage Stage
	kind  agents.Kind
}{
	{Planning, agents.Planner},
	{Researching, agents.Researcher},
	{Writing, agents.Writer},
	{Reviewing, agents.Reviewer},
}
