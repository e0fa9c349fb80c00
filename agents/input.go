package agents

import (
	"strings"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/systemprompt"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

// Input is one task handed to an agent
type Input struct {
	// Description is the rendered task description
	Description string
	// ExpectedOutput guides the answer; it is not enforced
	ExpectedOutput string
	// Context holds the outputs of earlier stages
	Context []systemprompt.ContextProvider
	// Toolkit replaces the agent's own tools for this task when not nil
	Toolkit *tools.Toolkit
}

// String renders the user message sent to the model
func (i Input) String() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(i.Description))
	if expected := strings.TrimSpace(i.ExpectedOutput); expected != "" {
		sb.WriteString("\n\nThis is the expected criteria for your final answer: ")
		sb.WriteString(expected)
		sb.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")
	}
	return sb.String()
}
