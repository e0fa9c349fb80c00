package crew

import (
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tasks"
)

// TaskOutput is the answer of one stage
type TaskOutput struct {
	Task  string              `json:"task"`
	Agent string              `json:"agent"`
	Stage Stage               `json:"stage"`
	Raw   string              `json:"raw"`
	Usage components.LLMUsage `json:"usage"`
}

// Result of a pipeline run
type Result struct {
	ID    string       `json:"id"`
	Topic string       `json:"topic"`
	Tasks []TaskOutput `json:"tasks"`
	// Raw is the output of the last stage
	Raw   string              `json:"raw"`
	Usage components.LLMUsage `json:"usage"`
}

// Output returns the output of the named task
func (r *Result) Output(task string) (TaskOutput, bool) {
	for _, v := range r.Tasks {
		if v.Task == task {
			return v, true
		}
	}
	return TaskOutput{}, false
}

// Markdown returns the workshop guide drafted by the Writing stage
func (r *Result) Markdown() schema.Markdown {
	out, _ := r.Output(tasks.Writing)
	return schema.Markdown(out.Raw)
}
