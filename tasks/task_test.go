package tasks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/llmtest"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/calculator"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/retrieval"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/websearch"
)

func crewAgents(t *testing.T) []*agents.Agent {
	t.Helper()
	cfg := config.Default().LLM
	cfg.APIKey = "sk-test"
	clt := llmtest.New(nil)
	var ret []*agents.Agent
	for _, build := range []func(config.LLM, ...agents.Option) (*agents.Agent, error){
		agents.NewPlanner, agents.NewResearcher, agents.NewWriter, agents.NewReviewer,
	} {
		a, err := build(cfg, agents.WithLLM(clt))
		require.NoError(t, err)
		ret = append(ret, a)
	}
	return ret
}

func TestBuild(t *testing.T) {
	tk, err := tools.NewToolkit(calculator.New())
	require.NoError(t, err)
	a := crewAgents(t)

	list, err := Build(a[0], a[1], a[2], a[3], tk)
	require.NoError(t, err)
	require.Len(t, list, 4)
	names := make([]string, 0, len(list))
	for idx, task := range list {
		names = append(names, task.Name)
		assert.Same(t, a[idx], task.Agent)
		if task.Name == Research {
			assert.Same(t, tk, task.Toolkit)
		} else {
			assert.Nil(t, task.Toolkit)
		}
	}
	assert.Equal(t, []string{Planning, Research, Writing, Reviewing}, names)

	_, err = Build(a[1], a[0], a[2], a[3], tk)
	assert.Error(t, err)
	_, err = Build(a[0], a[1], a[2], nil, tk)
	assert.Error(t, err)
	_, err = Build(a[0], a[1], a[2], a[3], nil)
	assert.Error(t, err)
}

func TestTopicSubstitution(t *testing.T) {
	a := crewAgents(t)
	topic := "Go {agents} & RAG"
	for _, task := range []*Task{NewPlanningTask(a[0]), NewResearchTask(a[1], nil), NewWritingTask(a[2]), NewReviewTask(a[3])} {
		desc := task.Describe(topic)
		assert.Contains(t, desc, "'"+topic+"'", task.Name)
		assert.NotContains(t, desc, TopicPlaceholder)
		in := task.Input(topic)
		assert.Equal(t, desc, in.Description)
		assert.True(t, strings.HasPrefix(in.String(), desc))
	}
	assert.Contains(t, NewWritingTask(a[2]).Expect(topic), "Goals, Agenda, Hands-on Labs")
}

func TestResearchTaskDefaultsToAgentTools(t *testing.T) {
	tk, err := tools.NewToolkit(
		retrieval.New(retrieval.ChromemOpener(t.TempDir()), nil),
		websearch.New(),
		calculator.New(),
	)
	require.NoError(t, err)
	cfg := config.Default().LLM
	cfg.APIKey = "sk-test"
	researcher, err := agents.NewResearcher(cfg, agents.WithLLM(llmtest.New(nil)), agents.WithToolkit(tk))
	require.NoError(t, err)

	task := NewResearchTask(researcher, nil)
	require.NotNil(t, task.Toolkit)
	assert.Equal(t, 3, task.Toolkit.Len())
	assert.Equal(t, []string{retrieval.Name, websearch.Name, calculator.Name}, task.Toolkit.Names())
	assert.Same(t, tk, task.Input("agents").Toolkit)

	calc, err := tools.NewToolkit(calculator.New())
	require.NoError(t, err)
	assert.Same(t, calc, NewResearchTask(researcher, calc).Toolkit)
}
