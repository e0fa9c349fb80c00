// Package agents builds the four workshop roles and runs one task per agent.
package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/systemprompt"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/systemprompt/cot"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

// Kind is the role an agent plays in the pipeline
type Kind string

const (
	Planner    Kind = "planner"
	Researcher Kind = "researcher"
	Writer     Kind = "writer"
	Reviewer   Kind = "reviewer"
)

// DefaultMaxIterations bounds the tool-calling rounds of one run
const DefaultMaxIterations = 8

// Persona is the fixed identity of an agent
type Persona struct {
	Name         string
	Role         string
	Goal         string
	Backstory    string
	SystemPrompt string
}

// Config represents general agents configuration
type Config struct {
	// llm Client for interacting with the language model
	llm        components.LLM
	llmFactory components.LLMFactory
	// systemPromptGenerator Component for generating system prompts.
	systemPromptGenerator systemprompt.Generator
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// maxIterations bounds tool-calling rounds before a final answer is forced
	maxIterations int
	// name overrides the persona name
	name    string
	toolkit *tools.Toolkit
	logger  *slog.Logger
}

// Agent is a persona bound to an LLM client and an optional toolkit.
// It holds no state between runs.
type Agent struct {
	Config
	kind      Kind
	persona   Persona
	startHook func(context.Context, *Agent, *Input)
	endHook   func(context.Context, *Agent, *Input, *schema.String, *components.LLMResponse)
	errorHook func(context.Context, *Agent, *Input, *components.LLMResponse, error)
}

// New returns an Agent of kind with persona. The LLM client is built from
// cfg.LLM unless WithLLM is given, so a missing API key fails here with a
// ConfigurationError before any request is made.
func New(kind Kind, persona Persona, cfg config.LLM, options ...Option) (*Agent, error) {
	ret := &Agent{
		kind:    kind,
		persona: persona,
	}
	ret.model = cfg.Model
	ret.temperature = cfg.Temperature
	ret.maxTokens = cfg.MaxTokens
	for _, opt := range options {
		opt(ret)
	}
	if ret.name == "" {
		ret.name = persona.Name
	}
	if ret.maxIterations <= 0 {
		ret.maxIterations = DefaultMaxIterations
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = persona.Generator()
	}
	if ret.llm == nil {
		factory := ret.llmFactory
		if factory == nil {
			factory = components.NewLLM
		}
		clt, err := factory(cfg)
		if err != nil {
			return nil, err
		}
		ret.llm = clt
	}
	return ret, nil
}

// Generator returns the chain-of-thought prompt generator for the persona
func (p Persona) Generator() *cot.Generator {
	return cot.New(
		cot.WithBackground(
			"- "+p.SystemPrompt,
			"- Your name is "+p.Name+".",
			"- Your role: "+p.Role+".",
			"- Your goal: "+p.Goal+".",
			"- "+p.Backstory,
		),
		cot.WithSteps(
			"- Read the task and the expected output carefully.",
			"- Review the output of the previous stages provided as extra context.",
			"- Use the available tools when they help you verify a fact or compute a value.",
			"- Work only on your own task; you cannot delegate work to other agents.",
		),
		cot.WithOutputInstructs(
			"- Return the actual complete content as the final answer, not a summary.",
			"- Use Markdown formatting.",
		),
	)
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Kind() Kind {
	return a.kind
}

func (a *Agent) Role() string {
	return a.persona.Role
}

func (a *Agent) Goal() string {
	return a.persona.Goal
}

func (a *Agent) Backstory() string {
	return a.persona.Backstory
}

func (a *Agent) Model() string {
	return a.model
}

// AllowDelegation is always false: an agent only works on its own task
func (a *Agent) AllowDelegation() bool {
	return false
}

// Toolkit returns the tools bound to the agent, possibly nil
func (a *Agent) Toolkit() *tools.Toolkit {
	return a.toolkit
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, *Input)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, *Input, *schema.String, *components.LLMResponse)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, *Input, *components.LLMResponse, error)) {
	a.errorHook = fn
}

// SystemPrompt returns the system prompt with extra context providers appended
func (a *Agent) SystemPrompt(extra ...systemprompt.ContextProvider) string {
	return a.systemPromptGenerator.Generate(extra...)
}

// Run executes the task described by userInput and writes the final answer to
// output. Tool calls requested by the model are dispatched through the task
// toolkit (or the agent's own); rejected tool input is reported back to the
// model and any other tool failure aborts the run.
func (a *Agent) Run(ctx context.Context, userInput *Input, output *schema.String, apiResp *components.LLMResponse) error {
	if apiResp == nil {
		apiResp = new(components.LLMResponse)
	}
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	if err := a.run(ctx, userInput, output, apiResp); err != nil {
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, userInput, apiResp, err)
		}
		return err
	}
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, output, apiResp)
	}
	return nil
}

func (a *Agent) run(ctx context.Context, userInput *Input, output *schema.String, apiResp *components.LLMResponse) error {
	if userInput == nil {
		return errors.New("agent input is nil")
	}
	toolkit := a.toolkit
	if userInput.Toolkit != nil {
		toolkit = userInput.Toolkit
	}
	memory := components.NewMemory(0)
	memory.NewTurn()
	memory.NewMessage(components.UserRole, schema.String(userInput.String()))
	system := components.NewMessage(components.SystemRole, schema.String(a.SystemPrompt(userInput.Context...)))

	for round := 0; ; round++ {
		withTools := toolkit.Len() > 0 && round < a.maxIterations
		msg, err := a.response(ctx, system, memory, toolkit, withTools, apiResp)
		if err != nil {
			return err
		}
		if withTools && len(msg.ToolCalls) > 0 {
			calls := components.ToolCallsFromOpenAI(msg.ToolCalls)
			memory.Append(components.NewToolCallsMessage(schema.String(msg.Content), calls))
			for _, call := range calls {
				a.logger.DebugContext(ctx, "tool call", slog.String("agent", a.name), slog.String("tool", call.Name), slog.Int("round", round))
				cb, err := toolkit.Dispatch(ctx, call)
				if err != nil {
					return fmt.Errorf("tool %s: %w", call.Name, err)
				}
				if cb.IsError {
					a.logger.WarnContext(ctx, "tool call rejected", slog.String("agent", a.name), slog.String("tool", call.Name), slog.String("error", cb.Content))
				}
				memory.Append(components.NewToolCallbackMessage(cb))
			}
			continue
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return errs.Upstream("llm", errors.New("empty response"))
		}
		*output = schema.String(content)
		memory.NewMessage(components.AssistantRole, *output)
		return nil
	}
}

// response obtains one completion from the language model
func (a *Agent) response(ctx context.Context, system *components.Message, memory *components.Memory, toolkit *tools.Toolkit, withTools bool, apiResp *components.LLMResponse) (*openai.ChatCompletionMessage, error) {
	history := memory.History()
	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(history)+1),
	}
	for _, msg := range append([]components.Message{*system}, history...) {
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	if withTools {
		chatReq.Tools = toolkit.Definitions()
	}
	res, err := a.llm.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, errs.Upstream("llm", err)
	}
	apiResp.FromOpenAI(&res)
	if len(res.Choices) == 0 {
		return nil, errs.Upstream("llm", errors.New("response has no choices"))
	}
	return &res.Choices[0].Message, nil
}
