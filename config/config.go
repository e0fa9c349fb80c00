// Package config holds the process-wide configuration of the workshop crew.
//
// A Config is built once at start-up (defaults, then an optional YAML file, then
// the environment) and handed to every constructor that needs it. Nothing reads
// settings from globals after that point.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

const (
	// DefaultModel is the OpenRouter model used by every agent
	DefaultModel = "meta-llama/llama-3.3-70b-instruct:free"
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultIndexDir is where the index command writes the vector store
	DefaultIndexDir = "rag/vectorstore"
	// DefaultTopic is used by the CLI when no topic is given
	DefaultTopic = "Agentic AI Workshop on Multi-Agent Systems"
)

// Environment variables read by Load.
const (
	APIKeyEnv          = "OPENROUTER_API_KEY"
	HuggingFaceKeyEnv  = "HUGGING_FACE_API_KEY"
	OpenAIKeyEnv       = "OPENAI_API_KEY"
	ModelEnv           = "WORKSHOP_MODEL"
	IndexDirEnv        = "WORKSHOP_INDEX_DIR"
	SearchURLEnv       = "WORKSHOP_SEARCH_URL"
	EmbeddingURLEnv    = "WORKSHOP_EMBEDDING_URL"
	EmbeddingModelEnv  = "WORKSHOP_EMBEDDING_MODEL"
	EmbeddingProvEnv   = "WORKSHOP_EMBEDDING_PROVIDER"
	SearchBackendEnv   = "WORKSHOP_SEARCH_BACKEND"
	PipelineTimeoutEnv = "WORKSHOP_TIMEOUT"
)

// Embedding providers
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// Search backends
const (
	BackendDuckDuckGo = "duckduckgo"
	BackendSearxng    = "searxng"
)

// Config is the root configuration
type Config struct {
	LLM      LLM      `yaml:"llm"`
	Index    Index    `yaml:"index"`
	Search   Search   `yaml:"search"`
	Pipeline Pipeline `yaml:"pipeline"`
}

// LLM configures the chat model shared by the four agents
type LLM struct {
	Model string `yaml:"model" validate:"required"`
	// APIKey is only ever read from the environment
	APIKey      string  `yaml:"-"`
	BaseURL     string  `yaml:"base_url" validate:"required,url"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=1"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gt=0"`
}

// Index configures the local vector index and the embedder used to query it
type Index struct {
	Dir               string `yaml:"dir" validate:"required"`
	Collection        string `yaml:"collection" validate:"required"`
	TopK              int    `yaml:"top_k" validate:"gt=0"`
	EmbeddingProvider string `yaml:"embedding_provider" validate:"oneof=huggingface openai"`
	EmbeddingModel    string `yaml:"embedding_model" validate:"required"`
	EmbeddingBaseURL  string `yaml:"embedding_base_url" validate:"omitempty,url"`
	EmbeddingAPIKey   string `yaml:"-"`
	// ChunkSize and ChunkOverlap are measured by Tokenizer
	ChunkSize    int `yaml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int `yaml:"chunk_overlap" validate:"gte=0,ltfield=ChunkSize"`
	// BatchSize is the number of chunks sent in one embedding request
	BatchSize int `yaml:"batch_size" validate:"gt=0"`
	// MinScore drops retrieved snippets less similar than it to the query
	MinScore float64 `yaml:"min_score" validate:"gte=0,lte=1"`
	// Tokenizer is "words" or a tiktoken encoding name such as cl100k_base
	Tokenizer string `yaml:"tokenizer" validate:"required"`
}

// Search configures the web search tool
type Search struct {
	Backend    string        `yaml:"backend" validate:"oneof=duckduckgo searxng"`
	// BaseURL is required for searxng; duckduckgo falls back to its public host
	BaseURL    string        `yaml:"base_url" validate:"omitempty,url"`
	MaxResults int           `yaml:"max_results" validate:"gt=0"`
	Language   string        `yaml:"language"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Pipeline configures the sequential executor
type Pipeline struct {
	// MaxIterations bounds tool-calling rounds inside one stage
	MaxIterations int `yaml:"max_iterations" validate:"gt=0"`
	// Timeout bounds a whole run; zero means no limit
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Default returns a Config populated with the built-in defaults.
// The API keys are left empty.
func Default() Config {
	return Config{
		LLM: LLM{
			Model:       DefaultModel,
			BaseURL:     DefaultBaseURL,
			Temperature: 0.2,
			MaxTokens:   800,
		},
		Index: Index{
			Dir:               DefaultIndexDir,
			Collection:        "workshop",
			TopK:              4,
			EmbeddingProvider: ProviderHuggingFace,
			EmbeddingModel:    "sentence-transformers/all-MiniLM-L6-v2",
			ChunkSize:         200,
			ChunkOverlap:      50,
			BatchSize:         32,
			Tokenizer:         "words",
		},
		Search: Search{
			Backend:    BackendDuckDuckGo,
			MaxResults: 5,
			Timeout:    30 * time.Second,
		},
		Pipeline: Pipeline{
			MaxIterations: 8,
		},
	}
}

// Load builds the Config: defaults, then the YAML file at path (when path is
// not empty), then a local .env file, then environment overrides.
// The result is validated, except for the LLM API key which is checked when a
// client is constructed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, &errs.ConfigurationError{Field: "file", Reason: "cannot read " + path, Err: err}
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return nil, &errs.ConfigurationError{Field: "file", Reason: "invalid yaml in " + path, Err: err}
		}
	}
	// a missing .env is the normal case outside development
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	c.LLM.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	if v := os.Getenv(ModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(IndexDirEnv); v != "" {
		c.Index.Dir = v
	}
	if v := os.Getenv(EmbeddingProvEnv); v != "" {
		c.Index.EmbeddingProvider = v
	}
	if v := os.Getenv(EmbeddingModelEnv); v != "" {
		c.Index.EmbeddingModel = v
	}
	if v := os.Getenv(EmbeddingURLEnv); v != "" {
		c.Index.EmbeddingBaseURL = v
	}
	switch c.Index.EmbeddingProvider {
	case ProviderOpenAI:
		c.Index.EmbeddingAPIKey = os.Getenv(OpenAIKeyEnv)
	default:
		c.Index.EmbeddingAPIKey = os.Getenv(HuggingFaceKeyEnv)
	}
	if v := os.Getenv(SearchBackendEnv); v != "" {
		c.Search.Backend = v
	}
	if v := os.Getenv(SearchURLEnv); v != "" {
		c.Search.BaseURL = v
	}
	if v := os.Getenv(PipelineTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &errs.ConfigurationError{Field: "pipeline.timeout", Reason: "invalid duration " + v, Err: err}
		}
		c.Pipeline.Timeout = d
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint except the LLM API key.
func (c *Config) Validate() error {
	if err := structError(validate.Struct(c)); err != nil {
		return err
	}
	return c.Search.Validate()
}

// Validate checks the backend specific settings.
func (s Search) Validate() error {
	if s.Backend == BackendSearxng && strings.TrimSpace(s.BaseURL) == "" {
		return errs.Config("search.base_url", fmt.Sprintf("the searxng backend needs the instance URL. Set %s or search.base_url", SearchURLEnv))
	}
	return nil
}

// Validate checks the LLM settings including the API key.
func (l LLM) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return errs.Config("llm.api_key", fmt.Sprintf("%s is missing. Set it in your environment or .env file", APIKeyEnv))
	}
	return structError(validate.Struct(l))
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &errs.ConfigurationError{Field: "config", Reason: "validation failed", Err: err}
	}
	fe := verrs[0]
	reason := "failed " + fe.Tag()
	if p := fe.Param(); p != "" {
		reason += "=" + p
	}
	return &errs.ConfigurationError{Field: fieldPath(fe.Namespace()), Reason: reason, Err: err}
}

// fieldPath turns "Config.LLM.MaxTokens" into "llm.maxtokens"
func fieldPath(ns string) string {
	if idx := strings.IndexByte(ns, '.'); idx >= 0 {
		ns = ns[idx+1:]
	}
	return strings.ToLower(ns)
}
