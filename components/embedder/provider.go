package embedder

type Provider = string

const (
	ProviderOpenAI      Provider = "OpenAI"
	ProviderHuggingFace Provider = "HuggingFace"
)
