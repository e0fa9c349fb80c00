package websearch

import "github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"

type Option func(*Tool)

func WithBackend(b Backend) Option {
	return func(t *Tool) {
		t.backend = b
	}
}

func WithMaxResults(n int) Option {
	return func(t *Tool) {
		t.maxResults = n
	}
}

func WithToolOptions(opts ...tools.Option) Option {
	return func(t *Tool) {
		for _, opt := range opts {
			opt(&t.Config)
		}
	}
}
